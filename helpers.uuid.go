package main

import (
	"github.com/gofrs/uuid"
)

var _ UIDHandler = (*IDsHandler)(nil) // ensure IDsHandler implements UIDHandler.

// UIDHandler is an interface for getting a uid.
type UIDHandler interface {
	Generate(prefix string) string
}

// IDsHandler implements the UIDHandler interface with random (v4) uuids.
type IDsHandler struct{}

// NewIDsHandler returns a ready to use IDsHandler.
func NewIDsHandler() *IDsHandler {
	return &IDsHandler{}
}

// Generate provides a random unique identifier. Movie ids are plain uuids
// so they stay compatible with records created by earlier versions; other
// ids like request ids carry a prefix.
func (idh *IDsHandler) Generate(prefix string) string {
	id := uuid.Must(uuid.NewV4())
	if prefix == "" {
		return id.String()
	}
	return prefix + ":" + id.String()
}
