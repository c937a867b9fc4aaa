package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/tomasen/realip"
)

type ContextKey string

const (
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
	maxBodyBytes            int64      = 1 << 20
)

// CreateMovieRequest is the payload expected by the movie creation endpoint.
type CreateMovieRequest struct {
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     int    `json:"year"`
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val, ok := ctx.Value(contextKey).(string); ok {
		return val
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val, ok := ctx.Value(RequestNumberContextKey).(uint64); ok {
		return val
	}
	return 0
}

// DecodeRequestBody reads a single JSON value from the request body into dst.
// The body is capped to 1MB and decoding errors are turned into messages
// which can be sent back to the client as is.
func DecodeRequestBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("body must not be empty")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}

	if err = dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// ValidateCreateMovieRequestBody checks that every field of a creation request is set.
func ValidateCreateMovieRequestBody(req *CreateMovieRequest) error {
	if len(req.Title) == 0 {
		return missingFieldError("title")
	}

	if len(req.Director) == 0 {
		return missingFieldError("director")
	}

	if req.Year == 0 {
		return missingFieldError("year")
	}

	return nil
}

// ValidateUpdateMovieRequestBody rejects provided fields which would break
// the non-empty invariants of a movie. Absent fields are always fine.
func ValidateUpdateMovieRequestBody(update *MovieUpdate) error {
	if update.Title != nil && len(*update.Title) == 0 {
		return invalidFieldError("title")
	}

	if update.Director != nil && len(*update.Director) == 0 {
		return invalidFieldError("director")
	}

	if update.Year != nil && *update.Year == 0 {
		return invalidFieldError("year")
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller. It honors
// X-Real-Ip and X-Forwarded-For headers before the remote address.
func GetRequestSourceIP(r *http.Request) string {
	return realip.FromRequest(r)
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
