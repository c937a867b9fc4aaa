package main

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable cause sent along with API errors.
type ErrorCode string

const (
	CodeInvalidBody          ErrorCode = "invalid_body"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeMovieNotFound        ErrorCode = "movie_not_found"
	CodeMovieAlreadyRented   ErrorCode = "movie_already_rented"
	CodeMovieAlreadyReturned ErrorCode = "movie_already_available"
	CodeStorageFailure       ErrorCode = "storage_failure"
	CodeInternal             ErrorCode = "internal_error"
	CodeRateLimited          ErrorCode = "rate_limited"
	CodeMaintenance          ErrorCode = "maintenance"
	CodeRouteNotFound        ErrorCode = "route_not_found"
	CodeTimeout              ErrorCode = "timeout"
)

var (
	ErrMovieNotFound         = errors.New("movie not found")
	ErrMovieAlreadyRented    = errors.New("movie is already rented")
	ErrMovieAlreadyAvailable = errors.New("movie is already available")
)

type (
	missingFieldError string
	invalidFieldError string
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

func (i invalidFieldError) Error() string {
	return string(i) + " must not be empty"
}

// StorageError reports a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidationError tells if err was caused by an invalid client input.
func IsValidationError(err error) bool {
	var mfe missingFieldError
	var ife invalidFieldError
	return errors.As(err, &mfe) || errors.As(err, &ife)
}

// IsConflictError tells if err is an illegal availability transition.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrMovieAlreadyRented) || errors.Is(err, ErrMovieAlreadyAvailable)
}

// ErrorStatus maps a service error to its HTTP status and error code.
// Conflicts keep the 400 status the web client already relies on.
func ErrorStatus(err error) (int, ErrorCode) {
	var se *StorageError
	switch {
	case err == nil:
		return http.StatusOK, ""
	case IsValidationError(err):
		return http.StatusBadRequest, CodeValidationFailed
	case errors.Is(err, ErrMovieNotFound):
		return http.StatusNotFound, CodeMovieNotFound
	case errors.Is(err, ErrMovieAlreadyRented):
		return http.StatusBadRequest, CodeMovieAlreadyRented
	case errors.Is(err, ErrMovieAlreadyAvailable):
		return http.StatusBadRequest, CodeMovieAlreadyReturned
	case errors.As(err, &se):
		return http.StatusInternalServerError, CodeStorageFailure
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
