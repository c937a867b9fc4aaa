package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMovieMatches(t *testing.T) {
	movie := Movie{Title: "Blade Runner", Director: "Ridley Scott"}
	testCases := []struct {
		term    string
		matches bool
	}{
		{"", true},
		{"blade", true},
		{"RUNNER", true},
		{"scott", true},
		{"de r", true},
		{"kubrick", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.matches, movie.Matches(tc.term), tc.term)
	}
}

func TestMovieUpdateApply(t *testing.T) {
	movie := Movie{ID: "m-0", Title: "Dune", Director: "Denis Villeneuve", Year: 2021, Available: true}

	assert.Equal(t, movie, MovieUpdate{}.Apply(movie))

	year, available := 2024, false
	updated := MovieUpdate{Year: &year, Available: &available}.Apply(movie)
	assert.Equal(t, Movie{ID: "m-0", Title: "Dune", Director: "Denis Villeneuve", Year: 2024, Available: false}, updated)
}

func TestErrorStatus(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"missing field", missingFieldError("title"), http.StatusBadRequest, CodeValidationFailed},
		{"invalid field", fmt.Errorf("update: %w", invalidFieldError("year")), http.StatusBadRequest, CodeValidationFailed},
		{"not found", ErrMovieNotFound, http.StatusNotFound, CodeMovieNotFound},
		{"already rented", ErrMovieAlreadyRented, http.StatusBadRequest, CodeMovieAlreadyRented},
		{"already available", ErrMovieAlreadyAvailable, http.StatusBadRequest, CodeMovieAlreadyReturned},
		{"storage", &StorageError{Op: "save", Err: errors.New("disk full")}, http.StatusInternalServerError, CodeStorageFailure},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := ErrorStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestIDsHandler(t *testing.T) {
	idh := NewIDsHandler()
	movieID := idh.Generate("")
	assert.Len(t, movieID, 36)
	assert.NotEqual(t, movieID, idh.Generate(""))
	assert.Regexp(t, `^r:[0-9a-f-]{36}$`, idh.Generate(RequestIDPrefix))
}

func TestClockZone(t *testing.T) {
	assert.Equal(t, time.UTC, NewClock(true).Now().Location())
	assert.Equal(t, time.Local, NewClock(false).Now().Location())
}

func TestUptime(t *testing.T) {
	api := newTestAPIHandler(NewMemoryMovieStorage())
	assert.Equal(t, "0 mins", api.uptime())
	api.stats.started = api.clock.Now().Add(-90 * time.Minute)
	assert.Equal(t, "90 mins", api.uptime())
}
