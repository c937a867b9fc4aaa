package main

import (
	"context"
	"strings"
)

// Movie represents a movie record of the rental catalog.
type Movie struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Director  string `json:"director"`
	Year      int    `json:"year"`
	Available bool   `json:"available"`
}

// MovieUpdate carries a partial update. A nil field keeps its previous value.
type MovieUpdate struct {
	Title     *string `json:"title"`
	Director  *string `json:"director"`
	Year      *int    `json:"year"`
	Available *bool   `json:"available"`
}

// Apply returns a copy of movie with every non-nil field of the update set on it.
func (u MovieUpdate) Apply(movie Movie) Movie {
	if u.Title != nil {
		movie.Title = *u.Title
	}
	if u.Director != nil {
		movie.Director = *u.Director
	}
	if u.Year != nil {
		movie.Year = *u.Year
	}
	if u.Available != nil {
		movie.Available = *u.Available
	}
	return movie
}

// Matches reports whether the title or the director contains the search
// term, ignoring case. An empty term matches every movie.
func (m Movie) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(m.Title), term) ||
		strings.Contains(strings.ToLower(m.Director), term)
}

// MovieStorage is the persistence boundary of the catalog. It always reads
// and writes the whole collection.
type MovieStorage interface {
	Load(ctx context.Context) ([]Movie, error)
	Save(ctx context.Context, movies []Movie) error
	Close() error
}

// Locker is implemented by storages able to guard a read-modify-write
// cycle against other processes sharing the same data.
type Locker interface {
	Lock(ctx context.Context) (unlock func() error, err error)
}

// indexOfMovie returns the position of the movie with the given id or -1.
func indexOfMovie(movies []Movie, id string) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return -1
}
