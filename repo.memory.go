package main

import (
	"context"
	"sync"
)

var _ MovieStorage = (*memoryMovieStorage)(nil)

// memoryMovieStorage keeps the collection in process memory.
type memoryMovieStorage struct {
	sync.RWMutex
	movies []Movie
}

// NewMemoryMovieStorage provides an in-memory storage seeded with movies.
func NewMemoryMovieStorage(movies ...Movie) *memoryMovieStorage {
	return &memoryMovieStorage{movies: append([]Movie{}, movies...)}
}

// Load returns a copy of the stored collection.
func (ms *memoryMovieStorage) Load(_ context.Context) ([]Movie, error) {
	ms.RLock()
	defer ms.RUnlock()
	return append([]Movie{}, ms.movies...), nil
}

// Save replaces the stored collection with a copy of movies.
func (ms *memoryMovieStorage) Save(_ context.Context, movies []Movie) error {
	ms.Lock()
	defer ms.Unlock()
	ms.movies = append([]Movie{}, movies...)
	return nil
}

func (ms *memoryMovieStorage) Close() error {
	return nil
}
