package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type MovieServiceProvider interface {
	List(ctx context.Context, search string) ([]Movie, error)
	GetOne(ctx context.Context, id string) (Movie, error)
	Add(ctx context.Context, movie Movie) (Movie, error)
	Update(ctx context.Context, id string, update MovieUpdate) (Movie, error)
	Delete(ctx context.Context, id string) (Movie, error)
	Rent(ctx context.Context, id string) (Movie, error)
	Return(ctx context.Context, id string) (Movie, error)
}

// MovieService applies catalog operations as load-mutate-save cycles over
// the storage. Mutating cycles are serialized in process and, when the
// storage supports it, across processes.
type MovieService struct {
	logger  *zap.Logger
	config  *Config
	storage MovieStorage
	mu      sync.Mutex
}

func NewMovieService(logger *zap.Logger, config *Config, storage MovieStorage) *MovieService {
	return &MovieService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

func (ms *MovieService) load(ctx context.Context) ([]Movie, error) {
	movies, err := ms.storage.Load(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	return movies, nil
}

// mutate runs fn over the current collection and saves its result. Nothing
// is written when fn fails.
func (ms *MovieService) mutate(ctx context.Context, fn func([]Movie) ([]Movie, error)) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if locker, ok := ms.storage.(Locker); ok {
		unlock, err := locker.Lock(ctx)
		if err != nil {
			return &StorageError{Op: "lock", Err: err}
		}
		defer func() {
			if err := unlock(); err != nil {
				ms.logger.Error("service: failed to release storage lock", zap.Error(err))
			}
		}()
	}

	movies, err := ms.load(ctx)
	if err != nil {
		return err
	}

	movies, err = fn(movies)
	if err != nil {
		return err
	}

	if err = ms.storage.Save(ctx, movies); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// List returns the movies matching the search term in storage order.
func (ms *MovieService) List(ctx context.Context, search string) ([]Movie, error) {
	movies, err := ms.load(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return movies, nil
	}
	filtered := []Movie{}
	for _, movie := range movies {
		if movie.Matches(search) {
			filtered = append(filtered, movie)
		}
	}
	return filtered, nil
}

func (ms *MovieService) GetOne(ctx context.Context, id string) (Movie, error) {
	movies, err := ms.load(ctx)
	if err != nil {
		return Movie{}, err
	}
	i := indexOfMovie(movies, id)
	if i == -1 {
		return Movie{}, ErrMovieNotFound
	}
	return movies[i], nil
}

// Add appends a fully built movie to the collection.
func (ms *MovieService) Add(ctx context.Context, movie Movie) (Movie, error) {
	err := ms.mutate(ctx, func(movies []Movie) ([]Movie, error) {
		return append(movies, movie), nil
	})
	return movie, err
}

// Update checks the provided fields once the movie is found, then applies them.
func (ms *MovieService) Update(ctx context.Context, id string, update MovieUpdate) (Movie, error) {
	var updated Movie
	err := ms.mutate(ctx, func(movies []Movie) ([]Movie, error) {
		i := indexOfMovie(movies, id)
		if i == -1 {
			return nil, ErrMovieNotFound
		}
		if err := ValidateUpdateMovieRequestBody(&update); err != nil {
			return nil, err
		}
		movies[i] = update.Apply(movies[i])
		updated = movies[i]
		return movies, nil
	})
	return updated, err
}

// Delete removes the movie and returns it.
func (ms *MovieService) Delete(ctx context.Context, id string) (Movie, error) {
	var removed Movie
	err := ms.mutate(ctx, func(movies []Movie) ([]Movie, error) {
		i := indexOfMovie(movies, id)
		if i == -1 {
			return nil, ErrMovieNotFound
		}
		removed = movies[i]
		return append(movies[:i], movies[i+1:]...), nil
	})
	return removed, err
}

// Rent marks an available movie as rented.
func (ms *MovieService) Rent(ctx context.Context, id string) (Movie, error) {
	return ms.setAvailability(ctx, id, false)
}

// Return marks a rented movie as available again.
func (ms *MovieService) Return(ctx context.Context, id string) (Movie, error) {
	return ms.setAvailability(ctx, id, true)
}

func (ms *MovieService) setAvailability(ctx context.Context, id string, available bool) (Movie, error) {
	var movie Movie
	err := ms.mutate(ctx, func(movies []Movie) ([]Movie, error) {
		i := indexOfMovie(movies, id)
		if i == -1 {
			return nil, ErrMovieNotFound
		}
		if movies[i].Available == available {
			if available {
				return nil, ErrMovieAlreadyAvailable
			}
			return nil, ErrMovieAlreadyRented
		}
		movies[i].Available = available
		movie = movies[i]
		return movies, nil
	})
	return movie, err
}
