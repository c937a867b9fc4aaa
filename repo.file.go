package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const lockRetryInterval = 50 * time.Millisecond

var (
	_ MovieStorage = (*fileMovieStorage)(nil)
	_ Locker       = (*fileMovieStorage)(nil)
)

// fileMovieStorage keeps the whole collection as a pretty-printed JSON
// array inside a single file.
type fileMovieStorage struct {
	logger      *zap.Logger
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

// NewFileMovieStorage provides an instance of file-based movie storage. The
// parent folder of the data file is created if it does not exist yet.
func NewFileMovieStorage(logger *zap.Logger, config *FileConfig) (*fileMovieStorage, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage folder: %w", err)
	}
	return &fileMovieStorage{
		logger:      logger,
		path:        config.Path,
		lock:        flock.New(config.Path + ".lock"),
		lockTimeout: config.LockTimeout,
	}, nil
}

// Load reads the full collection. A missing or empty file is an empty collection.
func (fls *fileMovieStorage) Load(_ context.Context) ([]Movie, error) {
	data, err := os.ReadFile(fls.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	movies := []Movie{}
	if len(bytes.TrimSpace(data)) == 0 {
		return movies, nil
	}
	if err = json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

// Save overwrites the file with the given collection. The content is written
// into a temporary file first then renamed so readers never see a partial write.
func (fls *fileMovieStorage) Save(_ context.Context, movies []Movie) error {
	if movies == nil {
		movies = []Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal movies: %w", err)
	}

	tmpFile := fls.path + ".tmp"
	if err = os.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = os.Rename(tmpFile, fls.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Lock acquires the cross-process lock held next to the data file.
func (fls *fileMovieStorage) Lock(ctx context.Context) (func() error, error) {
	if fls.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fls.lockTimeout)
		defer cancel()
	}
	locked, err := fls.lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire file lock: %w", err)
	}
	if !locked {
		return nil, errors.New("failed to acquire file lock")
	}
	return fls.lock.Unlock, nil
}

// Close releases the file lock if still held.
func (fls *fileMovieStorage) Close() error {
	return fls.lock.Close()
}
