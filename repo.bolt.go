package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var _ MovieStorage = (*boltMovieStorage)(nil)

type boltMovieStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *BoltDBConfig) (*bolt.DB, error) {
	db, err := bolt.Open(config.FilePath, 0o600, &bolt.Options{Timeout: config.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltMovieStorage provides an instance of bolt-based movie storage.
func NewBoltMovieStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) *boltMovieStorage {
	return &boltMovieStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based movie storage.
func (bs *boltMovieStorage) Close() error {
	return bs.client.Close()
}

// positionKey builds a key whose byte order follows the collection order.
func positionKey(i int) []byte {
	return []byte(fmt.Sprintf("%010d", i))
}

// Load retrieves the movies stored in the bucket following their position.
func (bs *boltMovieStorage) Load(_ context.Context) ([]Movie, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()
	movies := []Movie{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var movie Movie
		if err = json.Unmarshal(v, &movie); err != nil {
			return nil, fmt.Errorf("failed to decode movie at %s: %w", k, err)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// Save rewrites the whole bucket inside a single transaction.
func (bs *boltMovieStorage) Save(_ context.Context, movies []Movie) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		name := []byte(bs.config.BucketName)
		if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for i, movie := range movies {
			movieBytes, err := json.Marshal(movie)
			if err != nil {
				return err
			}
			if err = bucket.Put(positionKey(i), movieBytes); err != nil {
				return err
			}
		}
		return nil
	})
}
