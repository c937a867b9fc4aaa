package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewMovieStorage builds the storage selected by the configured driver.
func NewMovieStorage(ctx context.Context, logger *zap.Logger, config *StorageConfig) (MovieStorage, error) {
	logger = logger.With(zap.String("storage.driver", config.Driver))
	switch config.Driver {
	case DriverFile:
		return NewFileMovieStorage(logger, &config.File)
	case DriverMemory:
		return NewMemoryMovieStorage(), nil
	case DriverBoltDB:
		client, err := GetBoltDBClient(&config.BoltDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to boltDB server: %s", err)
		}
		return NewBoltMovieStorage(logger, &config.BoltDB, client), nil
	case DriverRedis:
		client, err := GetRedisClient(&config.Redis)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		return NewRedisMovieStorage(logger, client, config.Redis.Key), nil
	case DriverPostgres:
		pool, err := GetPostgresPool(ctx, &config.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres server: %s", err)
		}
		return NewPostgresMovieStorage(logger, pool), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}
