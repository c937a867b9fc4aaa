package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ MovieStorage = (*redisMovieStorage)(nil)

// redisMovieStorage keeps the collection as a redis list of JSON documents.
type redisMovieStorage struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisMovieStorage provides an instance of redis-based movie storage.
func NewRedisMovieStorage(logger *zap.Logger, client *redis.Client, key string) *redisMovieStorage {
	return &redisMovieStorage{
		logger: logger,
		client: client,
		key:    key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolSize:     config.PoolSize,
		PoolTimeout:  config.PoolTimeout,
		Password:     config.Password,
		Username:     config.Username,
		DB:           config.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Load retrieves all movies in list order.
func (rs *redisMovieStorage) Load(ctx context.Context) ([]Movie, error) {
	items, err := rs.client.LRange(ctx, rs.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	movies := make([]Movie, 0, len(items))
	for _, movieJSONString := range items {
		var movie Movie
		if err = json.Unmarshal([]byte(movieJSONString), &movie); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// Save replaces the list content inside a MULTI/EXEC transaction.
func (rs *redisMovieStorage) Save(ctx context.Context, movies []Movie) error {
	values := make([]interface{}, 0, len(movies))
	for _, movie := range movies {
		movieBytes, err := json.Marshal(movie)
		if err != nil {
			return err
		}
		values = append(values, movieBytes)
	}
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rs.key)
		if len(values) > 0 {
			pipe.RPush(ctx, rs.key, values...)
		}
		return nil
	})
	return err
}

func (rs *redisMovieStorage) Close() error {
	return rs.client.Close()
}
