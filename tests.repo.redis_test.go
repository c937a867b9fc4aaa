package main

import (
	"context"
	"net"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startRedisDockerContainer(t *testing.T) (string, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Skipf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("redis", "7.0.10-alpine", nil)
	if err != nil {
		t.Fatalf("Failed to start redis: %+v", err)
	}

	// build address the container is listening on
	addr := net.JoinHostPort("localhost", resource.GetPort("6379/tcp"))

	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		return client.Ping(context.Background()).Err()
	})
	if err != nil {
		t.Fatalf("Failed to ping Redis: %+v", err)
	}

	destroyFunc := func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return addr, destroyFunc
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docker based test in short mode")
	}
	addr, destroyFunc := startRedisDockerContainer(t)
	defer destroyFunc()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	client, err := GetRedisClient(&RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	rs := NewRedisMovieStorage(zap.NewNop(), client, "test.movies")
	defer rs.Close()

	t.Run("Load Empty", func(t *testing.T) {
		// ensures a missing key is an empty collection.
		movies, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("Save And Load", func(t *testing.T) {
		// ensures the collection order survives a round trip.
		err := rs.Save(context.Background(), testMovies)
		assert.NoError(t, err)
		movies, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, testMovies, movies)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		// ensures saving overwrites the previous collection.
		err := rs.Save(context.Background(), testMovies[1:2])
		assert.NoError(t, err)
		movies, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, testMovies[1:2], movies)
	})

	t.Run("Save Empty", func(t *testing.T) {
		// ensures an empty collection clears the key.
		err := rs.Save(context.Background(), []Movie{})
		assert.NoError(t, err)
		movies, err := rs.Load(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, movies)
	})
}
