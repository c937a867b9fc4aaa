package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var _ MovieStorage = (*postgresMovieStorage)(nil)

const createMoviesTable = `
	CREATE TABLE IF NOT EXISTS movies (
		position  INTEGER NOT NULL,
		id        TEXT PRIMARY KEY,
		title     TEXT NOT NULL,
		director  TEXT NOT NULL,
		year      INTEGER NOT NULL,
		available BOOLEAN NOT NULL DEFAULT TRUE
	);
`

var movieColumns = []string{"position", "id", "title", "director", "year", "available"}

// postgresMovieStorage keeps one row per movie and remembers the
// collection order through the position column.
type postgresMovieStorage struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// GetPostgresPool connects to the database and makes sure the movies table exists.
func GetPostgresPool(ctx context.Context, config *PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %v", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}

	ctx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %v", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	if _, err = pool.Exec(ctx, createMoviesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create movies table: %v", err)
	}
	return pool, nil
}

// NewPostgresMovieStorage provides an instance of postgres-based movie storage.
func NewPostgresMovieStorage(logger *zap.Logger, pool *pgxpool.Pool) *postgresMovieStorage {
	return &postgresMovieStorage{logger: logger, pool: pool}
}

// Load retrieves all movies ordered by their position.
func (ps *postgresMovieStorage) Load(ctx context.Context) ([]Movie, error) {
	rows, err := ps.pool.Query(ctx, `SELECT id, title, director, year, available FROM movies ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		var movie Movie
		if err = rows.Scan(&movie.ID, &movie.Title, &movie.Director, &movie.Year, &movie.Available); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// Save replaces the table content inside a single transaction.
func (ps *postgresMovieStorage) Save(ctx context.Context, movies []Movie) error {
	tx, err := ps.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err = tx.Exec(ctx, `DELETE FROM movies`); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(movies))
	for i, m := range movies {
		rows = append(rows, []interface{}{i, m.ID, m.Title, m.Director, m.Year, m.Available})
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"movies"}, movieColumns, pgx.CopyFromRows(rows)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (ps *postgresMovieStorage) Close() error {
	ps.pool.Close()
	return nil
}
