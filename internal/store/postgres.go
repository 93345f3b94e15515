package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/diggerweb/backend/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled
// PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// SaveCredentials upserts the singleton credential row. A second exchange
// overwrites the previous pair; history is not retained.
func (s *PostgresStore) SaveCredentials(ctx context.Context, c *domain.Credentials) error {
	args := pgx.NamedArgs{
		"access_token":  c.Token,
		"access_secret": c.Secret,
	}

	if err := s.pool.QueryRow(ctx, queryUpsertCredentials, args).Scan(&c.LastUpdated); err != nil {
		return fmt.Errorf("upserting credentials: %w", err)
	}
	return nil
}

// LoadCredentials returns the stored access pair, or ErrNotFound when the
// user has never authorized.
func (s *PostgresStore) LoadCredentials(ctx context.Context) (*domain.Credentials, error) {
	c := &domain.Credentials{}
	err := s.pool.QueryRow(ctx, queryGetCredentials).
		Scan(&c.Token, &c.Secret, &c.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	return c, nil
}
