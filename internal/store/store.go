// Package store defines the datastore abstraction for diggerweb-backend.
// Business logic depends on the Store interface, never on concrete
// implementations, which keeps handlers testable without a database.
package store

import (
	"context"
	"errors"

	domain "github.com/diggerweb/backend/pkg/types"
)

// ErrNotFound is returned by LoadCredentials when no credential row exists.
// It is distinct from storage failures so callers can tell "never
// authorized" apart from "database unreachable".
var ErrNotFound = errors.New("credentials not found")

// Store defines all data access operations for diggerweb-backend.
type Store interface {
	// SaveCredentials upserts the singleton access token pair.
	SaveCredentials(ctx context.Context, c *domain.Credentials) error
	// LoadCredentials returns the stored pair, ErrNotFound when none
	// exists, or the underlying storage error.
	LoadCredentials(ctx context.Context) (*domain.Credentials, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
