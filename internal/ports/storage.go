// Package ports defines the interfaces (driven and driving ports) of the
// start page following hexagonal architecture principles. These interfaces
// are the contracts between the interaction core and its collaborators:
// storage, the UI layer, clocks and notification sinks.
package ports

import (
	"context"

	"github.com/xvierd/startpage/internal/domain"
)

// CatalogSource supplies the link catalog. It is invoked once at startup and
// its result is treated as opaque, read-only data.
// This is a driven port (implemented by adapters).
type CatalogSource interface {
	// Fetch returns every link in the catalog.
	Fetch(ctx context.Context) ([]domain.Link, error)
}

// LinkRepository defines the interface for link persistence.
// This is a driven port (implemented by adapters).
type LinkRepository interface {
	// Save persists a new link.
	Save(ctx context.Context, link *domain.Link) error

	// FindByID retrieves a link by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Link, error)

	// FindAll retrieves all links, optionally restricted to one category.
	FindAll(ctx context.Context, category *string) ([]*domain.Link, error)

	// FindByName does a fuzzy search over link names.
	FindByName(ctx context.Context, query string) ([]*domain.Link, error)

	// Update modifies an existing link.
	Update(ctx context.Context, link *domain.Link) error

	// Delete removes a link from storage.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored links.
	Count(ctx context.Context) (int, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Links provides access to link operations.
	Links() LinkRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
