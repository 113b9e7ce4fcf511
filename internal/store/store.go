// Package store provides the recipe collection interface and its SQLite,
// in-memory and Badger implementations.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/recipe-match/internal/filter"
	"github.com/rcliao/recipe-match/internal/model"
)

// ErrNotFound is returned when a recipe id does not exist.
var ErrNotFound = errors.New("recipe not found")

// ListParams holds parameters for listing recipes.
type ListParams struct {
	Tags  []string
	Limit int
}

// SearchParams holds parameters for a free-text search.
type SearchParams struct {
	Query string
	Limit int
}

// Collection is the read-only query surface the recommender depends on.
type Collection interface {
	// Find returns up to limit recipes matching f in a stable order.
	// A limit <= 0 means no limit.
	Find(ctx context.Context, f filter.Filter, limit int) ([]model.Recipe, error)

	// Ping reports whether the collection is reachable.
	Ping(ctx context.Context) error
}

// Store is a Collection that can also be maintained from the CLI.
type Store interface {
	Collection

	// Put inserts or replaces a recipe, assigning an id when empty.
	Put(ctx context.Context, r model.Recipe) (*model.Recipe, error)

	// Get retrieves a recipe by id.
	Get(ctx context.Context, id string) (*model.Recipe, error)

	// List lists recipes carrying all of the given tags.
	List(ctx context.Context, p ListParams) ([]model.Recipe, error)

	// Search finds recipes whose name, description or ingredients contain the query.
	Search(ctx context.Context, p SearchParams) ([]model.Recipe, error)

	// Rm deletes a recipe.
	Rm(ctx context.Context, id string) error

	// ExportAll returns every recipe.
	ExportAll(ctx context.Context) ([]model.Recipe, error)

	// Import stores recipes in bulk and returns how many were written.
	Import(ctx context.Context, recipes []model.Recipe) (int, error)

	// Stats returns corpus statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the store.
	Close() error
}

// FindOne returns the first recipe matching f, or ErrNotFound.
func FindOne(ctx context.Context, c Collection, f filter.Filter) (*model.Recipe, error) {
	found, err := c.Find(ctx, f, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

func listFilter(p ListParams) filter.Filter {
	if len(p.Tags) == 0 {
		return filter.And()
	}
	return filter.All(filter.FieldTags, p.Tags...)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
