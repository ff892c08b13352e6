// Package store holds short-code to URL mappings.
package store

import (
	"context"
	"errors"

	"github.com/penshort/userlinks/internal/model"
)

// ErrNotFound is returned when no mapping exists for a short code.
var ErrNotFound = errors.New("mapping not found")

// Store is a concurrency-safe mapping from short code to URLMapping.
// Returned mappings are copies; mutating them never changes stored state.
type Store interface {
	// AddMapping inserts or overwrites the mapping for code with zero clicks.
	AddMapping(ctx context.Context, code, url string) (*model.URLMapping, error)

	// GetMapping returns the mapping for code or ErrNotFound.
	GetMapping(ctx context.Context, code string) (*model.URLMapping, error)

	// IncrementClicks atomically adds one click. It reports false if code is absent.
	IncrementClicks(ctx context.Context, code string) (bool, error)

	// Snapshot returns a point-in-time copy of every mapping.
	Snapshot(ctx context.Context) (map[string]model.URLMapping, error)

	// Len returns the number of stored mappings.
	Len(ctx context.Context) (int, error)
}
