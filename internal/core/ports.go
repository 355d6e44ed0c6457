package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by AppStore implementations when no record
// exists for the requested name.
var ErrNotFound = errors.New("app not found")

// AppStore is the persistence port for app records. Implementations must be
// safe for concurrent use. The store offers no insert-if-absent or
// compare-and-swap primitive; callers pre-check existence and accept
// last-write-wins semantics on concurrent updates.
type AppStore interface {
	// Get looks up a record by exact name. Returns ErrNotFound if absent.
	Get(ctx context.Context, name string) (*App, error)

	// Create inserts a record. An existing record with the same name is
	// overwritten; the caller is responsible for checking absence first.
	Create(ctx context.Context, app App) error

	// UpdateVersion sets only the version attribute of an existing record.
	// The string is persisted verbatim; validation is the caller's job.
	UpdateVersion(ctx context.Context, name string, version string) error
}
