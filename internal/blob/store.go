// Package blob abstracts the object store holding save files and build
// artifacts. The production deployment reads and writes S3; local runs and
// tests use a directory on disk. Keys are "/"-separated paths relative to
// the store root on both backends.
package blob

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("blob: object not found")

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	// Key is the object's path relative to the store root.
	Key string

	// LastModified is the backend's modification timestamp.
	LastModified time.Time
}

// Store is a flat object store. Implementations must be safe for concurrent
// use.
type Store interface {
	// List returns the objects whose keys start with prefix, in no
	// particular order. A prefix matching nothing yields an empty list.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Get reads the object under key. Missing objects return ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes the object under key, replacing any previous content. The
	// write is atomic: readers never observe a partial object.
	Put(ctx context.Context, key string, data []byte) error
}
