package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Backend names a store implementation.
type Backend string

const (
	Memory Backend = "memory"
	SQLite Backend = "sqlite"
)

var (
	// ErrUnsupportedBackend is returned for an unknown backend name.
	ErrUnsupportedBackend = errors.New("store: unsupported backend")
	// ErrSQLiteUnavailable is returned when the binary was built without
	// the sqlite tag.
	ErrSQLiteUnavailable = errors.New("store: sqlite backend unavailable in this build; rebuild with -tags sqlite")
)

// ParseBackend returns the backend with the given name. The empty name
// selects the memory store.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case "", Memory:
		return Memory, nil
	case SQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, name)
	}
}

// Open creates and initializes a store. path is the database file of the
// sqlite backend and ignored otherwise. Release the store with [Close].
func Open(ctx context.Context, backend Backend, path string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch backend {
	case Memory:
		st = NewMemoryStore()
	case SQLite:
		st, err = newSQLiteStore(path)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		_ = Close(st)
		return nil, fmt.Errorf("store: init %s: %w", backend, err)
	}
	return st, nil
}

// Close releases st if its backend holds resources.
func Close(st Store) error {
	if c, ok := st.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
