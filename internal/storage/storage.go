// Package storage provides the key/value slot the registry persists into.
//
// Storage is the whole capability the state loader and sink need: read a key,
// write a key. Backends are a directory of files, a SQLite database, or an
// in-memory map for tests.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Storage reads and writes string values by key.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces any prior value for key.
	Set(ctx context.Context, key, value string) error
}

// ErrQuota is returned when a write exceeds the backend's size limit.
var ErrQuota = errors.New("storage quota exceeded")

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name from config or flags.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case "":
		return BackendFile, nil
	case BackendFile, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", name)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open constructs the backend rooted at path (a directory for file storage,
// a database file for sqlite, ignored for memory). The returned closer must
// be closed when the caller is done.
func Open(ctx context.Context, backend Backend, path string) (Storage, io.Closer, error) {
	switch backend {
	case BackendFile, "":
		return &FileStore{Dir: path}, nopCloser{}, nil
	case BackendSQLite:
		st, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case BackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
