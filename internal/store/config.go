package store

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// SQLiteFile is the database name used by the sqlite backend inside the data dir.
const SQLiteFile = "todo.db"

// ParseBackend accepts file|sqlite|memory; empty means file.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendFile:
		return BackendFile, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	}
	return "", fmt.Errorf("unknown storage backend %q", s)
}

// Open returns the store for backend rooted at dir. An empty dir
// resolves to ResolveDataDir. The returned closer is a no-op for
// backends that hold no resources.
func Open(backend Backend, dir string) (Store, io.Closer, error) {
	if backend == BackendMemory {
		return NewMemStore(), nopCloser{}, nil
	}
	switch backend {
	case BackendSQLite:
		if dir == "" {
			d, err := ResolveDataDir()
			if err != nil {
				return nil, nil, err
			}
			dir = d
		}
		s, err := NewSQLiteStore(filepath.Join(dir, SQLiteFile))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, s, nil
	case BackendFile, "":
		var (
			s   *FSStore
			err error
		)
		if dir == "" {
			s, err = NewDefaultFSStore()
		} else {
			s, err = NewFSStore(dir)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return s, nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
