// ABOUTME: Key/value storage abstraction for notebook state.
// ABOUTME: Selects a backend by name and resolves XDG data paths.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

var ErrNotFound = errors.New("key not found")
var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a durable string-keyed byte store, the local equivalent of
// browser local storage.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Open opens the named backend at path. An empty path selects
// DefaultPath(backend). The memory backend ignores path.
func Open(backend, path string, logger *log.Logger) (Store, error) {
	if path == "" && backend != BackendMemory {
		path = DefaultPath(backend)
	}
	switch backend {
	case BackendBadger:
		s, err := OpenBadger(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// DataDir returns $XDG_DATA_HOME/notebook, or ~/.local/share/notebook.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notebook")
}

func DefaultPath(backend string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(DataDir(), "notebook.db")
	default:
		return filepath.Join(DataDir(), "badger")
	}
}
