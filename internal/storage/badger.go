// ABOUTME: Badger-backed key/value store.
// ABOUTME: One badger directory per notebook; values are opaque bytes.

package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
)

type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens or creates a badger database in dir. Badger's own
// messages go to logger; a nil logger silences them.
func OpenBadger(dir string, logger *log.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return openBadger(badger.DefaultOptions(dir), logger)
}

// OpenBadgerInMemory opens a badger database that never touches disk.
func OpenBadgerInMemory(logger *log.Logger) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), logger)
}

func openBadger(opts badger.Options, logger *log.Logger) (*BadgerStore, error) {
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts a charm logger to badger.Logger.
type badgerLogger struct {
	*log.Logger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
