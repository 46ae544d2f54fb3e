package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KVStore = (*KVStore)(nil)

// KVStore persists key-value records in an embedded badger database.
// An empty path opens the database in memory, used by tests.
type KVStore struct {
	db *badger.DB
}

func NewKVStore(path string) (KVStore, error) {
	const op = "NewKVStore"
	log := slog.With("op", op)

	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{})
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return KVStore{}, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	log.Info("key-value store is opened", "path", path)
	return KVStore{db}, nil
}

// Get returns the stored value or [port.ErrNotFound].
func (s KVStore) Get(key string) ([]byte, error) {
	const op = "KVStore.Get"

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s KVStore) Set(key string, value []byte) error {
	const op = "KVStore.Set"

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s KVStore) Delete(key string) error {
	const op = "KVStore.Delete"

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s KVStore) Close() {
	const op = "KVStore.Close"
	log := slog.With("op", op)

	log.Info("closing key-value store...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("key-value store is closed")
}

// badgerLogger routes badger output to slog, dropping its info and
// debug noise.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	slog.Error(fmt.Sprintf("badger: "+format, args...))
}

func (badgerLogger) Warningf(format string, args ...any) {
	slog.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (badgerLogger) Infof(string, ...any)  {}
func (badgerLogger) Debugf(string, ...any) {}
