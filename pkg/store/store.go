// Package store implements the command history on top of a bbolt database.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.nfsh.sh/pkg/logutil"
	. "src.nfsh.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Functions run on a new database in one transaction, keyed by description.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend of the history.
type DBStore interface {
	Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// How long to wait for another shell holding the lock of the database.
const openTimeout = time.Second

// NewStore opens the database at the given path, creating it if needed.
func NewStore(path string) (DBStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bbolt database. The store takes
// ownership of the database.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store from", db.Path())
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
