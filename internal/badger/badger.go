// Package badger implements the store contracts on an embedded BadgerDB
// through badgerhold, for single-node deployments without PostgreSQL.
package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	bdg "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const productoSequenceKey = "seq:productos"

// Store manages the Badger database.
type Store struct {
	store     *badgerhold.Store
	productos *bdg.Sequence
}

// Open opens (creating when needed) the database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil
	// JSON keeps free-form metadata maps decodable without gob registration.
	options.Encoder = json.Marshal
	options.Decoder = json.Unmarshal

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	seq, err := store.Badger().GetSequence([]byte(productoSequenceKey), 100)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to open producto sequence: %w", err)
	}

	return &Store{store: store, productos: seq}, nil
}

// Ping reports whether the database is open.
func (s *Store) Ping(_ context.Context) error {
	if s.store.Badger().IsClosed() {
		return fmt.Errorf("badger database is closed")
	}
	return nil
}

// Close releases the sequence lease and closes the database.
func (s *Store) Close() error {
	if err := s.productos.Release(); err != nil {
		s.store.Close()
		return fmt.Errorf("failed to release producto sequence: %w", err)
	}
	return s.store.Close()
}
