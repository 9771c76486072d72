package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
)

const gameKeyPrefix = "game/"

var ErrGameNotFound = errors.New("game not found in storage")

// Storage wraps BadgerDB and keeps one position snapshot per game.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in dir. An empty dir keeps everything in memory.
func NewStorage(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

// SaveGame replaces the stored snapshot of the game.
func (s *Storage) SaveGame(snapshot model.GameSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(snapshot.ID), data)
	})
}

func (s *Storage) LoadGame(id string) (model.GameSnapshot, error) {
	var snapshot model.GameSnapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", id, ErrGameNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})

	return snapshot, err
}

// LoadAll returns every stored snapshot.
func (s *Storage) LoadAll() ([]model.GameSnapshot, error) {
	snapshots := []model.GameSnapshot{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var snapshot model.GameSnapshot
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snapshot)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			snapshots = append(snapshots, snapshot)
		}
		return nil
	})

	return snapshots, err
}

func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}
