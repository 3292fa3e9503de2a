// Package kv is a small ttl key value store on badger
// values are json encoded, empty Dir keeps everything in memory
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	perr "replyguard/internal/platform/errors"
)

// Options configures the store
type Options struct {
	// Dir is the on disk location, empty means in memory
	Dir string

	// Namespace prefixes every key
	Namespace string
}

// Store wraps a badger db
type Store struct {
	db   *badger.DB
	ns   string
	view bool
}

// Open opens the db
func Open(o Options) (*Store, error) {
	bo := badger.DefaultOptions(o.Dir).WithLogger(nil)
	if o.Dir == "" {
		bo = bo.WithInMemory(true)
	}
	db, err := badger.Open(bo)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "open kv store")
	}
	return &Store{db: db, ns: o.Namespace}, nil
}

// Namespace returns a view that shares the db under a nested key prefix
// closing a view is a no op
func (s *Store) Namespace(ns string) *Store {
	return &Store{db: s.db, ns: s.ns + ns + ":", view: true}
}

func (s *Store) key(k string) []byte {
	return []byte(s.ns + k)
}

// Put stores v under key for ttl, ttl <= 0 keeps it until deleted
func (s *Store) Put(ctx context.Context, key string, v any, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "kv encode value")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(s.key(key), b)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Get decodes the value under key into out
// missing or expired keys return false and no error
func (s *Store) Get(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeDB, "kv get")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeJSON, "kv decode value")
	}
	return true, nil
}

// Take reads and deletes key in one transaction
// of two concurrent takers only one sees the value
func (s *Store) Take(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var raw []byte
	err := s.db.Update(func(txn *badger.Txn) error {
		k := s.key(key)
		item, err := txn.Get(k)
		if err != nil {
			return err
		}
		if raw, err = item.ValueCopy(nil); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound), errors.Is(err, badger.ErrConflict):
		return false, nil
	case err != nil:
		return false, perr.Wrap(err, perr.ErrorCodeDB, "kv take")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeJSON, "kv decode value")
	}
	return true, nil
}

// Delete removes key, missing keys are fine
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
}

// Close releases the db
func (s *Store) Close() error {
	if s == nil || s.db == nil || s.view {
		return nil
	}
	return s.db.Close()
}
