// Package store provides the persistent key-value store backing a wallet
// actor: an ordered, prefix-scannable bbolt database with a single writer.
// Every actor operation runs inside exactly one Update transaction, so a
// multi-record state transition either commits whole or not at all.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Store wraps a bbolt database file.
type Store struct {
	db  *bolt.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	log.Info("store opened", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Update runs fn in a read-write transaction. bbolt serializes writers, so
// one Update per operation is what gives the actor its one-call-at-a-time
// semantics.
func (s *Store) Update(fn func(tx *Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{btx: btx, writable: true})
	})
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// Tx is a handle on one store transaction. Records are JSON-encoded.
type Tx struct {
	btx      *bolt.Tx
	writable bool
}

func (t *Tx) bucket(name string) (*bolt.Bucket, error) {
	if t.writable {
		return t.btx.CreateBucketIfNotExists([]byte(name))
	}
	return t.btx.Bucket([]byte(name)), nil
}

// Put stores v under key in the named bucket.
func (t *Tx) Put(bucket, key string, v any) error {
	b, err := t.bucket(bucket)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}
	return b.Put([]byte(key), data)
}

// Get loads the record at key into dest. It returns false when the key is
// absent.
func (t *Tx) Get(bucket, key string, dest any) (bool, error) {
	b, err := t.bucket(bucket)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	data := b.Get([]byte(key))
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// Exists reports whether a key is present without decoding it.
func (t *Tx) Exists(bucket, key string) (bool, error) {
	b, err := t.bucket(bucket)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	return b.Get([]byte(key)) != nil, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (t *Tx) Delete(bucket, key string) error {
	b, err := t.bucket(bucket)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	return b.Delete([]byte(key))
}

// ScanPrefix walks keys with the given prefix in ascending order. fn returns
// false to stop early.
func (t *Tx) ScanPrefix(bucket, prefix string, fn func(key string, value []byte) (bool, error)) error {
	b, err := t.bucket(bucket)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	p := []byte(prefix)
	c := b.Cursor()
	for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
		cont, err := fn(string(k), v)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// ScanPrefixReverse walks keys with the given prefix in descending order,
// which is newest-first for time-ordered keys.
func (t *Tx) ScanPrefixReverse(bucket, prefix string, fn func(key string, value []byte) (bool, error)) error {
	b, err := t.bucket(bucket)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	p := []byte(prefix)
	c := b.Cursor()

	// Position on the last key within the prefix range by seeking just past
	// it and stepping back.
	upper := append(append([]byte{}, p...), 0xff)
	k, v := c.Seek(upper)
	if k == nil {
		k, v = c.Last()
	} else {
		k, v = c.Prev()
	}
	for ; k != nil && bytes.HasPrefix(k, p); k, v = c.Prev() {
		cont, err := fn(string(k), v)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}
