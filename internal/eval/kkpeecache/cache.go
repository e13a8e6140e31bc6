// Package kkpeecache persists computed evaluator cell values across
// process runs: compute a cell lazily and cache it, instead of holding the
// full ~6.4e7-cell KKPEE table in memory or recomputing every value fresh
// on every query. It is built on the same BadgerDB open/close and
// Update/View idiom as a user-preferences store, retargeted here to
// evaluator cell values keyed by the KKPEE tuple.
package kkpeecache

import (
	"encoding/binary"
	"log"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a BadgerDB instance mapping a packed KKPEE cell key to its
// computed int32 value.
type Cache struct {
	db *badger.DB
}

// openGroup deduplicates concurrent first-time opens of the same
// directory, the same guarantee geometry.Init gets from sync.Once —
// singleflight is the right tool here instead since Open takes an
// argument and can fail, neither of which sync.Once handles.
var openGroup singleflight.Group

// Open opens (creating if absent) the on-disk cache at dir. A caller that
// only wants the in-memory fallback (no persistence across runs) can pass
// a nil *Cache anywhere this package's Get/Put are used — Evaluator then
// keeps computed cells only in its in-process map.
func Open(dir string) (*Cache, error) {
	v, err, _ := openGroup.Do(dir, func() (any, error) {
		opts := badger.DefaultOptions(dir)
		opts.Logger = nil
		db, err := badger.Open(opts)
		if err != nil {
			return nil, err
		}
		log.Printf("kkpeecache: opened %s", dir)
		return &Cache{db: db}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cache), nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	log.Printf("kkpeecache: closing")
	return c.db.Close()
}

func keyBytes(key uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return b[:]
}

// Get returns the cached value for key and true, or (0, false) on a miss.
func (c *Cache) Get(key uint64) (int32, bool) {
	if c == nil || c.db == nil {
		return 0, false
	}
	var value int32
	found := false
	_ = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 4 {
				return nil
			}
			value = int32(binary.LittleEndian.Uint32(val))
			found = true
			return nil
		})
	})
	return value, found
}

// Put stores value for key. Errors are logged, not propagated: a cache
// write failure must never break evaluation, only its persistence.
func (c *Cache) Put(key uint64, value int32) {
	if c == nil || c.db == nil {
		return
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(value))
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyBytes(key), buf[:])
	})
	if err != nil {
		log.Printf("kkpeecache: put failed: %v", err)
	}
}
