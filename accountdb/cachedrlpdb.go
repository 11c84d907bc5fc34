// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package accountdb

import (
	"errors"

	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rjl493456442/evmstate/basedb"
)

// defaultCacheSize is the default LRU capacity for a CachedRLPDB.
const defaultCacheSize = 2048

// ErrNotFound is returned by CachedRLPDB.Get when the key is absent
// from both the LRU and the wrapped database, and no default_result
// was configured.
var ErrNotFound = errors.New("accountdb: record not found")

// CachedRLPDB decorates a basedb.Database whose values are all the RLP
// encoding of a single schema T, keeping an LRU of decoded values so
// repeat reads skip decode. It is the generic form of the spec's
// decoded-record cache; AccountDB instantiates it with Account, but
// nothing here is account-specific.
type CachedRLPDB[T any] struct {
	db    basedb.Database
	cache *lru.Cache[string, T]

	hasDefault bool
	defaultVal T
}

// NewCachedRLPDB wraps db with an LRU of the given capacity. Use
// WithDefault to configure the "absent key" fallback; without it,
// Get on a missing key returns ErrNotFound.
func NewCachedRLPDB[T any](db basedb.Database, capacity int) *CachedRLPDB[T] {
	if capacity <= 0 {
		capacity = defaultCacheSize
	}
	return &CachedRLPDB[T]{
		db:    db,
		cache: lru.NewCache[string, T](capacity),
	}
}

// WithDefault configures the value returned (and cached) for a key
// that is absent from the wrapped database. This is the sum type
// Default = ∅ | Value(v) collapsed into a flag plus value: calling
// WithDefault is the Value(v) case, and the zero CachedRLPDB is ∅.
func (c *CachedRLPDB[T]) WithDefault(v T) *CachedRLPDB[T] {
	c.hasDefault = true
	c.defaultVal = v
	return c
}

// Get returns the decoded record stored under key. A cache hit is
// returned directly; a miss reads and decodes from the wrapped
// database (or substitutes the configured default on absence) and
// populates the cache before returning.
func (c *CachedRLPDB[T]) Get(key []byte) (T, error) {
	k := string(key)
	if v, ok := c.cache.Get(k); ok {
		return v, nil
	}
	enc, ok := c.db.Get(key)
	if !ok || len(enc) == 0 {
		if c.hasDefault {
			c.cache.Add(k, c.defaultVal)
			return c.defaultVal, nil
		}
		var zero T
		return zero, ErrNotFound
	}
	var v T
	if err := rlp.DecodeBytes(enc, &v); err != nil {
		var zero T
		return zero, err
	}
	c.cache.Add(k, v)
	return v, nil
}

// Set encodes v under the schema and writes it through to the wrapped
// database, updating the LRU entry in the same call.
func (c *CachedRLPDB[T]) Set(key []byte, v T) error {
	enc, err := rlp.EncodeToBytes(&v)
	if err != nil {
		return err
	}
	if err := c.db.Set(key, enc); err != nil {
		return err
	}
	c.cache.Add(string(key), v)
	return nil
}

// Delete removes key from the wrapped database and invalidates its
// single cache entry, so the next Get repopulates from whatever the
// underlying database (or the configured default) now holds.
func (c *CachedRLPDB[T]) Delete(key []byte) error {
	c.cache.Remove(string(key))
	if err := c.db.Delete(key); err != nil && err != basedb.ErrNotFound {
		return err
	}
	return nil
}
