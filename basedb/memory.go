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

package basedb

import "sync"

// MemoryDB is an in-memory Database backed by a plain map, guarded by a
// RWMutex. It is the reference BaseDB implementation used by tests and
// is suitable as the backing store for short-lived or ephemeral state.
type MemoryDB struct {
	lock sync.RWMutex
	kv   map[string][]byte
}

// NewMemoryDB returns an empty, ready-to-use MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{kv: make(map[string][]byte)}
}

func (db *MemoryDB) Get(key []byte) ([]byte, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	v, ok := db.kv[string(key)]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true
}

func (db *MemoryDB) Set(key, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	db.kv[string(key)] = cp
	return nil
}

func (db *MemoryDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if _, ok := db.kv[string(key)]; !ok {
		return ErrNotFound
	}
	delete(db.kv, string(key))
	return nil
}

func (db *MemoryDB) Contains(key []byte) bool {
	db.lock.RLock()
	defer db.lock.RUnlock()

	_, ok := db.kv[string(key)]
	return ok
}

// Len returns the number of keys currently stored. Handy in tests.
func (db *MemoryDB) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.kv)
}
