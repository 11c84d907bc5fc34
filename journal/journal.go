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

// Package journal layers a stack of pending changesets over a basedb.Database,
// giving callers record/discard/commit checkpoints before anything is
// actually flushed to the wrapped store.
package journal

import (
	"fmt"

	"github.com/rjl493456442/evmstate/basedb"
)

// CheckpointID identifies a changeset opened by Record. It is opaque to
// callers and only meaningful to the DB instance that produced it.
type CheckpointID int

// entry is a single pending write. A nil value (with present=false)
// records a tombstone, i.e. a pending delete.
type entry struct {
	value   []byte
	present bool
}

// changeset is one layer of the pending-write stack.
type changeset struct {
	writes map[string]entry
}

func newChangeset() *changeset {
	return &changeset{writes: make(map[string]entry)}
}

// DB wraps a basedb.Database with a stack of changesets. The zero value
// is not usable; construct with New.
type DB struct {
	db     basedb.Database
	layers []*changeset // layers[0] is the oldest (bottom) layer
}

// New returns a journaling DB with a single base changeset already open,
// so Get/Set/Delete/Contains are usable immediately without a prior
// Record call.
func New(db basedb.Database) *DB {
	return &DB{
		db:     db,
		layers: []*changeset{newChangeset()},
	}
}

// Record opens a new changeset on top of the stack and returns its id.
func (j *DB) Record() CheckpointID {
	j.layers = append(j.layers, newChangeset())
	return CheckpointID(len(j.layers) - 1)
}

// Discard drops every changeset on top of and including id. Every
// tentative write made within those layers is erased from the overlay.
// Discarding an unknown id is a programmer error and panics.
func (j *DB) Discard(id CheckpointID) {
	idx := int(id)
	if idx <= 0 || idx >= len(j.layers) {
		panic(fmt.Sprintf("journal: discard of unknown checkpoint %d", id))
	}
	j.layers = j.layers[:idx]
}

// Commit collapses id's changeset and every changeset above it into
// id's parent, using
// last-writer-wins semantics. Writes become visible to the next
// Record/Discard boundary but are not flushed to the wrapped database.
// Committing an unknown id is a programmer error and panics.
func (j *DB) Commit(id CheckpointID) {
	idx := int(id)
	if idx <= 0 || idx >= len(j.layers) {
		panic(fmt.Sprintf("journal: commit of unknown checkpoint %d", id))
	}
	parent := j.layers[idx-1]
	for i := idx; i < len(j.layers); i++ {
		for k, v := range j.layers[i].writes {
			parent.writes[k] = v
		}
	}
	j.layers = j.layers[:idx]
}

// Get consults the changeset stack top-down, falling through to the
// wrapped database on a full miss. A tombstone short-circuits the scan
// and reports absence without consulting deeper layers.
func (j *DB) Get(key []byte) ([]byte, bool) {
	k := string(key)
	for i := len(j.layers) - 1; i >= 0; i-- {
		if e, ok := j.layers[i].writes[k]; ok {
			if !e.present {
				return nil, false
			}
			return e.value, true
		}
	}
	return j.db.Get(key)
}

// Set records a pending write in the topmost changeset.
func (j *DB) Set(key, value []byte) error {
	top := j.layers[len(j.layers)-1]
	cp := make([]byte, len(value))
	copy(cp, value)
	top.writes[string(key)] = entry{value: cp, present: true}
	return nil
}

// Delete records a pending tombstone in the topmost changeset. Unlike
// basedb.Database.Delete, deleting a key that is not currently visible
// is not an error here: the journal only tracks intent, and persist
// reconciles tombstones against the wrapped database.
func (j *DB) Delete(key []byte) error {
	top := j.layers[len(j.layers)-1]
	top.writes[string(key)] = entry{present: false}
	return nil
}

// Contains reports whether key resolves to a present value anywhere in
// the changeset stack or the wrapped database.
func (j *DB) Contains(key []byte) bool {
	_, ok := j.Get(key)
	return ok
}

// Persist flushes every collapsed, uncommitted write to the wrapped
// database in oldest-to-newest order and clears the stack, leaving a
// single fresh base changeset open. Any error from the wrapped database
// is propagated unchanged and the journal is left untouched so the
// caller may retry.
func (j *DB) Persist() error {
	for _, layer := range j.layers {
		for k, e := range layer.writes {
			key := []byte(k)
			if !e.present {
				if err := j.db.Delete(key); err != nil && err != basedb.ErrNotFound {
					return err
				}
				continue
			}
			if err := j.db.Set(key, e.value); err != nil {
				return err
			}
		}
	}
	j.layers = []*changeset{newChangeset()}
	return nil
}

// Depth reports the number of open changesets, including the base
// layer. A depth of 1 means no Record has been left un-discarded or
// un-committed — the expected state at teardown.
func (j *DB) Depth() int {
	return len(j.layers)
}

// Stats counts the pending writes and deletes across every open
// changeset, collapsing duplicate keys the same way Persist would,
// without flushing anything. It lets a caller summarize an upcoming
// Persist call ahead of time.
func (j *DB) Stats() (writes, deletes int) {
	seen := make(map[string]bool)
	for i := len(j.layers) - 1; i >= 0; i-- {
		for k, e := range j.layers[i].writes {
			if seen[k] {
				continue
			}
			seen[k] = true
			if e.present {
				writes++
			} else {
				deletes++
			}
		}
	}
	return writes, deletes
}
