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

// Package hashtrie adapts a trie.Trie to the basedb.Database interface,
// so that the trie can sit transparently beneath accountdb.CachedRLPDB
// in the same way a plain key-value store would. Every key handed to Set,
// Get, Delete and Contains is hashed with keccak256 before it reaches
// the trie, mirroring how go-ethereum's secure trie keys both the
// account trie (by address) and every storage trie (by slot).
package hashtrie

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rjl493456442/evmstate/basedb"
	"github.com/rjl493456442/evmstate/trie"
)

// Trie is a basedb.Database backed by a hexary Merkle-Patricia trie,
// keyed by the keccak256 hash of the caller-supplied key rather than
// the raw key itself.
type Trie struct {
	t *trie.Trie
}

// New returns an empty Trie backed by db.
func New(db basedb.Database) *Trie {
	return &Trie{t: trie.New(db)}
}

// Open rebinds a Trie to a previously computed root hash.
func Open(db basedb.Database, root common.Hash) *Trie {
	return &Trie{t: trie.NewAt(db, root)}
}

// Root returns the trie's current root hash.
func (t *Trie) Root() common.Hash {
	return t.t.RootHash()
}

// SetRoot rebinds the trie's view to an existing root in the backing
// database, the mutable root_hash setter the spec's HashTrie exposes.
func (t *Trie) SetRoot(root common.Hash) {
	t.t.SetRootHash(root)
}

// Get implements basedb.Database.
func (t *Trie) Get(key []byte) ([]byte, bool) {
	v, ok, err := t.t.Get(hash(key))
	if err != nil {
		return nil, false
	}
	return v, ok
}

// Set implements basedb.Database.
func (t *Trie) Set(key, value []byte) error {
	return t.t.Update(hash(key), value)
}

// Delete implements basedb.Database. Unlike basedb.ErrNotFound's usual
// contract, deleting an absent key from a trie is a harmless no-op,
// since the trie has no notion of a failed delete distinct from one
// that found nothing to remove.
func (t *Trie) Delete(key []byte) error {
	return t.t.Delete(hash(key))
}

// Contains implements basedb.Database.
func (t *Trie) Contains(key []byte) bool {
	return t.t.Contains(hash(key))
}

func hash(key []byte) []byte {
	h := crypto.Keccak256(key)
	return h
}
