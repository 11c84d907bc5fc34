// Copyright 2017 The go-ethereum Authors
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

// Package state ties the journaling database, the account trie and the
// account API together into the single facade the execution engine
// drives: snapshot before a call, mutate through AccountDB, revert or
// commit, and eventually persist to the backing store.
package state

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/rjl493456442/evmstate/accountdb"
	"github.com/rjl493456442/evmstate/basedb"
	"github.com/rjl493456442/evmstate/hashtrie"
	"github.com/rjl493456442/evmstate/journal"
)

// Snapshot is the pair State.Snapshot hands back and State.Revert or
// State.Commit later consumes: a captured trie root plus a still-open
// journal changeset.
type Snapshot struct {
	root common.Hash
	id   journal.CheckpointID
}

// State composes a JournalDB over a supplied BaseDB, a HashTrie over
// that journal, and an AccountDB built from the two. It is the single
// entry point the execution engine is expected to drive.
type State struct {
	db       *journal.DB
	trie     *hashtrie.Trie
	accounts *accountdb.AccountDB
	cfg      Config
}

// Config tunes construction-time knobs of a State that have sane
// defaults and rarely need overriding, following the same
// config-struct-over-package-global convention the rest of this
// repository's constructors use (CachedRLPDB's capacity parameter,
// Metered's meter prefix).
type Config struct {
	// AccountCacheSize overrides the decoded-account LRU capacity. Zero
	// selects the package default.
	AccountCacheSize int
}

// New builds a brand-new State backed by db, rooted at
// accountdb.EmptyRootHash.
func New(db basedb.Database) *State {
	return newAt(db, accountdb.EmptyRootHash, Config{})
}

// NewAt is New, but binds the trie to an existing, already-persisted
// root immediately instead of starting from the canonical empty trie.
// root must either be accountdb.EmptyRootHash or a root previously
// produced by Persist against the same db.
func NewAt(db basedb.Database, root common.Hash) *State {
	return newAt(db, root, Config{})
}

// NewWithConfig is NewAt with an explicit Config.
func NewWithConfig(db basedb.Database, root common.Hash, cfg Config) *State {
	return newAt(db, root, cfg)
}

func newAt(db basedb.Database, root common.Hash, cfg Config) *State {
	j := journal.New(db)
	tr := hashtrie.Open(j, root)
	return &State{
		db:       j,
		trie:     tr,
		accounts: accountdb.NewWithCacheSize(tr, j, cfg.AccountCacheSize),
		cfg:      cfg,
	}
}

// Root returns the account trie's current root hash.
func (s *State) Root() common.Hash {
	return s.trie.Root()
}

// Accounts returns the world-state API bound to this State's current
// view. The returned *accountdb.AccountDB is invalidated by Revert,
// which rebuilds it against the restored trie; callers should not
// retain it across a Revert call.
func (s *State) Accounts() *accountdb.AccountDB {
	return s.accounts
}

// Snapshot captures the current root and opens a new journal
// changeset, returning both as an opaque token for Revert or Commit.
func (s *State) Snapshot() Snapshot {
	return Snapshot{root: s.trie.Root(), id: s.db.Record()}
}

// Revert restores the trie to snap's root and discards every journal
// changeset opened since snap was taken, including snap's own layer.
// The AccountDB is rebuilt from scratch so its decoded-record cache
// cannot serve a stale entry from the discarded layers.
func (s *State) Revert(snap Snapshot) {
	s.trie.SetRoot(snap.root)
	s.db.Discard(snap.id)
	s.accounts = accountdb.NewWithCacheSize(s.trie, s.db, s.cfg.AccountCacheSize)
}

// Commit collapses every journal changeset opened since snap into
// snap's parent. snap's captured root is not consulted: committing
// only folds journal layers together, it never rebinds the trie.
func (s *State) Commit(snap Snapshot) {
	s.db.Commit(snap.id)
}

// Persist flushes the journal to the backing database and returns a
// summary of what was written.
func (s *State) Persist() (*Update, error) {
	stats := s.accounts.Stats()
	if err := s.db.Persist(); err != nil {
		return nil, err
	}
	s.accounts.ResetStats()
	update := &Update{
		Root:            s.trie.Root(),
		AccountsUpdated: stats.AccountUpdates,
		AccountsDeleted: stats.AccountDeletes,
		StorageUpdated:  stats.StorageUpdates,
		StorageDeleted:  stats.StorageDeletes,
		CodesWritten:    stats.CodeWrites,
	}
	log.Debug("Persisted state", "root", update.Root, "accounts", update.AccountsUpdated,
		"deletes", update.AccountsDeleted, "storage", update.StorageUpdated, "codes", update.CodesWritten)
	return update, nil
}
