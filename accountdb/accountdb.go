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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/rjl493456442/evmstate/basedb"
	"github.com/rjl493456442/evmstate/hashtrie"
)

// AccountDB is the world-state API: per-address balance, nonce, code
// and storage, backed by a decoded-record cache over the account trie
// and a raw database shared by code blobs and per-account storage
// tries. Address and 256-bit-integer arguments are validated by
// construction: common.Address is a fixed 20-byte array type and
// uint256.Int a fixed 4-word representation, so there is no
// "non-canonical address" or "out-of-range integer" state to reject at
// the API boundary.
type AccountDB struct {
	accounts *CachedRLPDB[Account]
	raw      basedb.Database

	stats Stats
}

// Stats counts the mutations an AccountDB has performed since
// construction or the last ResetStats call. It is what State.Persist
// summarizes into an Update.
type Stats struct {
	AccountUpdates int
	AccountDeletes int
	StorageUpdates int
	StorageDeletes int
	CodeWrites     int
}

// New builds an AccountDB with the default decoded-record cache size.
// accountTrie is the HashTrie rooted at the current state root; raw is
// the database code blobs and storage-trie nodes are written to and
// read from (ordinarily the same JournalDB the account trie itself
// sits on top of, since every key involved is content-addressed and
// collisions cannot occur).
func New(accountTrie *hashtrie.Trie, raw basedb.Database) *AccountDB {
	return NewWithCacheSize(accountTrie, raw, 0)
}

// NewWithCacheSize is New with an explicit account-record cache
// capacity; a size of 0 selects defaultCacheSize.
func NewWithCacheSize(accountTrie *hashtrie.Trie, raw basedb.Database, cacheSize int) *AccountDB {
	return &AccountDB{
		accounts: NewCachedRLPDB[Account](accountTrie, cacheSize).WithDefault(emptyAccount),
		raw:      raw,
	}
}

func (a *AccountDB) account(addr common.Address) (Account, error) {
	return a.accounts.Get(addr.Bytes())
}

func (a *AccountDB) putAccount(addr common.Address, acc Account) error {
	a.stats.AccountUpdates++
	return a.accounts.Set(addr.Bytes(), acc)
}

// Stats returns the mutation counts accumulated so far.
func (a *AccountDB) Stats() Stats {
	return a.stats
}

// ResetStats zeroes the accumulated mutation counts, typically called
// right after a State.Persist has summarized them.
func (a *AccountDB) ResetStats() {
	a.stats = Stats{}
}

// --- Balance ---------------------------------------------------------

// GetBalance returns addr's current balance.
func (a *AccountDB) GetBalance(addr common.Address) (uint256.Int, error) {
	acc, err := a.account(addr)
	return acc.Balance, err
}

// SetBalance overwrites addr's balance.
func (a *AccountDB) SetBalance(addr common.Address, balance uint256.Int) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	acc.Balance = balance
	return a.putAccount(addr, acc)
}

// DeltaBalance adds delta (which may represent a negative change via
// the caller's own sign convention on the 256-bit ring) to addr's
// balance.
func (a *AccountDB) DeltaBalance(addr common.Address, delta uint256.Int) error {
	cur, err := a.GetBalance(addr)
	if err != nil {
		return err
	}
	var next uint256.Int
	next.Add(&cur, &delta)
	return a.SetBalance(addr, next)
}

// --- Nonce -------------------------------------------------------------

// GetNonce returns addr's current nonce.
func (a *AccountDB) GetNonce(addr common.Address) (uint256.Int, error) {
	acc, err := a.account(addr)
	return acc.Nonce, err
}

// SetNonce overwrites addr's nonce.
func (a *AccountDB) SetNonce(addr common.Address, nonce uint256.Int) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	acc.Nonce = nonce
	return a.putAccount(addr, acc)
}

// IncrementNonce sets addr's nonce to its current value plus one.
func (a *AccountDB) IncrementNonce(addr common.Address) error {
	cur, err := a.GetNonce(addr)
	if err != nil {
		return err
	}
	var next uint256.Int
	next.AddUint64(&cur, 1)
	return a.SetNonce(addr, next)
}

// --- Code ----------------------------------------------------------------

// SetCode stores code under its own keccak hash in the raw store and
// points addr's account record at that hash.
func (a *AccountDB) SetCode(addr common.Address, code []byte) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	hash := crypto.Keccak256Hash(code)
	if err := a.raw.Set(hash.Bytes(), code); err != nil {
		return err
	}
	a.stats.CodeWrites++
	acc.CodeHash = hash
	return a.putAccount(addr, acc)
}

// GetCode returns the code currently associated with addr, or an empty
// slice if addr has none.
func (a *AccountDB) GetCode(addr common.Address) ([]byte, error) {
	hash, err := a.GetCodeHash(addr)
	if err != nil {
		return nil, err
	}
	code, ok := a.raw.Get(hash.Bytes())
	if !ok {
		return []byte{}, nil
	}
	return code, nil
}

// GetCodeHash returns addr's account record's code_hash.
func (a *AccountDB) GetCodeHash(addr common.Address) (common.Hash, error) {
	acc, err := a.account(addr)
	return acc.CodeHash, err
}

// DeleteCode resets addr's code_hash to EmptyCodeHash. The blob itself
// remains in the content-addressed store, unreferenced but not erased.
func (a *AccountDB) DeleteCode(addr common.Address) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	acc.CodeHash = EmptyCodeHash
	return a.putAccount(addr, acc)
}

// --- Storage -------------------------------------------------------------

// slotKey is the 32-byte big-endian padded encoding of a storage slot,
// the key presented to the per-account HashTrie (which keccak-hashes
// it again before touching the underlying trie engine).
func slotKey(slot uint256.Int) []byte {
	var b [32]byte
	slot.WriteToSlice(b[:])
	return b[:]
}

// GetStorage returns the value stored at addr's slot, or zero if the
// slot was never written or has been deleted.
func (a *AccountDB) GetStorage(addr common.Address, slot uint256.Int) (uint256.Int, error) {
	acc, err := a.account(addr)
	if err != nil {
		return uint256.Int{}, err
	}
	storage := hashtrie.Open(a.raw, acc.StorageRoot)
	enc, ok := storage.Get(slotKey(slot))
	if !ok {
		return uint256.Int{}, nil
	}
	var raw []byte
	if err := rlp.DecodeBytes(enc, &raw); err != nil {
		return uint256.Int{}, err
	}
	var v uint256.Int
	v.SetBytes(raw)
	return v, nil
}

// SetStorage writes value at addr's slot, rewriting the account record
// with the storage trie's new root. Writing the zero value deletes the
// slot instead, per the "writing zero deletes" convention.
func (a *AccountDB) SetStorage(addr common.Address, slot, value uint256.Int) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	storage := hashtrie.Open(a.raw, acc.StorageRoot)
	key := slotKey(slot)
	if value.IsZero() {
		if err := storage.Delete(key); err != nil {
			return err
		}
		a.stats.StorageDeletes++
	} else {
		enc, err := rlp.EncodeToBytes(common.TrimLeftZeroes(value.Bytes()))
		if err != nil {
			return err
		}
		if err := storage.Set(key, enc); err != nil {
			return err
		}
		a.stats.StorageUpdates++
	}
	acc.StorageRoot = storage.Root()
	return a.putAccount(addr, acc)
}

// DeleteStorage rewrites addr's account with an empty storage root,
// discarding every slot. The trie nodes of the abandoned storage trie
// are left in the raw store; they are not reference-counted or
// collected.
func (a *AccountDB) DeleteStorage(addr common.Address) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	acc.StorageRoot = EmptyRootHash
	return a.putAccount(addr, acc)
}

// --- Account-level queries ------------------------------------------------

// AccountExists reports whether addr's stored record differs from the
// zero account shape.
func (a *AccountDB) AccountExists(addr common.Address) (bool, error) {
	acc, err := a.account(addr)
	if err != nil {
		return false, err
	}
	return !acc.IsZero(), nil
}

// AccountHasCodeOrNonce reports whether addr has a non-zero nonce or
// any associated code.
func (a *AccountDB) AccountHasCodeOrNonce(addr common.Address) (bool, error) {
	acc, err := a.account(addr)
	if err != nil {
		return false, err
	}
	return !acc.Nonce.IsZero() || acc.CodeHash != EmptyCodeHash, nil
}

// AccountIsEmpty reports whether addr is "empty" per EIP-161: zero
// nonce, zero balance, and no code.
func (a *AccountDB) AccountIsEmpty(addr common.Address) (bool, error) {
	acc, err := a.account(addr)
	if err != nil {
		return false, err
	}
	hasCodeOrNonce := !acc.Nonce.IsZero() || acc.CodeHash != EmptyCodeHash
	return !hasCodeOrNonce && acc.Balance.IsZero(), nil
}

// TouchAccount re-assigns addr's fetched record to itself, anchoring it
// in the decoded-record cache (and, transitively, guaranteeing the
// account trie holds an up-to-date encoding even if nothing about the
// record actually changed).
func (a *AccountDB) TouchAccount(addr common.Address) error {
	acc, err := a.account(addr)
	if err != nil {
		return err
	}
	return a.putAccount(addr, acc)
}

// DeleteAccount removes addr's entry from the account trie entirely.
func (a *AccountDB) DeleteAccount(addr common.Address) error {
	a.stats.AccountDeletes++
	log.Debug("Deleted account", "address", addr)
	return a.accounts.Delete(addr.Bytes())
}
