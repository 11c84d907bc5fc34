// Copyright 2023 The go-ethereum Authors
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

package state

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/rjl493456442/evmstate/accountdb"
	"github.com/rjl493456442/evmstate/basedb"
	"github.com/rjl493456442/evmstate/hashtrie"
)

// StateReader gives read-only access to a state rooted at a fixed,
// already-persisted root hash, without going through a journal write
// path. It is what a caller reaches for to inspect a historical root
// (or the live root, from a second handle) without risking a mutation.
type StateReader struct {
	accounts *accountdb.AccountDB
}

// NewReader opens a StateReader against root. db is consulted directly,
// bypassing any journal overlay, so root must already be reachable in
// db (i.e. persisted).
func NewReader(db basedb.Database, root common.Hash) *StateReader {
	tr := hashtrie.Open(db, root)
	return &StateReader{accounts: accountdb.New(tr, db)}
}

// GetBalance returns addr's balance.
func (r *StateReader) GetBalance(addr common.Address) (uint256.Int, error) {
	return r.accounts.GetBalance(addr)
}

// GetNonce returns addr's nonce.
func (r *StateReader) GetNonce(addr common.Address) (uint256.Int, error) {
	return r.accounts.GetNonce(addr)
}

// GetCode returns addr's code, or an empty slice if it has none.
func (r *StateReader) GetCode(addr common.Address) ([]byte, error) {
	return r.accounts.GetCode(addr)
}

// GetCodeHash returns addr's code_hash.
func (r *StateReader) GetCodeHash(addr common.Address) (common.Hash, error) {
	return r.accounts.GetCodeHash(addr)
}

// GetStorage returns the value stored at addr's slot, or zero.
func (r *StateReader) GetStorage(addr common.Address, slot uint256.Int) (uint256.Int, error) {
	return r.accounts.GetStorage(addr, slot)
}

// AccountExists reports whether addr's record differs from the zero
// account shape.
func (r *StateReader) AccountExists(addr common.Address) (bool, error) {
	return r.accounts.AccountExists(addr)
}
