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

// Package accountdb implements the world-state account API: the
// decoded-record cache (CachedRLPDB) and the per-address balance,
// nonce, code and storage operations built on top of it (AccountDB).
package accountdb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// EmptyRootHash is the root of a storage trie with no entries.
var EmptyRootHash = func() common.Hash {
	return common.BytesToHash(crypto.Keccak256([]byte{0x80}))
}()

// EmptyCodeHash is the keccak of the empty byte string, the code_hash
// carried by every account that has no associated code.
var EmptyCodeHash = crypto.Keccak256Hash(nil)

// Account is the 4-tuple record stored in the account trie under
// keccak(address). Nonce and Balance are carried as full 256-bit
// integers rather than go-ethereum mainnet's uint64 nonce: the account
// record this repository implements is the one described in the
// storage-core specification, which defines nonce as an unsigned
// 256-bit quantity like balance.
type Account struct {
	Nonce       uint256.Int
	Balance     uint256.Int
	StorageRoot common.Hash
	CodeHash    common.Hash
}

// emptyAccount is the zero-valued record returned for any address
// never written, and the CachedRLPDB default_result for the account
// schema.
var emptyAccount = Account{
	StorageRoot: EmptyRootHash,
	CodeHash:    EmptyCodeHash,
}

// IsZero reports whether a equals the default, never-written account
// shape: zero nonce, zero balance, empty storage, no code.
func (a Account) IsZero() bool {
	return a.Nonce.IsZero() && a.Balance.IsZero() &&
		a.StorageRoot == EmptyRootHash && a.CodeHash == EmptyCodeHash
}
