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

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/rjl493456442/evmstate/accountdb"
	"github.com/rjl493456442/evmstate/basedb"
)

var (
	addrA = common.HexToAddress("0x01")
	addrB = common.HexToAddress("0x02")
)

// S1: fresh state, get_balance(A) == 0, root == EMPTY_ROOT_HASH.
func TestS1FreshState(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	require.Equal(t, accountdb.EmptyRootHash, s.Root())

	bal, err := s.Accounts().GetBalance(addrA)
	require.NoError(t, err)
	require.True(t, bal.IsZero())
}

// S2: set_balance(A, 100) is idempotent on the root.
func TestS2IdempotentBalanceWrite(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(100)))
	bal, err := s.Accounts().GetBalance(addrA)
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(100), bal)

	r1 := s.Root()
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(100)))
	require.Equal(t, r1, s.Root())
}

// S3: slot clearing and independence.
func TestS3StorageWrites(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	acc := s.Accounts()
	require.NoError(t, acc.SetStorage(addrA, *uint256.NewInt(0), *uint256.NewInt(42)))
	require.NoError(t, acc.SetStorage(addrA, *uint256.NewInt(1), *uint256.NewInt(7)))
	require.NoError(t, acc.SetStorage(addrA, *uint256.NewInt(0), *uint256.NewInt(0)))

	v0, err := acc.GetStorage(addrA, *uint256.NewInt(0))
	require.NoError(t, err)
	require.True(t, v0.IsZero())

	v1, err := acc.GetStorage(addrA, *uint256.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(7), v1)
}

// S4: snapshot/revert restores both state and root.
func TestS4SnapshotRevert(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	preRoot := s.Root()

	snap := s.Snapshot()
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(500)))
	require.NoError(t, s.Accounts().SetCode(addrB, []byte{0x60, 0x00}))
	s.Revert(snap)

	bal, err := s.Accounts().GetBalance(addrA)
	require.NoError(t, err)
	require.True(t, bal.IsZero())

	code, err := s.Accounts().GetCode(addrB)
	require.NoError(t, err)
	require.Equal(t, []byte{}, code)

	require.Equal(t, preRoot, s.Root())
}

// S5: code round trip and delete-keeps-blob, mirrored through the facade.
func TestS5CodeLifecycle(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	require.NoError(t, s.Accounts().SetCode(addrA, []byte("abc")))
	h, err := s.Accounts().GetCodeHash(addrA)
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash([]byte("abc")), h)

	require.NoError(t, s.Accounts().DeleteCode(addrA))
	code, err := s.Accounts().GetCode(addrA)
	require.NoError(t, err)
	require.Equal(t, []byte{}, code)

	h, err = s.Accounts().GetCodeHash(addrA)
	require.NoError(t, err)
	require.Equal(t, accountdb.EmptyCodeHash, h)
}

// S6: nested snapshots, one committed, one reverted.
func TestS6NestedSnapshots(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	preRoot := s.Root()

	s1 := s.Snapshot()
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(10)))
	s2 := s.Snapshot()
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(20)))
	s.Commit(s2)
	s.Revert(s1)

	bal, err := s.Accounts().GetBalance(addrA)
	require.NoError(t, err)
	require.True(t, bal.IsZero())
	require.Equal(t, preRoot, s.Root())
}

// Snapshot/commit monotonicity: mutations survive commit+persist.
func TestSnapshotCommitPersist(t *testing.T) {
	backing := basedb.NewMemoryDB()
	s := New(backing)

	snap := s.Snapshot()
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(77)))
	s.Commit(snap)

	update, err := s.Persist()
	require.NoError(t, err)
	require.Equal(t, 1, update.AccountsUpdated)
	require.Equal(t, s.Root(), update.Root)

	// A fresh State rooted at the persisted root must observe the write.
	reopened := NewAt(backing, update.Root)
	bal, err := reopened.Accounts().GetBalance(addrA)
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(77), bal)
}

// Determinism: two states fed the identical mutation sequence converge.
func TestDeterminism(t *testing.T) {
	s1 := New(basedb.NewMemoryDB())
	s2 := New(basedb.NewMemoryDB())

	apply := func(s *State) {
		acc := s.Accounts()
		acc.SetBalance(addrA, *uint256.NewInt(42))
		acc.SetNonce(addrA, *uint256.NewInt(3))
		acc.SetCode(addrB, []byte{0x01, 0x02})
		acc.SetStorage(addrB, *uint256.NewInt(9), *uint256.NewInt(99))
	}
	apply(s1)
	apply(s2)
	require.Equal(t, s1.Root(), s2.Root())
}

func TestReaderObservesPersistedRoot(t *testing.T) {
	backing := basedb.NewMemoryDB()
	s := New(backing)
	require.NoError(t, s.Accounts().SetBalance(addrA, *uint256.NewInt(5)))
	update, err := s.Persist()
	require.NoError(t, err)

	reader := NewReader(backing, update.Root)
	bal, err := reader.GetBalance(addrA)
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(5), bal)
}

func TestOverrideAccountApply(t *testing.T) {
	s := New(basedb.NewMemoryDB())
	nonce := uint64(3)
	code := []byte{0x60, 0x00}
	balance := uint256.NewInt(999)
	override := &OverrideAccount{
		Nonce:   &nonce,
		Code:    &code,
		Balance: balance,
		State: map[common.Hash]common.Hash{
			common.BigToHash(uint256.NewInt(1).ToBig()): common.BigToHash(uint256.NewInt(7).ToBig()),
		},
	}
	require.NoError(t, override.Apply(s.Accounts(), addrA))

	gotNonce, err := s.Accounts().GetNonce(addrA)
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(3), gotNonce)

	gotBal, err := s.Accounts().GetBalance(addrA)
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(999), gotBal)

	gotCode, err := s.Accounts().GetCode(addrA)
	require.NoError(t, err)
	require.Equal(t, code, gotCode)

	slot, err := s.Accounts().GetStorage(addrA, *uint256.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, *uint256.NewInt(7), slot)
}
