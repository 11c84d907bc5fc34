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

package trie

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rjl493456442/evmstate/basedb"
)

func TestEmptyTrieRoot(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	require.Equal(t, EmptyRootHash, tr.RootHash())
}

func TestGetMissingKey(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	_, ok, err := tr.Get([]byte("nope"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUpdateAndGet(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))

	v, ok, err := tr.Get([]byte("key1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("value1"), v)
	require.NotEqual(t, EmptyRootHash, tr.RootHash())
}

func TestUpdateOverwrite(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))
	require.NoError(t, tr.Update([]byte("key1"), []byte("value2")))

	v, ok, err := tr.Get([]byte("key1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("value2"), v)
}

func TestDeleteRestoresEmptyRoot(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))
	require.NoError(t, tr.Delete([]byte("key1")))
	require.Equal(t, EmptyRootHash, tr.RootHash())

	_, ok, err := tr.Get([]byte("key1"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))
	root := tr.RootHash()

	require.NoError(t, tr.Delete([]byte("nope")))
	require.Equal(t, root, tr.RootHash())
}

func TestUpdateWithEmptyValueDeletes(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))
	require.NoError(t, tr.Update([]byte("key1"), nil))

	_, ok, err := tr.Get([]byte("key1"))
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, EmptyRootHash, tr.RootHash())
}

func TestManyKeysRoundTrip(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	n := 200
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("account-key-%04d", i))
		val := []byte(fmt.Sprintf("value-%d", i))
		require.NoError(t, tr.Update(key, val))
	}
	for i := 0; i < n; i++ {
		key := []byte(fmt.Sprintf("account-key-%04d", i))
		want := []byte(fmt.Sprintf("value-%d", i))
		got, ok, err := tr.Get(key)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestDeletingEveryKeyRestoresEmptyRoot(t *testing.T) {
	tr := New(basedb.NewMemoryDB())
	keys := make([][]byte, 50)
	r := rand.New(rand.NewSource(1))
	for i := range keys {
		b := make([]byte, 32)
		r.Read(b)
		keys[i] = b
		require.NoError(t, tr.Update(b, []byte{byte(i + 1)}))
	}
	for _, k := range keys {
		require.NoError(t, tr.Delete(k))
	}
	require.Equal(t, EmptyRootHash, tr.RootHash())
}

func TestDeterminism(t *testing.T) {
	db1, db2 := basedb.NewMemoryDB(), basedb.NewMemoryDB()
	t1, t2 := New(db1), New(db2)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 64; i++ {
		k := make([]byte, 32)
		r.Read(k)
		v := make([]byte, 8)
		r.Read(v)
		require.NoError(t, t1.Update(k, v))
		require.NoError(t, t2.Update(k, v))
	}
	require.Equal(t, t1.RootHash(), t2.RootHash())
}

func TestPersistedRootIsReopenable(t *testing.T) {
	db := basedb.NewMemoryDB()
	tr := New(db)
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))
	require.NoError(t, tr.Update([]byte("key2"), []byte("value2")))
	root := tr.RootHash()

	reopened := NewAt(db, root)
	v, ok, err := reopened.Get([]byte("key1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("value1"), v)
}

func TestMissingNodeError(t *testing.T) {
	db := basedb.NewMemoryDB()
	tr := New(db)
	require.NoError(t, tr.Update([]byte("key1"), []byte("value1")))
	root := tr.RootHash()

	empty := basedb.NewMemoryDB()
	broken := NewAt(empty, root)
	_, _, err := broken.Get([]byte("key1"))
	require.Error(t, err)
	var mnErr *MissingNodeError
	require.ErrorAs(t, err, &mnErr)
}

func TestHexPrefixRoundTrip(t *testing.T) {
	for _, key := range [][]byte{nil, {0x01}, {0xab, 0xcd}, {0x00, 0x00, 0x01}} {
		hex := keybytesToHex(key)
		compact := hexToCompact(hex)
		back := compactToHex(compact)
		require.True(t, bytes.Equal(hex, back), "key %x round-trip mismatch", key)
	}
}
