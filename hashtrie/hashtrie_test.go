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

package hashtrie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rjl493456442/evmstate/basedb"
	"github.com/rjl493456442/evmstate/trie"
)

func TestSetGetDelete(t *testing.T) {
	db := basedb.NewMemoryDB()
	tr := New(db)

	require.Equal(t, trie.EmptyRootHash, tr.Root())
	require.NoError(t, tr.Set([]byte("addr1"), []byte("account-blob")))

	v, ok := tr.Get([]byte("addr1"))
	require.True(t, ok)
	require.Equal(t, []byte("account-blob"), v)
	require.True(t, tr.Contains([]byte("addr1")))
	require.NotEqual(t, trie.EmptyRootHash, tr.Root())

	require.NoError(t, tr.Delete([]byte("addr1")))
	require.False(t, tr.Contains([]byte("addr1")))
	require.Equal(t, trie.EmptyRootHash, tr.Root())
}

func TestKeysAreHashedBeforeStorage(t *testing.T) {
	db := basedb.NewMemoryDB()
	tr := New(db)
	require.NoError(t, tr.Set([]byte("addr1"), []byte("blob")))

	// The underlying trie engine never sees the raw key: looking it up
	// directly against a trie opened on the same db and root must miss.
	raw := trie.NewAt(db, tr.Root())
	_, ok, err := raw.Get([]byte("addr1"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenRebindsToExistingRoot(t *testing.T) {
	db := basedb.NewMemoryDB()
	tr := New(db)
	require.NoError(t, tr.Set([]byte("addr1"), []byte("blob")))
	root := tr.Root()

	reopened := Open(db, root)
	v, ok := reopened.Get([]byte("addr1"))
	require.True(t, ok)
	require.Equal(t, []byte("blob"), v)
}

func TestSetRootRebindsView(t *testing.T) {
	db := basedb.NewMemoryDB()
	tr := New(db)
	emptyRoot := tr.Root()
	require.NoError(t, tr.Set([]byte("addr1"), []byte("blob")))
	full := tr.Root()

	tr.SetRoot(emptyRoot)
	require.False(t, tr.Contains([]byte("addr1")))

	tr.SetRoot(full)
	require.True(t, tr.Contains([]byte("addr1")))
}
