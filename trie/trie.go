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

// Package trie implements a hexary Merkle-Patricia trie over any
// basedb.Database. It plays the role spec.md marks as an external
// collaborator ("the trie implementation itself ... assumed available
// as a component providing get/set/delete/root_hash"); no published Go
// module exposes exactly that mutate-in-place contract, so it is
// implemented here, in the teacher's idiom, rather than hand-rolled
// inside the state package.
package trie

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rjl493456442/evmstate/basedb"
)

// EmptyRootHash is the root hash of a trie with no entries: the keccak
// of the RLP encoding of the empty string, exactly as in mainnet
// go-ethereum.
var EmptyRootHash = crypto.Keccak256Hash([]byte{0x80})

// MissingNodeError is returned when a referenced node cannot be found
// in the backing database — a corrupted or incomplete store.
type MissingNodeError struct {
	NodeHash common.Hash
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("missing trie node %x", e.NodeHash)
}

var errEmptyKey = errors.New("trie: empty key")

// Trie is a hexary Merkle-Patricia trie. The zero value is not usable;
// construct with New or NewAt. A Trie is not safe for concurrent use,
// matching the single-writer model of the rest of this repository.
type Trie struct {
	db   basedb.Database
	root common.Hash
}

// New returns a Trie with no entries, backed by db.
func New(db basedb.Database) *Trie {
	return &Trie{db: db, root: EmptyRootHash}
}

// NewAt returns a Trie backed by db and rooted at root. The root is not
// validated eagerly; a MissingNodeError surfaces on first access if the
// root's node cannot be resolved.
func NewAt(db basedb.Database, root common.Hash) *Trie {
	return &Trie{db: db, root: root}
}

// RootHash returns the trie's current root hash.
func (t *Trie) RootHash() common.Hash {
	return t.root
}

// SetRootHash rebinds the trie's view to an existing root in the
// backing database, discarding any uncommitted in-memory state (there
// is none: every mutation is written through immediately, see Update).
func (t *Trie) SetRootHash(root common.Hash) {
	t.root = root
}

// Get returns the value stored under key, or ok=false if absent.
func (t *Trie) Get(key []byte) (value []byte, ok bool, err error) {
	if len(key) == 0 {
		return nil, false, errEmptyKey
	}
	root, err := t.resolveRoot()
	if err != nil {
		return nil, false, err
	}
	v, err := t.get(root, keybytesToHex(key))
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (t *Trie) get(n node, key []byte) (valueNode, error) {
	switch n := n.(type) {
	case nil:
		return nil, nil
	case valueNode:
		return n, nil
	case *shortNode:
		if len(key) < len(n.Key) || prefixLen(key, n.Key) != len(n.Key) {
			return nil, nil
		}
		return t.get(n.Val, key[len(n.Key):])
	case *fullNode:
		if len(key) == 0 {
			return nil, nil
		}
		return t.get(n.Children[key[0]], key[1:])
	case hashNode:
		rn, err := t.resolve(n)
		if err != nil {
			return nil, err
		}
		return t.get(rn, key)
	default:
		return nil, fmt.Errorf("trie: unknown node type %T", n)
	}
}

// Contains reports whether key is present.
func (t *Trie) Contains(key []byte) bool {
	_, ok, err := t.Get(key)
	return err == nil && ok
}

// Update associates key with value, overwriting any existing value.
// An empty value is treated as Delete of key (this mirrors the
// storage-trie convention described in spec.md §3, invariant 3).
func (t *Trie) Update(key, value []byte) error {
	if len(key) == 0 {
		return errEmptyKey
	}
	if len(value) == 0 {
		return t.Delete(key)
	}
	root, err := t.resolveRoot()
	if err != nil {
		return err
	}
	_, newRoot, err := t.insert(root, keybytesToHex(key), valueNode(value))
	if err != nil {
		return err
	}
	return t.commit(newRoot)
}

func (t *Trie) insert(n node, key []byte, value valueNode) (bool, node, error) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok && string(v) == string(value) {
			return false, v, nil
		}
		return true, value, nil
	}
	switch n := n.(type) {
	case nil:
		return true, &shortNode{Key: append([]byte(nil), key...), Val: value}, nil

	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		if matchlen == len(n.Key) {
			dirty, nn, err := t.insert(n.Val, key[matchlen:], value)
			if !dirty || err != nil {
				return false, n, err
			}
			return true, &shortNode{Key: n.Key, Val: nn}, nil
		}
		branch := &fullNode{}
		branch.Children[n.Key[matchlen]] = splitChild(n.Key[matchlen+1:], n.Val)
		var err error
		_, branch.Children[key[matchlen]], err = t.insert(nil, key[matchlen+1:], value)
		if err != nil {
			return false, nil, err
		}
		if matchlen == 0 {
			return true, branch, nil
		}
		return true, &shortNode{Key: append([]byte(nil), key[:matchlen]...), Val: branch}, nil

	case *fullNode:
		dirty, nn, err := t.insert(n.Children[key[0]], key[1:], value)
		if !dirty || err != nil {
			return false, n, err
		}
		cp := n.copy()
		cp.Children[key[0]] = nn
		return true, cp, nil

	case hashNode:
		rn, err := t.resolve(n)
		if err != nil {
			return false, nil, err
		}
		dirty, nn, err := t.insert(rn, key, value)
		if !dirty || err != nil {
			return false, rn, err
		}
		return true, nn, nil

	default:
		return false, nil, fmt.Errorf("trie: unknown node type %T", n)
	}
}

// splitChild re-homes the part of a shortNode left below the new
// branch when that shortNode is split: the remaining key nibbles, if
// any, become a new shortNode over the original child, which is a
// leaf's valueNode or an extension's child reference.
func splitChild(key []byte, val node) node {
	if len(key) == 0 {
		return val
	}
	return &shortNode{Key: append([]byte(nil), key...), Val: val}
}

// Delete removes key. It is a no-op (not an error) if key is absent,
// consistent with spec.md's "writing zero deletes" convention where
// the caller may delete a slot that was never written.
func (t *Trie) Delete(key []byte) error {
	if len(key) == 0 {
		return errEmptyKey
	}
	root, err := t.resolveRoot()
	if err != nil {
		return err
	}
	_, newRoot, err := t.delete(root, keybytesToHex(key))
	if err != nil {
		return err
	}
	return t.commit(newRoot)
}

func (t *Trie) delete(n node, key []byte) (bool, node, error) {
	switch n := n.(type) {
	case nil:
		return false, nil, nil

	case valueNode:
		return true, nil, nil

	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		if matchlen < len(n.Key) {
			return false, n, nil
		}
		dirty, child, err := t.delete(n.Val, key[matchlen:])
		if !dirty || err != nil {
			return false, n, err
		}
		switch child := child.(type) {
		case nil:
			return true, nil, nil
		case *shortNode:
			return true, &shortNode{Key: concat(n.Key, child.Key...), Val: child.Val}, nil
		default:
			return true, &shortNode{Key: n.Key, Val: child}, nil
		}

	case *fullNode:
		dirty, nn, err := t.delete(n.Children[key[0]], key[1:])
		if !dirty || err != nil {
			return false, n, err
		}
		cp := n.copy()
		cp.Children[key[0]] = nn

		pos := -1
		for i, child := range cp.Children {
			if child != nil {
				if pos == -1 {
					pos = i
				} else {
					pos = -2
					break
				}
			}
		}
		if pos >= 0 {
			child := cp.Children[pos]
			if hn, ok := child.(hashNode); ok {
				resolved, err := t.resolve(hn)
				if err != nil {
					return false, nil, err
				}
				child = resolved
			}
			if cnode, ok := child.(*shortNode); ok {
				return true, &shortNode{Key: concat([]byte{byte(pos)}, cnode.Key...), Val: cnode.Val}, nil
			}
			return true, &shortNode{Key: []byte{byte(pos)}, Val: cp.Children[pos]}, nil
		}
		return true, cp, nil

	case hashNode:
		rn, err := t.resolve(n)
		if err != nil {
			return false, nil, err
		}
		dirty, nn, err := t.delete(rn, key)
		if !dirty || err != nil {
			return false, rn, err
		}
		return true, nn, nil

	default:
		return false, nil, fmt.Errorf("trie: unknown node type %T", n)
	}
}

func concat(a []byte, b ...byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// resolveRoot loads the current root node, treating the canonical empty
// root as an empty (nil) trie without touching the database.
func (t *Trie) resolveRoot() (node, error) {
	if t.root == EmptyRootHash || t.root == (common.Hash{}) {
		return nil, nil
	}
	return t.resolve(hashNode(t.root.Bytes()))
}

// resolve loads and decodes the node referenced by n's hash.
func (t *Trie) resolve(n hashNode) (node, error) {
	enc, ok := t.db.Get(n)
	if !ok {
		return nil, &MissingNodeError{NodeHash: common.BytesToHash(n)}
	}
	return decodeNode(enc)
}

// commit writes every newly-constructed node in the tree rooted at n to
// the database, keyed by its keccak hash, and rebinds t.root to the
// resulting hash. Nodes that were untouched by the mutation arrive here
// already as hashNode and are not re-written.
func (t *Trie) commit(n node) error {
	if n == nil {
		t.root = EmptyRootHash
		return nil
	}
	h, err := t.hashAndStore(n)
	if err != nil {
		return err
	}
	t.root = common.BytesToHash(h)
	return nil
}

func (t *Trie) hashAndStore(n node) (hashNode, error) {
	switch n := n.(type) {
	case hashNode:
		return n, nil
	case *shortNode:
		val := n.Val
		if childNode, ok := val.(node); ok {
			if _, isValue := childNode.(valueNode); !isValue {
				stored, err := t.hashAndStore(childNode)
				if err != nil {
					return nil, err
				}
				val = stored
			}
		}
		return t.store(&shortNode{Key: n.Key, Val: val})
	case *fullNode:
		var cp fullNode
		for i, c := range n.Children {
			if c == nil {
				continue
			}
			stored, err := t.hashAndStore(c)
			if err != nil {
				return nil, err
			}
			cp.Children[i] = stored
		}
		return t.store(&cp)
	default:
		return nil, fmt.Errorf("trie: cannot store node of type %T", n)
	}
}

func (t *Trie) store(n node) (hashNode, error) {
	enc, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	hash := crypto.Keccak256(enc)
	if err := t.db.Set(hash, enc); err != nil {
		return nil, err
	}
	return hashNode(hash), nil
}

// encodeNode produces the RLP encoding used both to hash and to
// persist a node. Every child reference is either an empty string
// (absent), a 32-byte hash string (reference to a stored node), or, in
// a leaf shortNode's value position, the raw value bytes.
func encodeNode(n node) ([]byte, error) {
	switch n := n.(type) {
	case *shortNode:
		return rlp.EncodeToBytes([][]byte{hexToCompact(n.Key), rawOf(n.Val)})
	case *fullNode:
		var list [16][]byte
		for i, c := range n.Children {
			list[i] = rawOf(c)
		}
		return rlp.EncodeToBytes(list)
	default:
		return nil, fmt.Errorf("trie: cannot encode node of type %T", n)
	}
}

func rawOf(n node) []byte {
	switch n := n.(type) {
	case nil:
		return nil
	case hashNode:
		return []byte(n)
	case valueNode:
		return []byte(n)
	default:
		panic(fmt.Sprintf("trie: unexpected unstored child of type %T", n))
	}
}

// decodeNode parses a node's RLP encoding, disambiguating a leaf's
// value from an extension's child reference via the compact key's
// terminator flag rather than by sniffing byte length (a value can
// legitimately be 32 bytes long, the same size as a hash reference).
func decodeNode(enc []byte) (node, error) {
	var raw [][]byte
	if err := rlp.DecodeBytes(enc, &raw); err != nil {
		return nil, fmt.Errorf("trie: invalid node encoding: %w", err)
	}
	switch len(raw) {
	case 2:
		key := compactToHex(raw[0])
		if hasTerm(key) {
			return &shortNode{Key: key, Val: valueNode(raw[1])}, nil
		}
		return &shortNode{Key: key, Val: childRef(raw[1])}, nil
	case 16:
		var full fullNode
		for i, c := range raw {
			full.Children[i] = childRef(c)
		}
		return &full, nil
	default:
		return nil, fmt.Errorf("trie: invalid node: %d elements", len(raw))
	}
}

func childRef(b []byte) node {
	if len(b) == 0 {
		return nil
	}
	return hashNode(b)
}
