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

// node is the in-memory representation of a trie node. Unlike the
// teacher's production trie, nodes here are never inlined below the
// 32-byte threshold: every child that is itself a node (a fullNode's
// children, an extension shortNode's child) is always a reference
// (hashNode) to a node stored under its own hash in the backing
// database. Only a leaf's valueNode is embedded in its parent. This keeps encode/decode unambiguous without the
// RLP-list-vs-string sniffing the real trie needs, at the cost of
// writing slightly more nodes for small tries. See DESIGN.md.
type node interface{}

type (
	// fullNode branches on one hex digit (0-15). Keys handled by this
	// trie are always fixed-length (32-byte keccak outputs), so no key
	// is ever a strict prefix of another and a value can never live at
	// a branch node — hence 16 children, not 17. Grounded on the
	// "full nodes without a value slot" optimization documented in the
	// turbotrie/ludicroustrie design notes in the pack.
	fullNode struct {
		Children [16]node
	}

	// shortNode represents either an extension (Val is a hashNode
	// pointing at a fullNode) or a leaf (Val is a valueNode, and Key's
	// hex encoding carries the terminator). Key is stored here in raw
	// hex-nibble form; it is only converted to its compact encoding at
	// RLP-encode time.
	shortNode struct {
		Key []byte
		Val node
	}

	// hashNode is a 32-byte reference to a node persisted in the
	// backing database, keyed by that same hash.
	hashNode []byte

	// valueNode is a leaf's raw value, embedded directly in its parent
	// shortNode's encoding rather than stored under its own hash.
	valueNode []byte
)

func (n *fullNode) copy() *fullNode {
	cp := *n
	return &cp
}
