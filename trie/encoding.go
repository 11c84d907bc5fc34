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

// Hex-prefix nibble encoding, following the standard Ethereum Merkle
// Patricia trie convention: a key is expanded into nibbles (0-15) with
// a terminator symbol (16) appended to mark a leaf path. The compact
// encoding packs two nibbles per byte and folds the terminator and
// odd-length flags into the first nibble of the first byte.

// keybytesToHex expands key into its nibble representation, with a
// terminator symbol appended.
func keybytesToHex(key []byte) []byte {
	l := len(key)*2 + 1
	nibbles := make([]byte, l)
	for i, b := range key {
		nibbles[i*2] = b / 16
		nibbles[i*2+1] = b % 16
	}
	nibbles[l-1] = 16
	return nibbles
}

// hasTerm reports whether the hex nibble slice ends in the terminator
// symbol, i.e. whether it denotes a leaf path.
func hasTerm(s []byte) bool {
	return len(s) > 0 && s[len(s)-1] == 16
}

// hexToCompact packs a hex nibble slice (terminator included) into its
// compact on-disk encoding.
func hexToCompact(hex []byte) []byte {
	var terminator byte
	if hasTerm(hex) {
		terminator = 1
		hex = hex[:len(hex)-1]
	}
	buf := make([]byte, len(hex)/2+1)
	buf[0] = terminator << 5
	if len(hex)&1 == 1 {
		buf[0] |= 1 << 4
		buf[0] |= hex[0]
		hex = hex[1:]
	}
	decodeNibbles(hex, buf[1:])
	return buf
}

// compactToHex is the inverse of hexToCompact.
func compactToHex(compact []byte) []byte {
	if len(compact) == 0 {
		return compact
	}
	base := keybytesToHex(compact)
	// keybytesToHex appended a terminator; keep it only if the flag
	// nibble marks a leaf (flag 2 or 3).
	if base[0] < 2 {
		base = base[:len(base)-1]
	}
	// apply odd flag.
	chop := 2 - base[0]&1
	return base[chop:]
}

func decodeNibbles(nibbles []byte, bytes []byte) {
	for bi, ni := 0, 0; ni < len(nibbles); bi, ni = bi+1, ni+2 {
		bytes[bi] = nibbles[ni]<<4 | nibbles[ni+1]
	}
}

// prefixLen returns the length of the common prefix of a and b.
func prefixLen(a, b []byte) int {
	var i int
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
