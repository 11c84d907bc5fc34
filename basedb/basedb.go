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

// Package basedb defines the minimal byte-keyed store that every other
// layer in this repository is built on top of.
package basedb

import "errors"

// ErrNotFound is returned by Delete when the requested key is absent.
// Get does not return an error for a missing key; it reports absence
// through its second return value instead.
var ErrNotFound = errors.New("basedb: key not found")

// Database is the abstract byte-keyed, byte-valued store every layer
// above it is built against. Implementations are not required to be
// safe for concurrent use unless individually documented.
type Database interface {
	// Get returns the value stored under key, or ok=false if absent.
	// The returned slice must not be modified by the caller.
	Get(key []byte) (value []byte, ok bool)

	// Set stores value under key, overwriting any existing value.
	Set(key, value []byte) error

	// Delete removes key. It returns ErrNotFound if key is absent.
	Delete(key []byte) error

	// Contains reports whether key is present.
	Contains(key []byte) bool
}
