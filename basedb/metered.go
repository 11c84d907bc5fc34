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

package basedb

import "github.com/ethereum/go-ethereum/metrics"

// Metered wraps a Database and feeds every Get (and every miss), Set
// and Delete through a set of registered meters; Contains is passed
// through unmetered. It is purely optional instrumentation; State and
// its collaborators never require it.
type Metered struct {
	db Database

	getMeter    metrics.Meter
	setMeter    metrics.Meter
	deleteMeter metrics.Meter
	missMeter   metrics.Meter
}

// NewMetered wraps db, registering meters under the given prefix
// (e.g. "state/db/disk/").
func NewMetered(db Database, prefix string) *Metered {
	return &Metered{
		db:          db,
		getMeter:    metrics.NewRegisteredMeter(prefix+"get", nil),
		setMeter:    metrics.NewRegisteredMeter(prefix+"set", nil),
		deleteMeter: metrics.NewRegisteredMeter(prefix+"delete", nil),
		missMeter:   metrics.NewRegisteredMeter(prefix+"miss", nil),
	}
}

func (m *Metered) Get(key []byte) ([]byte, bool) {
	v, ok := m.db.Get(key)
	m.getMeter.Mark(1)
	if !ok {
		m.missMeter.Mark(1)
	}
	return v, ok
}

func (m *Metered) Set(key, value []byte) error {
	m.setMeter.Mark(1)
	return m.db.Set(key, value)
}

func (m *Metered) Delete(key []byte) error {
	m.deleteMeter.Mark(1)
	return m.db.Delete(key)
}

func (m *Metered) Contains(key []byte) bool {
	return m.db.Contains(key)
}
