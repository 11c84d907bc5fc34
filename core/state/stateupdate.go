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
	"github.com/ethereum/go-ethereum/metrics"
)

var (
	accountUpdatedMeter = metrics.NewRegisteredMeter("state/account/updated", nil)
	accountDeletedMeter = metrics.NewRegisteredMeter("state/account/deleted", nil)
	storageUpdatedMeter = metrics.NewRegisteredMeter("state/storage/updated", nil)
	storageDeletedMeter = metrics.NewRegisteredMeter("state/storage/deleted", nil)
	codeWrittenMeter    = metrics.NewRegisteredMeter("state/code/written", nil)
)

// Update summarizes the account, storage and code mutations a single
// State.Persist call flushed to the backing database.
type Update struct {
	Root            common.Hash
	AccountsUpdated int
	AccountsDeleted int
	StorageUpdated  int
	StorageDeleted  int
	CodesWritten    int
}

// SetMetrics uploads the update's counts to the registered meters, the
// same opt-in expensive-metrics gate the rest of this repository uses.
func (u *Update) SetMetrics() {
	if !metrics.EnabledExpensive {
		return
	}
	accountUpdatedMeter.Mark(int64(u.AccountsUpdated))
	accountDeletedMeter.Mark(int64(u.AccountsDeleted))
	storageUpdatedMeter.Mark(int64(u.StorageUpdated))
	storageDeletedMeter.Mark(int64(u.StorageDeleted))
	codeWrittenMeter.Mark(int64(u.CodesWritten))
}
