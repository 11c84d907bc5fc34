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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/rjl493456442/evmstate/accountdb"
)

// OverrideAccount describes a one-off state override applied to a
// single account ahead of a simulated call, the way eth_call and
// debug_traceCall accept a state-override set: every non-nil field
// replaces that part of the account, everything left nil is
// untouched. State replaces storage wholesale; StateDiff patches it.
// Setting both is nonsensical and State takes priority.
type OverrideAccount struct {
	Nonce     *uint64
	Code      *[]byte
	Balance   *uint256.Int
	State     map[common.Hash]common.Hash
	StateDiff map[common.Hash]common.Hash
}

// overrideMarshaling lists the JSON field type overrides used by the
// generated MarshalJSON/UnmarshalJSON in state_override_json.go.
type overrideMarshaling struct {
	Nonce   *hexutil.Uint64
	Code    *hexutil.Bytes
	Balance *hexutil.U256
}

// Apply writes the override into addr's account via accounts.
func (o *OverrideAccount) Apply(accounts *accountdb.AccountDB, addr common.Address) error {
	if o.Nonce != nil {
		var n uint256.Int
		n.SetUint64(*o.Nonce)
		if err := accounts.SetNonce(addr, n); err != nil {
			return err
		}
	}
	if o.Code != nil {
		if err := accounts.SetCode(addr, *o.Code); err != nil {
			return err
		}
	}
	if o.Balance != nil {
		if err := accounts.SetBalance(addr, *o.Balance); err != nil {
			return err
		}
	}
	switch {
	case o.State != nil:
		if err := accounts.DeleteStorage(addr); err != nil {
			return err
		}
		for k, v := range o.State {
			if err := setSlot(accounts, addr, k, v); err != nil {
				return err
			}
		}
	case o.StateDiff != nil:
		for k, v := range o.StateDiff {
			if err := setSlot(accounts, addr, k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setSlot(accounts *accountdb.AccountDB, addr common.Address, key, value common.Hash) error {
	var slot, val uint256.Int
	slot.SetBytes(key.Bytes())
	val.SetBytes(value.Bytes())
	return accounts.SetStorage(addr, slot, val)
}
