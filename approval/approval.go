// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package approval - single slot spender delegation per token
//
// each token carries at most one approved spender; a new approval
// silently supersedes the old one, there is no multi-spender
// allowance
package approval

import (
	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/exchange"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/ownership"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
	"github.com/splyse/nftd/util"
)

// Approve - set or clear the delegated spender for one token
//
// owner is the address the caller claims to act for; an intermediate
// contract that is not a whitelisted exchange is forced to act as
// itself, so it can never spend a relayed signature on some other
// account's holdings.  The returned event must only be emitted after
// the enclosing transaction commits.
func Approve(trx storage.Transaction, h host.Host, owner address.Address, spender address.Address, id uint64, revoke bool) (event.Event, error) {

	if owner.IsZero() || spender.IsZero() {
		return nil, fault.InvalidAddress
	}

	id = token.NormaliseID(id)

	record, err := ownership.Fetch(trx, id)
	if nil != err {
		return nil, err
	}

	callerIsExchange := exchange.IsWhitelisted(h.CallingContract())

	acting := host.ActingOwner(h, owner, callerIsExchange)
	if acting != record.Owner {
		return nil, fault.NotTokenOwner
	}

	// a whitelisted exchange settles consent collected off-ledger,
	// everyone else must prove control of the owner address
	if !callerIsExchange {
		if err := host.Authenticate(h, record.Owner); nil != err {
			return nil, err
		}
	}

	if revoke {
		record.Approved = address.Zero
		ownership.Store(trx, id, record)
		return event.Revoke{Owner: record.Owner, ID: id}, nil
	}

	if record.Owner == spender {
		return nil, fault.ApprovalToSelf
	}

	// overwrite, never merge: a second approval supersedes the first
	record.Approved = spender
	ownership.Store(trx, id, record)
	return event.Approve{Owner: record.Owner, Spender: spender, ID: id}, nil
}

// AllowanceOf - the active delegation of a token
//
// a zero spender with nil error means no approval is set, which is
// distinct from the token not existing at all
func AllowanceOf(id uint64) (address.Address, address.Address, error) {
	packed := storage.Pool.Ownership.Get(util.IDToKey(token.NormaliseID(id)))
	if nil == packed {
		return address.Zero, address.Zero, fault.TokenDoesNotExist
	}
	record, err := ownership.UnpackRecord(packed)
	if nil != err {
		return address.Zero, address.Zero, err
	}
	return record.Owner, record.Approved, nil
}
