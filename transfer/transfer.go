// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - the ownership transition engine
//
// all ownership changes funnel through here: minting, direct owner
// transfers, delegated spender transfers and exchange settled
// transfers.  A transfer to a programmable recipient notifies it
// synchronously inside the open transaction; the recorded owner is
// re-read after the callback returns so a re-entrant move by the
// recipient invalidates the outer transfer instead of being silently
// overwritten.
package transfer

import (
	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/circulation"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/exchange"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/ownership"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
)

// Mint - create a token and assign its first owner
//
// ids are allocated sequentially from the circulation counter.  A zero
// owner falls back to the configured post-mint contract; minting fails
// if neither is set.  A programmable first owner is notified before
// any record is written, so a callback that re-enters cannot see or
// move the half-minted token; the writes after the callback are the
// authoritative commit of first ownership.
func Mint(trx storage.Transaction, h host.Host, owner address.Address, properties []byte, uri []byte, auxData []byte) (event.Event, error) {

	if 0 == len(properties) {
		return nil, fault.MissingProperties
	}
	if 0 == len(uri) {
		return nil, fault.MissingURI
	}

	if owner.IsZero() {
		owner = token.PostMintContract()
		if owner.IsZero() {
			return nil, fault.InvalidAddress
		}
	}

	id := circulation.NextID(trx)
	if token.Exists(trx, id) {
		return nil, fault.TokenAlreadyExists
	}

	if h.IsContract(owner) {
		accepted, err := h.NotifyTransfer(owner, h.SelfContract(), owner, id, nil)
		if nil != err {
			return nil, err
		}
		if !accepted {
			return nil, fault.TransferRejected
		}

		// the callback may have re-entered the ledger and minted; an
		// id consumed mid-callback makes this mint stale, the inner
		// mint's records must stand
		if token.Exists(trx, id) {
			return nil, fault.TransferStale
		}
	}

	token.Create(trx, id, properties, uri, auxData)
	ownership.Store(trx, id, &ownership.Record{Owner: owner})
	ownership.IndexAdd(trx, owner, id)
	circulation.Advance(trx)

	return event.Mint{Owner: owner, ID: id}, nil
}

// Transfer - move a token by authority of its owner
//
// from must be the recorded owner and the invocation must prove
// control of that address.  A transfer to self is accepted but changes
// nothing and yields no event.
func Transfer(trx storage.Transaction, h host.Host, from address.Address, to address.Address, id uint64, extra []byte) (event.Event, error) {

	if from.IsZero() || to.IsZero() {
		return nil, fault.InvalidAddress
	}

	id = token.NormaliseID(id)

	record, err := ownership.Fetch(trx, id)
	if nil != err {
		return nil, err
	}

	// extra arguments only mean something to a contract recipient;
	// against a plain account they are a phishing vehicle
	if 0 != len(extra) && !h.IsContract(to) {
		return nil, fault.UnexpectedExtraArgument
	}

	acting := host.ActingOwner(h, from, false)
	if acting != record.Owner {
		return nil, fault.NotTokenOwner
	}
	if err := host.Authenticate(h, record.Owner); nil != err {
		return nil, err
	}

	if from == to {
		return nil, nil
	}

	return execute(trx, h, from, to, id, extra)
}

// TransferFromSpender - move a token by authority of its approved spender
//
// the invocation must prove control of the spender address; from must
// be the recorded owner and the spender must hold the token's single
// approval slot.
func TransferFromSpender(trx storage.Transaction, h host.Host, spender address.Address, from address.Address, to address.Address, id uint64, extra []byte) (event.Event, error) {

	if spender.IsZero() || from.IsZero() || to.IsZero() {
		return nil, fault.InvalidAddress
	}

	id = token.NormaliseID(id)

	record, err := ownership.Fetch(trx, id)
	if nil != err {
		return nil, err
	}

	if 0 != len(extra) && !h.IsContract(to) {
		return nil, fault.UnexpectedExtraArgument
	}

	acting := host.ActingOwner(h, spender, false)
	if err := host.Authenticate(h, acting); nil != err {
		return nil, err
	}

	if record.Owner != from {
		return nil, fault.NotTokenOwner
	}
	if record.Approved.IsZero() {
		return nil, fault.NoApproval
	}
	if record.Approved != acting {
		return nil, fault.NotApprovedSpender
	}

	if from == to {
		return nil, nil
	}

	return execute(trx, h, from, to, id, extra)
}

// TransferFromExchange - settle a pre-approved transfer
//
// only a whitelisted exchange may call this form; no witness is
// required because the owner's consent is the standing approval of the
// destination.  The approval must name the destination exactly.
func TransferFromExchange(trx storage.Transaction, h host.Host, from address.Address, to address.Address, id uint64) (event.Event, error) {

	if from.IsZero() || to.IsZero() {
		return nil, fault.InvalidAddress
	}

	if !exchange.IsWhitelisted(h.CallingContract()) {
		return nil, fault.NotAuthorised
	}

	id = token.NormaliseID(id)

	record, err := ownership.Fetch(trx, id)
	if nil != err {
		return nil, err
	}

	if record.Owner != from {
		return nil, fault.NotTokenOwner
	}
	if record.Approved.IsZero() {
		return nil, fault.NoApproval
	}
	if record.Approved != to {
		return nil, fault.NotApprovedSpender
	}

	if from == to {
		return nil, nil
	}

	return execute(trx, h, from, to, id, nil)
}

// notify, re-validate, then commit the move into the open transaction
func execute(trx storage.Transaction, h host.Host, from address.Address, to address.Address, id uint64, extra []byte) (event.Event, error) {

	if h.IsContract(to) {
		accepted, err := h.NotifyTransfer(to, from, to, id, extra)
		if nil != err {
			return nil, err
		}
		if !accepted {
			return nil, fault.TransferRejected
		}

		// the callback may have re-entered the ledger and moved this
		// token; a transfer computed against the old owner must fail,
		// not clobber the re-entrant result
		record, err := ownership.Fetch(trx, id)
		if nil != err {
			return nil, err
		}
		if record.Owner != from {
			return nil, fault.TransferStale
		}
	}

	if !ownership.IndexRemove(trx, from, id) {
		return nil, fault.OwnershipIndexMismatch
	}

	// storing a bare owner record clears any standing approval
	ownership.Store(trx, id, &ownership.Record{Owner: to})
	ownership.IndexAdd(trx, to, id)

	return event.Transfer{From: from, To: to, ID: id}, nil
}
