// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - the execution environment collaborator
//
// The ledger never inspects signatures or contract code itself; it
// asks the host which addresses carry a cryptographic witness for the
// current invocation, which addresses are programmable contracts, and
// who the immediate and top-level callers are.  The host also performs
// the synchronous onNFTTransfer callback into a recipient contract.
package host

import (
	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
)

// Host - view of a single invocation
type Host interface {

	// HasWitness - the invocation carries a cryptographic witness
	// proving control of the address
	HasWitness(address.Address) bool

	// IsContract - the address denotes a programmable account
	IsContract(address.Address) bool

	// CallingContract - the immediate caller of the ledger
	CallingContract() address.Address

	// EntryContract - the original top-level invoker
	EntryContract() address.Address

	// SelfContract - the ledger's own address
	SelfContract() address.Address

	// NotifyTransfer - synchronous onNFTTransfer callback into the
	// recipient contract; false means the recipient rejected the
	// transfer
	NotifyTransfer(recipient address.Address, from address.Address, to address.Address, id uint64, extra []byte) (bool, error)
}

// Authenticate - decide whether the current invocation may act as the
// claimed address
//
// either the invocation carries a witness for the address and the
// ledger was called directly by the top-level invoker, or the address
// is a contract invoking the ledger on its own behalf
//
// a witness relayed through an unrelated intermediate program is
// rejected: a human signature cannot be bounced through a third-party
// contract to authorise actions on that contract's behalf
func Authenticate(h Host, claimed address.Address) error {
	if h.HasWitness(claimed) {
		if h.EntryContract() != h.CallingContract() {
			return fault.SignatureBounce
		}
		return nil
	}

	if h.IsContract(claimed) && h.CallingContract() == claimed {
		return nil
	}

	return fault.NotAuthorised
}

// ActingOwner - resolve the effective acting identity
//
// the immediate caller acts for itself, unless it is the top-level
// invoker or a registered delegated exchange, in which case the
// explicitly supplied address is honoured
func ActingOwner(h Host, supplied address.Address, isExchange bool) address.Address {
	caller := h.CallingContract()
	if caller == h.EntryContract() || isExchange {
		return supplied
	}
	return caller
}
