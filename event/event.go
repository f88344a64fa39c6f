// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - queue of ledger notifications for external indexers
//
// the argument order of each event is part of the observable contract;
// delivery beyond this queue is the responsibility of the transport
// layer
package event

import (
	"github.com/splyse/nftd/address"
)

// internal constants
const (
	queueSize = 1000
)

// Event - any ledger notification
type Event interface {
	EventName() string
}

// Mint - a token was created (owner, id)
type Mint struct {
	Owner address.Address
	ID    uint64
}

// Transfer - a token moved (from, to, id)
type Transfer struct {
	From address.Address
	To   address.Address
	ID   uint64
}

// Approve - a delegated spender was set (owner, spender, id)
type Approve struct {
	Owner   address.Address
	Spender address.Address
	ID      uint64
}

// Revoke - a delegation was cleared (owner, id)
type Revoke struct {
	Owner address.Address
	ID    uint64
}

func (Mint) EventName() string     { return "NFTmint" }
func (Transfer) EventName() string { return "NFTtransfer" }
func (Approve) EventName() string  { return "NFTapprove" }
func (Revoke) EventName() string   { return "NFTrevoke" }

// for queueing notifications
var queue = make(chan Event, queueSize)

// Send - queue a notification
//
// only called after the owning transaction has committed; a failed
// operation must emit nothing
func Send(e Event) {
	queue <- e
}

// Chan - channel for the delivery layer to read from
func Chan() <-chan Event {
	return queue
}

// Drain - remove and return all queued notifications
//
// test support; the daemon delivery loop reads Chan directly
func Drain() []Event {
	drained := make([]Event, 0)
loop:
	for {
		select {
		case e := <-queue:
			drained = append(drained, e)
		default:
			break loop
		}
	}
	return drained
}
