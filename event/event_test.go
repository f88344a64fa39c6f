// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/event"
)

func testAddress(fill byte) address.Address {
	buffer := make([]byte, address.Length)
	for i := range buffer {
		buffer[i] = fill
	}
	a, _ := address.FromBytes(buffer)
	return a
}

func TestSendAndDrain(t *testing.T) {
	alice := testAddress(0x01)
	bob := testAddress(0x02)

	event.Send(event.Mint{Owner: alice, ID: 1})
	event.Send(event.Transfer{From: alice, To: bob, ID: 1})
	event.Send(event.Approve{Owner: bob, Spender: alice, ID: 1})
	event.Send(event.Revoke{Owner: bob, ID: 1})

	drained := event.Drain()
	assert.Equal(t, 4, len(drained), "queued events")

	assert.Equal(t, event.Mint{Owner: alice, ID: 1}, drained[0])
	assert.Equal(t, event.Transfer{From: alice, To: bob, ID: 1}, drained[1])
	assert.Equal(t, event.Approve{Owner: bob, Spender: alice, ID: 1}, drained[2])
	assert.Equal(t, event.Revoke{Owner: bob, ID: 1}, drained[3])

	assert.Empty(t, event.Drain(), "queue empty after drain")
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "NFTmint", event.Mint{}.EventName())
	assert.Equal(t, "NFTtransfer", event.Transfer{}.EventName())
	assert.Equal(t, "NFTapprove", event.Approve{}.EventName())
	assert.Equal(t, "NFTrevoke", event.Revoke{}.EventName())
}
