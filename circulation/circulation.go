// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package circulation - the monotonic mint counter
//
// one increment per successful mint, never decremented; the counter
// also supplies the default id for the next minted token
package circulation

import (
	"github.com/splyse/nftd/storage"
)

var circulationKey = []byte("circulation")

// Total - number of tokens ever minted, i.e. totalSupply
func Total() uint64 {
	n, _ := storage.Pool.Settings.GetN(circulationKey)
	return n
}

// TotalIn - counter value as seen by an open transaction
func TotalIn(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Settings, circulationKey)
	return n
}

// NextID - the id a mint without an explicit id will be assigned
//
// token ids start at 1; id 0 is the reserved sentinel
func NextID(trx storage.Transaction) uint64 {
	return TotalIn(trx) + 1
}

// Advance - record one more minted token
func Advance(trx storage.Transaction) uint64 {
	n := TotalIn(trx) + 1
	trx.PutN(storage.Pool.Settings, circulationKey, n)
	return n
}
