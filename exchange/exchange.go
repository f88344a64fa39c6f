// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package exchange - the delegated exchange allowlist
//
// administrator registered intermediaries permitted to settle
// pre-approved transfers without the owner's signature on the
// settlement call
package exchange

import (
	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
)

// allowlist marker value
var marker = []byte{0x01}

// Whitelist - register a delegated exchange
func Whitelist(trx storage.Transaction, exchange address.Address) error {
	if exchange.IsZero() {
		return fault.InvalidAddress
	}
	if trx.Has(storage.Pool.Exchanges, exchange.Bytes()) {
		return fault.ExchangeAlreadyListed
	}
	trx.Put(storage.Pool.Exchanges, exchange.Bytes(), marker)
	return nil
}

// Unwhitelist - remove a delegated exchange
func Unwhitelist(trx storage.Transaction, exchange address.Address) error {
	if !trx.Has(storage.Pool.Exchanges, exchange.Bytes()) {
		return fault.ExchangeNotListed
	}
	trx.Delete(storage.Pool.Exchanges, exchange.Bytes())
	return nil
}

// IsWhitelisted - committed allowlist check
func IsWhitelisted(exchange address.Address) bool {
	return storage.Pool.Exchanges.Has(exchange.Bytes())
}

// List - all registered exchanges
func List() ([]address.Address, error) {
	exchanges := make([]address.Address, 0)

	cursor := storage.Pool.Exchanges.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		a, err := address.FromBytes(key)
		if nil != err {
			return err
		}
		exchanges = append(exchanges, a)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return exchanges, nil
}
