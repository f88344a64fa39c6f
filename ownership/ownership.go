// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ownership - current owner and delegation per token
//
// one record per existing token: the owning address and at most one
// approved spender.  A token has an ownership record if and only if it
// has a registry record, and each record agrees with exactly one owner
// index entry; every mutation keeps both sides in the same
// transaction.
package ownership

import (
	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
	"github.com/splyse/nftd/util"
)

// Record - the stored ownership record
//
// a zero Approved address means no delegation is active
type Record struct {
	Owner    address.Address `json:"owner"`
	Approved address.Address `json:"approved,omitempty"`
}

// Pack - serialise for storage
//
// owner bytes alone, or owner ++ approved spender when a delegation
// is active
func (record *Record) Pack() []byte {
	buffer := make([]byte, 0, 2*address.Length)
	buffer = append(buffer, record.Owner.Bytes()...)
	if !record.Approved.IsZero() {
		buffer = append(buffer, record.Approved.Bytes()...)
	}
	return buffer
}

// UnpackRecord - decode a stored record
func UnpackRecord(buffer []byte) (*Record, error) {
	record := &Record{}
	var err error

	switch len(buffer) {
	case address.Length:
		record.Owner, err = address.FromBytes(buffer)

	case 2 * address.Length:
		record.Owner, err = address.FromBytes(buffer[:address.Length])
		if nil == err {
			record.Approved, err = address.FromBytes(buffer[address.Length:])
		}

	default:
		return nil, fault.CorruptOwnershipRecord
	}

	if nil != err {
		return nil, err
	}
	return record, nil
}

// Fetch - read a token's record as seen by an open transaction
func Fetch(trx storage.Transaction, id uint64) (*Record, error) {
	packed := trx.Get(storage.Pool.Ownership, util.IDToKey(id))
	if nil == packed {
		return nil, fault.TokenDoesNotExist
	}
	return UnpackRecord(packed)
}

// Store - write a token's record inside a transaction
func Store(trx storage.Transaction, id uint64, record *Record) {
	trx.Put(storage.Pool.Ownership, util.IDToKey(id), record.Pack())
}

// OwnerOf - committed owner of a token
func OwnerOf(id uint64) (address.Address, error) {
	packed := storage.Pool.Ownership.Get(util.IDToKey(token.NormaliseID(id)))
	if nil == packed {
		return address.Zero, fault.TokenDoesNotExist
	}
	record, err := UnpackRecord(packed)
	if nil != err {
		return address.Zero, err
	}
	return record.Owner, nil
}
