// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - 20 byte account identifiers
//
// An address denotes either an externally owned account or a
// programmable contract account; the ledger does not distinguish the
// two at this level.  The text form is Base58 of:
//
//	version byte ++ 20 address bytes ++ 4 checksum bytes
//
// where the checksum is the leading bytes of SHA3-256 over the
// version byte and address bytes.
package address

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/splyse/nftd/fault"
)

// Length - number of bytes in an address
const Length = 20

// miscellaneous constants
const (
	versionByte    = 0x2f
	checksumLength = 4
)

// Address - the raw 20 byte form
type Address [Length]byte

// Zero - the all zero address, used as an absent value
var Zero Address

// FromBytes - convert a byte slice to an address
//
// anything that is not exactly 20 bytes is malformed
func FromBytes(buffer []byte) (Address, error) {
	if Length != len(buffer) {
		return Zero, fault.InvalidAddress
	}
	address := Address{}
	copy(address[:], buffer)
	return address, nil
}

// FromBase58 - convert the Base58 text form to an address
func FromBase58(text string) (Address, error) {
	decoded, err := base58.Decode(text)
	if nil != err {
		return Zero, fault.CannotDecodeAddress
	}
	if 1+Length+checksumLength != len(decoded) {
		return Zero, fault.CannotDecodeAddress
	}
	if versionByte != decoded[0] {
		return Zero, fault.WrongNetworkForAddress
	}

	checksumStart := len(decoded) - checksumLength
	digest := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(digest[:checksumLength], decoded[checksumStart:]) {
		return Zero, fault.ChecksumMismatch
	}

	return FromBytes(decoded[1:checksumStart])
}

// Bytes - the raw bytes of an address
func (address Address) Bytes() []byte {
	return address[:]
}

// IsZero - check for the absent value
func (address Address) IsZero() bool {
	return Zero == address
}

// String - the Base58 text form
func (address Address) String() string {
	buffer := make([]byte, 0, 1+Length+checksumLength)
	buffer = append(buffer, versionByte)
	buffer = append(buffer, address[:]...)
	digest := sha3.Sum256(buffer)
	buffer = append(buffer, digest[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - for JSON and the configuration reader
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - inverse of MarshalText
func (address *Address) UnmarshalText(text []byte) error {
	a, err := FromBase58(string(text))
	if nil != err {
		return err
	}
	*address = a
	return nil
}
