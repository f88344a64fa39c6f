// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"
)

// IDKeyLength - bytes in a token id storage key
const IDKeyLength = 8

// IDToKey - token id as a big endian storage key
//
// big endian so that key order is ascending id order
func IDToKey(id uint64) []byte {
	key := make([]byte, IDKeyLength)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// KeyToID - inverse of IDToKey
//
// returns false if the buffer is the wrong length
func KeyToID(key []byte) (uint64, bool) {
	if IDKeyLength != len(key) {
		return 0, false
	}
	return binary.BigEndian.Uint64(key), true
}
