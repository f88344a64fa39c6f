// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"bytes"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/util"
)

// the index key is owner ++ token id so one owner's tokens are a
// contiguous ascending key range
func indexKey(owner address.Address, id uint64) []byte {
	key := make([]byte, 0, address.Length+util.IDKeyLength)
	key = append(key, owner.Bytes()...)
	return append(key, util.IDToKey(id)...)
}

// IndexAdd - insert the index entry for a newly owned token
//
// callers must ensure no entry already exists for the id; the entry
// is derived data and must always agree with the ownership record
func IndexAdd(trx storage.Transaction, owner address.Address, id uint64) {
	trx.Put(storage.Pool.OwnerIndex, indexKey(owner, id), util.IDToKey(id))
}

// IndexRemove - delete the index entry for a token leaving an owner
//
// false means the entry was absent, which is an integrity failure
// the caller must treat as fatal for the enclosing operation
func IndexRemove(trx storage.Transaction, owner address.Address, id uint64) bool {
	key := indexKey(owner, id)
	if !trx.Has(storage.Pool.OwnerIndex, key) {
		return false
	}
	trx.Delete(storage.Pool.OwnerIndex, key)
	return true
}

// used to stop a Map scan early
var errStopScan = fault.GenericError("stop scan")

// CountOf - number of tokens currently owned
//
// this is the definition of balance: entries are counted, never
// stored as a separate figure that could drift
func CountOf(owner address.Address) uint64 {
	ownerBytes := owner.Bytes()
	count := uint64(0)

	cursor := storage.Pool.OwnerIndex.NewFetchCursor().Seek(ownerBytes)
	_ = cursor.Map(func(key []byte, value []byte) error {
		if !bytes.HasPrefix(key, ownerBytes) {
			return errStopScan
		}
		count += 1
		return nil
	})
	return count
}
