// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
	"github.com/splyse/nftd/util"
)

// pagination limits
const (
	DefaultListCount = 10
	MaximumListCount = 100
)

// OwnedToken - one element of a paginated listing
type OwnedToken struct {
	ID    uint64       `json:"id,string"`
	Token *token.Token `json:"token"`
}

// ListTokensFor - paginated listing of one owner's tokens
//
// ascending id order starting at start (0 reads as 1, the smallest
// valid id), at most count entries; an index entry whose token record
// no longer resolves is skipped, not an error.  Restart a scan with
// start = lastReturnedID + 1; each call re-scans from the supplied
// start, this is not a live cursor.
func ListTokensFor(owner address.Address, start uint64, count int) ([]OwnedToken, error) {
	if count <= 0 || count > MaximumListCount {
		return nil, fault.InvalidCount
	}
	if 0 == start {
		start = 1
	}

	ownerBytes := owner.Bytes()
	cursor := storage.Pool.OwnerIndex.NewFetchCursor().Seek(indexKey(owner, start))

	results := make([]OwnedToken, 0, count)

loop:
	for len(results) < count {

		items, err := cursor.Fetch(count - len(results))
		if nil != err {
			return nil, err
		}
		if 0 == len(items) {
			break loop
		}

		for _, item := range items {
			if address.Length+util.IDKeyLength != len(item.Key) {
				logger.Panicf("ownership: corrupt index key: %x", item.Key)
			}
			if !bytes.Equal(ownerBytes, item.Key[:address.Length]) {
				break loop
			}

			id, ok := util.KeyToID(item.Key[address.Length:])
			if !ok {
				logger.Panicf("ownership: corrupt index key: %x", item.Key)
			}

			t, err := token.Get(id)
			if fault.TokenDoesNotExist == err {
				continue // dangling index entry
			} else if nil != err {
				return nil, err
			}

			results = append(results, OwnedToken{
				ID:    id,
				Token: t,
			})
		}
	}

	return results, nil
}
