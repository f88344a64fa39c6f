// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - transaction scaffolding for state changing RPCs
package handler

import (
	"sync"

	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
)

// mutations are serialised, the store allows one open transaction
var mu sync.Mutex

// Run - execute one state changing operation in its own transaction
//
// the event is emitted only after a successful commit.  A stale
// transfer still commits: the failure belongs to the outer call, the
// re-entrant changes made during the recipient callback must stand.
func Run(fn func(trx storage.Transaction) (event.Event, error)) error {
	mu.Lock()
	defer mu.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	e, err := fn(trx)
	if nil != err {
		if fault.IsErrStale(err) {
			_ = trx.Commit()
		} else {
			trx.Abort()
		}
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}
	if nil != e {
		event.Send(e)
	}
	return nil
}
