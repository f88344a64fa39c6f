// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package audit - journal committed ledger notifications
//
// the queue in the event package is bounded, so a reader must run for
// the life of the daemon; this one writes each notification to its own
// log so external indexers can tail a complete record
package audit

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/background"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/fault"
)

// globals
type auditData struct {
	sync.RWMutex

	log *logger.L

	processes *background.T

	// set once during initialise
	initialised bool
}

var globalData auditData

// Initialise - start the journal background process
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("audit")
	globalData.log.Info("starting…")

	globalData.processes = background.Start(background.Processes{
		journal,
	}, &globalData)

	globalData.initialised = true
	return nil
}

// Finalise - stop the journal background process
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	background.Stop(globalData.processes)
	globalData.processes = nil

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// the background process
func journal(args interface{}, shutdown <-chan struct{}, done chan<- struct{}) {
	state := args.(*auditData)
	log := state.log

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case e := <-event.Chan():
			log.Infof("%s: %+v", e.EventName(), e)
		}
	}

	close(done)
}
