// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/splyse/nftd/background"
)

type countingArguments struct {
	started  uint64
	finished uint64
}

func worker(args interface{}, shutdown <-chan struct{}, done chan<- struct{}) {
	arguments := args.(*countingArguments)
	atomic.AddUint64(&arguments.started, 1)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
		}
	}

	atomic.AddUint64(&arguments.finished, 1)
	close(done)
}

func TestStartStop(t *testing.T) {
	arguments := &countingArguments{}

	processes := background.Processes{
		worker,
		worker,
		worker,
	}

	register := background.Start(processes, arguments)

	// give every goroutine a chance to run
	time.Sleep(10 * time.Millisecond)
	if got := atomic.LoadUint64(&arguments.started); 3 != got {
		t.Fatalf("started: %d  expected: 3", got)
	}

	background.Stop(register)

	if got := atomic.LoadUint64(&arguments.finished); 3 != got {
		t.Fatalf("finished: %d  expected: 3", got)
	}
}

func TestStopNil(t *testing.T) {
	background.Stop(nil) // must not panic
}
