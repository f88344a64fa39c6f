// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a fixed set of goroutines with a common
// shutdown
package background

// Process - the type signature of a background process
//
// a process must loop until shutdown is closed and then close done
type Process func(args interface{}, shutdown <-chan struct{}, done chan<- struct{})

// Processes - the list of processes to start
type Processes []Process

// per process control channels
type control struct {
	shutdown chan struct{}
	done     chan struct{}
}

// T - handle for a started set of processes
type T struct {
	controls []control
}

// Start - run every process in its own goroutine
func Start(processes Processes, args interface{}) *T {

	register := &T{
		controls: make([]control, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		done := make(chan struct{})
		register.controls[i] = control{
			shutdown: shutdown,
			done:     done,
		}
		go p(args, shutdown, done)
	}
	return register
}

// Stop - signal all processes and wait until each one has finished
func Stop(t *T) {
	if nil == t {
		return
	}

	for _, c := range t.controls {
		close(c.shutdown)
	}

	for _, c := range t.controls {
		<-c.done
	}
}
