// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"runtime"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel for last ditch reporting
var log *logger.L

// Initialise - setup a log channel for the panic log
func Initialise() error {
	if nil != log {
		return AlreadyInitialised
	}
	log = logger.New("PANIC")
	return nil
}

// Finalise - flush any data
func Finalise() {
	if nil != log {
		log.Flush()
	}
}

// Criticalf - log a critical message with caller location
func Criticalf(format string, arguments ...interface{}) {
	if nil == log {
		return
	}
	if _, file, line, ok := runtime.Caller(1); ok {
		log.Criticalf("(%q:%d) "+format, append([]interface{}{file, line}, arguments...)...)
	} else {
		log.Criticalf(format, arguments...)
	}
	log.Flush()
}

// Panic - log a critical message and panic
func Panic(message string) {
	Criticalf("panic: %s", message)
	panic(message)
}
