// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package exchange_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/exchange"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.leveldb"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	if err := logger.Initialise(logging); nil != err {
		fmt.Printf("logger setup failed with error: %s\n", err)
		os.Exit(1)
	}

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func setup(t *testing.T) {
	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	_ = os.RemoveAll(databaseFileName)
}

func makeAddress(fill byte) address.Address {
	buffer := make([]byte, address.Length)
	for i := range buffer {
		buffer[i] = fill
	}
	a, _ := address.FromBytes(buffer)
	return a
}

func TestWhitelistLifecycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	x1 := makeAddress(0x11)
	x2 := makeAddress(0x22)

	assert.False(t, exchange.IsWhitelisted(x1))

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	assert.NoError(t, exchange.Whitelist(trx, x1))
	assert.NoError(t, exchange.Whitelist(trx, x2))
	assert.NoError(t, trx.Commit())

	assert.True(t, exchange.IsWhitelisted(x1))
	assert.True(t, exchange.IsWhitelisted(x2))

	list, err := exchange.List()
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Contains(t, list, x1)
	assert.Contains(t, list, x2)

	trx, err = storage.NewDBTransaction()
	assert.NoError(t, err)
	assert.NoError(t, exchange.Unwhitelist(trx, x1))
	assert.NoError(t, trx.Commit())

	assert.False(t, exchange.IsWhitelisted(x1))
	assert.True(t, exchange.IsWhitelisted(x2))
}

func TestWhitelistErrors(t *testing.T) {
	setup(t)
	defer teardown(t)

	x1 := makeAddress(0x11)

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	defer trx.Abort()

	assert.Equal(t, fault.InvalidAddress, exchange.Whitelist(trx, address.Zero))

	assert.NoError(t, exchange.Whitelist(trx, x1))
	assert.Equal(t, fault.ExchangeAlreadyListed, exchange.Whitelist(trx, x1),
		"duplicate registration")

	assert.Equal(t, fault.ExchangeNotListed, exchange.Unwhitelist(trx, makeAddress(0x33)))
}
