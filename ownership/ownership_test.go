// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/ownership"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
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

var (
	alice = makeAddress(0x01)
	bob   = makeAddress(0x02)
)

// mint a bare token + ownership record + index entry for tests
func createToken(t *testing.T, trx storage.Transaction, owner address.Address, id uint64) {
	token.Create(trx, id, []byte(fmt.Sprintf("properties-%d", id)), []byte(fmt.Sprintf("uri-%d", id)), nil)
	ownership.Store(trx, id, &ownership.Record{Owner: owner})
	ownership.IndexAdd(trx, owner, id)
}

func TestRecordPackUnpack(t *testing.T) {
	plain := &ownership.Record{Owner: alice}
	unpacked, err := ownership.UnpackRecord(plain.Pack())
	assert.NoError(t, err)
	assert.Equal(t, plain, unpacked, "record without approval")
	assert.True(t, unpacked.Approved.IsZero(), "no approval")

	approved := &ownership.Record{Owner: alice, Approved: bob}
	unpacked, err = ownership.UnpackRecord(approved.Pack())
	assert.NoError(t, err)
	assert.Equal(t, approved, unpacked, "record with approval")

	_, err = ownership.UnpackRecord([]byte{0x01, 0x02})
	assert.Equal(t, fault.CorruptOwnershipRecord, err, "corrupt record")
}

func TestOwnerOf(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	createToken(t, trx, alice, 1)
	assert.NoError(t, trx.Commit())

	owner, err := ownership.OwnerOf(1)
	assert.NoError(t, err)
	assert.Equal(t, alice, owner)

	// the zero id reads as token 1
	owner, err = ownership.OwnerOf(0)
	assert.NoError(t, err)
	assert.Equal(t, alice, owner, "zero id normalised")

	_, err = ownership.OwnerOf(42)
	assert.Equal(t, fault.TokenDoesNotExist, err)
}

func TestIndexAddRemove(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	createToken(t, trx, alice, 1)
	assert.NoError(t, trx.Commit())

	assert.Equal(t, uint64(1), ownership.CountOf(alice), "one token")

	trx, err = storage.NewDBTransaction()
	assert.NoError(t, err)

	assert.False(t, ownership.IndexRemove(trx, bob, 1), "wrong owner")
	assert.True(t, ownership.IndexRemove(trx, alice, 1), "correct owner")
	assert.False(t, ownership.IndexRemove(trx, alice, 1), "already removed")

	trx.Abort()

	// abort must leave the entry in place
	assert.Equal(t, uint64(1), ownership.CountOf(alice), "abort keeps entry")
}

func TestCountOf(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	createToken(t, trx, alice, 1)
	createToken(t, trx, alice, 2)
	createToken(t, trx, bob, 3)
	assert.NoError(t, trx.Commit())

	assert.Equal(t, uint64(2), ownership.CountOf(alice))
	assert.Equal(t, uint64(1), ownership.CountOf(bob))
	assert.Equal(t, uint64(0), ownership.CountOf(makeAddress(0x7f)), "unknown owner")
}

func TestListTokensFor(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	for _, id := range []uint64{3, 7, 9, 12} {
		createToken(t, trx, alice, id)
	}
	createToken(t, trx, bob, 5)
	assert.NoError(t, trx.Commit())

	ids := func(list []ownership.OwnedToken) []uint64 {
		out := make([]uint64, 0, len(list))
		for _, item := range list {
			out = append(out, item.ID)
		}
		return out
	}

	// full listing in ascending order
	list, err := ownership.ListTokensFor(alice, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{3, 7, 9, 12}, ids(list), "full list")

	// start skips lower ids
	list, err = ownership.ListTokensFor(alice, 8, 10)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{9, 12}, ids(list), "start at 8")

	// start 0 is the same as start 1
	list0, err := ownership.ListTokensFor(alice, 0, 10)
	assert.NoError(t, err)
	list1, err := ownership.ListTokensFor(alice, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, ids(list1), ids(list0), "zero start normalised")

	// restart from lastReturnedID + 1
	page, err := ownership.ListTokensFor(alice, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{3, 7}, ids(page), "first page")

	page, err = ownership.ListTokensFor(alice, page[len(page)-1].ID+1, 2)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{9, 12}, ids(page), "second page")

	// another owner's tokens never bleed in
	list, err = ownership.ListTokensFor(bob, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{5}, ids(list), "other owner")

	// token payloads are attached
	assert.Equal(t, []byte("uri-5"), list[0].Token.URI)

	// invalid count
	_, err = ownership.ListTokensFor(alice, 1, 0)
	assert.Equal(t, fault.InvalidCount, err)
	_, err = ownership.ListTokensFor(alice, 1, ownership.MaximumListCount+1)
	assert.Equal(t, fault.InvalidCount, err)
}

// a dangling index entry (no backing token) is skipped, not an error
func TestListSkipsDangling(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err)
	createToken(t, trx, alice, 1)
	// index entry without a token record
	ownership.IndexAdd(trx, alice, 2)
	createToken(t, trx, alice, 3)
	assert.NoError(t, trx.Commit())

	list, err := ownership.ListTokensFor(alice, 1, 10)
	assert.NoError(t, err)

	ids := make([]uint64, 0, len(list))
	for _, item := range list {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []uint64{1, 3}, ids, "dangling entry skipped")
}
