// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared scaffolding for the RPC handler tests
package fixtures

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/rpc/auth"
	"github.com/splyse/nftd/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"

	databaseFileName = "test.leveldb"
)

// Account - one signing identity for tests
type Account struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
	Address    address.Address
}

var (
	Admin    Account
	Owner    Account
	Spender  Account
	Exchange Account
	Receiver Account
)

func init() {
	for _, a := range []*Account{&Admin, &Owner, &Spender, &Exchange, &Receiver} {
		publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
		if nil != err {
			panic(err)
		}
		a.PublicKey = publicKey
		a.PrivateKey = privateKey
		a.Address = host.AddressFromPublicKey(publicKey)
	}
}

// Witness - sign a digest on behalf of one account
func (account Account) Witness(digest []byte) auth.Witness {
	return auth.Witness{
		PublicKey: hex.EncodeToString(account.PublicKey),
		Signature: hex.EncodeToString(ed25519.Sign(account.PrivateKey, digest)),
	}
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestDatabase - the store must be running for any handler that
// touches the ledger; call after SetupTestLogger
func SetupTestDatabase() error {
	return storage.Initialise(filepath.Join(dir, databaseFileName))
}

func TeardownTestDatabase() {
	storage.Finalise()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
