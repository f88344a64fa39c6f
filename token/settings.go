// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/storage"
)

// compiled in defaults, used until an administrator sets a value
const (
	defaultName               = "Non-Fungible Token"
	defaultSymbol             = "NFT"
	defaultSupportedStandards = `["NEP-10"]`
)

// settings pool keys
var (
	nameKey               = []byte("name")
	symbolKey             = []byte("symbol")
	supportedStandardsKey = []byte("supportedStandards")
	postMintContractKey   = []byte("postMintContract")
)

func settingOrDefault(key []byte, defaultValue string) string {
	value := storage.Pool.Settings.Get(key)
	if nil == value || 0 == len(value) {
		return defaultValue
	}
	return string(value)
}

// Name - the descriptive token name
func Name() string {
	return settingOrDefault(nameKey, defaultName)
}

// Symbol - the short ticker symbol
func Symbol() string {
	return settingOrDefault(symbolKey, defaultSymbol)
}

// SupportedStandards - advertised standards list
func SupportedStandards() string {
	return settingOrDefault(supportedStandardsKey, defaultSupportedStandards)
}

// PostMintContract - default owner for a mint without an explicit one
func PostMintContract() address.Address {
	value := storage.Pool.Settings.Get(postMintContractKey)
	a, err := address.FromBytes(value)
	if nil != err {
		return address.Zero
	}
	return a
}

// setSetting - store or clear one configuration value
//
// an empty value deletes the record so the default shows through
func setSetting(trx storage.Transaction, key []byte, value []byte) {
	if 0 == len(value) {
		trx.Delete(storage.Pool.Settings, key)
	} else {
		trx.Put(storage.Pool.Settings, key, value)
	}
}

// SetName - administrator name override
func SetName(trx storage.Transaction, name string) {
	setSetting(trx, nameKey, []byte(name))
}

// SetSymbol - administrator symbol override
func SetSymbol(trx storage.Transaction, symbol string) {
	setSetting(trx, symbolKey, []byte(symbol))
}

// SetSupportedStandards - administrator standards override
func SetSupportedStandards(trx storage.Transaction, standards string) {
	setSetting(trx, supportedStandardsKey, []byte(standards))
}

// SetPostMintContract - set the default recipient of fresh mints
func SetPostMintContract(trx storage.Transaction, contract address.Address) {
	setSetting(trx, postMintContractKey, contract.Bytes())
}
