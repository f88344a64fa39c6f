// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/rpc/auth"
	"github.com/splyse/nftd/rpc/fixtures"
	"github.com/splyse/nftd/rpc/token"
	"github.com/splyse/nftd/util"
)

func setup(t *testing.T) *token.Token {
	fixtures.SetupTestLogger()
	t.Cleanup(fixtures.TeardownTestLogger)

	if err := fixtures.SetupTestDatabase(); nil != err {
		t.Fatalf("storage setup error: %s", err)
	}
	t.Cleanup(fixtures.TeardownTestDatabase)
	t.Cleanup(func() { event.Drain() })

	run := host.NewRuntime(fixtures.Admin.Address)
	return token.New(
		logger.New(fixtures.LogCategory),
		run,
		[]address.Address{fixtures.Admin.Address},
		nil,
	)
}

func mint(t *testing.T, handler *token.Token, owner string) token.MintReply {
	arguments := token.MintArguments{
		Owner:      owner,
		Properties: "unique property set",
		URI:        "https://example.com/nft/1",
		AuxData:    "aux",
	}
	digest := auth.Digest("Token.Mint",
		[]byte(arguments.Owner),
		[]byte(arguments.Properties),
		[]byte(arguments.URI),
		[]byte(arguments.AuxData),
	)
	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(digest)}

	var reply token.MintReply
	if err := handler.Mint(&arguments, &reply); nil != err {
		t.Fatalf("mint error: %s", err)
	}
	return reply
}

func TestTokenMintAndGet(t *testing.T) {
	handler := setup(t)

	reply := mint(t, handler, fixtures.Owner.Address.String())
	assert.Equal(t, uint64(1), reply.TokenID, "wrong token id")
	assert.Equal(t, fixtures.Owner.Address.String(), reply.Owner, "wrong owner")

	var record token.GetReply
	err := handler.Get(&token.GetArguments{TokenID: 1}, &record)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, "unique property set", record.Properties, "wrong properties")
	assert.Equal(t, "https://example.com/nft/1", record.URI, "wrong uri")
	assert.Equal(t, "aux", record.AuxData, "wrong aux data")
	assert.Equal(t, fixtures.Owner.Address.String(), record.Owner, "wrong owner")

	events := event.Drain()
	assert.Equal(t, 1, len(events), "wrong event count")
	assert.Equal(t, event.Mint{Owner: fixtures.Owner.Address, ID: 1}, events[0], "wrong event")
}

func TestTokenMintNotAdministrator(t *testing.T) {
	handler := setup(t)

	arguments := token.MintArguments{
		Properties: "p",
		URI:        "u",
	}
	digest := auth.Digest("Token.Mint",
		[]byte(arguments.Owner),
		[]byte(arguments.Properties),
		[]byte(arguments.URI),
		[]byte(arguments.AuxData),
	)
	arguments.Witnesses = []auth.Witness{fixtures.Owner.Witness(digest)}

	var reply token.MintReply
	err := handler.Mint(&arguments, &reply)
	assert.Equal(t, fault.NotAdministrator, err, "wrong error")
}

func TestTokenMintBadSignature(t *testing.T) {
	handler := setup(t)

	arguments := token.MintArguments{
		Properties: "p",
		URI:        "u",
	}
	// witness signed over a different digest
	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(auth.Digest("Token.Mint"))}

	var reply token.MintReply
	err := handler.Mint(&arguments, &reply)
	assert.Equal(t, fault.NotAuthorised, err, "wrong error")
}

func TestTokenSetURI(t *testing.T) {
	handler := setup(t)
	mint(t, handler, fixtures.Owner.Address.String())

	arguments := token.SetURIArguments{
		TokenID: 1,
		URI:     "https://example.com/nft/relocated",
	}
	digest := auth.Digest("Token.SetURI",
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.URI),
	)
	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(digest)}

	var reply token.SetURIReply
	err := handler.SetURI(&arguments, &reply)
	assert.Nil(t, err, "wrong SetURI")

	var record token.GetReply
	err = handler.Get(&token.GetArguments{TokenID: 1}, &record)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, "https://example.com/nft/relocated", record.URI, "wrong uri")
}

func TestTokenSetURIBlank(t *testing.T) {
	handler := setup(t)
	mint(t, handler, fixtures.Owner.Address.String())

	arguments := token.SetURIArguments{TokenID: 1}
	var reply token.SetURIReply
	err := handler.SetURI(&arguments, &reply)
	assert.Equal(t, fault.MissingURI, err, "wrong error")
}

func TestTokenSetAuxData(t *testing.T) {
	handler := setup(t)
	mint(t, handler, fixtures.Owner.Address.String())

	arguments := token.SetAuxDataArguments{
		TokenID: 1,
		AuxData: "replacement data",
	}
	digest := auth.Digest("Token.SetAuxData",
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.AuxData),
	)
	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(digest)}

	var reply token.SetAuxDataReply
	err := handler.SetAuxData(&arguments, &reply)
	assert.Nil(t, err, "wrong SetAuxData")

	var record token.GetReply
	err = handler.Get(&token.GetArguments{TokenID: 1}, &record)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, "replacement data", record.AuxData, "wrong aux data")
}

// a configured auxiliary administrator holds the aux data role alone;
// the primary administrator keeps every other right but loses this one
func TestTokenSetAuxDataAuxAdministrator(t *testing.T) {
	setup(t)
	handler := token.New(
		logger.New(fixtures.LogCategory),
		host.NewRuntime(fixtures.Admin.Address),
		[]address.Address{fixtures.Admin.Address},
		[]address.Address{fixtures.Receiver.Address},
	)
	mint(t, handler, fixtures.Owner.Address.String())

	arguments := token.SetAuxDataArguments{
		TokenID: 1,
		AuxData: "curated",
	}
	digest := auth.Digest("Token.SetAuxData",
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.AuxData),
	)

	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(digest)}
	var reply token.SetAuxDataReply
	err := handler.SetAuxData(&arguments, &reply)
	assert.Equal(t, fault.NotAdministrator, err, "wrong primary administrator result")

	arguments.Witnesses = []auth.Witness{fixtures.Receiver.Witness(digest)}
	err = handler.SetAuxData(&arguments, &reply)
	assert.Nil(t, err, "wrong SetAuxData")

	var record token.GetReply
	err = handler.Get(&token.GetArguments{TokenID: 1}, &record)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, "curated", record.AuxData, "wrong aux data")
}

func TestTokenTotalSupply(t *testing.T) {
	handler := setup(t)

	var total token.TotalSupplyReply
	err := handler.TotalSupply(&token.TotalSupplyArguments{}, &total)
	assert.Nil(t, err, "wrong TotalSupply")
	assert.Equal(t, uint64(0), total.Total, "wrong total")

	mint(t, handler, fixtures.Owner.Address.String())

	err = handler.TotalSupply(&token.TotalSupplyArguments{}, &total)
	assert.Nil(t, err, "wrong TotalSupply")
	assert.Equal(t, uint64(1), total.Total, "wrong total")
}

func TestTokenConfigure(t *testing.T) {
	handler := setup(t)

	arguments := token.ConfigureArguments{
		Setting: "symbol",
		Value:   "XYZ",
	}
	digest := auth.Digest("Token.Configure",
		[]byte(arguments.Setting),
		[]byte(arguments.Value),
	)
	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(digest)}

	var reply token.ConfigureReply
	err := handler.Configure(&arguments, &reply)
	assert.Nil(t, err, "wrong Configure")
	assert.Equal(t, "XYZ", reply.Value, "wrong value")

	// unknown setting
	arguments = token.ConfigureArguments{
		Setting: "nonsense",
		Value:   "x",
	}
	digest = auth.Digest("Token.Configure",
		[]byte(arguments.Setting),
		[]byte(arguments.Value),
	)
	arguments.Witnesses = []auth.Witness{fixtures.Admin.Witness(digest)}

	err = handler.Configure(&arguments, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}
