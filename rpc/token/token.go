// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/circulation"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/ownership"
	"github.com/splyse/nftd/rpc/auth"
	"github.com/splyse/nftd/rpc/handler"
	"github.com/splyse/nftd/rpc/ratelimit"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/token"
	"github.com/splyse/nftd/transfer"
	"github.com/splyse/nftd/util"
)

// Token - type for the RPC
type Token struct {
	Log               *logger.L
	Limiter           *rate.Limiter
	Runtime           *host.Runtime
	Administrators    []address.Address
	AuxAdministrators []address.Address
}

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// New - create the handler
//
// auxAdministrators hold the separate auxiliary data role; when none
// are configured the primary administrators hold it as well
func New(log *logger.L, run *host.Runtime, administrators []address.Address, auxAdministrators []address.Address) *Token {
	if 0 == len(auxAdministrators) {
		auxAdministrators = administrators
	}
	return &Token{
		Log:               log,
		Limiter:           rate.NewLimiter(rateLimitToken, rateBurstToken),
		Runtime:           run,
		Administrators:    administrators,
		AuxAdministrators: auxAdministrators,
	}
}

// MintArguments - arguments for RPC
//
// owner may be blank, the configured post-mint contract then receives
// the token
type MintArguments struct {
	Owner      string         `json:"owner"` // base58, optional
	Properties string         `json:"properties"`
	URI        string         `json:"uri"`
	AuxData    string         `json:"auxData"`
	Witnesses  []auth.Witness `json:"witnesses"`
}

// MintReply - result of minting
type MintReply struct {
	TokenID uint64 `json:"tokenId,string"`
	Owner   string `json:"owner"` // base58
}

// Mint - create one token, administrators only
func (t *Token) Mint(arguments *MintArguments, reply *MintReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	log := t.Log
	log.Infof("Token.Mint: owner: %q uri: %q", arguments.Owner, arguments.URI)

	digest := auth.Digest("Token.Mint",
		[]byte(arguments.Owner),
		[]byte(arguments.Properties),
		[]byte(arguments.URI),
		[]byte(arguments.AuxData),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}
	if !auth.IsAdministrator(witnesses, t.Administrators) {
		return fault.NotAdministrator
	}

	owner := address.Zero
	if "" != arguments.Owner {
		owner, err = address.FromBase58(arguments.Owner)
		if nil != err {
			return err
		}
	}

	inv := auth.Invocation(t.Runtime, witnesses)

	return handler.Run(func(trx storage.Transaction) (event.Event, error) {
		e, err := transfer.Mint(trx, inv, owner, []byte(arguments.Properties), []byte(arguments.URI), []byte(arguments.AuxData))
		if nil != err {
			return nil, err
		}
		minted := e.(event.Mint)
		reply.TokenID = minted.ID
		reply.Owner = minted.Owner.String()
		return e, nil
	})
}

// GetArguments - arguments for a token fetch
type GetArguments struct {
	TokenID uint64 `json:"tokenId,string"`
}

// GetReply - one token record
type GetReply struct {
	TokenID    uint64 `json:"tokenId,string"`
	Owner      string `json:"owner"` // base58
	Properties string `json:"properties"`
	URI        string `json:"uri"`
	AuxData    string `json:"auxData"`
}

// Get - fetch a token record
func (t *Token) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Token.Get: %+v", arguments)

	record, err := token.Get(arguments.TokenID)
	if nil != err {
		return err
	}

	// tokens and ownership records are created together, a missing
	// owner would be a store inconsistency
	owner, err := ownership.OwnerOf(arguments.TokenID)
	if nil != err {
		return err
	}

	reply.TokenID = token.NormaliseID(arguments.TokenID)
	reply.Owner = owner.String()
	reply.Properties = string(record.Properties)
	reply.URI = string(record.URI)
	reply.AuxData = string(record.AuxData)
	return nil
}

// SetAuxDataArguments - arguments for RPC
type SetAuxDataArguments struct {
	TokenID   uint64         `json:"tokenId,string"`
	AuxData   string         `json:"auxData"`
	Witnesses []auth.Witness `json:"witnesses"`
}

// SetAuxDataReply - result of an auxiliary data update
type SetAuxDataReply struct {
	TokenID uint64 `json:"tokenId,string"`
}

// SetAuxData - replace the mutable auxiliary data of a token,
// auxiliary administrators only
func (t *Token) SetAuxData(arguments *SetAuxDataArguments, reply *SetAuxDataReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Token.SetAuxData: %+v", arguments.TokenID)

	digest := auth.Digest("Token.SetAuxData",
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.AuxData),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}
	if !auth.IsAdministrator(witnesses, t.AuxAdministrators) {
		return fault.NotAdministrator
	}

	return handler.Run(func(trx storage.Transaction) (event.Event, error) {
		if err := token.SetAuxData(trx, arguments.TokenID, []byte(arguments.AuxData)); nil != err {
			return nil, err
		}
		reply.TokenID = token.NormaliseID(arguments.TokenID)
		return nil, nil
	})
}

// SetURIArguments - arguments for RPC
type SetURIArguments struct {
	TokenID   uint64         `json:"tokenId,string"`
	URI       string         `json:"uri"`
	Witnesses []auth.Witness `json:"witnesses"`
}

// SetURIReply - result of a URI update
type SetURIReply struct {
	TokenID uint64 `json:"tokenId,string"`
}

// SetURI - repoint the token's external resource, administrators only
func (t *Token) SetURI(arguments *SetURIArguments, reply *SetURIReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Token.SetURI: %v", arguments.TokenID)

	if "" == arguments.URI {
		return fault.MissingURI
	}

	digest := auth.Digest("Token.SetURI",
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.URI),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}
	if !auth.IsAdministrator(witnesses, t.Administrators) {
		return fault.NotAdministrator
	}

	return handler.Run(func(trx storage.Transaction) (event.Event, error) {
		if err := token.SetURI(trx, arguments.TokenID, []byte(arguments.URI)); nil != err {
			return nil, err
		}
		reply.TokenID = token.NormaliseID(arguments.TokenID)
		return nil, nil
	})
}

// TotalSupplyArguments - placeholder, the query takes no parameters
type TotalSupplyArguments struct {
}

// TotalSupplyReply - number of tokens ever minted
type TotalSupplyReply struct {
	Total uint64 `json:"total,string"`
}

// TotalSupply - the circulation counter
func (t *Token) TotalSupply(_ *TotalSupplyArguments, reply *TotalSupplyReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Debugf("Token.TotalSupply")

	reply.Total = circulation.Total()
	return nil
}

// ConfigureArguments - set one registry setting
//
// setting is one of: name, symbol, supportedStandards,
// postMintContract; a blank value resets the built-in default
type ConfigureArguments struct {
	Setting   string         `json:"setting"`
	Value     string         `json:"value"`
	Witnesses []auth.Witness `json:"witnesses"`
}

// ConfigureReply - the applied setting
type ConfigureReply struct {
	Setting string `json:"setting"`
	Value   string `json:"value"`
}

// Configure - change one registry setting, administrators only
func (t *Token) Configure(arguments *ConfigureArguments, reply *ConfigureReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Token.Configure: %+v", arguments)

	digest := auth.Digest("Token.Configure",
		[]byte(arguments.Setting),
		[]byte(arguments.Value),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}
	if !auth.IsAdministrator(witnesses, t.Administrators) {
		return fault.NotAdministrator
	}

	err = handler.Run(func(trx storage.Transaction) (event.Event, error) {
		switch arguments.Setting {
		case "name":
			token.SetName(trx, arguments.Value)
		case "symbol":
			token.SetSymbol(trx, arguments.Value)
		case "supportedStandards":
			token.SetSupportedStandards(trx, arguments.Value)
		case "postMintContract":
			contract := address.Zero
			if "" != arguments.Value {
				var err error
				contract, err = address.FromBase58(arguments.Value)
				if nil != err {
					return nil, err
				}
			}
			token.SetPostMintContract(trx, contract)
		default:
			return nil, fault.MissingParameters
		}
		return nil, nil
	})
	if nil != err {
		return err
	}

	reply.Setting = arguments.Setting
	reply.Value = arguments.Value
	return nil
}
