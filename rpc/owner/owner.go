// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package owner

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/ownership"
	"github.com/splyse/nftd/rpc/ratelimit"
)

// Owner - type for the RPC
type Owner struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitOwner = 200
	rateBurstOwner = 100
)

func New(log *logger.L) *Owner {
	return &Owner{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOwner, rateBurstOwner),
	}
}

// TokensArguments - arguments for a paginated holdings listing
type TokensArguments struct {
	Owner string `json:"owner"`        // base58
	Start uint64 `json:"start,string"` // first token id to consider
	Count int    `json:"count"`        // number of records
}

// TokensReply - result of the holdings listing
type TokensReply struct {
	Next uint64                `json:"next,string"` // start value for the next call, zero when exhausted
	Data []ownership.OwnedToken `json:"data"`
}

// Tokens - list tokens held by an account in ascending id order
func (owner *Owner) Tokens(arguments *TokensArguments, reply *TokensReply) error {

	if err := ratelimit.LimitN(owner.Limiter, arguments.Count, ownership.MaximumListCount); nil != err {
		return err
	}

	log := owner.Log
	log.Infof("Owner.Tokens: %+v", arguments)

	account, err := address.FromBase58(arguments.Owner)
	if nil != err {
		return err
	}

	data, err := ownership.ListTokensFor(account, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Data = data

	// if no records were found just return next as zero
	// otherwise the next possible id
	if 0 == len(data) {
		reply.Next = 0
	} else {
		reply.Next = data[len(data)-1].ID + 1
	}
	return nil
}

// BalanceArguments - arguments for a holdings count
type BalanceArguments struct {
	Owner string `json:"owner"` // base58
}

// BalanceReply - result of the holdings count
type BalanceReply struct {
	Count uint64 `json:"count,string"`
}

// Balance - the number of tokens held by an account
func (owner *Owner) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.Balance: %+v", arguments)

	account, err := address.FromBase58(arguments.Owner)
	if nil != err {
		return err
	}

	reply.Count = ownership.CountOf(account)
	return nil
}

// OfArguments - arguments for an ownership lookup
type OfArguments struct {
	TokenID uint64 `json:"tokenId,string"`
}

// OfReply - result of an ownership lookup
type OfReply struct {
	TokenID uint64 `json:"tokenId,string"`
	Owner   string `json:"owner"` // base58
}

// Of - the current owner of a token
func (owner *Owner) Of(arguments *OfArguments, reply *OfReply) error {

	if err := ratelimit.Limit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.Of: %+v", arguments)

	account, err := ownership.OwnerOf(arguments.TokenID)
	if nil != err {
		return err
	}

	reply.TokenID = arguments.TokenID
	reply.Owner = account.String()
	return nil
}
