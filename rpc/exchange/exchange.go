// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package exchange

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/exchange"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/rpc/auth"
	"github.com/splyse/nftd/rpc/handler"
	"github.com/splyse/nftd/rpc/ratelimit"
	"github.com/splyse/nftd/storage"
)

// Exchange - type for the RPC
type Exchange struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	Administrators []address.Address
}

const (
	rateLimitExchange = 200
	rateBurstExchange = 100
)

func New(log *logger.L, administrators []address.Address) *Exchange {
	return &Exchange{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitExchange, rateBurstExchange),
		Administrators: administrators,
	}
}

// ModifyArguments - add or remove one exchange from the whitelist
type ModifyArguments struct {
	Exchange  string         `json:"exchange"` // base58
	Witnesses []auth.Witness `json:"witnesses"`
}

// ModifyReply - result of a whitelist change
type ModifyReply struct {
	Exchange string `json:"exchange"` // base58
	Listed   bool   `json:"listed"`
}

// Add - whitelist an exchange, administrator only
func (e *Exchange) Add(arguments *ModifyArguments, reply *ModifyReply) error {
	return e.modify(arguments, reply, "Exchange.Add", true)
}

// Remove - remove an exchange from the whitelist, administrator only
func (e *Exchange) Remove(arguments *ModifyArguments, reply *ModifyReply) error {
	return e.modify(arguments, reply, "Exchange.Remove", false)
}

func (e *Exchange) modify(arguments *ModifyArguments, reply *ModifyReply, method string, add bool) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	e.Log.Infof("%s: %q", method, arguments.Exchange)

	digest := auth.Digest(method, []byte(arguments.Exchange))
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}
	if !auth.IsAdministrator(witnesses, e.Administrators) {
		return fault.NotAdministrator
	}

	exchangeAddress, err := address.FromBase58(arguments.Exchange)
	if nil != err {
		return err
	}

	err = handler.Run(func(trx storage.Transaction) (event.Event, error) {
		if add {
			return nil, exchange.Whitelist(trx, exchangeAddress)
		}
		return nil, exchange.Unwhitelist(trx, exchangeAddress)
	})
	if nil != err {
		return err
	}

	reply.Exchange = arguments.Exchange
	reply.Listed = add
	return nil
}

// ListArguments - placeholder, the listing takes no parameters
type ListArguments struct {
}

// ListReply - every whitelisted exchange
type ListReply struct {
	Exchanges []string `json:"exchanges"` // base58
}

// List - every whitelisted exchange
func (e *Exchange) List(_ *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	e.Log.Debugf("Exchange.List")

	listed, err := exchange.List()
	if nil != err {
		return err
	}

	exchanges := make([]string, len(listed))
	for i, a := range listed {
		exchanges[i] = a.String()
	}
	reply.Exchanges = exchanges
	return nil
}
