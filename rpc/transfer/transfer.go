// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/approval"
	"github.com/splyse/nftd/event"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/rpc/auth"
	"github.com/splyse/nftd/rpc/handler"
	"github.com/splyse/nftd/rpc/ratelimit"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/transfer"
	"github.com/splyse/nftd/util"
)

// Transfer - type for the RPC
type Transfer struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runtime *host.Runtime
}

const (
	rateLimitTransfer = 200
	rateBurstTransfer = 100
)

func New(log *logger.L, run *host.Runtime) *Transfer {
	return &Transfer{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTransfer, rateBurstTransfer),
		Runtime: run,
	}
}

// SendArguments - direct transfer by the owner
type SendArguments struct {
	From      string         `json:"from"` // base58
	To        string         `json:"to"`   // base58
	TokenID   uint64         `json:"tokenId,string"`
	Extra     string         `json:"extra"` // forwarded to a contract recipient
	Witnesses []auth.Witness `json:"witnesses"`
}

// SendReply - result of a transfer
type SendReply struct {
	TokenID uint64 `json:"tokenId,string"`
	Owner   string `json:"owner"` // base58, owner after the call
}

// Send - transfer a token by authority of its owner
func (t *Transfer) Send(arguments *SendArguments, reply *SendReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Send: %q -> %q id: %d", arguments.From, arguments.To, arguments.TokenID)

	digest := auth.Digest("Transfer.Send",
		[]byte(arguments.From),
		[]byte(arguments.To),
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.Extra),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}

	from, err := address.FromBase58(arguments.From)
	if nil != err {
		return err
	}
	to, err := address.FromBase58(arguments.To)
	if nil != err {
		return err
	}

	inv := auth.Invocation(t.Runtime, witnesses)

	return t.run(reply, arguments.TokenID, to, func(trx storage.Transaction) (event.Event, error) {
		return transfer.Transfer(trx, inv, from, to, arguments.TokenID, []byte(arguments.Extra))
	})
}

// SendFromArguments - delegated transfer by the approved spender
type SendFromArguments struct {
	Spender   string         `json:"spender"` // base58
	From      string         `json:"from"`    // base58
	To        string         `json:"to"`      // base58
	TokenID   uint64         `json:"tokenId,string"`
	Extra     string         `json:"extra"`
	Witnesses []auth.Witness `json:"witnesses"`
}

// SendFrom - transfer a token by authority of its approved spender
func (t *Transfer) SendFrom(arguments *SendFromArguments, reply *SendReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.SendFrom: %q: %q -> %q id: %d", arguments.Spender, arguments.From, arguments.To, arguments.TokenID)

	digest := auth.Digest("Transfer.SendFrom",
		[]byte(arguments.Spender),
		[]byte(arguments.From),
		[]byte(arguments.To),
		util.IDToKey(arguments.TokenID),
		[]byte(arguments.Extra),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}

	spender, err := address.FromBase58(arguments.Spender)
	if nil != err {
		return err
	}
	from, err := address.FromBase58(arguments.From)
	if nil != err {
		return err
	}
	to, err := address.FromBase58(arguments.To)
	if nil != err {
		return err
	}

	inv := auth.Invocation(t.Runtime, witnesses)

	return t.run(reply, arguments.TokenID, to, func(trx storage.Transaction) (event.Event, error) {
		return transfer.TransferFromSpender(trx, inv, spender, from, to, arguments.TokenID, []byte(arguments.Extra))
	})
}

// SettleArguments - settlement of a pre-approved transfer by a
// whitelisted exchange
type SettleArguments struct {
	Exchange  string         `json:"exchange"` // base58
	From      string         `json:"from"`     // base58
	To        string         `json:"to"`       // base58
	TokenID   uint64         `json:"tokenId,string"`
	Witnesses []auth.Witness `json:"witnesses"` // must include the exchange
}

// Settle - settle a pre-approved transfer, the only witness required
// is the exchange's own
func (t *Transfer) Settle(arguments *SettleArguments, reply *SendReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Settle: %q: %q -> %q id: %d", arguments.Exchange, arguments.From, arguments.To, arguments.TokenID)

	digest := auth.Digest("Transfer.Settle",
		[]byte(arguments.Exchange),
		[]byte(arguments.From),
		[]byte(arguments.To),
		util.IDToKey(arguments.TokenID),
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}

	exchangeAddress, err := address.FromBase58(arguments.Exchange)
	if nil != err {
		return err
	}
	from, err := address.FromBase58(arguments.From)
	if nil != err {
		return err
	}
	to, err := address.FromBase58(arguments.To)
	if nil != err {
		return err
	}

	// the settlement call itself must be proven to come from the
	// exchange
	if !hasWitness(witnesses, exchangeAddress) {
		return fault.NotAuthorised
	}

	inv := t.Runtime.NewInvocation(exchangeAddress, exchangeAddress, witnesses)

	return t.run(reply, arguments.TokenID, to, func(trx storage.Transaction) (event.Event, error) {
		return transfer.TransferFromExchange(trx, inv, from, to, arguments.TokenID)
	})
}

// ApproveArguments - set or clear the delegated spender
type ApproveArguments struct {
	Owner     string         `json:"owner"`   // base58
	Spender   string         `json:"spender"` // base58
	TokenID   uint64         `json:"tokenId,string"`
	Revoke    bool           `json:"revoke"`
	Witnesses []auth.Witness `json:"witnesses"`
}

// ApproveReply - result of an approval change
type ApproveReply struct {
	TokenID uint64 `json:"tokenId,string"`
	Spender string `json:"spender"` // base58, blank after a revoke
}

// Approve - delegate or revoke spending of one token
func (t *Transfer) Approve(arguments *ApproveArguments, reply *ApproveReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Approve: %q: spender: %q id: %d revoke: %v", arguments.Owner, arguments.Spender, arguments.TokenID, arguments.Revoke)

	revoke := []byte{0}
	if arguments.Revoke {
		revoke = []byte{1}
	}
	digest := auth.Digest("Transfer.Approve",
		[]byte(arguments.Owner),
		[]byte(arguments.Spender),
		util.IDToKey(arguments.TokenID),
		revoke,
	)
	witnesses, err := auth.Verify(arguments.Witnesses, digest)
	if nil != err {
		return err
	}

	owner, err := address.FromBase58(arguments.Owner)
	if nil != err {
		return err
	}
	spender, err := address.FromBase58(arguments.Spender)
	if nil != err {
		return err
	}

	inv := auth.Invocation(t.Runtime, witnesses)

	err = handler.Run(func(trx storage.Transaction) (event.Event, error) {
		return approval.Approve(trx, inv, owner, spender, arguments.TokenID, arguments.Revoke)
	})
	if nil != err {
		return err
	}

	reply.TokenID = arguments.TokenID
	reply.Spender = ""
	if !arguments.Revoke {
		reply.Spender = arguments.Spender
	}
	return nil
}

// AllowanceArguments - arguments for a delegation lookup
type AllowanceArguments struct {
	TokenID uint64 `json:"tokenId,string"`
}

// AllowanceReply - the active delegation of a token
type AllowanceReply struct {
	TokenID uint64 `json:"tokenId,string"`
	Owner   string `json:"owner"`   // base58
	Spender string `json:"spender"` // base58, blank when no approval is set
}

// Allowance - the active delegation of a token
func (t *Transfer) Allowance(arguments *AllowanceArguments, reply *AllowanceReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Allowance: %+v", arguments)

	owner, spender, err := approval.AllowanceOf(arguments.TokenID)
	if nil != err {
		return err
	}

	reply.TokenID = arguments.TokenID
	reply.Owner = owner.String()
	reply.Spender = ""
	if !spender.IsZero() {
		reply.Spender = spender.String()
	}
	return nil
}

// run a transfer variant and fill the common reply
func (t *Transfer) run(reply *SendReply, id uint64, to address.Address, fn func(trx storage.Transaction) (event.Event, error)) error {
	err := handler.Run(fn)
	if nil != err {
		return err
	}
	reply.TokenID = id
	reply.Owner = to.String()
	return nil
}

func hasWitness(witnesses []address.Address, a address.Address) bool {
	for _, w := range witnesses {
		if w == a {
			return true
		}
	}
	return false
}
