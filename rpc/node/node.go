// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/circulation"
	"github.com/splyse/nftd/counter"
	"github.com/splyse/nftd/rpc/ratelimit"
	"github.com/splyse/nftd/token"
)

// Node - type for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string
	count   *counter.Counter
}

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

func New(log *logger.L, start time.Time, version string, count *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
		version: version,
		count:   count,
	}
}

// InfoArguments - empty arguments for status fetch
type InfoArguments struct{}

// InfoReply - daemon and registry status
type InfoReply struct {
	Version            string `json:"version"`
	Uptime             string `json:"uptime"`
	Name               string `json:"name"`
	Symbol             string `json:"symbol"`
	SupportedStandards string `json:"supportedStandards"`
	Circulation        uint64 `json:"circulation,string"`
	Connections        uint64 `json:"connections"`
}

// Info - daemon status and registry identity
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	node.Log.Debug("Node.Info")

	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	reply.Name = token.Name()
	reply.Symbol = token.Symbol()
	reply.SupportedStandards = token.SupportedStandards()
	reply.Circulation = circulation.Total()
	reply.Connections = node.count.Uint64()
	return nil
}
