// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/counter"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/rpc/exchange"
	"github.com/splyse/nftd/rpc/node"
	"github.com/splyse/nftd/rpc/owner"
	"github.com/splyse/nftd/rpc/token"
	"github.com/splyse/nftd/rpc/transfer"
)

// Create - make a new RPC server with all of the ledger services
// registered
func Create(
	log *logger.L,
	version string,
	rpcCount *counter.Counter,
	run *host.Runtime,
	administrators []address.Address,
	auxAdministrators []address.Address,
) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(token.New(log, run, administrators, auxAdministrators))
	_ = server.Register(owner.New(log))
	_ = server.Register(transfer.New(log, run))
	_ = server.Register(exchange.New(log, administrators))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
