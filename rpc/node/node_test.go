// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/splyse/nftd/counter"
	"github.com/splyse/nftd/rpc/fixtures"
	"github.com/splyse/nftd/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	if err := fixtures.SetupTestDatabase(); nil != err {
		t.Fatalf("storage setup error: %s", err)
	}
	defer fixtures.TeardownTestDatabase()

	var ctr counter.Counter
	ctr.Increment()
	ctr.Increment()

	n := node.New(
		logger.New(fixtures.LogCategory),
		time.Now(),
		"100",
		&ctr,
	)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "Non-Fungible Token", reply.Name, "wrong name")
	assert.Equal(t, "NFT", reply.Symbol, "wrong symbol")
	assert.Equal(t, `["NEP-10"]`, reply.SupportedStandards, "wrong standards")
	assert.Equal(t, uint64(0), reply.Circulation, "wrong circulation")
	assert.Equal(t, uint64(2), reply.Connections, "wrong connection count")
	assert.Equal(t, "100", reply.Version, "wrong version")
	assert.NotEmpty(t, reply.Uptime, "missing uptime")
}
