// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auth_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
	"github.com/splyse/nftd/rpc/auth"
)

func TestDigestFieldsDoNotCollide(t *testing.T) {
	d1 := auth.Digest("Transfer.Send", []byte("ab"), []byte("c"))
	d2 := auth.Digest("Transfer.Send", []byte("a"), []byte("bc"))
	assert.NotEqual(t, d1, d2, "field boundaries must be encoded")

	d3 := auth.Digest("Transfer.Send", []byte("ab"), []byte("c"))
	assert.Equal(t, d1, d3, "digest is deterministic")
}

func TestVerify(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)

	digest := auth.Digest("Token.Mint", []byte("properties"), []byte("uri"))
	signature := ed25519.Sign(privateKey, digest)

	witnesses, err := auth.Verify([]auth.Witness{{
		PublicKey: hex.EncodeToString(publicKey),
		Signature: hex.EncodeToString(signature),
	}}, digest)
	assert.NoError(t, err)
	assert.Len(t, witnesses, 1)
	assert.Equal(t, host.AddressFromPublicKey(publicKey), witnesses[0])

	// a signature over a different digest fails closed
	_, err = auth.Verify([]auth.Witness{{
		PublicKey: hex.EncodeToString(publicKey),
		Signature: hex.EncodeToString(signature),
	}}, auth.Digest("Token.Mint", []byte("other"), []byte("uri")))
	assert.Equal(t, fault.NotAuthorised, err)

	// garbage hex
	_, err = auth.Verify([]auth.Witness{{
		PublicKey: "zz",
		Signature: "zz",
	}}, digest)
	assert.Equal(t, fault.InvalidSignature, err)
}

func TestIsAdministrator(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)
	adminPublicKey, _, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)

	user := host.AddressFromPublicKey(publicKey)
	admin := host.AddressFromPublicKey(adminPublicKey)

	assert.False(t, auth.IsAdministrator(nil, []address.Address{admin}))
	assert.False(t, auth.IsAdministrator([]address.Address{user}, []address.Address{admin}))
	assert.True(t, auth.IsAdministrator([]address.Address{user, admin}, []address.Address{admin}))
}
