// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auth - witness verification for RPC requests
//
// a request that changes ledger state carries one or more detached
// ed25519 signatures over a canonical digest of the method name and
// its parameters; each verified signature becomes a witness address
// on the invocation
package auth

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
)

// Witness - a detached request signature
type Witness struct {
	PublicKey string `json:"publicKey"` // hex encoded ed25519 public key
	Signature string `json:"signature"` // hex encoded signature over the request digest
}

// Digest - canonical request digest
//
// sha3-256 over the method name and each parameter, every field
// prefixed with its length byte so concatenations cannot collide
func Digest(method string, parameters ...[]byte) []byte {
	h := sha3.New256()
	writeField(h, []byte(method))
	for _, p := range parameters {
		writeField(h, p)
	}
	return h.Sum(nil)
}

func writeField(h hash.Hash, field []byte) {
	length := len(field)
	prefix := []byte{byte(length), byte(length >> 8)}
	_, _ = h.Write(prefix)
	_, _ = h.Write(field)
}

// Verify - check all witnesses against the request digest
//
// returns the witnessed addresses; a single bad signature fails the
// whole request
func Verify(witnesses []Witness, digest []byte) ([]address.Address, error) {
	addresses := make([]address.Address, 0, len(witnesses))

	for _, w := range witnesses {
		publicKey, err := hex.DecodeString(w.PublicKey)
		if nil != err {
			return nil, fault.InvalidSignature
		}
		signature, err := hex.DecodeString(w.Signature)
		if nil != err {
			return nil, fault.InvalidSignature
		}
		a, err := host.VerifyWitness(ed25519.PublicKey(publicKey), digest, signature)
		if nil != err {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, nil
}

// Invocation - build the host view for one verified RPC request
//
// an RPC request is always a direct top-level call, so the entry and
// calling contract coincide
func Invocation(run *host.Runtime, witnesses []address.Address) host.Host {
	entry := address.Zero
	if len(witnesses) > 0 {
		entry = witnesses[0]
	}
	return run.NewInvocation(entry, entry, witnesses)
}

// IsAdministrator - at least one witness is a registry administrator
func IsAdministrator(witnesses []address.Address, administrators []address.Address) bool {
	for _, w := range witnesses {
		for _, admin := range administrators {
			if w == admin {
				return true
			}
		}
	}
	return false
}
