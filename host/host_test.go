// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/host"
)

func makeAddress(fill byte) address.Address {
	buffer := make([]byte, address.Length)
	for i := range buffer {
		buffer[i] = fill
	}
	a, _ := address.FromBytes(buffer)
	return a
}

var (
	ledgerAddress = makeAddress(0xff)
	alice         = makeAddress(0x01)
	bobContract   = makeAddress(0x02)
	entryScript   = makeAddress(0x03)
)

// direct invocation with a witness authenticates
func TestAuthenticateWitness(t *testing.T) {
	r := host.NewRuntime(ledgerAddress)
	inv := r.NewInvocation(entryScript, entryScript, []address.Address{alice})

	assert.NoError(t, host.Authenticate(inv, alice), "direct witness")
	assert.Equal(t, fault.NotAuthorised, host.Authenticate(inv, bobContract), "no witness, no contract")
}

// a witness relayed through an intermediate contract is rejected
func TestAuthenticateSignatureBounce(t *testing.T) {
	r := host.NewRuntime(ledgerAddress)
	_ = r.RegisterContract(bobContract, func(from, to address.Address, id uint64, extra []byte) bool {
		return true
	})

	// caller is the relaying contract, not the entry script
	inv := r.NewInvocation(bobContract, entryScript, []address.Address{alice})

	assert.Equal(t, fault.SignatureBounce, host.Authenticate(inv, alice), "bounced signature")
}

// a contract owner invoking through its own code authenticates
func TestAuthenticateContractSelf(t *testing.T) {
	r := host.NewRuntime(ledgerAddress)
	_ = r.RegisterContract(bobContract, func(from, to address.Address, id uint64, extra []byte) bool {
		return true
	})

	inv := r.NewInvocation(bobContract, entryScript, nil)

	assert.NoError(t, host.Authenticate(inv, bobContract), "contract acting for itself")
	assert.Equal(t, fault.NotAuthorised, host.Authenticate(inv, alice), "contract cannot act for others")
}

func TestActingOwner(t *testing.T) {
	r := host.NewRuntime(ledgerAddress)

	// direct call: supplied address is honoured
	direct := r.NewInvocation(entryScript, entryScript, nil)
	assert.Equal(t, alice, host.ActingOwner(direct, alice, false), "direct call")

	// intermediate contract: forced to act as itself
	relayed := r.NewInvocation(bobContract, entryScript, nil)
	assert.Equal(t, bobContract, host.ActingOwner(relayed, alice, false), "intermediate caller")

	// whitelisted exchange: supplied address is honoured
	assert.Equal(t, alice, host.ActingOwner(relayed, alice, true), "delegated exchange")
}

func TestNotifyTransfer(t *testing.T) {
	r := host.NewRuntime(ledgerAddress)

	accepted := false
	_ = r.RegisterContract(bobContract, func(from, to address.Address, id uint64, extra []byte) bool {
		accepted = alice == from && bobContract == to && 7 == id
		return accepted
	})

	inv := r.NewInvocation(entryScript, entryScript, nil)

	ok, err := inv.NotifyTransfer(bobContract, alice, bobContract, 7, nil)
	assert.NoError(t, err)
	assert.True(t, ok, "callback accepted")
	assert.True(t, accepted, "callback arguments")

	_, err = inv.NotifyTransfer(alice, alice, bobContract, 7, nil)
	assert.Error(t, err, "not a contract")
}

func TestVerifyWitness(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	assert.NoError(t, err)

	digest := []byte("invocation digest")
	signature := ed25519.Sign(privateKey, digest)

	a, err := host.VerifyWitness(publicKey, digest, signature)
	assert.NoError(t, err, "valid signature")
	assert.Equal(t, host.AddressFromPublicKey(publicKey), a, "derived address")

	_, err = host.VerifyWitness(publicKey, []byte("different digest"), signature)
	assert.Equal(t, fault.NotAuthorised, err, "wrong digest")

	_, err = host.VerifyWitness(publicKey[:16], digest, signature)
	assert.Equal(t, fault.InvalidAddress, err, "truncated key")
}
