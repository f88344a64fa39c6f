// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"sync"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/splyse/nftd/address"
	"github.com/splyse/nftd/fault"
)

// Callback - in-process implementation of a recipient contract's
// onNFTTransfer entry point
type Callback func(from address.Address, to address.Address, id uint64, extra []byte) bool

// Runtime - a concrete host for the daemon
//
// contracts are in-process callbacks registered against their
// address; witnesses are ed25519 signatures verified over the
// invocation digest before an invocation view is created
type Runtime struct {
	sync.RWMutex
	self      address.Address
	contracts map[address.Address]Callback
}

// NewRuntime - create a runtime with the ledger's own address
func NewRuntime(self address.Address) *Runtime {
	return &Runtime{
		self:      self,
		contracts: make(map[address.Address]Callback),
	}
}

// RegisterContract - attach a programmable account
func (r *Runtime) RegisterContract(contract address.Address, callback Callback) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.contracts[contract]; ok {
		return fault.AlreadyInitialised
	}
	r.contracts[contract] = callback
	return nil
}

// AddressFromPublicKey - derive the account address of an ed25519 key
func AddressFromPublicKey(publicKey ed25519.PublicKey) address.Address {
	digest := sha3.Sum256(publicKey)
	a, _ := address.FromBytes(digest[:address.Length])
	return a
}

// VerifyWitness - check one witness signature over the invocation digest
//
// returns the witnessed address on success
func VerifyWitness(publicKey ed25519.PublicKey, digest []byte, signature []byte) (address.Address, error) {
	if ed25519.PublicKeySize != len(publicKey) || ed25519.SignatureSize != len(signature) {
		return address.Zero, fault.InvalidAddress
	}
	if !ed25519.Verify(publicKey, digest, signature) {
		return address.Zero, fault.NotAuthorised
	}
	return AddressFromPublicKey(publicKey), nil
}

// Invocation - per-call view implementing Host
type Invocation struct {
	runtime   *Runtime
	witnesses map[address.Address]struct{}
	caller    address.Address
	entry     address.Address
}

// NewInvocation - create the view for one top-level call
//
// witnesses must already be verified; caller is the immediate calling
// contract (equal to entry for a direct call)
func (r *Runtime) NewInvocation(caller address.Address, entry address.Address, witnesses []address.Address) *Invocation {
	w := make(map[address.Address]struct{}, len(witnesses))
	for _, a := range witnesses {
		w[a] = struct{}{}
	}
	return &Invocation{
		runtime:   r,
		witnesses: w,
		caller:    caller,
		entry:     entry,
	}
}

func (inv *Invocation) HasWitness(a address.Address) bool {
	_, ok := inv.witnesses[a]
	return ok
}

func (inv *Invocation) IsContract(a address.Address) bool {
	inv.runtime.RLock()
	defer inv.runtime.RUnlock()
	if a == inv.runtime.self {
		return true
	}
	_, ok := inv.runtime.contracts[a]
	return ok
}

func (inv *Invocation) CallingContract() address.Address {
	return inv.caller
}

func (inv *Invocation) EntryContract() address.Address {
	return inv.entry
}

func (inv *Invocation) SelfContract() address.Address {
	return inv.runtime.self
}

func (inv *Invocation) NotifyTransfer(recipient address.Address, from address.Address, to address.Address, id uint64, extra []byte) (bool, error) {
	inv.runtime.RLock()
	callback, ok := inv.runtime.contracts[recipient]
	inv.runtime.RUnlock()
	if !ok {
		return false, fault.NotAuthorised
	}
	return callback(from, to, id, extra), nil
}
