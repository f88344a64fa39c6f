// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - atomic per-invocation mutation of the pools
//
// every write inside an operation is buffered; Commit makes them all
// visible in one batch write, Abort discards every one of them
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (t *transactionData) Begin() error {
	return t.access.Begin()
}

func (t *transactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.put(key, value)
}

func (t *transactionData) PutN(handle *PoolHandle, key []byte, value uint64) {
	handle.putN(key, value)
}

func (t *transactionData) Delete(handle *PoolHandle, key []byte) {
	handle.remove(key)
}

func (t *transactionData) Get(handle *PoolHandle, key []byte) []byte {
	return handle.get(key)
}

func (t *transactionData) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	return handle.getN(key)
}

func (t *transactionData) Has(handle *PoolHandle, key []byte) bool {
	return handle.has(key)
}

func (t *transactionData) Commit() error {
	err := t.access.Commit()
	// release buffers whether or not the write succeeded, a failed
	// batch write must not leak into a later transaction
	t.access.Abort()
	return err
}

func (t *transactionData) Abort() {
	t.access.Abort()
}

func (t *transactionData) InUse() bool {
	return t.access.InUse()
}
