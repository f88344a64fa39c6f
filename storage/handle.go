// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - one prefixed key space inside the database
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess Access
}

// Element - a binary key/value pair
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// store a key/value pair, only for use inside a transaction
func (p *PoolHandle) put(key []byte, value []byte) {
	if nil == p.dataAccess {
		logger.Panic("pool.put nil data access")
		return
	}
	p.dataAccess.Put(p.prefixKey(key), value)
}

// putN - store big endian uint64, only for use inside a transaction
func (p *PoolHandle) putN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.put(key, buffer)
}

// remove a key, only for use inside a transaction
func (p *PoolHandle) remove(key []byte) {
	if nil == p.dataAccess {
		logger.Panic("pool.remove nil data access")
		return
	}
	p.dataAccess.Delete(p.prefixKey(key))
}

// Get - read a committed value for a given key
//
// returns nil if the key is not present; an open transaction's
// buffered writes are never visible here
func (p *PoolHandle) Get(key []byte) []byte {
	if nil == p.dataAccess {
		return nil
	}
	value, err := p.dataAccess.GetDB(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// read a value including this transaction's buffered writes,
// only for use inside a transaction
func (p *PoolHandle) get(key []byte) []byte {
	if nil == p.dataAccess {
		return nil
	}
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.get", err)
	return value
}

// GetN - read a committed record and decode as big endian uint64
//
// second return is false if the record was not found
// panics if the record is under 8 bytes
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	return decodeN(key, p.Get(key))
}

// getN - transaction view of GetN, only for use inside a transaction
func (p *PoolHandle) getN(key []byte) (uint64, bool) {
	return decodeN(key, p.get(key))
}

func decodeN(key []byte, buffer []byte) (uint64, bool) {
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("pool.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check if a key is committed
func (p *PoolHandle) Has(key []byte) bool {
	if nil == p.dataAccess {
		return false
	}
	found, err := p.dataAccess.HasDB(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return found
}

// check a key including this transaction's buffered writes,
// only for use inside a transaction
func (p *PoolHandle) has(key []byte) bool {
	if nil == p.dataAccess {
		return false
	}
	found, err := p.dataAccess.Has(p.prefixKey(key))
	logger.PanicIfError("pool.has", err)
	return found
}
