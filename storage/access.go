// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/splyse/nftd/fault"
)

// Access - buffered access to the database
//
// Get/Has are the transaction view and include buffered writes;
// GetDB/HasDB are the committed view and bypass the buffer
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	GetDB([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	HasDB([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

// AccessData - implement Access for a leveldb database
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newAccess(db *leveldb.DB, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.AlreadyInitialised
	}

	d.inUse = true
	return nil
}

func (d *AccessData) Put(key []byte, value []byte) {
	// nil would be indistinguishable from a pending delete
	if nil == value {
		value = []byte{}
	}
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *AccessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
}

func (d *AccessData) Commit() error {
	return d.db.Write(d.batch, nil)
}

func (d *AccessData) Get(key []byte) ([]byte, error) {
	value, found := d.getFromCache(key)
	if found {
		if nil == value { // pending delete
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return d.getFromDB(key)
}

// GetDB - committed records only, an open transaction's buffered
// writes are never visible here
func (d *AccessData) GetDB(key []byte) ([]byte, error) {
	return d.getFromDB(key)
}

func (d *AccessData) getFromCache(key []byte) ([]byte, bool) {
	return d.cache.Get(string(key))
}

func (d *AccessData) getFromDB(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	value, found := d.getFromCache(key)
	if found {
		return nil != value, nil
	}
	return d.db.Has(key, nil)
}

// HasDB - committed records only
func (d *AccessData) HasDB(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}
