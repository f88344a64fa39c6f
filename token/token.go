// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - the canonical registry of minted tokens
//
// one record per token id: immutable properties set at mint, a
// mutable URI and optional mutable auxiliary data.  Records are never
// deleted; a token, once minted, exists forever.
package token

import (
	"github.com/splyse/nftd/fault"
	"github.com/splyse/nftd/storage"
	"github.com/splyse/nftd/util"
)

// Token - the stored registry record
type Token struct {
	Properties []byte `json:"properties"` // immutable after mint
	URI        []byte `json:"uri"`
	AuxData    []byte `json:"auxData,omitempty"`
}

// Pack - serialise for storage
//
// three varint length prefixed byte strings in fixed order
func (token *Token) Pack() []byte {
	buffer := util.ToVarint64(uint64(len(token.Properties)))
	buffer = append(buffer, token.Properties...)
	buffer = append(buffer, util.ToVarint64(uint64(len(token.URI)))...)
	buffer = append(buffer, token.URI...)
	buffer = append(buffer, util.ToVarint64(uint64(len(token.AuxData)))...)
	buffer = append(buffer, token.AuxData...)
	return buffer
}

// Unpack - decode a stored record
func Unpack(buffer []byte) (*Token, error) {
	token := &Token{}

	fields := []*[]byte{&token.Properties, &token.URI, &token.AuxData}
	for _, field := range fields {
		length, count := util.FromVarint64(buffer)
		if 0 == count {
			return nil, fault.DataInconsistent
		}
		buffer = buffer[count:]
		if uint64(len(buffer)) < length {
			return nil, fault.DataInconsistent
		}
		*field = buffer[:length]
		buffer = buffer[length:]
	}
	if 0 != len(buffer) {
		return nil, fault.DataInconsistent
	}

	return token, nil
}

// NormaliseID - map the zero sentinel to the smallest valid id
//
// compact integer encodings cannot distinguish an empty value from
// zero, so the zero id is reserved and reads as id 1
func NormaliseID(id uint64) uint64 {
	if 0 == id {
		return 1
	}
	return id
}

// Exists - check for a registry record
func Exists(trx storage.Transaction, id uint64) bool {
	return trx.Has(storage.Pool.Tokens, util.IDToKey(id))
}

// Get - fetch and decode one token
func Get(id uint64) (*Token, error) {
	packed := storage.Pool.Tokens.Get(util.IDToKey(NormaliseID(id)))
	if nil == packed {
		return nil, fault.TokenDoesNotExist
	}
	return Unpack(packed)
}

// GetProperties - a token's immutable read-only data
func GetProperties(id uint64) ([]byte, error) {
	token, err := Get(id)
	if nil != err {
		return nil, err
	}
	return token.Properties, nil
}

// GetURI - a token's resource identifier
func GetURI(id uint64) ([]byte, error) {
	token, err := Get(id)
	if nil != err {
		return nil, err
	}
	return token.URI, nil
}

// GetAuxData - a token's auxiliary data
func GetAuxData(id uint64) ([]byte, error) {
	token, err := Get(id)
	if nil != err {
		return nil, err
	}
	return token.AuxData, nil
}

// put - store a record, only during mint or administrative update
func put(trx storage.Transaction, id uint64, token *Token) {
	trx.Put(storage.Pool.Tokens, util.IDToKey(id), token.Pack())
}

// SetURI - administrative URI update
//
// properties are deliberately not updatable: they are the token's
// immutable provenance
func SetURI(trx storage.Transaction, id uint64, uri []byte) error {
	id = NormaliseID(id)
	packed := trx.Get(storage.Pool.Tokens, util.IDToKey(id))
	if nil == packed {
		return fault.TokenDoesNotExist
	}
	token, err := Unpack(packed)
	if nil != err {
		return err
	}
	token.URI = uri
	put(trx, id, token)
	return nil
}

// SetAuxData - auxiliary administrator data update
func SetAuxData(trx storage.Transaction, id uint64, data []byte) error {
	id = NormaliseID(id)
	packed := trx.Get(storage.Pool.Tokens, util.IDToKey(id))
	if nil == packed {
		return fault.TokenDoesNotExist
	}
	token, err := Unpack(packed)
	if nil != err {
		return err
	}
	token.AuxData = data
	put(trx, id, token)
	return nil
}

// Create - store a fresh registry record at mint
//
// the caller is responsible for existence and field validation
func Create(trx storage.Transaction, id uint64, properties []byte, uri []byte, auxData []byte) {
	put(trx, id, &Token{
		Properties: properties,
		URI:        uri,
		AuxData:    auxData,
	})
}
