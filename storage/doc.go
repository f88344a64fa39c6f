// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database with a single byte prefix
// to separate the individual pools (++ = concatenation of byte data):
//
// Tokens:
//
//	T ++ token id           - token record
//	                          data: varint properties ++ varint uri ++ varint aux data
//
// Ownership:
//
//	O ++ token id           - current owner and optional approved spender
//	                          data: owner  or  owner ++ spender
//
// Owner index:
//
//	L ++ owner ++ token id  - per owner list of owned tokens
//	                          data: token id
//
// Exchanges:
//
//	X ++ address            - delegated exchange allowlist marker
//	                          data: 01
//
// Settings:
//
//	S ++ name               - circulation counter, token name, symbol,
//	                          supported standards, post-mint contract
//
// Token ids are 8 byte big endian so that iteration in key order is
// iteration in ascending id order.
//
// All writes performed inside a transaction are buffered in a batch
// and a write-through cache; keyed reads inside the same transaction
// observe the buffered values, while the final commit is a single
// atomic batch write.  Prefix iteration and the exported pool reads
// go to the database directly, so only committed records are visible
// outside the owning transaction.
package storage
