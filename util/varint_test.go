// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/splyse/nftd/util"
)

// test the varint conversion
func TestVarint64(t *testing.T) {

	tests := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{0x1234, []byte{0xb4, 0x24}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range tests {
		packed := util.ToVarint64(item.value)
		if !bytes.Equal(packed, item.expected) {
			t.Errorf("%d: ToVarint64(%d) = %x  expected: %x", i, item.value, packed, item.expected)
		}

		// append junk to ensure the count is correct
		buffer := append(packed, 0xde, 0xad)
		value, count := util.FromVarint64(buffer)
		if value != item.value {
			t.Errorf("%d: FromVarint64(%x) = %d  expected: %d", i, buffer, value, item.value)
		}
		if count != len(item.expected) {
			t.Errorf("%d: FromVarint64(%x) count = %d  expected: %d", i, buffer, count, len(item.expected))
		}
	}
}

// a truncated buffer must return 0, 0
func TestVarint64Truncated(t *testing.T) {
	value, count := util.FromVarint64([]byte{0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated varint: value: %d count: %d  expected: 0 0", value, count)
	}
}
