// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestCRC16(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result uint16
	}{
		{bytes: nil, result: 0},
		{bytes: []byte("123456789"), result: 0xbb3d},
	}
	for _, test := range tests {
		res := CRC16(test.bytes)
		if res != test.result {
			t.Errorf("CRC16(%#v)!=0x%04x received 0x%04x", test.bytes, test.result, res)
		}
	}
}

func TestCheckCRC16(t *testing.T) {
	data := []byte{0xa5, 0xdf, 0x01, 0x20, 0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	crc := ^CRC16(data)
	good := append(append([]byte{}, data...), byte(crc), byte(crc>>8))
	if !CheckCRC16(good) {
		t.Fatal("valid frame rejected")
	}
	bad := append([]byte{}, good...)
	bad[4] ^= 1
	if CheckCRC16(bad) {
		t.Fatal("corrupted frame accepted")
	}
	if CheckCRC16([]byte{0, 0}) {
		t.Fatal("short frame accepted")
	}
}
