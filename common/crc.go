// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages: the
// hexadecimal ASCII transcoding spoken by serial 1-wire adapters and the
// Dallas/Maxim CRC-16.
package common

// CRC16 calculates the Dallas/Maxim 16-bit CRC (polynomial x¹⁶+x¹⁵+x²+1,
// reflected, initial value 0) of the byte slice parameter.
//
// 1-wire devices such as the DS2423 transmit the complement of this value,
// least significant byte first.
func CRC16(bytes []byte) uint16 {
	var crc uint16
	for _, val := range bytes {
		crc ^= uint16(val)
		for range 8 {
			if (crc & 1) == 0 {
				crc >>= 1
			} else {
				crc = (crc >> 1) ^ 0xa001
			}
		}
	}
	return crc
}

// CheckCRC16 returns true if the last two bytes of buf hold the inverted
// CRC16 of the preceding bytes, as sent on the 1-wire bus.
func CheckCRC16(buf []byte) bool {
	if len(buf) < 3 {
		return false
	}
	n := len(buf) - 2
	crc := ^CRC16(buf[:n])
	return buf[n] == byte(crc) && buf[n+1] == byte(crc>>8)
}
