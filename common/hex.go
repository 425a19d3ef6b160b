// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHex is returned when a string is not valid hexadecimal ASCII of
// the expected length.
var ErrMalformedHex = errors.New("common: malformed hex")

// BytesToHex returns b as upper case hexadecimal ASCII, two characters per
// byte, without prefix or separator.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// HexToBytes is the inverse of BytesToHex. The input is case insensitive.
//
// Odd lengths and characters outside [0-9A-Fa-f] return ErrMalformedHex.
func HexToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedHex, s, err)
	}
	return b, nil
}

// IntToHex formats v as exactly nibbles upper case hexadecimal characters,
// zero padded. Bits of v that do not fit are discarded.
func IntToHex(v uint64, nibbles int) string {
	if nibbles < 16 {
		v &= 1<<(4*uint(nibbles)) - 1
	}
	return fmt.Sprintf("%0*X", nibbles, v)
}

// HexToByte parses exactly two hexadecimal characters.
func HexToByte(s string) (byte, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q is not 2 characters", ErrMalformedHex, s)
	}
	b, err := HexToBytes(s)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// LEHexToUint32 parses 8 hexadecimal characters holding 4 bytes sent least
// significant byte first.
func LEHexToUint32(s string) (uint32, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("%w: %q is not 8 characters", ErrMalformedHex, s)
	}
	b, err := HexToBytes(s)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}
