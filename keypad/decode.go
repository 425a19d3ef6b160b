// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypad

// Symbol tables indexed by the row bitmask of one column. Up to two keys
// pressed in the same column are decoded; other masks are ambiguous and map
// to "".
//
// Rows are '123', '456', '789' and '*0#' from the top (bit 0) down.
var columns = [3][16]string{
	{1: "1", 2: "4", 3: "14", 4: "7", 5: "17", 6: "47", 8: "*", 9: "*1", 10: "*4", 12: "*7"},
	{1: "2", 2: "5", 3: "25", 4: "8", 5: "28", 6: "58", 8: "0", 9: "20", 10: "50", 12: "80"},
	{1: "3", 2: "6", 3: "36", 4: "9", 5: "39", 6: "69", 8: "#", 9: "3#", 10: "6#", 12: "9#"},
}

// shifts holds the bit position of each column's row mask in a packed code.
var shifts = [3]uint{16, 8, 0}

// Decode translates a packed key code into the symbols of the pressed keys, in
// column order. It returns "" when no key is pressed.
func Decode(code uint32) string {
	if code == 0 {
		return ""
	}
	var buf [6]byte
	out := buf[:0]
	for col, shift := range shifts {
		out = append(out, columns[col][(code>>shift)&0xF]...)
	}
	return string(out)
}
