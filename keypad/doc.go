// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keypad debounces and decodes a 3 column by 4 row telephone style
// keypad.
//
// The electrical scan is left to a Sampler, which returns a packed code with
// one row bitmask per column: column 0 in bits 16..19, column 1 in bits 8..11
// and column 2 in bits 0..3. A Trigger calls the Scanner periodically (50 to
// 100Hz). On every tick the Scanner samples the keypad and feeds the
// Debouncer; once a code has been stable long enough it is put in a fifo.Ring.
// The consumer calls Poll from its own loop to drain the ring and translate
// each code into symbols with Decode.
//
// Key releases are events too: the code 0 debounces exactly like a press and
// decodes to "".
package keypad
