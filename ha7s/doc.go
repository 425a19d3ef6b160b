// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ha7s drives an Embedded Data Systems HA7S 1-wire master over a
// serial link (9600 8N1).
//
// The HA7S speaks an ASCII command/response protocol. Every command is
// answered with a fixed number of characters ending with a carriage return:
//
//	S, s        search first/next device; 16 hex digit ROM code
//	A<rom>\r    reset and match ROM; echoes the ROM code
//	W<n><hex>\r reset-less block of n bytes; echoes the bytes, reads where FF
//	M\r         reset and match the last addressed ROM again
//	R\r         reset the bus
//
// Dev implements the device level operations used with DS18B20 thermometers
// and DS2423 RAM/counter chips, and the periph onewire.Bus interface so any
// periph 1-wire driver works through the adapter.
//
// **Datasheets:**
//
// https://www.embeddeddatasystems.com/assets/images/supportFiles/manuals/HA7S-Manual.pdf
//
// https://datasheets.maximintegrated.com/en/ds/DS2423.pdf
package ha7s
