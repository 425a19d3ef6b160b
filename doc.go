// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keywire is a container for the keypad scanner and the 1-wire
// adapter driver of a small sensor node.
//
// Packages:
//
//	fifo     lock-free single producer, single consumer sample ring
//	keypad   debounced 3x4 matrix keypad scanner and decoder
//	ha7s     HA7S serial 1-wire adapter: DS18B20 and DS2423 devices
//	common   hex transcoding and CRC-16 shared by the above
//	cmd/ha7s command line front end to the adapter
package keywire
