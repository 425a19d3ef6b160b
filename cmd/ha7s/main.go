// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ha7s talks to 1-wire devices through an HA7S serial adapter.
//
// Usage:
//
//	ha7s -p /dev/ttyUSB0 scan
//	ha7s -p /dev/ttyUSB0 temp
//	ha7s -p /dev/ttyUSB0 counters
//	ha7s -p /dev/ttyUSB0 write F60000000CDFAD1D 0x1E0 hello
//	ha7s -p /dev/ttyUSB0 copy F60000000CDFAD1D
//	ha7s -p /dev/ttyUSB0 page F60000000CDFAD1D 15
//	ha7s decode 0x010203
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
