// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/keywire/keypad"
)

var decodeCmd = &cobra.Command{
	Use:   "decode CODE...",
	Short: "Decode keypad scan codes",
	Long: `Decode keypad scan codes into the keys they stand for. A code holds one 4 bit
row mask per column: bits 16..19 for column 0, 8..11 for column 1 and 0..3
for column 2.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			v, err := strconv.ParseUint(a, 0, 32)
			if err != nil {
				return fmt.Errorf("code %q: %w", a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%06X  %q\n", v, keypad.Decode(uint32(v)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
