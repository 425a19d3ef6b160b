// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/keywire/ha7s"
)

var countersCmd = &cobra.Command{
	Use:   "counters [ROM...]",
	Short: "Read DS2423 counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		roms, err := devices(d, args, ha7s.DS2423)
		if err != nil {
			return err
		}
		for _, rom := range roms {
			a, b, err := d.ReadCounters(rom)
			if err != nil {
				logger.Error().Err(err).Str("rom", fmt.Sprintf("%016X", uint64(rom))).Msg("read failed")
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%016X  A=%d B=%d\n", uint64(rom), a, b)
		}
		return nil
	},
}

var pageCmd = &cobra.Command{
	Use:   "page ROM PAGE",
	Short: "Dump a 32 byte DS2423 memory page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := parseROM(args[0])
		if err != nil {
			return err
		}
		page, err := strconv.ParseUint(args[1], 0, 8)
		if err != nil || page > 15 {
			return fmt.Errorf("page %q must be 0..15", args[1])
		}
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		b, s, err := d.ReadMemoryPage(rom, int(page))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%03X  % X\n     %s\n", page*ha7s.PageSize, b, s)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write ROM TARGET TEXT",
	Short: "Write text to a DS2423 scratchpad",
	Long: `Write TEXT to the scratchpad of a DS2423, to be stored at TARGET (0..0x1FF) by
the copy command. The text must fit in the page of TARGET.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := parseROM(args[0])
		if err != nil {
			return err
		}
		target, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		echo, err := d.WriteScratchpad(rom, []byte(args[2]), target)
		if err != nil {
			return err
		}
		logger.Debug().Str("echo", echo).Msg("scratchpad written")
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy ROM",
	Short: "Copy a DS2423 scratchpad to memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := parseROM(args[0])
		if err != nil {
			return err
		}
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		b, err := d.ReadAndCopyScratchpad(rom)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "copied %d bytes: %q\n", len(b), b)
		return nil
	},
}

// parseTarget parses a DS2423 memory address, decimal or 0x prefixed.
func parseTarget(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("target %q: %w", s, err)
	}
	if v >= ha7s.MemSize {
		return 0, errors.New("target must be below 0x200")
	}
	return int(v), nil
}

func init() {
	rootCmd.AddCommand(countersCmd, pageCmd, writeCmd, copyCmd)
}
