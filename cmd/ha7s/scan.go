// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"github.com/GermanBionicSystems/keywire/ha7s"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the devices on the bus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		roms, err := d.ScanForDevices()
		for _, rom := range roms {
			fmt.Fprintf(cmd.OutOrStdout(), "%016X  %s\n", uint64(rom), familyName(ha7s.Family(rom)))
		}
		if err != nil {
			return err
		}
		logger.Info().Int("devices", len(roms)).Msg("scan done")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the 1-wire bus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		return d.Reset()
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the serial ports of this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.GetPortsList()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd, resetCmd, portsCmd)
}
