// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ds18b20"

	"github.com/GermanBionicSystems/keywire/ha7s"
)

var (
	usePeriph  bool
	resolution int
)

var tempCmd = &cobra.Command{
	Use:   "temp [ROM...]",
	Short: "Read DS18B20 thermometers",
	Long: `Read the temperature of the given DS18B20 thermometers, or of all the ones
found on the bus.

With --periph the generic 1-wire DS18B20 driver runs through the adapter
instead of the adapter's own command sequence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, c, err := openDev()
		if err != nil {
			return err
		}
		defer c.Close()
		roms, err := devices(d, args, ha7s.DS18B20)
		if err != nil {
			return err
		}
		for _, rom := range roms {
			var t physic.Temperature
			if usePeriph {
				t, err = sensePeriph(d, rom)
			} else {
				var celsius float64
				celsius, err = d.ReadTemperature(rom)
				t = physic.ZeroCelsius + physic.Temperature(celsius*float64(physic.Celsius))
			}
			if err != nil {
				logger.Error().Err(err).Str("rom", fmt.Sprintf("%016X", uint64(rom))).Msg("read failed")
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%016X  %s\n", uint64(rom), t)
		}
		return nil
	},
}

func sensePeriph(bus onewire.Bus, rom onewire.Address) (physic.Temperature, error) {
	s, err := ds18b20.New(bus, rom, resolution)
	if err != nil {
		return 0, err
	}
	var e physic.Env
	if err := s.Sense(&e); err != nil {
		return 0, err
	}
	return e.Temperature, nil
}

func init() {
	tempCmd.Flags().BoolVar(&usePeriph, "periph", false, "Use the generic 1-wire DS18B20 driver")
	tempCmd.Flags().IntVar(&resolution, "resolution", 12, "Resolution in bits with --periph, 9..12")
	rootCmd.AddCommand(tempCmd)
}
