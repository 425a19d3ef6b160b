// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"periph.io/x/conn/v3/onewire"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/keywire/ha7s"
)

var (
	portName string
	baudRate int
	verbose  bool
	checkCRC bool

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "ha7s",
	Short: "1-wire devices through an HA7S serial adapter",
	Long: `ha7s scans the 1-wire bus behind an HA7S adapter and talks to the devices
found there: DS18B20 thermometers and DS2423 RAM and counter chips.

Devices are named by their ROM code as the adapter prints it, 16 hexadecimal
digits with the family code last, e.g. 220000067C406C28.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port the HA7S is plugged in")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every exchange with the adapter")
	rootCmd.PersistentFlags().BoolVar(&checkCRC, "crc", false, "Verify the CRC of data read from devices")
}

// newLogger returns a console logger on stderr, colored when stderr is a
// terminal.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// openDev opens the serial port and returns the adapter behind it. The
// returned io.Closer closes the port.
func openDev() (*ha7s.Dev, io.Closer, error) {
	if portName == "" {
		return nil, nil, errors.New("--port is required")
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	p, err := serial.Open(portName, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", portName, err)
	}
	opts := ha7s.DefaultOpts
	opts.CheckCRC = checkCRC
	opts.Logger = &logger
	if err := p.SetReadTimeout(opts.PollInterval); err != nil {
		p.Close()
		return nil, nil, err
	}
	d, err := ha7s.New(p, &opts)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	logger.Debug().Str("port", portName).Int("baud", baudRate).Msg("adapter opened")
	return d, p, nil
}

// parseROM parses a ROM code as printed by the adapter.
func parseROM(s string) (onewire.Address, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("ROM code %q must be 16 hexadecimal digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("ROM code %q: %w", s, err)
	}
	return onewire.Address(v), nil
}

// devices returns the ROM codes in args, or when args is empty the ROM codes
// of family found by a bus scan.
func devices(d *ha7s.Dev, args []string, family byte) ([]onewire.Address, error) {
	if len(args) == 0 {
		roms, err := d.ScanForDevices()
		if err != nil {
			return nil, err
		}
		var out []onewire.Address
		for _, rom := range roms {
			if ha7s.Family(rom) == family {
				out = append(out, rom)
			}
		}
		return out, nil
	}
	out := make([]onewire.Address, 0, len(args))
	for _, a := range args {
		rom, err := parseROM(strings.ToUpper(a))
		if err != nil {
			return nil, err
		}
		out = append(out, rom)
	}
	return out, nil
}

func familyName(f byte) string {
	switch f {
	case ha7s.DS18B20:
		return "DS18B20"
	case ha7s.DS2423:
		return "DS2423"
	default:
		return fmt.Sprintf("family 0x%02X", f)
	}
}
