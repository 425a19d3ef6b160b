// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ha7s_test

import (
	"fmt"
	"log"

	"go.bug.st/serial"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ds18b20"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/keywire/ha7s"
)

// openPort opens the serial port the HA7S is plugged in.
func openPort(name string) serial.Port {
	p, err := serial.Open(name, &serial.Mode{BaudRate: 9600, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit})
	if err != nil {
		log.Fatal(err)
	}
	// Reads must return quickly so the adapter can be polled.
	if err := p.SetReadTimeout(ha7s.DefaultOpts.PollInterval); err != nil {
		log.Fatal(err)
	}
	return p
}

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p := openPort("/dev/ttyUSB0")
	defer p.Close()

	d, err := ha7s.New(p, nil)
	if err != nil {
		log.Fatal(err)
	}
	roms, err := d.ScanForDevices()
	if err != nil {
		log.Fatal(err)
	}
	for _, rom := range roms {
		switch ha7s.Family(rom) {
		case ha7s.DS18B20:
			c, err := d.ReadTemperature(rom)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%016X: %.2f°C\n", uint64(rom), c)
		case ha7s.DS2423:
			a, b, err := d.ReadCounters(rom)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%016X: A=%d B=%d\n", uint64(rom), a, b)
		}
	}
}

// The adapter also implements onewire.Bus, so 1-wire device drivers work
// through it.
func ExampleDev_Tx() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p := openPort("/dev/ttyUSB0")
	defer p.Close()

	d, err := ha7s.New(p, nil)
	if err != nil {
		log.Fatal(err)
	}
	roms, err := d.Search(false)
	if err != nil {
		log.Fatal(err)
	}
	for _, rom := range roms {
		if ha7s.Family(rom) != ha7s.DS18B20 {
			continue
		}
		s, err := ds18b20.New(d, rom, 10)
		if err != nil {
			log.Fatal(err)
		}
		var e physic.Env
		if err := s.Sense(&e); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %s\n", s, e.Temperature)
	}
}
