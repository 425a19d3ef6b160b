// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ha7s

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/keywire/common"
)

// DS18B20 is the family code of the DS18B20 thermometer.
const DS18B20 = 0x28

// Family returns the family code of a ROM code.
func Family(rom onewire.Address) byte {
	return byte(rom & 0xFF)
}

// ReadTemperature starts a conversion on the DS18B20 at rom, waits for it and
// returns the temperature in °C.
//
// The device is addressed before the conversion and selected again after it;
// both answers must match, otherwise the sequence is retried. After
// Opts.Retries failed attempts ErrDeviceUnresponsive is returned.
func (d *Dev) ReadTemperature(rom onewire.Address) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for attempt := 1; attempt <= d.opts.Retries; attempt++ {
		resp, err := d.txRx("A"+formatROM(rom)+"\r", romLen+1)
		if err != nil {
			return 0, err
		}
		// Convert T.
		if _, err := d.block("44", 0); err != nil {
			return 0, err
		}
		resp1, err := d.reselect()
		if err != nil {
			return 0, err
		}
		if len(resp) < romLen || resp != resp1 {
			d.log.Warn().
				Str("rom", formatROM(rom)).
				Int("attempt", attempt).
				Str("addressed", resp).
				Str("reselected", resp1).
				Msg("ha7s: liveness check failed")
			continue
		}
		sleep(d.opts.ConversionDelay)
		spad, err := d.readScratchpad()
		if err != nil {
			return 0, err
		}
		if err := d.reset(); err != nil {
			return 0, err
		}
		t := ParseTemperature(spad[0], spad[1])
		d.log.Debug().Str("rom", formatROM(rom)).Float64("celsius", t).Msg("ha7s: temperature")
		return t, nil
	}
	return 0, fmt.Errorf("%w: %s did not answer after %d attempts", ErrDeviceUnresponsive, formatROM(rom), d.opts.Retries)
}

// ReadTemperatures reads every DS18B20 in roms, skipping other families.
//
// It stops at the first error and returns the temperatures read so far.
func (d *Dev) ReadTemperatures(roms []onewire.Address) (map[onewire.Address]float64, error) {
	out := map[onewire.Address]float64{}
	for _, rom := range roms {
		if Family(rom) != DS18B20 {
			continue
		}
		t, err := d.ReadTemperature(rom)
		if err != nil {
			return out, err
		}
		out[rom] = t
	}
	return out, nil
}

// readScratchpad reads the 9 bytes of the selected DS18B20 scratchpad.
func (d *Dev) readScratchpad() ([]byte, error) {
	r, err := d.block("BE", 9)
	if err != nil {
		return nil, err
	}
	spad, err := common.HexToBytes(r[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if d.opts.CheckCRC && !onewire.CheckCRC(spad) {
		return nil, fmt.Errorf("%w: DS18B20 scratchpad %s", ErrCRC, r[2:])
	}
	return spad, nil
}

// ParseTemperature converts the two temperature bytes of a DS18B20
// scratchpad, a signed 16 bit value with 4 fractional bits, to °C.
func ParseTemperature(lsb, msb byte) float64 {
	raw := int(msb)<<8 | int(lsb)
	if msb < 8 {
		return float64(raw) * 0.0625
	}
	return float64(raw-65536) * 0.0625
}

// Thermometer returns a handle to the DS18B20 at rom implementing
// physic.SenseEnv.
func (d *Dev) Thermometer(rom onewire.Address) *Thermometer {
	return &Thermometer{d: d, rom: rom}
}

// Thermometer is a DS18B20 reached through an HA7S.
type Thermometer struct {
	d   *Dev
	rom onewire.Address

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func (t *Thermometer) String() string {
	return "DS18B20{" + formatROM(t.rom) + "}"
}

// Halt implements conn.Resource.
//
// It stops a running SenseContinuous.
func (t *Thermometer) Halt() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopContinuous()
	return nil
}

// Sense implements physic.SenseEnv.
func (t *Thermometer) Sense(e *physic.Env) error {
	c, err := t.d.ReadTemperature(t.rom)
	if err != nil {
		return err
	}
	e.Temperature = physic.Temperature(c*float64(physic.Kelvin)) + physic.ZeroCelsius
	return nil
}

// SenseContinuous implements physic.SenseEnv.
//
// A conversion takes about 1s, so interval should not be shorter than that.
func (t *Thermometer) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("ha7s: invalid interval %s", interval)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopContinuous()
	c := make(chan physic.Env)
	t.stop = make(chan struct{})
	t.wg.Add(1)
	go t.senseContinuous(interval, c, t.stop)
	return c, nil
}

// Precision implements physic.SenseEnv.
func (t *Thermometer) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 16
}

func (t *Thermometer) senseContinuous(interval time.Duration, c chan<- physic.Env, stop <-chan struct{}) {
	defer t.wg.Done()
	defer close(c)
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		var e physic.Env
		if err := t.Sense(&e); err != nil {
			t.d.log.Warn().Err(err).Str("rom", formatROM(t.rom)).Msg("ha7s: continuous sense")
		} else {
			select {
			case c <- e:
			case <-stop:
				return
			}
		}
		select {
		case <-tick.C:
		case <-stop:
			return
		}
	}
}

func (t *Thermometer) stopContinuous() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
		t.wg.Wait()
	}
}

var _ physic.SenseEnv = &Thermometer{}
