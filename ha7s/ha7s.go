// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ha7s

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/onewire"

	"github.com/GermanBionicSystems/keywire/common"
)

const (
	romLen   = 16 // hex digits in a ROM code
	maxBlock = 32 // bytes in one W block
)

var (
	// ErrDeviceUnresponsive is returned when a device does not answer
	// consistently to its address after all retries.
	ErrDeviceUnresponsive error = busError("ha7s: device unresponsive")
	// ErrShortResponse is returned when the adapter sent fewer characters
	// than the command requires.
	ErrShortResponse error = busError("ha7s: short response")
	// ErrInvalidResponse is returned when a response holds values that cannot
	// be used.
	ErrInvalidResponse error = busError("ha7s: invalid response")
	// ErrCRC is returned when a CRC check of data read from a device fails.
	ErrCRC error = busError("ha7s: CRC mismatch")
	// ErrInvalidWriteRequest is returned when a scratchpad write does not fit
	// the device memory. No I/O is done in that case.
	ErrInvalidWriteRequest = errors.New("ha7s: invalid write request")
)

// Opts contains options to pass to the constructor.
type Opts struct {
	PollInterval    time.Duration   // wait between two reads returning nothing
	MaxPolls        int             // empty reads before a response is considered complete
	ResponseDelay   time.Duration   // quiet time after each response
	ConversionDelay time.Duration   // DS18B20 temperature conversion time
	Retries         int             // DS18B20 address liveness attempts
	CheckCRC        bool            // verify DS18B20 scratchpad and DS2423 counter CRCs
	Logger          *zerolog.Logger // nil disables logging
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	PollInterval:    10 * time.Millisecond,
	MaxPolls:        100,
	ResponseDelay:   84 * time.Millisecond,
	ConversionDelay: 750 * time.Millisecond,
	Retries:         3,
}

// New returns a Dev talking to an HA7S through port.
//
// Reads on port may return no data; Dev polls with a bounded loop. A serial
// port should be configured with a short read timeout for this reason.
func New(port io.ReadWriter, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if port == nil {
		return nil, errors.New("ha7s: port is required")
	}
	if opts.MaxPolls < 1 || opts.Retries < 1 {
		return nil, errors.New("ha7s: MaxPolls and Retries must be at least 1")
	}
	d := &Dev{port: port, opts: *opts, log: zerolog.Nop()}
	if opts.Logger != nil {
		d.log = *opts.Logger
	}
	return d, nil
}

// Dev is a handle to an HA7S 1-wire master.
//
// It is safe for concurrent use; every operation holds the adapter for its
// whole command sequence.
type Dev struct {
	mu   sync.Mutex
	port io.ReadWriter
	opts Opts
	log  zerolog.Logger
	buf  [64]byte
}

func (d *Dev) String() string {
	return "HA7S"
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return nil
}

// Reset issues a 1-wire bus reset.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reset()
}

// ScanForDevices returns the ROM code of every device on the bus, in the
// order the adapter found them.
//
// If an error occurs the addresses already found are returned with it.
func (d *Dev) ScanForDevices() ([]onewire.Address, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var roms []onewire.Address
	cmd := "S"
	for {
		r, err := d.txRx(cmd, romLen+1)
		if err != nil {
			return roms, err
		}
		if len(r) < romLen {
			// End of search is a lone carriage return, or nothing.
			return roms, nil
		}
		rom, err := parseROM(r[:romLen])
		if err != nil {
			return roms, err
		}
		roms = append(roms, rom)
		cmd = "s"
	}
}

// address selects rom. The adapter echoes the ROM code.
func (d *Dev) address(rom onewire.Address) (string, error) {
	r, err := d.txRx("A"+formatROM(rom)+"\r", romLen+1)
	if err != nil {
		return r, err
	}
	if len(r) < romLen {
		return r, fmt.Errorf("%w: addressing %s: %q", ErrShortResponse, formatROM(rom), r)
	}
	return r, nil
}

// reselect resets the bus and selects the last addressed device again.
func (d *Dev) reselect() (string, error) {
	return d.txRx("M\r", romLen+1)
}

func (d *Dev) reset() error {
	_, err := d.txRx("R\r", 1)
	return err
}

// block sends a W command made of the hex encoded bytes in w followed by
// nRead read slots. It returns the hex encoded bytes seen on the bus, write
// echo first, without the trailing carriage return.
func (d *Dev) block(w string, nRead int) (string, error) {
	n := len(w)/2 + nRead
	if n == 0 || n > maxBlock {
		return "", fmt.Errorf("ha7s: block of %d bytes, must be 1..%d", n, maxBlock)
	}
	frame := "W" + common.IntToHex(uint64(n), 2) + w + strings.Repeat("FF", nRead) + "\r"
	r, err := d.txRx(frame, 2*n+1)
	if err != nil {
		return r, err
	}
	if len(r) < 2*n {
		return r, fmt.Errorf("%w: %q answered %q", ErrShortResponse, strings.TrimSuffix(frame, "\r"), r)
	}
	return r[:2*n], nil
}

// txRx sends frame and collects up to n characters of response. Collection
// stops early at a carriage return, or when the port stayed silent for
// MaxPolls reads.
func (d *Dev) txRx(frame string, n int) (string, error) {
	start := time.Now()
	if _, err := io.WriteString(d.port, frame); err != nil {
		return "", fmt.Errorf("ha7s: write %q: %w", strings.TrimSuffix(frame, "\r"), err)
	}
	rx := make([]byte, 0, n)
	polls := 0
	for len(rx) < n {
		k, err := d.port.Read(d.buf[:min(n-len(rx), len(d.buf))])
		rx = append(rx, d.buf[:k]...)
		if err != nil && err != io.EOF {
			return string(rx), fmt.Errorf("ha7s: read: %w", err)
		}
		if k == 0 {
			if polls++; polls >= d.opts.MaxPolls {
				break
			}
			sleep(d.opts.PollInterval)
			continue
		}
		if rx[len(rx)-1] == '\r' {
			break
		}
	}
	sleep(d.opts.ResponseDelay)
	d.log.Debug().
		Str("tx", strings.TrimSuffix(frame, "\r")).
		Str("rx", strings.TrimSuffix(string(rx), "\r")).
		Int("polls", polls).
		Dur("elapsed", time.Since(start)).
		Msg("ha7s: exchange")
	return string(rx), nil
}

// formatROM returns the ROM code the way the adapter prints it: CRC byte
// first, family code last.
func formatROM(rom onewire.Address) string {
	return common.IntToHex(uint64(rom), romLen)
}

func parseROM(s string) (onewire.Address, error) {
	b, err := common.HexToBytes(s)
	if err != nil || len(b) != 8 {
		return 0, fmt.Errorf("%w: ROM code %q", ErrInvalidResponse, s)
	}
	return onewire.Address(binary.BigEndian.Uint64(b)), nil
}

// swapAddr returns a 16 bit device memory address as sent on the bus, least
// significant byte first.
func swapAddr(a uint16) string {
	return common.IntToHex(uint64(a&0xFF), 2) + common.IntToHex(uint64(a>>8), 2)
}

// busError implements error and onewire.BusError.
type busError string

func (e busError) Error() string  { return string(e) }
func (e busError) BusError() bool { return true }

var sleep = time.Sleep

var _ conn.Resource = &Dev{}
