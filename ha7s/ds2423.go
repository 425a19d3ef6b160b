// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ha7s

import (
	"fmt"

	"periph.io/x/conn/v3/onewire"

	"github.com/GermanBionicSystems/keywire/common"
)

// DS2423 memory layout.
const (
	DS2423    = 0x1D  // family code
	PageSize  = 0x20  // bytes per memory page
	MemSize   = 0x200 // bytes of SRAM, 16 pages
	counterA  = 0x01DF
	counterB  = 0x01FF
	writeHalf = 16 // bytes in the first W block of a long scratchpad write
)

// ReadCounters returns the two 32 bit counters of the DS2423 at rom, the ones
// attached to pages 14 (A) and 15 (B).
//
// Each counter is fetched with a Read Memory + Counter command starting on the
// last byte of its page, so the device streams that byte, the counter, 4 zero
// bytes and a CRC-16.
func (d *Dev) ReadCounters(rom onewire.Address) (uint32, uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.address(rom); err != nil {
		return 0, 0, err
	}
	a, err := d.readCounter(counterA)
	if err != nil {
		return 0, 0, err
	}
	if _, err := d.reselect(); err != nil {
		return 0, 0, err
	}
	b, err := d.readCounter(counterB)
	if err != nil {
		return 0, 0, err
	}
	if err := d.reset(); err != nil {
		return 0, 0, err
	}
	d.log.Debug().Str("rom", formatROM(rom)).Uint32("a", a).Uint32("b", b).Msg("ha7s: counters")
	return a, b, nil
}

func (d *Dev) readCounter(addr uint16) (uint32, error) {
	// A5 TA1 TA2, data byte, counter, 4 zero bytes, CRC-16.
	r, err := d.block("A5"+swapAddr(addr), 11)
	if err != nil {
		return 0, err
	}
	if d.opts.CheckCRC {
		b, err := common.HexToBytes(r)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		if !common.CheckCRC16(b) {
			return 0, fmt.Errorf("%w: DS2423 counter at %#04x: %s", ErrCRC, addr, r)
		}
	}
	v, err := common.LEHexToUint32(r[8:16])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return v, nil
}

// WriteScratchpad writes data to the scratchpad of the DS2423 at rom, to be
// copied later at target in SRAM by ReadAndCopyScratchpad.
//
// target must be below MemSize, data at most PageSize bytes, and the write
// must not cross a page boundary; ErrInvalidWriteRequest is returned otherwise
// before anything is sent. Data longer than 16 bytes is sent in two blocks.
//
// The returned echo holds the hex encoded bytes seen on the bus. The CRC the
// device sends after a write reaching the end of a page is not read; callers
// wanting to verify the write compare the echo or read the scratchpad back.
func (d *Dev) WriteScratchpad(rom onewire.Address, data []byte, target int) (string, error) {
	if target < 0 || target >= MemSize || len(data) == 0 || len(data) > PageSize || target%PageSize+len(data) > PageSize {
		return "", fmt.Errorf("%w: %d bytes at %#04x", ErrInvalidWriteRequest, len(data), target)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.address(rom); err != nil {
		return "", err
	}
	first := data
	if len(data) > writeHalf {
		first = data[:writeHalf]
	}
	echo, err := d.block("0F"+swapAddr(uint16(target))+common.BytesToHex(first), 0)
	if err != nil {
		return echo, err
	}
	if len(data) > writeHalf {
		r, err := d.block(common.BytesToHex(data[writeHalf:]), 0)
		echo += r
		if err != nil {
			return echo, err
		}
	}
	if err := d.reset(); err != nil {
		return echo, err
	}
	return echo, nil
}

// ReadAndCopyScratchpad reads back the bytes last written to the scratchpad
// of the DS2423 at rom and copies them to SRAM.
//
// The Copy Scratchpad command is authenticated with the target address and
// ending offset bytes returned by Read Scratchpad, sent back verbatim.
func (d *Dev) ReadAndCopyScratchpad(rom onewire.Address) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.address(rom); err != nil {
		return nil, err
	}
	// AA TA1 TA2 E/S.
	r, err := d.block("AA", 3)
	if err != nil {
		return nil, err
	}
	auth := r[2:]
	ta1, err1 := common.HexToByte(auth[0:2])
	ta2, err2 := common.HexToByte(auth[2:4])
	es, err3 := common.HexToByte(auth[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, fmt.Errorf("%w: authorization bytes %q", ErrInvalidResponse, auth)
	}
	target := uint16(ta2)<<8 | uint16(ta1)
	n := int(es&0x1F) - int(target&0x1F) + 1
	if n < 1 {
		return nil, fmt.Errorf("%w: ending offset %#02x before target %#04x", ErrInvalidResponse, es&0x1F, target)
	}
	r, err = d.block("", n)
	if err != nil {
		return nil, err
	}
	data, err := common.HexToBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if _, err := d.reselect(); err != nil {
		return nil, err
	}
	if _, err := d.block("5A"+auth, 0); err != nil {
		return nil, err
	}
	if err := d.reset(); err != nil {
		return nil, err
	}
	d.log.Debug().Str("rom", formatROM(rom)).Str("auth", auth).Int("bytes", n).Msg("ha7s: scratchpad copied")
	return data, nil
}

// ReadMemoryPage reads the 32 bytes of SRAM page (modulo 16) of the DS2423 at
// rom. It returns the raw bytes and the same bytes as text, non printable
// characters replaced by '.'.
func (d *Dev) ReadMemoryPage(rom onewire.Address, page int) ([]byte, string, error) {
	addr := uint16(page&0xF) * PageSize
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.address(rom); err != nil {
		return nil, "", err
	}
	// The adapter reads at most 32 bytes per block and the command and address
	// take 3, so the page comes in two halves.
	r1, err := d.block("F0"+swapAddr(addr), PageSize/2)
	if err != nil {
		return nil, "", err
	}
	r2, err := d.block("", PageSize/2)
	if err != nil {
		return nil, "", err
	}
	if err := d.reset(); err != nil {
		return nil, "", err
	}
	b, err := common.HexToBytes(r1[6:] + r2)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return b, printable(b), nil
}

func printable(b []byte) string {
	s := make([]byte, len(b))
	for i, c := range b {
		if c < ' ' || c > '~' {
			c = '.'
		}
		s[i] = c
	}
	return string(s)
}
