// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ha7s

import (
	"encoding/binary"
	"errors"
	"fmt"

	"periph.io/x/conn/v3/onewire"

	"github.com/GermanBionicSystems/keywire/common"
)

const matchROM = 0x55

// Tx implements onewire.Bus.
//
// A transaction starting with Match ROM and a full address uses the adapter's
// A command; anything else starts with a plain bus reset. The remaining bytes
// and the read slots must fit in one 32 byte block. power is ignored, the
// adapter handles the pull-up itself.
func (d *Dev) Tx(w, r []byte, power onewire.Pullup) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	payload := w
	if len(w) >= 9 && w[0] == matchROM {
		if _, err := d.address(onewire.Address(binary.LittleEndian.Uint64(w[1:9]))); err != nil {
			return err
		}
		payload = w[9:]
	} else if err := d.reset(); err != nil {
		return err
	}
	if len(payload)+len(r) == 0 {
		return nil
	}
	resp, err := d.block(common.BytesToHex(payload), len(r))
	if err != nil {
		return err
	}
	if len(r) != 0 {
		b, err := common.HexToBytes(resp[2*len(payload):])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		copy(r, b)
	}
	return nil
}

// Search implements onewire.Bus.
//
// The HA7S search order is kept. Alarm search is not supported.
func (d *Dev) Search(alarmOnly bool) ([]onewire.Address, error) {
	if alarmOnly {
		return nil, errors.New("ha7s: alarm search not supported")
	}
	return d.ScanForDevices()
}

var _ onewire.Bus = &Dev{}
