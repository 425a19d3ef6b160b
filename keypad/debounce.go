// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypad

import (
	"sync/atomic"

	"github.com/GermanBionicSystems/keywire/fifo"
)

// Stage is the debounce state of the input.
type Stage uint32

const (
	// Changed means the last sample differs from the one before.
	Changed Stage = iota
	// Debounce1 means the sample was seen twice in a row.
	Debounce1
	// Debounce2 means the sample was seen three times in a row.
	Debounce2
	// StableNew means the sample is stable and was put in the buffer; the
	// consumer has not acknowledged it yet.
	StableNew
	// Consumed means the consumer acknowledged the stable sample.
	Consumed
)

func (s Stage) String() string {
	switch s {
	case Changed:
		return "Changed"
	case Debounce1:
		return "Debounce1"
	case Debounce2:
		return "Debounce2"
	case StableNew:
		return "StableNew"
	case Consumed:
		return "Consumed"
	default:
		return "Stage(?)"
	}
}

// Debouncer filters raw samples and puts each stable one in a ring exactly
// once.
//
// Tick is called from the trigger context; Stage and Acknowledge may be
// called concurrently from the consumer.
type Debouncer struct {
	buf      *fifo.Ring[uint32]
	last     uint32        // sample of the latest tick
	previous uint32        // baseline the latest sample is compared to
	stage    atomic.Uint32 // Stage
}

// NewDebouncer returns a Debouncer feeding buf.
//
// The initial baseline is 0 (no key), so an idle keypad produces one release
// event after start up.
func NewDebouncer(buf *fifo.Ring[uint32]) *Debouncer {
	return &Debouncer{buf: buf}
}

// Tick processes one sample and reports whether it was put in the buffer.
func (d *Debouncer) Tick(sample uint32) bool {
	d.last = sample
	if d.last != d.previous {
		d.previous = d.last
		d.stage.Store(uint32(Changed))
		return false
	}
	switch s := Stage(d.stage.Load()); s {
	case Changed, Debounce1:
		d.stage.CompareAndSwap(uint32(s), uint32(s+1))
	case Debounce2:
		d.buf.Put(d.last)
		d.stage.CompareAndSwap(uint32(Debounce2), uint32(StableNew))
		return true
	}
	return false
}

// Stage returns the current debounce stage.
func (d *Debouncer) Stage() Stage {
	return Stage(d.stage.Load())
}

// Acknowledge marks a StableNew sample as Consumed. It returns false and
// leaves the stage untouched if the stage was not StableNew, for example
// because a new sample arrived in the meantime.
func (d *Debouncer) Acknowledge() bool {
	return d.stage.CompareAndSwap(uint32(StableNew), uint32(Consumed))
}
