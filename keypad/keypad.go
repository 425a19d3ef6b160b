// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypad

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/keywire/fifo"
)

// Opts contains options to pass to the constructor.
type Opts struct {
	Capacity  int              // number of key events buffered between two polls
	Frequency physic.Frequency // scan frequency, 50..100Hz is typical
	Logger    *zerolog.Logger  // nil disables logging
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Capacity:  20,
	Frequency: 50 * physic.Hertz,
}

// New returns a Scanner sampling s each time t fires.
//
// The scan does not start until Start is called.
func New(s Sampler, t Trigger, opts *Opts) (*Scanner, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if s == nil || t == nil {
		return nil, errors.New("keypad: sampler and trigger are required")
	}
	buf, err := fifo.New[uint32](opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("keypad: %w", err)
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Scanner{
		sampler: s,
		trigger: t,
		freq:    opts.Frequency,
		buf:     buf,
		deb:     NewDebouncer(buf),
		codes:   make([]uint32, 0, opts.Capacity),
		log:     log,
	}, nil
}

// Scanner owns the debounce state and the key event buffer shared between
// the trigger context and the consumer.
type Scanner struct {
	sampler Sampler
	trigger Trigger
	freq    physic.Frequency
	buf     *fifo.Ring[uint32]
	deb     *Debouncer
	codes   []uint32 // consumer scratch space
	log     zerolog.Logger
}

func (s *Scanner) String() string {
	return fmt.Sprintf("Keypad{%s}", s.freq)
}

// Start attaches the scan to the trigger.
func (s *Scanner) Start() error {
	s.log.Debug().Stringer("freq", s.freq).Msg("keypad: scan started")
	return s.trigger.Attach(s.Tick, s.freq)
}

// Halt implements conn.Resource.
//
// It detaches the scan from the trigger. Buffered events are kept.
func (s *Scanner) Halt() error {
	s.log.Debug().Int("pending", s.buf.Len()).Msg("keypad: scan stopped")
	return s.trigger.Detach()
}

// Tick samples the keypad once and debounces the result. It is the function
// attached to the trigger and is exported for triggers driven by the caller.
func (s *Scanner) Tick() {
	s.deb.Tick(s.sampler.Sample())
}

// Stage returns the debounce stage.
func (s *Scanner) Stage() Stage {
	return s.deb.Stage()
}

// Pending returns the number of buffered key events.
func (s *Scanner) Pending() int {
	return s.buf.Len()
}

// Poll returns the decoded symbols of every buffered key event, oldest first,
// and acknowledges them. A release decodes to "".
//
// It returns nil when no new stable key state was detected since the last
// acknowledged one.
func (s *Scanner) Poll() []string {
	if s.deb.Stage() != StableNew {
		return nil
	}
	var out []string
	if s.buf.Len() != 0 {
		s.codes = s.buf.GetAll(s.codes[:0])
		out = make([]string, len(s.codes))
		for i, c := range s.codes {
			out[i] = Decode(c)
		}
		s.log.Debug().Int("events", len(out)).Strs("symbols", out).Msg("keypad: drained")
	}
	if !s.deb.Acknowledge() {
		s.log.Debug().Stringer("stage", s.deb.Stage()).Msg("keypad: key changed while draining")
	}
	return out
}

var _ conn.Resource = &Scanner{}
