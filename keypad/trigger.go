// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypad

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Sampler returns the current packed key code. It is called from the trigger
// context and must return quickly without blocking.
type Sampler interface {
	Sample() uint32
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func() uint32

// Sample implements Sampler.
func (f SamplerFunc) Sample() uint32 {
	return f()
}

// Trigger calls a function periodically.
type Trigger interface {
	// Attach starts calling f at frequency freq. Calls never overlap.
	Attach(f func(), freq physic.Frequency) error
	// Detach stops the calls. When it returns no call is in flight.
	Detach() error
}

// Ticker is a Trigger backed by a time.Ticker running in its own goroutine.
//
// The zero value is ready to use.
type Ticker struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Attach implements Trigger.
func (t *Ticker) Attach(f func(), freq physic.Frequency) error {
	if freq <= 0 {
		return errors.New("keypad: invalid trigger frequency")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return errors.New("keypad: trigger already attached")
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(f, freq.Period(), t.stop, t.done)
	return nil
}

// Detach implements Trigger.
func (t *Ticker) Detach() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return nil
	}
	close(t.stop)
	<-t.done
	t.stop = nil
	t.done = nil
	return nil
}

func (t *Ticker) run(f func(), period time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	tick := time.NewTicker(period)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			f()
		}
	}
}

var _ Trigger = &Ticker{}
