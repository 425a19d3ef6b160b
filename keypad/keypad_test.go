// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypad

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

// manualTrigger records the attached function so the test drives the ticks.
type manualTrigger struct {
	f    func()
	freq physic.Frequency
}

func (m *manualTrigger) Attach(f func(), freq physic.Frequency) error {
	if m.f != nil {
		return errors.New("already attached")
	}
	m.f, m.freq = f, freq
	return nil
}

func (m *manualTrigger) Detach() error {
	m.f = nil
	return nil
}

func (m *manualTrigger) fire(n int) {
	for range n {
		m.f()
	}
}

// script returns its samples one per call, repeating the last one.
type script struct {
	samples []uint32
	i       int
}

func (s *script) Sample() uint32 {
	v := s.samples[s.i]
	if s.i < len(s.samples)-1 {
		s.i++
	}
	return v
}

func TestNew_fail(t *testing.T) {
	if _, err := New(nil, &manualTrigger{}, nil); err == nil {
		t.Fatal("expected error without sampler")
	}
	opts := DefaultOpts
	opts.Capacity = 1
	if _, err := New(SamplerFunc(func() uint32 { return 0 }), &manualTrigger{}, &opts); err == nil {
		t.Fatal("expected error with capacity 1")
	}
}

func TestScanner(t *testing.T) {
	trig := &manualTrigger{}
	keys := &script{samples: []uint32{0x010000}}
	s, err := New(keys, trig, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "Keypad{50Hz}" {
		t.Fatal(s.String())
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if trig.freq != 50*physic.Hertz {
		t.Fatalf("attached at %s", trig.freq)
	}
	if got := s.Poll(); got != nil {
		t.Fatalf("Poll() before any tick = %q", got)
	}
	trig.fire(4)
	if st := s.Stage(); st != StableNew {
		t.Fatalf("Stage() = %s", st)
	}
	if diff := cmp.Diff([]string{"1"}, s.Poll()); diff != "" {
		t.Fatalf("Poll() (-want +got):\n%s", diff)
	}
	if st := s.Stage(); st != Consumed {
		t.Fatalf("Stage() = %s", st)
	}
	trig.fire(20)
	if got := s.Poll(); got != nil {
		t.Fatalf("Poll() after acknowledge = %q", got)
	}
	if err := s.Halt(); err != nil {
		t.Fatal(err)
	}
	if trig.f != nil {
		t.Fatal("trigger still attached")
	}
}

func TestScanner_slowConsumer(t *testing.T) {
	// Press 2, release, press 9 and release before the consumer polls.
	var samples []uint32
	for _, c := range []uint32{0x000100, 0, 0x000004, 0} {
		for range 4 {
			samples = append(samples, c)
		}
	}
	trig := &manualTrigger{}
	s, err := New(&script{samples: samples}, trig, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	trig.fire(len(samples))
	if p := s.Pending(); p != 4 {
		t.Fatalf("Pending() = %d", p)
	}
	if diff := cmp.Diff([]string{"2", "", "9", ""}, s.Poll()); diff != "" {
		t.Fatalf("Poll() (-want +got):\n%s", diff)
	}
}

func TestTicker(t *testing.T) {
	var n atomic.Int32
	tk := &Ticker{}
	if err := tk.Attach(func() { n.Add(1) }, 0); err == nil {
		t.Fatal("expected error on zero frequency")
	}
	if err := tk.Attach(func() { n.Add(1) }, 1*physic.KiloHertz); err != nil {
		t.Fatal(err)
	}
	if err := tk.Attach(func() {}, 1*physic.KiloHertz); err == nil {
		t.Fatal("expected error on double attach")
	}
	deadline := time.Now().Add(5 * time.Second)
	for n.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := tk.Detach(); err != nil {
		t.Fatal(err)
	}
	if n.Load() < 3 {
		t.Fatalf("ticked %d times", n.Load())
	}
	after := n.Load()
	time.Sleep(10 * time.Millisecond)
	if n.Load() != after {
		t.Fatal("ticked after Detach")
	}
	if err := tk.Detach(); err != nil {
		t.Fatal(err)
	}
}
