// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fifo

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// MinCapacity is the smallest number of samples a Ring can hold.
const MinCapacity = 2

var (
	// ErrInvalidCapacity is returned by New when the capacity is below
	// MinCapacity.
	ErrInvalidCapacity = errors.New("fifo: invalid capacity")
	// ErrEmpty is returned by Get when no sample is available.
	ErrEmpty = errors.New("fifo: empty")
)

// Sample lists the element types a Ring can hold: 8, 16 and 32 bits, signed
// or unsigned.
type Sample interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

// Ring is a single-producer/single-consumer circular buffer.
//
// The zero value is not usable, use New.
type Ring[T Sample] struct {
	data  []T
	put   int          // next slot to write; producer only
	get   int          // next slot to read; consumer only
	count atomic.Int32 // samples published and not yet consumed
	last  atomic.Int64 // most recent Put value, even when dropped
}

// New returns an empty Ring able to hold capacity samples.
//
// All the memory the Ring uses is allocated here.
func New[T Sample](capacity int) (*Ring[T], error) {
	if capacity < MinCapacity {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidCapacity, capacity, MinCapacity)
	}
	r := &Ring[T]{data: make([]T, capacity)}
	r.last.Store(-1)
	return r, nil
}

func (r *Ring[T]) String() string {
	return fmt.Sprintf("Ring{%d/%d}", r.Len(), len(r.data))
}

// Put appends v to the buffer.
//
// Put must only be called from the producer. It records v as the value
// returned by Peek, then drops v silently if the buffer is full.
func (r *Ring[T]) Put(v T) {
	r.last.Store(int64(v))
	if int(r.count.Load()) >= len(r.data) {
		return
	}
	r.data[r.put] = v
	if r.put++; r.put == len(r.data) {
		r.put = 0
	}
	// Publishes the slot written above to the consumer.
	r.count.Add(1)
}

// Get removes and returns the oldest sample.
//
// Get must only be called from the consumer. It returns ErrEmpty when nothing
// is buffered.
func (r *Ring[T]) Get() (T, error) {
	if r.count.Load() == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return r.pop(), nil
}

// GetAll appends to dst every sample buffered when the call starts, in the
// order they were put, and returns the extended slice.
//
// Samples put while GetAll runs stay in the buffer. Passing a dst with enough
// capacity avoids any allocation.
func (r *Ring[T]) GetAll(dst []T) []T {
	for n := r.count.Load(); n > 0; n-- {
		dst = append(dst, r.pop())
	}
	return dst
}

// Peek returns the value of the last Put, whether it was stored or dropped.
//
// Before the first Put it returns -1 converted to T (the maximum value for
// unsigned types).
func (r *Ring[T]) Peek() T {
	return T(r.last.Load())
}

// Len returns the number of samples waiting to be fetched.
func (r *Ring[T]) Len() int {
	return int(r.count.Load())
}

// Cap returns the number of samples the buffer can hold.
func (r *Ring[T]) Cap() int {
	return len(r.data)
}

// RoomLeft returns how many more samples can be put before the buffer drops
// new ones.
func (r *Ring[T]) RoomLeft() int {
	return len(r.data) - r.Len()
}

// Flush discards every buffered sample. Peek is not affected.
//
// Flush must only be called from the consumer; it skips the get index past
// the published samples so a concurrent Put is never lost or torn.
func (r *Ring[T]) Flush() {
	n := r.count.Load()
	r.get = (r.get + int(n)) % len(r.data)
	r.count.Add(-n)
}

func (r *Ring[T]) pop() T {
	v := r.data[r.get]
	if r.get++; r.get == len(r.data) {
		r.get = 0
	}
	r.count.Add(-1)
	return v
}
