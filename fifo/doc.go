// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fifo implements a fixed capacity circular buffer of integer samples
// that hands data from a periodic trigger callback to an ordinary consumer.
//
// A Ring supports exactly one producer and one consumer running concurrently.
// The producer (Put) never blocks and never allocates: when the buffer is full
// the sample is dropped, although Peek still reports it. The occupancy counter
// is the only word written by both sides; its update is atomic, so a Put
// running in the trigger context cannot interleave with the consumer's Get.
//
// Everything else is owned by one side only: the put index by the producer and
// the get index by the consumer. Flush is a consumer operation.
package fifo
