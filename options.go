// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"code.hybscloud.com/shmq/concur"
	"code.hybscloud.com/shmq/pmr"
)

// Options configures queue creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines queue model)
	singleProducer bool
	singleConsumer bool

	// Capacity (0 selects DefaultCapacity)
	capacity int

	// Backing memory (nil selects the heap resource)
	resource pmr.MemoryResource
}

// Builder creates queues with fluent configuration.
//
// The builder selects the model from the producer/consumer constraints.
//
// Example:
//
//	// SPSC queue
//	q := shmq.BuildSPSC[Event](shmq.New(1024).SingleProducer().SingleConsumer())
//
//	// MPMC queue in a shared-memory segment
//	seg, _ := pmr.OpenShm("events", 1<<20)
//	q := shmq.BuildMPMC[Event](shmq.New(4096).Resource(seg))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity is used exactly as given; 0 selects DefaultCapacity. An
// out-of-range capacity produces an invalid queue at build time.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Resource selects the memory resource backing the data block.
func (b *Builder) Resource(mr pmr.MemoryResource) *Builder {
	b.opts.resource = mr
	return b
}

// Build creates a FIFO[T] with automatic model selection.
//
// Model selection:
//
//	SingleProducer + SingleConsumer → SPSC
//	SingleProducer only             → SPMC
//	SingleConsumer only             → MPSC
//	Neither                         → MPMC
//
// For concrete return types, use:
//   - BuildSPSC[T](b) → *SPSC[T]
//   - BuildMPSC[T](b) → *MPSC[T]
//   - BuildSPMC[T](b) → *SPMC[T]
//   - BuildMPMC[T](b) → *MPMC[T]
func Build[T any](b *Builder) FIFO[T] {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewQueue[T, concur.Single, concur.Single](b.opts.capacity, b.opts.resource)
	case b.opts.singleProducer:
		return NewQueue[T, concur.Single, concur.Multi](b.opts.capacity, b.opts.resource)
	case b.opts.singleConsumer:
		return NewQueue[T, concur.Multi, concur.Single](b.opts.capacity, b.opts.resource)
	default:
		return NewQueue[T, concur.Multi, concur.Multi](b.opts.capacity, b.opts.resource)
	}
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("shmq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity, b.opts.resource)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleConsumer() only.
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("shmq: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSC[T](b.opts.capacity, b.opts.resource)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer() only.
func BuildSPMC[T any](b *Builder) *SPMC[T] {
	if !b.opts.singleProducer || b.opts.singleConsumer {
		panic("shmq: BuildSPMC requires SingleProducer() without SingleConsumer()")
	}
	return NewSPMC[T](b.opts.capacity, b.opts.resource)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if builder has any constraints set.
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleProducer || b.opts.singleConsumer {
		panic("shmq: BuildMPMC requires no constraints")
	}
	return NewMPMC[T](b.opts.capacity, b.opts.resource)
}
