// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shmq provides bounded lock-free FIFO queues that live in a single
// allocation from a pluggable memory resource.
//
// The concurrency model is selected at compile time by the producer and
// consumer relations:
//
//   - SPSC: Single-Producer Single-Consumer
//   - MPSC: Multi-Producer Single-Consumer
//   - SPMC: Single-Producer Multi-Consumer
//   - MPMC: Multi-Producer Multi-Consumer
//
// The backing memory comes from a [pmr.MemoryResource]: the Go heap by
// default, an arena, an anonymous shared mapping, or a named shared-memory
// segment that other processes can map.
//
// # Quick Start
//
// Direct constructors:
//
//	q := shmq.NewSPSC[Event](1024, nil)        // heap-backed
//	q := shmq.NewMPMC[Request](4096, arena)    // arena-backed
//	defer q.Close()
//
// Builder API selects the model from constraints:
//
//	q := shmq.Build[Event](shmq.New(1024).SingleProducer().SingleConsumer())  // → SPSC
//	q := shmq.Build[Event](shmq.New(1024).SingleConsumer())                   // → MPSC
//	q := shmq.Build[Event](shmq.New(1024).SingleProducer())                   // → SPMC
//	q := shmq.Build[Event](shmq.New(1024))                                    // → MPMC
//
// # Basic Usage
//
// Push and Pop report success with a boolean and never block:
//
//	q := shmq.NewMPMC[int](1024, nil)
//
//	if !q.Push(42) {
//	    // Queue is full (or invalid) - handle backpressure
//	}
//
//	var v int
//	if !q.Pop(&v) {
//	    // Queue is empty (or invalid) - v is unchanged
//	}
//
// Enqueue and Dequeue are the error-returning equivalents:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        break
//	    }
//	    if !shmq.IsWouldBlock(err) {
//	        return err // ErrInvalid
//	    }
//	    backoff.Wait()
//	}
//
// # Invalid Queues
//
// Construction never panics or returns an error. If the capacity is out of
// range, the element type holds pointers, the resource cannot allocate, or
// an element fails to construct, the queue is invalid:
//
//	q := shmq.NewSPSC[int](1024, resource)
//	if !q.Valid() {
//	    log.Println(q.Err())
//	}
//
// Every operation on an invalid queue is a safe no-op reporting failure,
// and Empty reports true.
//
// # Elements
//
// Elements are copied into slots that may live outside the Go heap or in
// another address space, so T must be pointer-free: numbers, arrays and
// structs of them. Types implementing [Constructor] or [Destructor] on
// their pointer receiver are constructed in place, in slot order, when the
// queue is built (rolled back in reverse order on failure) and destroyed in
// reverse order when it is closed.
//
// # Capacity and Size
//
// Capacity is used exactly as given, is at least 1 and never changes.
// DefaultCapacity applies when 0 is passed.
//
// ApproxSize is a relaxed counter updated after each successful Push or
// Pop. It may briefly disagree with the true occupancy under concurrency
// and is clamped to [0, Cap()].
//
// # Shared Memory
//
// The data block is the header followed by the slot array:
//
//	size = sizeof(header + first slot) + (capacity-1) * sizeof(slot)
//
// Allocated from a [pmr.Shm] segment, the block starts at offset 0 of the
// segment and contains only fixed-width words, so another mapping of the
// same segment can reproduce its layout.
//
// # Thread Safety
//
// All queue operations are thread-safe within their relation constraints:
//
//   - SPSC: One producer goroutine, one consumer goroutine
//   - MPSC: Multiple producer goroutines, one consumer goroutine
//   - SPMC: One producer goroutine, multiple consumer goroutines
//   - MPMC: Multiple producer and consumer goroutines
//
// Violating these constraints (e.g., multiple producers on SPSC) causes
// undefined behavior including data corruption. Close must not run
// concurrently with any other operation.
//
// A consumer that claims a position whose producer is still writing spins
// until the element is published, and symmetrically for a producer reusing
// a slot still being read. The spin pauses the CPU and yields to the
// scheduler as it backs off; it never parks the goroutine and has no
// timeout.
//
// # Race Detection
//
// Slot payloads are ordered by acquire-release operations on the slot tag,
// which the race detector does not model. Concurrent tests are excluded
// when [RaceEnabled] is true.
//
// # Logging
//
// Building with -tags shmq_debug enables debug logging of construction
// failures and teardown through log/slog; see [SetLogger].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package shmq
