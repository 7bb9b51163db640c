// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"reflect"
	"unsafe"

	"code.hybscloud.com/atomix"
	"github.com/pkg/errors"

	"code.hybscloud.com/shmq/concur"
	"code.hybscloud.com/shmq/pmr"
)

// DefaultCapacity is the capacity used when 0 is passed to a constructor.
const DefaultCapacity = 1024

// Queue is a bounded lock-free FIFO whose algorithm is fixed by the
// producer relation P and the consumer relation C.
//
// All slots live in one data block obtained from a [pmr.MemoryResource] at
// construction. The block is never resized or moved; steady-state Push and
// Pop never call the resource.
//
// A Queue whose construction failed is invalid: every operation is a safe
// no-op reporting failure, and [Queue.Err] tells why. A Queue must not be
// copied after construction.
//
// Memory: one block of header + capacity cache-line padded slots
type Queue[T any, P, C concur.Relation] struct {
	_     noCopy
	alloc pmr.Allocator
	data  *block[T]
	slots []concur.Slot[T]
	model concur.Model[T, P, C]
	err   error
	_     [concur.CacheLineSize]byte
	size  atomix.Int64 // Approximate element count
	_     [concur.CacheLineSize - 8]byte
	ctx   concur.Context
}

// SPSC is a single-producer single-consumer queue.
type SPSC[T any] = Queue[T, concur.Single, concur.Single]

// MPSC is a multi-producer single-consumer queue.
type MPSC[T any] = Queue[T, concur.Multi, concur.Single]

// SPMC is a single-producer multi-consumer queue.
type SPMC[T any] = Queue[T, concur.Single, concur.Multi]

// MPMC is a multi-producer multi-consumer queue.
type MPMC[T any] = Queue[T, concur.Multi, concur.Multi]

// NewQueue creates a queue of capacity elements backed by mr.
//
// capacity 0 selects [DefaultCapacity]; any positive capacity is used as is.
// A nil mr selects [pmr.NewDelete]. T must be pointer-free.
//
// NewQueue never fails loudly: if the block cannot be built the returned
// queue is invalid.
func NewQueue[T any, P, C concur.Relation](capacity int, mr pmr.MemoryResource) *Queue[T, P, C] {
	if mr == nil {
		mr = pmr.NewDelete()
	}
	q := &Queue[T, P, C]{alloc: pmr.NewAllocator(mr)}
	q.data, q.err = q.init(capacity)
	if q.err != nil {
		logDebug("queue construction failed", "model", q.model.String(), "capacity", capacity, "err", q.err)
		return q
	}
	q.slots = q.data.slots()
	return q
}

// NewSPSC creates a single-producer single-consumer queue.
func NewSPSC[T any](capacity int, mr pmr.MemoryResource) *SPSC[T] {
	return NewQueue[T, concur.Single, concur.Single](capacity, mr)
}

// NewMPSC creates a multi-producer single-consumer queue.
func NewMPSC[T any](capacity int, mr pmr.MemoryResource) *MPSC[T] {
	return NewQueue[T, concur.Multi, concur.Single](capacity, mr)
}

// NewSPMC creates a single-producer multi-consumer queue.
func NewSPMC[T any](capacity int, mr pmr.MemoryResource) *SPMC[T] {
	return NewQueue[T, concur.Single, concur.Multi](capacity, mr)
}

// NewMPMC creates a multi-producer multi-consumer queue.
func NewMPMC[T any](capacity int, mr pmr.MemoryResource) *MPMC[T] {
	return NewQueue[T, concur.Multi, concur.Multi](capacity, mr)
}

func (q *Queue[T, P, C]) init(capacity int) (*block[T], error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 0 || uint64(capacity) > maxCapacity[T]() {
		return nil, errors.Wrapf(ErrCapacity, "capacity %d", capacity)
	}
	if t := reflect.TypeFor[T](); !pointerFree(t) {
		return nil, errors.Wrapf(ErrPointerElem, "element type %s", t)
	}
	if !q.alloc.Valid() {
		return nil, errors.Wrap(ErrAllocation, "no memory resource")
	}

	n := uint64(capacity)
	size := sizeOf[T](n)
	p := q.alloc.AllocAligned(size, blockAlign)
	if p == nil {
		return nil, errors.Wrapf(ErrAllocation, "%d bytes", size)
	}
	b, err := construct[T](p, n)
	if err != nil {
		q.alloc.FreeAligned(p, size, blockAlign)
		return nil, err
	}
	return b, nil
}

// Valid reports whether the data block is allocated and the allocator
// refers to a resource.
func (q *Queue[T, P, C]) Valid() bool {
	return q.data != nil && q.alloc.Valid()
}

// Err returns why the queue is invalid, or nil if it is valid.
func (q *Queue[T, P, C]) Err() error {
	return q.err
}

// Cap returns the queue capacity, or 0 if the queue is invalid.
func (q *Queue[T, P, C]) Cap() int {
	if q.data == nil {
		return 0
	}
	return int(q.data.hdr.Cap())
}

// ApproxSize returns the approximate number of elements in the queue.
//
// A successful Push or Pop and the counter update are separate steps, so
// concurrent observers may see a transient mismatch with the true
// occupancy. The result is clamped to [0, Cap()] and is exact once all
// in-flight operations complete.
func (q *Queue[T, P, C]) ApproxSize() int64 {
	n := q.size.LoadRelaxed()
	if n < 0 {
		return 0
	}
	if c := int64(q.Cap()); n > c {
		return c
	}
	return n
}

// Empty reports whether the queue is invalid or approximately empty.
func (q *Queue[T, P, C]) Empty() bool {
	return !q.Valid() || q.ApproxSize() == 0
}

// Push adds v to the queue.
// Returns false if the queue is full or invalid.
func (q *Queue[T, P, C]) Push(v T) bool {
	return q.push(&v)
}

// Pop moves the oldest element into *v.
// Returns false, leaving *v unchanged, if the queue is empty or invalid.
func (q *Queue[T, P, C]) Pop(v *T) bool {
	if !q.Valid() {
		return false
	}
	if !q.model.Dequeue(q.slots, &q.data.hdr, &q.ctx, v) {
		return false
	}
	q.size.Add(-1)
	return true
}

// Enqueue adds *elem to the queue.
// Returns ErrWouldBlock if the queue is full, ErrInvalid if it is invalid.
func (q *Queue[T, P, C]) Enqueue(elem *T) error {
	if !q.Valid() {
		return ErrInvalid
	}
	if !q.push(elem) {
		return ErrWouldBlock
	}
	return nil
}

// Dequeue removes and returns the oldest element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty,
// (zero-value, ErrInvalid) if it is invalid.
func (q *Queue[T, P, C]) Dequeue() (T, error) {
	var elem T
	if !q.Valid() {
		return elem, ErrInvalid
	}
	if !q.Pop(&elem) {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

func (q *Queue[T, P, C]) push(v *T) bool {
	if !q.Valid() {
		return false
	}
	if !q.model.Enqueue(q.slots, &q.data.hdr, &q.ctx, v) {
		return false
	}
	q.size.Add(1)
	return true
}

// Close destroys every slot's element and returns the data block to the
// memory resource. The queue is invalid afterwards. Close is idempotent but
// must not run concurrently with other operations.
func (q *Queue[T, P, C]) Close() error {
	b := q.data
	if b == nil {
		return nil
	}
	q.data, q.slots, q.err = nil, nil, ErrClosed
	size := b.byteSize()
	err := b.destroy()
	q.alloc.FreeAligned(unsafe.Pointer(b), size, blockAlign)
	q.size.StoreRelaxed(0)
	q.ctx.Reset()
	logDebug("queue closed", "model", q.model.String(), "bytes", size, "err", err)
	return err
}

// noCopy may be embedded into structs which must not be copied after the
// first use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
