// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

// FIFO is the combined producer-consumer interface implemented by every
// [Queue] instantiation. [Build] returns it when the model is chosen at
// runtime.
//
// Example:
//
//	q := shmq.Build[int](shmq.New(1024))
//	defer q.Close()
//
//	if !q.Push(42) {
//	    // Handle full queue
//	}
//
//	var v int
//	if q.Pop(&v) {
//	    fmt.Println(v)
//	}
type FIFO[T any] interface {
	Producer[T]
	Consumer[T]

	// Cap returns the fixed capacity, or 0 for an invalid queue.
	Cap() int

	// ApproxSize returns a relaxed estimate of the number of elements.
	ApproxSize() int64

	// Empty reports whether the queue is invalid or approximately empty.
	Empty() bool

	// Valid reports whether the data block is allocated.
	Valid() bool

	// Err returns the reason the queue is invalid, or nil.
	Err() error

	// Close destroys the elements and frees the data block.
	Close() error
}

// Producer is the interface for enqueueing elements.
//
// The queue stores a copy of the value, so the original can be modified
// after the call returns.
type Producer[T any] interface {
	// Push adds v to the queue (non-blocking).
	// Returns false if the queue is full or invalid.
	//
	// Thread safety depends on the producer relation:
	//   - Single: one producer goroutine only
	//   - Multi: any number of producer goroutines
	Push(v T) bool

	// Enqueue adds *elem to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full,
	// ErrInvalid if the queue is invalid.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
type Consumer[T any] interface {
	// Pop moves the oldest element into *v (non-blocking).
	// Returns false, leaving *v unchanged, if the queue is empty or invalid.
	//
	// Thread safety depends on the consumer relation:
	//   - Single: one consumer goroutine only
	//   - Multi: any number of consumer goroutines
	Pop(v *T) bool

	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty,
	// (zero-value, ErrInvalid) if the queue is invalid.
	Dequeue() (T, error)
}

// Constructor is implemented by element types needing in-place
// initialization. Construct is called on every slot's element when a
// queue's data block is built; an error or panic aborts construction.
type Constructor interface {
	Construct() error
}

// Destructor is implemented by element types needing in-place teardown.
// Destroy is called on every constructed slot's element when construction
// is rolled back or the queue is closed.
type Destructor interface {
	Destroy()
}
