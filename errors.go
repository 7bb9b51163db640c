// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"code.hybscloud.com/iox"
	"github.com/pkg/errors"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the queue is full (backpressure)
// For Dequeue: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalid is returned by Enqueue and Dequeue on a queue whose
// construction failed or which has been closed. [Queue.Err] reports why.
var ErrInvalid = errors.New("shmq: invalid queue")

// Construction failures reported by [Queue.Err].
var (
	ErrCapacity    = errors.New("shmq: capacity out of range")
	ErrAllocation  = errors.New("shmq: data block allocation failed")
	ErrPointerElem = errors.New("shmq: element type contains pointers")
	ErrConstruct   = errors.New("shmq: element construction failed")
	ErrClosed      = errors.New("shmq: queue closed")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
