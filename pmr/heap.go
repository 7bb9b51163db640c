// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pmr

import (
	"math"
	"unsafe"
)

// NewDeleteResource allocates from the Go heap.
//
// Memory is obtained as a pointer-free word array, so it is never scanned by
// the garbage collector and is reclaimed once the last pointer into it is
// dropped. Deallocate only drops the resource's interest in it.
type NewDeleteResource struct{}

var newDelete NewDeleteResource

// NewDelete returns the process-wide heap resource.
func NewDelete() *NewDeleteResource {
	return &newDelete
}

const wordSize = unsafe.Sizeof(uint64(0))

// Allocate returns zeroed heap memory aligned to alignment.
func (*NewDeleteResource) Allocate(bytes, alignment uintptr) unsafe.Pointer {
	if bytes == 0 || !IsPow2(alignment) {
		return nil
	}
	if alignment < wordSize {
		alignment = wordSize
	}
	if bytes > math.MaxInt/2-alignment {
		return nil
	}
	words := (bytes + alignment - 1) / wordSize
	buf := make([]uint64, words)
	return alignPtr(unsafe.Pointer(unsafe.SliceData(buf)), alignment)
}

// Deallocate is a no-op; the garbage collector reclaims the memory.
func (*NewDeleteResource) Deallocate(unsafe.Pointer, uintptr, uintptr) {}
