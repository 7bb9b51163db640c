// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pmr

import "unsafe"

// MaxAlign is the alignment used when none is requested explicitly.
const MaxAlign = 16

// MemoryResource is an allocation strategy.
type MemoryResource interface {
	// Allocate returns at least bytes bytes aligned to alignment, or nil if
	// the request cannot be satisfied. alignment must be a power of two.
	Allocate(bytes, alignment uintptr) unsafe.Pointer

	// Deallocate releases memory obtained from Allocate with the same
	// bytes and alignment.
	Deallocate(p unsafe.Pointer, bytes, alignment uintptr)
}

// AlignUp rounds n up to a multiple of alignment, a power of two.
func AlignUp(n, alignment uintptr) uintptr {
	return (n + alignment - 1) &^ (alignment - 1)
}

// IsPow2 reports whether n is a non-zero power of two.
func IsPow2(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// alignPtr advances p to the next multiple of alignment.
func alignPtr(p unsafe.Pointer, alignment uintptr) unsafe.Pointer {
	addr := uintptr(p)
	return unsafe.Add(p, AlignUp(addr, alignment)-addr)
}
