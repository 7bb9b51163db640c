// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pmr

import "unsafe"

type holderKind uint8

const (
	holderNull holderKind = iota
	holderRef
)

// Allocator is a type-erased allocation handle.
//
// It holds either nothing (the null allocator, also the zero value) or a
// reference to a [MemoryResource]. A null allocator is valid to use: Alloc
// returns nil and Free does nothing.
//
// Assigning an Allocator copies the reference, so both copies allocate from
// the same resource. Use [Allocator.Move] to transfer it instead.
type Allocator struct {
	kind holderKind
	mr   MemoryResource
}

// NewAllocator returns an allocator bound to mr, or the null allocator if
// mr is nil.
func NewAllocator(mr MemoryResource) Allocator {
	if mr == nil {
		return Allocator{}
	}
	return Allocator{kind: holderRef, mr: mr}
}

// Valid reports whether the allocator refers to a resource.
func (a *Allocator) Valid() bool {
	return a.kind == holderRef
}

// Resource returns the referenced resource, or nil for the null allocator.
func (a *Allocator) Resource() MemoryResource {
	if a.kind != holderRef {
		return nil
	}
	return a.mr
}

// Move returns a copy of a and resets a to the null allocator.
func (a *Allocator) Move() Allocator {
	moved := *a
	*a = Allocator{}
	return moved
}

// Swap exchanges the resources of a and other.
func (a *Allocator) Swap(other *Allocator) {
	*a, *other = *other, *a
}

// Alloc allocates size bytes aligned to [MaxAlign].
func (a *Allocator) Alloc(size uintptr) unsafe.Pointer {
	return a.AllocAligned(size, MaxAlign)
}

// Free releases memory obtained from Alloc with the same size.
func (a *Allocator) Free(p unsafe.Pointer, size uintptr) {
	a.FreeAligned(p, size, MaxAlign)
}

// AllocAligned allocates size bytes aligned to alignment.
func (a *Allocator) AllocAligned(size, alignment uintptr) unsafe.Pointer {
	if a.kind != holderRef {
		return nil
	}
	return a.mr.Allocate(size, alignment)
}

// FreeAligned releases memory obtained from AllocAligned with the same size
// and alignment.
func (a *Allocator) FreeAligned(p unsafe.Pointer, size, alignment uintptr) {
	if a.kind != holderRef || p == nil {
		return
	}
	a.mr.Deallocate(p, size, alignment)
}
