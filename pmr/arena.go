// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pmr

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Arena is a monotonic resource over one fixed region.
//
// Allocate bumps an offset; Deallocate only gives memory back when it is the
// most recent allocation. Reset makes the whole region available again and
// invalidates every pointer previously returned.
//
// Allocate and Deallocate are safe for concurrent use.
type Arena struct {
	buf  []uint64 // Owned backing memory, nil for external regions
	base unsafe.Pointer
	size uintptr
	off  atomix.Uintptr
	peak atomix.Uintptr
}

// NewArena returns an arena owning size bytes of heap memory.
func NewArena(size uintptr) *Arena {
	buf := make([]uint64, (size+wordSize-1)/wordSize)
	return &Arena{
		buf:  buf,
		base: unsafe.Pointer(unsafe.SliceData(buf)),
		size: size,
	}
}

// NewArenaAt returns an arena carving the region [p, p+size). The region must
// stay valid for the lifetime of the arena.
func NewArenaAt(p unsafe.Pointer, size uintptr) *Arena {
	return &Arena{base: p, size: size}
}

// Allocate returns bytes bytes aligned to alignment, or nil if the rest of
// the region is too small.
func (a *Arena) Allocate(bytes, alignment uintptr) unsafe.Pointer {
	if bytes == 0 || !IsPow2(alignment) || a.base == nil {
		return nil
	}
	addr := uintptr(a.base)
	sw := spin.Wait{}
	for {
		off := a.off.LoadAcquire()
		start := AlignUp(addr+off, alignment) - addr
		if start < off || start > a.size || bytes > a.size-start {
			return nil
		}
		end := start + bytes
		if a.off.CompareAndSwapAcqRel(off, end) {
			a.raisePeak(end)
			return unsafe.Add(a.base, start)
		}
		sw.Once()
	}
}

// Deallocate rolls the arena back if p is the most recent allocation.
func (a *Arena) Deallocate(p unsafe.Pointer, bytes, _ uintptr) {
	if p == nil {
		return
	}
	start := uintptr(p) - uintptr(a.base)
	a.off.CompareAndSwapAcqRel(start+bytes, start)
}

// Reset releases every allocation at once.
func (a *Arena) Reset() {
	a.off.StoreRelease(0)
}

// Len returns the number of bytes in use, including alignment gaps.
func (a *Arena) Len() int {
	return int(a.off.LoadAcquire())
}

// Cap returns the size of the region.
func (a *Arena) Cap() int {
	return int(a.size)
}

// Peak returns the high-water mark of Len. Reset does not clear it.
func (a *Arena) Peak() int {
	return int(a.peak.LoadAcquire())
}

func (a *Arena) raisePeak(end uintptr) {
	for {
		peak := a.peak.LoadAcquire()
		if end <= peak || a.peak.CompareAndSwapAcqRel(peak, end) {
			return
		}
	}
}
