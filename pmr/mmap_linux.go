// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package pmr

import (
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mmap allocates every request as its own anonymous shared mapping.
//
// Mappings are populated eagerly and are never moved by the runtime. With
// huge pages enabled, requests should be multiples of the huge page size.
type Mmap struct {
	hugePages bool

	mu   sync.Mutex
	maps map[uintptr]mapping // Keyed by the aligned address handed out
}

type mapping struct {
	orig unsafe.Pointer
	size uintptr
}

// NewMmap returns an mmap-backed resource.
func NewMmap(useHugePages bool) *Mmap {
	return &Mmap{
		hugePages: useHugePages,
		maps:      map[uintptr]mapping{},
	}
}

// Allocate maps bytes bytes aligned to alignment. It returns nil if the
// kernel refuses the mapping.
func (m *Mmap) Allocate(bytes, alignment uintptr) unsafe.Pointer {
	if bytes == 0 || !IsPow2(alignment) {
		return nil
	}
	opts := unix.MAP_SHARED | unix.MAP_ANONYMOUS | unix.MAP_POPULATE
	if m.hugePages {
		opts |= unix.MAP_HUGETLB
	}

	// Mappings are page aligned; only larger alignments need slack.
	size := bytes
	if alignment > uintptr(os.Getpagesize()) {
		size += alignment
	}
	p, err := unix.MmapPtr(-1, 0, nil, size, unix.PROT_READ|unix.PROT_WRITE, opts)
	if err != nil {
		return nil
	}
	aligned := alignPtr(p, alignment)

	m.mu.Lock()
	m.maps[uintptr(aligned)] = mapping{orig: p, size: size}
	m.mu.Unlock()
	return aligned
}

// Deallocate unmaps memory returned by Allocate. A mapping the kernel
// refuses to unmap stays registered.
func (m *Mmap) Deallocate(p unsafe.Pointer, _, _ uintptr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mp, ok := m.maps[uintptr(p)]
	if !ok {
		return
	}
	if m.release(mp) == nil {
		delete(m.maps, uintptr(p))
	}
}

// release unmaps mp. Huge page size is not queryable, so with huge pages
// the length is rounded to 2MB, then 1GB.
func (m *Mmap) release(mp mapping) error {
	if m.hugePages {
		if err := unmap(mp.orig, mp.size, 2*1024*1024); err == nil {
			return nil
		}
		if err := unmap(mp.orig, mp.size, 1024*1024*1024); err == nil {
			return nil
		}
	}
	return unmap(mp.orig, mp.size, uintptr(os.Getpagesize()))
}

// Mappings returns the number of live mappings.
func (m *Mmap) Mappings() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.maps)
}

var munmap = unix.MunmapPtr

func unmap(p unsafe.Pointer, size, pageSize uintptr) error {
	return munmap(p, AlignUp(size, pageSize))
}
