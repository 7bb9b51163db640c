// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package pmr

import (
	"path/filepath"
	"strings"
	"unsafe"

	"code.hybscloud.com/atomix"
	"github.com/outofforest/photon"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ShmDir is where named shared-memory segments live.
const ShmDir = "/dev/shm"

// Shm is a memory resource carving a shared file mapping.
//
// Allocations are served by an embedded [Arena], so the first allocation
// starts at offset 0 of the segment. Every process mapping the same file
// sees the same bytes at the same offsets.
type Shm struct {
	*Arena

	path   string
	fd     int
	base   unsafe.Pointer
	size   uintptr
	closed atomix.Uint64
}

// OpenShm creates or opens the segment name under [ShmDir] and maps size
// bytes of it.
func OpenShm(name string, size uintptr) (*Shm, error) {
	if name == "" || strings.ContainsRune(name, '/') {
		return nil, errors.Errorf("invalid shared memory name %q", name)
	}
	return OpenShmPath(filepath.Join(ShmDir, name), size)
}

// OpenShmPath creates or opens the file at path, grows it to at least size
// bytes and maps it shared.
func OpenShmPath(path string, size uintptr) (*Shm, error) {
	if size == 0 {
		return nil, errors.Errorf("shared memory %q: size must be positive", path)
	}
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "opening shared memory %q failed", path)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		_ = unix.Close(fd)
		return nil, errors.Wrapf(err, "stat of shared memory %q failed", path)
	}
	if uint64(st.Size) < uint64(size) {
		if err := unix.Ftruncate(fd, int64(size)); err != nil {
			_ = unix.Close(fd)
			return nil, errors.Wrapf(err, "resizing shared memory %q failed", path)
		}
	}

	p, err := unix.MmapPtr(fd, 0, nil, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, errors.Wrapf(err, "mapping shared memory %q failed", path)
	}

	return &Shm{
		Arena: NewArenaAt(p, size),
		path:  path,
		fd:    fd,
		base:  p,
		size:  size,
	}, nil
}

// Path returns the backing file.
func (s *Shm) Path() string {
	return s.path
}

// Bytes returns the whole mapped segment.
func (s *Shm) Bytes() []byte {
	return photon.SliceFromPointer[byte](s.base, int(s.size))
}

// Allocate carves bytes from the segment. It returns nil once the segment
// is closed.
func (s *Shm) Allocate(bytes, alignment uintptr) unsafe.Pointer {
	if s.closed.LoadAcquire() != 0 {
		return nil
	}
	return s.Arena.Allocate(bytes, alignment)
}

// Deallocate returns memory to the segment. It does nothing once the
// segment is closed.
func (s *Shm) Deallocate(p unsafe.Pointer, bytes, alignment uintptr) {
	if s.closed.LoadAcquire() != 0 {
		return
	}
	s.Arena.Deallocate(p, bytes, alignment)
}

// Close unmaps the segment and closes its descriptor. The file stays in
// place; use Unlink to remove it.
func (s *Shm) Close() error {
	if !s.closed.CompareAndSwapAcqRel(0, 1) {
		return nil
	}
	err := unix.MunmapPtr(s.base, s.size)
	if cerr := unix.Close(s.fd); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "closing shared memory %q failed", s.path)
}

// Unlink removes the backing file. Existing mappings remain valid.
func (s *Shm) Unlink() error {
	return errors.Wrapf(unix.Unlink(s.path), "unlinking shared memory %q failed", s.path)
}
