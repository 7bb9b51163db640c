// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pmr provides polymorphic memory resources for shmq queues.
//
// A [MemoryResource] is anything with the two-method capability set
//
//	Allocate(bytes, alignment uintptr) unsafe.Pointer
//	Deallocate(p unsafe.Pointer, bytes, alignment uintptr)
//
// Allocate returns nil when it cannot satisfy the request. Returned memory
// must stay valid at a stable address until Deallocate is called with the
// same pointer, size and alignment.
//
// Resources:
//
//	NewDelete()      // Go heap, stateless singleton
//	NewArena(n)      // monotonic bump allocation over an owned region
//	NewMmap(huge)    // one anonymous shared mapping per allocation (linux)
//	OpenShm(name, n) // named shared-memory segment under /dev/shm (linux)
//
// [Allocator] is the type-erased handle a queue keeps: either null or a
// reference to one resource. Copying an Allocator aliases the resource;
// [Allocator.Move] leaves the source null.
//
// Memory handed out by these resources is not scanned by the garbage
// collector. Store only pointer-free data in it.
package pmr
