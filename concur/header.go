// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import "code.hybscloud.com/atomix"

// Header is the queue-wide shared state placed at the start of a data block.
//
// Both cursors only grow. At every instant
//
//	0 <= consumer cursor <= producer cursor <= consumer cursor + capacity
type Header struct {
	_        pad
	tail     atomix.Uint64 // Producer cursor
	_        pad
	head     atomix.Uint64 // Consumer cursor
	_        pad
	capacity uint64
	_        padShort
}

// Init resets the cursors and fixes the capacity.
func (h *Header) Init(capacity uint64) {
	h.tail.StoreRelaxed(0)
	h.head.StoreRelaxed(0)
	h.capacity = capacity
}

// Cap returns the number of slots following the header.
func (h *Header) Cap() uint64 {
	return h.capacity
}

// Producer returns the number of positions claimed by producers.
func (h *Header) Producer() uint64 {
	return h.tail.LoadAcquire()
}

// Consumer returns the number of positions claimed by consumers.
func (h *Header) Consumer() uint64 {
	return h.head.LoadAcquire()
}
