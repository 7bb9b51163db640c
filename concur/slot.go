// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// State is the occupancy state of a slot within one cycle.
type State uint64

const (
	Empty State = iota
	Writing
	Ready
	Reading
)

const (
	stateBits = 2
	stateMask = 1<<stateBits - 1
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Writing:
		return "writing"
	case Ready:
		return "ready"
	case Reading:
		return "reading"
	}
	return "invalid"
}

// tag packs the cycle (position / capacity) and the state into one word.
func tag(cycle uint64, s State) uint64 {
	return cycle<<stateBits | uint64(s)
}

// Slot is one cell of the circular buffer.
type Slot[T any] struct {
	tag  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// Init marks the slot Empty for cycle 0.
func (s *Slot[T]) Init() {
	s.tag.StoreRelaxed(tag(0, Empty))
}

// Load returns the cycle and state the slot is currently in.
func (s *Slot[T]) Load() (cycle uint64, state State) {
	t := s.tag.LoadAcquire()
	return t >> stateBits, State(t & stateMask)
}

// Elem returns the element storage of the slot.
func (s *Slot[T]) Elem() *T {
	return &s.data
}

// put writes v in cycle and publishes it. The caller owns the position; if
// the consumer of the previous cycle is still reading, put spins until it
// has released the slot. The wait is not bounded by a retry count: it lasts
// as long as that one consumer's copy.
func (s *Slot[T]) put(cycle uint64, v *T) {
	s.transition(tag(cycle, Empty), tag(cycle, Writing))
	s.data = *v
	s.tag.StoreRelease(tag(cycle, Ready))
}

// take reads the element published in cycle into v and releases the slot
// for the next cycle. The caller owns the position; if the producer is
// still writing, take spins until the element is Ready. The wait is not
// bounded by a retry count: it lasts as long as that one producer's copy.
func (s *Slot[T]) take(cycle uint64, v *T) {
	s.transition(tag(cycle, Ready), tag(cycle, Reading))
	*v = s.data
	s.tag.StoreRelease(tag(cycle+1, Empty))
}

// transition spins with pause and yield until the tag moves from from to to.
func (s *Slot[T]) transition(from, to uint64) {
	sw := spin.Wait{}
	for !s.tag.CompareAndSwapAcqRel(from, to) {
		sw.Once()
	}
}
