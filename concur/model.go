// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// Model is the concurrency algorithm for producer relation P and consumer
// relation C. It holds no state: everything shared lives in the Header and
// the slots, everything cached lives in the Context.
type Model[T any, P, C Relation] struct{}

// Enqueue claims the next producer position and publishes *v into its slot.
// It reports false without claiming anything if the queue is full.
//
// len(slots) must equal hdr.Cap().
func (Model[T, P, C]) Enqueue(slots []Slot[T], hdr *Header, ctx *Context, v *T) bool {
	var p P
	pos, ok := p.claim(&hdr.tail, &hdr.head, &ctx.head, hdr.capacity)
	if !ok {
		return false
	}
	slots[pos%hdr.capacity].put(pos/hdr.capacity, v)
	return true
}

// Dequeue claims the next consumer position and moves its element into *v.
// It reports false without claiming anything if no producer has claimed the
// position yet; *v is left unchanged in that case.
//
// len(slots) must equal hdr.Cap().
func (Model[T, P, C]) Dequeue(slots []Slot[T], hdr *Header, ctx *Context, v *T) bool {
	var c C
	pos, ok := c.claim(&hdr.head, &hdr.tail, &ctx.tail, 0)
	if !ok {
		return false
	}
	slots[pos%hdr.capacity].take(pos/hdr.capacity, v)
	return true
}

// String returns the conventional name of the model, e.g. "mpsc".
func (Model[T, P, C]) String() string {
	var p P
	var c C
	return string([]byte{p.letter(), 'p', c.letter(), 'c'})
}
