// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package concur implements the claim/publish/consume protocol shared by
// every shmq queue.
//
// A queue's shared state is a [Header] (producer and consumer cursors plus
// the fixed capacity) followed by an array of [Slot] cells. Each slot cycles
// through four states:
//
//	Empty → Writing → Ready → Reading → Empty
//
// The producer that claims a cursor position owns the Empty → Writing →
// Ready transitions of the slot at position mod capacity; the consumer that
// claims the same position owns Ready → Reading → Empty. Publication uses a
// release store and observation an acquire load, so the payload written by
// the producer is visible to the consumer that observes Ready.
//
// # Relations
//
// [Model] is parameterized by the producer and consumer [Relation]:
//
//	Model[T, Single, Single]  // SPSC
//	Model[T, Multi, Single]   // MPSC
//	Model[T, Single, Multi]   // SPMC
//	Model[T, Multi, Multi]    // MPMC
//
// [Single] advances its cursor with a plain load/store pair because the
// caller guarantees one accessor. [Multi] claims positions with
// compare-and-swap, so no two accessors ever receive the same position and
// a full (or empty) queue is detected before anything is reserved.
//
// # Layout
//
// Header and Slot contain only fixed-width words and explicit cache-line
// padding. A block holding one Header followed by capacity slots can be
// placed in any stable memory, including a shared mapping, and reproduced
// byte for byte by another mapping of the same memory.
package concur
