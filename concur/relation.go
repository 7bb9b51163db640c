// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Relation designates whether one or many goroutines act on one side of a
// queue. It is implemented only by [Single] and [Multi].
type Relation interface {
	// claim reserves the next position of cursor if it is below
	// opposite+window. cached holds the last observed value of opposite and
	// is refreshed only when it cannot decide the outcome.
	claim(cursor, opposite, cached *atomix.Uint64, window uint64) (pos uint64, ok bool)
	letter() byte
}

// Single is the relation of exactly one concurrent accessor.
type Single struct{}

// Multi is the relation of any number of concurrent accessors.
type Multi struct{}

func (Single) claim(cursor, opposite, cached *atomix.Uint64, window uint64) (uint64, bool) {
	pos := cursor.LoadRelaxed()
	if pos >= cached.LoadRelaxed()+window {
		opp := opposite.LoadAcquire()
		cached.StoreRelaxed(opp)
		if pos >= opp+window {
			return 0, false
		}
	}
	cursor.StoreRelease(pos + 1)
	return pos, true
}

func (Multi) claim(cursor, opposite, cached *atomix.Uint64, window uint64) (uint64, bool) {
	sw := spin.Wait{}
	for {
		pos := cursor.LoadAcquire()
		// cached never runs ahead of opposite, so a stale value only makes
		// the check stricter.
		if pos >= cached.LoadRelaxed()+window {
			opp := opposite.LoadAcquire()
			cached.StoreRelaxed(opp)
			if pos >= opp+window {
				return 0, false
			}
		}
		if cursor.CompareAndSwapAcqRel(pos, pos+1) {
			return pos, true
		}
		sw.Once()
	}
}

func (Single) letter() byte { return 's' }

func (Multi) letter() byte { return 'm' }
