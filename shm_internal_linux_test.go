// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package shmq

import (
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/outofforest/photon"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/shmq/concur"
	"code.hybscloud.com/shmq/pmr"
)

type tick struct {
	Seq   uint64
	Price float64
}

// TestShmSecondMapping builds a queue in a shared segment and inspects it
// through an independent mapping of the same file.
func TestShmSecondMapping(t *testing.T) {
	requireT := require.New(t)

	const size = 1 << 16
	path := filepath.Join(t.TempDir(), "ticks")

	seg, err := pmr.OpenShmPath(path, size)
	requireT.NoError(err)
	t.Cleanup(func() { requireT.NoError(seg.Close()) })

	q := NewSPSC[tick](6, seg)
	requireT.NoError(q.Err())
	requireT.Equal(unsafe.Pointer(&seg.Bytes()[0]), unsafe.Pointer(q.data))

	for i := range uint64(4) {
		requireT.True(q.Push(tick{Seq: i, Price: float64(i) + 0.5}))
	}

	view, err := pmr.OpenShmPath(path, size)
	requireT.NoError(err)
	t.Cleanup(func() { requireT.NoError(view.Close()) })

	b := photon.FromPointer[block[tick]](unsafe.Pointer(&view.Bytes()[0]))
	requireT.EqualValues(6, b.hdr.Cap())
	requireT.EqualValues(4, b.hdr.Producer())
	requireT.Zero(b.hdr.Consumer())

	slots := b.slots()
	for i := range slots {
		cycle, state := slots[i].Load()
		requireT.Zero(cycle)
		if i < 4 {
			requireT.Equal(concur.Ready, state)
			requireT.Equal(tick{Seq: uint64(i), Price: float64(i) + 0.5}, *slots[i].Elem())
		} else {
			requireT.Equal(concur.Empty, state)
		}
	}

	var v tick
	requireT.True(q.Pop(&v))
	requireT.Zero(v.Seq)
	requireT.EqualValues(1, b.hdr.Consumer())
	cycle, state := slots[0].Load()
	requireT.EqualValues(1, cycle)
	requireT.Equal(concur.Empty, state)

	requireT.NoError(q.Close())
	requireT.Zero(seg.Len())
}
