// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pmr

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNewDeleteSingleton(t *testing.T) {
	require.Same(t, NewDelete(), NewDelete())
}

func TestNewDeleteAllocate(t *testing.T) {
	requireT := require.New(t)

	for _, alignment := range []uintptr{1, 8, 16, 64, 4096} {
		const size = 1000
		p := NewDelete().Allocate(size, alignment)
		requireT.NotNil(p)
		requireT.Zero(uintptr(p)%alignment, "alignment %d", alignment)

		b := unsafe.Slice((*byte)(p), size)
		for i := range b {
			requireT.Zero(b[i])
			b[i] = byte(i)
		}
		NewDelete().Deallocate(p, size, alignment)
	}
}

func TestNewDeleteRejects(t *testing.T) {
	requireT := require.New(t)

	requireT.Nil(NewDelete().Allocate(0, 8))
	requireT.Nil(NewDelete().Allocate(8, 3))
	requireT.Nil(NewDelete().Allocate(^uintptr(0)-4, 8))
}
