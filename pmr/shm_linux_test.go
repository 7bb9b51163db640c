// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package pmr

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func openTestShm(t *testing.T, size uintptr) *Shm {
	t.Helper()
	s, err := OpenShmPath(filepath.Join(t.TempDir(), "segment"), size)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestShmFirstAllocationAtOffsetZero(t *testing.T) {
	requireT := require.New(t)

	s := openTestShm(t, 1<<16)
	p := s.Allocate(128, 64)
	requireT.NotNil(p)
	requireT.Equal(unsafe.Pointer(&s.Bytes()[0]), p)
	requireT.Len(s.Bytes(), 1<<16)
}

func TestShmSharedAcrossMappings(t *testing.T) {
	requireT := require.New(t)

	path := filepath.Join(t.TempDir(), "segment")
	s1, err := OpenShmPath(path, 4096)
	requireT.NoError(err)
	defer s1.Close()

	s2, err := OpenShmPath(path, 4096)
	requireT.NoError(err)
	defer s2.Close()

	b1, b2 := s1.Bytes(), s2.Bytes()
	requireT.NotSame(&b1[0], &b2[0])

	copy(b1, "shared")
	requireT.Equal("shared", string(b2[:6]))
}

func TestShmGrowsFile(t *testing.T) {
	requireT := require.New(t)

	s := openTestShm(t, 8192)
	st, err := os.Stat(s.Path())
	requireT.NoError(err)
	requireT.EqualValues(8192, st.Size())
}

func TestShmExhaustion(t *testing.T) {
	requireT := require.New(t)

	s := openTestShm(t, 4096)
	requireT.NotNil(s.Allocate(4000, 8))
	requireT.Nil(s.Allocate(4000, 8))
}

func TestShmCloseAndUnlink(t *testing.T) {
	requireT := require.New(t)

	s, err := OpenShmPath(filepath.Join(t.TempDir(), "segment"), 4096)
	requireT.NoError(err)

	p := s.Allocate(64, 8)
	requireT.NotNil(p)

	requireT.NoError(s.Close())
	requireT.NoError(s.Close())
	requireT.Nil(s.Allocate(64, 8))
	s.Deallocate(p, 64, 8)
	requireT.Equal(64, s.Len())

	requireT.NoError(s.Unlink())
	_, err = os.Stat(s.Path())
	requireT.True(os.IsNotExist(err))
	requireT.Error(s.Unlink())
}

func TestOpenShmErrors(t *testing.T) {
	requireT := require.New(t)

	_, err := OpenShm("", 4096)
	requireT.Error(err)

	_, err = OpenShm("a/b", 4096)
	requireT.Error(err)

	_, err = OpenShmPath(filepath.Join(t.TempDir(), "segment"), 0)
	requireT.Error(err)

	_, err = OpenShmPath(filepath.Join(t.TempDir(), "missing", "segment"), 4096)
	requireT.Error(err)
}
