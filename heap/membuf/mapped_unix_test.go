//go:build linux || darwin

package membuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Mapped_GrowWriteSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.heap")

	m, err := OpenMapped(path, 0)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Grow(4096))
	require.Len(t, m.Bytes(), 4096)

	copy(m.Bytes()[100:], []byte("boundary tags"))
	require.NoError(t, m.Sync())

	// The mapping is shared, so the file must reflect the write.
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, onDisk, 4096)
	require.Equal(t, []byte("boundary tags"), onDisk[100:113])
}

func Test_Mapped_GrowPreservesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.heap")

	m, err := OpenMapped(path, 0)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Grow(4096))
	m.Bytes()[0] = 0x7F

	// Growth remaps; earlier writes must survive the remap.
	require.NoError(t, m.Grow(4096))
	require.Len(t, m.Bytes(), 8192)
	require.Equal(t, byte(0x7F), m.Bytes()[0])
}

func Test_Mapped_LimitEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.heap")

	m, err := OpenMapped(path, 4096)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Grow(4096))
	require.ErrorIs(t, m.Grow(1), ErrLimit)
	require.Len(t, m.Bytes(), 4096)
}
