//go:build linux || darwin

package membuf

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is a file-backed arena. The file is memory-mapped read-write and
// shared, so writes land in the page cache; Sync forces them to disk.
// Growth truncates the file to the new size and remaps.
type Mapped struct {
	f     *os.File
	data  []byte
	limit int64
}

// OpenMapped creates (or truncates) the file at path and returns an empty
// mapped arena over it. A limit of 0 means unlimited.
func OpenMapped(path string, limit int64) (*Mapped, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	return &Mapped{f: f, limit: limit}, nil
}

// Bytes returns the current mapping. The slice is invalidated by the next
// Grow call; callers must re-fetch after growing.
func (m *Mapped) Bytes() []byte {
	return m.data
}

// Grow extends the backing file by n zeroed bytes and remaps it. On
// failure the previous mapping and file size are left intact, so the
// arena keeps describing the old layout and the caller can continue
// using the space it already has.
func (m *Mapped) Grow(n int) error {
	if n <= 0 {
		return ErrGrowSize
	}
	oldSize := int64(len(m.data))
	newSize := oldSize + int64(n)
	if m.limit > 0 && newSize > m.limit {
		return ErrLimit
	}
	if err := m.f.Truncate(newSize); err != nil {
		return fmt.Errorf("membuf: truncate to %d: %w", newSize, err)
	}
	data, err := unix.Mmap(
		int(m.f.Fd()), 0, int(newSize),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED,
	)
	if err != nil {
		_ = m.f.Truncate(oldSize)
		return fmt.Errorf("membuf: map %d bytes: %w", newSize, err)
	}
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			_ = unix.Munmap(data)
			_ = m.f.Truncate(oldSize)
			return fmt.Errorf("membuf: unmap before grow: %w", err)
		}
	}
	m.data = data
	return nil
}

// Sync flushes the mapping to the backing file.
func (m *Mapped) Sync() error {
	if m.data == nil {
		return nil
	}
	return unix.Msync(m.data, unix.MS_SYNC)
}

// Close unmaps the arena and closes the backing file.
func (m *Mapped) Close() error {
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			return err
		}
		m.data = nil
	}
	return m.f.Close()
}
