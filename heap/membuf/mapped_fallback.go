//go:build !linux && !darwin

package membuf

import "os"

// Mapped is a file-backed arena. On platforms without mmap support the
// contents are held in memory and written back to the file on Sync.
type Mapped struct {
	f     *os.File
	data  []byte
	limit int64
}

// OpenMapped creates (or truncates) the file at path and returns an empty
// arena over it. A limit of 0 means unlimited.
func OpenMapped(path string, limit int64) (*Mapped, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	return &Mapped{f: f, limit: limit}, nil
}

// Bytes returns the current arena contents. The slice is invalidated by
// the next Grow call; callers must re-fetch after growing.
func (m *Mapped) Bytes() []byte {
	return m.data
}

// Grow extends the arena by n zeroed bytes.
func (m *Mapped) Grow(n int) error {
	if n <= 0 {
		return ErrGrowSize
	}
	newSize := int64(len(m.data)) + int64(n)
	if m.limit > 0 && newSize > m.limit {
		return ErrLimit
	}
	m.data = append(m.data, make([]byte, n)...)
	return nil
}

// Sync writes the arena contents back to the file.
func (m *Mapped) Sync() error {
	if _, err := m.f.WriteAt(m.data, 0); err != nil {
		return err
	}
	return m.f.Sync()
}

// Close syncs and closes the backing file.
func (m *Mapped) Close() error {
	if err := m.Sync(); err != nil {
		m.f.Close()
		return err
	}
	return m.f.Close()
}
