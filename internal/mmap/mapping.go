package mmap

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned by reads from a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files whose size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrOutOfBounds is returned by Slice for ranges outside the mapping.
	ErrOutOfBounds = errors.New("mmap: out of bounds")
)

// Advice tells the kernel how a mapping will be read.
type Advice uint8

const (
	Normal Advice = iota
	Sequential
	Random
	WillNeed
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Map(f)
}

// Map maps f. The file may be closed once Map returns.
func Map(f *os.File) (*Mapping, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size < 0 || size > math.MaxInt {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Close unmaps the file. Close is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap == nil || m.data == nil {
		return nil
	}
	return m.unmap(m.data)
}

// Len returns the mapped size in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Bytes returns the whole mapping, or nil once closed.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Slice returns n bytes starting at off without copying.
func (m *Mapping) Slice(off, n int) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || n < 0 || off > len(m.data)-n {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrOutOfBounds, off, off+n, len(m.data))
	}
	return m.data[off : off+n : off+n], nil
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("%w: offset %d", ErrOutOfBounds, off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Advise passes a read hint to the kernel. Platforms without madvise
// ignore it.
func (m *Mapping) Advise(a Advice) error {
	switch {
	case m.closed.Load():
		return ErrClosed
	case a > WillNeed:
		return fmt.Errorf("mmap: unknown advice %d", a)
	case len(m.data) == 0:
		return nil
	}
	return osAdvise(m.data, a)
}
