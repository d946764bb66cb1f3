package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// It is os.ErrNotExist so that file-system errors match without wrapping.
var ErrNotFound = os.ErrNotExist

// CurrentName is the blob that points at the latest committed snapshot.
const CurrentName = "CURRENT"

// Store is a flat namespace of immutable blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any blob of the same name.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	// ReadAt reads len(p) bytes at off. It returns io.EOF when fewer
	// bytes are available.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the blob size in bytes.
	Size() int64
	Close() error
}

// Mappable is implemented by blobs whose contents are already in memory.
type Mappable interface {
	// Bytes returns the blob contents without copying. The slice is valid
	// until the blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll returns the contents of b, without copying when b is Mappable.
// Mapped contents must not be used after b is closed.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		return m.Bytes()
	}

	size := b.Size()
	buf := make([]byte, size)
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == size) {
		return nil, err
	}
	if int64(n) != size {
		return nil, fmt.Errorf("blobstore: short read: %d of %d bytes", n, size)
	}
	return buf, nil
}

// ReadFile opens name, reads it and closes it.
func ReadFile(ctx context.Context, s Store, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	data, err := ReadAll(ctx, b)
	if err != nil {
		return nil, err
	}
	if _, mapped := b.(Mappable); mapped {
		data = append([]byte(nil), data...)
	}
	return data, nil
}

// bytesBlob serves a byte slice.
type bytesBlob struct {
	data []byte
}

// NewBytesBlob wraps data as a Blob.
func NewBytesBlob(data []byte) Blob {
	return &bytesBlob{data: data}
}

func (b *bytesBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("blobstore: negative offset %d", off)
	}
	if off >= int64(len(b.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *bytesBlob) Size() int64 { return int64(len(b.data)) }

func (b *bytesBlob) Close() error { return nil }

func (b *bytesBlob) Bytes() ([]byte, error) { return b.data, nil }
