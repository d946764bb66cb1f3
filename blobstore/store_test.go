package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises behaviour every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("module simple; endmodule")
	require.NoError(t, s.Put(ctx, "designs/simple.nsnap", data))
	require.NoError(t, s.Put(ctx, "designs/other.nsnap", []byte("x")))
	require.NoError(t, s.Put(ctx, CurrentName, []byte("designs/simple.nsnap")))

	b, err := s.Open(ctx, "designs/simple.nsnap")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 6)
	n, err := b.ReadAt(ctx, buf, 7)
	require.NoError(t, err)
	assert.Equal(t, "simple", string(buf[:n]))

	n, err = b.ReadAt(ctx, buf, int64(len(data))-3)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, io.EOF)

	all, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, data, all)
	require.NoError(t, b.Close())

	got, err := ReadFile(ctx, s, CurrentName)
	require.NoError(t, err)
	assert.Equal(t, "designs/simple.nsnap", string(got))

	// Put replaces.
	require.NoError(t, s.Put(ctx, CurrentName, []byte("designs/other.nsnap")))
	got, err = ReadFile(ctx, s, CurrentName)
	require.NoError(t, err)
	assert.Equal(t, "designs/other.nsnap", string(got))

	names, err := s.List(ctx, "designs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"designs/other.nsnap", "designs/simple.nsnap"}, names)

	names, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 3)

	require.NoError(t, s.Delete(ctx, "designs/other.nsnap"))
	require.NoError(t, s.Delete(ctx, "designs/other.nsnap"))
	_, err = s.Open(ctx, "designs/other.nsnap")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "empty", nil))
	got, err = ReadFile(ctx, s, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_PutCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "a", data))
	data[0] = 'x'

	got, err := ReadFile(ctx, s, "a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Put(ctx, "a", nil), context.Canceled)
	_, err := s.Open(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore(t *testing.T) {
	storeContract(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_Layout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "snapshots")
	s := NewLocalStore(dir)
	assert.Equal(t, dir, s.Root())

	names, err := s.List(ctx, "")
	require.NoError(t, err, "listing a store that was never written to")
	assert.Empty(t, names)

	require.NoError(t, s.Put(ctx, "a/b.nsnap", []byte("data")))
	_, err = os.Stat(filepath.Join(dir, "a", "b.nsnap"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file was renamed away")

	for _, bad := range []string{"", "../escape", "/abs"} {
		assert.Error(t, s.Put(ctx, bad, nil), bad)
	}
}

func TestLocalStore_BlobIsMappable(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())
	require.NoError(t, s.Put(ctx, "m", []byte("mapped")))

	b, err := s.Open(ctx, "m")
	require.NoError(t, err)
	m, ok := b.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "mapped", string(data))

	require.NoError(t, b.Close())
	_, err = m.Bytes()
	assert.Error(t, err)
}

func TestBytesBlob(t *testing.T) {
	ctx := context.Background()
	b := NewBytesBlob([]byte("hello"))
	assert.Equal(t, int64(5), b.Size())

	buf := make([]byte, 2)
	n, err := b.ReadAt(ctx, buf, 5)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
	_, err = b.ReadAt(ctx, buf, -1)
	assert.Error(t, err)
	assert.NoError(t, b.Close())
}
