package netslab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Stats(t *testing.T) {
	tbl := New[pin]()
	insertN(t, tbl, 9)
	tbl.Remove(2)
	tbl.Remove(6)

	s := tbl.Stats()
	assert.Equal(t, 7, s.Live)
	assert.Equal(t, 9, s.NumIndices)
	assert.Equal(t, 16, s.Capacity)
	assert.Equal(t, 2, s.Free)
	assert.GreaterOrEqual(t, s.FreeCapacity, 2)
	assert.Equal(t, 1, s.Grows)
	assert.False(t, s.Closed)
}

func TestTable_LiveSet(t *testing.T) {
	tbl := New[pin]()
	insertN(t, tbl, 6)
	tbl.Remove(0)
	tbl.Remove(3)

	rb := tbl.LiveSet()
	assert.Equal(t, uint64(4), rb.GetCardinality())
	assert.Equal(t, []uint32{1, 2, 4, 5}, rb.ToArray())
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"empty", Layout{}, false},
		{"holes", Layout{NumIndices: 4, Free: []int{1, 3}}, false},
		{"negative", Layout{NumIndices: -1}, true},
		{"out of range", Layout{NumIndices: 2, Free: []int{2}}, true},
		{"duplicate", Layout{NumIndices: 4, Free: []int{1, 1}}, true},
		{"too many", Layout{NumIndices: 1, Free: []int{0, 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLayout)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRestore_ReproducesIndices(t *testing.T) {
	src := New[pin]()
	insertN(t, src, 12)
	for _, i := range []int{4, 9, 1} {
		src.Remove(i)
	}
	layout := src.Layout()
	assert.Equal(t, []int{4, 9, 1}, layout.Free)

	dst, err := Restore[pin](layout)
	require.NoError(t, err)
	defer dst.Close()

	assert.Equal(t, src.Len(), dst.Len())
	assert.Equal(t, src.NumIndices(), dst.NumIndices())
	assert.True(t, src.LiveSet().Equals(dst.LiveSet()))
	assert.Equal(t, layout, dst.Layout())

	for i, p := range src.All() {
		*dst.At(i) = *p
	}
	for i, p := range dst.All() {
		assert.Equal(t, *src.At(i), *p)
	}

	// Both reissue free indices in the same order.
	for range 4 {
		a, err := src.Insert(pin{})
		require.NoError(t, err)
		b, err := dst.Insert(pin{})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestRestore_InvalidLayout(t *testing.T) {
	_, err := Restore[pin](Layout{NumIndices: 2, Free: []int{5}})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestRestore_RespectsMaxIndices(t *testing.T) {
	_, err := Restore[pin](Layout{NumIndices: 20}, WithMaxIndices(10))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}
