package zerobuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/zerobuf"
)

func TestVector(t *testing.T) {
	t.Run("AppendAndSet", func(t *testing.T) {
		v := NewDoc().Tags()
		assert.True(t, v.Empty())
		v.Append(1, 2)
		v.Append(3)
		v.Set(1, 20)
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, int32(20), v.At(1))
		assert.Equal(t, []int32{1, 20, 3}, v.Values())
		assert.Len(t, v.Bytes(), 12)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		v := NewDoc().Tags()
		v.Append(1)
		assert.Panics(t, func() { v.At(1) })
		assert.Panics(t, func() { v.Set(-1, 0) })
	})

	t.Run("ResizeAndClear", func(t *testing.T) {
		v := NewDoc().Tags()
		v.Append(5, 6)
		v.Resize(4)
		assert.Equal(t, []int32{5, 6, 0, 0}, v.Values())
		v.Resize(1)
		assert.Equal(t, []int32{5}, v.Values())
		v.Clear()
		assert.True(t, v.Empty())
	})

	t.Run("SetBytes", func(t *testing.T) {
		v := NewDoc().Tags()
		v.SetBytes([]byte{1, 0, 0, 0, 2, 0, 0, 0, 9})
		assert.Equal(t, []int32{1, 2}, v.Values())
	})

	t.Run("String", func(t *testing.T) {
		d := NewDoc()
		d.NameVector().SetString("hello")
		d.NameVector().Append('!')
		assert.Equal(t, "hello!", d.Name())
		assert.Equal(t, 6, d.NameVector().Len())
	})

	t.Run("IndependentSlots", func(t *testing.T) {
		d := NewDoc()
		d.SetName("ab")
		d.Tags().Append(1)
		d.SetName("abcdefgh")
		d.Tags().Append(2)
		assert.Equal(t, "abcdefgh", d.Name())
		assert.Equal(t, []int32{1, 2}, d.Tags().Values())
	})
}

func TestTableVector(t *testing.T) {
	s := NewSample()
	items := s.Items()
	assert.True(t, items.Empty())

	a, b := NewPos(), NewPos()
	a.SetX(1)
	b.SetX(2)
	items.Append(a, b)
	require.Equal(t, 2, items.Len())
	assert.Equal(t, float32(2), items.At(1).X())
	assert.Equal(t, float32(1.5), items.At(0).Y())

	// Elements are views into the vector.
	items.At(0).SetX(10)
	assert.Equal(t, float32(10), items.At(0).X())
	assert.Equal(t, float32(1), a.X())

	// Values are standalone copies.
	values := items.Values()
	values[1].SetX(99)
	assert.Equal(t, float32(2), items.At(1).X())

	s.SetItems([]*Pos{b})
	require.Equal(t, 1, items.Len())
	assert.Equal(t, float32(2), items.At(0).X())
	assert.Panics(t, func() { items.At(1) })

	items.Clear()
	assert.True(t, items.Empty())
}

func TestRebindVector(t *testing.T) {
	a := zerobuf.NewHeapAllocator(docLayout)
	b := zerobuf.NewHeapAllocator(docLayout)
	v := zerobuf.RebindVector(nil, a, 1, zerobuf.Int32Codec)
	v.Append(1)
	same := zerobuf.RebindVector(v, b, 1, zerobuf.Int32Codec)
	assert.Same(t, v, same)
	assert.True(t, v.Empty())
	v.Append(2)
	assert.Equal(t, []byte{1, 0, 0, 0}, a.Dynamic(1))
	assert.Equal(t, []byte{2, 0, 0, 0}, b.Dynamic(1))
}
