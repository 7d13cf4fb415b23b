package zerobuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArray(t *testing.T) {
	t.Run("SetAndGet", func(t *testing.T) {
		s := NewSample()
		c := s.Coords()
		assert.Equal(t, 3, c.Len())
		c.Set(2, 4.5)
		assert.Equal(t, float32(4.5), c.At(2))
		assert.Equal(t, []float32{0, 0, 4.5}, c.Values())
		assert.Len(t, c.Bytes(), 12)
		assert.Panics(t, func() { c.At(3) })
	})

	t.Run("BulkAssign", func(t *testing.T) {
		s := NewSample()
		s.SetCoords([]float32{1, 2, 3})
		assert.Equal(t, []float32{1, 2, 3}, s.Coords().Values())

		// A larger source is ignored.
		s.SetCoords([]float32{9, 9, 9, 9})
		assert.Equal(t, []float32{1, 2, 3}, s.Coords().Values())

		// A smaller one overwrites the prefix.
		s.SetCoords([]float32{7})
		assert.Equal(t, []float32{7, 2, 3}, s.Coords().Values())
	})

	t.Run("ByteString", func(t *testing.T) {
		s := NewSample()
		s.SetKeyString("abc")
		assert.Equal(t, "abc\x00\x00\x00\x00\x00", string(s.Key().Bytes()))

		s.SetKeyString("too long for eight")
		assert.Equal(t, "abc\x00\x00\x00\x00\x00", string(s.Key().Bytes()))

		s.SetKey([]uint8("12345678"))
		assert.Equal(t, "12345678", string(s.Key().Bytes()))
	})

	t.Run("Fill", func(t *testing.T) {
		s := NewSample()
		s.Coords().Fill([]float32{1, 2, 3, 4})
		assert.Equal(t, []float32{1, 2, 3}, s.Coords().Values())
		s.Key().FillBytes([]byte("0123456789"))
		assert.Equal(t, "01234567", string(s.Key().Bytes()))
	})

	t.Run("TableArray", func(t *testing.T) {
		s := NewSample()
		points := s.Points()
		points[1].SetX(3)
		assert.Equal(t, float32(3), s.Points()[1].X())
		assert.Zero(t, s.Points()[0].X())
		// Second element starts right after the first one.
		assert.Equal(t, s.Data()[56:60], points[1].Data()[4:8])
	})
}
