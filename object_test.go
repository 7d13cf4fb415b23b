package zerobuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/zerobuf"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, float32(1.5), NewPos().Y())
	assert.Equal(t, float32(1.5), NewDoc().Pos().Y())
	for _, p := range NewSample().Points() {
		assert.Equal(t, float32(1.5), p.Y())
	}
	assert.Equal(t, float32(1.5), NewOuter().Doc().Pos().Y())

	// Views over existing storage never apply defaults.
	p := NewPosFromAllocator(zerobuf.NewHeapAllocator(posLayout))
	assert.Zero(t, p.Y())
}

func TestAccessors(t *testing.T) {
	d := NewDoc()
	d.SetID(7)
	d.SetName("zerobuf")
	d.SetTags([]int32{1, 2, 3})
	d.Pos().SetX(2)
	d.SetColor(Color_Blue)

	assert.Equal(t, uint32(7), d.ID())
	assert.Equal(t, "zerobuf", d.Name())
	assert.Equal(t, []int32{1, 2, 3}, d.Tags().Values())
	assert.Equal(t, float32(2), d.Pos().X())
	assert.Equal(t, Color_Blue, d.Color())
	assert.Equal(t, uint32(0), d.Version())

	// Fixed members live at their static offsets.
	assert.Equal(t, uint32(7), zerobuf.Uint32Codec.Get(d.Data()[4:]))
	assert.Equal(t, float32(2), zerobuf.Float32Codec.Get(d.Data()[44:]))

	p := NewPos()
	p.SetX(9)
	d.SetPos(p)
	assert.Equal(t, float32(9), d.Pos().X())
	p.SetX(10)
	assert.Equal(t, float32(9), d.Pos().X())
}

func TestChangingHook(t *testing.T) {
	d := NewDoc()
	var n int
	d.SetChangingHook(func() { n++ })

	d.SetID(1)
	d.SetName("a")
	d.Pos().SetY(3)
	assert.Equal(t, 3, n)

	t.Run("views", func(t *testing.T) {
		d := NewDoc()
		var n int
		d.SetChangingHook(func() { n++ })
		d.Tags().Append(1, 2, 3)
		d.Tags().Set(0, 7)
		d.Tags().Resize(1)
		d.NameVector().SetString("b")
		d.Tags().Clear()
		assert.Equal(t, 5, n)

		_ = d.Tags().Values()
		_ = d.Name()
		assert.Equal(t, 5, n)
	})

	t.Run("arrays and table vectors", func(t *testing.T) {
		s := NewSample()
		var n int
		s.SetChangingHook(func() { n++ })
		s.Key().Set(0, 7)
		s.Coords().Assign([]float32{1, 2})
		s.Items().Append(NewPos())
		s.Items().At(0).SetX(4)
		s.Points()[1].SetY(2)
		assert.Equal(t, 5, n)

		s.Coords().Assign([]float32{1, 2, 3, 4})
		s.SetKeyString("longer than eight")
		assert.Equal(t, 5, n)
		_ = s.Items().Values()[0].X()
		assert.Equal(t, 5, n)
	})

	t.Run("embedded tables", func(t *testing.T) {
		o := NewOuter()
		var n int
		o.SetChangingHook(func() { n++ })
		o.Doc().Tags().Append(1)
		o.Doc().Pos().SetX(1)
		assert.Equal(t, 2, n)
	})

	t.Run("after move", func(t *testing.T) {
		dst, src := NewDoc(), NewDoc()
		var n int
		dst.SetChangingHook(func() { n++ })
		require.NoError(t, dst.MoveFrom(src))
		n = 0
		dst.Tags().Append(1)
		assert.Equal(t, 1, n)
	})
}

func TestClone(t *testing.T) {
	d := NewDoc()
	d.SetName("original")
	d.SetTags([]int32{4, 5})
	d.Pos().SetX(1)

	c := d.Clone()
	c.SetName("copy")
	c.Tags().Append(6)
	c.Pos().SetX(2)

	assert.Equal(t, "original", d.Name())
	assert.Equal(t, []int32{4, 5}, d.Tags().Values())
	assert.Equal(t, float32(1), d.Pos().X())
	assert.Equal(t, "copy", c.Name())
	assert.Equal(t, []int32{4, 5, 6}, c.Tags().Values())
	assert.Equal(t, float32(2), c.Pos().X())
}

func TestMove(t *testing.T) {
	t.Run("Owning", func(t *testing.T) {
		src := NewDoc()
		src.SetName("moved")
		src.Pos().SetX(4)
		dst := NewDoc()

		require.NoError(t, dst.MoveFrom(src))
		assert.Equal(t, "moved", dst.Name())
		assert.Equal(t, float32(4), dst.Pos().X())

		// Both objects are re-addressed: writes go to their own storage.
		dst.Pos().SetX(5)
		src.SetName("fresh")
		assert.Equal(t, float32(5), dst.Pos().X())
		assert.Equal(t, "moved", dst.Name())
		assert.Equal(t, "fresh", src.Name())
		assert.Zero(t, src.Pos().X())
	})

	t.Run("NonOwningSourceIsCopied", func(t *testing.T) {
		outer := NewOuter()
		outer.Doc().SetName("inner")
		dst := NewDoc()

		require.NoError(t, dst.MoveFrom(outer.Doc()))
		assert.Equal(t, "inner", dst.Name())
		assert.Equal(t, "inner", outer.Doc().Name())
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := zerobuf.Move(NewDoc(), NewPos())
		assert.True(t, zerobuf.IsTypeMismatch(err))
	})
}

func TestAssignAndLoad(t *testing.T) {
	src := NewDoc()
	src.SetID(3)
	src.SetTags([]int32{8})

	dst := NewDoc()
	require.NoError(t, zerobuf.Assign(dst, src))
	assert.Equal(t, uint32(3), dst.ID())
	assert.Equal(t, []int32{8}, dst.Tags().Values())

	assert.ErrorIs(t, zerobuf.Assign(dst, NewPos()), zerobuf.ErrTypeMismatch)

	loaded := NewDoc()
	require.NoError(t, zerobuf.Load(loaded, src.TypeIdentifier(), src.Bytes()))
	assert.Equal(t, []int32{8}, loaded.Tags().Values())

	assert.ErrorIs(t, zerobuf.Load(loaded, NewPos().TypeIdentifier(), src.Bytes()), zerobuf.ErrTypeMismatch)
	assert.ErrorIs(t, zerobuf.Load(loaded, src.TypeIdentifier(), src.Bytes()[:10]), zerobuf.ErrBufferTooSmall)
}

func TestLoadChecksSlots(t *testing.T) {
	src := NewDoc()
	src.SetName("hello")
	src.SetTags([]int32{1, 2})
	image := func() []byte { return append([]byte(nil), src.Bytes()...) }

	t.Run("truncated dynamic data", func(t *testing.T) {
		img := image()
		err := zerobuf.Load(NewDoc(), src.TypeIdentifier(), img[:len(img)-1])
		assert.ErrorIs(t, err, zerobuf.ErrBufferTooSmall)
	})
	t.Run("offset inside static region", func(t *testing.T) {
		img := image()
		zerobuf.Uint64Codec.Put(img[8:], 4)
		assert.ErrorIs(t, zerobuf.Load(NewDoc(), src.TypeIdentifier(), img), zerobuf.ErrBufferTooSmall)
	})
	t.Run("size overflows", func(t *testing.T) {
		img := image()
		zerobuf.Uint64Codec.Put(img[16:], ^uint64(0))
		assert.ErrorIs(t, zerobuf.Load(NewDoc(), src.TypeIdentifier(), img), zerobuf.ErrBufferTooSmall)
	})
	t.Run("rejected data is not copied", func(t *testing.T) {
		dst := NewDoc()
		dst.SetName("kept")
		img := image()
		require.Error(t, zerobuf.Load(dst, src.TypeIdentifier(), img[:len(img)-1]))
		assert.Equal(t, "kept", dst.Name())
	})
	t.Run("empty slots need no data", func(t *testing.T) {
		empty := NewDoc()
		require.NoError(t, zerobuf.Load(NewDoc(), empty.TypeIdentifier(), empty.Bytes()))
	})
}

func TestEmbeddedDynamicTable(t *testing.T) {
	o := NewOuter()
	o.SetCount(2)
	o.Doc().SetName("nested")
	o.Doc().Tags().Append(1, 2, 3)
	o.Doc().SetID(11)

	assert.Equal(t, uint64(2), o.Count())
	assert.Equal(t, "nested", o.Doc().Name())
	assert.Equal(t, []int32{1, 2, 3}, o.Doc().Tags().Values())
	assert.Equal(t, uint32(11), o.Doc().ID())

	// The embedded table is a complete image in the outer slot.
	standalone := NewDoc()
	require.NoError(t, zerobuf.Load(standalone, standalone.TypeIdentifier(), o.Doc().Bytes()))
	assert.Equal(t, "nested", standalone.Name())

	d := NewDoc()
	d.SetName("replaced")
	o.SetDoc(d)
	assert.Equal(t, "replaced", o.Doc().Name())
	assert.Empty(t, o.Doc().Tags().Values())

	c := o.Clone()
	c.Doc().SetName("clone")
	assert.Equal(t, "replaced", o.Doc().Name())
	assert.Equal(t, "clone", c.Doc().Name())
}

func TestCompact(t *testing.T) {
	o := NewOuter()
	for _, name := range []string{"a", "abc", "abcdef", "abcdefghijkl"} {
		o.Doc().SetName(name)
	}
	o.Doc().SetTags([]int32{1, 2})
	size := len(o.Bytes())

	o.Compact(zerobuf.DefaultCompactThreshold)
	compacted := len(o.Bytes())
	assert.Less(t, compacted, size)
	assert.Equal(t, "abcdefghijkl", o.Doc().Name())
	assert.Equal(t, []int32{1, 2}, o.Doc().Tags().Values())

	o.Compact(zerobuf.DefaultCompactThreshold)
	assert.Len(t, o.Bytes(), compacted)
}

func TestEmptyTable(t *testing.T) {
	e := NewEmpty()
	assert.Nil(t, e.Allocator())
	assert.Zero(t, e.StaticSize())
	assert.Nil(t, e.Bytes())

	s, err := zerobuf.ToJSON(e)
	require.NoError(t, err)
	assert.Equal(t, "{}", s)
	require.NoError(t, zerobuf.FromJSON(e, `{"ignored": 1}`))
	require.NoError(t, zerobuf.Assign(NewEmpty(), e))
}
