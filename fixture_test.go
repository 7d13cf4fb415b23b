package zerobuf_test

import (
	"encoding/json"

	"github.com/syssam/zerobuf"
)

// Hand-written equivalents of the tables zerobufc renders for
//
//	namespace test;
//	enum Color : uint { Red, Green, Blue }
//	table Pos { x: float; y: float = 1.5; }
//	table Doc { id: uint; name: string; tags: [int]; pos: Pos; color: Color; }
//	table Sample { key: [ubyte:8]; coords: [float:3]; guid: uint128_t; points: [Pos:2]; items: [Pos]; }
//	table Outer { doc: Doc; count: ulong; }
//	table Empty {}

type Color uint32

const (
	Color_Red   Color = 0
	Color_Green Color = 1
	Color_Blue  Color = 2
)

var colorCodec = zerobuf.EnumCodec[Color]()

type Pos struct {
	zerobuf.Object
}

var posLayout = &zerobuf.Layout{StaticSize: 12}

func NewPos() *Pos {
	t := NewPosFromAllocator(zerobuf.NewHeapAllocator(posLayout))
	zerobuf.Float32Codec.Put(t.Data()[8:], 1.5)
	return t
}

func NewPosFromAllocator(a zerobuf.Allocator) *Pos {
	t := &Pos{}
	t.Rebind(a)
	return t
}

func (t *Pos) Rebind(a zerobuf.Allocator) { t.Reset(a) }

func (t *Pos) TypeIdentifier() zerobuf.Uint128 {
	return zerobuf.Uint128{High: 0x1111111111111111, Low: 0x0000000000000001}
}
func (t *Pos) TypeName() string        { return "test::Pos" }
func (t *Pos) StaticSize() int         { return 12 }
func (t *Pos) NumDynamics() int        { return 0 }
func (t *Pos) Layout() *zerobuf.Layout { return posLayout }
func (t *Pos) Clone() *Pos             { return NewPosFromAllocator(zerobuf.CloneAllocator(t.Allocator())) }
func (t *Pos) MoveFrom(src *Pos) error { return zerobuf.Move(t, src) }
func (t *Pos) X() float32              { return zerobuf.Float32Codec.Get(t.Data()[4:]) }
func (t *Pos) Y() float32              { return zerobuf.Float32Codec.Get(t.Data()[8:]) }

func (t *Pos) SetX(v float32) {
	t.NotifyChanging()
	zerobuf.Float32Codec.Put(t.Data()[4:], v)
}

func (t *Pos) SetY(v float32) {
	t.NotifyChanging()
	zerobuf.Float32Codec.Put(t.Data()[8:], v)
}

func (t *Pos) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
	}{t.X(), t.Y()})
}

func (t *Pos) UnmarshalJSON(data []byte) error {
	f, err := zerobuf.ParseFields(data)
	if err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Pos", "x", t.SetX); err != nil {
		return err
	}
	return zerobuf.DecodeField(f, "test::Pos", "y", t.SetY)
}

type Doc struct {
	zerobuf.Object
	name *zerobuf.Vector[byte]
	tags *zerobuf.Vector[int32]
	pos  *Pos
}

var docLayout = &zerobuf.Layout{StaticSize: 56, Slots: []int{8, 24}}

func NewDoc() *Doc {
	t := NewDocFromAllocator(zerobuf.NewHeapAllocator(docLayout))
	zerobuf.Float32Codec.Put(t.pos.Data()[8:], 1.5)
	return t
}

func NewDocFromAllocator(a zerobuf.Allocator) *Doc {
	t := &Doc{}
	t.Rebind(a)
	return t
}

func (t *Doc) Rebind(a zerobuf.Allocator) {
	t.Reset(a)
	t.name = zerobuf.RebindVector(t.name, a, 0, zerobuf.ByteCodec)
	t.name.SetChangingHook(t.NotifyChanging)
	t.tags = zerobuf.RebindVector(t.tags, a, 1, zerobuf.Int32Codec)
	t.tags.SetChangingHook(t.NotifyChanging)
	if t.pos == nil {
		t.pos = &Pos{}
		t.pos.SetChangingHook(t.NotifyChanging)
	}
	t.pos.Rebind(zerobuf.NewStaticSubAllocator(a, -1, 40, 12))
}

func (t *Doc) TypeIdentifier() zerobuf.Uint128 {
	return zerobuf.Uint128{High: 0x2222222222222222, Low: 0x0000000000000002}
}
func (t *Doc) TypeName() string        { return "test::Doc" }
func (t *Doc) StaticSize() int         { return 56 }
func (t *Doc) NumDynamics() int        { return 2 }
func (t *Doc) Layout() *zerobuf.Layout { return docLayout }
func (t *Doc) Clone() *Doc             { return NewDocFromAllocator(zerobuf.CloneAllocator(t.Allocator())) }
func (t *Doc) MoveFrom(src *Doc) error { return zerobuf.Move(t, src) }

func (t *Doc) ID() uint32                        { return zerobuf.Uint32Codec.Get(t.Data()[4:]) }
func (t *Doc) Name() string                      { return t.name.String() }
func (t *Doc) NameVector() *zerobuf.Vector[byte] { return t.name }
func (t *Doc) Tags() *zerobuf.Vector[int32]      { return t.tags }
func (t *Doc) Pos() *Pos                         { return t.pos }
func (t *Doc) Color() Color                      { return colorCodec.Get(t.Data()[52:]) }

func (t *Doc) SetID(v uint32) {
	t.NotifyChanging()
	zerobuf.Uint32Codec.Put(t.Data()[4:], v)
}

func (t *Doc) SetName(v string) {
	t.name.SetString(v)
}

func (t *Doc) SetTags(v []int32) {
	t.tags.Replace(v)
}

func (t *Doc) SetPos(v *Pos) {
	t.NotifyChanging()
	t.pos.Allocator().Assign(v.Allocator().Bytes())
}

func (t *Doc) SetColor(v Color) {
	t.NotifyChanging()
	colorCodec.Put(t.Data()[52:], v)
}

func (t *Doc) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    uint32  `json:"id"`
		Name  string  `json:"name"`
		Tags  []int32 `json:"tags"`
		Pos   *Pos    `json:"pos"`
		Color Color   `json:"color"`
	}{t.ID(), t.Name(), t.tags.Values(), t.pos, t.Color()})
}

func (t *Doc) UnmarshalJSON(data []byte) error {
	f, err := zerobuf.ParseFields(data)
	if err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Doc", "id", t.SetID); err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Doc", "name", t.SetName); err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Doc", "tags", t.SetTags); err != nil {
		return err
	}
	if err := zerobuf.DecodeObject(f, "test::Doc", "pos", t.pos); err != nil {
		return err
	}
	return zerobuf.DecodeField(f, "test::Doc", "color", t.SetColor)
}

type Sample struct {
	zerobuf.Object
	key    *zerobuf.Array[uint8]
	coords *zerobuf.Array[float32]
	points []*Pos
	items  *zerobuf.TableVector[*Pos]
}

var sampleLayout = &zerobuf.Layout{StaticSize: 80, Slots: []int{64}}

func NewSample() *Sample {
	t := NewSampleFromAllocator(zerobuf.NewHeapAllocator(sampleLayout))
	for _, p := range t.points {
		zerobuf.Float32Codec.Put(p.Data()[8:], 1.5)
	}
	return t
}

func NewSampleFromAllocator(a zerobuf.Allocator) *Sample {
	t := &Sample{}
	t.Rebind(a)
	return t
}

func (t *Sample) Rebind(a zerobuf.Allocator) {
	t.Reset(a)
	t.key = zerobuf.RebindArray(t.key, a, 4, 8, zerobuf.Uint8Codec)
	t.key.SetChangingHook(t.NotifyChanging)
	t.coords = zerobuf.RebindArray(t.coords, a, 12, 3, zerobuf.Float32Codec)
	t.coords.SetChangingHook(t.NotifyChanging)
	if t.points == nil {
		t.points = make([]*Pos, 2)
		for i := range t.points {
			t.points[i] = &Pos{}
			t.points[i].SetChangingHook(t.NotifyChanging)
		}
	}
	for i, p := range t.points {
		p.Rebind(zerobuf.NewStaticSubAllocator(a, -1, 40+i*12, 12))
	}
	t.items = zerobuf.RebindTableVector(t.items, a, 0, 12, NewPosFromAllocator)
	t.items.SetChangingHook(t.NotifyChanging)
}

func (t *Sample) TypeIdentifier() zerobuf.Uint128 {
	return zerobuf.Uint128{High: 0x3333333333333333, Low: 0x0000000000000003}
}
func (t *Sample) TypeName() string        { return "test::Sample" }
func (t *Sample) StaticSize() int         { return 80 }
func (t *Sample) NumDynamics() int        { return 1 }
func (t *Sample) Layout() *zerobuf.Layout { return sampleLayout }

func (t *Sample) Key() *zerobuf.Array[uint8]        { return t.key }
func (t *Sample) Coords() *zerobuf.Array[float32]   { return t.coords }
func (t *Sample) GUID() zerobuf.Uint128             { return zerobuf.Uint128Codec.Get(t.Data()[24:]) }
func (t *Sample) Points() []*Pos                    { return append([]*Pos(nil), t.points...) }
func (t *Sample) Items() *zerobuf.TableVector[*Pos] { return t.items }

func (t *Sample) SetKey(v []uint8) {
	t.key.Assign(v)
}

func (t *Sample) SetKeyString(v string) {
	t.key.AssignString(v)
}

func (t *Sample) SetCoords(v []float32) {
	t.coords.Assign(v)
}

func (t *Sample) SetGUID(v zerobuf.Uint128) {
	t.NotifyChanging()
	zerobuf.Uint128Codec.Put(t.Data()[24:], v)
}

func (t *Sample) SetItems(v []*Pos) {
	t.items.Replace(v)
}

func (t *Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key    []byte          `json:"key"`
		Coords []float32       `json:"coords"`
		GUID   zerobuf.Uint128 `json:"guid"`
		Points []*Pos          `json:"points"`
		Items  []*Pos          `json:"items"`
	}{t.key.Bytes(), t.coords.Values(), t.GUID(), t.points, t.items.Values()})
}

func (t *Sample) UnmarshalJSON(data []byte) error {
	f, err := zerobuf.ParseFields(data)
	if err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Sample", "key", t.key.FillBytes); err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Sample", "coords", t.coords.Fill); err != nil {
		return err
	}
	if err := zerobuf.DecodeField(f, "test::Sample", "guid", t.SetGUID); err != nil {
		return err
	}
	if err := zerobuf.DecodeTableArray(f, "test::Sample", "points", len(t.points), func(i int) json.Unmarshaler {
		return t.points[i]
	}); err != nil {
		return err
	}
	return zerobuf.DecodeTables(f, "test::Sample", "items", NewPos, t.SetItems)
}

type Outer struct {
	zerobuf.Object
	doc *Doc
}

var outerLayout = &zerobuf.Layout{StaticSize: 28, Slots: []int{4}}

func NewOuter() *Outer {
	t := NewOuterFromAllocator(zerobuf.NewHeapAllocator(outerLayout))
	zerobuf.Float32Codec.Put(t.doc.Pos().Data()[8:], 1.5)
	return t
}

func NewOuterFromAllocator(a zerobuf.Allocator) *Outer {
	t := &Outer{}
	t.Rebind(a)
	return t
}

func (t *Outer) Rebind(a zerobuf.Allocator) {
	t.Reset(a)
	if t.doc == nil {
		t.doc = &Doc{}
		t.doc.SetChangingHook(t.NotifyChanging)
	}
	t.doc.Rebind(zerobuf.NewDynamicSubAllocator(a, 0, docLayout))
}

func (t *Outer) TypeIdentifier() zerobuf.Uint128 {
	return zerobuf.Uint128{High: 0x4444444444444444, Low: 0x0000000000000004}
}
func (t *Outer) TypeName() string          { return "test::Outer" }
func (t *Outer) StaticSize() int           { return 28 }
func (t *Outer) NumDynamics() int          { return 1 }
func (t *Outer) Layout() *zerobuf.Layout   { return outerLayout }
func (t *Outer) Clone() *Outer             { return NewOuterFromAllocator(zerobuf.CloneAllocator(t.Allocator())) }
func (t *Outer) MoveFrom(src *Outer) error { return zerobuf.Move(t, src) }
func (t *Outer) Doc() *Doc                 { return t.doc }
func (t *Outer) Count() uint64             { return zerobuf.Uint64Codec.Get(t.Data()[20:]) }

func (t *Outer) SetDoc(v *Doc) {
	t.NotifyChanging()
	t.doc.Allocator().Assign(v.Allocator().Bytes())
}

func (t *Outer) SetCount(v uint64) {
	t.NotifyChanging()
	zerobuf.Uint64Codec.Put(t.Data()[20:], v)
}

func (t *Outer) Compact(threshold float64) {
	t.doc.Compact(threshold)
	t.Object.Compact(threshold)
}

func (t *Outer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Doc   *Doc   `json:"doc"`
		Count uint64 `json:"count"`
	}{t.doc, t.Count()})
}

func (t *Outer) UnmarshalJSON(data []byte) error {
	f, err := zerobuf.ParseFields(data)
	if err != nil {
		return err
	}
	if err := zerobuf.DecodeObject(f, "test::Outer", "doc", t.doc); err != nil {
		return err
	}
	return zerobuf.DecodeField(f, "test::Outer", "count", t.SetCount)
}

type Empty struct {
	zerobuf.Object
}

var emptyLayout = &zerobuf.Layout{}

func NewEmpty() *Empty { return &Empty{} }

func (t *Empty) Rebind(a zerobuf.Allocator) { t.Reset(a) }

func (t *Empty) TypeIdentifier() zerobuf.Uint128 {
	return zerobuf.Uint128{High: 0x5555555555555555, Low: 0x0000000000000005}
}
func (t *Empty) TypeName() string                { return "test::Empty" }
func (t *Empty) StaticSize() int                 { return 0 }
func (t *Empty) NumDynamics() int                { return 0 }
func (t *Empty) Layout() *zerobuf.Layout         { return emptyLayout }
func (t *Empty) MarshalJSON() ([]byte, error)    { return []byte("{}"), nil }
func (t *Empty) UnmarshalJSON(data []byte) error { _, err := zerobuf.ParseFields(data); return err }

var (
	_ zerobuf.Zerobuf = (*Pos)(nil)
	_ zerobuf.Zerobuf = (*Doc)(nil)
	_ zerobuf.Zerobuf = (*Sample)(nil)
	_ zerobuf.Zerobuf = (*Outer)(nil)
	_ zerobuf.Zerobuf = (*Empty)(nil)
)
