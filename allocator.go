package zerobuf

import "fmt"

const (
	// HeaderSize is the size of the version header every table starts with.
	HeaderSize = 4
	// SlotSize is the static size of one dynamic slot: an 8-byte offset and
	// an 8-byte size.
	SlotSize = 16
	// DefaultCompactThreshold is the free-space ratio above which Compact
	// rewrites an allocation.
	DefaultCompactThreshold = 0.1
)

// Layout describes the static shape of a table allocation.
type Layout struct {
	// StaticSize is the size of the static region, header included.
	StaticSize int
	// Slots holds the static offset of every dynamic slot, by slot index.
	Slots []int
}

// NumDynamics returns the number of dynamic slots.
func (l *Layout) NumDynamics() int { return len(l.Slots) }

// An Allocator provides the storage of one table object. The static region
// comes first, the dynamic data of the slots follows it. Slot offsets are
// relative to the start of the allocation, so an allocation image can be
// copied anywhere.
//
// Slices returned by an Allocator are only valid until the next call that
// may resize the storage.
type Allocator interface {
	// Layout returns the layout the allocator was created for.
	Layout() *Layout
	// Data returns the static region.
	Data() []byte
	// Bytes returns the whole allocation image.
	Bytes() []byte
	// Dynamic returns the data of the given slot.
	Dynamic(index int) []byte
	// UpdateAllocation resizes the given slot and returns its data. If
	// copy is set, the current content is preserved up to the new size.
	UpdateAllocation(index int, copy bool, size int) []byte
	// Compact removes unused space from the dynamic region if the ratio
	// of free space exceeds threshold.
	Compact(threshold float64)
	// Assign replaces the allocation with a copy of image.
	Assign(image []byte)
}

// storage is the resizable byte image an allocation lives in.
type storage interface {
	image() []byte
	resize(n int) []byte
	replace(image []byte)
}

func readSlot(img []byte, l *Layout, index int) (offset, size int) {
	if index < 0 || index >= len(l.Slots) {
		panic(outOfRange("dynamic slot", index, len(l.Slots)))
	}
	p := l.Slots[index]
	return int(getUint64(img[p:])), int(getUint64(img[p+8:]))
}

// checkSlots reports the first slot of img whose data lies outside of img
// or overlaps the static region.
func checkSlots(img []byte, l *Layout) error {
	n := uint64(len(img))
	for i, p := range l.Slots {
		if p < 0 || p+SlotSize > len(img) {
			return fmt.Errorf("%w: slot %d at %d exceeds %d bytes", ErrBufferTooSmall, i, p, len(img))
		}
		off, size := getUint64(img[p:]), getUint64(img[p+8:])
		if size == 0 {
			continue
		}
		if off < uint64(l.StaticSize) || off > n || size > n-off {
			return fmt.Errorf("%w: slot %d holds %d bytes at %d, data has %d", ErrBufferTooSmall, i, size, off, n)
		}
	}
	return nil
}

func writeSlot(img []byte, l *Layout, index, offset, size int) {
	p := l.Slots[index]
	putUint64(img[p:], uint64(offset))
	putUint64(img[p+8:], uint64(size))
}

func dynamicData(s storage, l *Layout, index int) []byte {
	img := s.image()
	off, size := readSlot(img, l, index)
	if size == 0 {
		return nil
	}
	return img[off : off+size : off+size]
}

// updateAllocation shrinks a slot in place or moves it to the end of the
// image when it grows. Space left behind is reclaimed by compact.
func updateAllocation(s storage, l *Layout, index int, copyData bool, size int) []byte {
	img := s.image()
	off, old := readSlot(img, l, index)
	if size <= old {
		if size == 0 {
			off = 0
		}
		writeSlot(img, l, index, off, size)
		return img[off : off+size : off+size]
	}
	end := len(img)
	img = s.resize(end + size)
	if copyData && old > 0 {
		copy(img[end:], img[off:off+old])
	}
	writeSlot(img, l, index, end, size)
	return img[end : end+size : end+size]
}

func compactStorage(s storage, l *Layout, threshold float64) {
	img := s.image()
	if len(l.Slots) == 0 || len(img) == 0 {
		return
	}
	used := l.StaticSize
	for i := range l.Slots {
		_, size := readSlot(img, l, i)
		used += size
	}
	free := len(img) - used
	if free <= 0 || float64(free)/float64(len(img)) <= threshold {
		return
	}
	out := make([]byte, used)
	copy(out, img[:l.StaticSize])
	pos := l.StaticSize
	for i := range l.Slots {
		off, size := readSlot(img, l, i)
		if size == 0 {
			writeSlot(out, l, i, 0, 0)
			continue
		}
		copy(out[pos:], img[off:off+size])
		writeSlot(out, l, i, pos, size)
		pos += size
	}
	s.replace(out)
}

// HeapAllocator owns a heap-allocated image.
type HeapAllocator struct {
	layout *Layout
	buf    []byte
}

// NewHeapAllocator returns a zeroed allocation for the given layout.
func NewHeapAllocator(l *Layout) *HeapAllocator {
	return &HeapAllocator{layout: l, buf: make([]byte, l.StaticSize)}
}

// NewHeapAllocatorFrom returns an allocation holding a copy of image.
func NewHeapAllocatorFrom(l *Layout, image []byte) *HeapAllocator {
	a := &HeapAllocator{layout: l}
	a.Assign(image)
	return a
}

// CloneAllocator returns an owning copy of the allocation a. It returns nil
// if a is nil.
func CloneAllocator(a Allocator) Allocator {
	if a == nil {
		return nil
	}
	return NewHeapAllocatorFrom(a.Layout(), a.Bytes())
}

func (a *HeapAllocator) Layout() *Layout { return a.layout }
func (a *HeapAllocator) Data() []byte    { return a.buf[:a.layout.StaticSize:a.layout.StaticSize] }
func (a *HeapAllocator) Bytes() []byte   { return a.buf }

func (a *HeapAllocator) Dynamic(index int) []byte {
	return dynamicData(a, a.layout, index)
}

func (a *HeapAllocator) UpdateAllocation(index int, copy bool, size int) []byte {
	return updateAllocation(a, a.layout, index, copy, size)
}

func (a *HeapAllocator) Compact(threshold float64) {
	compactStorage(a, a.layout, threshold)
}

func (a *HeapAllocator) Assign(image []byte) {
	n := max(len(image), a.layout.StaticSize)
	buf := make([]byte, n)
	copy(buf, image)
	a.buf = buf
}

func (a *HeapAllocator) image() []byte { return a.buf }

func (a *HeapAllocator) resize(n int) []byte {
	if n <= cap(a.buf) {
		old := len(a.buf)
		a.buf = a.buf[:n]
		if n > old {
			clear(a.buf[old:])
		}
		return a.buf
	}
	buf := make([]byte, n, max(n, 2*cap(a.buf)))
	copy(buf, a.buf)
	a.buf = buf
	return buf
}

func (a *HeapAllocator) replace(image []byte) { a.buf = image }

// StaticSubAllocator addresses a fixed byte range of its parent: either of
// the parent's static region (slot < 0) or of one of its dynamic slots.
// Nested static tables, fixed arrays of tables and elements of table
// vectors live in such ranges.
type StaticSubAllocator struct {
	parent Allocator
	slot   int
	offset int
	layout Layout
}

// NewStaticSubAllocator returns an allocator for parent's bytes
// [offset, offset+size) of the static region, or of the given dynamic slot
// when slot >= 0.
func NewStaticSubAllocator(parent Allocator, slot, offset, size int) *StaticSubAllocator {
	return &StaticSubAllocator{
		parent: parent,
		slot:   slot,
		offset: offset,
		layout: Layout{StaticSize: size},
	}
}

// Rebind re-targets the allocator to a new parent.
func (a *StaticSubAllocator) Rebind(parent Allocator) { a.parent = parent }

func (a *StaticSubAllocator) Layout() *Layout { return &a.layout }

func (a *StaticSubAllocator) Data() []byte {
	var b []byte
	if a.slot < 0 {
		b = a.parent.Data()
	} else {
		b = a.parent.Dynamic(a.slot)
	}
	end := a.offset + a.layout.StaticSize
	return b[a.offset:end:end]
}

func (a *StaticSubAllocator) Bytes() []byte { return a.Data() }

func (a *StaticSubAllocator) Dynamic(index int) []byte {
	panic(fmt.Sprintf("zerobuf: static allocation has no dynamic slot %d", index))
}

func (a *StaticSubAllocator) UpdateAllocation(index int, _ bool, _ int) []byte {
	panic(fmt.Sprintf("zerobuf: static allocation has no dynamic slot %d", index))
}

func (a *StaticSubAllocator) Compact(float64) {}

func (a *StaticSubAllocator) Assign(image []byte) {
	copy(a.Data(), image)
}

// DynamicSubAllocator addresses an embedded dynamically-sized table that
// lives in one dynamic slot of its parent. The slot holds a complete
// allocation image of the embedded table.
type DynamicSubAllocator struct {
	parent Allocator
	index  int
	layout *Layout
}

// NewDynamicSubAllocator returns an allocator for the table stored in
// parent's dynamic slot index. The slot is grown to the table's static size
// if needed.
func NewDynamicSubAllocator(parent Allocator, index int, l *Layout) *DynamicSubAllocator {
	a := &DynamicSubAllocator{parent: parent, index: index, layout: l}
	a.image()
	return a
}

// Rebind re-targets the allocator to a new parent.
func (a *DynamicSubAllocator) Rebind(parent Allocator) {
	a.parent = parent
	a.image()
}

func (a *DynamicSubAllocator) Layout() *Layout { return a.layout }

func (a *DynamicSubAllocator) Data() []byte {
	return a.image()[:a.layout.StaticSize:a.layout.StaticSize]
}

func (a *DynamicSubAllocator) Bytes() []byte { return a.image() }

func (a *DynamicSubAllocator) Dynamic(index int) []byte {
	return dynamicData(a, a.layout, index)
}

func (a *DynamicSubAllocator) UpdateAllocation(index int, copy bool, size int) []byte {
	return updateAllocation(a, a.layout, index, copy, size)
}

func (a *DynamicSubAllocator) Compact(threshold float64) {
	compactStorage(a, a.layout, threshold)
}

func (a *DynamicSubAllocator) Assign(image []byte) {
	n := max(len(image), a.layout.StaticSize)
	region := a.parent.UpdateAllocation(a.index, false, n)
	copy(region, image)
	clear(region[len(image):])
}

func (a *DynamicSubAllocator) image() []byte {
	img := a.parent.Dynamic(a.index)
	if len(img) < a.layout.StaticSize {
		img = a.parent.UpdateAllocation(a.index, true, a.layout.StaticSize)
	}
	return img
}

func (a *DynamicSubAllocator) resize(n int) []byte {
	return a.parent.UpdateAllocation(a.index, true, n)
}

func (a *DynamicSubAllocator) replace(image []byte) {
	region := a.parent.UpdateAllocation(a.index, false, len(image))
	copy(region, image)
}

var (
	_ Allocator = (*HeapAllocator)(nil)
	_ Allocator = (*StaticSubAllocator)(nil)
	_ Allocator = (*DynamicSubAllocator)(nil)
)
