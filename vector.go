package zerobuf

// Vector is a view of a dynamic slot holding fixed-size values. Strings are
// byte vectors.
type Vector[T any] struct {
	alloc    Allocator
	index    int
	codec    Codec[T]
	changing func()
}

// NewVector returns a view of slot index of a.
func NewVector[T any](a Allocator, index int, c Codec[T]) *Vector[T] {
	return &Vector[T]{alloc: a, index: index, codec: c}
}

// RebindVector re-targets v to a, creating the view if v is nil.
func RebindVector[T any](v *Vector[T], a Allocator, index int, c Codec[T]) *Vector[T] {
	if v == nil {
		return NewVector(a, index, c)
	}
	v.Rebind(a)
	return v
}

// Rebind re-targets the view to a new allocator.
func (v *Vector[T]) Rebind(a Allocator) { v.alloc = a }

// SetChangingHook installs fn to be called before every mutation through
// the view. Generated tables install the hook of their owner.
func (v *Vector[T]) SetChangingHook(fn func()) { v.changing = fn }

func (v *Vector[T]) notify() {
	if v.changing != nil {
		v.changing()
	}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return len(v.alloc.Dynamic(v.index)) / v.codec.Size }

// Empty reports whether the vector has no elements.
func (v *Vector[T]) Empty() bool { return v.Len() == 0 }

// At returns element i.
func (v *Vector[T]) At(i int) T {
	b := v.alloc.Dynamic(v.index)
	v.check(i, len(b))
	return v.codec.Get(b[i*v.codec.Size:])
}

// Set overwrites element i.
func (v *Vector[T]) Set(i int, x T) {
	b := v.alloc.Dynamic(v.index)
	v.check(i, len(b))
	v.notify()
	v.codec.Put(b[i*v.codec.Size:], x)
}

func (v *Vector[T]) check(i, n int) {
	if i < 0 || i >= n/v.codec.Size {
		panic(outOfRange("vector index", i, n/v.codec.Size))
	}
}

// Append adds xs to the end of the vector.
func (v *Vector[T]) Append(xs ...T) {
	if len(xs) == 0 {
		return
	}
	v.notify()
	n := len(v.alloc.Dynamic(v.index))
	b := v.alloc.UpdateAllocation(v.index, true, n+len(xs)*v.codec.Size)
	for i, x := range xs {
		v.codec.Put(b[n+i*v.codec.Size:], x)
	}
}

// Replace replaces the content of the vector with xs.
func (v *Vector[T]) Replace(xs []T) {
	v.notify()
	b := v.alloc.UpdateAllocation(v.index, false, len(xs)*v.codec.Size)
	for i, x := range xs {
		v.codec.Put(b[i*v.codec.Size:], x)
	}
}

// Resize changes the number of elements to n. New elements are zero.
func (v *Vector[T]) Resize(n int) {
	v.notify()
	old := len(v.alloc.Dynamic(v.index))
	b := v.alloc.UpdateAllocation(v.index, true, n*v.codec.Size)
	if len(b) > old {
		clear(b[old:])
	}
}

// Clear removes all elements.
func (v *Vector[T]) Clear() {
	v.notify()
	v.alloc.UpdateAllocation(v.index, false, 0)
}

// Values returns a copy of the elements.
func (v *Vector[T]) Values() []T {
	b := v.alloc.Dynamic(v.index)
	out := make([]T, len(b)/v.codec.Size)
	for i := range out {
		out[i] = v.codec.Get(b[i*v.codec.Size:])
	}
	return out
}

// Bytes returns the raw storage of the vector. The slice aliases the
// allocation until it is resized.
func (v *Vector[T]) Bytes() []byte { return v.alloc.Dynamic(v.index) }

// SetBytes populates the vector directly from raw memory. Trailing bytes
// that do not form a whole element are dropped.
func (v *Vector[T]) SetBytes(b []byte) {
	v.notify()
	n := len(b) / v.codec.Size * v.codec.Size
	copy(v.alloc.UpdateAllocation(v.index, false, n), b[:n])
}

// String returns the raw storage as a string.
func (v *Vector[T]) String() string { return string(v.alloc.Dynamic(v.index)) }

// SetString populates the vector from the bytes of s.
func (v *Vector[T]) SetString(s string) { v.SetBytes([]byte(s)) }

// Compact is a no-op: the values of a vector are stored contiguously in
// its slot. It exists so every dynamic member can be compacted alike.
func (v *Vector[T]) Compact(float64) {}

// TableVector is a view of a dynamic slot holding static tables.
type TableVector[T Zerobuf] struct {
	alloc    Allocator
	index    int
	elemSize int
	newElem  func(Allocator) T
	changing func()
}

// NewTableVector returns a view of slot index of a. newElem binds a table
// view to the allocator of one element.
func NewTableVector[T Zerobuf](a Allocator, index, elemSize int, newElem func(Allocator) T) *TableVector[T] {
	return &TableVector[T]{alloc: a, index: index, elemSize: elemSize, newElem: newElem}
}

// RebindTableVector re-targets v to a, creating the view if v is nil.
func RebindTableVector[T Zerobuf](v *TableVector[T], a Allocator, index, elemSize int, newElem func(Allocator) T) *TableVector[T] {
	if v == nil {
		return NewTableVector(a, index, elemSize, newElem)
	}
	v.Rebind(a)
	return v
}

// Rebind re-targets the view to a new allocator.
func (v *TableVector[T]) Rebind(a Allocator) { v.alloc = a }

// SetChangingHook installs fn to be called before every mutation through
// the view or through the element views returned by At.
func (v *TableVector[T]) SetChangingHook(fn func()) { v.changing = fn }

func (v *TableVector[T]) notify() {
	if v.changing != nil {
		v.changing()
	}
}

// Len returns the number of elements.
func (v *TableVector[T]) Len() int { return len(v.alloc.Dynamic(v.index)) / v.elemSize }

// Empty reports whether the vector has no elements.
func (v *TableVector[T]) Empty() bool { return v.Len() == 0 }

// At returns a view of element i that shares the vector's storage.
func (v *TableVector[T]) At(i int) T {
	if n := v.Len(); i < 0 || i >= n {
		panic(outOfRange("vector index", i, n))
	}
	e := v.newElem(NewStaticSubAllocator(v.alloc, v.index, i*v.elemSize, v.elemSize))
	e.SetChangingHook(v.changing)
	return e
}

// Append copies xs to the end of the vector.
func (v *TableVector[T]) Append(xs ...T) {
	if len(xs) == 0 {
		return
	}
	v.notify()
	n := len(v.alloc.Dynamic(v.index))
	b := v.alloc.UpdateAllocation(v.index, true, n+len(xs)*v.elemSize)
	for i, x := range xs {
		copy(b[n+i*v.elemSize:n+(i+1)*v.elemSize], x.Allocator().Data())
	}
}

// Replace replaces the content of the vector with copies of xs.
func (v *TableVector[T]) Replace(xs []T) {
	v.notify()
	b := v.alloc.UpdateAllocation(v.index, false, len(xs)*v.elemSize)
	for i, x := range xs {
		copy(b[i*v.elemSize:(i+1)*v.elemSize], x.Allocator().Data())
	}
}

// Clear removes all elements.
func (v *TableVector[T]) Clear() {
	v.notify()
	v.alloc.UpdateAllocation(v.index, false, 0)
}

// Values returns standalone copies of the elements.
func (v *TableVector[T]) Values() []T {
	out := make([]T, v.Len())
	for i := range out {
		e := v.At(i)
		out[i] = v.newElem(CloneAllocator(e.Allocator()))
	}
	return out
}

// Compact is a no-op: the elements are static tables.
func (v *TableVector[T]) Compact(float64) {}
