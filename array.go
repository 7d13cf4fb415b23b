package zerobuf

// Array is a view of a fixed-size array stored in the static region.
type Array[T any] struct {
	alloc    Allocator
	offset   int
	n        int
	codec    Codec[T]
	changing func()
}

// NewArray returns a view of n values starting at offset in a's static
// region.
func NewArray[T any](a Allocator, offset, n int, c Codec[T]) *Array[T] {
	return &Array[T]{alloc: a, offset: offset, n: n, codec: c}
}

// RebindArray re-targets arr to a, creating the view if arr is nil.
func RebindArray[T any](arr *Array[T], a Allocator, offset, n int, c Codec[T]) *Array[T] {
	if arr == nil {
		return NewArray(a, offset, n, c)
	}
	arr.Rebind(a)
	return arr
}

// Rebind re-targets the view to a new allocator.
func (a *Array[T]) Rebind(alloc Allocator) { a.alloc = alloc }

// SetChangingHook installs fn to be called before every mutation through
// the view.
func (a *Array[T]) SetChangingHook(fn func()) { a.changing = fn }

func (a *Array[T]) notify() {
	if a.changing != nil {
		a.changing()
	}
}

// Len returns the fixed number of elements.
func (a *Array[T]) Len() int { return a.n }

// At returns element i.
func (a *Array[T]) At(i int) T {
	a.check(i)
	return a.codec.Get(a.Bytes()[i*a.codec.Size:])
}

// Set overwrites element i.
func (a *Array[T]) Set(i int, x T) {
	a.check(i)
	a.notify()
	a.codec.Put(a.Bytes()[i*a.codec.Size:], x)
}

func (a *Array[T]) check(i int) {
	if i < 0 || i >= a.n {
		panic(outOfRange("array index", i, a.n))
	}
}

// Bytes returns the raw storage of the array.
func (a *Array[T]) Bytes() []byte {
	end := a.offset + a.n*a.codec.Size
	return a.alloc.Data()[a.offset:end:end]
}

// Values returns a copy of the elements.
func (a *Array[T]) Values() []T {
	b := a.Bytes()
	out := make([]T, a.n)
	for i := range out {
		out[i] = a.codec.Get(b[i*a.codec.Size:])
	}
	return out
}

// Assign copies xs into the first len(xs) elements. A source larger than
// the array is ignored and leaves the content unchanged.
func (a *Array[T]) Assign(xs []T) {
	if len(xs) > a.n {
		return
	}
	a.notify()
	b := a.Bytes()
	for i, x := range xs {
		a.codec.Put(b[i*a.codec.Size:], x)
	}
}

// AssignString copies the bytes of s into the array. A string larger than
// the array is ignored and leaves the content unchanged.
func (a *Array[T]) AssignString(s string) {
	b := a.Bytes()
	if len(s) > len(b) {
		return
	}
	a.notify()
	copy(b, s)
}

// Fill copies as many values of xs as fit into the array.
func (a *Array[T]) Fill(xs []T) {
	a.Assign(xs[:min(len(xs), a.n)])
}

// FillBytes copies as many bytes of b as fit into the array.
func (a *Array[T]) FillBytes(b []byte) {
	a.notify()
	copy(a.Bytes(), b)
}
