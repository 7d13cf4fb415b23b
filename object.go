package zerobuf

import (
	"encoding/json"
	"fmt"
)

// Zerobuf is implemented by every generated table type.
type Zerobuf interface {
	// TypeIdentifier returns the 128-bit identifier of the table type.
	TypeIdentifier() Uint128
	// TypeName returns the fully qualified name, e.g. "ns::Point".
	TypeName() string
	// StaticSize returns the size of the static region, 0 for tables
	// without payload.
	StaticSize() int
	// NumDynamics returns the number of dynamic slots.
	NumDynamics() int
	// Layout returns the layout of the table.
	Layout() *Layout
	// Allocator returns the storage the object is bound to.
	Allocator() Allocator
	// Rebind binds the object and all its member views to a.
	Rebind(a Allocator)
	// SetChangingHook installs the hook fired before every mutation.
	SetChangingHook(fn func())
	// NotifyChanging fires the changing hook.
	NotifyChanging()
	// Compact compacts all dynamic members, then the object's own storage.
	Compact(threshold float64)

	json.Marshaler
	json.Unmarshaler
}

// Object is the base of generated tables. It holds the allocator the table
// is bound to and the hook fired before every mutation.
type Object struct {
	alloc    Allocator
	changing func()
}

// Allocator returns the allocator of the object. Tables without payload
// have none.
func (o *Object) Allocator() Allocator { return o.alloc }

// Reset binds the object to a. Generated Rebind methods call it before
// re-binding their members.
func (o *Object) Reset(a Allocator) { o.alloc = a }

// SetChangingHook installs fn to be called before every mutation.
func (o *Object) SetChangingHook(fn func()) { o.changing = fn }

// NotifyChanging fires the changing hook, if any.
func (o *Object) NotifyChanging() {
	if o.changing != nil {
		o.changing()
	}
}

// Data returns the static region of the object.
func (o *Object) Data() []byte {
	if o.alloc == nil {
		return nil
	}
	return o.alloc.Data()
}

// Bytes returns the complete allocation image of the object.
func (o *Object) Bytes() []byte {
	if o.alloc == nil {
		return nil
	}
	return o.alloc.Bytes()
}

// Version returns the value of the version header.
func (o *Object) Version() uint32 {
	if d := o.Data(); len(d) >= HeaderSize {
		return Uint32Codec.Get(d)
	}
	return 0
}

// Compact compacts the object's own storage. Generated tables with dynamic
// members compact those first.
func (o *Object) Compact(threshold float64) {
	if o.alloc != nil {
		o.alloc.Compact(threshold)
	}
}

// Assign deep-copies the content of src into the storage of dst. Both must
// be of the same table type.
func Assign(dst, src Zerobuf) error {
	if dst.TypeIdentifier() != src.TypeIdentifier() {
		return NewTypeMismatchError(dst.TypeName(), dst.TypeIdentifier(), src.TypeIdentifier())
	}
	if src.Allocator() == nil || dst.Allocator() == nil {
		return nil
	}
	dst.NotifyChanging()
	dst.Allocator().Assign(src.Allocator().Bytes())
	return nil
}

// Load verifies that data holds an instance of dst's type, identified by
// id, and copies it into dst.
func Load(dst Zerobuf, id Uint128, data []byte) error {
	if dst.TypeIdentifier() != id {
		return NewTypeMismatchError(dst.TypeName(), dst.TypeIdentifier(), id)
	}
	if len(data) < dst.StaticSize() {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrBufferTooSmall, dst.TypeName(), dst.StaticSize(), len(data))
	}
	if err := checkSlots(data, dst.Layout()); err != nil {
		return err
	}
	if dst.Allocator() == nil {
		return nil
	}
	dst.NotifyChanging()
	dst.Allocator().Assign(data)
	return nil
}

// Move transfers the storage of src to dst. If src owns its storage, dst
// is rebound to it and src to a fresh zeroed allocation; both objects end
// up with all member views re-addressed. Otherwise the content is copied
// and src is left untouched.
func Move(dst, src Zerobuf) error {
	if dst.TypeIdentifier() != src.TypeIdentifier() {
		return NewTypeMismatchError(dst.TypeName(), dst.TypeIdentifier(), src.TypeIdentifier())
	}
	sa, ok := src.Allocator().(*HeapAllocator)
	if _, owning := dst.Allocator().(*HeapAllocator); !ok || !owning {
		return Assign(dst, src)
	}
	dst.NotifyChanging()
	src.NotifyChanging()
	dst.Rebind(sa)
	src.Rebind(NewHeapAllocator(src.Layout()))
	return nil
}

// ToJSON returns the indented JSON form of z.
func ToJSON(z Zerobuf) (string, error) {
	b, err := json.MarshalIndent(z, "", "   ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromJSON updates z from a JSON object. Only the fields present in the
// object are modified.
func FromJSON(z Zerobuf, s string) error {
	return z.UnmarshalJSON([]byte(s))
}
