package zerobuf

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields holds the undecoded members of a JSON object. Generated
// UnmarshalJSON methods decode only the members present, leaving all other
// fields of the table unchanged.
type Fields map[string]json.RawMessage

// ParseFields splits a JSON object into its members. A JSON null yields no
// fields.
func ParseFields(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return f, nil
}

// Has reports whether the member name is present.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

func (f Fields) raw(name string) (json.RawMessage, bool) {
	raw, ok := f[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// DecodeField decodes the member name into a value of type T and passes it
// to set. Missing and null members are skipped. Byte slices are decoded
// from base64 strings.
func DecodeField[T any](f Fields, typ, name string, set func(T)) error {
	raw, ok := f.raw(name)
	if !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return NewFieldError(typ, name, fmt.Errorf("%w: %v", ErrInvalidJSON, err))
	}
	set(v)
	return nil
}

// DecodeObject decodes the member name into an embedded table, which keeps
// the values of the members the nested object omits.
func DecodeObject(f Fields, typ, name string, u json.Unmarshaler) error {
	raw, ok := f.raw(name)
	if !ok {
		return nil
	}
	if err := u.UnmarshalJSON(raw); err != nil {
		return NewFieldError(typ, name, err)
	}
	return nil
}

// DecodeTables decodes the member name, a JSON array, into freshly
// allocated tables and passes them to set.
func DecodeTables[T Zerobuf](f Fields, typ, name string, newElem func() T, set func([]T)) error {
	var elems []json.RawMessage
	if err := DecodeField(f, typ, name, func(v []json.RawMessage) { elems = v }); err != nil || elems == nil {
		return err
	}
	out := make([]T, len(elems))
	for i, raw := range elems {
		out[i] = newElem()
		if err := out[i].UnmarshalJSON(raw); err != nil {
			return NewFieldError(typ, fmt.Sprintf("%s[%d]", name, i), err)
		}
	}
	set(out)
	return nil
}

// DecodeTableArray decodes the member name, a JSON array, into the first n
// tables of a fixed-size array. Surplus elements are ignored.
func DecodeTableArray(f Fields, typ, name string, n int, at func(i int) json.Unmarshaler) error {
	var elems []json.RawMessage
	if err := DecodeField(f, typ, name, func(v []json.RawMessage) { elems = v }); err != nil {
		return err
	}
	for i := 0; i < len(elems) && i < n; i++ {
		if err := at(i).UnmarshalJSON(elems[i]); err != nil {
			return NewFieldError(typ, fmt.Sprintf("%s[%d]", name, i), err)
		}
	}
	return nil
}

// ByteList is a list of 8-bit integers that encodes as a JSON array of
// numbers. Byte slices encode as base64 strings instead.
type ByteList []uint8

// MarshalJSON implements json.Marshaler.
func (l ByteList) MarshalJSON() ([]byte, error) {
	ints := make([]uint16, len(l))
	for i, v := range l {
		ints[i] = uint16(v)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ByteList) UnmarshalJSON(data []byte) error {
	var nums []uint16
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	out := make(ByteList, len(nums))
	for i, v := range nums {
		if v > 0xff {
			return fmt.Errorf("%w: value %d overflows uint8", ErrInvalidJSON, v)
		}
		out[i] = uint8(v)
	}
	*l = out
	return nil
}
