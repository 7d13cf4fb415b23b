package zerobuf

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Codec reads and writes one fixed-size value at the start of a byte slice.
// Values are stored little endian.
type Codec[T any] struct {
	// Size is the number of bytes one value occupies.
	Size int
	// Get decodes a value from b[:Size].
	Get func(b []byte) T
	// Put encodes v into b[:Size].
	Put func(b []byte, v T)
}

// Codecs for the built-in scalar types.
var (
	BoolCodec    = Codec[bool]{Size: 1, Get: flatbuffers.GetBool, Put: flatbuffers.WriteBool}
	ByteCodec    = Codec[byte]{Size: 1, Get: flatbuffers.GetByte, Put: flatbuffers.WriteByte}
	Int8Codec    = Codec[int8]{Size: 1, Get: flatbuffers.GetInt8, Put: flatbuffers.WriteInt8}
	Uint8Codec   = Codec[uint8]{Size: 1, Get: flatbuffers.GetUint8, Put: flatbuffers.WriteUint8}
	Int16Codec   = Codec[int16]{Size: 2, Get: flatbuffers.GetInt16, Put: flatbuffers.WriteInt16}
	Uint16Codec  = Codec[uint16]{Size: 2, Get: flatbuffers.GetUint16, Put: flatbuffers.WriteUint16}
	Int32Codec   = Codec[int32]{Size: 4, Get: flatbuffers.GetInt32, Put: flatbuffers.WriteInt32}
	Uint32Codec  = Codec[uint32]{Size: 4, Get: flatbuffers.GetUint32, Put: flatbuffers.WriteUint32}
	Int64Codec   = Codec[int64]{Size: 8, Get: flatbuffers.GetInt64, Put: flatbuffers.WriteInt64}
	Uint64Codec  = Codec[uint64]{Size: 8, Get: flatbuffers.GetUint64, Put: flatbuffers.WriteUint64}
	Float32Codec = Codec[float32]{Size: 4, Get: flatbuffers.GetFloat32, Put: flatbuffers.WriteFloat32}
	Float64Codec = Codec[float64]{Size: 8, Get: flatbuffers.GetFloat64, Put: flatbuffers.WriteFloat64}

	Uint128Codec = Codec[Uint128]{
		Size: 16,
		Get: func(b []byte) Uint128 {
			return Uint128{High: flatbuffers.GetUint64(b), Low: flatbuffers.GetUint64(b[8:])}
		},
		Put: func(b []byte, v Uint128) {
			flatbuffers.WriteUint64(b, v.High)
			flatbuffers.WriteUint64(b[8:], v.Low)
		},
	}
)

// EnumCodec returns the codec of an enum type. Enums always occupy four
// bytes, whatever base type the schema declared.
func EnumCodec[E ~uint32]() Codec[E] {
	return Codec[E]{
		Size: 4,
		Get:  func(b []byte) E { return E(flatbuffers.GetUint32(b)) },
		Put:  func(b []byte, v E) { flatbuffers.WriteUint32(b, uint32(v)) },
	}
}

func getUint64(b []byte) uint64    { return flatbuffers.GetUint64(b) }
func putUint64(b []byte, v uint64) { flatbuffers.WriteUint64(b, v) }
