package zerobuf

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Uint128 is an unsigned 128-bit integer. Type identifiers are Uint128
// values.
type Uint128 struct {
	High uint64
	Low  uint64
}

// Uint128FromUUID converts a UUID, most significant byte first.
func Uint128FromUUID(id uuid.UUID) Uint128 {
	return Uint128{
		High: binary.BigEndian.Uint64(id[:8]),
		Low:  binary.BigEndian.Uint64(id[8:]),
	}
}

// UUID returns u as a UUID, most significant byte first.
func (u Uint128) UUID() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], u.High)
	binary.BigEndian.PutUint64(id[8:], u.Low)
	return id
}

// IsZero reports whether u is zero.
func (u Uint128) IsZero() bool { return u.High == 0 && u.Low == 0 }

// String returns u as 32 hex digits.
func (u Uint128) String() string { return fmt.Sprintf("%016x%016x", u.High, u.Low) }

type uint128JSON struct {
	High uint64 `json:"high"`
	Low  uint64 `json:"low"`
}

// MarshalJSON encodes u as {"high": ..., "low": ...}.
func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint128JSON{High: u.High, Low: u.Low})
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *Uint128) UnmarshalJSON(data []byte) error {
	var v uint128JSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: uint128: %v", ErrInvalidJSON, err)
	}
	u.High, u.Low = v.High, v.Low
	return nil
}
