package object

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ID is an opaque, immutable commit identifier. The zero value is the empty
// ID. Equality and the canonical lower-hex encoding are pure functions of the
// underlying bytes, so IDs are safe to share and to use as map keys.
type ID struct {
	raw string
}

// NewID copies the supplied bytes into an ID.
func NewID(raw []byte) ID {
	return ID{raw: string(raw)}
}

// IDFromHex decodes a canonical hex encoding back into an ID. The input must
// have an even number of hex digits; case is ignored.
func IDFromHex(encoded string) (ID, error) {
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(encoded)))
	if err != nil {
		return ID{}, fmt.Errorf("object: decode id %q: %w", encoded, err)
	}
	return ID{raw: string(raw)}, nil
}

// MustIDFromHex is IDFromHex for test fixtures and static tables; it panics on
// malformed input.
func MustIDFromHex(encoded string) ID {
	id, err := IDFromHex(encoded)
	if err != nil {
		panic(err)
	}
	return id
}

// Hex returns the canonical lower-hex encoding of the ID.
func (id ID) Hex() string {
	return hex.EncodeToString([]byte(id.raw))
}

// Bytes returns a copy of the underlying bytes.
func (id ID) Bytes() []byte {
	return []byte(id.raw)
}

// Equal reports whether two IDs carry identical bytes.
func (id ID) Equal(other ID) bool {
	return id.raw == other.raw
}

// IsZero reports whether the ID is empty.
func (id ID) IsZero() bool {
	return id.raw == ""
}

// String implements fmt.Stringer using the canonical encoding.
func (id ID) String() string {
	return id.Hex()
}
