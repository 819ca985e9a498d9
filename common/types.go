package common

import (
	"encoding/hex"
	"fmt"
)

// HashLength is the expected length of a digest value in bytes.
const HashLength = 32

// Hash represents a 32 byte digest of arbitrary data.
type Hash [HashLength]byte

// BytesToHash sets b to hash. If b is larger than HashLength, b will
// be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HexToHash sets byte representation of s to hash.
func HexToHash(s string) Hash {
	return BytesToHash(FromHex(s))
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Hex converts a hash to an unprefixed lowercase hex string.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(input []byte) error {
	b := FromHex(string(input))
	if len(b) != HashLength {
		return fmt.Errorf("wrong hash text length %v", len(input))
	}
	copy(h[:], b)
	return nil
}
