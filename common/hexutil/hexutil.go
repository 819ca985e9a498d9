// Package hexutil implements hex encoding with JSON/text support for the
// byte fields of transaction payloads. The network's JSON forms carry
// unprefixed lowercase hex, an optional "0x" prefix is accepted on input.
package hexutil

import (
	"encoding/hex"
	"encoding/json"
	"errors"
)

// decode errors
var (
	ErrSyntax    = errors.New("invalid hex string")
	ErrOddLength = errors.New("hex string of odd length")
)

// Bytes marshals/unmarshals as a JSON string in unprefixed lowercase hex.
type Bytes []byte

// Encode encodes b as an unprefixed lowercase hex string.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// Decode decodes a hex string, tolerating an optional "0x" prefix.
func Decode(input string) ([]byte, error) {
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		input = input[2:]
	}
	if len(input)%2 != 0 {
		return nil, ErrOddLength
	}
	b, err := hex.DecodeString(input)
	if err != nil {
		return nil, ErrSyntax
	}
	return b, nil
}

// String returns the hex encoding of b.
func (b Bytes) String() string {
	return Encode(b)
}

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(Encode(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(input []byte) error {
	dec, err := Decode(string(input))
	if err != nil {
		return err
	}
	*b = dec
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	return b.UnmarshalText([]byte(s))
}
