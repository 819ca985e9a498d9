// Package address implements the network's 21 byte account address and the
// conversions between its raw, hex and Base58 checksummed representations.
package address

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/tourze/tron-api/crypto"
)

const (
	// Prefix is the fixed network prefix byte of every address.
	Prefix byte = 0x41

	// Length is the raw address length: prefix + 20 byte account id.
	Length = 21

	// ChecksumLength is the length of the integrity checksum appended to
	// the raw bytes before Base58 encoding.
	ChecksumLength = 4
)

// ErrInvalidAddress is returned for malformed, wrong prefix or
// checksum mismatched address inputs.
var ErrInvalidAddress = errors.New("invalid address")

// Address is a raw 21 byte account address.
type Address [Length]byte

// Bytes returns the raw address bytes.
func (a Address) Bytes() []byte {
	return a[:]
}

// Hex returns the unprefixed lowercase hex form, e.g. "41....".
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// String returns the Base58 checksummed form, e.g. "T....".
func (a Address) String() string {
	return base58.Encode(append(a.Bytes(), checksum(a.Bytes())...))
}

// IsZero reports whether the account id part is all zero.
func (a Address) IsZero() bool {
	for _, b := range a[1:] {
		if b != 0 {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler accepting either the
// hex or the Base58 checksummed form.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// checksum is the first 4 bytes of the double digest of payload.
func checksum(payload []byte) []byte {
	return crypto.Keccak256(crypto.Keccak256(payload))[:ChecksumLength]
}

// BytesToAddress converts raw bytes into an address, validating length
// and the network prefix.
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != Length {
		return a, fmt.Errorf("%w: wrong length %v, want %v", ErrInvalidAddress, len(b), Length)
	}
	if b[0] != Prefix {
		return a, fmt.Errorf("%w: wrong prefix byte 0x%02x, want 0x%02x", ErrInvalidAddress, b[0], Prefix)
	}
	copy(a[:], b)
	return a, nil
}

// HexToAddress parses the hex form (optionally 0x prefixed).
func HexToAddress(s string) (Address, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: not a hex string", ErrInvalidAddress)
	}
	return BytesToAddress(b)
}

// Base58ToAddress decodes the checksummed form, verifying the trailing
// checksum and the network prefix.
func Base58ToAddress(s string) (Address, error) {
	decoded := base58.Decode(s)
	if len(decoded) != Length+ChecksumLength {
		return Address{}, fmt.Errorf("%w: wrong decoded length %v", ErrInvalidAddress, len(decoded))
	}
	payload := decoded[:Length]
	if !bytes.Equal(decoded[Length:], checksum(payload)) {
		return Address{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}
	return BytesToAddress(payload)
}

// ToAddress converts either representation into the raw address. An input
// already in the raw hex shape is validated and passed through unchanged,
// anything else is treated as the Base58 checksummed form.
func ToAddress(s string) (Address, error) {
	if isHexShape(s) {
		return HexToAddress(s)
	}
	return Base58ToAddress(s)
}

// IsValidAddress is the non-throwing probe around ToAddress.
func IsValidAddress(s string) bool {
	_, err := ToAddress(s)
	return err == nil
}

// EqualAddress reports whether two inputs, in any representation,
// denote the same account.
func EqualAddress(addr1, addr2 string) bool {
	a1, err1 := ToAddress(addr1)
	a2, err2 := ToAddress(addr2)
	return err1 == nil && err2 == nil && a1 == a2
}

// PubkeyToAddress derives the address of a secp256k1 public key: the
// last 20 bytes of the digest of the uncompressed key material, behind
// the network prefix.
func PubkeyToAddress(pub ecdsa.PublicKey) Address {
	serialized := crypto.FromECDSAPub(&pub)
	h := crypto.Keccak256(serialized[1:])
	var a Address
	a[0] = Prefix
	copy(a[1:], h[12:])
	return a
}

func isHexShape(s string) bool {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != Length*2 {
		return false
	}
	for _, c := range []byte(s) {
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
