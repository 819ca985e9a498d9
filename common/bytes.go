package common

import (
	"encoding/hex"
	"math/big"
)

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x". Odd-length strings get a leading zero nibble.
func FromHex(s string) []byte {
	if Has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return Hex2Bytes(s)
}

// Has0xPrefix checks str begins with '0x' or '0X'.
func Has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func Hex2Bytes(str string) []byte {
	h, _ := hex.DecodeString(str)
	return h
}

// Bytes2Hex returns the hexadecimal encoding of d.
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// IsHex verifies whether a string can represent a valid hex-encoded value.
func IsHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !isHexCharacter(c) {
			return false
		}
	}
	return true
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	copied := make([]byte, len(b))
	copy(copied, b)
	return copied
}

// LeftPadBytes zero-pads slice to the left up to length l.
func LeftPadBytes(slice []byte, l int) []byte {
	if l <= len(slice) {
		return slice
	}
	padded := make([]byte, l)
	copy(padded[l-len(slice):], slice)
	return padded
}

// RightPadBytes zero-pads slice to the right up to length l.
func RightPadBytes(slice []byte, l int) []byte {
	if l <= len(slice) {
		return slice
	}
	padded := make([]byte, l)
	copy(padded, slice)
	return padded
}

// GetData returns a slice from data based on start and size, padded with
// zeros up to size. This ensures the slice is both of valid length and
// safe to operate on out of range positions.
func GetData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return RightPadBytes(data[start:end], int(size))
}

// GetBigInt interprets size bytes of data at position start as a big
// endian unsigned integer.
func GetBigInt(data []byte, start, size uint64) *big.Int {
	return new(big.Int).SetBytes(GetData(data, start, size))
}

// GetUint64 interprets size bytes of data at position start as a big
// endian unsigned integer, reporting overflow of the uint64 range.
func GetUint64(data []byte, start, size uint64) (uint64, bool) {
	bi := GetBigInt(data, start, size)
	return bi.Uint64(), !bi.IsUint64()
}
