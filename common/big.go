package common

import (
	"errors"
	"math"
	"math/big"
)

// Common big integers often used
var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)

	BigMaxUint64 = new(big.Int).SetUint64(math.MaxUint64)
	BigMaxInt64  = big.NewInt(math.MaxInt64)
)

// GetBigIntFromStr parses the string into a big integer.
// Decimal by default, hexadecimal with a "0x" prefix.
func GetBigIntFromStr(str string) (*big.Int, error) {
	base := 10
	if Has0xPrefix(str) {
		str = str[2:]
		base = 16
	}
	bi, ok := new(big.Int).SetString(str, base)
	if !ok {
		return nil, errors.New("invalid integer: " + str)
	}
	return bi, nil
}

// BigToInt64 converts bi to int64, reporting whether the value fits.
// A nil input converts to zero.
func BigToInt64(bi *big.Int) (int64, bool) {
	if bi == nil {
		return 0, true
	}
	if !bi.IsInt64() {
		return 0, false
	}
	return bi.Int64(), true
}

// BigFromInt64 wraps v into a big integer.
func BigFromInt64(v int64) *big.Int {
	return big.NewInt(v)
}
