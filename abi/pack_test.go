package abi

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/common/hexutil"
)

func mkFunc(name string, inTypes, outTypes []string) *Function {
	f := &Function{Name: name, Type: "function"}
	for _, typ := range inTypes {
		f.Inputs = append(f.Inputs, Parameter{Type: typ})
	}
	for _, typ := range outTypes {
		f.Outputs = append(f.Outputs, Parameter{Type: typ})
	}
	return f
}

// a transfer of amount 1000 to the zero address encodes to the selector
// hash plus exactly two words
func TestPackTransferFixture(t *testing.T) {
	fn := mkFunc("transfer", []string{"address", "uint256"}, nil)
	zero, err := address.HexToAddress("410000000000000000000000000000000000000000")
	require.NoError(t, err)

	data, err := PackWithSelector(fn, zero, big.NewInt(1000))
	require.NoError(t, err)
	assert.Equal(t,
		"a9059cbb"+
			"0000000000000000000000000000000000000000000000000000000000000000"+
			"00000000000000000000000000000000000000000000000000000000000003e8",
		hex.EncodeToString(data))
	assert.Len(t, data, SelectorHashLength+2*WordLength)
}

func TestPackAddressForms(t *testing.T) {
	fn := mkFunc("f", []string{"address"}, nil)
	a, err := address.ToAddress("41111722d6b3a730ebe07652ed2b3770947b3de2e2")
	require.NoError(t, err)

	want := "000000000000000000000000111722d6b3a730ebe07652ed2b3770947b3de2e2"
	for _, arg := range []interface{}{a, a.Hex(), a.String()} {
		data, err := Pack(fn, arg)
		require.NoError(t, err)
		assert.Equal(t, want, hex.EncodeToString(data))
	}
}

func TestPackDynamicFixture(t *testing.T) {
	fn := mkFunc("f", []string{"string", "uint256"}, nil)
	data, err := Pack(fn, "hello", big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t,
		// offset of the string tail
		"0000000000000000000000000000000000000000000000000000000000000040"+
			// inline uint
			"0000000000000000000000000000000000000000000000000000000000000007"+
			// length, then right padded contents
			"0000000000000000000000000000000000000000000000000000000000000005"+
			"68656c6c6f000000000000000000000000000000000000000000000000000000",
		hex.EncodeToString(data))
}

func TestPackUnpackRoundTrip(t *testing.T) {
	a, err := address.ToAddress("41deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)

	types := []string{"address", "uint256", "int64", "bool", "string", "bytes", "bytes8", "uint8"}
	fn := mkFunc("f", types, types)
	args := []interface{}{
		a,
		new(big.Int).Lsh(big.NewInt(1), 254),
		big.NewInt(-42),
		true,
		"round trip ü",
		hexutil.Bytes{0xca, 0xfe, 0xba, 0xbe},
		hexutil.Bytes{1, 2, 3, 4, 5, 6, 7, 8},
		big.NewInt(255),
	}
	data, err := Pack(fn, args...)
	require.NoError(t, err)

	values, err := Unpack(fn, data)
	require.NoError(t, err)
	require.Len(t, values, len(args))
	assert.Equal(t, a, values[0])
	assert.Equal(t, 0, args[1].(*big.Int).Cmp(values[1].(*big.Int)))
	assert.Equal(t, int64(-42), values[2].(*big.Int).Int64())
	assert.Equal(t, true, values[3])
	assert.Equal(t, "round trip ü", values[4])
	assert.Equal(t, args[5], values[5])
	assert.Equal(t, args[6], values[6])
	assert.Equal(t, int64(255), values[7].(*big.Int).Int64())
}

func TestPackArityMismatch(t *testing.T) {
	fn := mkFunc("f", []string{"uint256", "uint256"}, nil)
	_, err := Pack(fn, big.NewInt(1))
	assert.True(t, errors.Is(err, ErrArityMismatch))
	_, err = Pack(fn, big.NewInt(1), big.NewInt(2), big.NewInt(3))
	assert.True(t, errors.Is(err, ErrArityMismatch))
	_, err = Pack(fn, big.NewInt(1), big.NewInt(2))
	assert.NoError(t, err)
}

func TestPackValueValidation(t *testing.T) {
	cases := []struct {
		typ string
		arg interface{}
	}{
		{"uint256", "not a bigint"},
		{"uint256", big.NewInt(-1)},
		{"uint8", big.NewInt(256)},
		{"int8", big.NewInt(128)},
		{"int8", big.NewInt(-129)},
		{"address", "Tnonsense"},
		{"address", 42},
		{"bool", "true"},
		{"bytes8", hexutil.Bytes{1, 2, 3}},
		{"string", []byte("bytes value")},
	}
	for _, c := range cases {
		fn := mkFunc("f", []string{c.typ}, nil)
		_, err := Pack(fn, c.arg)
		assert.Error(t, err, "%v(%v)", c.typ, c.arg)
	}

	// boundary values pass
	okCases := []struct {
		typ string
		arg interface{}
	}{
		{"uint8", big.NewInt(255)},
		{"int8", big.NewInt(127)},
		{"int8", big.NewInt(-128)},
		{"bytes8", hexutil.Bytes{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, c := range okCases {
		fn := mkFunc("f", []string{c.typ}, nil)
		_, err := Pack(fn, c.arg)
		assert.NoError(t, err, "%v(%v)", c.typ, c.arg)
	}
}

func TestPackSignedBoundaries(t *testing.T) {
	fn := mkFunc("f", []string{"int256"}, []string{"int256"})
	for _, v := range []*big.Int{
		big.NewInt(0),
		big.NewInt(-1),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1)), // max int256
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255)),                // min int256
	} {
		data, err := Pack(fn, v)
		require.NoError(t, err)
		values, err := Unpack(fn, data)
		require.NoError(t, err)
		assert.Equal(t, 0, v.Cmp(values[0].(*big.Int)), "value %v", v)
	}
}

func TestUnpackShortData(t *testing.T) {
	fn := mkFunc("f", nil, []string{"uint256", "bool"})
	_, err := Unpack(fn, make([]byte, WordLength))
	assert.True(t, errors.Is(err, ErrShortData))

	// dynamic offset beyond the data
	fn = mkFunc("f", nil, []string{"string"})
	word := make([]byte, WordLength)
	word[WordLength-1] = 0xff
	_, err = Unpack(fn, word)
	assert.True(t, errors.Is(err, ErrShortData))
}

func TestUnpackBool(t *testing.T) {
	fn := mkFunc("f", nil, []string{"bool"})
	word := make([]byte, WordLength)
	values, err := Unpack(fn, word)
	require.NoError(t, err)
	assert.Equal(t, false, values[0])

	word[WordLength-1] = 1
	values, err = Unpack(fn, word)
	require.NoError(t, err)
	assert.Equal(t, true, values[0])
}
