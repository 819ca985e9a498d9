package abi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20JSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"_owner","type":"address"}],
	 "outputs":[{"name":"balance","type":"uint256"}]},
	{"type":"function","name":"symbol","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"event","name":"Transfer","inputs":[
	 {"name":"from","type":"address","indexed":true},
	 {"name":"to","type":"address","indexed":true},
	 {"name":"value","type":"uint256"}]}
]`

func TestParseAndResolve(t *testing.T) {
	fns, err := Parse([]byte(erc20JSON))
	require.NoError(t, err)
	require.Len(t, fns, 4)

	fn, err := FindFunction(fns, "transfer")
	require.NoError(t, err)
	assert.Equal(t, "transfer", fn.Name)
	assert.Len(t, fn.Inputs, 2)
	assert.False(t, fn.IsConstant())

	fn, err = FindFunction(fns, "balanceOf")
	require.NoError(t, err)
	assert.True(t, fn.IsConstant())

	// the Transfer event entry must not resolve as a function
	_, err = FindFunction(fns, "Transfer")
	assert.True(t, errors.Is(err, ErrFunctionNotFound))

	_, err = FindFunction(fns, "mint")
	assert.True(t, errors.Is(err, ErrFunctionNotFound))

	_, err = Parse([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestSelector(t *testing.T) {
	fns, err := Parse([]byte(erc20JSON))
	require.NoError(t, err)

	fn, err := FindFunction(fns, "transfer")
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", fn.Selector())
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, fn.SelectorHash())

	fn, err = FindFunction(fns, "balanceOf")
	require.NoError(t, err)
	assert.Equal(t, "balanceOf(address)", fn.Selector())
	assert.Equal(t, []byte{0x70, 0xa0, 0x82, 0x31}, fn.SelectorHash())

	fn, err = FindFunction(fns, "symbol")
	require.NoError(t, err)
	assert.Equal(t, "symbol()", fn.Selector())
}

func TestParseType(t *testing.T) {
	valid := []string{"address", "bool", "string", "bytes", "uint", "int",
		"uint8", "uint256", "int64", "bytes1", "bytes32"}
	for _, typ := range valid {
		_, err := parseType(typ)
		assert.NoError(t, err, typ)
	}
	invalid := []string{"", "uint7", "uint264", "uint0", "bytes0", "bytes33",
		"address[]", "uint256[2]", "tuple", "fixed128x18", "frog"}
	for _, typ := range invalid {
		_, err := parseType(typ)
		assert.True(t, errors.Is(err, ErrUnsupportedType), typ)
	}
}
