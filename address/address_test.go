package address

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourze/tron-api/crypto"
)

var addrFixtures = []struct {
	hex    string
	base58 string
}{
	{"410000000000000000000000000000000000000000", "T9yD14Nj9j7xAB4dbGeiX9h8unkKKN8vxN"},
	{"41111722d6b3a730ebe07652ed2b3770947b3de2e2", "TBXaCqtaBpB5JNjoFhExpWu11kzRcm6ZRZ"},
	{"41deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", "TWGd9idELBV3is6rrtC5PQUhudiJYhTXZm"},
}

func TestAddressEncode(t *testing.T) {
	for _, f := range addrFixtures {
		a, err := HexToAddress(f.hex)
		require.NoError(t, err)
		assert.Equal(t, f.base58, a.String())
		assert.Equal(t, f.hex, a.Hex())
		assert.Len(t, a.String(), 34)
		assert.True(t, strings.HasPrefix(a.String(), "T"))
	}
}

func TestAddressDecode(t *testing.T) {
	for _, f := range addrFixtures {
		a, err := Base58ToAddress(f.base58)
		require.NoError(t, err)
		assert.Equal(t, f.hex, a.Hex())
		assert.EqualValues(t, Prefix, a.Bytes()[0])
		assert.Len(t, a.Bytes(), Length)
		// re-encodes to the identical string
		assert.Equal(t, f.base58, a.String())
	}
}

func TestToAddressPassThrough(t *testing.T) {
	for _, f := range addrFixtures {
		// raw hex shape is validated and passed through, never re-encoded
		a, err := ToAddress(f.hex)
		require.NoError(t, err)
		assert.Equal(t, f.hex, a.Hex())

		a, err = ToAddress("0x" + f.hex)
		require.NoError(t, err)
		assert.Equal(t, f.hex, a.Hex())

		a, err = ToAddress(f.base58)
		require.NoError(t, err)
		assert.Equal(t, f.hex, a.Hex())
	}
}

func TestAddressRoundTrip(t *testing.T) {
	seed := []byte("roundtrip")
	for i := 0; i < 50; i++ {
		seed = crypto.Keccak256(seed)
		raw := append([]byte{Prefix}, seed[:20]...)
		a, err := BytesToAddress(raw)
		require.NoError(t, err)
		back, err := ToAddress(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
}

func TestInvalidAddresses(t *testing.T) {
	bad := []string{
		"",
		"garbage",
		"4111",                                         // short hex
		"420000000000000000000000000000000000000000",   // wrong prefix byte
		"T9yD14Nj9j7xAB4dbGeiX9h8unkKKN8vxM",           // corrupted checksum
		"TBXaCqtaBpB5JNjoFhExpWu11kzRcm6ZR",            // truncated
		"410000000000000000000000000000000000000000ff", // overlong hex
	}
	for _, s := range bad {
		_, err := ToAddress(s)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "input %q", s)
		assert.False(t, IsValidAddress(s), "input %q", s)
	}
	for _, f := range addrFixtures {
		assert.True(t, IsValidAddress(f.hex))
		assert.True(t, IsValidAddress(f.base58))
	}
}

func TestEqualAddress(t *testing.T) {
	f := addrFixtures[1]
	assert.True(t, EqualAddress(f.hex, f.base58))
	assert.True(t, EqualAddress("0x"+f.hex, f.base58))
	assert.False(t, EqualAddress(f.base58, addrFixtures[2].base58))
	assert.False(t, EqualAddress("garbage", f.base58))
}

func TestPubkeyToAddress(t *testing.T) {
	// private key 1 has the curve generator as public key
	key, err := crypto.HexToECDSA("0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	a := PubkeyToAddress(key.PublicKey)
	assert.Equal(t, "417e5f4552091a69125d5dfcb7b8c2659029395bdf", a.Hex())
	assert.Equal(t, "TMVQGm1qAQYVdetCeGRRkTWYYrLXrXDZW2", a.String())
}

func TestAddressText(t *testing.T) {
	f := addrFixtures[1]
	a, err := ToAddress(f.base58)
	require.NoError(t, err)

	text, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, f.hex, string(text))

	var back Address
	require.NoError(t, back.UnmarshalText([]byte(f.base58)))
	assert.Equal(t, a, back)
	require.NoError(t, back.UnmarshalText([]byte(f.hex)))
	assert.Equal(t, a, back)
	assert.Error(t, back.UnmarshalText([]byte("nonsense")))
}
