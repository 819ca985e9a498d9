package abi

import (
	"fmt"
	"math/big"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/common/hexutil"
)

// WordLength is the size of one calldata word.
const WordLength = 32

// Pack encodes args per the function's input parameters: static types
// inline, dynamic types via offset into an appended tail.
func Pack(f *Function, args ...interface{}) ([]byte, error) {
	if len(args) != len(f.Inputs) {
		return nil, fmt.Errorf("%w: function %q takes %v arguments, got %v",
			ErrArityMismatch, f.Name, len(f.Inputs), len(args))
	}
	bs := make([]byte, len(args)*WordLength)
	for i, arg := range args {
		k, err := parseType(f.Inputs[i].Type)
		if err != nil {
			return nil, err
		}
		if k.dynamic() {
			tail, err := packDynamic(k, f.Inputs[i], arg)
			if err != nil {
				return nil, err
			}
			copy(bs[i*WordLength:], packUint(big.NewInt(int64(len(bs)))))
			bs = append(bs, tail...)
			continue
		}
		word, err := packStatic(k, f.Inputs[i], arg)
		if err != nil {
			return nil, err
		}
		copy(bs[i*WordLength:], word)
	}
	return bs, nil
}

// PackWithSelector prepends the 4 byte selector hash to the packed
// arguments, producing complete calldata for a contract invocation.
func PackWithSelector(f *Function, args ...interface{}) ([]byte, error) {
	packed, err := Pack(f, args...)
	if err != nil {
		return nil, err
	}
	data := make([]byte, SelectorHashLength+len(packed))
	copy(data[:SelectorHashLength], f.SelectorHash())
	copy(data[SelectorHashLength:], packed)
	return data, nil
}

func packStatic(k kind, p Parameter, arg interface{}) ([]byte, error) {
	switch k.base {
	case "address":
		a, err := toAddressValue(arg)
		if err != nil {
			return nil, wrapValueErr(p, err)
		}
		return common.LeftPadBytes(a.Bytes()[1:], WordLength), nil
	case "bool":
		v, ok := arg.(bool)
		if !ok {
			return nil, wrapValueErr(p, fmt.Errorf("want bool, got %T", arg))
		}
		if v {
			return packUint(common.Big1), nil
		}
		return packUint(common.Big0), nil
	case "uint":
		bi, err := toBigValue(arg)
		if err != nil {
			return nil, wrapValueErr(p, err)
		}
		if bi.Sign() < 0 || bi.BitLen() > k.bits {
			return nil, wrapValueErr(p, fmt.Errorf("value %v out of range of %v", bi, p.Type))
		}
		return packUint(bi), nil
	case "int":
		bi, err := toBigValue(arg)
		if err != nil {
			return nil, wrapValueErr(p, err)
		}
		if !fitsSigned(bi, k.bits) {
			return nil, wrapValueErr(p, fmt.Errorf("value %v out of range of %v", bi, p.Type))
		}
		if bi.Sign() < 0 {
			// two's complement over the full word
			bi = new(big.Int).Add(twoPow256, bi)
		}
		return packUint(bi), nil
	case "bytes": // fixed size only here, dynamic goes through packDynamic
		b, err := toBytesValue(arg)
		if err != nil {
			return nil, wrapValueErr(p, err)
		}
		if len(b) != k.size {
			return nil, wrapValueErr(p, fmt.Errorf("want %v bytes, got %v", k.size, len(b)))
		}
		return common.RightPadBytes(b, WordLength), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, p.Type)
}

func packDynamic(k kind, p Parameter, arg interface{}) ([]byte, error) {
	var data []byte
	switch k.base {
	case "string":
		s, ok := arg.(string)
		if !ok {
			return nil, wrapValueErr(p, fmt.Errorf("want string, got %T", arg))
		}
		data = []byte(s)
	case "bytes":
		b, err := toBytesValue(arg)
		if err != nil {
			return nil, wrapValueErr(p, err)
		}
		data = b
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, p.Type)
	}
	padded := (len(data) + WordLength - 1) / WordLength * WordLength
	bs := make([]byte, WordLength+padded)
	copy(bs[:WordLength], packUint(big.NewInt(int64(len(data)))))
	copy(bs[WordLength:], data)
	return bs, nil
}

var twoPow256 = new(big.Int).Lsh(common.Big1, 256)

func packUint(bi *big.Int) []byte {
	return common.LeftPadBytes(bi.Bytes(), WordLength)
}

func fitsSigned(bi *big.Int, bits int) bool {
	limit := new(big.Int).Lsh(common.Big1, uint(bits-1))
	if bi.Sign() < 0 {
		return bi.CmpAbs(limit) <= 0
	}
	return bi.Cmp(limit) < 0
}

// toAddressValue normalizes an address argument once at the boundary.
func toAddressValue(arg interface{}) (address.Address, error) {
	switch v := arg.(type) {
	case address.Address:
		return v, nil
	case string:
		return address.ToAddress(v)
	}
	return address.Address{}, fmt.Errorf("want address, got %T", arg)
}

// toBigValue accepts the canonical arbitrary precision representation.
func toBigValue(arg interface{}) (*big.Int, error) {
	if bi, ok := arg.(*big.Int); ok && bi != nil {
		return bi, nil
	}
	return nil, fmt.Errorf("want *big.Int, got %T", arg)
}

func toBytesValue(arg interface{}) ([]byte, error) {
	switch v := arg.(type) {
	case []byte:
		return v, nil
	case hexutil.Bytes:
		return v, nil
	}
	return nil, fmt.Errorf("want bytes, got %T", arg)
}

func wrapValueErr(p Parameter, err error) error {
	name := p.Name
	if name == "" {
		name = p.Type
	}
	return fmt.Errorf("%w: parameter %q: %v", ErrInvalidValue, name, err)
}
