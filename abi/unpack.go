package abi

import (
	"fmt"
	"math/big"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/common/hexutil"
)

// Unpack decodes the binary output of a call keyed by the function's
// output parameters. It is the inverse of Pack.
func Unpack(f *Function, data []byte) ([]interface{}, error) {
	if uint64(len(data)) < uint64(len(f.Outputs))*WordLength {
		return nil, fmt.Errorf("%w: function %q returns %v words, data has %v bytes",
			ErrShortData, f.Name, len(f.Outputs), len(data))
	}
	values := make([]interface{}, len(f.Outputs))
	for i, out := range f.Outputs {
		k, err := parseType(out.Type)
		if err != nil {
			return nil, err
		}
		v, err := unpackValue(k, out, data, uint64(i)*WordLength)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func unpackValue(k kind, p Parameter, data []byte, pos uint64) (interface{}, error) {
	switch k.base {
	case "address":
		word := common.GetData(data, pos, WordLength)
		raw := append([]byte{address.Prefix}, word[WordLength-20:]...)
		return address.BytesToAddress(raw)
	case "bool":
		bi := common.GetBigInt(data, pos, WordLength)
		return bi.Sign() != 0, nil
	case "uint":
		return common.GetBigInt(data, pos, WordLength), nil
	case "int":
		bi := common.GetBigInt(data, pos, WordLength)
		if bi.Bit(255) == 1 {
			bi = new(big.Int).Sub(bi, twoPow256)
		}
		return bi, nil
	case "string":
		b, err := unpackDynamic(data, pos)
		if err != nil {
			return nil, unpackErr(p, err)
		}
		return string(b), nil
	case "bytes":
		if k.size > 0 {
			word := common.GetData(data, pos, WordLength)
			return hexutil.Bytes(word[:k.size]), nil
		}
		b, err := unpackDynamic(data, pos)
		if err != nil {
			return nil, unpackErr(p, err)
		}
		return hexutil.Bytes(b), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, p.Type)
}

// unpackDynamic follows the offset word at pos to the length prefixed
// tail data.
func unpackDynamic(data []byte, pos uint64) ([]byte, error) {
	dataLen := uint64(len(data))
	offset, overflow := common.GetUint64(data, pos, WordLength)
	if overflow || offset > dataLen || dataLen-offset < WordLength {
		return nil, ErrShortData
	}
	length, overflow := common.GetUint64(data, offset, WordLength)
	if overflow || length > dataLen-offset-WordLength {
		return nil, ErrShortData
	}
	return common.CopyBytes(data[offset+WordLength : offset+WordLength+length]), nil
}

func unpackErr(p Parameter, err error) error {
	name := p.Name
	if name == "" {
		name = p.Type
	}
	return fmt.Errorf("%w: output %q", err, name)
}
