// Package abi resolves functions against a contract interface description
// and packs/unpacks call parameters in the 32 byte word calldata format.
package abi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tourze/tron-api/crypto"
)

// codec errors
var (
	ErrFunctionNotFound = errors.New("function not found in contract interface")
	ErrArityMismatch    = errors.New("argument count mismatch")
	ErrUnsupportedType  = errors.New("unsupported parameter type")
	ErrInvalidValue     = errors.New("invalid parameter value")
	ErrShortData        = errors.New("insufficient data to decode")
)

// SelectorHashLength is the length of the function selector hash prefix
// of calldata.
const SelectorHashLength = 4

// Parameter is one typed input or output of a contract function. The
// Indexed flag only applies to event parameters.
type Parameter struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// Function is an immutable description of a contract function as found in
// a contract interface description.
type Function struct {
	Name            string      `json:"name"`
	Type            string      `json:"type,omitempty"`
	Inputs          []Parameter `json:"inputs"`
	Outputs         []Parameter `json:"outputs,omitempty"`
	StateMutability string      `json:"stateMutability,omitempty"`
	Constant        bool        `json:"constant,omitempty"`
	Payable         bool        `json:"payable,omitempty"`
}

// Parse decodes a contract interface description (a JSON array of entries).
func Parse(data []byte) ([]Function, error) {
	var fns []Function
	if err := json.Unmarshal(data, &fns); err != nil {
		return nil, fmt.Errorf("parse contract interface: %v", err)
	}
	return fns, nil
}

// FindFunction resolves name against the interface entries. The first
// entry with a matching name wins, overload resolution by signature is
// not supported.
func FindFunction(fns []Function, name string) (*Function, error) {
	for i := range fns {
		fn := &fns[i]
		if fn.Name != name {
			continue
		}
		if fn.Type != "" && fn.Type != "function" {
			continue
		}
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
}

// Selector returns the function signature string, e.g.
// "transfer(address,uint256)".
func (f *Function) Selector() string {
	types := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		types[i] = in.Type
	}
	return f.Name + "(" + strings.Join(types, ",") + ")"
}

// SelectorHash returns the 4 byte digest prefix identifying the function
// in calldata.
func (f *Function) SelectorHash() []byte {
	return crypto.Keccak256([]byte(f.Selector()))[:SelectorHashLength]
}

// IsConstant reports whether calling the function cannot change state.
func (f *Function) IsConstant() bool {
	switch f.StateMutability {
	case "pure", "view":
		return true
	}
	return f.Constant
}

// IsPayable reports whether the function accepts value transfers.
func (f *Function) IsPayable() bool {
	return f.StateMutability == "payable" || f.Payable
}

// kind is the decomposed form of a type tag.
type kind struct {
	base string // address, bool, uint, int, string, bytes
	bits int    // uint/int width
	size int    // fixed bytes size, 0 for dynamic bytes
}

// dynamic reports whether values of this type live in the tail section.
func (k kind) dynamic() bool {
	return k.base == "string" || (k.base == "bytes" && k.size == 0)
}

// parseType decomposes a type tag like "uint256" or "bytes8". Array and
// tuple types are not supported by this codec.
func parseType(typ string) (kind, error) {
	switch typ {
	case "address":
		return kind{base: "address"}, nil
	case "bool":
		return kind{base: "bool"}, nil
	case "string":
		return kind{base: "string"}, nil
	case "bytes":
		return kind{base: "bytes"}, nil
	case "uint", "int":
		return kind{base: typ, bits: 256}, nil
	}
	switch {
	case strings.HasPrefix(typ, "uint"), strings.HasPrefix(typ, "int"):
		base := "uint"
		rest := typ[4:]
		if typ[0] == 'i' {
			base = "int"
			rest = typ[3:]
		}
		bits, err := strconv.Atoi(rest)
		if err != nil || bits <= 0 || bits > 256 || bits%8 != 0 {
			return kind{}, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
		}
		return kind{base: base, bits: bits}, nil
	case strings.HasPrefix(typ, "bytes"):
		size, err := strconv.Atoi(typ[5:])
		if err != nil || size <= 0 || size > 32 {
			return kind{}, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
		}
		return kind{base: "bytes", size: size}, nil
	}
	return kind{}, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
}
