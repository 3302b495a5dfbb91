// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package artifacts

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
)

// EncodeConstructorArgs ABI-encodes args against the contract constructor
// and returns the hex payload without 0x prefix, as Etherscan wants it.
func (c Contract) EncodeConstructorArgs(args []json.RawMessage) (string, error) {
	inputs := c.ABI.Constructor.Inputs
	if len(args) != len(inputs) {
		return "", fmt.Errorf("%s constructor takes %d arguments, got %d",
			c.FullyQualifiedName(), len(inputs), len(args))
	}
	if len(inputs) == 0 {
		return "", nil
	}
	values := make([]interface{}, len(inputs))
	for i, input := range inputs {
		v, err := decodeArg(input.Type, args[i])
		if err != nil {
			return "", fmt.Errorf("constructor argument %d (%s %s): %w", i, input.Type.String(), input.Name, err)
		}
		values[i] = v.Interface()
	}
	packed, err := inputs.Pack(values...)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(packed), nil
}

func decodeArg(t abi.Type, raw json.RawMessage) (reflect.Value, error) {
	switch t.T {
	case abi.BoolTy:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case abi.StringTy:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(s), nil
	case abi.AddressTy:
		s, err := rawString(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		if !common.IsHexAddress(s) {
			return reflect.Value{}, fmt.Errorf("invalid address %q", s)
		}
		return reflect.ValueOf(common.HexToAddress(s)), nil
	case abi.IntTy, abi.UintTy:
		return decodeInteger(t, raw)
	case abi.BytesTy:
		b, err := rawBytes(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case abi.FixedBytesTy, abi.HashTy:
		b, err := rawBytes(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t.GetType()).Elem()
		if len(b) > out.Len() {
			return reflect.Value{}, fmt.Errorf("%d bytes do not fit in %s", len(b), t.String())
		}
		reflect.Copy(out, reflect.ValueOf(b))
		return out, nil
	case abi.SliceTy, abi.ArrayTy:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return reflect.Value{}, err
		}
		var out reflect.Value
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(t.GetType(), len(elems), len(elems))
		} else {
			if len(elems) != t.Size {
				return reflect.Value{}, fmt.Errorf("expected %d elements, got %d", t.Size, len(elems))
			}
			out = reflect.New(t.GetType()).Elem()
		}
		for i, e := range elems {
			v, err := decodeArg(*t.Elem, e)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(v)
		}
		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported constructor argument type %s", t.String())
	}
}

func decodeInteger(t abi.Type, raw json.RawMessage) (reflect.Value, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var err error
		if s, err = rawString(raw); err != nil {
			return reflect.Value{}, err
		}
	}
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return reflect.Value{}, fmt.Errorf("invalid integer %s", string(raw))
	}
	if t.T == abi.UintTy && n.Sign() < 0 {
		return reflect.Value{}, fmt.Errorf("negative value %s for %s", n, t.String())
	}
	limit := t.Size
	if t.T == abi.IntTy {
		limit--
	}
	if n.BitLen() > limit {
		return reflect.Value{}, fmt.Errorf("value %s overflows %s", n, t.String())
	}

	goType := t.GetType()
	if goType == reflect.TypeOf(&big.Int{}) {
		return reflect.ValueOf(n), nil
	}
	out := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		out.SetUint(n.Uint64())
	} else {
		out.SetInt(n.Int64())
	}
	return out, nil
}

func rawString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected a string, got %s", string(raw))
	}
	return s, nil
}

func rawBytes(raw json.RawMessage) ([]byte, error) {
	s, err := rawString(raw)
	if err != nil {
		return nil, err
	}
	return hexutil.Decode(s)
}
