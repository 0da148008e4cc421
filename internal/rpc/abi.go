package rpc

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

// ErrTupleUnsupported is returned for signatures with nested tuple types.
var ErrTupleUnsupported = errors.New("tuple types are not supported")

// FunctionSelector computes the 4-byte function selector from a signature
// e.g., "balanceOf(address)" -> 0x70a08231
func FunctionSelector(signature string) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(signature))
	return hasher.Sum(nil)[:4]
}

// Signature is a parsed call signature in the "name(inputs)(outputs)" form
// used by command-line EVM tools, e.g. "balanceOf(address)(uint256)".
type Signature struct {
	Name    string
	Inputs  abi.Arguments
	Outputs abi.Arguments

	raw string
}

// ParseSignature parses sig. The outputs group is optional.
func ParseSignature(sig string) (*Signature, error) {
	sig = strings.TrimSpace(sig)
	open := strings.IndexByte(sig, '(')
	if open <= 0 {
		return nil, fmt.Errorf("invalid signature %q: missing function name or parameter list", sig)
	}

	inputs, rest, err := splitGroup(sig[open:])
	if err != nil {
		return nil, fmt.Errorf("invalid signature %q: %w", sig, err)
	}

	var outputs []string
	if rest != "" {
		outputs, rest, err = splitGroup(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid signature %q: %w", sig, err)
		}
		if rest != "" {
			return nil, fmt.Errorf("invalid signature %q: trailing %q", sig, rest)
		}
	}

	s := &Signature{Name: sig[:open], raw: sig}
	if s.Inputs, err = newArguments(inputs); err != nil {
		return nil, fmt.Errorf("invalid signature %q: %w", sig, err)
	}
	if s.Outputs, err = newArguments(outputs); err != nil {
		return nil, fmt.Errorf("invalid signature %q: %w", sig, err)
	}
	return s, nil
}

// splitGroup consumes one "(a,b,c)" group from the front of s.
func splitGroup(s string) ([]string, string, error) {
	if !strings.HasPrefix(s, "(") {
		return nil, "", fmt.Errorf("expected '(' at %q", s)
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return nil, "", errors.New("unbalanced parentheses")
	}
	body := s[1:end]
	if strings.ContainsRune(body, '(') {
		return nil, "", ErrTupleUnsupported
	}
	if strings.TrimSpace(body) == "" {
		return nil, s[end+1:], nil
	}
	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, s[end+1:], nil
}

func newArguments(types []string) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(types))
	for _, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", t, err)
		}
		args = append(args, abi.Argument{Type: typ})
	}
	return args, nil
}

// String returns the signature as it was parsed.
func (s *Signature) String() string { return s.raw }

// Canonical returns "name(type1,type2)", the text hashed into the selector.
func (s *Signature) Canonical() string {
	types := make([]string, len(s.Inputs))
	for i, in := range s.Inputs {
		types[i] = in.Type.String()
	}
	return s.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 4-byte function selector.
func (s *Signature) Selector() []byte {
	return FunctionSelector(s.Canonical())
}

// EncodeCall builds calldata from textual arguments, one per input.
func (s *Signature) EncodeCall(args ...string) ([]byte, error) {
	if len(args) != len(s.Inputs) {
		return nil, fmt.Errorf("%s: got %d arguments, want %d", s.Name, len(args), len(s.Inputs))
	}

	values := make([]interface{}, len(args))
	for i, arg := range args {
		v, err := convertArgument(s.Inputs[i].Type, arg)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", s.Name, i, err)
		}
		values[i] = v
	}

	packed, err := s.Inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("%s: pack arguments: %w", s.Name, err)
	}
	return append(s.Selector(), packed...), nil
}

// EncodeCallHex is EncodeCall with 0x-prefixed hex output, ready for eth_call.
func (s *Signature) EncodeCallHex(args ...string) (string, error) {
	data, err := s.EncodeCall(args...)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// DecodeOutputs unpacks return data into one string per declared output,
// in declaration order.
func (s *Signature) DecodeOutputs(data []byte) ([]string, error) {
	if len(s.Outputs) == 0 {
		return nil, nil
	}
	values, err := s.Outputs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%s: unpack return data: %w", s.Name, err)
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatValue(v)
	}
	return out, nil
}

func convertArgument(t abi.Type, arg string) (interface{}, error) {
	arg = strings.TrimSpace(arg)
	switch t.T {
	case abi.AddressTy:
		if err := ValidateAddress(arg); err != nil {
			return nil, err
		}
		return common.HexToAddress(arg), nil
	case abi.StringTy:
		return arg, nil
	case abi.BoolTy:
		return strconv.ParseBool(arg)
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(arg, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", arg)
		}
		return sizedInteger(t, n)
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

// sizedInteger returns the Go type go-ethereum expects for t.
func sizedInteger(t abi.Type, n *big.Int) (interface{}, error) {
	if t.Size > 64 {
		return n, nil
	}
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s overflows %s", n, t.String())
		}
		v := n.Uint64()
		switch t.Size {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		default:
			return v, nil
		}
	}
	if !n.IsInt64() || n.BitLen() >= t.Size {
		return nil, fmt.Errorf("%s overflows %s", n, t.String())
	}
	v := n.Int64()
	switch t.Size {
	case 8:
		return int8(v), nil
	case 16:
		return int16(v), nil
	case 32:
		return int32(v), nil
	default:
		return v, nil
	}
}

// FormatValue renders a decoded ABI value as text: integers in base 10,
// addresses checksummed, byte arrays as 0x hex.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case *big.Int:
		return val.String()
	case common.Address:
		return val.Hex()
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case []byte:
		return hexutil.Encode(val)
	case [32]byte:
		return hexutil.Encode(val[:])
	default:
		return fmt.Sprint(val)
	}
}

// ValidateAddress checks if a string is a valid EVM address
func ValidateAddress(addr string) error {
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("invalid address %q: expected 40 hex chars (with or without 0x prefix)", addr)
	}
	return nil
}
