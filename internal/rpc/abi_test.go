package rpc

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestFunctionSelector(t *testing.T) {
	selector := FunctionSelector("balanceOf(address)")
	expected := []byte{0x70, 0xa0, 0x82, 0x31}

	if !bytes.Equal(selector, expected) {
		t.Errorf("balanceOf selector: got %x, want %x", selector, expected)
	}
}

func TestFunctionSelectorTransfer(t *testing.T) {
	// Test another common function for validation
	selector := FunctionSelector("transfer(address,uint256)")
	expected := []byte{0xa9, 0x05, 0x9c, 0xbb}

	if !bytes.Equal(selector, expected) {
		t.Errorf("transfer selector: got %x, want %x", selector, expected)
	}
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		sig       string
		canonical string
		inputs    int
		outputs   int
		wantErr   bool
	}{
		{"symbol()(string)", "symbol()", 0, 1, false},
		{"totalSupply()(uint256)", "totalSupply()", 0, 1, false},
		{"balanceOf(address)(uint256)", "balanceOf(address)", 1, 1, false},
		{"vaultRegistry(address)(address)", "vaultRegistry(address)", 1, 1, false},
		{"rewardData(address)(address,uint256,uint256,uint256,uint256,uint256,uint256)", "rewardData(address)", 1, 7, false},
		{"transfer(address, uint256)", "transfer(address,uint256)", 2, 0, false},
		{"noparens", "", 0, 0, true},
		{"(uint256)", "", 0, 0, true},
		{"f(uint256", "", 0, 0, true},
		{"f(notatype)(uint256)", "", 0, 0, true},
		{"f()(uint256)x", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			sig, err := ParseSignature(tt.sig)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSignature() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := sig.Canonical(); got != tt.canonical {
				t.Errorf("Canonical() = %q, want %q", got, tt.canonical)
			}
			if len(sig.Inputs) != tt.inputs {
				t.Errorf("inputs = %d, want %d", len(sig.Inputs), tt.inputs)
			}
			if len(sig.Outputs) != tt.outputs {
				t.Errorf("outputs = %d, want %d", len(sig.Outputs), tt.outputs)
			}
		})
	}
}

func TestParseSignatureRejectsTuples(t *testing.T) {
	_, err := ParseSignature("getReserves()((uint112,uint112))")
	if !errors.Is(err, ErrTupleUnsupported) {
		t.Errorf("error = %v, want ErrTupleUnsupported", err)
	}
}

func TestEncodeCallHex(t *testing.T) {
	sig, err := ParseSignature("balanceOf(address)(uint256)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calldata, err := sig.EncodeCallHex("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should start with balanceOf selector
	if calldata[:10] != "0x70a08231" {
		t.Errorf("calldata prefix: got %s, want 0x70a08231", calldata[:10])
	}

	// Should be 4 bytes selector + 32 bytes address = 72 hex chars + 0x prefix
	if len(calldata) != 74 {
		t.Errorf("calldata length: got %d, want 74", len(calldata))
	}

	// Address is right-aligned in its 32-byte word
	if !strings.HasSuffix(calldata, "000000000000000000000000d8da6bf26964af9d7eed9e03e53415d37aa96045") {
		t.Errorf("calldata word not left-padded: %s", calldata)
	}
}

func TestEncodeCallArguments(t *testing.T) {
	sig, _ := ParseSignature("f(address,uint256,uint8,bool,string)")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"valid", []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "1000000000000000000", "7", "true", "hi"}, false},
		{"hex integer", []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "0xff", "0", "false", ""}, false},
		{"wrong arity", []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"}, true},
		{"bad address", []string{"0xd8dA6BF269", "1", "1", "true", ""}, true},
		{"bad integer", []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "ten", "1", "true", ""}, true},
		{"uint8 overflow", []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "1", "256", "true", ""}, true},
		{"bad bool", []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "1", "1", "maybe", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sig.EncodeCall(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("EncodeCall() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeOutputs(t *testing.T) {
	sig, err := ParseSignature("rewardData(address)(address,uint256,uint256,uint256,uint256,uint256,uint256)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	distributor := common.HexToAddress("0xb71b3DaEA39012Fb0f2B14D2a9C86da9292fC126")
	rate, _ := new(big.Int).SetString("123456789000000000000", 10)
	data, err := sig.Outputs.Pack(distributor, big.NewInt(604800), big.NewInt(1700000000), rate, big.NewInt(0), big.NewInt(5), big.NewInt(6))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	got, err := sig.DecodeOutputs(data)
	if err != nil {
		t.Fatalf("DecodeOutputs() error: %v", err)
	}
	want := []string{distributor.Hex(), "604800", "1700000000", "123456789000000000000", "0", "5", "6"}
	if len(got) != len(want) {
		t.Fatalf("DecodeOutputs() returned %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("output %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecodeOutputsString(t *testing.T) {
	sig, _ := ParseSignature("symbol()(string)")
	data, err := sig.Outputs.Pack("WBERA-HONEY")
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := sig.DecodeOutputs(data)
	if err != nil {
		t.Fatalf("DecodeOutputs() error: %v", err)
	}
	if len(got) != 1 || got[0] != "WBERA-HONEY" {
		t.Errorf("DecodeOutputs() = %v, want [WBERA-HONEY]", got)
	}
}

func TestDecodeOutputsEmptyReturnData(t *testing.T) {
	// A call to an address without code returns "0x".
	sig, _ := ParseSignature("totalSupply()(uint256)")
	if _, err := sig.DecodeOutputs(nil); err == nil {
		t.Error("DecodeOutputs(nil) expected error")
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid with 0x", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", false},
		{"valid without 0x", "d8dA6BF26964aF9D7eEd9e03E53415D37aA96045", false},
		{"too short", "0xd8dA6BF269", true},
		{"too long", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045aa", true},
		{"invalid hex", "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
