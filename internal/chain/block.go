package chain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Block tags accepted wherever a block can be given.
const (
	BlockLatest   = "latest"
	BlockPending  = "pending"
	BlockEarliest = "earliest"
)

// NormalizeBlock converts a block identifier (decimal, hex or tag) to the
// JSON-RPC form. Empty input means latest; numbers become 0x-prefixed hex.
func NormalizeBlock(arg string) (string, error) {
	arg = strings.TrimSpace(strings.ToLower(arg))

	switch arg {
	case "":
		return BlockLatest, nil
	case BlockLatest, BlockPending, BlockEarliest:
		return arg, nil
	}

	if strings.HasPrefix(arg, "0x") {
		if _, err := strconv.ParseUint(arg[2:], 16, 64); err != nil {
			return "", fmt.Errorf("invalid block %q", arg)
		}
		return arg, nil
	}

	num, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid block %q (want a number, 0x-hex, latest, pending or earliest)", arg)
	}
	return fmt.Sprintf("0x%x", num), nil
}

// blockNumber converts a normalized block to the go-ethereum form: nil for
// latest, otherwise the block height. Pending is handled by the caller.
func blockNumber(block string) *big.Int {
	switch block {
	case BlockLatest, BlockPending:
		return nil
	case BlockEarliest:
		return big.NewInt(0)
	}
	n, _ := new(big.Int).SetString(strings.TrimPrefix(block, "0x"), 16)
	return n
}
