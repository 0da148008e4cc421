package rpc

import (
	"encoding/json"
	"fmt"
)

// Request represents a JSON-RPC 2.0 request sent to an EVM node.
//
//	{"jsonrpc": "2.0", "method": "eth_call", "params": [{...}, "latest"], "id": 1}
//
// Params is []interface{} because every method takes a different shape.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

// Response represents a JSON-RPC 2.0 response. Result stays raw until the
// caller knows which type to expect; Error is nil on success.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is an error object returned by the node, e.g. -32000 for a
// reverted call.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}
