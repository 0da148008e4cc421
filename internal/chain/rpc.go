package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/dmagro/infrared-report/internal/rpc"
)

// RPCQuerier sends eth_call through the in-repo JSON-RPC client.
type RPCQuerier struct {
	client *rpc.Client
	block  string
	log    logrus.FieldLogger
}

func NewRPCQuerier(client *rpc.Client) *RPCQuerier {
	return &RPCQuerier{client: client, block: "latest", log: logrus.StandardLogger()}
}

// AtBlock pins every call to block, which must be normalized.
func (q *RPCQuerier) AtBlock(block string) *RPCQuerier {
	q.block = block
	return q
}

// WithLogger sets where per-call debug lines go.
func (q *RPCQuerier) WithLogger(l logrus.FieldLogger) *RPCQuerier {
	q.log = l
	return q
}

func (q *RPCQuerier) Call(ctx context.Context, to, signature string, args ...string) ([]string, error) {
	sig, err := rpc.ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	data, err := sig.EncodeCallHex(args...)
	if err != nil {
		return nil, err
	}

	result, latency, err := q.client.EthCall(ctx, to, data, q.block)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s: %w", sig.Name, to, err)
	}
	q.log.WithFields(logrus.Fields{
		"client":  q.client.Name(),
		"to":      to,
		"method":  sig.Name,
		"latency": latency,
	}).Debug("eth_call")

	raw, err := hexutil.Decode(result)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s: decode result %q: %w", sig.Name, to, result, err)
	}
	values, err := sig.DecodeOutputs(raw)
	if err != nil {
		return nil, err
	}
	return checkOutputs(sig, values)
}
