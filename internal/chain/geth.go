package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/dmagro/infrared-report/internal/rpc"
)

// GethQuerier calls contracts through go-ethereum's ethclient.
type GethQuerier struct {
	client *ethclient.Client
	block  string
}

// DialGeth connects to url. The caller must Close the querier.
func DialGeth(ctx context.Context, url string) (*GethQuerier, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &GethQuerier{client: client, block: BlockLatest}, nil
}

// AtBlock pins every call to block, which must be normalized.
func (q *GethQuerier) AtBlock(block string) *GethQuerier {
	q.block = block
	return q
}

func (q *GethQuerier) Close() { q.client.Close() }

func (q *GethQuerier) Call(ctx context.Context, to, signature string, args ...string) ([]string, error) {
	sig, err := rpc.ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	if err := rpc.ValidateAddress(to); err != nil {
		return nil, err
	}
	data, err := sig.EncodeCall(args...)
	if err != nil {
		return nil, err
	}

	addr := common.HexToAddress(to)
	msg := ethereum.CallMsg{To: &addr, Data: data}
	var raw []byte
	if q.block == BlockPending {
		raw, err = q.client.PendingCallContract(ctx, msg)
	} else {
		raw, err = q.client.CallContract(ctx, msg, blockNumber(q.block))
	}
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", sig.Name, to, err)
	}
	values, err := sig.DecodeOutputs(raw)
	if err != nil {
		return nil, err
	}
	return checkOutputs(sig, values)
}
