// Package chain provides read-only contract calls behind a single Querier
// interface, so the reports do not care whether values come from a JSON-RPC
// endpoint, a go-ethereum client or the cast command-line tool.
package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dmagro/infrared-report/internal/rpc"
)

// Backend names accepted in configuration.
const (
	BackendRPC  = "rpc"
	BackendGeth = "geth"
	BackendCast = "cast"
)

// ErrOutputMismatch is returned when a call yields a different number of
// values than its signature declares.
var ErrOutputMismatch = errors.New("output count does not match signature")

// Querier performs a read-only contract call.
//
// signature has the "name(inputs)(outputs)" form. The result holds exactly
// one textual value per declared output, in declaration order.
type Querier interface {
	Call(ctx context.Context, to, signature string, args ...string) ([]string, error)
}

// Options configures New.
type Options struct {
	Backend    string
	URL        string
	Timeout    time.Duration
	MaxRetries int
	CastPath   string
	// Block is the block every call reads state at: a number, 0x-hex or a
	// tag. Empty means latest.
	Block string
	// Logger receives per-call debug lines. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// New builds the Querier for opts.Backend. The returned close function
// releases backend resources and is never nil.
func New(ctx context.Context, opts Options) (Querier, func(), error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	block, err := NormalizeBlock(opts.Block)
	if err != nil {
		return nil, func() {}, err
	}

	switch opts.Backend {
	case BackendRPC, "":
		client := rpc.NewClient("rpc", opts.URL, opts.Timeout, opts.MaxRetries)
		return NewRPCQuerier(client).WithLogger(opts.Logger).AtBlock(block), func() {}, nil
	case BackendGeth:
		q, err := DialGeth(ctx, opts.URL)
		if err != nil {
			return nil, func() {}, err
		}
		return q.AtBlock(block), q.Close, nil
	case BackendCast:
		return NewCastQuerier(opts.CastPath, opts.URL).WithLogger(opts.Logger).AtBlock(block), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown backend %q (expected %s, %s or %s)", opts.Backend, BackendRPC, BackendGeth, BackendCast)
	}
}

func checkOutputs(sig *rpc.Signature, values []string) ([]string, error) {
	if len(values) != len(sig.Outputs) {
		return nil, fmt.Errorf("%s: got %d values, want %d: %w", sig, len(values), len(sig.Outputs), ErrOutputMismatch)
	}
	return values, nil
}
