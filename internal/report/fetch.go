package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmagro/infrared-report/internal/chain"
	"github.com/dmagro/infrared-report/internal/units"
)

// Contract calls used by the reports.
const (
	SigSymbol        = "symbol()(string)"
	SigVaultRegistry = "vaultRegistry(address)(address)"
	SigRewardsVault  = "rewardsVault()(address)"
	SigTotalSupply   = "totalSupply()(uint256)"
	SigBalanceOf     = "balanceOf(address)(uint256)"
	SigRewardRate    = "rewardRate()(uint256)"
	SigRewardData    = "rewardData(address)(address,uint256,uint256,uint256,uint256,uint256,uint256)"
)

// FetchError reports an unusable value for one field of one address.
type FetchError struct {
	Address   string
	Signature string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Signature, e.Address, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher reads contract fields through a chain.Querier. Every call goes to
// the querier; nothing is cached.
type Fetcher struct {
	q chain.Querier
}

func NewFetcher(q chain.Querier) *Fetcher {
	return &Fetcher{q: q}
}

// Fetch returns all decoded outputs of one call.
func (f *Fetcher) Fetch(ctx context.Context, address, signature string, args ...string) ([]string, error) {
	values, err := f.q.Call(ctx, address, signature, args...)
	if err != nil {
		return nil, &FetchError{Address: address, Signature: signature, Err: err}
	}
	return values, nil
}

// Value returns the first output of one call, which must be non-empty.
func (f *Fetcher) Value(ctx context.Context, address, signature string, args ...string) (string, error) {
	values, err := f.Fetch(ctx, address, signature, args...)
	if err != nil {
		return "", err
	}
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return "", &FetchError{Address: address, Signature: signature, Err: fmt.Errorf("no data returned")}
	}
	return values[0], nil
}

// Amount returns the first output of one call converted from base units.
func (f *Fetcher) Amount(ctx context.Context, address, signature string, args ...string) (decimal.Decimal, error) {
	raw, err := f.Value(ctx, address, signature, args...)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := units.FromBaseUnits(raw)
	if err != nil {
		return decimal.Zero, &FetchError{Address: address, Signature: signature, Err: err}
	}
	return amount, nil
}

// RewardData is the per-token reward state of an Infrared vault, decoded by
// field position from rewardData(address).
type RewardData struct {
	RewardsDistributor   string
	RewardsDuration      string
	PeriodFinish         string
	RewardRate           string
	LastUpdateTime       string
	RewardPerTokenStored string
	RewardResidual       string
}

func decodeRewardData(values []string) (RewardData, error) {
	if len(values) != 7 {
		return RewardData{}, fmt.Errorf("rewardData: got %d fields, want 7: %w", len(values), chain.ErrOutputMismatch)
	}
	return RewardData{
		RewardsDistributor:   values[0],
		RewardsDuration:      values[1],
		PeriodFinish:         values[2],
		RewardRate:           values[3],
		LastUpdateTime:       values[4],
		RewardPerTokenStored: values[5],
		RewardResidual:       values[6],
	}, nil
}

// RewardData fetches rewardData(token) from an Infrared vault.
func (f *Fetcher) RewardData(ctx context.Context, vault, token string) (RewardData, error) {
	values, err := f.Fetch(ctx, vault, SigRewardData, token)
	if err != nil {
		return RewardData{}, err
	}
	rd, err := decodeRewardData(values)
	if err != nil {
		return RewardData{}, &FetchError{Address: vault, Signature: SigRewardData, Err: err}
	}
	return rd, nil
}
