package report

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/dmagro/infrared-report/internal/chain"
	"github.com/dmagro/infrared-report/internal/config"
	"github.com/dmagro/infrared-report/internal/metrics"
	"github.com/dmagro/infrared-report/internal/units"
)

// CaptureRow is the Infrared position in one BGT rewards vault.
type CaptureRow struct {
	Token         string          `json:"token"`
	Symbol        string          `json:"symbol"`
	InfraredVault string          `json:"infrared_vault"`
	RewardsVault  string          `json:"rewards_vault"`
	TotalStaked   decimal.Decimal `json:"total_staked"`
	InfraredStake decimal.Decimal `json:"infrared_stake"`
	StakePercent  decimal.Decimal `json:"stake_percent"`
	BGTRate       decimal.Decimal `json:"bgt_per_sec"`
	IBGTRate      decimal.Decimal `json:"ibgt_per_sec"`
	IRCapture     decimal.Decimal `json:"infrared_bgt_per_sec"`
}

// CaptureSummary holds the totals and aggregate percentages of a capture report.
type CaptureSummary struct {
	TotalBGT       decimal.Decimal `json:"total_bgt_per_sec"`
	TotalCaptured  decimal.Decimal `json:"total_captured_bgt_per_sec"`
	CapturePercent decimal.Decimal `json:"capture_percent"`
	TotalIBGT      decimal.Decimal `json:"total_ibgt_per_sec"`
	IBGTOfCaptured decimal.Decimal `json:"ibgt_of_captured_percent"`
	IBGTOfTotal    decimal.Decimal `json:"ibgt_of_total_percent"`
}

// CaptureReport is one run of the capture report.
type CaptureReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Rows        []CaptureRow   `json:"rows"`
	Summary     CaptureSummary `json:"summary"`
	Failures    []Failure      `json:"failures,omitempty"`
}

// Capture builds the Infrared capture report.
type Capture struct {
	cfg   config.Capture
	fetch *Fetcher
	opts  Options
}

func NewCapture(cfg config.Capture, q chain.Querier, opts Options) *Capture {
	return &Capture{cfg: cfg, fetch: NewFetcher(q), opts: opts.withDefaults()}
}

// Run fetches every staking token in configuration order. It only fails when
// ctx is cancelled; row failures are recorded in the report.
func (c *Capture) Run(ctx context.Context) (*CaptureReport, error) {
	results := collect(ctx, c.cfg.StakingTokens, c.opts.Parallel, c.Row)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &CaptureReport{GeneratedAt: c.opts.Now().UTC()}
	for _, r := range results {
		token := c.cfg.StakingTokens[r.Index]
		if r.Err != nil {
			c.opts.Logger.WithField("address", token).WithError(r.Err).Errorf("Error processing %s", token)
			report.Failures = append(report.Failures, Failure{Label: token, Address: token, Error: r.Err.Error()})
			continue
		}
		report.Rows = append(report.Rows, r.Value)
	}
	report.Summary = SummarizeCapture(report.Rows)
	return report, nil
}

// Row resolves the vaults of one staking token and computes its figures.
func (c *Capture) Row(ctx context.Context, token string) (CaptureRow, error) {
	row := CaptureRow{Token: token}
	var err error

	if row.Symbol, err = c.fetch.Value(ctx, token, SigSymbol); err != nil {
		return CaptureRow{}, err
	}
	if row.InfraredVault, err = c.fetch.Value(ctx, c.cfg.Infrared, SigVaultRegistry, token); err != nil {
		return CaptureRow{}, err
	}
	if row.RewardsVault, err = c.fetch.Value(ctx, row.InfraredVault, SigRewardsVault); err != nil {
		return CaptureRow{}, err
	}

	if row.TotalStaked, err = c.fetch.Amount(ctx, row.RewardsVault, SigTotalSupply); err != nil {
		return CaptureRow{}, err
	}
	if row.InfraredStake, err = c.fetch.Amount(ctx, row.RewardsVault, SigBalanceOf, row.InfraredVault); err != nil {
		return CaptureRow{}, err
	}

	rawRate, err := c.fetch.Value(ctx, row.RewardsVault, SigRewardRate)
	if err != nil {
		return CaptureRow{}, err
	}
	if row.BGTRate, err = units.FromBaseUnitsTwice(rawRate); err != nil {
		return CaptureRow{}, &FetchError{Address: row.RewardsVault, Signature: SigRewardRate, Err: err}
	}

	row.IBGTRate = c.ibgtRate(ctx, row.InfraredVault)
	row.StakePercent = metrics.StakePercent(row.InfraredStake, row.TotalStaked)
	row.IRCapture = metrics.ProRata(row.BGTRate, row.InfraredStake, row.TotalStaked)
	return row, nil
}

// ibgtRate reads the iBGT emission of an Infrared vault. A failure here
// keeps the row and reports a zero rate.
func (c *Capture) ibgtRate(ctx context.Context, vault string) decimal.Decimal {
	rd, err := c.fetch.RewardData(ctx, vault, c.cfg.IBGT)
	if err == nil {
		var rate decimal.Decimal
		if rate, err = units.FromBaseUnits(rd.RewardRate); err == nil {
			return rate
		}
	}
	c.opts.Logger.WithField("address", vault).WithError(err).Warn("Error parsing IBGT rate, using 0")
	return decimal.Zero
}

// SummarizeCapture folds rows, in order, into totals and aggregate percentages.
func SummarizeCapture(rows []CaptureRow) CaptureSummary {
	sum := func(field func(CaptureRow) decimal.Decimal) decimal.Decimal {
		return lo.Reduce(rows, func(acc decimal.Decimal, r CaptureRow, _ int) decimal.Decimal {
			return acc.Add(field(r))
		}, decimal.Zero)
	}

	s := CaptureSummary{
		TotalBGT:      sum(func(r CaptureRow) decimal.Decimal { return r.BGTRate }),
		TotalCaptured: sum(func(r CaptureRow) decimal.Decimal { return r.IRCapture }),
		TotalIBGT:     sum(func(r CaptureRow) decimal.Decimal { return r.IBGTRate }),
	}
	s.CapturePercent = metrics.Percent(s.TotalCaptured, s.TotalBGT)
	s.IBGTOfCaptured = metrics.Percent(s.TotalIBGT, s.TotalCaptured)
	s.IBGTOfTotal = metrics.Percent(s.TotalIBGT, s.TotalBGT)
	return s
}
