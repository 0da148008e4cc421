package report

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dmagro/infrared-report/internal/chain"
	"github.com/dmagro/infrared-report/internal/config"
	"github.com/dmagro/infrared-report/internal/metrics"
)

// MigrationRow compares the total supply of an old vault and its replacement.
type MigrationRow struct {
	Name       string          `json:"name"`
	OldVault   string          `json:"old_vault"`
	NewVault   string          `json:"new_vault"`
	Old        decimal.Decimal `json:"old_balance"`
	New        decimal.Decimal `json:"new_balance"`
	Difference decimal.Decimal `json:"difference"`
	Progress   decimal.Decimal `json:"progress_percent"`
}

// MigrationTotals sums every row of a migration report.
type MigrationTotals struct {
	Old        decimal.Decimal `json:"old_balance"`
	New        decimal.Decimal `json:"new_balance"`
	Difference decimal.Decimal `json:"difference"`
	Progress   decimal.Decimal `json:"progress_percent"`
}

// MigrationReport is one run of the migration report.
type MigrationReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Rows        []MigrationRow  `json:"rows"`
	Totals      MigrationTotals `json:"totals"`
	Failures    []Failure       `json:"failures,omitempty"`
}

// Migration builds the vault migration report.
type Migration struct {
	cfg   config.Migration
	fetch *Fetcher
	opts  Options
}

func NewMigration(cfg config.Migration, q chain.Querier, opts Options) *Migration {
	return &Migration{cfg: cfg, fetch: NewFetcher(q), opts: opts.withDefaults()}
}

// Run fetches every vault pair in configuration order. It only fails when
// ctx is cancelled.
func (m *Migration) Run(ctx context.Context) (*MigrationReport, error) {
	results := collect(ctx, m.cfg.Vaults, m.opts.Parallel, m.Row)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &MigrationReport{GeneratedAt: m.opts.Now().UTC()}
	for _, r := range results {
		pair := m.cfg.Vaults[r.Index]
		if r.Err != nil {
			address := pair.Old
			var fe *FetchError
			if errors.As(r.Err, &fe) {
				address = fe.Address
			}
			m.opts.Logger.WithFields(logrus.Fields{"vault": pair.Name, "address": address}).
				WithError(r.Err).Errorf("Error getting total supply for %s", address)
			report.Failures = append(report.Failures, Failure{Label: pair.Name, Address: address, Error: r.Err.Error()})
			continue
		}
		report.Rows = append(report.Rows, r.Value)
	}
	report.Totals = TotalMigration(report.Rows)
	return report, nil
}

// Row reads both vault supplies of one pair.
func (m *Migration) Row(ctx context.Context, pair config.VaultPair) (MigrationRow, error) {
	oldSupply, err := m.fetch.Amount(ctx, pair.Old, SigTotalSupply)
	if err != nil {
		return MigrationRow{}, err
	}
	newSupply, err := m.fetch.Amount(ctx, pair.New, SigTotalSupply)
	if err != nil {
		return MigrationRow{}, err
	}

	return MigrationRow{
		Name:       pair.Name,
		OldVault:   pair.Old,
		NewVault:   pair.New,
		Old:        oldSupply,
		New:        newSupply,
		Difference: newSupply.Sub(oldSupply),
		Progress:   metrics.MigrationProgress(oldSupply, newSupply),
	}, nil
}

// TotalMigration folds rows, in order, into the TOTALS line.
func TotalMigration(rows []MigrationRow) MigrationTotals {
	oldTotal := lo.Reduce(rows, func(acc decimal.Decimal, r MigrationRow, _ int) decimal.Decimal {
		return acc.Add(r.Old)
	}, decimal.Zero)
	newTotal := lo.Reduce(rows, func(acc decimal.Decimal, r MigrationRow, _ int) decimal.Decimal {
		return acc.Add(r.New)
	}, decimal.Zero)

	return MigrationTotals{
		Old:        oldTotal,
		New:        newTotal,
		Difference: newTotal.Sub(oldTotal),
		Progress:   metrics.MigrationProgress(oldTotal, newTotal),
	}
}
