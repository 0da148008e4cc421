// Package export writes reports to spreadsheet files for --xlsx.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dmagro/infrared-report/internal/report"
)

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// CaptureSheets lays out a capture report as a per-token sheet and a
// summary sheet.
func CaptureSheets(rep *report.CaptureReport) []Sheet {
	rows := make([][]any, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, []any{
			r.Symbol, r.Token, r.InfraredVault, r.RewardsVault,
			toFloat(r.TotalStaked), toFloat(r.InfraredStake), toFloat(r.StakePercent),
			toFloat(r.BGTRate), toFloat(r.IRCapture), toFloat(r.IBGTRate),
		})
	}

	s := rep.Summary
	return []Sheet{
		{
			Name: "Capture",
			Header: []string{
				"Token Symbol", "Token", "Infrared Vault", "Rewards Vault",
				"Total Staked", "Infrared Stake", "Stake %",
				"BGT/sec", "Infrared BGT/sec", "IBGT/sec",
			},
			Rows: rows,
		},
		{
			Name:   "Summary",
			Header: []string{"Metric", "Value"},
			Rows: [][]any{
				{"Total BGT/sec emitted", toFloat(s.TotalBGT)},
				{"Total BGT/sec captured by Infrared", toFloat(s.TotalCaptured)},
				{"Infrared Capture Percentage", toFloat(s.CapturePercent)},
				{"Total IBGT/sec", toFloat(s.TotalIBGT)},
				{"Overall IBGT/BGT captured (%)", toFloat(s.IBGTOfCaptured)},
				{"Overall IBGT/Total BGT (%)", toFloat(s.IBGTOfTotal)},
			},
		},
	}
}

// MigrationSheets lays out a migration report with its TOTALS row last.
func MigrationSheets(rep *report.MigrationReport) []Sheet {
	rows := make([][]any, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		rows = append(rows, []any{
			r.Name, r.OldVault, r.NewVault,
			toFloat(r.Old), toFloat(r.New), toFloat(r.Difference), toFloat(r.Progress),
		})
	}
	t := rep.Totals
	rows = append(rows, []any{"TOTALS", "", "", toFloat(t.Old), toFloat(t.New), toFloat(t.Difference), toFloat(t.Progress)})

	return []Sheet{{
		Name: "Migration",
		Header: []string{
			"Vault Name", "Old Vault", "New Vault",
			"Old Vault Balance", "New Vault Balance", "Difference", "Progress %",
		},
		Rows: rows,
	}}
}

// WriteXLSX saves sheets, in order, to a new workbook at path.
func WriteXLSX(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.Name); err != nil {
				return fmt.Errorf("rename sheet %s: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sh.Name, err)
		}
		if err := writeRows(f, sh); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sh Sheet) error {
	header := make([]any, len(sh.Header))
	for i, h := range sh.Header {
		header[i] = h
	}

	for i, row := range append([][]any{header}, sh.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
			return fmt.Errorf("write %s!%s: %w", sh.Name, cell, err)
		}
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
