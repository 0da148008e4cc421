package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmagro/infrared-report/internal/report"
)

const (
	// MigrationTitle heads the migration table.
	MigrationTitle = "Vault Migration Balance Comparison"

	migrationMinWidth = 15
	migrationMinRule  = 100
)

// MigrationTable lays out the vault pairs and the TOTALS footer.
func MigrationTable(rep *report.MigrationReport) *Table {
	numeric := func(header string) Column {
		return Column{Header: header, HeaderAlign: AlignRight, Align: AlignRight, MinWidth: migrationMinWidth}
	}
	t := NewTable(Plain,
		Column{Header: "Vault Name", MinWidth: migrationMinWidth},
		numeric("Old Vault Balance"),
		numeric("New Vault Balance"),
		numeric("Difference"),
		numeric("Progress"),
	)
	for _, r := range rep.Rows {
		t.AddRow(r.Name, Fixed(r.Old, 4), Fixed(r.New, 4), Fixed(r.Difference, 4), Percent(r.Progress))
	}
	tot := rep.Totals
	t.SetFooter("TOTALS", Fixed(tot.Old, 4), Fixed(tot.New, 4), Fixed(tot.Difference, 4), Percent(tot.Progress))
	return t
}

// FormatMigration writes the migration table with its TOTALS row.
func FormatMigration(w io.Writer, rep *report.MigrationReport) {
	if rep == nil || len(rep.Rows) == 0 {
		fmt.Fprintln(w, NoData)
		return
	}

	t := MigrationTable(rep)
	rule := strings.Repeat("-", max(migrationMinRule, t.LineWidth()))

	fmt.Fprintln(w)
	fmt.Fprintln(w, Bold(MigrationTitle))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, t.HeaderLine())
	fmt.Fprintln(w, rule)
	for _, line := range t.RowLines() {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, t.FooterLine())
	fmt.Fprintln(w, rule)
}

// FormatFailures writes one notice per abandoned row.
func FormatFailures(w io.Writer, failures []report.Failure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "%s %s\n", Yellow("⚠"), Bold(fmt.Sprintf("%d row(s) skipped:", len(failures))))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s %s %s\n", Red("✗"), f.Label, Dim(f.Error))
	}
}
