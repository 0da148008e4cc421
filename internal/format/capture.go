package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmagro/infrared-report/internal/report"
)

// NoData is printed instead of a table when a report has no rows.
const NoData = "No data to display."

// CaptureTable lays out the per-token rows of a capture report.
func CaptureTable(rows []report.CaptureRow) *Table {
	t := NewTable(Boxed,
		Column{Header: "Token Symbol", HeaderAlign: AlignLeft, Align: AlignLeft},
		Column{Header: "Stake %", HeaderAlign: AlignCenter, Align: AlignRight},
		Column{Header: "BGT/sec", HeaderAlign: AlignCenter, Align: AlignRight},
		Column{Header: "IBGT/sec", HeaderAlign: AlignCenter, Align: AlignRight},
	)
	for _, r := range rows {
		t.AddRow(r.Symbol, Percent(r.StakePercent), Fixed(r.BGTRate, 8), Fixed(r.IBGTRate, 8))
	}
	return t
}

// FormatCapture writes the capture table followed by the summary lines.
func FormatCapture(w io.Writer, rep *report.CaptureReport) {
	if rep == nil || len(rep.Rows) == 0 {
		fmt.Fprintln(w, NoData)
		return
	}

	t := CaptureTable(rep.Rows)
	sep := t.Separator()
	fmt.Fprintln(w, t.HeaderLine())
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, strings.Join(t.RowLines(), "\n"))
	fmt.Fprintln(w, sep)

	s := rep.Summary
	fmt.Fprintf(w, "Total BGT/sec emitted:               %s\n", Fixed(s.TotalBGT, 8))
	fmt.Fprintf(w, "Total BGT/sec captured by Infrared:  %s\n", Fixed(s.TotalCaptured, 8))
	fmt.Fprintf(w, "Infrared Capture Percentage:         %s\n", Percent(s.CapturePercent))
	fmt.Fprintf(w, "Total IBGT/sec:                      %s\n", Fixed(s.TotalIBGT, 8))
	fmt.Fprintf(w, "Overall IBGT/BGT captured (%%):       %s\n", Percent(s.IBGTOfCaptured))
	fmt.Fprintf(w, "Overall IBGT/Total BGT (%%):          %s\n", Percent(s.IBGTOfTotal))
}
