package commands

import (
	"io"
	"time"

	"github.com/dmagro/infrared-report/internal/export"
	"github.com/dmagro/infrared-report/internal/format"
	"github.com/dmagro/infrared-report/internal/output"
	"github.com/dmagro/infrared-report/internal/report"
	"github.com/dmagro/infrared-report/internal/reports"
)

// Result is a finished report ready to be written out.
type Result struct {
	Name        string // file prefix and JSON report name
	GeneratedAt time.Time
	Data        any
	Failures    []report.Failure
	Text        func(w io.Writer)
	Sheets      func() []export.Sheet
}

// Emit writes res to stdout in the selected format, then any requested
// files. Skipped rows are summarized on stderr in text mode; they never make
// the command fail.
func (s *Session) Emit(stdout, stderr io.Writer, version string, res Result) error {
	outFmt, err := output.ParseFormat(s.Flags.Output)
	if err != nil {
		return err
	}

	if outFmt == output.FormatJSON {
		doc := output.JSONReport{Report: res.Name, Version: version, RunID: s.RunID, Data: res.Data}
		if err := output.RenderJSON(stdout, doc); err != nil {
			return err
		}
	} else {
		res.Text(stdout)
		format.FormatFailures(stderr, res.Failures)
	}

	if s.Flags.Save {
		path, err := reports.WriteJSON(s.Flags.SaveDir, res.Name, res.GeneratedAt, res.Data)
		if err != nil {
			return err
		}
		s.log().Infof("Report saved to %s", path)
	}

	if s.Flags.XLSX != "" && res.Sheets != nil {
		if err := export.WriteXLSX(s.Flags.XLSX, res.Sheets()...); err != nil {
			return err
		}
		s.log().Infof("Spreadsheet saved to %s", s.Flags.XLSX)
	}
	return nil
}
