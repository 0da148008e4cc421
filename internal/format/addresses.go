package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/samber/lo"

	"github.com/dmagro/infrared-report/internal/config"
)

// FormatAddresses lists the address table a report will query.
func FormatAddresses(w io.Writer, title string, entries []config.Entry) {
	fmt.Fprintln(w, Bold(title))

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("#", "Label", "Address").WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt)

	lo.ForEach(entries, func(e config.Entry, i int) {
		tbl.AddRow(i+1, e.Label, e.Address)
	})
	tbl.Print()
}
