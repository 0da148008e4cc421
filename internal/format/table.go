// =============================================================================
// FILE: internal/format/table.go
// ROLE: Column layout shared by both report tables
// =============================================================================
//
// A Table collects rows of already formatted cells and sizes every column to
// its widest entry. Nothing is ever truncated: a long symbol or a large
// balance widens its column instead.
//
//   width(col) = max(len(header), MinWidth, len(cell) for every row and footer)
//
// Lengths are visible runes, so colour codes and multi-byte symbols do not
// throw the columns off.
//
// Two line styles are used:
//
//   Boxed   | Token Symbol | Stake % |      Plain   Vault Name      | Progress
//           |--------------|---------|
//
// Centered cells put the odd padding space on the right, the same way the
// historic reports did.
// =============================================================================

package format

import "strings"

// Align positions a cell inside its column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column describes one table column.
type Column struct {
	Header      string
	HeaderAlign Align
	Align       Align
	MinWidth    int
}

// Style holds the separators drawn around and between cells.
type Style struct {
	Left, Sep, Right string
}

var (
	Boxed = Style{Left: "| ", Sep: " | ", Right: " |"}
	Plain = Style{Sep: " | "}
)

// Table is a set of formatted rows plus an optional footer row.
type Table struct {
	Columns []Column
	Style   Style

	rows   [][]string
	footer []string
}

func NewTable(style Style, cols ...Column) *Table {
	return &Table{Columns: cols, Style: style}
}

// AddRow appends one row. Missing trailing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// SetFooter sets a row that is rendered apart from the body but still sizes
// the columns.
func (t *Table) SetFooter(cells ...string) {
	t.footer = cells
}

// Len is the number of body rows.
func (t *Table) Len() int { return len(t.rows) }

// Widths returns the rendered width of every column.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = max(visibleLen(c.Header), c.MinWidth)
	}
	grow := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], visibleLen(cells[i]))
			}
		}
	}
	for _, r := range t.rows {
		grow(r)
	}
	grow(t.footer)
	return widths
}

// HeaderLine renders the column headers.
func (t *Table) HeaderLine() string {
	cells := make([]string, len(t.Columns))
	aligns := make([]Align, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = c.Header
		aligns[i] = c.HeaderAlign
	}
	return t.line(cells, aligns, t.Widths())
}

// RowLines renders every body row.
func (t *Table) RowLines() []string {
	widths := t.Widths()
	aligns := t.cellAligns()
	lines := make([]string, len(t.rows))
	for i, r := range t.rows {
		lines[i] = t.line(r, aligns, widths)
	}
	return lines
}

// FooterLine renders the footer, or "" when none is set.
func (t *Table) FooterLine() string {
	if t.footer == nil {
		return ""
	}
	return t.line(t.footer, t.cellAligns(), t.Widths())
}

// Separator renders a boxed divider: "|" then width+2 dashes per column.
func (t *Table) Separator() string {
	var b strings.Builder
	b.WriteString("|")
	for _, w := range t.Widths() {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	return b.String()
}

// LineWidth is the visible length of one rendered line.
func (t *Table) LineWidth() int {
	return visibleLen(t.HeaderLine())
}

func (t *Table) cellAligns() []Align {
	aligns := make([]Align, len(t.Columns))
	for i, c := range t.Columns {
		aligns[i] = c.Align
	}
	return aligns
}

func (t *Table) line(cells []string, aligns []Align, widths []int) string {
	var b strings.Builder
	b.WriteString(t.Style.Left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(t.Style.Sep)
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(pad(cell, w, aligns[i]))
	}
	b.WriteString(t.Style.Right)
	return b.String()
}

func pad(s string, width int, align Align) string {
	gap := width - visibleLen(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
