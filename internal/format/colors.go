package format

import (
	"regexp"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Colour helpers. fatih/color disables itself when stdout is not a terminal,
// so piped reports stay plain text.
var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(str string) string {
	return ansiRegex.ReplaceAllString(str, "")
}

// visibleLen counts the runes a terminal shows for str.
func visibleLen(str string) int {
	return utf8.RuneCountInString(stripANSI(str))
}
