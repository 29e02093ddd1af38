package draw

import (
	"github.com/mattn/go-runewidth"
)

// TextWidth returns the number of terminal columns s occupies.
// CJK characters count as two columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most cols columns, appending an ellipsis when cut.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= cols {
		return s
	}
	return runewidth.Truncate(s, cols, "…")
}

// CenterCol returns the 1-based column at which s is centred on col.
func CenterCol(col int, s string) int {
	return col - TextWidth(s)/2
}
