package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed. Gift names are free text, so widths are measured in terminal cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "...")
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
