// Package layout implements the fixed-width text helpers used to lay out
// receipt rows for a 58mm thermal printer at its default font.
package layout

import (
	"strings"
	"unicode/utf8"
)

const (
	// Number of characters the printer fits on one line at its default font
	TotalWidth = 42
	// Width of the label column in a label/value row
	LabelWidth = 20
	// Number of dashes in a section separator
	SeparatorWidth = 50
)

// Splits text on single spaces and greedily packs the words into lines no
// longer than maxWidth characters, counting the separating spaces. A word
// longer than maxWidth is kept whole on a line of its own.
// Joining the returned lines with single spaces reproduces text exactly.
func WrapByWidth(text string, maxWidth int) []string {
	words := strings.Split(text, " ")
	lines := []string{}

	var line []string
	lineWidth := 0
	for _, word := range words {
		wordWidth := utf8.RuneCountInString(word)
		if len(line) > 0 && lineWidth+1+wordWidth > maxWidth {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}

		if len(line) > 0 {
			lineWidth++
		}
		line = append(line, word)
		lineWidth += wordWidth
	}

	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return lines
}

// Formats a label/value row using the receipt's default column widths.
func FormatRow(label, value string) string {
	return FormatRowWidth(label, value, TotalWidth, LabelWidth)
}

// Pads label on the right to labelWidth, then right-aligns value in the
// remaining columns. Nothing is truncated: an over-long label or value
// widens the row past totalWidth instead.
func FormatRowWidth(label, value string, totalWidth, labelWidth int) string {
	formattedLabel := padEnd(label, labelWidth)
	spaceForValue := totalWidth - utf8.RuneCountInString(formattedLabel)
	return formattedLabel + padStart(value, spaceForValue)
}

// Returns a line of dashes the width of a receipt section separator.
func Separator() string {
	return strings.Repeat("-", SeparatorWidth)
}

func padEnd(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padStart(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
