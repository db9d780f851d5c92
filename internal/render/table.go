// Package render formats rows of strings as fixed-width text tables. It is
// pure formatting: no I/O, no knowledge of what the columns mean.
package render

import "strings"

// Align controls how a column's cells are padded.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Style selects the table frame.
type Style int

const (
	// StylePretty draws +---+ rails around every row band, the way the
	// on-screen reports look.
	StylePretty Style = iota
	// StyleSimple underlines the header with dashes and leaves the body
	// unframed, the way search listings look.
	StyleSimple
)

// Table renders headers and rows into a text table. aligns applies per
// column; missing entries default to AlignLeft. Headers are always
// centered; aligns governs the body cells.
func Table(headers []string, rows [][]string, aligns []Align, style Style) string {
	widths := columnWidths(headers, rows)

	var b strings.Builder
	switch style {
	case StyleSimple:
		writeSimpleRow(&b, headers, widths, aligns)
		writeSimpleRule(&b, widths)
		for _, row := range rows {
			writeSimpleRow(&b, row, widths, aligns)
		}
	default:
		writePrettyRule(&b, widths)
		writePrettyRow(&b, headers, widths, nil) // centered
		writePrettyRule(&b, widths)
		for _, row := range rows {
			writePrettyRow(&b, row, widths, aligns)
		}
		writePrettyRule(&b, widths)
	}
	return strings.TrimRight(b.String(), "\n")
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func pad(s string, width int, align Align) string {
	gap := width - len(s)
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

func alignFor(aligns []Align, i int) Align {
	if i < len(aligns) {
		return aligns[i]
	}
	return AlignLeft
}

func writePrettyRule(b *strings.Builder, widths []int) {
	for _, w := range widths {
		b.WriteByte('+')
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("+\n")
}

// writePrettyRow writes one framed row. A nil aligns centers every cell,
// which is how headers are drawn.
func writePrettyRow(b *strings.Builder, cells []string, widths []int, aligns []Align) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		a := AlignCenter
		if aligns != nil {
			a = alignFor(aligns, i)
		}
		b.WriteString("| ")
		b.WriteString(pad(cell, w, a))
		b.WriteByte(' ')
	}
	b.WriteString("|\n")
}

func writeSimpleRule(b *strings.Builder, widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteByte('\n')
}

func writeSimpleRow(b *strings.Builder, cells []string, widths []int, aligns []Align) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = pad(cell, w, alignFor(aligns, i))
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
	b.WriteByte('\n')
}
