package app

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/ui"
)

var columnGap = strings.Repeat(" ", ui.ColumnGap)

// renderTable lays out rows as aligned plain text. Columns grow to fit their
// content; when width is positive the widest columns are shrunk and their
// cells truncated with an ellipsis until the table fits.
func renderTable(columns []building.Column, rows [][]string, width int) string {
	widths := ui.FitColumns(columns, rows, width)

	var b strings.Builder
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = strings.ToUpper(c.Title)
	}
	writeRow(&b, titles, widths)
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	var line strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			line.WriteString(columnGap)
		}
		cell = runewidth.Truncate(cell, w, "…")
		line.WriteString(runewidth.FillRight(cell, w))
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteByte('\n')
}
