package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
)

// listView is everything the list pane renders. It is built from a screen
// snapshot so rendering stays a pure function of the fetched result and the
// loading flag.
type listView struct {
	Title      string
	Columns    []building.Column
	Rows       [][]string
	Selected   int
	Loading    bool
	Loaded     bool // a result has been applied at least once
	Page       listing.Page
	Current    int
	Window     []listing.PageLabel
	Mode       listing.Mode
	Expression string
	Err        error
}

// ColumnGap is the number of cells between table columns.
const ColumnGap = 2

// FitColumns sizes columns to their content. When width is positive the
// widest columns are shrunk one cell at a time, never below their declared
// minimum (capped at 6) or 3, until the row fits.
func FitColumns(columns []building.Column, rows [][]string, width int) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = max(runewidth.StringWidth(c.Title), 1)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	if width <= 0 || len(widths) == 0 {
		return widths
	}

	budget := width - ColumnGap*(len(widths)-1)
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := -1
		for i, w := range widths {
			floor := max(min(columns[i].Width, 6), 3)
			if w > floor && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
		total--
	}
	return widths
}

// renderListView renders the list pane: a titled box holding the column
// header, the rows or an empty state, and the pager.
func renderListView(v listView, theme Theme, width, height int) string {
	width = max(width, LayoutMinWidth)
	height = max(height, 5)
	inner := width - 4 // borders and one cell of padding per side
	bodyHeight := height - 2

	bgColor := theme.SurfaceAlt
	bg := NewBgStyle(bgColor)
	styles := theme.Styles().WithBackground(bgColor)

	lines := make([]string, 0, bodyHeight)
	if msg, style, empty := emptyState(v, styles); empty {
		lines = append(lines, "", bg.Render(msg, style))
	} else {
		widths := FitColumns(v.Columns, v.Rows, inner)
		titles := make([]string, len(v.Columns))
		for i, c := range v.Columns {
			titles[i] = strings.ToUpper(c.Title)
		}
		lines = append(lines, renderRow(titles, widths, bg, func(int, string) lipgloss.Style { return styles.ColumnHeader }))

		visible := max(bodyHeight-2, 1) // header and pager lines
		start := 0
		if v.Selected >= visible {
			start = v.Selected - visible + 1
		}
		end := min(len(v.Rows), start+visible)
		selected := NewBgStyle(theme.SelectionBg)
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SelectionText))
		for i := start; i < end; i++ {
			if i == v.Selected {
				row := renderRow(v.Rows[i], widths, selected, func(int, string) lipgloss.Style { return selText })
				lines = append(lines, selected.FillLine(row, inner))
				continue
			}
			lines = append(lines, renderRow(v.Rows[i], widths, bg, func(col int, cell string) lipgloss.Style {
				if col == 0 {
					return styles.FaintText
				}
				if _, ok := theme.StatusColors[strings.ToLower(cell)]; ok {
					return styles.StatusStyle(cell).Background(lipgloss.Color(bgColor))
				}
				return styles.Text
			}))
		}
	}

	for len(lines) < bodyHeight-1 {
		lines = append(lines, "")
	}
	lines = append(lines[:bodyHeight-1], renderPagerLine(v, styles, bg, inner))

	return renderTitledBox(listTitle(v), strings.Join(lines, "\n"), width, height, theme)
}

// emptyState returns the message shown instead of rows, if any.
func emptyState(v listView, styles Styles) (string, lipgloss.Style, bool) {
	name := strings.ToLower(v.Title)
	switch {
	case len(v.Rows) > 0:
		return "", lipgloss.Style{}, false
	case v.Loading && !v.Loaded:
		return "Loading " + name + "…", styles.MutedText, true
	case !v.Loaded && v.Err != nil:
		return "Could not load " + name + ": " + building.UserMessage(v.Err), styles.DangerText, true
	case v.Loaded && !v.Loading:
		if v.Expression != "" {
			return "No " + name + " match " + v.Expression, styles.MutedText, true
		}
		return "No " + name + " yet", styles.MutedText, true
	default:
		return "", lipgloss.Style{}, false
	}
}

func listTitle(v listView) string {
	title := v.Title
	if v.Loaded {
		title = fmt.Sprintf("%s (%d)", title, v.Page.TotalElements)
	}
	switch v.Mode {
	case listing.ModeBasic:
		title += " · search"
	case listing.ModeAdvanced:
		title += " · filtered"
	}
	if v.Loading && v.Loaded {
		title += " · loading…"
	}
	return title
}

func renderRow(cells []string, widths []int, bg BgStyle, style func(col int, cell string) lipgloss.Style) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			b.WriteString(bg.Spaces(ColumnGap))
		}
		b.WriteString(bg.Cell(cell, w, style(i, cell)))
	}
	return b.String()
}

// renderPagerLine renders the page summary on the left and the pager
// window on the right.
func renderPagerLine(v listView, styles Styles, bg BgStyle, width int) string {
	summary := ""
	if v.Loaded && v.Page.TotalElements > 0 {
		first := v.Page.Offset() + 1
		last := v.Page.Offset() + len(v.Rows)
		summary = fmt.Sprintf("%d-%d of %d", first, last, v.Page.TotalElements)
	}
	left := bg.Render(summary, styles.MutedText)
	right := renderPager(v.Window, styles, bg)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + bg.Spaces(gap) + right
}

// renderPager renders the pager labels, marking the current page. It returns
// "" when there is at most one page.
func renderPager(window []listing.PageLabel, styles Styles, bg BgStyle) string {
	if len(window) == 0 {
		return ""
	}
	parts := make([]string, len(window))
	for i, l := range window {
		switch {
		case l.Ellipsis:
			parts[i] = bg.Render("…", styles.FaintText)
		case l.Current:
			parts[i] = bg.Render("["+l.String()+"]", styles.AccentText.Bold(true))
		default:
			parts[i] = bg.Render(l.String(), styles.Text)
		}
	}
	return bg.Join(parts, " ")
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func renderTitledBox(title, content string, width, height int, theme Theme) string {
	bg := NewBgStyle(theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Text))

	innerWidth := width - 2
	title = runewidth.Truncate(title, max(innerWidth-4, 1), "…")
	titleLen := runewidth.StringWidth(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		Padding(0, 1).
		Background(lipgloss.Color(theme.SurfaceAlt))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, top)
	for i := range boxHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}
