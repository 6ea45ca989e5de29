package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
)

// renderHeader renders the logo, the screen tabs and the overview counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("concierge", styles.Logo)}

	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		label := strconv.Itoa(i+1) + " " + s.Info().Title
		if compact {
			label = strconv.Itoa(i+1) + " " + strings.ToLower(s.Info().Title[:3])
		}
		if i == m.active {
			tabs[i] = bg.Render("["+label+"]", styles.AccentText.Bold(true))
		} else {
			tabs[i] = bg.Render(label, styles.MutedText)
		}
	}
	parts = append(parts, bg.Join(tabs, " "))

	if status := m.overviewStatus(compact, styles, bg); status != "" {
		parts = append(parts, status)
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// overviewStatus renders the dashboard counts and the backend health.
func (m Model) overviewStatus(compact bool, styles Styles, bg BgStyle) string {
	snap := m.snapshot
	if !snap.HasOverview {
		if snap.LastError != nil {
			return bg.Render("OFFLINE", styles.DangerText) + bg.Space() +
				bg.Render(truncate(building.UserMessage(snap.LastError), 40), styles.MutedText)
		}
		return bg.Render("Connecting…", styles.WarningText.Bold(true))
	}

	var parts []string
	if !compact {
		ov := snap.Overview
		counts := []struct {
			label string
			n     int
		}{
			{"Apartments", ov.Apartments},
			{"Residents", ov.Residents},
			{"Vehicles", ov.Vehicles},
			{"Invoices", ov.Invoices},
		}
		for _, c := range counts {
			parts = append(parts, bg.Render(c.label+":", styles.MutedText)+bg.Space()+bg.Render(strconv.Itoa(c.n), styles.Text))
		}
	}
	if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.FaintText))
	}
	if snap.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	}
	return bg.Join(parts, "  ")
}

// formatTimestamp renders t as a clock time with a relative age.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	s := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		s += " (now)"
	case since < time.Hour:
		s += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		s += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return s
}

// renderCommandBar renders the key hints and the active search.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"f", "Filter"},
		{"h/l", "Page"},
		{":", "Go to"},
		{"r", "Refresh"},
		{"x", "Delete"},
	}
	if m.width >= LayoutCompactWidth {
		commands = append(commands, cmd{"a", "Activity"}, cmd{"tab", "Screen"})
	}
	commands = append(commands, cmd{"?", "More"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if s := m.current(); s != nil {
		switch v := s.Snapshot(); v.Mode {
		case listing.ModeBasic:
			segments = append(segments, bg.Render("/"+truncate(s.Keyword(), 24), styles.AccentText))
		case listing.ModeAdvanced:
			segments = append(segments, bg.Render("filter "+truncate(v.Expression, 48), styles.WarningText)+
				bg.Space()+bg.Render("(c clears)", styles.FaintText))
		}
	}
	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

// renderNotice renders the newest live notification, or an empty bar.
func (m Model) renderNotice() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	text := ""
	if n, ok := m.notices.Current(); ok {
		style := styles.SuccessText
		if n.level == noticeError {
			style = styles.DangerText
		}
		text = bg.Render(truncate(n.text, max(m.width-4, 10)), style)
	}
	return styles.Footer.Width(m.width).Render(text)
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
