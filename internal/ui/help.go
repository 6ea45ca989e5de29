package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections groups the key map for the help overlay.
func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{"Screens", []key.Binding{k.NextScreen, k.PrevScreen, k.Screen}},
		{"Rows", []key.Binding{k.Up, k.Down, k.Top, k.Bottom}},
		{"Pages", []key.Binding{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.GoToPage}},
		{"Search", []key.Binding{k.Search, k.Filter, k.ClearFilter}},
		{"Records", []key.Binding{k.Refresh, k.Delete}},
		{"General", []key.Binding{k.Activity, k.CycleTheme, k.Help, k.Quit}},
	}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	var b strings.Builder
	sections := m.keys.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Theme: " + m.theme.Name + " · any key closes"))
	return renderModal("Keyboard Shortcuts", b.String(), m.theme, m.width, m.height, 44)
}
