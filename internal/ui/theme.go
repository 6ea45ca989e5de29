package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar and footer
	SurfaceAlt string // List pane
	FocusBg    string // Modals and the active input

	// Table colors
	SelectionBg   string
	SelectionText string
	HeaderText    string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors maps lower-case status, category and fee type values to
	// badge colors.
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		ColumnHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HeaderText)).
			Bold(true),

		statusColors: t.StatusColors,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header       lipgloss.Style
	Footer       lipgloss.Style
	Logo         lipgloss.Style
	Selected     lipgloss.Style
	ColumnHeader lipgloss.Style

	statusColors map[string]string
	muted        string
}

// StatusStyle returns the foreground style for a status value. Unknown
// values use the muted color.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// WithBackground returns a copy of Styles whose text styles carry bgColor.
// Styled segments otherwise reset to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	out.ColumnHeader = s.ColumnHeader.Background(bg)
	return out
}

// DefaultThemeName is used when no preference is stored.
const DefaultThemeName = "Harbor"

var themes = map[string]Theme{
	"Harbor": harborTheme(),
	"Paper":  paperTheme(),
	"Slate":  slateTheme(),
}

var themeOrder = []string{"Harbor", "Paper", "Slate"}

// GetTheme returns a theme by name, falling back to Harbor.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return harborTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// statusPalette assigns the semantic colors of a theme to the values the
// backend reports.
func statusPalette(success, warning, danger, info, accent, muted string) map[string]string {
	return map[string]string{
		// apartments
		"residential": success,
		"business":    info,
		"vacant":      muted,
		// residents
		"resident":  success,
		"temporary": warning,
		"absent":    danger,
		// vehicles
		"car":       accent,
		"motorbike": info,
		// fees
		"department_fee":    accent,
		"contribution_fund": warning,
		// invoices
		"yes": success,
		"no":  muted,
	}
}

func harborTheme() Theme {
	t := Theme{
		Name: "Harbor",

		Background: "#0b1621",
		Surface:    "#10212f",
		SurfaceAlt: "#142a3b",
		FocusBg:    "#1b3850",

		SelectionBg:   "#1f5673",
		SelectionText: "#e8f1f5",
		HeaderText:    "#8fb8cc",

		Border:      "#2a4a61",
		BorderFocus: "#4fb3d9",

		Text:    "#dbe7ee",
		Muted:   "#7f98a8",
		Faint:   "#5b7384",
		Accent:  "#4fb3d9",
		Success: "#6cc38f",
		Warning: "#e4b95b",
		Danger:  "#e0676f",
		Info:    "#7fd1c7",
	}
	t.StatusColors = statusPalette(t.Success, t.Warning, t.Danger, t.Info, t.Accent, t.Muted)
	return t
}

func paperTheme() Theme {
	t := Theme{
		Name: "Paper",

		Background: "#f7f5f0",
		Surface:    "#ece8df",
		SurfaceAlt: "#fbfaf7",
		FocusBg:    "#e3ded2",

		SelectionBg:   "#2d5f8b",
		SelectionText: "#ffffff",
		HeaderText:    "#4a5a68",

		Border:      "#c9c2b3",
		BorderFocus: "#2d5f8b",

		Text:    "#2b2b2b",
		Muted:   "#6b6b6b",
		Faint:   "#9a958a",
		Accent:  "#2d5f8b",
		Success: "#2f7d4f",
		Warning: "#a86b00",
		Danger:  "#b3261e",
		Info:    "#1f7a80",
	}
	t.StatusColors = statusPalette(t.Success, t.Warning, t.Danger, t.Info, t.Accent, t.Muted)
	return t
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	t := Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		HeaderText:    "#94a3b8", // slate-400

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
	t.StatusColors = statusPalette(t.Success, t.Warning, t.Danger, t.Info, t.Accent, t.Muted)
	return t
}
