package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/concierge/internal/building"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Harbor" || names[1] != "Paper" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Harbor Paper Slate]", names)
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Harbor" {
		t.Fatal("ThemeNames() must return a copy")
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Harbor":  "Paper",
		"Paper":   "Slate",
		"Slate":   "Harbor",
		"Unknown": "Harbor",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", current, got, want)
		}
	}
}

func TestGetThemeFallsBackToHarbor(t *testing.T) {
	if got := GetTheme("Paper").Name; got != "Paper" {
		t.Fatalf("GetTheme(Paper).Name = %q", got)
	}
	if got := GetTheme("Unknown").Name; got != DefaultThemeName {
		t.Fatalf("GetTheme(Unknown).Name = %q, want %s", got, DefaultThemeName)
	}
}

func TestStatusStyle(t *testing.T) {
	th := GetTheme("Slate")
	styles := th.Styles()

	if got := styles.StatusStyle(" Absent ").GetForeground(); got != lipgloss.Color(th.Danger) {
		t.Fatalf("StatusStyle(Absent) foreground = %v, want %s", got, th.Danger)
	}
	if got := styles.StatusStyle("Vacant").GetForeground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("StatusStyle(Vacant) foreground = %v, want %s", got, th.Muted)
	}
	if got := styles.StatusStyle("unknown").GetForeground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("StatusStyle(unknown) foreground = %v, want muted %s", got, th.Muted)
	}
}

func TestEveryThemeColorsEveryStatus(t *testing.T) {
	values := []string{"yes", "no"}
	values = append(values, building.ApartmentStatuses...)
	values = append(values, building.ResidentStatuses...)
	values = append(values, building.VehicleCategories...)
	values = append(values, building.FeeTypes...)
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, v := range values {
			if _, ok := th.StatusColors[strings.ToLower(v)]; !ok {
				t.Fatalf("theme %s has no color for %q", name, v)
			}
		}
	}
}
