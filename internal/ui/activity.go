package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/concierge/internal/logtail"
)

type activityLoadedMsg struct {
	lines []string
	err   error
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, ActivityLines)
		return activityLoadedMsg{lines: logtail.FormatLines(lines), err: err}
	}
}

// activityModal shows the tail of the log file. It follows new lines until
// the user scrolls up.
type activityModal struct {
	path   string
	view   viewport.Model
	err    error
	empty  bool
	follow bool
}

func newActivityModal(path string, width, height int) activityModal {
	w, h := activitySize(width, height)
	return activityModal{path: path, view: viewport.New(w, h), follow: true, empty: true}
}

func activitySize(width, height int) (int, int) {
	return max(width-12, 20), max(height-12, 3)
}

func (a activityModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		a.err = msg.err
		a.empty = len(msg.lines) == 0
		a.view.SetContent(strings.Join(msg.lines, "\n"))
		if a.follow {
			a.view.GotoBottom()
		}
		return a, nil, false
	case tea.WindowSizeMsg:
		a.view.Width, a.view.Height = activitySize(msg.Width, msg.Height)
		return a, nil, false
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Activity):
			return a, nil, true
		case key.Matches(msg, keys.Bottom):
			a.view.GotoBottom()
			a.follow = true
			return a, nil, false
		case key.Matches(msg, keys.Top):
			a.view.GotoTop()
			a.follow = false
			return a, nil, false
		}
	}
	var cmd tea.Cmd
	a.view, cmd = a.view.Update(msg)
	a.follow = a.view.AtBottom()
	return a, cmd, false
}

func (a activityModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var body string
	switch {
	case a.err != nil:
		body = styles.DangerText.Render("Cannot read " + a.path + ": " + a.err.Error())
	case a.empty:
		body = styles.MutedText.Render("No activity logged yet in " + a.path)
	default:
		body = a.view.View()
	}
	status := "following"
	if !a.follow {
		status = "paused"
	}
	body += "\n\n" + styles.FaintText.Render(status+" · j/k scroll · g/G top/bottom · esc close")
	return renderModal("Activity", body, theme, width, height, a.view.Width+6)
}
