package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/filter"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// inputCursorMode is the cursor mode of every modal text input.
var inputCursorMode = cursor.CursorBlink

func newTextInput() textinput.Model {
	in := textinput.New()
	_ = in.Cursor.SetMode(inputCursorMode)
	return in
}

// Messages emitted by modals when they are submitted.
type keywordSubmittedMsg struct{ value string }

type filterSubmittedMsg struct {
	resource string
	expr     string
}

type pageSubmittedMsg struct{ page int }

type invalidPageMsg struct{ input string }

type deleteConfirmedMsg struct{ resource, id string }

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// renderModal centers a bordered dialog over the screen.
func renderModal(title, body string, theme Theme, width, height, modalWidth int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(modalWidth-6, 10))))
	b.WriteString("\n\n")
	b.WriteString(body)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// promptModal is a single-line input: the basic search and the page jump.
type promptModal struct {
	title  string
	hint   string
	input  textinput.Model
	submit func(value string) tea.Msg
}

func newPromptModal(title, hint, placeholder, value string, submit func(string) tea.Msg) promptModal {
	in := newTextInput()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 40
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return promptModal{title: title, hint: hint, input: in, submit: submit}
}

// newSearchModal edits the basic keyword of a screen.
func newSearchModal(info building.Info, keyword string) promptModal {
	hint := "Matches " + info.DefaultField + " containing the text. Empty clears the search."
	return newPromptModal("Search "+strings.ToLower(info.Title), hint, "keyword", keyword, func(v string) tea.Msg {
		return keywordSubmittedMsg{value: v}
	})
}

// newPageModal asks for a page number.
func newPageModal(current, total int) promptModal {
	hint := "Page 1-" + strconv.Itoa(max(total, 1))
	return newPromptModal("Go to page", hint, strconv.Itoa(current), "", func(v string) tea.Msg {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return invalidPageMsg{input: v}
		}
		return pageSubmittedMsg{page: n}
	})
}

func (p promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			return p, emit(p.submit(p.input.Value())), true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := p.input.View() + "\n\n" + styles.MutedText.Render(p.hint)
	return renderModal(p.title, body, theme, width, height, 56)
}

// filterModal is the advanced filter form of a screen, one input per schema
// field. Submitting builds a conjunctive expression; all-blank clears it.
type filterModal struct {
	info    building.Info
	inputs  []textinput.Model
	focus   int
	dropped []string // clauses of the current expression the form cannot show
}

func newFilterModal(info building.Info, expr string) filterModal {
	values := map[string]string{}
	var dropped []string
	if clauses, err := filter.Parse(expr); err == nil {
		for _, c := range clauses {
			if f, ok := info.Schema.Lookup(c.Field); ok && f.Match == c.Match && values[c.Field] == "" {
				values[c.Field] = c.Value
				continue
			}
			dropped = append(dropped, c.String())
		}
	} else if strings.TrimSpace(expr) != "" {
		dropped = append(dropped, expr)
	}

	inputs := make([]textinput.Model, len(info.Schema))
	for i, f := range info.Schema {
		in := newTextInput()
		in.CharLimit = 80
		in.Width = 30
		in.Placeholder = f.Placeholder
		if in.Placeholder == "" && len(f.Options) > 0 {
			in.Placeholder = strings.Join(f.Options, " | ")
		}
		in.SetValue(values[f.Name])
		inputs[i] = in
	}
	m := filterModal{info: info, inputs: inputs, dropped: dropped}
	m.setFocus(0)
	return m
}

func (m *filterModal) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// Values returns the raw form values keyed by field name.
func (m filterModal) Values() map[string]string {
	values := make(map[string]string, len(m.inputs))
	for i, f := range m.info.Schema {
		values[f.Name] = m.inputs[i].Value()
	}
	return values
}

func (m filterModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return m, nil, true
		case key.Matches(km, keys.Confirm):
			expr := m.info.Schema.Build(m.Values())
			return m, emit(filterSubmittedMsg{resource: m.info.Name, expr: expr}), true
		case key.Matches(km, keys.NextField):
			m.setFocus(m.focus + 1)
			return m, nil, false
		case key.Matches(km, keys.PrevField):
			m.setFocus(m.focus - 1)
			return m, nil, false
		case key.Matches(km, keys.ResetFields):
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			m.dropped = nil
			return m, nil, false
		}
	}
	if len(m.inputs) == 0 {
		return m, nil, false
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

func (m filterModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labelWidth := 0
	for _, f := range m.info.Schema {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	labelWidth += 2

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("Leave a field blank to ignore it. Fields are combined with \"and\"."))
	b.WriteString("\n\n")
	for i, f := range m.info.Schema {
		label := lipgloss.NewStyle().Width(labelWidth).Render(f.Label + ":")
		if i == m.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(f.Match.String()))
		b.WriteString("\n")
		if len(f.Options) > 0 && i == m.focus {
			b.WriteString(strings.Repeat(" ", labelWidth))
			b.WriteString(styles.FaintText.Render("one of " + strings.Join(f.Options, ", ")))
			b.WriteString("\n")
		}
	}
	if len(m.dropped) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Not editable here, dropped on apply: " + strings.Join(m.dropped, " and ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter apply · tab next · ctrl+r reset · esc cancel"))
	return renderModal("Filter "+strings.ToLower(m.info.Title), b.String(), theme, width, height, 72)
}

// confirmModal asks before deleting a row.
type confirmModal struct {
	resource string
	id       string
	label    string
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes):
		return c, emit(deleteConfirmedMsg{resource: c.resource, id: c.id}), true
	case key.Matches(km, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render("Delete "+strings.TrimSuffix(c.resource, "s")+" "+c.label+"?") +
		"\n\n" + styles.DangerText.Render("y") + styles.MutedText.Render(" delete   ") +
		styles.AccentText.Render("n") + styles.MutedText.Render(" cancel")
	return renderModal("Confirm delete", body, theme, width, height, 48)
}
