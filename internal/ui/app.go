package ui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
	"github.com/five82/concierge/internal/prefs"
	"github.com/five82/concierge/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *building.Client
	Store     *state.Store
	Logger    logr.Logger
	PageSize  int
	Route     string // initial screen, e.g. /residents?page=2
	ThemeName string
	PrefsPath string
	LogFile   string // shown by the activity overlay
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	log       logr.Logger
	prefsPath string
	logFile   string
	tick      time.Duration
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal

	// Screens
	screens []screen
	started []bool
	active  int
	notices *noticeBoard

	// Overview
	snapshot state.Snapshot
	updates  <-chan struct{}
}

// New creates the model with one list screen per building resource.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	notices := newNoticeBoard()
	log := opts.Logger.WithName("ui")

	var del deleter
	if opts.Client != nil {
		del = opts.Client
	}
	screens := []screen{
		newResourceScreen(ctx, opts.Client, del, building.Apartments, opts.PageSize, notices, log),
		newResourceScreen(ctx, opts.Client, del, building.Residents, opts.PageSize, notices, log),
		newResourceScreen(ctx, opts.Client, del, building.Vehicles, opts.PageSize, notices, log),
		newResourceScreen(ctx, opts.Client, del, building.Fees, opts.PageSize, notices, log),
		newResourceScreen(ctx, opts.Client, del, building.Invoices, opts.PageSize, notices, log),
	}
	return newModel(opts, screens, notices)
}

func newResourceScreen[T any](ctx context.Context, client *building.Client, del deleter, res building.Resource[T], pageSize int, notices *noticeBoard, log logr.Logger) screen {
	var lister listing.Lister[T]
	if client != nil {
		lister = building.NewLister[T](client, res.Name)
	}
	return newListScreen(ctx, res, lister, del, pageSize, notices.Notifier(res.Title), log)
}

// newModel assembles a model around prepared screens.
func newModel(opts Options, screens []screen, notices *noticeBoard) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		log:       opts.Logger.WithName("ui"),
		prefsPath: prefsPath,
		logFile:   opts.LogFile,
		tick:      tick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		screens:   screens,
		started:   make([]bool, len(screens)),
		notices:   notices,
	}
	if m.store != nil {
		m.updates = m.store.Subscribe()
	}

	if info, loc, ok := parseRoute(opts.Route); ok {
		for i, s := range screens {
			if s.Info().Name == info.Name {
				m.active = i
				s.ReadLocation(loc)
			}
		}
	} else if opts.Route != "" {
		m.log.Info("ignoring unknown route", "route", opts.Route)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, snapshotCmd(m.store), waitForSnapshot(m.ctx, m.store, m.updates))
	}
	if s := m.current(); s != nil {
		m.started[m.active] = true
		cmds = append(cmds, s.Load())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m.updateModal(msg)

	case tickMsg:
		m.notices.Expire()
		cmds := []tea.Cmd{tickCmd(m.tick)}
		if _, ok := m.modal.(activityModal); ok {
			cmds = append(cmds, loadActivityCmd(m.logFile))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = msg.snapshot
		if msg.subscribed {
			return m, waitForSnapshot(m.ctx, m.store, m.updates)
		}
		return m, nil

	case fetchedMsg:
		return m, msg.apply()

	case deletedMsg:
		if msg.err != nil {
			m.notices.Error("Delete failed: " + building.UserMessage(msg.err))
			return m, nil
		}
		m.log.Info("record deleted", "resource", msg.resource, "id", msg.id)
		m.notices.Info("Deleted " + msg.label)
		if s := m.screenByName(msg.resource); s != nil {
			return m, s.Refresh()
		}
		return m, nil

	case keywordSubmittedMsg:
		return m, m.afterQuery(m.current().SubmitKeyword(msg.value))

	case filterSubmittedMsg:
		if s := m.screenByName(msg.resource); s != nil {
			return m, m.afterQuery(s.SubmitFilter(msg.expr))
		}
		return m, nil

	case pageSubmittedMsg:
		cmd := m.current().GoToPage(msg.page)
		if cmd == nil && msg.page != m.current().Snapshot().Current {
			m.notices.Error("No page " + strconv.Itoa(msg.page))
		}
		return m, m.afterQuery(cmd)

	case invalidPageMsg:
		m.notices.Error("Not a page number: " + msg.input)
		return m, nil

	case deleteConfirmedMsg:
		if s := m.screenByName(msg.resource); s != nil {
			return m, s.Delete(msg.id)
		}
		return m, nil

	}

	return m.updateModal(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	listHeight := max(m.height-headerLines-footerLines, 5)
	body := ""
	if s := m.current(); s != nil {
		body = renderListView(s.Snapshot(), m.theme, m.width, listHeight)
	}
	return m.renderHeader() + "\n" +
		m.renderCommandBar() + "\n" +
		body + "\n" +
		m.renderNotice()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}

	s := m.current()
	if s == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, m.keys.NextScreen):
		return m, m.cycleScreen(1)
	case key.Matches(msg, m.keys.PrevScreen):
		return m, m.cycleScreen(-1)
	case key.Matches(msg, m.keys.Screen):
		n, _ := strconv.Atoi(msg.String())
		return m, m.switchTo(n - 1)
	case key.Matches(msg, m.keys.Activity):
		m.modal = newActivityModal(m.logFile, m.width, m.height)
		return m, loadActivityCmd(m.logFile)

	case key.Matches(msg, m.keys.Up):
		s.Move(-1)
	case key.Matches(msg, m.keys.Down):
		s.Move(1)
	case key.Matches(msg, m.keys.Top):
		s.MoveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		s.MoveTo(-1)

	case key.Matches(msg, m.keys.NextPage):
		return m, m.afterQuery(s.NextPage())
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.afterQuery(s.PrevPage())
	case key.Matches(msg, m.keys.FirstPage):
		return m, m.afterQuery(s.GoToPage(1))
	case key.Matches(msg, m.keys.LastPage):
		return m, m.afterQuery(s.LastPage())
	case key.Matches(msg, m.keys.GoToPage):
		v := s.Snapshot()
		m.modal = newPageModal(v.Current, v.Page.TotalPages)

	case key.Matches(msg, m.keys.Search):
		m.modal = newSearchModal(s.Info(), s.Keyword())
	case key.Matches(msg, m.keys.Filter):
		m.modal = newFilterModal(s.Info(), s.Snapshot().Expression)
	case key.Matches(msg, m.keys.ClearFilter):
		return m, m.afterQuery(s.ClearFilter())

	case key.Matches(msg, m.keys.Refresh):
		return m, s.Refresh()
	case key.Matches(msg, m.keys.Delete):
		if id, label, ok := s.Selected(); ok {
			m.modal = confirmModal{resource: s.Info().Name, id: id, label: label}
		}
	}
	return m, nil
}

// updateModal forwards msg to the open modal, if any.
func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal == nil {
		return m, nil
	}
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = next
	}
	return m, cmd
}

// afterQuery records the new location once a screen issued a fetch.
func (m *Model) afterQuery(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		m.savePrefs()
	}
	return cmd
}

// cycleScreen moves delta screens from the active one, wrapping around.
func (m *Model) cycleScreen(delta int) tea.Cmd {
	n := len(m.screens)
	if n == 0 {
		return nil
	}
	return m.switchTo(((m.active+delta)%n + n) % n)
}

// switchTo activates screen i and loads it on first use. Out of range
// indexes are ignored.
func (m *Model) switchTo(i int) tea.Cmd {
	if i < 0 || i >= len(m.screens) {
		return nil
	}
	if i == m.active && m.started[i] {
		return nil
	}
	m.active = i
	m.savePrefs()
	if m.started[i] {
		return nil
	}
	m.started[i] = true
	return m.current().Load()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.savePrefs()
	return m, tea.Quit
}

// savePrefs persists the theme and the current location.
func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name}
	if s := m.current(); s != nil {
		p.LastRoute = s.Location()
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.V(1).Info("saving preferences failed", "error", err.Error())
	}
}

func (m Model) current() screen {
	if m.active < 0 || m.active >= len(m.screens) {
		return nil
	}
	return m.screens[m.active]
}

func (m Model) screenByName(name string) screen {
	for _, s := range m.screens {
		if s.Info().Name == name {
			return s
		}
	}
	return nil
}

// Messages

type tickMsg time.Time

// snapshotMsg delivers the overview. subscribed marks deliveries triggered
// by the store, which re-arm the subscription.
type snapshotMsg struct {
	snapshot   state.Snapshot
	subscribed bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snapshot: store.Snapshot()}
	}
}

// waitForSnapshot blocks until the poller publishes and then delivers the
// new snapshot.
func waitForSnapshot(ctx context.Context, store *state.Store, updates <-chan struct{}) tea.Cmd {
	if store == nil || updates == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			return snapshotMsg{snapshot: store.Snapshot(), subscribed: true}
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	if opts.Context != nil && opts.Context.Err() != nil && err != nil {
		return nil
	}
	return err
}
