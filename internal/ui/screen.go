package ui

import (
	"context"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
)

// deleter removes one record of a resource.
type deleter interface {
	Delete(ctx context.Context, resource, id string) error
}

// screen is one list screen of the dashboard. Every method runs on the
// Update goroutine; network calls are returned as commands.
type screen interface {
	Info() building.Info

	Load() tea.Cmd
	Refresh() tea.Cmd
	SubmitKeyword(value string) tea.Cmd
	SubmitFilter(expr string) tea.Cmd
	ClearFilter() tea.Cmd
	NextPage() tea.Cmd
	PrevPage() tea.Cmd
	GoToPage(n int) tea.Cmd
	LastPage() tea.Cmd

	ReadLocation(loc *url.URL)
	Location() string
	Keyword() string

	Move(delta int)
	MoveTo(row int)
	Selected() (id, label string, ok bool)
	Delete(id string) tea.Cmd

	Snapshot() listView
}

// fetchedMsg carries a finished list fetch back to Update. apply resolves it
// against the owning controller and returns any follow-up fetch.
type fetchedMsg struct {
	resource string
	seq      uint64
	apply    func() tea.Cmd
}

// deletedMsg reports the outcome of a delete.
type deletedMsg struct {
	resource string
	id       string
	label    string
	err      error
}

// listScreen adapts a listing.Controller for one resource type to screen.
type listScreen[T any] struct {
	ctx     context.Context
	res     building.Resource[T]
	ctrl    *listing.Controller[T]
	deleter deleter
	log     logr.Logger

	row    int
	loaded bool
}

func newListScreen[T any](ctx context.Context, res building.Resource[T], lister listing.Lister[T], del deleter, pageSize int, notifier listing.Notifier, log logr.Logger) *listScreen[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := listing.Config{Resource: res.Name, DefaultField: res.DefaultField, PageSize: pageSize}
	return &listScreen[T]{
		ctx:     ctx,
		res:     res,
		ctrl:    listing.NewController[T](cfg, lister, notifier, log),
		deleter: del,
		log:     log.WithValues("screen", res.Name),
	}
}

func (s *listScreen[T]) Info() building.Info { return s.res.Info }

func (s *listScreen[T]) Load() tea.Cmd {
	return s.fetch(s.ctrl.Load())
}

// Refresh re-runs the current fetch. The selected row is kept when it still
// exists after the reload.
func (s *listScreen[T]) Refresh() tea.Cmd {
	return s.fetch(s.ctrl.Refresh())
}

func (s *listScreen[T]) SubmitKeyword(value string) tea.Cmd {
	return s.issue(s.ctrl.SubmitKeyword(value))
}

func (s *listScreen[T]) SubmitFilter(expr string) tea.Cmd {
	return s.issue(s.ctrl.SubmitFilter(expr))
}

func (s *listScreen[T]) ClearFilter() tea.Cmd {
	return s.issue(s.ctrl.ClearFilter())
}

func (s *listScreen[T]) NextPage() tea.Cmd {
	return s.issue(s.ctrl.Next())
}

func (s *listScreen[T]) PrevPage() tea.Cmd {
	return s.issue(s.ctrl.Prev())
}

func (s *listScreen[T]) GoToPage(n int) tea.Cmd {
	return s.issue(s.ctrl.GoTo(n))
}

func (s *listScreen[T]) LastPage() tea.Cmd {
	total := s.ctrl.State().Page.TotalPages
	if total < 1 {
		return nil
	}
	return s.issue(s.ctrl.GoTo(total))
}

func (s *listScreen[T]) ReadLocation(loc *url.URL) { s.ctrl.ReadLocation(loc) }

func (s *listScreen[T]) Location() string { return s.ctrl.Location().String() }

func (s *listScreen[T]) Keyword() string { return s.ctrl.Keyword() }

func (s *listScreen[T]) Move(delta int) {
	s.row += delta
	s.clampRow()
}

// MoveTo selects row; a negative row selects the last one.
func (s *listScreen[T]) MoveTo(row int) {
	if row < 0 {
		row = len(s.ctrl.State().Items) - 1
	}
	s.row = row
	s.clampRow()
}

func (s *listScreen[T]) Selected() (id, label string, ok bool) {
	items := s.ctrl.State().Items
	if s.row < 0 || s.row >= len(items) {
		return "", "", false
	}
	item := items[s.row]
	id = s.res.ID(item)
	cells := s.res.Row(item)
	label = id
	if len(cells) > 1 && cells[1] != "" && cells[1] != id {
		label = id + " " + cells[1]
	}
	return id, label, true
}

func (s *listScreen[T]) Delete(id string) tea.Cmd {
	if s.deleter == nil || id == "" {
		return nil
	}
	_, label, _ := s.Selected()
	ctx, del, name := s.ctx, s.deleter, s.res.Name
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		return deletedMsg{resource: name, id: id, label: label, err: del.Delete(ctx, name, id)}
	}
}

// Snapshot renders the controller state into table rows. The first column
// numbers rows across pages.
func (s *listScreen[T]) Snapshot() listView {
	st := s.ctrl.State()
	rows := make([][]string, len(st.Items))
	for i, item := range st.Items {
		rows[i] = append([]string{strconv.Itoa(st.Page.Offset() + i + 1)}, s.res.Row(item)...)
	}
	return listView{
		Title:      s.res.Title,
		Columns:    append([]building.Column{{Title: "#", Width: 3}}, s.res.Columns...),
		Rows:       rows,
		Selected:   s.row,
		Loading:    st.Loading,
		Loaded:     s.loaded,
		Page:       st.Page,
		Current:    st.Current,
		Window:     st.Window,
		Mode:       st.Mode,
		Expression: st.Query.Expression(s.res.DefaultField),
		Err:        st.Err,
	}
}

// issue turns a controller transition into a fetch. Query and page changes
// move the selection back to the first row.
func (s *listScreen[T]) issue(req listing.Request, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	s.row = 0
	return s.fetch(req)
}

func (s *listScreen[T]) fetch(req listing.Request) tea.Cmd {
	ctx, ctrl, name := s.ctx, s.ctrl, s.res.Name
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		res, err := ctrl.Fetch(ctx, req)
		return fetchedMsg{
			resource: name,
			seq:      req.Seq,
			apply:    func() tea.Cmd { return s.resolve(req, res, err) },
		}
	}
}

func (s *listScreen[T]) resolve(req listing.Request, res listing.Result[T], err error) tea.Cmd {
	outcome, follow := s.ctrl.Resolve(req, res, err)
	if outcome == listing.OutcomeApplied {
		s.loaded = true
		s.clampRow()
	}
	if follow != nil {
		return s.fetch(*follow)
	}
	return nil
}

func (s *listScreen[T]) clampRow() {
	n := len(s.ctrl.State().Items)
	s.row = min(s.row, n-1)
	s.row = max(s.row, 0)
}
