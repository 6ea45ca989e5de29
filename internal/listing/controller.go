package listing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
)

// DefaultPageSize is used when a screen does not set one.
const DefaultPageSize = 10

// Config describes one list screen.
type Config struct {
	Resource     string // path segment, e.g. "residents"
	DefaultField string // field the basic keyword searches
	PageSize     int
}

// State is everything a list view needs to render.
type State[T any] struct {
	Items   []T
	Page    Page // page metadata of the displayed result
	Current int  // cursor page; may run ahead of Page.Number while loading
	Loading bool
	Query   Query
	Mode    Mode
	Window  []PageLabel
	Err     error
}

// Controller is the filtered, paginated list controller of one screen. It
// combines a Coordinator, a Cursor and a Fetcher so that every state change
// produces at most one Request.
//
// Methods that return (Request, bool) only issue a request when the bool is
// true. The caller executes it with Fetch, off the UI goroutine if needed,
// and hands the outcome back to Resolve.
type Controller[T any] struct {
	cfg     Config
	lister  Lister[T]
	log     logr.Logger
	coord   Coordinator
	cursor  Cursor
	fetcher *Fetcher[T]
	shown   Query // query of the displayed result
}

// NewController builds a controller for cfg. notifier may be nil.
func NewController[T any](cfg Config, lister Lister[T], notifier Notifier, log logr.Logger) *Controller[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	log = log.WithValues("resource", cfg.Resource)
	return &Controller[T]{
		cfg:     cfg,
		lister:  lister,
		log:     log,
		fetcher: NewFetcher[T](notifier, log),
	}
}

// Config returns the screen configuration.
func (c *Controller[T]) Config() Config { return c.cfg }

// Load fetches the current query and page. Use it for the first fetch.
func (c *Controller[T]) Load() Request {
	return c.issue()
}

// Refresh re-runs the current fetch without touching search or page state.
// Mutations call it instead of rebuilding the screen.
func (c *Controller[T]) Refresh() Request {
	return c.issue()
}

// SubmitKeyword applies a basic search. A changed query resets to page 1.
func (c *Controller[T]) SubmitKeyword(value string) (Request, bool) {
	if !c.coord.SubmitKeyword(value) {
		return Request{}, false
	}
	c.cursor.ResetToFirstPage()
	return c.issue(), true
}

// SubmitFilter applies an advanced filter expression. An empty expression
// clears the filter. An expression equal to the one the active keyword
// already resolves to is not a change.
func (c *Controller[T]) SubmitFilter(expr string) (Request, bool) {
	q := c.coord.Query()
	if q.Kind == QueryKeyword && strings.TrimSpace(expr) == q.Expression(c.cfg.DefaultField) {
		return Request{}, false
	}
	if !c.coord.SubmitFilter(expr) {
		return Request{}, false
	}
	c.cursor.ResetToFirstPage()
	return c.issue(), true
}

// ClearFilter drops the advanced filter.
func (c *Controller[T]) ClearFilter() (Request, bool) {
	if !c.coord.ClearFilter() {
		return Request{}, false
	}
	c.cursor.ResetToFirstPage()
	return c.issue(), true
}

// GoTo jumps to page n if the cursor accepts it.
func (c *Controller[T]) GoTo(n int) (Request, bool) {
	if !c.cursor.GoTo(n) {
		return Request{}, false
	}
	return c.issue(), true
}

// Next moves one page forward.
func (c *Controller[T]) Next() (Request, bool) {
	if !c.cursor.Next() {
		return Request{}, false
	}
	return c.issue(), true
}

// Prev moves one page back.
func (c *Controller[T]) Prev() (Request, bool) {
	if !c.cursor.Prev() {
		return Request{}, false
	}
	return c.issue(), true
}

// Fetch runs req against the lister. It touches no controller state and may
// be called from any goroutine.
func (c *Controller[T]) Fetch(ctx context.Context, req Request) (Result[T], error) {
	if c.lister == nil {
		return Result[T]{}, fmt.Errorf("list %s: no lister configured", c.cfg.Resource)
	}
	return c.lister.List(ctx, req)
}

// Resolve hands a response back. When an applied result reports fewer pages
// than the cursor is on, the cursor moves to the new last page and a
// follow-up request is returned. A failed page move puts the cursor back on
// the displayed page.
func (c *Controller[T]) Resolve(req Request, res Result[T], err error) (Outcome, *Request) {
	outcome := c.fetcher.Resolve(req, res, err)
	if outcome == OutcomeFailed {
		c.restorePage(req)
	}
	if outcome != OutcomeApplied {
		return outcome, nil
	}
	c.shown = req.Query

	c.cursor.SetTotals(res.Page.TotalPages, res.Page.TotalElements)
	last := max(res.Page.TotalPages, 1)
	if c.cursor.Number() <= last {
		return outcome, nil
	}

	c.log.V(1).Info("page out of range after fetch, moving to last page", "page", c.cursor.Number(), "totalPages", res.Page.TotalPages)
	if last == 1 {
		c.cursor.ResetToFirstPage()
	} else {
		c.cursor.GoTo(last)
	}
	follow := c.issue()
	return outcome, &follow
}

// ReadLocation positions the cursor from loc's page parameter. Call it
// before Load when opening a screen from a saved or typed location.
func (c *Controller[T]) ReadLocation(loc *url.URL) {
	c.cursor.ReadLocation(loc)
}

// Location returns the navigable location of the screen, e.g.
// /residents?page=2.
func (c *Controller[T]) Location() *url.URL {
	loc := &url.URL{Path: "/" + c.cfg.Resource}
	c.cursor.WriteLocation(loc)
	return loc
}

// State snapshots the controller for rendering.
func (c *Controller[T]) State() State[T] {
	res := c.fetcher.Result()
	return State[T]{
		Items:   res.Items,
		Page:    res.Page,
		Current: c.cursor.Number(),
		Loading: c.fetcher.Loading(),
		Query:   c.coord.Query(),
		Mode:    c.coord.Mode(),
		Window:  c.cursor.Window(),
		Err:     c.fetcher.Err(),
	}
}

// Keyword returns the active basic keyword.
func (c *Controller[T]) Keyword() string { return c.coord.Keyword() }

// Expression returns the active advanced filter expression.
func (c *Controller[T]) Expression() string { return c.coord.Expression() }

// restorePage moves the cursor back to the page on screen after a failed
// fetch of the same query.
func (c *Controller[T]) restorePage(req Request) {
	shown := c.fetcher.Result().Page.Number
	if shown < 1 || req.Query != c.shown || req.Page == shown {
		return
	}
	c.log.V(1).Info("page fetch failed, keeping displayed page", "page", req.Page, "displayed", shown)
	if shown == 1 {
		c.cursor.ResetToFirstPage()
	} else {
		c.cursor.GoTo(shown)
	}
}

func (c *Controller[T]) issue() Request {
	q := c.coord.Query()
	req := c.fetcher.Begin(q, q.Expression(c.cfg.DefaultField), c.cursor.Number(), c.cfg.PageSize)
	c.log.V(1).Info("issuing list fetch", "seq", req.Seq, "page", req.Page, "size", req.Size, "filter", req.Filter)
	return req
}
