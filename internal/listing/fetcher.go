package listing

import (
	"context"

	"github.com/go-logr/logr"
)

// Notifier receives fetch failures that should reach the user.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(err error)

// Notify calls f(err).
func (f NotifierFunc) Notify(err error) { f(err) }

// Request is one outgoing list fetch. Seq increases monotonically per
// fetcher; only the response to the latest Seq is applied.
type Request struct {
	Seq    uint64
	Query  Query
	Filter string
	Page   int
	Size   int
}

// Lister performs the actual list call for a request.
type Lister[T any] interface {
	List(ctx context.Context, req Request) (Result[T], error)
}

// ListerFunc adapts a function to Lister.
type ListerFunc[T any] func(ctx context.Context, req Request) (Result[T], error)

// List calls f(ctx, req).
func (f ListerFunc[T]) List(ctx context.Context, req Request) (Result[T], error) {
	return f(ctx, req)
}

// Outcome says what Resolve did with a response.
type Outcome int

const (
	// OutcomeApplied means the result replaced the displayed page.
	OutcomeApplied Outcome = iota
	// OutcomeFailed means the latest request failed; the old page stays.
	OutcomeFailed
	// OutcomeStale means a newer request was issued; the response was dropped.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	default:
		return "stale"
	}
}

// Fetcher holds the last-known-good result of a screen and decides which
// responses may replace it. It does not perform I/O itself.
//
// Fetcher is not safe for concurrent use; it belongs to the goroutine that
// drives the screen.
type Fetcher[T any] struct {
	notifier Notifier
	log      logr.Logger

	seq     uint64
	pending bool
	result  Result[T]
	lastErr error
}

// NewFetcher builds a fetcher reporting failures to notifier, which may be nil.
func NewFetcher[T any](notifier Notifier, log logr.Logger) *Fetcher[T] {
	return &Fetcher[T]{notifier: notifier, log: log}
}

// Begin issues a new request and enters the loading state. The previous
// result stays visible until a response is applied.
func (f *Fetcher[T]) Begin(q Query, expr string, page, size int) Request {
	f.seq++
	f.pending = true
	return Request{Seq: f.seq, Query: q, Filter: expr, Page: page, Size: size}
}

// Resolve applies the response to req if req is the latest request issued.
// On failure the displayed result is kept and the notifier is called once.
func (f *Fetcher[T]) Resolve(req Request, res Result[T], err error) Outcome {
	if req.Seq != f.seq || !f.pending {
		f.log.V(1).Info("discarding stale list response", "seq", req.Seq, "latest", f.seq, "failed", err != nil)
		return OutcomeStale
	}
	f.pending = false

	if err != nil {
		f.lastErr = err
		f.log.Error(err, "list fetch failed", "seq", req.Seq, "page", req.Page, "filter", req.Filter)
		if f.notifier != nil {
			f.notifier.Notify(err)
		}
		return OutcomeFailed
	}

	items := make([]T, len(res.Items))
	copy(items, res.Items)
	f.result = Result[T]{Items: items, Page: res.Page}
	f.lastErr = nil
	return OutcomeApplied
}

// Loading reports whether the latest request is still outstanding.
func (f *Fetcher[T]) Loading() bool { return f.pending }

// Result returns the last applied result.
func (f *Fetcher[T]) Result() Result[T] { return f.result }

// Err returns the error of the latest request, if it failed.
func (f *Fetcher[T]) Err() error { return f.lastErr }

// Latest returns the sequence number of the most recent request.
func (f *Fetcher[T]) Latest() uint64 { return f.seq }
