package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves fixed totals and records every request it sees.
type fakeBackend struct {
	totalElements int
	err           error
	requests      []Request
}

func (b *fakeBackend) List(_ context.Context, req Request) (Result[string], error) {
	b.requests = append(b.requests, req)
	if b.err != nil {
		return Result[string]{}, b.err
	}
	totalPages := (b.totalElements + req.Size - 1) / req.Size
	var items []string
	for i := (req.Page - 1) * req.Size; i < min(req.Page*req.Size, b.totalElements); i++ {
		items = append(items, fmt.Sprintf("row-%d", i+1))
	}
	return Result[string]{
		Items: items,
		Page:  Page{Number: req.Page, Size: req.Size, TotalPages: totalPages, TotalElements: b.totalElements},
	}, nil
}

func newTestController(b *fakeBackend, n Notifier) *Controller[string] {
	return NewController[string](Config{Resource: "residents", DefaultField: "name"}, b, n, logr.Discard())
}

// run executes req synchronously and follows any follow-up request.
func run(t *testing.T, c *Controller[string], req Request) Outcome {
	t.Helper()
	for {
		res, err := c.Fetch(context.Background(), req)
		out, follow := c.Resolve(req, res, err)
		if follow == nil {
			return out
		}
		req = *follow
	}
}

func TestControllerKeywordSearchFlow(t *testing.T) {
	b := &fakeBackend{totalElements: 23}
	c := newTestController(b, nil)

	req, ok := c.SubmitKeyword("an")
	require.True(t, ok)
	assert.Equal(t, "name~'*an*'", req.Filter)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, DefaultPageSize, req.Size)
	assert.True(t, c.State().Loading)

	require.Equal(t, OutcomeApplied, run(t, c, req))

	st := c.State()
	assert.False(t, st.Loading)
	assert.Equal(t, ModeBasic, st.Mode)
	assert.Len(t, st.Items, 10)
	assert.Equal(t, 23, st.Page.TotalElements)
	assert.Equal(t, 3, st.Page.TotalPages)
	assert.Equal(t, []string{"1", "2", "3"}, Labels(st.Window))
}

func TestControllerQueryChangeResetsPage(t *testing.T) {
	b := &fakeBackend{totalElements: 23}
	c := newTestController(b, nil)
	run(t, c, c.Load())

	req, ok := c.GoTo(2)
	require.True(t, ok)
	run(t, c, req)
	assert.Equal(t, "/residents?page=2", c.Location().String())

	req, ok = c.SubmitFilter("status:'Vacant'")
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, "status:'Vacant'", req.Filter)
	run(t, c, req)

	assert.Empty(t, c.Keyword())
	assert.Equal(t, ModeAdvanced, c.State().Mode)
	assert.Equal(t, "/residents?page=1", c.Location().String())
}

func TestControllerSameQueryDoesNotFetch(t *testing.T) {
	b := &fakeBackend{totalElements: 5}
	c := newTestController(b, nil)

	req, ok := c.SubmitKeyword("an")
	require.True(t, ok)
	run(t, c, req)

	_, ok = c.SubmitKeyword("an")
	assert.False(t, ok)
	_, ok = c.GoTo(1)
	assert.False(t, ok)
	_, ok = c.ClearFilter()
	assert.False(t, ok)
	assert.Len(t, b.requests, 1)
}

func TestControllerRefreshKeepsState(t *testing.T) {
	b := &fakeBackend{totalElements: 23}
	c := newTestController(b, nil)
	run(t, c, c.Load())
	req, _ := c.GoTo(3)
	run(t, c, req)
	c.SubmitKeyword("x") // pending, replaced below
	req, _ = c.SubmitKeyword("an")
	run(t, c, req)
	req, _ = c.GoTo(2)
	run(t, c, req)

	refresh := c.Refresh()
	assert.Equal(t, 2, refresh.Page)
	assert.Equal(t, "name~'*an*'", refresh.Filter)
}

func TestControllerShrinkMovesToLastPage(t *testing.T) {
	b := &fakeBackend{totalElements: 35}
	c := newTestController(b, nil)
	run(t, c, c.Load())
	req, ok := c.GoTo(4)
	require.True(t, ok)
	run(t, c, req)

	// rows deleted elsewhere; page 4 no longer exists
	b.totalElements = 21
	run(t, c, c.Refresh())

	st := c.State()
	assert.Equal(t, 3, st.Current)
	assert.Equal(t, 3, st.Page.Number)
	assert.Equal(t, []string{"row-21"}, st.Items)
}

func TestControllerEmptyResultReturnsToFirstPage(t *testing.T) {
	b := &fakeBackend{totalElements: 25}
	c := newTestController(b, nil)
	run(t, c, c.Load())
	req, _ := c.GoTo(3)
	run(t, c, req)

	b.totalElements = 0
	run(t, c, c.Refresh())

	st := c.State()
	assert.Equal(t, 1, st.Current)
	assert.Empty(t, st.Items)
	assert.Empty(t, st.Window)
}

func TestControllerFailureNotifiesAndKeepsRows(t *testing.T) {
	n := &recordingNotifier{}
	b := &fakeBackend{totalElements: 12}
	c := newTestController(b, n)
	run(t, c, c.Load())

	b.err = errors.New("backend down")
	req, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, OutcomeFailed, run(t, c, req))

	st := c.State()
	require.Len(t, n.errs, 1)
	assert.Error(t, st.Err)
	assert.Len(t, st.Items, 10, "previous page stays visible")
	assert.Equal(t, 1, st.Page.Number)
	assert.Equal(t, 1, st.Current, "cursor returns to the displayed page")
	assert.Equal(t, "/residents?page=1", c.Location().String())
}

func TestControllerFailedPageMoveKeepsPagerInStep(t *testing.T) {
	b := &fakeBackend{totalElements: 40}
	c := newTestController(b, nil)
	run(t, c, c.Load())
	req, _ := c.GoTo(2)
	run(t, c, req)

	b.err = errors.New("backend down")
	req, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, OutcomeFailed, run(t, c, req))

	st := c.State()
	assert.Equal(t, 2, st.Current)
	assert.Equal(t, 2, st.Page.Number)
	require.Len(t, st.Window, 4)
	assert.True(t, st.Window[1].Current, "pager highlights page 2")
	assert.False(t, st.Window[2].Current)

	b.err = nil
	req, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, 3, req.Page, "next continues from the displayed page")
}

func TestControllerFailedFirstLoadKeepsRequestedPage(t *testing.T) {
	b := &fakeBackend{totalElements: 40, err: errors.New("backend down")}
	c := newTestController(b, nil)
	loc := c.Location()
	loc.RawQuery = "page=3"
	c.ReadLocation(loc)

	assert.Equal(t, OutcomeFailed, run(t, c, c.Load()))
	assert.Equal(t, 3, c.State().Current)
}

func TestControllerFilterMatchingKeywordIsNoChange(t *testing.T) {
	b := &fakeBackend{totalElements: 23}
	c := newTestController(b, nil)
	req, _ := c.SubmitKeyword("an")
	run(t, c, req)
	req, _ = c.GoTo(2)
	run(t, c, req)

	_, ok := c.SubmitFilter(" name~'*an*' ")
	assert.False(t, ok)
	assert.Len(t, b.requests, 2)

	st := c.State()
	assert.Equal(t, ModeBasic, st.Mode)
	assert.Equal(t, 2, st.Current)
	assert.Equal(t, "an", c.Keyword())

	req, ok = c.SubmitFilter("name~'*an*' and status:'Absent'")
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, ModeAdvanced, c.State().Mode)
}

func TestControllerOutOfOrderResponses(t *testing.T) {
	b := &fakeBackend{totalElements: 40}
	c := newTestController(b, nil)
	run(t, c, c.Load())

	slow, _ := c.GoTo(2)
	fast, _ := c.GoTo(3)

	fastRes, err := c.Fetch(context.Background(), fast)
	require.NoError(t, err)
	slowRes, err := c.Fetch(context.Background(), slow)
	require.NoError(t, err)

	out, _ := c.Resolve(fast, fastRes, nil)
	assert.Equal(t, OutcomeApplied, out)
	out, _ = c.Resolve(slow, slowRes, nil)
	assert.Equal(t, OutcomeStale, out)
	assert.Equal(t, 3, c.State().Page.Number)
}

func TestControllerReadLocation(t *testing.T) {
	b := &fakeBackend{totalElements: 40}
	c := newTestController(b, nil)
	loc := c.Location()
	loc.RawQuery = "page=3"
	c.ReadLocation(loc)

	req := c.Load()
	assert.Equal(t, 3, req.Page)
}

func TestControllerFetchWithoutLister(t *testing.T) {
	c := NewController[string](Config{Resource: "fees"}, nil, nil, logr.Discard())
	_, err := c.Fetch(context.Background(), c.Load())
	assert.Error(t, err)
}
