package listing

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	errs []error
}

func (r *recordingNotifier) Notify(err error) { r.errs = append(r.errs, err) }

func page(items []string, number, totalPages, totalElements int) Result[string] {
	return Result[string]{
		Items: items,
		Page:  Page{Number: number, Size: 10, TotalPages: totalPages, TotalElements: totalElements},
	}
}

func TestFetcherAppliesLatest(t *testing.T) {
	f := NewFetcher[string](nil, logr.Discard())
	req := f.Begin(Query{}, "", 1, 10)
	assert.True(t, f.Loading())

	out := f.Resolve(req, page([]string{"a", "b"}, 1, 1, 2), nil)
	assert.Equal(t, OutcomeApplied, out)
	assert.False(t, f.Loading())
	assert.Equal(t, []string{"a", "b"}, f.Result().Items)
}

func TestFetcherDiscardsStaleResponses(t *testing.T) {
	orders := []struct {
		name        string
		latestFirst bool
	}{
		{"older arrives last", true},
		{"older arrives first", false},
	}

	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher[string](nil, logr.Discard())
			older := f.Begin(Query{}, "", 1, 10)
			newer := f.Begin(Query{Kind: QueryKeyword, Value: "an"}, "name~'*an*'", 1, 10)

			if tt.latestFirst {
				assert.Equal(t, OutcomeApplied, f.Resolve(newer, page([]string{"new"}, 1, 1, 1), nil))
				assert.Equal(t, OutcomeStale, f.Resolve(older, page([]string{"old"}, 1, 1, 1), nil))
			} else {
				assert.Equal(t, OutcomeStale, f.Resolve(older, page([]string{"old"}, 1, 1, 1), nil))
				assert.True(t, f.Loading(), "newer request still outstanding")
				assert.Equal(t, OutcomeApplied, f.Resolve(newer, page([]string{"new"}, 1, 1, 1), nil))
			}
			assert.Equal(t, []string{"new"}, f.Result().Items)
		})
	}
}

func TestFetcherStaleFailureIsSilent(t *testing.T) {
	n := &recordingNotifier{}
	f := NewFetcher[string](n, logr.Discard())
	older := f.Begin(Query{}, "", 1, 10)
	newer := f.Begin(Query{}, "", 2, 10)

	assert.Equal(t, OutcomeStale, f.Resolve(older, Result[string]{}, errors.New("boom")))
	assert.Empty(t, n.errs)
	assert.NoError(t, f.Err())

	assert.Equal(t, OutcomeApplied, f.Resolve(newer, page([]string{"x"}, 2, 2, 11), nil))
}

func TestFetcherFailureKeepsDataAndNotifiesOnce(t *testing.T) {
	n := &recordingNotifier{}
	f := NewFetcher[string](n, logr.Discard())

	first := f.Begin(Query{}, "", 1, 10)
	require.Equal(t, OutcomeApplied, f.Resolve(first, page([]string{"a"}, 1, 1, 1), nil))

	boom := errors.New("connection refused")
	second := f.Begin(Query{}, "", 1, 10)
	assert.Equal(t, OutcomeFailed, f.Resolve(second, Result[string]{}, boom))
	assert.Equal(t, OutcomeStale, f.Resolve(second, Result[string]{}, boom), "duplicate delivery is ignored")

	require.Len(t, n.errs, 1)
	assert.ErrorIs(t, n.errs[0], boom)
	assert.ErrorIs(t, f.Err(), boom)
	assert.False(t, f.Loading())
	assert.Equal(t, []string{"a"}, f.Result().Items)
}

func TestFetcherCopiesItems(t *testing.T) {
	f := NewFetcher[string](nil, logr.Discard())
	items := []string{"a"}
	req := f.Begin(Query{}, "", 1, 10)
	f.Resolve(req, page(items, 1, 1, 1), nil)
	items[0] = "mutated"
	assert.Equal(t, []string{"a"}, f.Result().Items)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", OutcomeApplied.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "stale", OutcomeStale.String())
}
