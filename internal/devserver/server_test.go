package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
)

type listBody struct {
	Data struct {
		PageSize      int              `json:"pageSize"`
		CurPage       int              `json:"curPage"`
		TotalPages    int              `json:"totalPages"`
		TotalElements int              `json:"totalElements"`
		Result        []map[string]any `json:"result"`
	} `json:"data"`
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, listBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body listBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func listPath(resource string, q url.Values) string {
	return APIPrefix + "/" + resource + "?" + q.Encode()
}

func TestListPaginates(t *testing.T) {
	s := New(Options{})
	total := s.Count("residents")
	require.Equal(t, fixtureResidents, total)

	rec, body := get(t, s.Handler(), listPath("residents", url.Values{"page": {"6"}, "size": {"10"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, body.Data.TotalPages)
	assert.Equal(t, total, body.Data.TotalElements)
	assert.Len(t, body.Data.Result, total-50)

	_, body = get(t, s.Handler(), listPath("residents", url.Values{"page": {"9"}}))
	assert.Empty(t, body.Data.Result)
	assert.NotNil(t, body.Data.Result)
}

func TestListFilters(t *testing.T) {
	s := New(Options{})
	tests := []struct {
		name   string
		res    string
		filter string
		check  func(t *testing.T, row map[string]any)
	}{
		{"contains is case-insensitive", "residents", "name~'*LAN*'", func(t *testing.T, row map[string]any) {
			assert.Contains(t, strings.ToLower(row["name"].(string)), "lan")
		}},
		{"exact", "residents", "status:'Absent'", func(t *testing.T, row map[string]any) {
			assert.Equal(t, "Absent", row["status"])
		}},
		{"numeric alias", "residents", "apartmentId:101", func(t *testing.T, row map[string]any) {
			assert.Equal(t, float64(101), row["addressNumber"])
		}},
		{"combined", "vehicles", "category:'Car' and apartmentID:'104'", func(t *testing.T, row map[string]any) {
			assert.Equal(t, "Car", row["category"])
			assert.Equal(t, float64(104), row["apartmentId"])
		}},
		{"apartments by status", "apartments", "status:'Vacant'", func(t *testing.T, row map[string]any) {
			assert.Equal(t, "Vacant", row["status"])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, s.Handler(), listPath(tt.res, url.Values{"size": {"1000"}, "filter": {tt.filter}}))
			require.Equal(t, http.StatusOK, rec.Code)
			require.NotEmpty(t, body.Data.Result)
			assert.Equal(t, len(body.Data.Result), body.Data.TotalElements)
			for _, row := range body.Data.Result {
				tt.check(t, row)
			}
		})
	}
}

func TestListErrors(t *testing.T) {
	s := New(Options{})
	tests := []struct {
		target string
		status int
	}{
		{listPath("residents", url.Values{"filter": {"name~'unterminated"}}), http.StatusBadRequest},
		{listPath("residents", url.Values{"page": {"0"}}), http.StatusBadRequest},
		{listPath("residents", url.Values{"size": {"x"}}), http.StatusBadRequest},
		{listPath("parking", nil), http.StatusNotFound},
		{"/nowhere/at/all", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec, _ := get(t, s.Handler(), tt.target)
			assert.Equal(t, tt.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRequireToken(t *testing.T) {
	s := New(Options{Token: "secret"})

	rec, _ := get(t, s.Handler(), listPath("fees", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, listPath("fees", nil), nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func newClient(t *testing.T, s *Server) *building.Client {
	t.Helper()
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)
	c, err := building.NewClient(server.URL+APIPrefix, building.Options{})
	require.NoError(t, err)
	return c
}

func TestClientMutationsRoundTrip(t *testing.T) {
	s := New(Options{})
	c := newClient(t, s)
	ctx := context.Background()

	var created building.Resident
	require.NoError(t, c.Create(ctx, "residents", building.Resident{Name: "Test Person", Status: "Temporary", AddressNumber: 101}, &created))
	assert.Equal(t, int64(fixtureResidents+1), created.ID)

	created.Status = "Resident"
	var updated building.Resident
	require.NoError(t, c.Update(ctx, "residents", created, &updated))
	assert.Equal(t, "Resident", updated.Status)

	err := c.Create(ctx, "vehicles", building.Vehicle{Category: "Car"}, nil)
	assert.True(t, building.IsKind(err, building.KindStatus))
	assert.Equal(t, "id is required", building.UserMessage(err))

	require.NoError(t, c.Delete(ctx, "residents", "58"))
	err = c.Delete(ctx, "residents", "58")
	assert.True(t, building.IsKind(err, building.KindStatus))
	assert.Equal(t, fixtureResidents, s.Count("residents"))
}

func TestOverviewAgainstDemoData(t *testing.T) {
	c := newClient(t, New(Options{}))
	ov, err := c.FetchOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixtureFloors*fixtureUnitsPerFloor, ov.Apartments)
	assert.Equal(t, fixtureResidents, ov.Residents)
	assert.Equal(t, fixtureVehicles, ov.Vehicles)
	assert.Equal(t, 4, ov.Invoices)
}

// TestControllerEndToEnd drives a list controller against the demo backend
// through the real client.
func TestControllerEndToEnd(t *testing.T) {
	s := New(Options{})
	c := newClient(t, s)
	var notified []error
	ctrl := listing.NewController[building.Resident](
		listing.Config{Resource: "residents", DefaultField: building.Residents.DefaultField},
		building.NewLister[building.Resident](c, "residents"),
		listing.NotifierFunc(func(err error) { notified = append(notified, err) }),
		logr.Discard(),
	)
	run := func(req listing.Request) {
		for {
			res, err := ctrl.Fetch(context.Background(), req)
			_, follow := ctrl.Resolve(req, res, err)
			if follow == nil {
				return
			}
			req = *follow
		}
	}

	run(ctrl.Load())
	st := ctrl.State()
	assert.Equal(t, fixtureResidents, st.Page.TotalElements)
	assert.Equal(t, []string{"1", "2", "...", "6"}, listing.Labels(st.Window))

	req, ok := ctrl.SubmitKeyword("an")
	require.True(t, ok)
	run(req)
	for _, r := range ctrl.State().Items {
		assert.Contains(t, strings.ToLower(r.Name), "an")
	}

	req, ok = ctrl.SubmitFilter(building.Residents.Schema.Build(map[string]string{"status": "Absent"}))
	require.True(t, ok)
	assert.Equal(t, "status:'Absent'", req.Filter)
	run(req)
	st = ctrl.State()
	assert.Equal(t, listing.ModeAdvanced, st.Mode)
	assert.Equal(t, fixtureResidents/3, st.Page.TotalElements)
	assert.Empty(t, notified)

	req, _ = ctrl.SubmitFilter("status:'Absent")
	run(req)
	require.Len(t, notified, 1)
	assert.True(t, building.IsKind(notified[0], building.KindStatus))
	assert.Len(t, ctrl.State().Items, 10, "previous rows stay after a failed fetch")
}
