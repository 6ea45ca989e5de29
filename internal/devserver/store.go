package devserver

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/five82/concierge/internal/filter"
)

// record is one stored entity in its JSON form.
type record = map[string]any

// table is the in-memory collection of one resource.
type table struct {
	name    string
	key     string            // JSON field holding the identifier
	autoKey bool              // assign numeric keys on create
	aliases map[string]string // filter field -> JSON field
	rows    []record
	nextKey int64
}

// page is the list envelope payload.
type page struct {
	PageSize      int      `json:"pageSize"`
	CurPage       int      `json:"curPage"`
	TotalPages    int      `json:"totalPages"`
	TotalElements int      `json:"totalElements"`
	Result        []record `json:"result"`
}

// storeError carries the HTTP status of a failed store operation.
type storeError struct {
	status int
	msg    string
}

func (e *storeError) Error() string { return e.msg }

func notFound(format string, args ...any) error {
	return &storeError{status: http.StatusNotFound, msg: fmt.Sprintf(format, args...)}
}

func badRequest(format string, args ...any) error {
	return &storeError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &storeError{status: http.StatusConflict, msg: fmt.Sprintf(format, args...)}
}

// store guards all tables with one lock.
type store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

func newStore(tables ...*table) *store {
	s := &store{tables: make(map[string]*table, len(tables))}
	for _, t := range tables {
		for _, row := range t.rows {
			if n, ok := asInt(row[t.key]); ok && n >= t.nextKey {
				t.nextKey = n + 1
			}
		}
		if t.nextKey == 0 {
			t.nextKey = 1
		}
		s.tables[t.name] = t
	}
	return s
}

func (s *store) table(name string) (*table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, notFound("resource %q not found", name)
	}
	return t, nil
}

// list filters and paginates a table. pageNum is 1-based.
func (s *store) list(name, expr string, pageNum, size int) (page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.table(name)
	if err != nil {
		return page{}, err
	}
	clauses, err := filter.Parse(expr)
	if err != nil {
		return page{}, badRequest("invalid filter: %v", err)
	}

	matched := make([]record, 0, len(t.rows))
	for _, row := range t.rows {
		if t.matches(row, clauses) {
			matched = append(matched, row)
		}
	}

	total := len(matched)
	out := page{
		PageSize:      size,
		CurPage:       pageNum,
		TotalElements: total,
		TotalPages:    int(math.Ceil(float64(total) / float64(size))),
		Result:        []record{},
	}
	start := (pageNum - 1) * size
	if start < total {
		end := min(start+size, total)
		out.Result = cloneRecords(matched[start:end])
	}
	return out, nil
}

func (s *store) get(name, id string) (record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.table(name)
	if err != nil {
		return nil, err
	}
	i := t.indexOf(id)
	if i < 0 {
		return nil, notFound("%s %s not found", name, id)
	}
	return cloneRecord(t.rows[i]), nil
}

func (s *store) create(name string, row record) (record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(name)
	if err != nil {
		return nil, err
	}
	if isBlank(row[t.key]) || (t.autoKey && isZero(row[t.key])) {
		if !t.autoKey {
			return nil, badRequest("%s is required", t.key)
		}
		row[t.key] = float64(t.nextKey)
	}
	id := formatValue(row[t.key])
	if t.indexOf(id) >= 0 {
		return nil, conflict("%s with %s = %s already exists", name, t.key, id)
	}
	if n, ok := asInt(row[t.key]); ok && n >= t.nextKey {
		t.nextKey = n + 1
	}
	t.rows = append(t.rows, row)
	return cloneRecord(row), nil
}

func (s *store) update(name string, patch record) (record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(name)
	if err != nil {
		return nil, err
	}
	if isBlank(patch[t.key]) {
		return nil, badRequest("%s is required", t.key)
	}
	id := formatValue(patch[t.key])
	i := t.indexOf(id)
	if i < 0 {
		return nil, notFound("%s %s not found", name, id)
	}
	for k, v := range patch {
		t.rows[i][k] = v
	}
	return cloneRecord(t.rows[i]), nil
}

func (s *store) remove(name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(name)
	if err != nil {
		return err
	}
	i := t.indexOf(id)
	if i < 0 {
		return notFound("%s %s not found", name, id)
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

func (s *store) count(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tables[name]; ok {
		return len(t.rows)
	}
	return 0
}

func (t *table) indexOf(id string) int {
	for i, row := range t.rows {
		if formatValue(row[t.key]) == id {
			return i
		}
	}
	return -1
}

func (t *table) matches(row record, clauses []filter.Clause) bool {
	for _, c := range clauses {
		v, ok := t.field(row, c.Field)
		if !ok || !matchClause(v, c) {
			return false
		}
	}
	return true
}

// field resolves a filter field against a row: alias, exact key, then a
// case-insensitive key.
func (t *table) field(row record, name string) (any, bool) {
	if alias, ok := t.aliases[name]; ok {
		name = alias
	}
	if v, ok := row[name]; ok {
		return v, true
	}
	for k, v := range row {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func matchClause(v any, c filter.Clause) bool {
	got := formatValue(v)
	switch c.Match {
	case filter.Contains:
		return strings.Contains(strings.ToLower(got), strings.ToLower(c.Value))
	case filter.Numeric:
		want, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return false
		}
		if n, ok := v.(float64); ok {
			return n == want
		}
		return got == c.Value
	default:
		return strings.EqualFold(got, c.Value)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func asInt(v any) (int64, bool) {
	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) {
		return 0, false
	}
	return int64(n), true
}

func isZero(v any) bool {
	n, ok := asInt(v)
	return ok && n == 0
}

func isBlank(v any) bool {
	return strings.TrimSpace(formatValue(v)) == ""
}

// toRecord converts a typed value into its stored JSON form.
func toRecord(v any) record {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("devserver: marshal fixture: %v", err))
	}
	var row record
	if err := json.Unmarshal(data, &row); err != nil {
		panic(fmt.Sprintf("devserver: unmarshal fixture: %v", err))
	}
	return row
}

func cloneRecord(row record) record {
	out := make(record, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func cloneRecords(rows []record) []record {
	out := make([]record, len(rows))
	for i, row := range rows {
		out[i] = cloneRecord(row)
	}
	return out
}
