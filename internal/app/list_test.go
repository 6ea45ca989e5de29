package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/config"
	"github.com/five82/concierge/internal/devserver"
)

// demoBackend serves the demo data set and returns options whose config
// points at it.
func demoBackend(t *testing.T, serverToken, clientToken string) Options {
	t.Helper()
	t.Setenv(config.TokenEnv, "")

	srv := httptest.NewServer(devserver.New(devserver.Options{Token: serverToken, Logger: logr.Discard()}).Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := "api_base_url = \"" + srv.URL + devserver.APIPrefix + "\"\n" +
		"log_file = \"" + filepath.Join(dir, "concierge.log") + "\"\n" +
		"page_size = 10\n"
	if clientToken != "" {
		cfg += "token = \"" + clientToken + "\"\n"
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return Options{ConfigPath: path}
}

func runList(t *testing.T, opts ListOptions) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := RunList(context.Background(), opts, &out)
	return out.String(), err
}

func TestRunListTable(t *testing.T) {
	base := demoBackend(t, "", "")

	out, err := runList(t, ListOptions{Options: base, Resource: "residents", Page: 2})
	if err != nil {
		t.Fatalf("RunList() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "NAME") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "11 ") || !strings.Contains(lines[1], "Nguyen Ngoc") {
		t.Fatalf("first row = %q, want row 11", lines[1])
	}
	if got := lines[len(lines)-1]; got != "11-20 of 57 residents, page 2/6" {
		t.Fatalf("summary = %q", got)
	}
}

func TestRunListKeyword(t *testing.T) {
	base := demoBackend(t, "", "")

	out, err := runList(t, ListOptions{Options: base, Resource: "Fees", Keyword: "fund"})
	if err != nil {
		t.Fatalf("RunList() error = %v", err)
	}
	if !strings.Contains(out, "Charity fund") || !strings.Contains(out, "Tet holiday fund") {
		t.Fatalf("output missing funds:\n%s", out)
	}
	if !strings.Contains(out, "1-2 of 2 fees, page 1/1  filter: name~'*fund*'") {
		t.Fatalf("output missing summary:\n%s", out)
	}
}

func TestRunListJSON(t *testing.T) {
	base := demoBackend(t, "", "")

	out, err := runList(t, ListOptions{
		Options:  base,
		Resource: "residents",
		Where:    []string{"status=Absent"},
		Size:     5,
		Output:   "json",
	})
	if err != nil {
		t.Fatalf("RunList() error = %v", err)
	}
	var doc struct {
		Resource      string           `json:"resource"`
		Filter        string           `json:"filter"`
		Size          int              `json:"size"`
		TotalElements int              `json:"totalElements"`
		Items         []map[string]any `json:"items"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if doc.Resource != "residents" || doc.Filter != "status:'Absent'" || doc.Size != 5 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.TotalElements == 0 || len(doc.Items) == 0 || len(doc.Items) > 5 {
		t.Fatalf("totalElements=%d items=%d", doc.TotalElements, len(doc.Items))
	}
	for _, item := range doc.Items {
		if item["status"] != "Absent" {
			t.Fatalf("item %v does not match the filter", item)
		}
	}
}

func TestRunListYAMLEmptyResult(t *testing.T) {
	base := demoBackend(t, "", "")

	out, err := runList(t, ListOptions{Options: base, Resource: "vehicles", Filter: "category:'Truck'", Output: "YAML"})
	if err != nil {
		t.Fatalf("RunList() error = %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	items, ok := doc["items"].([]any)
	if !ok || len(items) != 0 || doc["totalElements"] != 0 {
		t.Fatalf("doc = %v, want no items", doc)
	}
}

func TestRunListPageBeyondEndMovesToLastPage(t *testing.T) {
	base := demoBackend(t, "", "")

	out, err := runList(t, ListOptions{Options: base, Resource: "residents", Page: 9})
	if err != nil {
		t.Fatalf("RunList() error = %v", err)
	}
	if !strings.Contains(out, "51-57 of 57 residents, page 6/6") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestRunListToken(t *testing.T) {
	if _, err := runList(t, ListOptions{Options: demoBackend(t, "s3cret", "s3cret"), Resource: "fees"}); err != nil {
		t.Fatalf("RunList() with token error = %v", err)
	}

	_, err := runList(t, ListOptions{Options: demoBackend(t, "s3cret", ""), Resource: "fees"})
	var apiErr *building.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Fatalf("RunList() without token error = %v, want a 401", err)
	}
	if got := building.UserMessage(err); got != "missing or invalid token" {
		t.Fatalf("UserMessage() = %q", got)
	}
}

func TestRunListRejectsBadInput(t *testing.T) {
	base := demoBackend(t, "", "")

	cases := []struct {
		name string
		opts ListOptions
		want string
	}{
		{"unknown resource", ListOptions{Resource: "parking"}, "unknown resource"},
		{"unknown output", ListOptions{Resource: "fees", Output: "csv"}, "unknown output format"},
		{"where without value", ListOptions{Resource: "fees", Where: []string{"name"}}, "want field=value"},
		{"unknown where field", ListOptions{Resource: "fees", Where: []string{"color=red"}}, "fields: name, feeTypeEnum"},
		{"keyword and filter", ListOptions{Resource: "fees", Keyword: "fund", Filter: "name~'*x*'"}, ErrConflictingQuery.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.Options = base
			_, err := runList(t, tc.opts)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("RunList() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestApplyQueryJoinsWhereAndFilter(t *testing.T) {
	base := demoBackend(t, "", "")

	out, err := runList(t, ListOptions{
		Options:  base,
		Resource: "residents",
		Filter:   "gender:'Female'",
		Where:    []string{"status=Resident", "name="},
		Output:   OutputJSON,
	})
	if err != nil {
		t.Fatalf("RunList() error = %v", err)
	}
	if !strings.Contains(out, `"filter": "gender:'Female' and status:'Resident'"`) {
		t.Fatalf("output:\n%s", out)
	}
}

func TestRenderTableFitsWidth(t *testing.T) {
	columns := []building.Column{{Title: "ID", Width: 4}, {Title: "Name", Width: 10}, {Title: "Note", Width: 10}}
	rows := [][]string{{"1", "Nguyen Thi Lan", strings.Repeat("long note ", 6)}}

	out := renderTable(columns, rows, 30)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if len([]rune(line)) > 30 {
			t.Fatalf("line %q is wider than 30", line)
		}
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected truncated cells:\n%s", out)
	}

	wide := renderTable(columns, rows, 0)
	if !strings.Contains(wide, strings.TrimSpace(strings.Repeat("long note ", 6))) {
		t.Fatalf("unlimited width should keep full cells:\n%s", wide)
	}
}

func TestTokenProviderOrder(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "token")
	if err := os.WriteFile(file, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{Token: "from-config", TokenFile: file}

	t.Setenv(config.TokenEnv, "from-env")
	if got, _ := tokenProvider(cfg).Token(context.Background()); got != "from-env" {
		t.Fatalf("token = %q, want from-env", got)
	}
	t.Setenv(config.TokenEnv, "")
	if got, _ := tokenProvider(cfg).Token(context.Background()); got != "from-file" {
		t.Fatalf("token = %q, want from-file", got)
	}
	cfg.TokenFile = ""
	if got, _ := tokenProvider(cfg).Token(context.Background()); got != "from-config" {
		t.Fatalf("token = %q, want from-config", got)
	}
}
