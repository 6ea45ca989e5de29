package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, n int) (string, []string) {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf(`{"level":"info","message":"fetched page %d"}`, i+1)
	}
	path := filepath.Join(t.TempDir(), "concierge.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path, lines
}

func TestReadTail(t *testing.T) {
	path, lines := writeLog(t, 12)

	for _, tc := range []struct {
		maxLines int
		want     []string
	}{
		{0, lines},
		{-3, lines},
		{4, lines[8:]},
		{12, lines},
		{50, lines},
	} {
		got, err := Read(path, tc.maxLines)
		if err != nil {
			t.Fatalf("Read(%d) error = %v", tc.maxLines, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Read(%d) = %d lines starting %q, want %d lines", tc.maxLines, len(got), first(got), len(tc.want))
		}
	}
}

func TestReadTailWrapsRing(t *testing.T) {
	path, lines := writeLog(t, 1000)
	got, err := Read(path, 200)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 200 || got[0] != lines[800] || got[199] != lines[999] {
		t.Fatalf("Read() = %d lines starting %q, want the last 200", len(got), first(got))
	}
}

func first(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "not json at all",
			want:  "not json at all",
		},
		{
			name:  "json array is not an entry",
			input: `[1,2]`,
			want:  `[1,2]`,
		},
		{
			name:  "entry with fields",
			input: `{"level":"info","timestamp":"2025-10-08T21:01:05.000Z","logger":"building","caller":"building/client.go:210","message":"request","status":200,"method":"GET"}`,
			want:  time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC).Local().Format("15:04:05") + " INFO  building: request method=GET status=200",
		},
		{
			name:  "entry without time",
			input: `{"level":"error","message":"list fetch failed","error":"boom"}`,
			want:  "ERROR list fetch failed error=boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input).Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	got := FormatLines([]string{`{"level":"warn","message":"slow"}`, "raw"})
	want := []string{"WARN  slow", "raw"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormatLines() = %q, want %q", got, want)
	}
}
