package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file. A missing file is empty.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
	Raw     string
}

var reservedKeys = map[string]bool{
	"timestamp": true, "level": true, "message": true, "caller": true, "logger": true, "stacktrace": true,
}

// Parse decodes a JSON log line. Lines that are not JSON objects are kept in
// Raw and Message.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	if !gjson.Valid(line) || !gjson.Parse(line).IsObject() {
		entry.Message = line
		return entry
	}
	parsed := gjson.Parse(line)
	if ts := parsed.Get("timestamp").String(); ts != "" {
		for _, layout := range []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339Nano} {
			if t, err := time.Parse(layout, ts); err == nil {
				entry.Time = t
				break
			}
		}
	}
	entry.Level = strings.ToUpper(parsed.Get("level").String())
	entry.Message = parsed.Get("message").String()
	if name := parsed.Get("logger").String(); name != "" {
		entry.Message = name + ": " + entry.Message
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if reservedKeys[key.String()] {
			return true
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]string)
		}
		entry.Fields[key.String()] = value.String()
		return true
	})
	return entry
}

// Format renders an entry as a single display line:
//
//	15:04:05 INFO  building: request method=GET status=200
func (e Entry) Format() string {
	if e.Level == "" && e.Time.IsZero() && len(e.Fields) == 0 {
		return e.Message
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		fmt.Fprintf(&b, "%-5s ", e.Level)
	}
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, e.Fields[k])
	}
	return b.String()
}

// FormatLines parses and formats every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Parse(line).Format()
	}
	return out
}
