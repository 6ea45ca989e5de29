package listing

import "strings"

// Mode is the search entry point currently in effect.
type Mode int

const (
	ModeIdle Mode = iota
	ModeBasic
	ModeAdvanced
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeAdvanced:
		return "advanced"
	default:
		return "idle"
	}
}

// Coordinator keeps the basic keyword and the advanced filter expression
// mutually exclusive. At most one of them is non-empty at any time.
//
// Every transition reports whether the resolved query changed; callers reset
// the page cursor and fetch only on change.
type Coordinator struct {
	keyword    string
	expression string
}

// SubmitKeyword makes the keyword the active query and clears any filter
// expression.
func (c *Coordinator) SubmitKeyword(value string) bool {
	prev := c.Query()
	c.keyword = strings.TrimSpace(value)
	c.expression = ""
	return c.Query() != prev
}

// SubmitFilter makes expr the active query and clears the keyword. An empty
// expression is treated as ClearFilter.
func (c *Coordinator) SubmitFilter(expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return c.ClearFilter()
	}
	prev := c.Query()
	c.expression = expr
	c.keyword = ""
	return c.Query() != prev
}

// ClearFilter drops the filter expression. The keyword, if any, stays.
func (c *Coordinator) ClearFilter() bool {
	prev := c.Query()
	c.expression = ""
	return c.Query() != prev
}

// Mode reports which entry point owns the active query.
func (c *Coordinator) Mode() Mode {
	switch {
	case c.expression != "":
		return ModeAdvanced
	case c.keyword != "":
		return ModeBasic
	default:
		return ModeIdle
	}
}

// Query returns the active query. The expression wins over the keyword.
func (c *Coordinator) Query() Query {
	switch {
	case c.expression != "":
		return Query{Kind: QueryFilter, Value: c.expression}
	case c.keyword != "":
		return Query{Kind: QueryKeyword, Value: c.keyword}
	default:
		return Query{Kind: QueryNone}
	}
}

// Keyword returns the current basic keyword.
func (c *Coordinator) Keyword() string { return c.keyword }

// Expression returns the current advanced filter expression.
func (c *Coordinator) Expression() string { return c.expression }
