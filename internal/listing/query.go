package listing

import "github.com/five82/concierge/internal/filter"

// QueryKind tags the active search of a screen.
type QueryKind int

const (
	QueryNone QueryKind = iota
	QueryKeyword
	QueryFilter
)

func (k QueryKind) String() string {
	switch k {
	case QueryKeyword:
		return "keyword"
	case QueryFilter:
		return "filter"
	default:
		return "none"
	}
}

// Query is the single active search of a screen. Value holds the keyword for
// QueryKeyword and the filter expression for QueryFilter.
type Query struct {
	Kind  QueryKind
	Value string
}

// Expression resolves the query into the backend filter parameter. A keyword
// becomes a contains clause on defaultField.
func (q Query) Expression(defaultField string) string {
	switch q.Kind {
	case QueryFilter:
		return q.Value
	case QueryKeyword:
		return filter.Keyword(defaultField, q.Value)
	default:
		return ""
	}
}

// Page describes the position of a result inside the full listing.
type Page struct {
	Number        int // 1-based
	Size          int
	TotalPages    int
	TotalElements int
}

// Result is one fetched page. It replaces the previous result wholesale.
type Result[T any] struct {
	Items []T
	Page  Page
}

// Offset returns the zero-based index of the first item on the page, used for
// row numbering.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
