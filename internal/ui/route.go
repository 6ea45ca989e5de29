package ui

import (
	"net/url"
	"strings"

	"github.com/five82/concierge/internal/building"
)

// parseRoute splits a location such as /residents?page=2 into the resource
// and the URL whose page parameter positions the cursor. Unknown or empty
// routes report false.
func parseRoute(route string) (building.Info, *url.URL, bool) {
	route = strings.TrimSpace(route)
	if route == "" {
		return building.Info{}, nil, false
	}
	loc, err := url.Parse(route)
	if err != nil {
		return building.Info{}, nil, false
	}
	info, ok := building.Lookup(loc.Path)
	if !ok {
		return building.Info{}, nil, false
	}
	return info, loc, true
}
