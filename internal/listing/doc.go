// Package listing implements the filtered, paginated list controller shared by
// every resource screen.
//
// A screen owns one Controller. The Controller composes three pieces:
//
//   - Coordinator keeps the basic keyword and the advanced filter expression
//     mutually exclusive and resolves them into one Query.
//   - Cursor tracks the 1-based page, the totals reported by the backend and
//     the page parameter of the screen's location.
//   - Fetcher numbers every outgoing Request and applies only the response to
//     the newest one, keeping the last good result visible on failure.
//
// The package performs no I/O of its own. A Lister supplied by the caller
// does the backend call; Controller.Fetch may run on any goroutine while all
// other methods belong to the goroutine that renders the screen.
package listing
