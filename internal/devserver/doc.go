// Package devserver is an in-memory demo backend for concierge.
//
// It serves the same list contract as the real building management API,
//
//	GET /api/v1/{resource}?page=1&size=10&filter=name~'*an*'
//
// evaluating filter expressions with filter.Parse, and accepts POST, PUT and
// DELETE mutations. Errors use the backend's {timestamp, status, error,
// message, path} body. The data set is deterministic; see fixtures.go.
package devserver
