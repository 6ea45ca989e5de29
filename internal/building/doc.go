// Package building is the client for the building management REST API.
//
// Every list endpoint has the shape
//
//	GET {base}/{resource}?size={n}&page={p}[&filter={expr}]
//
// and answers with {"data": {"result": [...], "totalPages": n,
// "totalElements": n}}. List decodes that envelope into a listing.Result, and
// NewLister adapts it to the listing.Lister a list controller consumes.
//
// Resources (apartments, residents, vehicles, fees, invoices) are described
// by Resource values carrying the default keyword field, the advanced filter
// schema and the table columns.
//
// Failures are returned as *APIError. Kind separates transport failures,
// non-2xx responses with a {message} body, non-2xx responses without one, and
// undecodable 2xx bodies. Nothing is retried here.
//
// Requests carry an X-Request-ID and, when a TokenProvider yields a token, a
// bearer Authorization header. The Client is safe for concurrent use.
package building
