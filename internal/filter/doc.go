// Package filter renders the building backend's list filter grammar.
//
// The backend accepts a small query language in the filter query parameter:
//
//	name~'*an*'            contains
//	status:'Vacant'        exact string
//	apartmentId:12         exact number, unquoted
//
// Clauses are joined with a literal " and ". There is no OR and no nesting.
//
// A Schema describes one screen's advanced filter form. Build turns the
// form's raw values into an expression, skipping blank fields, so an empty
// form yields "" which means "fetch everything". Values are not escaped or
// validated here.
//
// Parse reads the same subset back. The client never needs it; the demo
// backend in internal/devserver uses it to evaluate requests.
package filter
