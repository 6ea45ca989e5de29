// Package ui provides the terminal dashboard for the building administration
// API.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the root state; each building
// resource (apartments, residents, vehicles, fees, invoices) gets one list
// screen backed by a listing.Controller. Screens never block: every fetch is
// returned as a tea.Cmd that runs the request off the Update goroutine and
// comes back as a fetchedMsg, which resolves the response against the
// controller. Responses that are no longer the latest request are dropped.
//
// # Package Structure
//
//   - app.go: Model, message routing, key handling and Run
//   - screen.go: the generic list screen wrapping a listing.Controller
//   - table.go: list pane rendering, column fitting and the pager
//   - modal.go: search prompt, page jump, filter form and delete confirmation
//   - header.go: screen tabs, overview counts, command bar and notices
//   - activity.go: the activity log overlay
//   - theme.go, style_helpers.go: color themes and background-safe styling
//
// # Screens
//
// Every screen supports:
//
//   - Basic search: "/" matches the resource's default field by substring
//   - Advanced filter: "f" opens a form with one input per filterable field;
//     filled fields are joined with "and"
//   - Paging: h/l or the arrow keys, home/end, and ":" to jump to a page
//   - Refresh and delete of the selected row
//
// Submitting a search or filter always returns to page 1. A failed fetch
// keeps the rows already shown and posts a notice in the footer.
//
// # Event Flow
//
//  1. Run creates the model and starts the program
//  2. Init loads the active screen and subscribes to the overview store
//  3. Keys and modal submissions become controller transitions and fetches
//  4. Fetch results, deletes and overview snapshots arrive as messages
//  5. The theme and current location are saved to the preferences file
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:  ctx,
//		Client:   client,
//		Store:    store,
//		Logger:   log,
//		PageSize: 20,
//		Route:    "/residents?page=2",
//	})
package ui
