// Package app is the composition root of concierge.
//
// It loads configuration, builds the logger and the building API client, and
// then runs one of three entry points:
//
//   - Run starts the TUI together with the background overview poller.
//   - RunList prints a single page of a resource as a table, JSON or YAML.
//   - RunDemo serves the in-memory demo backend and optionally points the TUI
//     at it.
//
// # Polling
//
// StartPoller refreshes the overview counts shown in the TUI header. It
// fetches once immediately and then on every interval. Consecutive failures
// back off exponentially up to five minutes, and the store marks the backend
// offline after two of them. List screens never depend on the poller; they
// fetch through their own listing.Controller.
//
// # Errors
//
// Configuration, logging and client construction errors are returned from
// the entry points. Fetch failures inside the TUI become toasts, and poller
// failures are logged and counted in the state store.
package app
