// Package state holds the dashboard overview shared between the background
// poller and the UI.
//
// The poller calls Store.Update after every attempt; the UI reads
// Store.Snapshot when it renders and may Subscribe to be woken after updates.
// A failed poll keeps the last good overview and increments
// ConsecutiveFailures, so the header can show stale counts together with an
// offline marker instead of blanking out.
package state
