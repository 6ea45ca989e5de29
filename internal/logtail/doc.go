// Package logtail reads the end of concierge's own log file for the activity
// overlay.
//
// Read keeps a ring buffer of the last N lines so large files are never held
// in memory. Parse and Format turn the JSON lines written by the logging
// package into compact "time level message key=value" lines.
package logtail
