// Package logging sets up the structured logger: zap JSON output behind a
// logr.Logger, written to a rotating file while the terminal UI is running.
package logging
