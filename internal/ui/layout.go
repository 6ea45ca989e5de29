package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the header drops the
	// overview counts and the command bar shows fewer hints.
	LayoutCompactWidth = 100

	// LayoutMinWidth is the narrowest width the list pane renders at.
	LayoutMinWidth = 40
)

// Chrome heights around the list pane.
const (
	headerLines = 2 // status line + command bar
	footerLines = 1 // notice line
)

// Activity overlay limits.
const (
	// ActivityLines is the number of log lines the activity overlay reads.
	ActivityLines = 200
)

// Timing constants.
const (
	// FetchTimeout bounds one list or delete request.
	FetchTimeout = 10 * time.Second

	// NoticeTTL is how long a notification stays in the footer.
	NoticeTTL = 5 * time.Second

	// DefaultUIInterval is the tick that expires notices and refreshes the
	// activity overlay.
	DefaultUIInterval = time.Second
)
