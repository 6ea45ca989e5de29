package ui

import (
	"time"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeError
)

// notice is one footer notification.
type notice struct {
	text  string
	level noticeLevel
	at    time.Time
}

// noticeBoard collects notifications. Model copies share it by pointer; it
// is only touched from the Update goroutine.
type noticeBoard struct {
	items []notice
	now   func() time.Time
}

func newNoticeBoard() *noticeBoard {
	return &noticeBoard{now: time.Now}
}

// Notifier returns a listing.Notifier that posts fetch failures of one
// screen.
func (b *noticeBoard) Notifier(title string) listing.Notifier {
	return listing.NotifierFunc(func(err error) {
		b.Error(title + ": " + building.UserMessage(err))
	})
}

// Error posts an error notice.
func (b *noticeBoard) Error(text string) { b.push(text, noticeError) }

// Info posts an informational notice.
func (b *noticeBoard) Info(text string) { b.push(text, noticeInfo) }

func (b *noticeBoard) push(text string, level noticeLevel) {
	b.items = append(b.items, notice{text: text, level: level, at: b.now()})
	if len(b.items) > 20 {
		b.items = b.items[len(b.items)-20:]
	}
}

// Current returns the newest notice that has not expired.
func (b *noticeBoard) Current() (notice, bool) {
	if len(b.items) == 0 {
		return notice{}, false
	}
	n := b.items[len(b.items)-1]
	if b.now().Sub(n.at) > NoticeTTL {
		return notice{}, false
	}
	return n, true
}

// Expire drops notices older than NoticeTTL.
func (b *noticeBoard) Expire() {
	cutoff := b.now().Add(-NoticeTTL)
	kept := b.items[:0]
	for _, n := range b.items {
		if n.at.After(cutoff) {
			kept = append(kept, n)
		}
	}
	b.items = kept
}

// Len returns the number of live notices.
func (b *noticeBoard) Len() int { return len(b.items) }
