package logbook

import (
	"sync"
	"time"
)

// Direction tags a log entry with how the text crossed the link.
type Direction int

const (
	Sent Direction = iota
	Received
	Debug
)

func (d Direction) String() string {
	switch d {
	case Sent:
		return "TX"
	case Received:
		return "RX"
	case Debug:
		return "DBG"
	}
	return "?"
}

// Entry is one timestamped line in a traffic log.
type Entry struct {
	Time      time.Time
	Direction Direction
	Text      string
}

// Log is an append-only traffic log with an auto-scroll flag. While the
// flag is set, new entries should keep the view pinned to the bottom; a
// manual scroll up clears it, and jumping back to the bottom restores it.
type Log struct {
	mu         sync.Mutex
	entries    []Entry
	autoScroll bool
	onAppend   func(Entry, bool)
}

func New() *Log {
	return &Log{autoScroll: true}
}

// OnAppend registers a callback invoked after every append with the new
// entry and the auto-scroll flag as of that append. At most one callback
// is held; a later call replaces the earlier one.
func (l *Log) OnAppend(fn func(Entry, bool)) {
	l.mu.Lock()
	l.onAppend = fn
	l.mu.Unlock()
}

// Append records text under the given direction, stamped with the current
// time, and notifies the registered callback.
func (l *Log) Append(dir Direction, text string) Entry {
	l.mu.Lock()
	e := Entry{Time: time.Now(), Direction: dir, Text: text}
	l.entries = append(l.entries, e)
	fn := l.onAppend
	follow := l.autoScroll
	l.mu.Unlock()
	if fn != nil {
		fn(e, follow)
	}
	return e
}

// ScrollUp records that the user scrolled away from the bottom, so new
// entries no longer move the view.
func (l *Log) ScrollUp() {
	l.mu.Lock()
	l.autoScroll = false
	l.mu.Unlock()
}

// ScrollToBottom re-pins the view to the newest entry.
func (l *Log) ScrollToBottom() {
	l.mu.Lock()
	l.autoScroll = true
	l.mu.Unlock()
}

// AutoScroll reports whether the view is pinned to the newest entry.
func (l *Log) AutoScroll() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.autoScroll
}

// Entries returns a copy of the log contents in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
