// Package notify provides the non-blocking user notification sink.
// Components report degraded-mode events (gateway fallback taken, storage
// write dropped) without coupling to how the front end surfaces them.
package notify

import (
	"log"
	"sync"
)

// Level classifies a notification the way the UI tiers its toasts.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier receives user-facing notifications. Implementations must not
// block: callers fire and forget.
type Notifier interface {
	Notify(level Level, message string)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(level Level, message string) {
	log.Printf("[notify] %s: %s", level, message)
}

// OnceNotifier wraps a Notifier and suppresses repeats of the same message.
// Used for one-shot notices like "storage unavailable" so a failing
// autosave loop does not flood the user.
type OnceNotifier struct {
	next Notifier

	mu   sync.Mutex
	seen map[string]bool
}

// NewOnce returns a OnceNotifier delivering through next.
func NewOnce(next Notifier) *OnceNotifier {
	return &OnceNotifier{next: next, seen: make(map[string]bool)}
}

func (n *OnceNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	already := n.seen[message]
	n.seen[message] = true
	n.mu.Unlock()

	if !already {
		n.next.Notify(level, message)
	}
}

// Recorder collects notifications for inspection in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Entry is one recorded notification.
type Entry struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
