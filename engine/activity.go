package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/matchsim/parameter"
)

// ActivityLog is a bounded, recent-biased ring of per-player log lines.
// Once full, each Add overwrites the oldest entry.
type ActivityLog struct {
	entries []string
	next    int
	full    bool
}

// NewActivityLog creates a log bounded at the configured capacity.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{
		entries: make([]string, parameter.ActivityLogCap),
	}
}

// Add appends a line, evicting the oldest when full.
func (l *ActivityLog) Add(line string) {
	l.entries[l.next] = line
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}
}

// Addf formats and appends a line.
func (l *ActivityLog) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Len returns the number of retained lines.
func (l *ActivityLog) Len() int {
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Entries returns retained lines oldest first.
func (l *ActivityLog) Entries() []string {
	if !l.full {
		out := make([]string, l.next)
		copy(out, l.entries[:l.next])
		return out
	}
	out := make([]string, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}

// Contains reports whether any retained line contains substr.
func (l *ActivityLog) Contains(substr string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
