package repl

import (
	"fmt"
	"io"
)

// History keeps the lines entered during one shell session. It is never
// written to disk since lines may carry passwords.
type History struct {
	entries []string
	maxSize int
}

// NewHistory creates a new History instance.
func NewHistory() *History {
	return &History{
		entries: make([]string, 0),
		maxSize: 1000,
	}
}

// Add adds a command to history.
func (h *History) Add(cmd string) {
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Get returns the history entry at index (0 = most recent).
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Print writes the entries oldest first, numbered from 1
func (h *History) Print(w io.Writer) {
	for i, entry := range h.entries {
		fmt.Fprintf(w, "%4d  %s\n", i+1, entry)
	}
}
