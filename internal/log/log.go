// Package log renders the server's append-only game log for the
// terminal and MCP front ends.
package log

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dugout-tcg/client/internal/game"
)

// FormatEntry formats a single log entry as a human-readable line.
func FormatEntry(e game.LogEntry) string {
	who := e.PlayerID
	if who == "" {
		who = "          "
	}
	// Pad the player column for alignment.
	for len(who) < 12 {
		who += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, who, e.Message)
}

// FormatAll formats all entries as a multi-line string.
func FormatAll(entries []game.LogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(FormatEntry(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Buffer tracks how much of the snapshot log has already been shown.
// The server log is append-only, so the suffix past the last observed
// length is exactly the set of new entries.
type Buffer struct {
	mu   sync.Mutex
	seen int
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Drain returns the entries not yet observed and advances the cursor.
// A log shorter than the cursor means a new game started; the whole
// log is new again.
func (b *Buffer) Drain(entries []game.LogEntry) []game.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(entries) < b.seen {
		b.seen = 0
	}
	fresh := entries[b.seen:]
	b.seen = len(entries)
	if len(fresh) == 0 {
		return nil
	}
	out := make([]game.LogEntry, len(fresh))
	copy(out, fresh)
	return out
}

// Reset rewinds the cursor so the next Drain reports everything.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.seen = 0
	b.mu.Unlock()
}
