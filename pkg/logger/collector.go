package logger

import (
	"sort"
	"sync"
	"time"
)

// AggregatedLogEntry is one distinct warning or error with its repeat count.
type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"` // fields of the first occurrence
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// Collector tallies repeated log entries so a batch pass can report
// "N occurrences of X" instead of only a stream of lines.
// Entries are keyed by level, message and caller; per-occurrence fields do not split them.
type Collector struct {
	mu      sync.Mutex
	entries map[string]*AggregatedLogEntry
	now     func() time.Time
}

func NewCollector() *Collector {
	return &Collector{
		entries: make(map[string]*AggregatedLogEntry),
		now:     time.Now,
	}
}

func (c *Collector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := c.now()
	key := level + "\x00" + message + "\x00" + caller

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.Count++
		entry.LastSeen = now
		return
	}
	c.entries[key] = &AggregatedLogEntry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Entries returns a snapshot ordered by first occurrence.
func (c *Collector) Entries() []AggregatedLogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]AggregatedLogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstSeen.Equal(out[j].FirstSeen) {
			return out[i].Message < out[j].Message
		}
		return out[i].FirstSeen.Before(out[j].FirstSeen)
	})
	return out
}

// Total returns the number of collected occurrences for a level ("" for all levels).
func (c *Collector) Total(level string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if level == "" || e.Level == level {
			n += e.Count
		}
	}
	return n
}

// Flush logs one summary line per distinct entry through l and resets the tally.
func (c *Collector) Flush(l *Logger) []AggregatedLogEntry {
	entries := c.Entries()

	c.mu.Lock()
	c.entries = make(map[string]*AggregatedLogEntry)
	c.mu.Unlock()

	for _, e := range entries {
		l.Info("collected log summary",
			String("level", e.Level),
			String("message", e.Message),
			Int("count", e.Count),
			String("caller", e.Caller),
		)
	}
	return entries
}
