package validation

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// SummaryEntry is one line of the error summary: the first message of a
// summarized property.
type SummaryEntry struct {
	Property string
	Order    int
	Message  string
}

type errorEntry struct {
	messages   []string
	order      int
	summarized bool
	seq        uint64
}

type errorState struct {
	entries map[string]errorEntry
	seq     uint64
}

// Aggregator holds the authoritative mapping from property name to its
// current error messages. Reads never block; writes are serialized and each
// write replaces the whole state atomically.
type Aggregator struct {
	mu    sync.Mutex
	state atomic.Pointer[errorState]
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	a := &Aggregator{}
	a.state.Store(&errorState{entries: map[string]errorEntry{}})
	return a
}

// Errors returns a copy of the messages stored for name, or nil.
func (a *Aggregator) Errors(name string) []string {
	return slices.Clone(a.state.Load().entries[name].messages)
}

// HasErrors reports whether any property has at least one message.
func (a *Aggregator) HasErrors() bool {
	return len(a.state.Load().entries) > 0
}

// Names returns the properties with errors, sorted.
func (a *Aggregator) Names() []string {
	return slices.Sorted(maps.Keys(a.state.Load().entries))
}

// Set stores msgs for name. An empty list removes the entry. A property that
// already has an entry keeps its arrival sequence.
func (a *Aggregator) Set(name string, msgs []string, order int, summarized bool) {
	if len(msgs) == 0 {
		a.Remove(name)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.state.Load()
	next := &errorState{entries: maps.Clone(cur.entries), seq: cur.seq}
	entry, ok := cur.entries[name]
	if !ok {
		next.seq++
		entry.seq = next.seq
	}
	entry.messages = slices.Clone(msgs)
	entry.order = order
	entry.summarized = summarized
	next.entries[name] = entry
	a.state.Store(next)
}

// Remove deletes the entry of name. It reports whether an entry existed.
func (a *Aggregator) Remove(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.state.Load()
	if _, ok := cur.entries[name]; !ok {
		return false
	}
	next := &errorState{entries: maps.Clone(cur.entries), seq: cur.seq}
	delete(next.entries, name)
	a.state.Store(next)
	return true
}

// Summary returns the summarized entries in ascending order. Entries with the
// same order keep the sequence in which they first received errors.
func (a *Aggregator) Summary() []SummaryEntry {
	cur := a.state.Load()

	type ranked struct {
		SummaryEntry
		seq uint64
	}
	var rows []ranked
	for name, e := range cur.entries {
		if !e.summarized {
			continue
		}
		rows = append(rows, ranked{
			SummaryEntry: SummaryEntry{Property: name, Order: e.order, Message: e.messages[0]},
			seq:          e.seq,
		})
	}
	slices.SortFunc(rows, func(x, y ranked) int {
		return cmp.Or(cmp.Compare(x.Order, y.Order), cmp.Compare(x.seq, y.seq))
	})

	out := make([]SummaryEntry, len(rows))
	for i, r := range rows {
		out[i] = r.SummaryEntry
	}
	return out
}

// SummaryText joins the summary messages with newlines.
func (a *Aggregator) SummaryText() string {
	var lines []string
	for _, e := range a.Summary() {
		lines = append(lines, e.Message)
	}
	return strings.Join(lines, "\n")
}
