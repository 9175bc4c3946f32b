// Package collection holds the count-weighted card sample built by a
// sampling run.
package collection

import (
	"iter"
	"sort"
	"strings"

	"github.com/ramonehamilton/beejlander/internal/cards/cardtext"
)

// Entry is one distinct card in the collection and how many copies it has.
type Entry struct {
	Record cardtext.Record
	Count  int
}

// Collection maps canonical card names to entries. It is not safe for
// concurrent use: a sampling run is its only writer.
type Collection struct {
	entries map[string]*Entry
	total   int
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{
		entries: make(map[string]*Entry),
	}
}

// CanonicalName returns the deduplication key for a card name.
func CanonicalName(name string) string {
	return strings.TrimSpace(name)
}

// Contains reports whether a card with this name is present.
func (c *Collection) Contains(name string) bool {
	_, ok := c.entries[CanonicalName(name)]
	return ok
}

// Get returns a copy of the entry for a name.
func (c *Collection) Get(name string) (Entry, bool) {
	e, ok := c.entries[CanonicalName(name)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Add inserts a record with count 1. If the name is already present nothing
// changes and duplicate is true; use Increment to absorb the duplicate.
func (c *Collection) Add(record cardtext.Record) (duplicate bool) {
	key := CanonicalName(record.Name)
	if _, ok := c.entries[key]; ok {
		return true
	}
	record.Name = key
	c.entries[key] = &Entry{Record: record, Count: 1}
	c.total++
	return false
}

// Increment adds one copy of an existing card. It returns false if the name
// is unknown.
func (c *Collection) Increment(name string) bool {
	e, ok := c.entries[CanonicalName(name)]
	if !ok {
		return false
	}
	e.Count++
	c.total++
	return true
}

// Len returns the number of distinct cards.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Total returns the sum of all counts.
func (c *Collection) Total() int {
	return c.total
}

// Entries returns copies of all entries sorted by name.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Record.Name < out[j].Record.Name
	})
	return out
}

// Counts yields (count, name) pairs sorted by name.
func (c *Collection) Counts() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, e := range c.Entries() {
			if !yield(e.Count, e.Record.Name) {
				return
			}
		}
	}
}
