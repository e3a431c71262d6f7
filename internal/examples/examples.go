// Package examples holds the fixed set of sample questions shown on the
// landing page and the list component that turns them into clickable items.
package examples

import "iter"

// Entry is one sample question. Text is what the user sees, Value is what
// gets handed to the selection callback.
type Entry struct {
	Text  string
	Value string
}

// NewEntry returns an entry whose display text and value are the same string.
func NewEntry(question string) Entry {
	return Entry{Text: question, Value: question}
}

var defaultEntries = [...]Entry{
	NewEntry("請告訴我展碁國際的公司概況"),
	NewEntry("展碁國際的核心價值?"),
	NewEntry("展碁國際的負責人是?"),
}

// Defaults returns a copy of the built-in example questions in display order.
func Defaults() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries[:])
	return out
}

// Collection is an ordered, read-only set of entries.
type Collection struct {
	entries []Entry
}

// NewCollection copies entries into a new Collection.
func NewCollection(entries ...Entry) Collection {
	c := Collection{entries: make([]Entry, len(entries))}
	copy(c.entries, entries)
	return c
}

// Default is the collection backing the landing page.
func Default() Collection {
	return Collection{entries: Defaults()}
}

// Len reports the number of entries.
func (c Collection) Len() int { return len(c.entries) }

// At returns the entry at index i.
func (c Collection) At(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}

// All yields index/entry pairs in insertion order.
func (c Collection) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range c.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
