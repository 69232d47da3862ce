// Package feed keeps the most recent command outcomes for the activity
// strip at the bottom of the panels. It is a fixed-capacity ring: old
// entries fall off, nothing is ever written to disk.
package feed

import (
	"sync"
	"time"
)

// DefaultCapacity is how many entries the app keeps when no explicit
// capacity is given.
const DefaultCapacity = 50

// Entry is one feed line.
type Entry struct {
	At   time.Time
	Text string
	Err  bool
}

// Clock renders the entry timestamp the way the feed displays it.
func (e Entry) Clock() string {
	return e.At.Format("15:04:05")
}

// Feed is a fixed-capacity ring of the most recent entries, newest last.
// Safe for concurrent use; the app seeds it before the UI starts and
// command results append afterwards.
type Feed struct {
	mu    sync.Mutex
	ring  []Entry
	idx   int
	count int
	now   func() time.Time
}

// New returns a feed holding at most capacity entries. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{ring: make([]Entry, capacity), now: time.Now}
}

// Add appends an informational entry.
func (f *Feed) Add(text string) {
	f.push(Entry{Text: text})
}

// AddError appends a failure entry.
func (f *Feed) AddError(text string) {
	f.push(Entry{Text: text, Err: true})
}

func (f *Feed) push(e Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e.At = f.now()
	f.ring[f.idx] = e
	f.idx = (f.idx + 1) % len(f.ring)
	if f.count < len(f.ring) {
		f.count++
	}
}

// Entries returns the retained entries oldest first.
func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]Entry, f.count)
	if f.count == len(f.ring) {
		for i := 0; i < f.count; i++ {
			entries[i] = f.ring[(f.idx+i)%len(f.ring)]
		}
	} else {
		copy(entries, f.ring[:f.count])
	}
	return entries
}

// Tail returns at most n of the newest entries, oldest first.
func (f *Feed) Tail(n int) []Entry {
	entries := f.Entries()
	if n <= 0 {
		return nil
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}
