package book

import (
	"fmt"
	"iter"
)

// ContactBook stores records keyed by name in insertion order.
type ContactBook struct {
	records index[*Record]
}

// NewContactBook returns an empty ContactBook.
func NewContactBook() *ContactBook {
	return &ContactBook{records: newIndex[*Record]()}
}

// Add inserts r if no record has its name. It returns the stored record and
// true, or nil and false when the name is already taken; the existing record
// is left untouched.
func (b *ContactBook) Add(r *Record) (*Record, bool) {
	if !b.records.add(r) {
		return nil, false
	}
	return r, true
}

// Put inserts r, replacing any record with the same name in place.
func (b *ContactBook) Put(r *Record) {
	b.records.put(r)
}

// Find returns the record with the given name.
func (b *ContactBook) Find(name string) (*Record, error) {
	r, ok := b.records.get(name)
	if !ok {
		return nil, fmt.Errorf("%w: record for user %s", ErrNotFound, name)
	}
	return r, nil
}

// Delete removes the record with the given name.
func (b *ContactBook) Delete(name string) error {
	if !b.records.remove(name) {
		return fmt.Errorf("%w: record for user %s", ErrNotFound, name)
	}
	return nil
}

// All returns every record in insertion order.
func (b *ContactBook) All() []*Record {
	return b.records.all()
}

// Records yields every record in insertion order. The sequence may be
// ranged over more than once.
func (b *ContactBook) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range b.records.all() {
			if !yield(r) {
				return
			}
		}
	}
}

// Names returns a snapshot of all record names in insertion order.
func (b *ContactBook) Names() []string {
	return b.records.names()
}

// Len returns the number of records.
func (b *ContactBook) Len() int {
	return len(b.records.order)
}
