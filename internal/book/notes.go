package book

import "fmt"

// NoteBook stores notes keyed by name in insertion order.
type NoteBook struct {
	notes index[*Note]
}

// NewNoteBook returns an empty NoteBook.
func NewNoteBook() *NoteBook {
	return &NoteBook{notes: newIndex[*Note]()}
}

// Add inserts n if no note has its name. It returns the stored note and
// true, or nil and false when the name is already taken.
func (b *NoteBook) Add(n *Note) (*Note, bool) {
	if !b.notes.add(n) {
		return nil, false
	}
	return n, true
}

// Put inserts n, replacing any note with the same name in place.
func (b *NoteBook) Put(n *Note) {
	b.notes.put(n)
}

// Find returns the note with the given name.
func (b *NoteBook) Find(name string) (*Note, error) {
	n, ok := b.notes.get(name)
	if !ok {
		return nil, fmt.Errorf("%w: note for %s", ErrNotFound, name)
	}
	return n, nil
}

// Delete removes the note with the given name.
func (b *NoteBook) Delete(name string) error {
	if !b.notes.remove(name) {
		return fmt.Errorf("%w: note for %s", ErrNotFound, name)
	}
	return nil
}

// All returns every note in insertion order.
func (b *NoteBook) All() []*Note {
	return b.notes.all()
}

// Names returns a snapshot of all note names in insertion order.
func (b *NoteBook) Names() []string {
	return b.notes.names()
}

// Len returns the number of notes.
func (b *NoteBook) Len() int {
	return len(b.notes.order)
}

// FindByRole returns every note whose project role equals role exactly.
func (b *NoteBook) FindByRole(role string) ([]*Note, error) {
	found := b.notes.filter(func(n *Note) bool { return n.ProjectRole() == role })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: notes with project role %s", ErrNotFound, role)
	}
	return found, nil
}

// FindByHobby returns every note listing hobby, ignoring case.
func (b *NoteBook) FindByHobby(hobby string) ([]*Note, error) {
	found := b.notes.filter(func(n *Note) bool { return n.HasHobby(hobby) })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: notes with hobby %s", ErrNotFound, hobby)
	}
	return found, nil
}
