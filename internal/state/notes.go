package state

import (
	"fmt"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/field"
)

// noteDoc is the persisted shape of a note.
type noteDoc struct {
	Name         string   `json:"name_"`
	ProjectRole  string   `json:"project_role"`
	ProjectTasks string   `json:"project_tasks"`
	Hobbies      []string `json:"hobbies"`
}

// NoteStore reads and writes a note book at a fixed path.
type NoteStore struct {
	path string
}

// NewNoteStore creates a NoteStore backed by the file at path.
func NewNoteStore(path string) *NoteStore {
	return &NoteStore{path: path}
}

// Path returns the backing file path.
func (s *NoteStore) Path() string { return s.path }

// Load reads the note book with the same missing and corrupt file handling
// as ContactStore.Load.
func (s *NoteStore) Load() (*book.NoteBook, error) {
	b := book.NewNoteBook()

	var docs []noteDoc
	if err := readDocument(s.path, &docs); err != nil {
		return b, err
	}

	for i, d := range docs {
		n, err := book.NewNote(book.NoteInput{
			Name:         d.Name,
			ProjectRole:  orEmpty(d.ProjectRole),
			ProjectTasks: orEmpty(d.ProjectTasks),
			Hobbies:      d.Hobbies,
		})
		if err != nil {
			return book.NewNoteBook(), fmt.Errorf("state: %s entry %d: %w", s.path, i, err)
		}
		b.Put(n)
	}
	return b, nil
}

// Save overwrites the file with every note in book order.
func (s *NoteStore) Save(b *book.NoteBook) error {
	docs := make([]noteDoc, 0, b.Len())
	for _, n := range b.All() {
		docs = append(docs, noteDoc{
			Name:         n.Name(),
			ProjectRole:  n.ProjectRole(),
			ProjectTasks: n.ProjectTasks(),
			Hobbies:      n.Hobbies(),
		})
	}
	return writeDocument(s.path, docs)
}

// orEmpty maps the absent marker written by older files to "".
func orEmpty(s string) string {
	if s == field.Absent {
		return ""
	}
	return s
}
