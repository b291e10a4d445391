package state

import (
	"fmt"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/field"
)

// contactDoc is the persisted shape of a record. Unset optional values are
// written as field.Absent.
type contactDoc struct {
	Name     string   `json:"name_"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday"`
	Address  string   `json:"address"`
	Email    string   `json:"email"`
}

// ContactStore reads and writes a contact book at a fixed path.
type ContactStore struct {
	path string
}

// NewContactStore creates a ContactStore backed by the file at path.
func NewContactStore(path string) *ContactStore {
	return &ContactStore{path: path}
}

// Path returns the backing file path.
func (s *ContactStore) Path() string { return s.path }

// Load reads the contact book. A missing file yields an empty book. A file
// that is not valid JSON yields an empty book and an error wrapping
// ErrCorrupt. Records are rebuilt through book.NewRecord, so an invalid
// persisted value fails with its field's validation error.
func (s *ContactStore) Load() (*book.ContactBook, error) {
	b := book.NewContactBook()

	var docs []contactDoc
	if err := readDocument(s.path, &docs); err != nil {
		return b, err
	}

	for i, d := range docs {
		r, err := book.NewRecord(book.RecordInput{
			Name:     d.Name,
			Phones:   d.Phones,
			Birthday: d.Birthday,
			Address:  d.Address,
			Email:    d.Email,
		})
		if err != nil {
			return book.NewContactBook(), fmt.Errorf("state: %s entry %d: %w", s.path, i, err)
		}
		b.Put(r)
	}
	return b, nil
}

// Save overwrites the file with every record in book order.
func (s *ContactStore) Save(b *book.ContactBook) error {
	docs := make([]contactDoc, 0, b.Len())
	for r := range b.Records() {
		docs = append(docs, toContactDoc(r))
	}
	return writeDocument(s.path, docs)
}

func toContactDoc(r *book.Record) contactDoc {
	d := contactDoc{
		Name:     r.Name(),
		Phones:   r.Phones(),
		Birthday: r.Birthday().String(),
		Address:  field.Absent,
		Email:    field.Absent,
	}
	if a, ok := r.Address(); ok {
		d.Address = a
	}
	if e, ok := r.Email(); ok {
		d.Email = e
	}
	return d
}
