// Package book implements the in-memory contact and note stores along with
// their query algorithms: fuzzy contact search and the birthday window.
package book

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotFound      = errors.New("book: not found")
	ErrAlreadyExists = errors.New("book: already exists")
)

// DuplicateWarning signals that an add-if-absent operation found the value
// already present. It is not an error: the operation succeeded as a no-op.
type DuplicateWarning struct {
	Field string
	Value string
	Owner string
}

func (w *DuplicateWarning) String() string {
	return fmt.Sprintf("%s %s was already present for %s, skipping", w.Field, w.Value, w.Owner)
}
