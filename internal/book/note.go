package book

import (
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/field"
)

// Note is a free-text entry about a person: project role, project tasks and
// a case-insensitive set of hobbies.
type Note struct {
	name    field.Name
	role    field.ProjectRole
	tasks   field.ProjectTasks
	hobbies []field.Hobby
}

// NoteInput carries the raw values used to build a Note.
type NoteInput struct {
	Name         string
	ProjectRole  string
	ProjectTasks string
	Hobbies      []string
}

// NewNote validates the name and builds a Note. Hobbies repeated in the
// input (ignoring case) collapse to the first spelling.
func NewNote(in NoteInput) (*Note, error) {
	name, err := field.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	n := &Note{
		name:  name,
		role:  field.NewProjectRole(in.ProjectRole),
		tasks: field.NewProjectTasks(in.ProjectTasks),
	}
	for _, h := range in.Hobbies {
		n.AddHobby(h)
	}
	return n, nil
}

// Name returns the note's key.
func (n *Note) Name() string { return n.name.String() }

// ProjectRole returns the project role.
func (n *Note) ProjectRole() string { return n.role.String() }

// ProjectTasks returns the project tasks.
func (n *Note) ProjectTasks() string { return n.tasks.String() }

// Hobbies returns a copy of the hobbies in insertion order.
func (n *Note) Hobbies() []string {
	out := make([]string, len(n.hobbies))
	for i, h := range n.hobbies {
		out[i] = h.String()
	}
	return out
}

// SetProjectRole replaces the project role.
func (n *Note) SetProjectRole(raw string) { n.role = field.NewProjectRole(raw) }

// SetProjectTasks replaces the project tasks.
func (n *Note) SetProjectTasks(raw string) { n.tasks = field.NewProjectTasks(raw) }

// AddHobby appends raw unless a hobby equal to it ignoring case exists.
func (n *Note) AddHobby(raw string) *DuplicateWarning {
	if n.indexHobby(raw) >= 0 {
		return &DuplicateWarning{Field: "hobby", Value: raw, Owner: n.Name()}
	}
	n.hobbies = append(n.hobbies, field.NewHobby(raw))
	return nil
}

// FindHobby returns the hobby equal to raw ignoring case.
func (n *Note) FindHobby(raw string) (field.Hobby, error) {
	i := n.indexHobby(raw)
	if i < 0 {
		return field.Hobby{}, fmt.Errorf("%w: hobby %s in note for %s", ErrNotFound, raw, n.Name())
	}
	return n.hobbies[i], nil
}

// RemoveHobby deletes the hobby equal to raw ignoring case.
func (n *Note) RemoveHobby(raw string) error {
	i := n.indexHobby(raw)
	if i < 0 {
		return fmt.Errorf("%w: hobby %s in note for %s", ErrNotFound, raw, n.Name())
	}
	n.hobbies = append(n.hobbies[:i], n.hobbies[i+1:]...)
	return nil
}

// EditHobby removes oldHobby then adds newHobby, with the same collapse on
// duplicates as Record.EditPhone.
func (n *Note) EditHobby(oldHobby, newHobby string) (*DuplicateWarning, error) {
	if err := n.RemoveHobby(oldHobby); err != nil {
		return nil, err
	}
	return n.AddHobby(newHobby), nil
}

// HasHobby reports whether the note lists raw ignoring case.
func (n *Note) HasHobby(raw string) bool {
	return n.indexHobby(raw) >= 0
}

func (n *Note) indexHobby(raw string) int {
	for i, h := range n.hobbies {
		if h.Matches(raw) {
			return i
		}
	}
	return -1
}

func (n *Note) String() string {
	return fmt.Sprintf("Note for: %s\n\tproject role: %s\n\tproject tasks: %s\n\thobbies: %s",
		n.Name(), n.ProjectRole(), n.ProjectTasks(), strings.Join(n.Hobbies(), "; "))
}
