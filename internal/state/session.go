package state

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/smileynet/contactbook/internal/book"
)

// Session holds both books for the lifetime of one process. Open loads
// them, Close writes them back exactly once.
type Session struct {
	Contacts *book.ContactBook
	Notes    *book.NoteBook

	contactStore *ContactStore
	noteStore    *NoteStore
	logger       *slog.Logger
	closed       bool
}

// Open loads the contact and note books from their paths. A corrupt file is
// renamed to <path>.corrupt and replaced by an empty book so the next save
// cannot overwrite it. Any other load failure is returned.
func Open(contactsPath, notesPath string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		contactStore: NewContactStore(contactsPath),
		noteStore:    NewNoteStore(notesPath),
		logger:       logger,
	}

	notes, err := s.noteStore.Load()
	if err := s.absorb(s.noteStore.Path(), err); err != nil {
		return nil, err
	}
	s.Notes = notes
	logger.Debug("Loaded notes", "path", notesPath, "count", notes.Len())

	contacts, err := s.contactStore.Load()
	if err := s.absorb(s.contactStore.Path(), err); err != nil {
		return nil, err
	}
	s.Contacts = contacts
	logger.Debug("Loaded contacts", "path", contactsPath, "count", contacts.Len())

	return s, nil
}

// absorb turns a corrupt-file error into a logged warning after moving the
// file aside. Other errors pass through.
func (s *Session) absorb(path string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCorrupt) {
		return fmt.Errorf("state: open: %w", err)
	}
	backup, berr := backupPath(path)
	if berr != nil {
		return berr
	}
	if rerr := os.Rename(path, backup); rerr != nil {
		return fmt.Errorf("state: moving corrupt %s aside: %w", path, rerr)
	}
	s.logger.Warn("Data file is not valid JSON, starting empty", "path", path, "backup", backup, "error", err)
	return nil
}

// backupPath returns the first of <path>.corrupt, <path>.corrupt.1, ... that
// does not exist yet, so earlier backups are never overwritten.
func backupPath(path string) (string, error) {
	candidate := path + ".corrupt"
	for i := 1; ; i++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("state: checking backup %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s.corrupt.%d", path, i)
	}
}

// Close saves notes then contacts. Later calls are no-ops. Both saves are
// attempted even if the first fails.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.noteStore.Save(s.Notes); err != nil {
		errs = append(errs, err)
	} else {
		s.logger.Debug("Saved notes", "path", s.noteStore.Path(), "count", s.Notes.Len())
	}
	if err := s.contactStore.Save(s.Contacts); err != nil {
		errs = append(errs, err)
	} else {
		s.logger.Debug("Saved contacts", "path", s.contactStore.Path(), "count", s.Contacts.Len())
	}
	return errors.Join(errs...)
}
