package book

import (
	"testing"
)

// mustRecord builds a Record or fails the test.
func mustRecord(t *testing.T, in RecordInput) *Record {
	t.Helper()
	r, err := NewRecord(in)
	if err != nil {
		t.Fatalf("NewRecord(%+v) error = %v", in, err)
	}
	return r
}

// mustNote builds a Note or fails the test.
func mustNote(t *testing.T, in NoteInput) *Note {
	t.Helper()
	n, err := NewNote(in)
	if err != nil {
		t.Fatalf("NewNote(%+v) error = %v", in, err)
	}
	return n
}

// names extracts record names for comparison.
func names(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

// noteNames extracts note names for comparison.
func noteNames(notes []*Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Name()
	}
	return out
}
