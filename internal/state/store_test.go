package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/field"
)

func TestContactStore_SaveAndLoad(t *testing.T) {
	// Given a book with full and sparse records
	dir := t.TempDir()
	store := NewContactStore(filepath.Join(dir, "data", "users.json"))

	b := book.NewContactBook()
	inputs := []book.RecordInput{
		{Name: "Jane", Phones: []string{"0501234567", "0671234567"}, Birthday: "1990.03.07", Address: "12 Main St", Email: "jane@example.com"},
		{Name: "Bob"},
		{Name: "Carol", Phones: []string{"1234567890"}, Email: "carol@mail.org"},
	}
	for _, in := range inputs {
		r, err := book.NewRecord(in)
		if err != nil {
			t.Fatal(err)
		}
		b.Add(r)
	}

	// When Save then Load are called
	if err := store.Save(b); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Then every record round-trips with identical values
	if !slices.Equal(loaded.Names(), b.Names()) {
		t.Fatalf("Names() = %v, want %v", loaded.Names(), b.Names())
	}
	for _, want := range b.All() {
		got, err := loaded.Find(want.Name())
		if err != nil {
			t.Fatalf("Find(%s) error = %v", want.Name(), err)
		}
		if got.String() != want.String() {
			t.Errorf("record = %q, want %q", got, want)
		}
		if !slices.Equal(got.Phones(), want.Phones()) {
			t.Errorf("%s phones = %v, want %v", want.Name(), got.Phones(), want.Phones())
		}
		if got.Birthday().String() != want.Birthday().String() {
			t.Errorf("%s birthday = %s, want %s", want.Name(), got.Birthday(), want.Birthday())
		}
		ga, gaok := got.Address()
		wa, waok := want.Address()
		if ga != wa || gaok != waok {
			t.Errorf("%s address = %q/%v, want %q/%v", want.Name(), ga, gaok, wa, waok)
		}
		ge, geok := got.Email()
		we, weok := want.Email()
		if ge != we || geok != weok {
			t.Errorf("%s email = %q/%v, want %q/%v", want.Name(), ge, geok, we, weok)
		}
	}
}

func TestContactStore_SaveShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	b := book.NewContactBook()
	r, _ := book.NewRecord(book.RecordInput{Name: "Bob"})
	b.Add(r)

	if err := NewContactStore(path).Save(b); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("saved file is not a JSON array: %v", err)
	}
	want := []map[string]any{{
		"name_":    "Bob",
		"phones":   []any{},
		"birthday": field.Absent,
		"address":  field.Absent,
		"email":    field.Absent,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("saved document mismatch (-want +got):\n%s", diff)
	}
}

func TestContactStore_LoadMissingFile(t *testing.T) {
	// Given no file on disk
	store := NewContactStore(filepath.Join(t.TempDir(), "nope.json"))

	// When Load is called
	b, err := store.Load()

	// Then an empty book is returned without error
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestContactStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `[{"name_": "Jane"`},
		{name: "object instead of array", content: `{"name_": "Jane"}`},
		{name: "wrong phone type", content: `[{"name_": "Jane", "phones": 5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			b, err := NewContactStore(path).Load()

			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Load() error = %v, want ErrCorrupt", err)
			}
			if b == nil || b.Len() != 0 {
				t.Errorf("Load() book = %v, want empty book", b)
			}
		})
	}
}

func TestContactStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := NewContactStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestContactStore_LoadInvalidValue(t *testing.T) {
	// Given a well-formed file holding a malformed phone
	path := filepath.Join(t.TempDir(), "users.json")
	content := `[{"name_": "Jane", "phones": ["12"], "birthday": "None", "address": "None", "email": "None"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// When Load is called
	_, err := NewContactStore(path).Load()

	// Then it fails the way a malformed command argument would
	var ve *field.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Load() error = %v, want ValidationError", err)
	}
	if ve.Field != "phone" {
		t.Errorf("ValidationError.Field = %q, want phone", ve.Field)
	}
}

func TestContactStore_LoadDuplicateNamesLastWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	content := `[
		{"name_": "Jane", "phones": ["0501234567"]},
		{"name_": "Bob", "phones": []},
		{"name_": "Jane", "phones": ["0990000000"]}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := NewContactStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(b.Names(), []string{"Jane", "Bob"}) {
		t.Errorf("Names() = %v, want [Jane Bob]", b.Names())
	}
	jane, _ := b.Find("Jane")
	if !slices.Equal(jane.Phones(), []string{"0990000000"}) {
		t.Errorf("Jane phones = %v, want [0990000000]", jane.Phones())
	}
}

func TestNoteStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	b := book.NewNoteBook()
	n, err := book.NewNote(book.NoteInput{Name: "Jane", ProjectRole: "backend", ProjectTasks: "billing", Hobbies: []string{"Chess", "Golf"}})
	if err != nil {
		t.Fatal(err)
	}
	b.Add(n)
	empty, _ := book.NewNote(book.NoteInput{Name: "Bob"})
	b.Add(empty)

	if err := NewNoteStore(path).Save(b); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := NewNoteStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !slices.Equal(loaded.Names(), []string{"Jane", "Bob"}) {
		t.Fatalf("Names() = %v", loaded.Names())
	}
	got, _ := loaded.Find("Jane")
	if got.ProjectRole() != "backend" || got.ProjectTasks() != "billing" {
		t.Errorf("role/tasks = %q/%q", got.ProjectRole(), got.ProjectTasks())
	}
	if !slices.Equal(got.Hobbies(), []string{"Chess", "Golf"}) {
		t.Errorf("Hobbies() = %v", got.Hobbies())
	}
}

func TestNoteStore_LoadAbsentMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	content := `[{"name_": "Jane", "project_role": "qa", "project_tasks": "None", "hobbies": []}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := NewNoteStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	n, _ := b.Find("Jane")
	if n.ProjectTasks() != "" {
		t.Errorf("ProjectTasks() = %q, want empty", n.ProjectTasks())
	}
}

func TestNoteStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := NewNoteStore(path).Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}
