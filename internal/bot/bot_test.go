package bot

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/field"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	today := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	return New(book.NewContactBook(), book.NewNoteBook(), WithClock(func() time.Time { return today }))
}

// run executes each line and fails the test on any error.
func run(t *testing.T, b *Bot, lines ...string) string {
	t.Helper()
	var out string
	for _, line := range lines {
		var err error
		out, err = b.Execute(line)
		if err != nil {
			t.Fatalf("Execute(%q) error: %v", line, err)
		}
	}
	return out
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		line     string
		wantCmd  string
		wantArgs []string
	}{
		{"", "", nil},
		{"   ", "", nil},
		{"ADD John 0123456789", "add", []string{"John", "0123456789"}},
		{"  all  ", "all", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			cmd, args := ParseInput(tc.line)
			if cmd != tc.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tc.wantCmd)
			}
			if len(args) != len(tc.wantArgs) || !slices.Equal(args, tc.wantArgs) {
				t.Errorf("args = %q, want %q", args, tc.wantArgs)
			}
		})
	}
}

func TestExecute_EmptyLine(t *testing.T) {
	b := newTestBot(t)
	out, err := b.Execute("   ")
	if err != nil || out != "" {
		t.Errorf("Execute(blank) = %q, %v; want empty", out, err)
	}
}

func TestExecute_Unsupported(t *testing.T) {
	b := newTestBot(t)
	_, err := b.Execute("frobnicate")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestExecute_Stop(t *testing.T) {
	for _, name := range []string{"close", "exit", "EXIT"} {
		t.Run(name, func(t *testing.T) {
			b := newTestBot(t)
			out, err := b.Execute(name)
			if !errors.Is(err, ErrStop) {
				t.Fatalf("err = %v, want ErrStop", err)
			}
			if !strings.Contains(out, "Good bye!") {
				t.Errorf("out = %q, want farewell", out)
			}
		})
	}
}

func TestExecute_Hello(t *testing.T) {
	b := newTestBot(t)
	if got := run(t, b, "hello"); got != "How can I help you?" {
		t.Errorf("hello = %q", got)
	}
	got := run(t, b, "hello there")
	if !strings.HasPrefix(got, "Warning: Command doesn't expect any arguments") {
		t.Errorf("hello with args = %q, want warning prefix", got)
	}
}

func TestExecute_AddContact(t *testing.T) {
	// Given an empty book
	b := newTestBot(t)

	// When a contact is added
	out := run(t, b, "add John 0123456789")

	// Then it is stored and reported
	if out != "Contact John created with phone: 0123456789." {
		t.Errorf("out = %q", out)
	}
	r, err := b.contacts.Find("John")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !slices.Equal(r.Phones(), []string{"0123456789"}) {
		t.Errorf("phones = %v", r.Phones())
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		line    string
		wantErr error
	}{
		{"duplicate add", []string{"add John 0123456789"}, "add John 1111111111", book.ErrAlreadyExists},
		{"invalid phone", nil, "add John 123", field.ErrInvalid},
		{"missing arguments", nil, "add John", ErrUsage},
		{"unknown contact", nil, "phone Nobody", book.ErrNotFound},
		{"invalid birthday", []string{"add John 0123456789"}, "add-birthday John 2024-01-01", field.ErrInvalid},
		{"invalid email", []string{"add John 0123456789"}, "add-email John nope", field.ErrInvalid},
		{"missing phone", []string{"add John 0123456789"}, "delete-phone John 9999999999", book.ErrNotFound},
		{"bad days", nil, "birthdays soon", ErrUsage},
		{"duplicate note", []string{"add-note Ann dev"}, "add-note Ann qa", book.ErrAlreadyExists},
		{"unknown hobby", []string{"add-note Ann dev"}, "delete-hobby Ann chess", book.ErrNotFound},
		{"no role matches", []string{"add-note Ann dev"}, "find-role qa", book.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBot(t)
			run(t, b, tc.setup...)

			_, err := b.Execute(tc.line)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "command '") {
				t.Errorf("err = %q, want command prefix", err)
			}
		})
	}
}

func TestExecute_PhoneLifecycle(t *testing.T) {
	b := newTestBot(t)
	run(t, b, "add John 0123456789")

	out := run(t, b, "add-phone John 1111111111")
	if out != "Contact John phones: 0123456789; 1111111111." {
		t.Errorf("add-phone = %q", out)
	}

	out = run(t, b, "add-phone John 1111111111")
	if !strings.Contains(out, "Warning: phone 1111111111 was already present for John, skipping") {
		t.Errorf("duplicate add-phone = %q, want warning", out)
	}

	run(t, b, "update-phone John 1111111111 2222222222", "delete-phone John 0123456789")
	r, _ := b.contacts.Find("John")
	if !slices.Equal(r.Phones(), []string{"2222222222"}) {
		t.Errorf("phones = %v, want [2222222222]", r.Phones())
	}

	run(t, b, "change John 3333333333")
	r, _ = b.contacts.Find("John")
	if !slices.Equal(r.Phones(), []string{"3333333333"}) {
		t.Errorf("phones after change = %v", r.Phones())
	}
}

func TestExecute_OptionalFields(t *testing.T) {
	b := newTestBot(t)
	run(t, b,
		"add John 0123456789",
		"add-birthday John 1990.03.05",
		"add-address John 1 Main Street",
		"add-email John john@example.com",
	)

	if got := run(t, b, "show-birthday John"); got != "User's John birthday is: 1990.03.05" {
		t.Errorf("show-birthday = %q", got)
	}
	got := run(t, b, "phone John")
	for _, want := range []string{"contact email: john@example.com", "birthday: 1990.03.05", "address: 1 Main Street"} {
		if !strings.Contains(got, want) {
			t.Errorf("phone output missing %q:\n%s", want, got)
		}
	}

	run(t, b, "delete-birthday John", "delete-address John", "delete-email John")
	got = run(t, b, "phone John")
	if !strings.Contains(got, "birthday: None") || strings.Contains(got, "address:") || strings.Contains(got, "email") {
		t.Errorf("after deletes = %q", got)
	}
}

func TestExecute_UpdateOptionalFields(t *testing.T) {
	// Given a contact with every optional field set
	b := newTestBot(t)
	run(t, b,
		"add John 0123456789",
		"add-birthday John 1990.03.05",
		"add-address John 1 Main Street",
		"add-email John john@example.com",
	)

	// When each field is replaced through its update command
	run(t, b,
		"update-birthday John 1991.04.06",
		"update-address John 2 High Road",
		"update-email John ïvan@mail.com",
	)

	// Then the new values replace the old ones
	r, err := b.contacts.Find("John")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Birthday().String(); got != "1991.04.06" {
		t.Errorf("birthday = %s, want 1991.04.06", got)
	}
	if got, _ := r.Address(); got != "2 High Road" {
		t.Errorf("address = %q, want %q", got, "2 High Road")
	}
	if got, _ := r.Email(); got != "ïvan@mail.com" {
		t.Errorf("email = %q, want %q", got, "ïvan@mail.com")
	}

	// And invalid replacements are rejected without touching the record
	for _, line := range []string{"update-birthday John 1991-04-06", "update-email John nope"} {
		if _, err := b.Execute(line); !errors.Is(err, field.ErrInvalid) {
			t.Errorf("Execute(%q) = %v, want ErrInvalid", line, err)
		}
	}
	if got := r.Birthday().String(); got != "1991.04.06" {
		t.Errorf("birthday after rejected update = %s", got)
	}
}

func TestExecute_All(t *testing.T) {
	b := newTestBot(t)
	if got := run(t, b, "all"); got != "No contacts found" {
		t.Errorf("empty all = %q", got)
	}
	run(t, b, "add John 0123456789", "add Ann 1111111111")
	want := "All Records:\nContact name: John, phones: 0123456789\nContact name: Ann, phones: 1111111111"
	if got := run(t, b, "all"); got != want {
		t.Errorf("all = %q, want %q", got, want)
	}
}

func TestExecute_Search(t *testing.T) {
	b := newTestBot(t)
	run(t, b, "add John 0123456789", "add Ann 1111111111")

	got := run(t, b, "search 0123")
	if !strings.HasPrefix(got, "Found 1:") || !strings.Contains(got, "John") {
		t.Errorf("search by phone = %q", got)
	}
	if got := run(t, b, "search zed"); got != `No contacts match "zed"` {
		t.Errorf("search miss = %q", got)
	}
}

func TestExecute_Birthdays(t *testing.T) {
	// Given today is 2024-03-01 and John's birthday is in four days
	b := newTestBot(t)
	run(t, b,
		"add John 0123456789", "add-birthday John 1990.03.05",
		"add Ann 1111111111", "add-birthday Ann 1985.04.20",
	)

	// When birthdays are listed with the default window
	got := run(t, b, "birthdays")

	// Then only John is listed under his projected date
	want := "Contacts per day:\nHave BD on 05 Mar (Tuesday):\n Contact name: John, phones: 0123456789"
	if got != want {
		t.Errorf("birthdays = %q, want %q", got, want)
	}

	// And a wider window includes Ann
	if got := run(t, b, "birthdays 60"); !strings.Contains(got, "20 Apr (Saturday)") {
		t.Errorf("birthdays 60 = %q", got)
	}
	if got := run(t, b, "birthdays 1"); got != "No contacts found" {
		t.Errorf("birthdays 1 = %q", got)
	}
}

func TestExecute_Notes(t *testing.T) {
	b := newTestBot(t)
	if got := run(t, b, "all-notes"); got != "No notes found" {
		t.Errorf("empty all-notes = %q", got)
	}

	run(t, b,
		"add-note Ann developer fix the login page",
		"add-hobby Ann Chess",
		"add-note Bob qa",
		"add-hobby Bob chess",
	)

	got := run(t, b, "note Ann")
	want := "Note for: Ann\n\tproject role: developer\n\tproject tasks: fix the login page\n\thobbies: Chess"
	if got != want {
		t.Errorf("note = %q, want %q", got, want)
	}

	if got := run(t, b, "find-hobby CHESS"); !strings.HasPrefix(got, "Found 2:") {
		t.Errorf("find-hobby = %q", got)
	}
	if got := run(t, b, "find-role qa"); !strings.HasPrefix(got, "Found 1:") {
		t.Errorf("find-role = %q", got)
	}

	got = run(t, b, "add-hobby Ann chess")
	if !strings.Contains(got, "Warning: hobby chess was already present for Ann, skipping") {
		t.Errorf("duplicate hobby = %q", got)
	}

	run(t, b, "update-hobby Ann chess go", "update-role Ann lead", "update-tasks Ann ship it")
	n, _ := b.notes.Find("Ann")
	if n.ProjectRole() != "lead" || n.ProjectTasks() != "ship it" || !slices.Equal(n.Hobbies(), []string{"go"}) {
		t.Errorf("note after updates = %s", n)
	}

	run(t, b, "delete-note Bob")
	if b.notes.Len() != 1 {
		t.Errorf("notes = %d, want 1", b.notes.Len())
	}
}

func TestSuggestions(t *testing.T) {
	b := newTestBot(t)
	run(t, b, "add John 0123456789", "add-note Ann dev")

	got := b.Suggestions()
	for _, want := range []string{"add", "phone John", "delete-contact John", "note Ann", "add-hobby Ann"} {
		if !slices.Contains(got, want) {
			t.Errorf("Suggestions missing %q", want)
		}
	}
	if slices.Contains(got, "note John") || slices.Contains(got, "add John") {
		t.Error("Suggestions offered a name for the wrong command")
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	b := newTestBot(t)
	got := run(t, b, "help")
	for _, name := range b.Commands() {
		if !strings.Contains(got, b.commands[name].usage) {
			t.Errorf("help missing %q", name)
		}
	}
}
