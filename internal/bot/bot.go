// Package bot turns command lines into calls on the contact and note books
// and formats the results as text.
package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/smileynet/contactbook/internal/book"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrStop        = errors.New("bot: stop requested")
	ErrUnsupported = errors.New("bot: command not supported")
	ErrUsage       = errors.New("bot: wrong arguments")
)

// nameKind says which book a command's first argument names, for suggestions.
type nameKind int

const (
	noName nameKind = iota
	contactName
	noteName
)

type handler func(args []string) (string, error)

type command struct {
	usage string
	help  string
	names nameKind
	run   handler
}

// Bot dispatches command lines to the books it was built with.
type Bot struct {
	contacts     *book.ContactBook
	notes        *book.NoteBook
	logger       *slog.Logger
	now          func() time.Time
	birthdayDays int
	commands     map[string]command
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// WithClock sets the source of "today" for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

// WithBirthdayDays sets the window used by birthdays when no count is given.
func WithBirthdayDays(days int) Option {
	return func(b *Bot) { b.birthdayDays = days }
}

// New creates a Bot over the given books.
func New(contacts *book.ContactBook, notes *book.NoteBook, opts ...Option) *Bot {
	b := &Bot{
		contacts:     contacts,
		notes:        notes,
		logger:       slog.Default(),
		now:          time.Now,
		birthdayDays: 7,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.commands = b.contactCommands()
	for name, c := range b.noteCommands() {
		b.commands[name] = c
	}
	b.commands["hello"] = command{usage: "hello", help: "greet", run: b.hello}
	b.commands["help"] = command{usage: "help", help: "list commands", run: b.listCommands}
	b.commands["close"] = command{usage: "close", help: "save and quit", run: b.stop("close")}
	b.commands["exit"] = command{usage: "exit", help: "save and quit", run: b.stop("exit")}
	return b
}

// ParseInput splits a line on whitespace into a casefolded command and its
// arguments. An empty line yields an empty command.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Execute runs one command line and returns its text output. Stop commands
// return their farewell text together with ErrStop. Failures are wrapped
// with the command name.
func (b *Bot) Execute(line string) (string, error) {
	name, args := ParseInput(line)
	if name == "" {
		return "", nil
	}
	cmd, ok := b.commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (try: help)", ErrUnsupported, name)
	}
	out, err := cmd.run(args)
	if err != nil {
		if errors.Is(err, ErrStop) {
			return out, err
		}
		return out, fmt.Errorf("command '%s' failed: %w", name, err)
	}
	return out, nil
}

// Commands returns every command name, sorted.
func (b *Bot) Commands() []string {
	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Suggestions returns completions for the interactive shell: every command,
// plus "<command> <name>" for commands whose first argument is a contact
// or note name.
func (b *Bot) Suggestions() []string {
	contacts := b.contacts.Names()
	notes := b.notes.Names()

	var out []string
	for _, name := range b.Commands() {
		out = append(out, name)
		switch b.commands[name].names {
		case contactName:
			for _, n := range contacts {
				out = append(out, name+" "+n)
			}
		case noteName:
			for _, n := range notes {
				out = append(out, name+" "+n)
			}
		}
	}
	return out
}

func (b *Bot) hello(args []string) (string, error) {
	return extraArgsWarning(args) + "How can I help you?", nil
}

func (b *Bot) listCommands(args []string) (string, error) {
	var sb strings.Builder
	sb.WriteString(extraArgsWarning(args))
	sb.WriteString("Commands:")
	for _, name := range b.Commands() {
		c := b.commands[name]
		fmt.Fprintf(&sb, "\n  %-40s %s", c.usage, c.help)
	}
	return sb.String(), nil
}

func (b *Bot) stop(name string) handler {
	return func([]string) (string, error) {
		return fmt.Sprintf("Command '%s' received. Good bye!", name), ErrStop
	}
}

// warn reports a duplicate as an output line and a debug log entry.
func (b *Bot) warn(w *book.DuplicateWarning) string {
	if w == nil {
		return ""
	}
	b.logger.Debug("Duplicate value skipped", "field", w.Field, "value", w.Value, "owner", w.Owner)
	return "\nWarning: " + w.String()
}

// extraArgsWarning notes arguments given to commands that take none.
func extraArgsWarning(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprintf("Warning: Command doesn't expect any arguments. Received: %s\n", strings.Join(args, " "))
}

// exactly checks the argument count, naming the expected arguments on failure.
func exactly(args []string, n int, what string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %s, received: %q", ErrUsage, what, strings.Join(args, " "))
	}
	return nil
}

// atLeast checks for a minimum argument count.
func atLeast(args []string, n int, what string) error {
	if len(args) < n {
		return fmt.Errorf("%w: expected %s, received: %q", ErrUsage, what, strings.Join(args, " "))
	}
	return nil
}
