package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contactbook/internal/bot"
)

// Shell reads command lines until a stop command, end of input or
// cancellation.
type Shell interface {
	Run(ctx context.Context) error
}

// ShellOptions configures shell creation.
type ShellOptions struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the line loop even if TTY.
}

// NewShell returns a TUI shell when both ends are terminals, or a plain
// line loop otherwise. ForcePlain overrides TTY detection.
func NewShell(exec Executor, opts ShellOptions) Shell {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	plain := &PlainShell{exec: exec, in: opts.In, out: opts.Out}
	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return plain
	}
	return &TUIShell{exec: exec, in: opts.In, out: opts.Out, fallback: plain}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainShell prompts and reads one line at a time.
type PlainShell struct {
	exec Executor
	in   io.Reader
	out  io.Writer
}

// Run loops until a stop command, end of input or cancellation. Command
// failures are printed and the loop continues. Cancellation is noticed even
// while waiting for input.
func (s *PlainShell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_, _ = fmt.Fprintln(s.out, Greeting)
	lines, scanErr := readLines(ctx, s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(s.out, Prompt)

		var line string
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(s.out)
				return <-scanErr
			}
			line = l
		}

		out, err := s.exec.Execute(line)
		if out != "" {
			_, _ = fmt.Fprintln(s.out, out)
		}
		if errors.Is(err, bot.ErrStop) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "Error: %s\n", err)
		}
	}
}

// readLines scans r in a goroutine. Exactly one error (nil at end of input,
// ctx.Err() once ctx is done) is sent before lines closes. A read already
// blocked in r returns only when r does.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- sc.Err()
	}()
	return lines, scanErr
}

// TUIShell runs the Bubble Tea prompt.
// Falls back to PlainShell if the program fails to start.
type TUIShell struct {
	exec     Executor
	in       io.Reader
	out      io.Writer
	fallback *PlainShell
}

// Run starts the program and blocks until it exits.
func (s *TUIShell) Run(ctx context.Context) error {
	p := tea.NewProgram(NewModel(s.exec),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)
	_, err := p.Run()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrProgramKilled), ctx.Err() != nil:
		return ctx.Err()
	default:
		return s.fallback.Run(ctx)
	}
}
