package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/bot"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/field"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/state"
	"github.com/smileynet/contactbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Extra config file, applied after user and project config." type:"path"`
	Contacts string `help:"Contacts data file (overrides config)."`
	Notes    string `help:"Notes data file (overrides config)."`
}

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Exec    ExecCmd          `cmd:"" help:"Run a single assistant command and save."`
}

// ShellCmd runs the interactive prompt until close or exit.
type ShellCmd struct {
	NoTUI bool `help:"Force the plain line prompt even if stdin and stdout are a TTY." default:"false"`
}

// ExecCmd runs one command line against the saved books.
type ExecCmd struct {
	Command string   `arg:"" help:"Assistant command, e.g. add or birthdays."`
	Args    []string `arg:"" optional:"" help:"Command arguments."`
}

// app holds everything a command needs once config is resolved.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *state.Session
	bot     *bot.Bot
}

// loadConfig loads layered config from user, project and explicit paths
// with env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook/config.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.Contacts != "" {
		cfg.Storage.ContactsPath = g.Contacts
	}
	if g.Notes != "" {
		cfg.Storage.NotesPath = g.Notes
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp opens the session described by cfg, logging to logw.
func openApp(cfg *config.Config, logw io.Writer) (*app, error) {
	logger := logging.New(logw, logging.ParseLevel(cfg.Log.Level))
	slog.SetDefault(logger)

	sess, err := state.Open(cfg.Storage.ContactsPath, cfg.Storage.NotesPath, logger)
	if err != nil {
		return nil, err
	}
	b := bot.New(sess.Contacts, sess.Notes,
		bot.WithLogger(logger),
		bot.WithBirthdayDays(cfg.Birthdays.DefaultDays),
	)
	return &app{cfg: cfg, logger: logger, session: sess, bot: b}, nil
}

// close saves the books, folding any save failure into err.
func (a *app) close(err *error) {
	if cerr := a.session.Close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("saving: %w", cerr))
	}
}

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	a, err := openApp(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, a, os.Stdin, os.Stdout)
}

// run drives the shell and saves on the way out, including after an
// interrupt.
func (s *ShellCmd) run(ctx context.Context, a *app, in io.Reader, out io.Writer) (err error) {
	defer a.close(&err)

	sh := tui.NewShell(a.bot, tui.ShellOptions{
		In:         in,
		Out:        out,
		ForcePlain: s.NoTUI || a.cfg.Shell.Plain,
	})
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

// Run executes the exec command.
func (e *ExecCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	a, err := openApp(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return e.run(a, os.Stdout)
}

// run executes one line. The books are saved even when the command fails.
func (e *ExecCmd) run(a *app, w io.Writer) (err error) {
	defer a.close(&err)

	line := strings.Join(append([]string{e.Command}, e.Args...), " ")
	out, err := a.bot.Execute(line)
	if out != "" {
		_, _ = fmt.Fprintln(w, out)
	}
	if err != nil && !errors.Is(err, bot.ErrStop) {
		return err
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range []error{
		bot.ErrUnsupported, bot.ErrUsage,
		book.ErrNotFound, book.ErrAlreadyExists,
		field.ErrInvalid,
	} {
		if errors.Is(err, target) {
			return exitCommand
		}
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("An assistant for contacts and notes."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
