// Package tui provides the interactive shell: a Bubble Tea prompt with
// command completion on terminals and a line-oriented loop elsewhere.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/bot"
)

// Executor runs one command line. bot.Bot satisfies it.
type Executor interface {
	Execute(line string) (string, error)
	Suggestions() []string
}

var _ Executor = (*bot.Bot)(nil)

const (
	// Greeting is printed once when a shell starts.
	Greeting = "Welcome to the assistant bot!"
	// Prompt precedes each command line.
	Prompt = "Enter a command: "

	// maxTranscript bounds the number of exchanges kept on screen.
	maxTranscript = 50
)

// exchange is one command and what it produced.
type exchange struct {
	line   string
	output string
	err    error
}

// Model is the Bubble Tea model for the interactive shell.
type Model struct {
	exec       Executor
	input      textinput.Model
	help       help.Model
	keys       keyMap
	transcript []exchange
	quitting   bool
}

// NewModel creates a Model that sends each submitted line to exec.
func NewModel(exec Executor) Model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(Prompt)
	ti.Placeholder = "help"
	ti.ShowSuggestions = true
	ti.SetSuggestions(exec.Suggestions())
	ti.Focus()

	return Model{
		exec:  exec,
		input: ti,
		help:  help.New(),
		keys:  defaultKeyMap(),
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(Prompt)-1, 0)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current line and records the exchange. A stop command
// ends the program.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	out, err := m.exec.Execute(line)
	m.transcript = append(m.transcript, exchange{line: line, output: out, err: err})
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
	if errors.Is(err, bot.ErrStop) {
		m.quitting = true
		return m, tea.Quit
	}
	m.input.SetSuggestions(m.exec.Suggestions())
	return m, nil
}

// View renders the transcript, the prompt and the help bar.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(Greeting))
	sb.WriteString("\n")

	for _, ex := range m.transcript {
		sb.WriteString(commandStyle.Render("> " + ex.line))
		sb.WriteString("\n")
		if ex.output != "" {
			sb.WriteString(renderOutput(ex.output))
			sb.WriteString("\n")
		}
		if ex.err != nil && !errors.Is(ex.err, bot.ErrStop) {
			sb.WriteString(errorStyle.Render("Error: " + ex.err.Error()))
			sb.WriteString("\n")
		}
	}

	if m.quitting {
		return sb.String()
	}
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// renderOutput highlights warning lines within command output.
func renderOutput(out string) string {
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "Warning:") {
			lines[i] = warningStyle.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
