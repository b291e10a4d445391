package bot

import (
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/book"
)

func (b *Bot) noteCommands() map[string]command {
	return map[string]command{
		"add-note":     {usage: "add-note <name> <role> [tasks...]", help: "create a note", run: b.addNote},
		"note":         {usage: "note <name>", help: "show a note", names: noteName, run: b.showNote},
		"all-notes":    {usage: "all-notes", help: "list notes", run: b.allNotes},
		"delete-note":  {usage: "delete-note <name>", help: "remove a note", names: noteName, run: b.deleteNote},
		"update-role":  {usage: "update-role <name> <role>", help: "replace the project role", names: noteName, run: b.updateRole},
		"update-tasks": {usage: "update-tasks <name> <tasks...>", help: "replace the project tasks", names: noteName, run: b.updateTasks},
		"add-hobby":    {usage: "add-hobby <name> <hobby>", help: "add a hobby", names: noteName, run: b.addHobby},
		"update-hobby": {usage: "update-hobby <name> <old> <new>", help: "replace a hobby", names: noteName, run: b.updateHobby},
		"delete-hobby": {usage: "delete-hobby <name> <hobby>", help: "remove a hobby", names: noteName, run: b.deleteHobby},
		"find-role":    {usage: "find-role <role>", help: "notes with a project role", run: b.findRole},
		"find-hobby":   {usage: "find-hobby <hobby>", help: "notes with a hobby", run: b.findHobby},
	}
}

func (b *Bot) addNote(args []string) (string, error) {
	if err := atLeast(args, 2, "name, project role and optional tasks"); err != nil {
		return "", err
	}
	n, err := book.NewNote(book.NoteInput{
		Name:         args[0],
		ProjectRole:  args[1],
		ProjectTasks: strings.Join(args[2:], " "),
	})
	if err != nil {
		return "", err
	}
	if _, ok := b.notes.Add(n); !ok {
		return "", fmt.Errorf("%w: note for %s", book.ErrAlreadyExists, args[0])
	}
	return fmt.Sprintf("Note for %s created.", args[0]), nil
}

func (b *Bot) showNote(args []string) (string, error) {
	if err := exactly(args, 1, "name"); err != nil {
		return "", err
	}
	n, err := b.notes.Find(args[0])
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

func (b *Bot) allNotes(args []string) (string, error) {
	var sb strings.Builder
	sb.WriteString(extraArgsWarning(args))
	if b.notes.Len() == 0 {
		sb.WriteString("No notes found")
		return sb.String(), nil
	}
	sb.WriteString("All Notes:")
	for _, n := range b.notes.All() {
		sb.WriteString("\n" + n.String())
	}
	return sb.String(), nil
}

func (b *Bot) deleteNote(args []string) (string, error) {
	if err := exactly(args, 1, "name"); err != nil {
		return "", err
	}
	if err := b.notes.Delete(args[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Note for %s deleted.", args[0]), nil
}

func (b *Bot) updateRole(args []string) (string, error) {
	if err := exactly(args, 2, "name and project role"); err != nil {
		return "", err
	}
	n, err := b.notes.Find(args[0])
	if err != nil {
		return "", err
	}
	n.SetProjectRole(args[1])
	return fmt.Sprintf("Note for %s updated with project role: %s.", args[0], args[1]), nil
}

func (b *Bot) updateTasks(args []string) (string, error) {
	if err := atLeast(args, 2, "name and project tasks"); err != nil {
		return "", err
	}
	n, err := b.notes.Find(args[0])
	if err != nil {
		return "", err
	}
	tasks := strings.Join(args[1:], " ")
	n.SetProjectTasks(tasks)
	return fmt.Sprintf("Note for %s updated with project tasks: %s.", args[0], tasks), nil
}

func (b *Bot) addHobby(args []string) (string, error) {
	if err := exactly(args, 2, "name and hobby"); err != nil {
		return "", err
	}
	n, err := b.notes.Find(args[0])
	if err != nil {
		return "", err
	}
	w := n.AddHobby(args[1])
	return fmt.Sprintf("Note for %s hobbies: %s.", args[0], strings.Join(n.Hobbies(), "; ")) + b.warn(w), nil
}

func (b *Bot) updateHobby(args []string) (string, error) {
	if err := exactly(args, 3, "name, old hobby and new hobby"); err != nil {
		return "", err
	}
	n, err := b.notes.Find(args[0])
	if err != nil {
		return "", err
	}
	w, err := n.EditHobby(args[1], args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Note for %s hobby %s changed to %s.", args[0], args[1], args[2]) + b.warn(w), nil
}

func (b *Bot) deleteHobby(args []string) (string, error) {
	if err := exactly(args, 2, "name and hobby"); err != nil {
		return "", err
	}
	n, err := b.notes.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := n.RemoveHobby(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Note for %s hobby %s deleted.", args[0], args[1]), nil
}

func (b *Bot) findRole(args []string) (string, error) {
	if err := atLeast(args, 1, "project role"); err != nil {
		return "", err
	}
	found, err := b.notes.FindByRole(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return listNotes(found), nil
}

func (b *Bot) findHobby(args []string) (string, error) {
	if err := exactly(args, 1, "hobby"); err != nil {
		return "", err
	}
	found, err := b.notes.FindByHobby(args[0])
	if err != nil {
		return "", err
	}
	return listNotes(found), nil
}

func listNotes(notes []*book.Note) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d:", len(notes))
	for _, n := range notes {
		sb.WriteString("\n" + n.String())
	}
	return sb.String()
}
