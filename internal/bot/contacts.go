package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smileynet/contactbook/internal/book"
)

func (b *Bot) contactCommands() map[string]command {
	return map[string]command{
		"add":             {usage: "add <name> <phone>", help: "create a contact", run: b.addContact},
		"change":          {usage: "change <name> <phone>", help: "replace the first phone", names: contactName, run: b.changeContact},
		"phone":           {usage: "phone <name>", help: "show a contact", names: contactName, run: b.showContact},
		"all":             {usage: "all", help: "list contacts", run: b.allContacts},
		"search":          {usage: "search <query>", help: "find contacts by phone, name or email", run: b.search},
		"birthdays":       {usage: "birthdays [days]", help: "upcoming birthdays", run: b.birthdays},
		"delete-contact":  {usage: "delete-contact <name>", help: "remove a contact", names: contactName, run: b.deleteContact},
		"add-phone":       {usage: "add-phone <name> <phone>", help: "add a phone", names: contactName, run: b.addPhone},
		"update-phone":    {usage: "update-phone <name> <old> <new>", help: "replace a phone", names: contactName, run: b.updatePhone},
		"delete-phone":    {usage: "delete-phone <name> <phone>", help: "remove a phone", names: contactName, run: b.deletePhone},
		"add-birthday":    {usage: "add-birthday <name> <YYYY.MM.DD>", help: "set a birthday", names: contactName, run: b.setBirthday((*book.Record).SetBirthday)},
		"update-birthday": {usage: "update-birthday <name> <YYYY.MM.DD>", help: "replace a birthday", names: contactName, run: b.setBirthday((*book.Record).UpdateBirthday)},
		"show-birthday":   {usage: "show-birthday <name>", help: "show a birthday", names: contactName, run: b.showBirthday},
		"delete-birthday": {usage: "delete-birthday <name>", help: "clear a birthday", names: contactName, run: b.deleteBirthday},
		"add-address":     {usage: "add-address <name> <address...>", help: "set an address", names: contactName, run: b.setAddress((*book.Record).SetAddress)},
		"update-address":  {usage: "update-address <name> <address...>", help: "replace an address", names: contactName, run: b.setAddress((*book.Record).UpdateAddress)},
		"delete-address":  {usage: "delete-address <name>", help: "clear an address", names: contactName, run: b.deleteAddress},
		"add-email":       {usage: "add-email <name> <email>", help: "set an email", names: contactName, run: b.setEmail((*book.Record).SetEmail)},
		"update-email":    {usage: "update-email <name> <email>", help: "replace an email", names: contactName, run: b.setEmail((*book.Record).UpdateEmail)},
		"delete-email":    {usage: "delete-email <name>", help: "clear an email", names: contactName, run: b.deleteEmail},
	}
}

func (b *Bot) addContact(args []string) (string, error) {
	if err := exactly(args, 2, "username and phone"); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]
	r, err := book.NewRecord(book.RecordInput{Name: name, Phones: []string{phone}})
	if err != nil {
		return "", err
	}
	if _, ok := b.contacts.Add(r); !ok {
		return "", fmt.Errorf("%w: user %s (use 'add-phone' or 'change')", book.ErrAlreadyExists, name)
	}
	return fmt.Sprintf("Contact %s created with phone: %s.", name, phone), nil
}

func (b *Bot) changeContact(args []string) (string, error) {
	if err := exactly(args, 2, "username and phone"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := r.Phones()
	var w *book.DuplicateWarning
	if len(phones) == 0 {
		w, err = r.AddPhone(args[1])
	} else {
		w, err = r.EditPhone(phones[0], args[1])
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s updated with phone: %s.", args[0], args[1]) + b.warn(w), nil
}

func (b *Bot) showContact(args []string) (string, error) {
	if err := exactly(args, 1, "username"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	return "Record found:\n" + describe(r), nil
}

func (b *Bot) allContacts(args []string) (string, error) {
	var sb strings.Builder
	sb.WriteString(extraArgsWarning(args))
	if b.contacts.Len() == 0 {
		sb.WriteString("No contacts found")
		return sb.String(), nil
	}
	sb.WriteString("All Records:")
	for r := range b.contacts.Records() {
		sb.WriteString("\n" + r.String())
	}
	return sb.String(), nil
}

func (b *Bot) search(args []string) (string, error) {
	if err := atLeast(args, 1, "a search query"); err != nil {
		return "", err
	}
	query := strings.Join(args, " ")
	results := b.contacts.Search(query)
	if len(results) == 0 {
		return fmt.Sprintf("No contacts match %q", query), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d:", len(results))
	for _, r := range results {
		sb.WriteString("\n" + r.String())
	}
	return sb.String(), nil
}

func (b *Bot) birthdays(args []string) (string, error) {
	days := b.birthdayDays
	if len(args) > 1 {
		return "", exactly(args, 1, "an optional number of days")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("%w: days must be a positive number, received: %q", ErrUsage, args[0])
		}
		days = n
	}

	groups := b.contacts.UpcomingBirthdays(b.now(), days)
	if len(groups) == 0 {
		return "No contacts found", nil
	}
	var sb strings.Builder
	sb.WriteString("Contacts per day:")
	for _, g := range groups {
		fmt.Fprintf(&sb, "\nHave BD on %s:", g.Label)
		for _, r := range g.Records {
			sb.WriteString("\n " + r.String())
		}
	}
	return sb.String(), nil
}

func (b *Bot) deleteContact(args []string) (string, error) {
	if err := exactly(args, 1, "username"); err != nil {
		return "", err
	}
	if err := b.contacts.Delete(args[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s deleted.", args[0]), nil
}

func (b *Bot) addPhone(args []string) (string, error) {
	if err := exactly(args, 2, "username and phone"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	w, err := r.AddPhone(args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s phones: %s.", args[0], strings.Join(r.Phones(), "; ")) + b.warn(w), nil
}

func (b *Bot) updatePhone(args []string) (string, error) {
	if err := exactly(args, 3, "username, old phone and new phone"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	w, err := r.EditPhone(args[1], args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s phone %s changed to %s.", args[0], args[1], args[2]) + b.warn(w), nil
}

func (b *Bot) deletePhone(args []string) (string, error) {
	if err := exactly(args, 2, "username and phone"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s phone %s deleted.", args[0], args[1]), nil
}

// setBirthday builds the add and update handlers around the given Record method.
func (b *Bot) setBirthday(apply func(*book.Record, string) error) handler {
	return func(args []string) (string, error) {
		if err := exactly(args, 2, "username and date"); err != nil {
			return "", err
		}
		r, err := b.contacts.Find(args[0])
		if err != nil {
			return "", err
		}
		if err := apply(r, args[1]); err != nil {
			return "", err
		}
		return fmt.Sprintf("Contact %s updated with date: %s.", args[0], r.Birthday()), nil
	}
}

func (b *Bot) showBirthday(args []string) (string, error) {
	if err := exactly(args, 1, "username"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("User's %s birthday is: %s", args[0], r.Birthday()), nil
}

func (b *Bot) deleteBirthday(args []string) (string, error) {
	if err := exactly(args, 1, "username"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	r.RemoveBirthday()
	return fmt.Sprintf("Contact %s birthday deleted.", args[0]), nil
}

func (b *Bot) setAddress(apply func(*book.Record, string)) handler {
	return func(args []string) (string, error) {
		if err := atLeast(args, 2, "username and address"); err != nil {
			return "", err
		}
		r, err := b.contacts.Find(args[0])
		if err != nil {
			return "", err
		}
		address := strings.Join(args[1:], " ")
		apply(r, address)
		return fmt.Sprintf("Contact %s updated with address: %s.", args[0], address), nil
	}
}

func (b *Bot) deleteAddress(args []string) (string, error) {
	if err := exactly(args, 1, "username"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	r.RemoveAddress()
	return fmt.Sprintf("Contact %s address deleted.", args[0]), nil
}

func (b *Bot) setEmail(apply func(*book.Record, string) error) handler {
	return func(args []string) (string, error) {
		if err := exactly(args, 2, "username and email"); err != nil {
			return "", err
		}
		r, err := b.contacts.Find(args[0])
		if err != nil {
			return "", err
		}
		if err := apply(r, args[1]); err != nil {
			return "", err
		}
		return fmt.Sprintf("Contact %s updated with email: %s.", args[0], args[1]), nil
	}
}

func (b *Bot) deleteEmail(args []string) (string, error) {
	if err := exactly(args, 1, "username"); err != nil {
		return "", err
	}
	r, err := b.contacts.Find(args[0])
	if err != nil {
		return "", err
	}
	r.RemoveEmail()
	return fmt.Sprintf("Contact %s email deleted.", args[0]), nil
}

// describe renders every field of a record, one per line.
func describe(r *book.Record) string {
	var sb strings.Builder
	sb.WriteString(r.String())
	fmt.Fprintf(&sb, "\n  birthday: %s", r.Birthday())
	if a, ok := r.Address(); ok {
		fmt.Fprintf(&sb, "\n  address: %s", a)
	}
	return sb.String()
}
