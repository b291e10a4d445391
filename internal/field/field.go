// Package field provides the validated scalar values stored in contact
// records and notes. Every value is built through a constructor that either
// returns a normalized value or a *ValidationError.
package field

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Value is a validated scalar with a display representation.
type Value interface {
	String() string
}

// Verify at compile time that all field kinds implement Value.
var (
	_ Value = Name{}
	_ Value = Phone{}
	_ Value = Email{}
	_ Value = Birthday{}
	_ Value = Address{}
	_ Value = ProjectRole{}
	_ Value = ProjectTasks{}
	_ Value = Hobby{}
)

// ErrInvalid is matched by every *ValidationError via errors.Is.
var ErrInvalid = errors.New("field: invalid value")

// ValidationError reports a value that fails its format contract.
type ValidationError struct {
	Field    string
	Value    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected %s", e.Field, e.Value, e.Expected)
}

// Is reports whether target is ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Absent is the persisted marker for an unset optional value.
const Absent = "None"

// DateLayout is the display and storage layout for birthdays.
const DateLayout = "2006.01.02"

// parseLayout accepts one or two digit months and days.
const parseLayout = "2006.1.2"

// PhoneLength is the exact number of digits a phone must have.
const PhoneLength = 10

// emailPattern allows Unicode letters and digits before the @ and ASCII only
// in the domain.
var emailPattern = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[A-Za-z\d.-]+\.[A-Za-z]{2,}$`)

// Name is the unique key of a record or note.
type Name struct{ value string }

// NewName rejects empty or blank names.
func NewName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, &ValidationError{Field: "name", Value: raw, Expected: "a non-empty string"}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// Phone is a number of exactly ten ASCII digits.
type Phone struct{ value string }

// NewPhone validates that raw is exactly PhoneLength ASCII digits.
func NewPhone(raw string) (Phone, error) {
	if !IsDigits(raw) || len(raw) != PhoneLength {
		return Phone{}, &ValidationError{Field: "phone", Value: raw, Expected: "10 digits"}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

// IsDigits reports whether s consists only of ASCII digits.
// The empty string is all digits.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Email is an address matching the email pattern.
type Email struct{ value string }

// NewEmail validates raw against the anchored email pattern.
func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, &ValidationError{Field: "email", Value: raw, Expected: "user@domain.tld"}
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

// Birthday is a calendar date. The zero Birthday means "not set".
type Birthday struct {
	date time.Time
	set  bool
}

// NewBirthday parses raw as YYYY.MM.DD. An empty string or the Absent
// marker yields an unset Birthday rather than an error.
func NewBirthday(raw string) (Birthday, error) {
	if raw == "" || raw == Absent {
		return Birthday{}, nil
	}
	t, err := time.Parse(parseLayout, raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: raw, Expected: "YYYY.MM.DD"}
	}
	return Birthday{date: t, set: true}, nil
}

// IsSet reports whether the birthday holds a date.
func (b Birthday) IsSet() bool { return b.set }

// Date returns the stored date at midnight UTC. Zero when unset.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string {
	if !b.set {
		return Absent
	}
	return b.date.Format(DateLayout)
}

// Address is free text.
type Address struct{ value string }

// NewAddress never fails.
func NewAddress(raw string) Address { return Address{value: raw} }

func (a Address) String() string { return a.value }

// ProjectRole is free text.
type ProjectRole struct{ value string }

// NewProjectRole never fails.
func NewProjectRole(raw string) ProjectRole { return ProjectRole{value: raw} }

func (r ProjectRole) String() string { return r.value }

// ProjectTasks is free text.
type ProjectTasks struct{ value string }

// NewProjectTasks never fails.
func NewProjectTasks(raw string) ProjectTasks { return ProjectTasks{value: raw} }

func (t ProjectTasks) String() string { return t.value }

// Hobby is free text, compared case-insensitively by notes.
type Hobby struct{ value string }

// NewHobby never fails.
func NewHobby(raw string) Hobby { return Hobby{value: raw} }

func (h Hobby) String() string { return h.value }

// Matches reports whether h equals other ignoring case.
func (h Hobby) Matches(other string) bool {
	return strings.EqualFold(h.value, other)
}
