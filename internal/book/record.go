package book

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smileynet/contactbook/internal/field"
)

// Record is one contact: a name, an ordered set of phones and optional
// birthday, address and email. The name never changes after creation.
type Record struct {
	name     field.Name
	phones   []field.Phone
	birthday field.Birthday
	address  *field.Address
	email    *field.Email
}

// RecordInput carries the raw values used to build a Record. Empty strings
// (or field.Absent) leave the optional fields unset.
type RecordInput struct {
	Name     string
	Phones   []string
	Birthday string
	Address  string
	Email    string
}

// NewRecord validates every value in in and builds a Record. Duplicate
// phones in the input collapse to one.
func NewRecord(in RecordInput) (*Record, error) {
	name, err := field.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	r := &Record{name: name}
	for _, p := range in.Phones {
		if _, err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if r.birthday, err = field.NewBirthday(in.Birthday); err != nil {
		return nil, err
	}
	if present(in.Address) {
		r.SetAddress(in.Address)
	}
	if present(in.Email) {
		if err := r.SetEmail(in.Email); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func present(s string) bool {
	return s != "" && s != field.Absent
}

// Name returns the record's key.
func (r *Record) Name() string { return r.name.String() }

// Phones returns a copy of the phone values in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.String()
	}
	return out
}

// Birthday returns the birthday, which may be unset.
func (r *Record) Birthday() field.Birthday { return r.birthday }

// Address returns the address and whether one is set.
func (r *Record) Address() (string, bool) {
	if r.address == nil {
		return "", false
	}
	return r.address.String(), true
}

// Email returns the email and whether one is set.
func (r *Record) Email() (string, bool) {
	if r.email == nil {
		return "", false
	}
	return r.email.String(), true
}

// AddPhone validates raw and appends it unless an identical phone exists,
// in which case nothing changes and a warning is returned.
func (r *Record) AddPhone(raw string) (*DuplicateWarning, error) {
	p, err := field.NewPhone(raw)
	if err != nil {
		return nil, err
	}
	if r.indexPhone(raw) >= 0 {
		return &DuplicateWarning{Field: "phone", Value: raw, Owner: r.Name()}, nil
	}
	r.phones = append(r.phones, p)
	return nil, nil
}

// FindPhone returns the phone equal to raw.
func (r *Record) FindPhone(raw string) (field.Phone, error) {
	i := r.indexPhone(raw)
	if i < 0 {
		return field.Phone{}, fmt.Errorf("%w: phone %s for %s", ErrNotFound, raw, r.Name())
	}
	return r.phones[i], nil
}

// RemovePhone deletes the phone equal to raw.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexPhone(raw)
	if i < 0 {
		return fmt.Errorf("%w: phone %s for %s", ErrNotFound, raw, r.Name())
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces oldPhone with newPhone. newPhone is validated before anything is
// removed. If newPhone is already present the edit collapses to removing oldPhone
// and the duplicate warning is returned.
func (r *Record) EditPhone(oldPhone, newPhone string) (*DuplicateWarning, error) {
	if _, err := field.NewPhone(newPhone); err != nil {
		return nil, err
	}
	if err := r.RemovePhone(oldPhone); err != nil {
		return nil, err
	}
	return r.AddPhone(newPhone)
}

func (r *Record) indexPhone(raw string) int {
	for i, p := range r.phones {
		if p.String() == raw {
			return i
		}
	}
	return -1
}

// SearchPhone treats query as a regular expression fragment and returns the
// first phone containing a match. Queries longer than a phone never match,
// nor do queries that fail to compile.
func (r *Record) SearchPhone(query string) (field.Phone, bool) {
	if len(query) > field.PhoneLength {
		return field.Phone{}, false
	}
	re, err := regexp.Compile(query)
	if err != nil {
		return field.Phone{}, false
	}
	return r.searchPhone(re)
}

func (r *Record) searchPhone(re *regexp.Regexp) (field.Phone, bool) {
	for _, p := range r.phones {
		if re.MatchString(p.String()) {
			return p, true
		}
	}
	return field.Phone{}, false
}

// SetBirthday validates raw and replaces the birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := field.NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// UpdateBirthday replaces an existing birthday. It applies the same rules as SetBirthday.
func (r *Record) UpdateBirthday(raw string) error { return r.SetBirthday(raw) }

// RemoveBirthday clears the birthday.
func (r *Record) RemoveBirthday() { r.birthday = field.Birthday{} }

// SetAddress replaces the address.
func (r *Record) SetAddress(raw string) {
	a := field.NewAddress(raw)
	r.address = &a
}

// UpdateAddress replaces an existing address. It applies the same rules as SetAddress.
func (r *Record) UpdateAddress(raw string) { r.SetAddress(raw) }

// RemoveAddress clears the address.
func (r *Record) RemoveAddress() { r.address = nil }

// SetEmail validates raw and replaces the email.
func (r *Record) SetEmail(raw string) error {
	e, err := field.NewEmail(raw)
	if err != nil {
		return err
	}
	r.email = &e
	return nil
}

// UpdateEmail replaces an existing email. It applies the same rules as SetEmail.
func (r *Record) UpdateEmail(raw string) error { return r.SetEmail(raw) }

// RemoveEmail clears the email.
func (r *Record) RemoveEmail() { r.email = nil }

func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact name: %s", r.Name())
	if e, ok := r.Email(); ok {
		fmt.Fprintf(&b, ", contact email: %s", e)
	}
	fmt.Fprintf(&b, ", phones: %s", strings.Join(r.Phones(), "; "))
	return b.String()
}
