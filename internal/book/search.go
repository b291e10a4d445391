package book

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/smileynet/contactbook/internal/field"
)

// fuzzyMinLength is the query length at or below which the fuzzy pass is
// skipped: shorter patterns with a wildcard match almost everything.
const fuzzyMinLength = 3

// Search finds records matching query. Digit-only queries of up to ten
// characters match phones, anything else matches names and emails. When the
// exact pass finds nothing and the query is longer than three characters, a
// fuzzy pass retries with each single character replaced by a wildcard.
// Results are returned in store order; callers must not rely on it.
func (b *ContactBook) Search(query string) []*Record {
	if utf8.RuneCountInString(query) <= field.PhoneLength && field.IsDigits(query) {
		return b.searchByNumber(query)
	}
	return b.searchByNameOrEmail(query)
}

func (b *ContactBook) searchByNumber(query string) []*Record {
	results := b.records.filter(func(r *Record) bool {
		_, ok := r.SearchPhone(query)
		return ok
	})
	if len(results) > 0 || len(query) <= fuzzyMinLength {
		return results
	}

	var patterns []*regexp.Regexp
	for _, q := range substitutions(query, `\d`) {
		patterns = append(patterns, regexp.MustCompile(q))
	}
	return b.matchAny(patterns, func(r *Record, re *regexp.Regexp) bool {
		_, ok := r.searchPhone(re)
		return ok
	})
}

func (b *ContactBook) searchByNameOrEmail(query string) []*Record {
	results := b.records.filter(func(r *Record) bool {
		email, _ := r.Email()
		return strings.Contains(r.Name(), query) || (email != "" && strings.Contains(email, query))
	})
	if len(results) > 0 || utf8.RuneCountInString(query) <= fuzzyMinLength {
		return results
	}

	if _, err := regexp.Compile(query); err != nil {
		return nil
	}
	var patterns []*regexp.Regexp
	for _, q := range substitutions(query, ".") {
		// Replacing part of an escape can break an otherwise valid pattern.
		if re, err := regexp.Compile(q); err == nil {
			patterns = append(patterns, re)
		}
	}
	return b.matchAny(patterns, func(r *Record, re *regexp.Regexp) bool {
		if re.MatchString(r.Name()) {
			return true
		}
		email, ok := r.Email()
		return ok && re.MatchString(email)
	})
}

// matchAny returns the union of records matched by any of the patterns.
func (b *ContactBook) matchAny(patterns []*regexp.Regexp, match func(*Record, *regexp.Regexp) bool) []*Record {
	if len(patterns) == 0 {
		return nil
	}
	return b.records.filter(func(r *Record) bool {
		for _, re := range patterns {
			if match(r, re) {
				return true
			}
		}
		return false
	})
}

// substitutions returns one variant of query per character position, with
// that character replaced by wildcard.
func substitutions(query, wildcard string) []string {
	runes := []rune(query)
	out := make([]string, 0, len(runes))
	for i := range runes {
		out = append(out, string(runes[:i])+wildcard+string(runes[i+1:]))
	}
	return out
}
