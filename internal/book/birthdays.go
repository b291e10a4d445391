package book

import "time"

// BirthdayLabelLayout formats a projected birthday as "07 Mar (Friday)".
const BirthdayLabelLayout = "02 Jan (Monday)"

// BirthdayGroup collects the records whose next birthday falls on Date.
type BirthdayGroup struct {
	Label   string
	Date    time.Time
	Records []*Record
}

// UpcomingBirthdays returns the records whose next birthday is fewer than
// days days after today, grouped by date. Groups appear in the order their
// first record appears in the book.
func (b *ContactBook) UpcomingBirthdays(today time.Time, days int) []BirthdayGroup {
	today = truncateDay(today)

	var groups []BirthdayGroup
	pos := make(map[string]int)
	for _, r := range b.records.all() {
		bd := r.Birthday()
		if !bd.IsSet() {
			continue
		}
		next := NextBirthday(bd.Date(), today)
		if daysBetween(today, next) >= days {
			continue
		}
		label := next.Format(BirthdayLabelLayout)
		i, ok := pos[label]
		if !ok {
			i = len(groups)
			pos[label] = i
			groups = append(groups, BirthdayGroup{Label: label, Date: next})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// NextBirthday projects birthday onto today's year, advancing one year if
// that date has already passed. February 29 falls on February 28 in
// non-leap years.
func NextBirthday(birthday, today time.Time) time.Time {
	today = truncateDay(today)
	next := anniversary(birthday, today.Year())
	if next.Before(today) {
		next = anniversary(birthday, today.Year()+1)
	}
	return next
}

func anniversary(birthday time.Time, year int) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// truncateDay drops the clock and zone, keeping the calendar date.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
