// Package schedule defines the canonical weekly opening-hours model:
// the fixed weekday table, normalized time entries, and the per-pool
// weekly schedule produced by the extraction pipeline.
package schedule

import "strings"

// Weekday identifies one of the seven days, Monday-first. The order is
// significant: text-span capture runs "until the next weekday token" and
// output iteration follows this order.
type Weekday int

const (
	Montag Weekday = iota
	Dienstag
	Mittwoch
	Donnerstag
	Freitag
	Samstag
	Sonntag
)

// NumWeekdays is the number of days in the schedule week.
const NumWeekdays = 7

// weekdayNames is the single shared table of canonical names and the
// abbreviations used for table-header matching. Every component looks
// days up here rather than re-declaring the list.
var weekdayNames = [NumWeekdays]struct {
	name string
	abbr string
}{
	{"Montag", "Mo"},
	{"Dienstag", "Di"},
	{"Mittwoch", "Mi"},
	{"Donnerstag", "Do"},
	{"Freitag", "Fr"},
	{"Samstag", "Sa"},
	{"Sonntag", "So"},
}

// Days returns all weekdays in natural week order.
func Days() [NumWeekdays]Weekday {
	return [NumWeekdays]Weekday{Montag, Dienstag, Mittwoch, Donnerstag, Freitag, Samstag, Sonntag}
}

// String returns the canonical German name, e.g. "Montag".
func (d Weekday) String() string {
	if d < 0 || d >= NumWeekdays {
		return "???"
	}
	return weekdayNames[d].name
}

// Abbr returns the header abbreviation, e.g. "Mo".
func (d Weekday) Abbr() string {
	if d < 0 || d >= NumWeekdays {
		return "??"
	}
	return weekdayNames[d].abbr
}

// Weekend reports whether the day is Samstag or Sonntag.
func (d Weekday) Weekend() bool {
	return d == Samstag || d == Sonntag
}

// MatchesHeader reports whether a table-header cell text refers to this
// weekday, by case-insensitive containment of the abbreviation or the
// full name.
func (d Weekday) MatchesHeader(cell string) bool {
	lower := strings.ToLower(cell)
	return strings.Contains(lower, strings.ToLower(d.Abbr())) ||
		strings.Contains(lower, strings.ToLower(d.String()))
}

// FromName resolves a canonical weekday name, case-insensitively.
func FromName(name string) (Weekday, bool) {
	for _, d := range Days() {
		if strings.EqualFold(name, d.String()) {
			return d, true
		}
	}
	return 0, false
}
