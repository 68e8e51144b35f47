package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Sentinels standing in for a day state rather than a parsed time entry.
const (
	// Closed marks a day the facility is shut.
	Closed = "Geschlossen"

	// Unknown marks a day for which the source held no data at all,
	// as opposed to data that existed but failed validation.
	Unknown = "?"
)

// unparsedMinute sorts entries without a parseable start after all
// parseable ones.
const unparsedMinute = 24 * 60

var clockRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour  int
	Min   int
	Valid bool
}

// MinuteOfDay returns the minute offset since midnight, or a value past
// end of day for invalid clocks so they sort last.
func (c Clock) MinuteOfDay() int {
	if !c.Valid {
		return unparsedMinute
	}
	return c.Hour*60 + c.Min
}

func (c Clock) String() string {
	if !c.Valid {
		return "??:??"
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Min)
}

// TimeEntry is one normalized schedule line. Either Text is a sentinel
// (Closed or Unknown) with no times, or Start/End carry a syntactically
// valid time pair. Raw retains the source text for diagnostics.
type TimeEntry struct {
	Start       Clock
	End         Clock
	Description string
	Text        string
	Raw         string
}

// Sentinel reports whether the entry is one of the reserved day-state
// literals.
func (e TimeEntry) Sentinel() bool {
	return e.Text == Closed || e.Text == Unknown
}

func (e TimeEntry) String() string {
	return e.Text
}

// ParseEntry builds a TimeEntry from a normalized line, extracting the
// start/end pair and description when present. Lines without a parseable
// pair keep zero-valued clocks.
func ParseEntry(text string) TimeEntry {
	e := TimeEntry{Text: text, Raw: text}
	if text == Closed || text == Unknown {
		e.Description = text
		return e
	}
	locs := clockRe.FindAllStringSubmatchIndex(text, 2)
	if len(locs) >= 1 {
		e.Start = clockFromMatch(text, locs[0])
	}
	if len(locs) >= 2 {
		e.End = clockFromMatch(text, locs[1])
		e.Description = trimLeft(text[locs[1][1]:])
	}
	return e
}

func clockFromMatch(text string, loc []int) Clock {
	h, _ := strconv.Atoi(text[loc[2]:loc[3]])
	m, _ := strconv.Atoi(text[loc[4]:loc[5]])
	if h > 24 || m > 59 {
		return Clock{}
	}
	return Clock{Hour: h, Min: m, Valid: true}
}

func trimLeft(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	// Drop a leading unit token so the description starts at the prose.
	if len(s) >= 3 && (s[:3] == "Uhr" || s[:3] == "uhr") {
		s = s[3:]
		for len(s) > 0 && s[0] == ' ' {
			s = s[1:]
		}
	}
	return s
}

// StartMinute returns the minute-of-day of the first time token in a
// line, or a past-midnight value when none parses. Used as the sort key.
func StartMinute(text string) int {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return unparsedMinute
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 24 || min > 59 {
		return unparsedMinute
	}
	return h*60 + min
}

// DaySchedule is the ordered entry list for one weekday.
type DaySchedule []TimeEntry

// SortByStart orders entries ascending by start minute. The sort is
// stable so entries without a parseable start keep their relative order
// after all parseable ones.
func (ds DaySchedule) SortByStart() {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Start.MinuteOfDay() < ds[j].Start.MinuteOfDay()
	})
}

// Strings returns the entry texts in order.
func (ds DaySchedule) Strings() []string {
	out := make([]string, 0, len(ds))
	for _, e := range ds {
		out = append(out, e.Text)
	}
	return out
}
