package schedule

import "time"

// WeeklySchedule is the canonical result of one page-processing run:
// the pool identity, the source reference, the capture timestamp and one
// DaySchedule per weekday. Every weekday slot is always present. The
// value is built fresh per run and not mutated afterwards.
type WeeklySchedule struct {
	Name      string
	SourceURL string
	FetchedAt time.Time
	Error     string
	Days      [NumWeekdays]DaySchedule
}

// Day returns the schedule for one weekday.
func (w *WeeklySchedule) Day(d Weekday) DaySchedule {
	return w.Days[d]
}

// SetDay replaces the schedule for one weekday.
func (w *WeeklySchedule) SetDay(d Weekday, ds DaySchedule) {
	w.Days[d] = ds
}

// Record is the persisted form of a WeeklySchedule: the object shape
// downstream consumers read. Hours always carries all seven canonical
// German weekday names as keys, each an ordered list of entry strings
// (possibly the "Geschlossen" or "?" sentinels).
type Record struct {
	Name      string              `json:"name" yaml:"name"`
	Hours     map[string][]string `json:"hours" yaml:"hours"`
	SourceURL string              `json:"source_url" yaml:"source_url"`
	FetchedAt string              `json:"fetched_at" yaml:"fetched_at"`
	Error     string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Record converts the schedule to its persisted form. Timestamps are
// rendered in UTC RFC 3339 so collections sort textually.
func (w *WeeklySchedule) Record() Record {
	hours := make(map[string][]string, NumWeekdays)
	for _, d := range Days() {
		entries := w.Days[d].Strings()
		if entries == nil {
			entries = []string{}
		}
		hours[d.String()] = entries
	}
	return Record{
		Name:      w.Name,
		Hours:     hours,
		SourceURL: w.SourceURL,
		FetchedAt: w.FetchedAt.UTC().Format(time.RFC3339),
		Error:     w.Error,
	}
}
