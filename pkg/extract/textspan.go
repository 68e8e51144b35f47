package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// timePairRe matches a start–end time pair, the anchor for splitting
// concatenated time windows.
var timePairRe = regexp.MustCompile(`\d{1,2}:\d{2}\s*[-–—]\s*\d{1,2}:\d{2}`)

// weekdayTokenRes matches each weekday name as a standalone token,
// case-insensitively, indexed by weekday.
var weekdayTokenRes = buildWeekdayTokenRes()

func buildWeekdayTokenRes() [schedule.NumWeekdays]*regexp.Regexp {
	var res [schedule.NumWeekdays]*regexp.Regexp
	for _, d := range schedule.Days() {
		res[d] = regexp.MustCompile(`(?i)\b` + d.String() + `\b`)
	}
	return res
}

// TextStrategy is the fallback extractor for pages without a usable
// table. It scans the flattened page text for weekday tokens and
// captures each token's span up to the next occurrence of a different
// weekday token, then splits concatenated time windows inside the span.
type TextStrategy struct{}

// NewTextStrategy returns the free-text span extractor.
func NewTextStrategy() *TextStrategy {
	return &TextStrategy{}
}

// Name identifies the strategy in logs.
func (s *TextStrategy) Name() string { return "textspan" }

type tokenHit struct {
	pos int
	day schedule.Weekday
}

// Extract captures raw candidates from flattened text. Every weekday
// token occurrence is processed, so repeated schedule blocks on a page
// all contribute (duplicates fall to the dedup stage).
func (s *TextStrategy) Extract(p Page) (RawSchedule, bool) {
	var raw RawSchedule
	text := Flatten(p.Text)
	if text == "" {
		return raw, false
	}

	hits := findWeekdayTokens(text)
	if len(hits) == 0 {
		return raw, false
	}

	for i, hit := range hits {
		end := len(text)
		for _, next := range hits[i+1:] {
			if next.day != hit.day {
				end = next.pos
				break
			}
		}
		span := text[hit.pos:end]

		if strings.Contains(strings.ToLower(span), "geschlossen") {
			raw.MarkClosed(hit.day)
			continue
		}
		for _, window := range SplitWindows(span) {
			raw.Add(hit.day, window)
		}
	}

	return raw, raw.Populated()
}

func findWeekdayTokens(text string) []tokenHit {
	var hits []tokenHit
	for _, d := range schedule.Days() {
		for _, loc := range weekdayTokenRes[d].FindAllStringIndex(text, -1) {
			hits = append(hits, tokenHit{pos: loc[0], day: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	return hits
}

// SplitWindows splits text holding one or more time windows into one
// candidate per window: each segment runs from a start–end pair to just
// before the next pair, covering the common case of consecutive windows
// concatenated without a separator. Text without any pair yields no
// candidates.
func SplitWindows(text string) []string {
	starts := timePairRe.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}
	out := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		window := strings.TrimSpace(text[loc[0]:end])
		if window != "" {
			out = append(out, window)
		}
	}
	return out
}

// Flatten collapses runs of blank lines and intra-line whitespace while
// preserving explicit line breaks, the form the span scanner works on.
func Flatten(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
