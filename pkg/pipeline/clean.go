package pipeline

import (
	"regexp"
	"strings"

	"github.com/klabast/schwimmzeiten/internal/logger"
	"github.com/klabast/schwimmzeiten/pkg/extract"
	"github.com/klabast/schwimmzeiten/pkg/normalize"
	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// validTimePairRe is the format gate: a valid entry carries two
// HH:MM-shaped tokens separated by a dash.
var validTimePairRe = regexp.MustCompile(`\d{1,2}:\d{2}\s*[-–—]\s*\d{1,2}:\d{2}`)

// cleanDay normalizes, validates, deduplicates and caps the raw
// candidates of one weekday. Candidates holding several concatenated
// time windows are split first, so a single sloppy cell still yields
// one entry per window. Invalid candidates are dropped silently;
// best-effort extraction accepts the loss.
func (p *Pipeline) cleanDay(d schedule.Weekday, rawEntries []string) []string {
	var cleaned []string
	seen := make(map[string]bool)

	for _, raw := range rawEntries {
		for _, candidate := range splitCandidates(raw) {
			text := normalize.Entry(candidate)
			if !p.valid(text) {
				continue
			}
			key := strings.ToLower(text)
			if seen[key] {
				continue
			}
			seen[key] = true
			cleaned = append(cleaned, text)
		}
	}

	if len(cleaned) > p.cfg.MaxEntriesPerDay {
		logger.Warn("entry cap exceeded, truncating",
			"weekday", d.String(),
			"entries", len(cleaned),
			"max", p.cfg.MaxEntriesPerDay)
		cleaned = cleaned[:p.cfg.MaxEntriesPerDay]
	}

	return cleaned
}

// splitCandidates breaks one raw candidate into per-window candidates:
// semicolon-separated parts first, then concatenated time windows. A
// part without any time pair stays whole for validation to judge.
func splitCandidates(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if windows := extract.SplitWindows(part); len(windows) > 0 {
			out = append(out, windows...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

// valid applies the format gate. The closed sentinel is valid by
// definition.
func (p *Pipeline) valid(text string) bool {
	if text == schedule.Closed {
		return true
	}
	if len(text) < p.cfg.MinEntryLength {
		return false
	}
	return validTimePairRe.MatchString(text)
}
