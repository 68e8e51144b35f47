// Package normalize canonicalizes raw opening-hours candidates into
// the fixed textual form "HH:MM - HH:MM Uhr <description>". The
// transformation is idempotent: normalizing an already-normalized entry
// returns it unchanged.
package normalize

import (
	"regexp"
	"strings"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// MaxEntryLength is the longest a normalized entry may grow. Longer
// entries are truncated at the nearest preceding word boundary.
const MaxEntryLength = 120

var (
	leadingWeekdayRe = regexp.MustCompile(`(?i)^(Montag|Dienstag|Mittwoch|Donnerstag|Freitag|Samstag|Sonntag)\b[\s:.,]*`)
	doubledWeekdayRe = regexp.MustCompile(`(?i)\b(Montag|Dienstag|Mittwoch|Donnerstag|Freitag|Samstag|Sonntag)\s+(Montag|Dienstag|Mittwoch|Donnerstag|Freitag|Samstag|Sonntag)\b`)
	timeDashRe       = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[-–—]\s*(\d{1,2}:\d{2})`)
	uhrGlueRe        = regexp.MustCompile(`(\d)\s*(?i:uhr)\b`)
	timePairHeadRe   = regexp.MustCompile(`^(\d{1,2}:\d{2} - \d{1,2}:\d{2})( Uhr)?(?:\s+(.*))?$`)
	trailingJunkRe   = regexp.MustCompile(`[,;.]+\s*$`)
)

// Entry normalizes one raw candidate. The sentinels pass through
// unchanged; everything else gets whitespace collapsing, dash and
// time-unit canonicalization, weekday-token stripping, description
// canonicalization and a word-boundary length cap.
func Entry(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" || text == schedule.Closed || text == schedule.Unknown {
		return text
	}

	// Weekday labels captured along with the entry: drop leading ones
	// (extraction can stack them, "Sonntag Sonntag 09:00 ...") and
	// collapse doubled tokens elsewhere in the text.
	for leadingWeekdayRe.MatchString(text) {
		text = leadingWeekdayRe.ReplaceAllString(text, "")
	}
	text = doubledWeekdayRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := doubledWeekdayRe.FindStringSubmatch(m)
		if strings.EqualFold(sub[1], sub[2]) {
			return sub[1]
		}
		return m
	})

	// Whitespace and control characters collapse to single spaces.
	text = strings.Join(strings.Fields(text), " ")

	// One fixed dash with surrounding spaces between start and end.
	text = timeDashRe.ReplaceAllString(text, "$1 - $2")

	// The unit reads "<time> Uhr", never glued to the digits.
	text = uhrGlueRe.ReplaceAllString(text, "$1 Uhr")

	text = trailingJunkRe.ReplaceAllString(text, "")
	text = canonicalizeDescription(text)
	text = TruncateAtWord(text, MaxEntryLength)

	return strings.TrimSpace(text)
}

// canonicalizeDescription splits an entry into its time-range prefix
// and free-text suffix and replaces the suffix with a canonical short
// label when a rule matches. Entries without a leading time pair pass
// through for validation to judge.
func canonicalizeDescription(text string) string {
	m := timePairHeadRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	prefix := m[1] + " Uhr"
	desc := Describe(strings.TrimSpace(m[3]))
	if desc == "" {
		return prefix
	}
	return prefix + " " + desc
}

// TruncateAtWord caps text at max characters, cutting at the nearest
// preceding word boundary rather than mid-word.
func TruncateAtWord(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
