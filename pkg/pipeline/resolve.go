package pipeline

import (
	"strings"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// resolveDay applies day-level conflict rules. On weekends, public
// swimming and restricted (school/club/course-only) access are mutually
// exclusive in the source convention: when a public entry is present,
// leftover weekday-style restricted entries are removed.
func resolveDay(d schedule.Weekday, entries []string) []string {
	if !d.Weekend() || !anyPublic(entries) {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), "nur schul") {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func anyPublic(entries []string) bool {
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), "öffent") {
			return true
		}
	}
	return false
}
