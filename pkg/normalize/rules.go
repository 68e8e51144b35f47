package normalize

import "strings"

// maxDescriptionLength caps free-text descriptions that match no rule.
const maxDescriptionLength = 80

// noiseMarkers start trailing prose that adds nothing to the schedule
// line ("Einlass bis ...", "Badeschluss ...").
var noiseMarkers = []string{" Einlass", " Badeschluss"}

// Rule maps a set of description keywords to a canonical short label.
// Rules are evaluated in order against the lowercased description;
// the first match wins.
type Rule struct {
	Name     string
	Keywords []string
	All      bool // require all keywords instead of any
	Label    string
}

// Matches reports whether the lowercased description satisfies the
// rule's keyword set.
func (r Rule) Matches(lower string) bool {
	if r.All {
		for _, kw := range r.Keywords {
			if !strings.Contains(lower, kw) {
				return false
			}
		}
		return len(r.Keywords) > 0
	}
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Rules is the ordered description-canonicalization table. Priority
// order is load-bearing: restricted-surface wording mentions public
// swimming too, so it must be tested before the general public rule.
var Rules = []Rule{
	{
		Name:     "restricted-surface",
		Keywords: []string{"eingeschränk", "eingeschraenk", "eingeschr"},
		Label:    "öffentl. Schwimmen (eingeschr. WF)",
	},
	{
		Name:     "school-club-course",
		Keywords: []string{"schul", "verein", "kurs"},
		Label:    "nur Schul-/Vereins-/Kursbetrieb",
	},
	{
		Name:     "mixed",
		Keywords: []string{"gemischt"},
		Label:    "gemischt",
	},
	{
		Name:     "disability",
		Keywords: []string{"behinderung"},
		Label:    "Menschen mit Behinderung",
	},
	{
		Name:     "public-swimming",
		Keywords: []string{"öffent", "offent"},
		Label:    "öffentl. Schwimmen",
	},
}

// Describe maps a free-text description to its canonical short label,
// or shortens it when no rule matches.
func Describe(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	lower := strings.ToLower(desc)
	for _, r := range Rules {
		if r.Matches(lower) {
			return r.Label
		}
	}
	for _, marker := range noiseMarkers {
		if idx := indexFold(desc, marker); idx >= 0 {
			desc = strings.TrimSpace(desc[:idx])
		}
	}
	return TruncateAtWord(desc, maxDescriptionLength)
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
