package normalize

import (
	"strings"
	"testing"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// --- Entry ---

func TestEntry_Canonicalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"already_normalized",
			"06:30 - 08:00 Uhr öffentl. Schwimmen",
			"06:30 - 08:00 Uhr öffentl. Schwimmen",
		},
		{
			"glued_dash",
			"10:00-12:00 Uhr Öffentlich",
			"10:00 - 12:00 Uhr öffentl. Schwimmen",
		},
		{
			"en_dash",
			"10:00 – 12:00 Uhr gemischt",
			"10:00 - 12:00 Uhr gemischt",
		},
		{
			"uppercase_unit",
			"10:00 - 12:00 UHR öffentlich",
			"10:00 - 12:00 Uhr öffentl. Schwimmen",
		},
		{
			"missing_unit",
			"10:00 - 12:00 gemischt",
			"10:00 - 12:00 Uhr gemischt",
		},
		{
			"whitespace_collapse",
			"10:00  -\t12:00   Uhr \n gemischt",
			"10:00 - 12:00 Uhr gemischt",
		},
		{
			"leading_weekday_stripped",
			"Sonntag 09:00 - 17:00 Uhr öffentl. Schwimmen",
			"09:00 - 17:00 Uhr öffentl. Schwimmen",
		},
		{
			"doubled_weekday_collapsed",
			"Sonntag Sonntag 09:00 - 17:00 Uhr öffentl. Schwimmen",
			"09:00 - 17:00 Uhr öffentl. Schwimmen",
		},
		{
			"trailing_junk",
			"10:00 - 12:00 Uhr gemischt.,;",
			"10:00 - 12:00 Uhr gemischt",
		},
		{
			"time_only",
			"06:30 - 08:00",
			"06:30 - 08:00 Uhr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Entry(tt.raw); got != tt.want {
				t.Errorf("Entry(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEntry_Idempotent(t *testing.T) {
	inputs := []string{
		"Montag   06:30-08:00Uhr  öffentliches Schwimmen mit eingeschränkter Wasserfläche",
		"10:00 - 12:00 Uhr nur Schulbetrieb, Vereinsbetrieb",
		"Samstag 09:00 – 17:00 Uhr Menschen mit Behinderung",
		"14:00 - 22:00 Uhr irgendein langer freier Text ohne bekannte Schlüsselwörter",
		schedule.Closed,
		schedule.Unknown,
	}

	for _, raw := range inputs {
		once := Entry(raw)
		twice := Entry(once)
		if once != twice {
			t.Errorf("Entry not idempotent for %q:\n once:  %q\n twice: %q", raw, once, twice)
		}
	}
}

func TestEntry_SentinelPassthrough(t *testing.T) {
	if got := Entry(schedule.Closed); got != schedule.Closed {
		t.Errorf("Entry(Geschlossen) = %q", got)
	}
	if got := Entry(schedule.Unknown); got != schedule.Unknown {
		t.Errorf("Entry(?) = %q", got)
	}
}

func TestEntry_TruncatesAtWordBoundary(t *testing.T) {
	long := "06:00 - 22:00 Uhr " + strings.Repeat("Wassergewöhnung ", 20)
	got := Entry(long)

	if len(got) > MaxEntryLength {
		t.Errorf("len = %d, want <= %d", len(got), MaxEntryLength)
	}
	if strings.HasSuffix(got, "Wassergew") || strings.Contains(got, "Wasserg\u00f6hn") {
		t.Errorf("truncated mid-word: %q", got)
	}
	for _, word := range strings.Fields(got)[4:] {
		if word != "Wassergewöhnung" {
			t.Errorf("unexpected partial word %q in %q", word, got)
		}
	}
}

// --- Describe / rule table ---

func TestDescribe_RuleTable(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"restricted_surface", "öffentliches Schwimmen mit eingeschränkter Wasserfläche", "öffentl. Schwimmen (eingeschr. WF)"},
		{"restricted_ascii", "oeffentlich, eingeschraenkte Wasserflaeche", "öffentl. Schwimmen (eingeschr. WF)"},
		{"school", "nur Schulbetrieb", "nur Schul-/Vereins-/Kursbetrieb"},
		{"club", "Vereinsschwimmen", "nur Schul-/Vereins-/Kursbetrieb"},
		{"course", "Kursbetrieb", "nur Schul-/Vereins-/Kursbetrieb"},
		{"mixed", "gemischte Sauna", "gemischt"},
		{"disability", "Menschen mit Behinderung", "Menschen mit Behinderung"},
		{"public", "öffentliches Schwimmen", "öffentl. Schwimmen"},
		{"public_ascii", "oeffentliches Schwimmen", "öffentl. Schwimmen"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.desc); got != tt.want {
				t.Errorf("Describe(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestDescribe_RestrictedBeatsPublic(t *testing.T) {
	// The restricted-surface rule sits above the public rule; wording
	// that mentions both must take the restricted label.
	got := Describe("öffentliches Schwimmen bei eingeschränkter Wasserfläche")
	if got != "öffentl. Schwimmen (eingeschr. WF)" {
		t.Errorf("got %q", got)
	}
}

func TestDescribe_SchoolBeatsMixed(t *testing.T) {
	got := Describe("gemischter Schul- und Vereinsbetrieb")
	if got != "nur Schul-/Vereins-/Kursbetrieb" {
		t.Errorf("got %q", got)
	}
}

func TestDescribe_FallbackCutsNoise(t *testing.T) {
	got := Describe("Warmbadetag Einlass bis 21:00")
	if got != "Warmbadetag" {
		t.Errorf("got %q", got)
	}

	got = Describe("Frauenschwimmen Badeschluss 21:45")
	if got != "Frauenschwimmen" {
		t.Errorf("got %q", got)
	}
}

func TestDescribe_FallbackLengthCap(t *testing.T) {
	long := strings.Repeat("Wassergymnastik ", 10)
	got := Describe(long)
	if len(got) > 80 {
		t.Errorf("len = %d, want <= 80", len(got))
	}
}

func TestRules_Order(t *testing.T) {
	// The table's priority must stay visible and fixed.
	want := []string{
		"restricted-surface",
		"school-club-course",
		"mixed",
		"disability",
		"public-swimming",
	}
	if len(Rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(Rules), len(want))
	}
	for i, name := range want {
		if Rules[i].Name != name {
			t.Errorf("Rules[%d] = %q, want %q", i, Rules[i].Name, name)
		}
	}
}
