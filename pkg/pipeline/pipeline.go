// Package pipeline turns one facility page into a canonical
// WeeklySchedule: extraction (structural table with a text-span
// fallback), normalization, validation and dedup, and day-level
// conflict resolution. The pipeline is a pure function of its input
// text; identical input yields an identical schedule.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"

	"github.com/klabast/schwimmzeiten/pkg/extract"
	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// Config bounds the plausibility checks.
type Config struct {
	// MaxEntriesPerDay caps how many entries a single weekday may keep;
	// excess entries are discarded, not merged.
	MaxEntriesPerDay int `validate:"gte=1,lte=12"`

	// MinEntryLength is the validity floor for a normalized entry.
	MinEntryLength int `validate:"gte=1"`
}

// DefaultConfig returns the documented policy values.
func DefaultConfig() Config {
	return Config{
		MaxEntriesPerDay: 4,
		MinEntryLength:   8,
	}
}

// Pipeline processes pages into weekly schedules. Safe for reuse across
// pages; it holds no per-page state.
type Pipeline struct {
	cfg   Config
	chain *extract.Chain
}

// New builds a pipeline, validating the configured bounds.
func New(cfg Config) (*Pipeline, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return &Pipeline{
		cfg:   cfg,
		chain: extract.NewChain(),
	}, nil
}

// Page is one fetched facility page.
type Page struct {
	Name      string
	URL       string
	HTML      string
	FetchedAt time.Time
}

// Process runs the full pipeline over a page. It never fails: pages
// without any recognizable schedule yield a schedule of sentinel days.
func (p *Pipeline) Process(page Page) schedule.WeeklySchedule {
	ws := schedule.WeeklySchedule{
		Name:      page.Name,
		SourceURL: page.URL,
		FetchedAt: page.FetchedAt,
	}

	ep := extract.Page{Text: page.HTML}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML)); err == nil {
		ep.Doc = doc
		ep.Text = visibleText(doc)
		if ws.Name == "" {
			ws.Name = strings.TrimSpace(doc.Find("h1").First().Text())
		}
	}
	if ws.Name == "" {
		ws.Name = nameFromURL(page.URL)
	}

	raw := p.chain.Extract(ep)

	for _, d := range schedule.Days() {
		ws.SetDay(d, p.buildDay(d, raw.Entries(d), raw.Closed(d)))
	}
	return ws
}

// buildDay normalizes, validates and resolves one weekday.
func (p *Pipeline) buildDay(d schedule.Weekday, rawEntries []string, closed bool) schedule.DaySchedule {
	if closed {
		return schedule.DaySchedule{schedule.ParseEntry(schedule.Closed)}
	}

	texts := p.cleanDay(d, rawEntries)

	// No raw data at any stage is distinct from data that all failed
	// validation: only the former gets the unknown sentinel.
	if len(texts) == 0 {
		if len(rawEntries) == 0 {
			return schedule.DaySchedule{schedule.ParseEntry(schedule.Unknown)}
		}
		return schedule.DaySchedule{}
	}

	texts = resolveDay(d, texts)

	ds := make(schedule.DaySchedule, 0, len(texts))
	for _, t := range texts {
		ds = append(ds, schedule.ParseEntry(t))
	}
	ds.SortByStart()
	return ds
}

// FailedSchedule builds the structurally valid shell emitted when page
// retrieval fails: every weekday present and empty, the error recorded
// on the record instead of aborting the batch.
func FailedSchedule(name, url string, fetchedAt time.Time, err error) schedule.WeeklySchedule {
	ws := schedule.WeeklySchedule{
		Name:      name,
		SourceURL: url,
		FetchedAt: fetchedAt,
	}
	if ws.Name == "" {
		ws.Name = "(failed to fetch)"
	}
	if err != nil {
		ws.Error = err.Error()
	}
	for _, d := range schedule.Days() {
		ws.SetDay(d, schedule.DaySchedule{})
	}
	return ws
}

// Reclean re-runs normalization, validation and conflict resolution
// over an already persisted record. Running it on clean data is a
// no-op; days already reduced to a sentinel or validated empty stay as
// they are, since the raw candidates they were built from are gone.
func (p *Pipeline) Reclean(rec schedule.Record) schedule.Record {
	out := rec
	out.Hours = make(map[string][]string, schedule.NumWeekdays)

	for _, d := range schedule.Days() {
		entries := rec.Hours[d.String()]
		switch {
		case len(entries) == 1 && entries[0] == schedule.Unknown:
			out.Hours[d.String()] = []string{schedule.Unknown}
		case containsClosed(entries):
			out.Hours[d.String()] = []string{schedule.Closed}
		case len(entries) == 0:
			out.Hours[d.String()] = []string{}
		default:
			texts := resolveDay(d, p.cleanDay(d, entries))
			sorted := make(schedule.DaySchedule, 0, len(texts))
			for _, t := range texts {
				sorted = append(sorted, schedule.ParseEntry(t))
			}
			sorted.SortByStart()
			if res := sorted.Strings(); res != nil {
				out.Hours[d.String()] = res
			} else {
				out.Hours[d.String()] = []string{}
			}
		}
	}
	return out
}

func containsClosed(entries []string) bool {
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), "geschlossen") {
			return true
		}
	}
	return false
}

// nameFromURL derives a fallback facility name from the last path
// segment when the page carries no usable heading.
func nameFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	trimmed = strings.NewReplacer("-", " ", "_", " ").Replace(trimmed)
	return strings.TrimSpace(trimmed)
}

// visibleText flattens the document's visible text, the input form the
// fallback extractor expects.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, iframe, svg").Remove()
	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Selection.Text()
	}
	return extract.Flatten(text)
}
