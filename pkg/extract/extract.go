// Package extract locates raw opening-hours candidates in a facility
// page. Extraction strategies are pure functions over the parsed page;
// a Chain tries them in fixed priority order and the first strategy
// that yields a populated schedule wins.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/klabast/schwimmzeiten/internal/logger"
	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// Page is the parsed input handed to strategies.
type Page struct {
	// Doc is the parsed markup tree, nil when only flattened text is
	// available.
	Doc *goquery.Document

	// Text is the visible page text, flattened with line breaks
	// preserved.
	Text string
}

// RawSchedule holds per-weekday raw candidate entries before
// normalization. A day may instead be marked closed, which supersedes
// any candidates captured for it.
type RawSchedule struct {
	entries [schedule.NumWeekdays][]string
	closed  [schedule.NumWeekdays]bool
}

// Add appends a raw candidate entry for a weekday.
func (r *RawSchedule) Add(d schedule.Weekday, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	r.entries[d] = append(r.entries[d], text)
}

// MarkClosed records that the source declares the day closed.
func (r *RawSchedule) MarkClosed(d schedule.Weekday) {
	r.closed[d] = true
}

// Entries returns the raw candidates captured for a weekday.
func (r *RawSchedule) Entries(d schedule.Weekday) []string {
	return r.entries[d]
}

// Closed reports whether the day was declared closed.
func (r *RawSchedule) Closed(d schedule.Weekday) bool {
	return r.closed[d]
}

// Populated reports whether any weekday captured data.
func (r *RawSchedule) Populated() bool {
	for _, d := range schedule.Days() {
		if r.closed[d] || len(r.entries[d]) > 0 {
			return true
		}
	}
	return false
}

// Strategy is one extraction approach. Extract returns ok=false when
// the strategy found nothing usable, which hands control to the next
// strategy in the chain.
type Strategy interface {
	Name() string
	Extract(p Page) (RawSchedule, bool)
}

// Chain tries strategies in order and returns the first populated
// result. An empty RawSchedule is returned when every strategy comes up
// empty; that is not an error.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a strategy chain. The default chain is structural
// table extraction with a text-span fallback.
func NewChain(strategies ...Strategy) *Chain {
	if len(strategies) == 0 {
		strategies = []Strategy{NewTableStrategy(), NewTextStrategy()}
	}
	return &Chain{strategies: strategies}
}

// Extract runs the chain.
func (c *Chain) Extract(p Page) RawSchedule {
	for _, s := range c.strategies {
		raw, ok := s.Extract(p)
		if ok && raw.Populated() {
			logger.Debug("extraction strategy matched", "strategy", s.Name())
			return raw
		}
	}
	logger.Debug("no extraction strategy matched")
	return RawSchedule{}
}
