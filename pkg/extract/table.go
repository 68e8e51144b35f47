package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

// restDaySentinels are cell lines that mean "no entries today" without
// being schedule data themselves.
var restDaySentinels = map[string]bool{
	"-":       true,
	"ruhetag": true,
}

// TableStrategy extracts opening hours structurally from a markup
// table. A table qualifies when its combined text mentions at least one
// full weekday name; the first qualifying table wins. Column headers
// are mapped to weekdays by abbreviation or full-name containment, with
// a positional Monday..Sunday fallback for headerless 7-column tables.
type TableStrategy struct{}

// NewTableStrategy returns the structural table extractor.
func NewTableStrategy() *TableStrategy {
	return &TableStrategy{}
}

// Name identifies the strategy in logs.
func (s *TableStrategy) Name() string { return "table" }

// Extract scans the document for a qualifying table and pulls raw
// candidate entries per mapped column. Returns ok=false when no table
// qualifies or no mapped cell held data.
func (s *TableStrategy) Extract(p Page) (RawSchedule, bool) {
	var raw RawSchedule
	if p.Doc == nil {
		return raw, false
	}

	table := findScheduleTable(p.Doc)
	if table == nil {
		return raw, false
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return raw, false
	}

	colMap := mapColumns(rows.First())
	if len(colMap) == 0 {
		return raw, false
	}

	// Data rows start after the header row.
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		cells.Each(func(col int, cell *goquery.Selection) {
			day, ok := colMap[col]
			if !ok {
				return
			}
			extractCell(&raw, day, cell)
		})
	})

	return raw, raw.Populated()
}

// findScheduleTable returns the first table whose text mentions a full
// weekday name. No scoring across candidates. When no table qualifies
// that way, the first table wide enough for a Monday..Sunday layout
// (at least seven first-row cells) is taken instead, so headerless
// seven-column schedules still resolve positionally.
func findScheduleTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		text := strings.ToLower(table.Text())
		for _, d := range schedule.Days() {
			if strings.Contains(text, strings.ToLower(d.String())) {
				found = table
				return false
			}
		}
		return true
	})
	if found != nil {
		return found
	}

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cells := table.Find("tr").First().Find("th, td")
		if cells.Length() >= schedule.NumWeekdays {
			found = table
			return false
		}
		return true
	})
	return found
}

// mapColumns builds the column index → weekday map from the header row.
// Each column takes the first weekday whose abbreviation or name its
// text contains. When nothing matches but the row has at least seven
// cells, columns 0..6 are assumed to be Monday..Sunday.
func mapColumns(header *goquery.Selection) map[int]schedule.Weekday {
	cells := header.Find("th, td")
	colMap := make(map[int]schedule.Weekday)

	cells.Each(func(col int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		for _, d := range schedule.Days() {
			if d.MatchesHeader(text) {
				colMap[col] = d
				break
			}
		}
	})

	if len(colMap) == 0 && cells.Length() >= schedule.NumWeekdays {
		for i, d := range schedule.Days() {
			colMap[i] = d
		}
	}

	return colMap
}

// extractCell decomposes one mapped cell into raw candidate entries,
// one per line break inside the cell. Cells are not re-split by
// punctuation here. A closed keyword anywhere in the cell marks the
// whole day closed; rest-day sentinel lines are dropped.
func extractCell(raw *RawSchedule, day schedule.Weekday, cell *goquery.Selection) {
	text := cellText(cell)
	if strings.Contains(strings.ToLower(text), "geschlossen") {
		raw.MarkClosed(day)
		return
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || restDaySentinels[strings.ToLower(line)] {
			continue
		}
		raw.Add(day, line)
	}
}

// cellText renders a cell's text with explicit newlines at <br> tags
// and block element boundaries, so multi-line cells decompose into one
// candidate per visual line.
func cellText(cell *goquery.Selection) string {
	var b strings.Builder
	for _, n := range cell.Nodes {
		writeNodeText(&b, n)
	}
	return b.String()
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
		block := n.Data == "p" || n.Data == "div" || n.Data == "li" || n.Data == "tr"
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(b, c)
		}
		if block {
			b.WriteString("\n")
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(b, c)
		}
	}
}
