// Package budget derives page-capacity limits from a requested page
// count. The numbers are heuristics, not typography: they exist so that
// a variable-length payload can be trimmed to deterministically fill an
// exact number of pages.
package budget

import (
	"strings"

	"github.com/hyperifyio/goreport/internal/report"
)

const (
	// ReservedFramingPages is the fixed number of pages reserved for
	// framing material (abstract, table of contents and tail matter)
	// when deriving the content budget.
	ReservedFramingPages = 3

	// TypedCharsPerPage approximates how many characters the typed
	// engine fits on one page at its body font size.
	TypedCharsPerPage = 4000

	// HandwrittenWordsPerPage approximates how many simulated
	// handwritten words fit on one page.
	HandwrittenWordsPerPage = 500

	// framingFraction caps the introduction and the conclusion each to
	// this share of the total content capacity.
	framingFraction = 0.15

	// sectionFraction is the share of total content capacity split
	// evenly across the body sections.
	sectionFraction = 0.70
)

// Budget holds the derived capacity limits for one document build. It is
// recomputed per render and never persisted.
type Budget struct {
	Style        report.Style
	TargetPages  int
	ContentPages int

	// CapacityPerPage counts characters for the typed engine and words
	// for the handwritten engine.
	CapacityPerPage int

	IntroCap      int
	ConclusionCap int
	PerSectionCap int
}

// Plan computes the budget for a document. It is a pure function of the
// requested page count, the section count and the style. A page count
// too small for the reserved framing pages clamps ContentPages to 1
// instead of failing.
func Plan(pages, sections int, style report.Style) Budget {
	if pages < 1 {
		pages = 1
	}
	if sections < 1 {
		sections = 1
	}
	capacity := TypedCharsPerPage
	if style == report.StyleHandwritten {
		capacity = HandwrittenWordsPerPage
	}
	content := pages - ReservedFramingPages
	if content < 1 {
		content = 1
	}
	total := capacity * content
	return Budget{
		Style:           style,
		TargetPages:     pages,
		ContentPages:    content,
		CapacityPerPage: capacity,
		IntroCap:        int(float64(total) * framingFraction),
		ConclusionCap:   int(float64(total) * framingFraction),
		PerSectionCap:   int(float64(total) * sectionFraction / float64(sections)),
	}
}

// TruncateChars trims s to at most max characters, appending an ellipsis
// marker when anything was cut. max <= 0 disables trimming.
func TruncateChars(s string, max int) (string, bool) {
	if max <= 0 || len(s) <= max {
		return s, false
	}
	return s[:max] + "...", true
}

// TruncateWords trims s to at most max whitespace-separated words,
// appending an ellipsis marker when anything was cut. max <= 0 disables
// trimming.
func TruncateWords(s string, max int) (string, bool) {
	if max <= 0 {
		return s, false
	}
	words := strings.Fields(s)
	if len(words) <= max {
		return s, false
	}
	return strings.Join(words[:max], " ") + "...", true
}
