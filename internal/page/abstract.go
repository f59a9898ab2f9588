package page

import (
	"strings"
)

// AbstractFunc derives the abstract shown on the first page from the
// introduction text and the report title. Implementations must never
// return the introduction verbatim.
type AbstractFunc func(introduction, title string) string

// abstractWordLimit caps the truncated abstract.
const abstractWordLimit = 120

// TruncatedAbstract is the default derivation: the first 120 words of
// the introduction followed by an ellipsis. Introductions short enough
// to survive truncation intact fall back to the templated abstract so
// the abstract is never a verbatim copy.
func TruncatedAbstract(introduction, title string) string {
	words := strings.Fields(introduction)
	if len(words) <= abstractWordLimit {
		return TemplatedAbstract(introduction, title)
	}
	return strings.Join(words[:abstractWordLimit], " ") + "..."
}

// TemplatedAbstract generates an abstract independently of the
// introduction, selecting an opening keyed off keywords in the title.
func TemplatedAbstract(_, title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "analysis") || strings.Contains(lower, "study"):
		return "This study presents a structured examination of " + title +
			", outlining its central questions, the evidence considered, and the conclusions that follow from it."
	case strings.Contains(lower, "impact") || strings.Contains(lower, "effect"):
		return "This report assesses the impact of " + title +
			", weighing the observed effects against the broader context in which they occur."
	case strings.Contains(lower, "history") || strings.Contains(lower, "development"):
		return "This report traces the development of " + title +
			", from its origins through the turning points that shaped its present form."
	default:
		return "This report examines " + title +
			" and provides a comprehensive analysis of its key aspects, drawing together background, current understanding, and open questions."
	}
}
