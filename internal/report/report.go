package report

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/goreport/internal/sanitize"
)

// Style selects which layout engine renders a document.
type Style int

const (
	StyleTyped Style = iota
	StyleHandwritten
)

// ParseStyle maps a user-facing style name to a Style. Unknown names
// default to typed.
func ParseStyle(s string) Style {
	if strings.EqualFold(strings.TrimSpace(s), "handwritten") {
		return StyleHandwritten
	}
	return StyleTyped
}

func (s Style) String() string {
	if s == StyleHandwritten {
		return "handwritten"
	}
	return "typed"
}

// Section is one titled body unit of a report.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Document is the content payload consumed by the layout engines. It is
// the normalized form of whatever the content provider returned; after
// Normalize every field is present and after Sanitized every string is
// restricted to printable Latin-1.
type Document struct {
	Title          string    `json:"title"`
	Introduction   string    `json:"introduction"`
	Sections       []Section `json:"sections"`
	Conclusion     string    `json:"conclusion"`
	References     []string  `json:"references"`
	RequestedPages int       `json:"requested_pages"`
}

// Normalize fills every missing or malformed field of d with a
// deterministic topic-derived default so that layout code never sees an
// empty list or a blank heading. Per-field recovery is silent; nothing
// here is an error condition. The requested page count is clamped to a
// minimum of 1.
func Normalize(d Document, topic string, pages int) Document {
	if pages < 1 {
		pages = 1
	}
	d.RequestedPages = pages

	if strings.TrimSpace(d.Title) == "" {
		d.Title = strings.TrimSpace(topic)
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = "Untitled Report"
	}
	if strings.TrimSpace(d.Introduction) == "" {
		d.Introduction = DefaultIntroduction(d.Title)
	}
	if strings.TrimSpace(d.Conclusion) == "" {
		d.Conclusion = DefaultConclusion(d.Title)
	}

	// Drop sections that carry neither a title nor content, then default
	// the remaining blanks. A fully empty list is replaced wholesale.
	kept := make([]Section, 0, len(d.Sections))
	for _, sec := range d.Sections {
		if strings.TrimSpace(sec.Title) == "" && strings.TrimSpace(sec.Content) == "" {
			continue
		}
		if strings.TrimSpace(sec.Title) == "" {
			sec.Title = "Untitled Section"
		}
		if strings.TrimSpace(sec.Content) == "" {
			sec.Content = "This section discusses important aspects related to " + sec.Title + "."
		}
		kept = append(kept, sec)
	}
	if len(kept) == 0 {
		kept = PlaceholderSections(d.Title, pages)
	}
	d.Sections = kept

	refs := make([]string, 0, len(d.References))
	for _, r := range d.References {
		if strings.TrimSpace(r) == "" {
			continue
		}
		refs = append(refs, strings.TrimSpace(r))
	}
	if len(refs) == 0 {
		refs = DefaultReferences(d.Title)
	}
	d.References = refs

	return d
}

// Sanitized returns a copy of d with every string field passed through
// the Latin-1 sanitizer, recursing into sections and references.
func (d Document) Sanitized() Document {
	out := d
	out.Title = sanitize.String(d.Title)
	out.Introduction = sanitize.String(d.Introduction)
	out.Conclusion = sanitize.String(d.Conclusion)
	out.Sections = make([]Section, len(d.Sections))
	for i, sec := range d.Sections {
		out.Sections[i] = Section{
			Title:   sanitize.String(sec.Title),
			Content: sanitize.String(sec.Content),
		}
	}
	out.References = make([]string, len(d.References))
	for i, r := range d.References {
		out.References[i] = sanitize.String(r)
	}
	return out
}

// placeholderThemes rotates through thematic section titles when the
// payload arrives without sections. The %s is the report title.
var placeholderThemes = []string{
	"Historical Context of %s",
	"Theoretical Framework for %s",
	"Practical Applications of %s",
	"Current Research on %s",
	"Critical Analysis of %s",
	"Future Directions for %s Research",
	"Interdisciplinary Connections to %s",
	"Methodological Approaches to %s",
}

var placeholderFocus = []string{
	"theoretical foundations",
	"practical applications",
	"historical development",
	"current research",
	"future directions",
}

// PlaceholderCount derives how many sections to synthesize for a payload
// that has none: requested pages halved, clamped to [3, 5].
func PlaceholderCount(pages int) int {
	n := pages / 2
	if n < 3 {
		n = 3
	}
	if n > 5 {
		n = 5
	}
	return n
}

// PlaceholderSections builds a deterministic set of topic-derived
// sections used when the payload has an empty section list.
func PlaceholderSections(title string, pages int) []Section {
	n := PlaceholderCount(pages)
	out := make([]Section, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Section{
			Title: fmt.Sprintf(placeholderThemes[i%len(placeholderThemes)], title),
			Content: fmt.Sprintf(
				"This section analyzes important dimensions of %s, focusing on its %s. "+
					"The analysis reveals significant patterns and insights that contribute to our understanding of the topic.",
				title, placeholderFocus[i%len(placeholderFocus)]),
		})
	}
	return out
}

// DefaultReferences returns the five templated citations substituted when
// the payload carries no usable reference strings.
func DefaultReferences(title string) []string {
	return []string{
		fmt.Sprintf("Smith, J. (2023). Understanding %s. Journal of Research, 45(2), 112-128.", title),
		fmt.Sprintf("Johnson, A., & Williams, P. (2022). Advances in %s. Academic Press.", title),
		fmt.Sprintf("Brown, R. et al. (2021). %s: A comprehensive review. Annual Review, 15, 23-45.", title),
		fmt.Sprintf("Taylor, M. (2023). Practical applications of %s. Applied Research Today, 8(3), 67-89.", title),
		fmt.Sprintf("White, S., & Miller, T. (2022). Future directions for %s research. Future Perspectives, 12(1), 34-56.", title),
	}
}

// DefaultIntroduction is the fallback introduction for an empty payload field.
func DefaultIntroduction(title string) string {
	return "This report explores the topic of " + title + " in detail. " +
		"It aims to provide a comprehensive overview of key aspects related to this subject."
}

// DefaultConclusion is the fallback conclusion for an empty payload field.
func DefaultConclusion(title string) string {
	return "In conclusion, " + title + " represents an important area of study. " +
		"This report has highlighted key aspects and considerations related to the topic."
}
