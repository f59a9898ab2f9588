// Package template defines the per-style prompt profiles the content
// provider uses when asking a model for a report payload. A profile
// carries the wording differences between a formal typed report and a
// casual handwritten one, plus the example section titles offered to
// the model.
package template

import (
	"fmt"

	"github.com/hyperifyio/goreport/internal/report"
)

// Profile describes how content for one rendering style should read.
type Profile struct {
	Style        report.Style
	Name         string
	WritingStyle string
	ContentStyle string
	// RequireCitations asks the model for properly formatted academic
	// references; the handwritten profile relaxes this.
	RequireCitations bool
}

// ForStyle returns the prompt profile for a rendering style.
func ForStyle(s report.Style) Profile {
	if s == report.StyleHandwritten {
		return Profile{
			Style:        s,
			Name:         "personal, handwritten-style",
			WritingStyle: "casual, personal, and conversational",
			ContentStyle: "bullet points, shorter paragraphs, and more direct language",
		}
	}
	return Profile{
		Style:            s,
		Name:             "detailed academic",
		WritingStyle:     "formal, academic",
		ContentStyle:     "detailed paragraphs with academic depth",
		RequireCitations: true,
	}
}

// sectionExamples are the rotating example section titles shown to the
// model; specific titles steer it away from generic "Section 1" names.
var sectionExamples = []struct{ title, content string }{
	{"Historical Context and Background", "Content about the history of %s"},
	{"Theoretical Framework and Key Concepts", "Content explaining theories related to %s"},
	{"Current Research and Findings", "Content about recent studies on %s"},
	{"Practical Applications and Implications", "Content about how %s is applied"},
	{"Critical Analysis and Evaluation", "Content analyzing strengths and weaknesses of %s"},
	{"Case Studies and Real-World Examples", "Content featuring examples of %s in practice"},
	{"Future Directions and Emerging Trends", "Content about where %s is heading"},
	{"Interdisciplinary Connections", "Content about how %s relates to other fields"},
}

// SectionCount chooses how many sections to request for a page count:
// at least 3, at most 8, one per page in between.
func SectionCount(pages int) int {
	n := pages
	if n < 3 {
		n = 3
	}
	if n > 8 {
		n = 8
	}
	return n
}

// ExampleSections renders the first n example sections for the topic as
// JSON-ish fragments embedded in the prompt.
func ExampleSections(topic string, n int) []string {
	if n > len(sectionExamples) {
		n = len(sectionExamples)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ex := sectionExamples[i]
		out = append(out, fmt.Sprintf(`{"title": %q, "content": %q}`,
			ex.title, fmt.Sprintf(ex.content, topic)))
	}
	return out
}
