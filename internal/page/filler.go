package page

import "strings"

// Filler pages are synthesized solely to lift the page count up to the
// requested target before the conclusion is emitted. Headings and
// paragraph sets rotate round-robin so consecutive filler pages differ.

var fillerHeadings = []string{
	"Additional Notes",
	"Supplementary Material",
	"Points for Further Study",
	"Review Notes",
}

var fillerBodies = [][]string{
	{
		"This section contains supplementary information related to %T.",
		"Key points to consider when studying %T:",
		"* The historical context and development of this subject",
		"* Current research trends and methodologies",
		"* Practical applications and implications",
		"* Challenges and opportunities for future research",
	},
	{
		"The material collected here extends the discussion of %T beyond the main sections of this report.",
		"Readers interested in the finer points of %T may wish to revisit the earlier sections with the following questions in mind:",
		"* Which claims rest on the strongest evidence?",
		"* Where do the cited authors disagree, and why?",
		"* What would a practitioner do differently after reading this report?",
	},
	{
		"A short recapitulation of %T is offered here as an aid to review.",
		"The central themes of this report can be summarized as background, present state, and outlook, each of which bears directly on %T.",
		"For a more comprehensive understanding of %T, readers are encouraged to explore the references provided in this report and to pursue the aspects most relevant to their own work.",
	},
}

// FillerHeading returns the heading for the i-th filler page.
func FillerHeading(i int) string {
	if i < 0 {
		i = 0
	}
	return fillerHeadings[i%len(fillerHeadings)]
}

// FillerParagraphs returns the body paragraphs for the i-th filler page
// with the report title substituted in.
func FillerParagraphs(i int, title string) []string {
	if i < 0 {
		i = 0
	}
	tmpl := fillerBodies[i%len(fillerBodies)]
	out := make([]string, len(tmpl))
	for j, s := range tmpl {
		out[j] = strings.ReplaceAll(s, "%T", title)
	}
	return out
}

// Flatten collapses newlines (including literal "\n" escape sequences
// that survive JSON round trips) and runs of whitespace into single
// spaces, which keeps word wrapping in the layout engines uniform.
func Flatten(s string) string {
	s = strings.ReplaceAll(s, `\n`, " ")
	s = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
