// Package page plans how a report's units map onto an exact number of
// pages. The plan is computed before any rendering happens and both
// layout engines follow it verbatim, which is what makes the table of
// contents' page-number predictions agree with the rendered body.
package page

// Unit identifies one logical piece of the document skeleton.
type Unit int

const (
	UnitAbstract Unit = iota
	UnitTOC
	UnitIntroduction
	UnitSection
	UnitFiller
	UnitConclusion
	UnitReferences
)

func (u Unit) String() string {
	switch u {
	case UnitAbstract:
		return "abstract"
	case UnitTOC:
		return "toc"
	case UnitIntroduction:
		return "introduction"
	case UnitSection:
		return "section"
	case UnitFiller:
		return "filler"
	case UnitConclusion:
		return "conclusion"
	case UnitReferences:
		return "references"
	}
	return "unknown"
}

// Entry assigns a starting page to one unit. Index numbers sections and
// filler pages from zero; it is -1 for singleton units.
type Entry struct {
	Unit  Unit
	Index int
	Page  int
}

// Plan is the complete page assignment for one build. Pages are
// 1-based. Several units may share a page when the requested count is
// too small for one page per unit; the build never exceeds TargetPages.
type Plan struct {
	TargetPages int

	AbstractPage     int
	TOCPage          int
	IntroductionPage int
	SectionPages     []int
	FillerPages      []int
	ConclusionPage   int
	ReferencesPage   int
}

// New computes the page plan for the given target page count and section
// count. Policy, in order of priority:
//
//   - The document never overshoots or undershoots TargetPages.
//   - References end the document; Conclusion sits directly before it.
//   - Filler pages are inserted between the last section and the
//     Conclusion, never after it.
//   - When pages run short, trailing sections group onto shared pages;
//     for very small targets the framing units collapse onto shared
//     pages (4 pages: conclusion and references share the tail; 3:
//     abstract and contents share the front; 2 and 1 degenerate
//     further). Sections are grouped, never dropped.
func New(target, sections int) Plan {
	if target < 1 {
		target = 1
	}
	if sections < 0 {
		sections = 0
	}
	p := Plan{TargetPages: target}
	p.SectionPages = make([]int, sections)

	switch target {
	case 1:
		p.AbstractPage, p.TOCPage, p.IntroductionPage = 1, 1, 1
		fillPages(p.SectionPages, 1)
		p.ConclusionPage, p.ReferencesPage = 1, 1
		return p
	case 2:
		p.AbstractPage, p.TOCPage, p.IntroductionPage = 1, 1, 1
		fillPages(p.SectionPages, 1)
		p.ConclusionPage, p.ReferencesPage = 2, 2
		return p
	case 3:
		p.AbstractPage, p.TOCPage = 1, 1
		p.IntroductionPage = 2
		fillPages(p.SectionPages, 2)
		p.ConclusionPage, p.ReferencesPage = 3, 3
		return p
	case 4:
		p.AbstractPage, p.TOCPage = 1, 2
		p.IntroductionPage = 3
		fillPages(p.SectionPages, 3)
		p.ConclusionPage, p.ReferencesPage = 4, 4
		return p
	}

	p.AbstractPage, p.TOCPage, p.IntroductionPage = 1, 2, 3
	p.ConclusionPage, p.ReferencesPage = target-1, target

	// Pages 4 .. target-2 are available for sections and filler.
	avail := target - 5
	switch {
	case sections == 0:
		for i := 0; i < avail; i++ {
			p.FillerPages = append(p.FillerPages, 4+i)
		}
	case avail == 0:
		// No dedicated section pages; sections flow under the
		// introduction.
		fillPages(p.SectionPages, 3)
	case sections <= avail:
		for i := range p.SectionPages {
			p.SectionPages[i] = 4 + i
		}
		for pg := 4 + sections; pg <= target-2; pg++ {
			p.FillerPages = append(p.FillerPages, pg)
		}
	default:
		// Group sections onto the available pages: the first
		// sections%avail pages take one extra section each.
		base := sections / avail
		extra := sections % avail
		idx := 0
		for pg := 0; pg < avail; pg++ {
			count := base
			if pg < extra {
				count++
			}
			for j := 0; j < count; j++ {
				p.SectionPages[idx] = 4 + pg
				idx++
			}
		}
	}
	return p
}

func fillPages(pages []int, pg int) {
	for i := range pages {
		pages[i] = pg
	}
}

// FillerCount reports how many synthetic filler pages the plan contains.
func (p Plan) FillerCount() int { return len(p.FillerPages) }

// Entries returns every unit in layout order with its assigned page.
func (p Plan) Entries() []Entry {
	out := make([]Entry, 0, 5+len(p.SectionPages)+len(p.FillerPages))
	out = append(out,
		Entry{Unit: UnitAbstract, Index: -1, Page: p.AbstractPage},
		Entry{Unit: UnitTOC, Index: -1, Page: p.TOCPage},
		Entry{Unit: UnitIntroduction, Index: -1, Page: p.IntroductionPage},
	)
	for i, pg := range p.SectionPages {
		out = append(out, Entry{Unit: UnitSection, Index: i, Page: pg})
	}
	for i, pg := range p.FillerPages {
		out = append(out, Entry{Unit: UnitFiller, Index: i, Page: pg})
	}
	out = append(out,
		Entry{Unit: UnitConclusion, Index: -1, Page: p.ConclusionPage},
		Entry{Unit: UnitReferences, Index: -1, Page: p.ReferencesPage},
	)
	return out
}

// tocTitleLimit truncates long section titles in the table of contents.
const tocTitleLimit = 70

// TOCEntry is one printed line of the table of contents.
type TOCEntry struct {
	Label string
	Page  int
}

// TOCEntries renders the plan into the labels and page numbers the
// table of contents prints: Introduction, each section, Conclusion and
// References. Filler pages are deliberately absent.
func (p Plan) TOCEntries(sectionTitles []string) []TOCEntry {
	out := make([]TOCEntry, 0, len(sectionTitles)+3)
	out = append(out, TOCEntry{Label: "Introduction", Page: p.IntroductionPage})
	for i, title := range sectionTitles {
		if len(title) > tocTitleLimit {
			title = title[:tocTitleLimit-3] + "..."
		}
		pg := p.IntroductionPage
		if i < len(p.SectionPages) {
			pg = p.SectionPages[i]
		}
		out = append(out, TOCEntry{Label: title, Page: pg})
	}
	out = append(out,
		TOCEntry{Label: "Conclusion", Page: p.ConclusionPage},
		TOCEntry{Label: "References", Page: p.ReferencesPage},
	)
	return out
}
