package typeset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hyperifyio/goreport/internal/page"
	"github.com/hyperifyio/goreport/internal/report"
)

// pageCount counts page objects in the serialized PDF. The page tree
// root is "/Type /Pages" and does not match.
func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\n"))
}

func sampleDoc(pages, sections int) report.Document {
	d := report.Document{
		Title:        "Industrial Fermentation",
		Introduction: strings.Repeat("An introduction to the topic at hand. ", 40),
		Conclusion:   strings.Repeat("Concluding thoughts on the topic. ", 30),
		References: []string{
			"Smith, J. (2020). Fermentation at scale. Process Journal, 3(1), 10-25.",
			"Brown, R. (2019). Vessels and cultures. Biotech Press.",
		},
		RequestedPages: pages,
	}
	for i := 0; i < sections; i++ {
		d.Sections = append(d.Sections, report.Section{
			Title:   "Aspect " + string(rune('A'+i)),
			Content: strings.Repeat("Body text for this part of the discussion. ", 60),
		})
	}
	return d
}

func TestBuild_ExactPageCount(t *testing.T) {
	cases := []struct {
		name     string
		pages    int
		sections int
	}{
		{"single page", 1, 2},
		{"two pages", 2, 2},
		{"three pages", 3, 0},
		{"five pages two sections", 5, 2},
		{"ten pages four sections", 10, 4},
		{"short on room", 8, 9},
		{"filler heavy", 15, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pdf, err := Build("Industrial Fermentation", sampleDoc(tc.pages, tc.sections))
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := pageCount(pdf); got != tc.pages {
				t.Fatalf("page count = %d, want %d", got, tc.pages)
			}
		})
	}
}

func TestBuild_ZeroPagesClampsToOne(t *testing.T) {
	pdf, err := Build("Topic", report.Document{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(pdf); got != 1 {
		t.Fatalf("page count = %d, want 1", got)
	}
}

func TestBuild_EmptyPayloadStillRenders(t *testing.T) {
	pdf, err := Build("Bare Topic", report.Document{RequestedPages: 7})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(pdf); got != 7 {
		t.Fatalf("page count = %d, want 7", got)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestBuild_NonLatinPayload(t *testing.T) {
	doc := report.Document{
		Title:        "Unicode — Test “Report”",
		Introduction: "Contains 中文 and émojis \U0001f600 and arrows →.",
		Sections: []report.Section{
			{Title: "Curly ‘Section’", Content: "More — unicode … content •"},
		},
		RequestedPages: 5,
	}
	pdf, err := Build("Unicode Test", doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(pdf); got != 5 {
		t.Fatalf("page count = %d, want 5", got)
	}
}

func TestBuildWithOptions_CustomAbstract(t *testing.T) {
	called := false
	pdf, err := BuildWithOptions("Topic", sampleDoc(6, 2), Options{
		Abstract: func(intro, title string) string {
			called = true
			return "A custom abstract for " + title + "."
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !called {
		t.Fatalf("custom abstract function not invoked")
	}
	if got := pageCount(pdf); got != 6 {
		t.Fatalf("page count = %d, want 6", got)
	}
}

// traceKey identifies one traced unit emission.
type traceKey struct {
	unit page.Unit
	idx  int
}

func traceBuild(t *testing.T, doc report.Document) map[traceKey]int {
	t.Helper()
	got := map[traceKey]int{}
	_, err := BuildWithOptions(doc.Title, doc, Options{
		Trace: func(u page.Unit, idx, pg int) {
			got[traceKey{u, idx}] = pg
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return got
}

// The page numbers printed in the table of contents must match the
// pages the units are actually emitted on, not just the plan's
// arithmetic.
func TestBuild_TOCMatchesRenderedPages(t *testing.T) {
	cases := []struct {
		name     string
		pages    int
		sections int
	}{
		{"one page per unit", 10, 4},
		{"shared pages", 5, 2},
		{"grouped sections", 8, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := sampleDoc(tc.pages, tc.sections)
			got := traceBuild(t, doc)

			titles := make([]string, len(doc.Sections))
			for i, s := range doc.Sections {
				titles[i] = s.Title
			}
			entries := page.New(tc.pages, tc.sections).TOCEntries(titles)

			if pg := got[traceKey{page.UnitIntroduction, -1}]; pg != entries[0].Page {
				t.Fatalf("introduction emitted on page %d, contents says %d", pg, entries[0].Page)
			}
			for i := 0; i < tc.sections; i++ {
				want := entries[1+i].Page
				if pg := got[traceKey{page.UnitSection, i}]; pg != want {
					t.Fatalf("section %d emitted on page %d, contents says %d", i, pg, want)
				}
			}
			conclusion := entries[len(entries)-2]
			references := entries[len(entries)-1]
			if pg := got[traceKey{page.UnitConclusion, -1}]; pg != conclusion.Page {
				t.Fatalf("conclusion emitted on page %d, contents says %d", pg, conclusion.Page)
			}
			if pg := got[traceKey{page.UnitReferences, -1}]; pg != references.Page {
				t.Fatalf("references emitted on page %d, contents says %d", pg, references.Page)
			}
		})
	}
}

func TestBuild_OversizedPayloadStillExact(t *testing.T) {
	doc := sampleDoc(5, 3)
	for i := range doc.Sections {
		doc.Sections[i].Content = strings.Repeat("Far more text than five pages can hold. ", 2000)
	}
	pdf, err := Build("Topic", doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(pdf); got != 5 {
		t.Fatalf("page count = %d, want 5", got)
	}
}
