package handwrite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hyperifyio/goreport/internal/page"
	"github.com/hyperifyio/goreport/internal/report"
)

func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\n"))
}

func sampleDoc(pages int) report.Document {
	return report.Document{
		Title:        "Field Notes on Orienteering",
		Introduction: strings.Repeat("Notes on finding the way with map and compass. ", 20),
		Sections: []report.Section{
			{Title: "Reading the Terrain", Content: strings.Repeat("Contours tell most of the story. ", 30)},
			{Title: "Compass Work", Content: strings.Repeat("Bearings keep the legs honest. ", 30)},
		},
		Conclusion:     strings.Repeat("Practice settles all of it. ", 15),
		References:     []string{"Kjellstrom, B. (2009). Be expert with map and compass. Wiley."},
		RequestedPages: pages,
	}
}

func TestBuild_ExactPageCount(t *testing.T) {
	cases := []struct {
		name  string
		pages int
	}{
		{"single page", 1},
		{"three pages", 3},
		{"five pages", 5},
		{"ten pages", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pdf, err := BuildWithOptions("Field Notes on Orienteering", sampleDoc(tc.pages), Options{Seed: 7})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := pageCount(pdf); got != tc.pages {
				t.Fatalf("page count = %d, want %d", got, tc.pages)
			}
		})
	}
}

func TestBuild_EmptyPayload(t *testing.T) {
	pdf, err := BuildWithOptions("Sparse Topic", report.Document{RequestedPages: 3}, Options{Seed: 11})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(pdf); got != 3 {
		t.Fatalf("page count = %d, want 3", got)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestBuild_FixedSeedIsDeterministic(t *testing.T) {
	doc := sampleDoc(4)
	a, err := BuildWithOptions("Field Notes on Orienteering", doc, Options{Seed: 42})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := BuildWithOptions("Field Notes on Orienteering", doc, Options{Seed: 42})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same seed produced different bytes (%d vs %d)", len(a), len(b))
	}
}

func TestBuild_DifferentSeedsDiffer(t *testing.T) {
	doc := sampleDoc(4)
	a, err := BuildWithOptions("Field Notes on Orienteering", doc, Options{Seed: 1})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := BuildWithOptions("Field Notes on Orienteering", doc, Options{Seed: 2})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("different seeds produced identical bytes")
	}
}

// The handwritten contents page prints the same numbers the units are
// actually emitted on, matching the typed engine's behavior.
func TestBuild_TOCMatchesRenderedPages(t *testing.T) {
	for _, pages := range []int{5, 8} {
		doc := sampleDoc(pages)
		type traceKey struct {
			unit page.Unit
			idx  int
		}
		got := map[traceKey]int{}
		_, err := BuildWithOptions(doc.Title, doc, Options{
			Seed: 21,
			Trace: func(u page.Unit, idx, pg int) {
				got[traceKey{u, idx}] = pg
			},
		})
		if err != nil {
			t.Fatalf("pages=%d: Build: %v", pages, err)
		}

		titles := make([]string, len(doc.Sections))
		for i, s := range doc.Sections {
			titles[i] = s.Title
		}
		entries := page.New(pages, len(doc.Sections)).TOCEntries(titles)

		if pg := got[traceKey{page.UnitIntroduction, -1}]; pg != entries[0].Page {
			t.Fatalf("pages=%d: introduction emitted on page %d, contents says %d", pages, pg, entries[0].Page)
		}
		for i := range doc.Sections {
			want := entries[1+i].Page
			if pg := got[traceKey{page.UnitSection, i}]; pg != want {
				t.Fatalf("pages=%d: section %d emitted on page %d, contents says %d", pages, i, pg, want)
			}
		}
		if pg := got[traceKey{page.UnitConclusion, -1}]; pg != entries[len(entries)-2].Page {
			t.Fatalf("pages=%d: conclusion emitted on page %d, contents says %d", pages, pg, entries[len(entries)-2].Page)
		}
		if pg := got[traceKey{page.UnitReferences, -1}]; pg != entries[len(entries)-1].Page {
			t.Fatalf("pages=%d: references emitted on page %d, contents says %d", pages, pg, entries[len(entries)-1].Page)
		}
	}
}

func TestBuild_MissingFontFallsBack(t *testing.T) {
	pdf, err := BuildWithOptions("Topic", sampleDoc(3), Options{
		Seed:     5,
		FontPath: "/nonexistent/handwriting.ttf",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(pdf); got != 3 {
		t.Fatalf("page count = %d, want 3", got)
	}
}
