package page

import (
	"strings"
	"testing"
)

func TestFillerRotation(t *testing.T) {
	if FillerHeading(0) == FillerHeading(1) {
		t.Fatalf("consecutive filler headings identical")
	}
	if FillerHeading(0) != FillerHeading(len(fillerHeadings)) {
		t.Fatalf("heading rotation does not wrap")
	}
	a := strings.Join(FillerParagraphs(0, "T"), "\n")
	b := strings.Join(FillerParagraphs(1, "T"), "\n")
	if a == b {
		t.Fatalf("consecutive filler bodies identical")
	}
}

func TestFillerParagraphs_SubstitutesTitle(t *testing.T) {
	for i := 0; i < len(fillerBodies); i++ {
		joined := strings.Join(FillerParagraphs(i, "Beekeeping"), " ")
		if !strings.Contains(joined, "Beekeeping") {
			t.Fatalf("filler body %d missing title: %q", i, joined)
		}
		if strings.Contains(joined, "%T") {
			t.Fatalf("filler body %d left placeholder: %q", i, joined)
		}
	}
}

func TestFiller_NegativeIndex(t *testing.T) {
	if FillerHeading(-1) != FillerHeading(0) {
		t.Fatalf("negative heading index not clamped")
	}
	if len(FillerParagraphs(-3, "X")) == 0 {
		t.Fatalf("negative body index not clamped")
	}
}

func TestFlatten(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a\nb", "a b"},
		{`a\nb`, "a b"},
		{"a\r\n\tb   c", "a b c"},
		{"  spaced   out  ", "spaced out"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := Flatten(tc.in); got != tc.want {
			t.Fatalf("Flatten(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
