package texture

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
)

func renderOne(t *testing.T, seed int64, style PageStyle) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.AddPage()
	PaintStyled(pdf, rand.New(rand.NewSource(seed)), style)
	if pdf.Err() {
		t.Fatalf("paint %v: %v", style, pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return buf.Bytes()
}

func TestPaintStyled_AllStylesRender(t *testing.T) {
	for _, style := range []PageStyle{StyleClean, StyleLight, StyleHeavy, StyleLines, StyleMixed, StyleAged} {
		out := renderOne(t, 3, style)
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("style %v: not a PDF", style)
		}
	}
}

func TestPaintStyled_Deterministic(t *testing.T) {
	a := renderOne(t, 17, StyleHeavy)
	b := renderOne(t, 17, StyleHeavy)
	if !bytes.Equal(a, b) {
		t.Fatalf("same seed painted different bytes")
	}
}

func TestPaint_TextRendersOnTop(t *testing.T) {
	// Painting must leave the drawing state usable for whatever writes
	// over it.
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	Paint(pdf, rand.New(rand.NewSource(1)))
	pdf.SetFont("Courier", "", 12)
	pdf.Text(20, 40, "over the texture")
	if pdf.Err() {
		t.Fatalf("paint then text: %v", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
}

func TestChoose_CoversStyles(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seen := map[PageStyle]bool{}
	for i := 0; i < 500; i++ {
		seen[Choose(rng)] = true
	}
	if len(seen) < 4 {
		t.Fatalf("choose produced only %d distinct styles", len(seen))
	}
}

func TestPageStyleString(t *testing.T) {
	if StyleClean.String() == "" || StyleAged.String() == "" {
		t.Fatalf("style names must be non-empty")
	}
	if StyleClean.String() == StyleAged.String() {
		t.Fatalf("style names must differ")
	}
}
