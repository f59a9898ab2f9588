package handwrite

import (
	"strings"
)

// Glyph-level rendering. Every character is placed individually: size,
// rotation, position and ink darkness are sampled per glyph from the
// document style's envelope, widened by the fatigue factor as the
// running word count grows.

const (
	// inkBlotChance is the base probability of an ink blot per glyph,
	// before fatigue scaling.
	inkBlotChance = 0.012

	// inkSkipChance is the probability a glyph renders with starved
	// ink.
	inkSkipChance = 0.008

	// joinChance scales the document speed into a per-pair cursive
	// join probability.
	joinChance = 0.3
)

// writeWord renders one word glyph by glyph starting at (x, y) and
// returns the x position following the word and its trailing space. The
// word never splits across lines; the caller has already decided the
// word fits.
func (e *engine) writeWord(x, y float64, word string, size float64) float64 {
	if strings.TrimSpace(word) == "" {
		return x
	}
	f := Fatigue(e.style.FatigueRate, e.wordsWritten)

	prevX, prevY := 0.0, 0.0
	for i, r := range word {
		ch := string(r)
		e.setFont(size)
		advance := e.pdf.GetStringWidth(e.tr(ch)) * e.style.SpacingVariation * (0.92 + e.rng.Float64()*0.16)

		// Positional jitter widens with fatigue.
		gx := x + e.jitter(0.5*f)*e.style.SpacingVariation
		gy := y + e.jitter(0.35*f)*e.style.BaselineVariation
		if gx < leftMargin {
			gx = leftMargin
		}
		if gy < topMargin {
			gy = topMargin
		}
		if gy > e.pageH-2 {
			gy = e.pageH - 2
		}

		e.inkColor(f)

		blot := e.rng.Float64() < inkBlotChance*f
		if blot {
			e.blot(gx+advance*0.4, gy+0.3)
		}
		// A blot occasionally swallows the character entirely.
		if blot && e.rng.Float64() < 0.3 {
			x += advance
			continue
		}

		if e.rng.Float64() < inkSkipChance {
			e.pdf.SetTextColor(165, 165, 190)
		}

		angle := e.style.Slant*(0.7+e.rng.Float64()*0.6) + e.jitter(1.2*f)
		mult := e.style.SizeVariation * (0.9 + e.rng.Float64()*0.2)

		e.pdf.SetFontSize(size * mult)
		e.pdf.TransformBegin()
		e.pdf.TransformRotate(angle, gx, gy)
		e.pdf.Text(gx, gy, e.tr(ch))
		e.pdf.TransformEnd()
		e.pdf.SetFontSize(size)

		// Cursive join back to the previous glyph within the word.
		if i > 0 && e.rng.Float64() < joinChance*e.style.Speed {
			e.join(prevX, prevY, gx, gy)
		}
		prevX, prevY = gx+advance*0.8, gy

		x += advance
	}
	// Trailing word space, slightly elastic.
	e.setFont(size)
	x += e.pdf.GetStringWidth(e.tr(" ")) * e.style.SpacingVariation * (0.85 + e.rng.Float64()*0.3)
	return x
}

// inkColor sets the text color to the document ink with per-glyph
// darkness variation; variance widens with fatigue.
func (e *engine) inkColor(fatigue float64) {
	span := int(18 * fatigue)
	if span < 1 {
		span = 1
	}
	d := e.rng.Intn(2*span) - span
	e.pdf.SetTextColor(clampByte(e.style.InkR+d), clampByte(e.style.InkG+d), clampByte(e.style.InkB+d))
}

// blot draws a small filled ink blob.
func (e *engine) blot(x, y float64) {
	e.pdf.SetFillColor(e.style.InkR, e.style.InkG, e.style.InkB)
	e.pdf.SetAlpha(0.5+e.rng.Float64()*0.4, "Normal")
	e.pdf.Circle(x, y, 0.15+e.rng.Float64()*0.4, "F")
	e.pdf.SetAlpha(1, "Normal")
}

// join draws a thin connecting stroke between two adjacent glyphs.
func (e *engine) join(x1, y1, x2, y2 float64) {
	if x1 <= 0 || x2 <= x1 {
		return
	}
	e.pdf.SetDrawColor(e.style.InkR, e.style.InkG, e.style.InkB)
	e.pdf.SetLineWidth(0.1 + e.rng.Float64()*0.08)
	e.pdf.SetAlpha(0.45+e.rng.Float64()*0.3, "Normal")
	e.pdf.Line(x1, y1-0.8, x2, y2-0.8)
	e.pdf.SetAlpha(1, "Normal")
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func splitWords(s string) []string { return strings.Fields(s) }
