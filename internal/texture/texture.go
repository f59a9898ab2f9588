// Package texture paints a simulated scanned-paper background onto a
// PDF page: a brightness gradient, speck noise, broken scan lines,
// stray fibers, fold creases and an edge vignette. It depends only on
// the page geometry and an injected random source, never on the text
// that will be written over it, so it can be exercised as a pure page
// decoration.
package texture

import (
	"math"
	"math/rand"

	"github.com/jung-kurt/gofpdf"
)

// PageStyle selects the overall character of one page's background. A
// style is drawn once per page and parameterizes every artifact layer.
type PageStyle int

const (
	StyleClean PageStyle = iota
	StyleLight
	StyleHeavy
	StyleLines
	StyleMixed
	StyleAged
)

func (s PageStyle) String() string {
	switch s {
	case StyleClean:
		return "clean"
	case StyleLight:
		return "light"
	case StyleHeavy:
		return "heavy"
	case StyleLines:
		return "lines"
	case StyleMixed:
		return "mixed"
	case StyleAged:
		return "aged"
	}
	return "unknown"
}

// params bundles the per-style artifact intensities.
type params struct {
	speckMin, speckMax int
	speckDark          int // darkest speck gray value (lower is darker)
	clusterChance      float64
	scanLines          int
	fibers             int
	creaseChance       float64
	gradientDepth      int // brightness drop from top to bottom
	vignetteAlpha      float64
}

func styleParams(s PageStyle) params {
	switch s {
	case StyleClean:
		return params{speckMin: 5, speckMax: 18, speckDark: 200, scanLines: 0, fibers: 0, creaseChance: 0, gradientDepth: 4, vignetteAlpha: 0.04}
	case StyleLight:
		return params{speckMin: 30, speckMax: 80, speckDark: 180, clusterChance: 0.2, scanLines: 2, fibers: 2, creaseChance: 0.1, gradientDepth: 8, vignetteAlpha: 0.06}
	case StyleHeavy:
		return params{speckMin: 140, speckMax: 260, speckDark: 120, clusterChance: 0.45, scanLines: 5, fibers: 6, creaseChance: 0.35, gradientDepth: 14, vignetteAlpha: 0.10}
	case StyleLines:
		return params{speckMin: 10, speckMax: 30, speckDark: 190, scanLines: 8, fibers: 0, creaseChance: 0.15, gradientDepth: 6, vignetteAlpha: 0.05}
	case StyleMixed:
		return params{speckMin: 60, speckMax: 150, speckDark: 150, clusterChance: 0.3, scanLines: 4, fibers: 3, creaseChance: 0.25, gradientDepth: 10, vignetteAlpha: 0.08}
	case StyleAged:
		return params{speckMin: 100, speckMax: 200, speckDark: 130, clusterChance: 0.4, scanLines: 3, fibers: 5, creaseChance: 0.5, gradientDepth: 18, vignetteAlpha: 0.12}
	}
	return styleParams(StyleLight)
}

// Choose draws a page style. Clean and light pages dominate so a
// document does not read as uniformly dirty.
func Choose(rng *rand.Rand) PageStyle {
	switch r := rng.Float64(); {
	case r < 0.22:
		return StyleClean
	case r < 0.50:
		return StyleLight
	case r < 0.62:
		return StyleHeavy
	case r < 0.74:
		return StyleLines
	case r < 0.88:
		return StyleMixed
	default:
		return StyleAged
	}
}

// Paint decorates the current page with a randomly chosen style. All
// randomization is drawn from rng; pages share no other state.
func Paint(pdf *gofpdf.Fpdf, rng *rand.Rand) PageStyle {
	style := Choose(rng)
	PaintStyled(pdf, rng, style)
	return style
}

// PaintStyled decorates the current page with an explicit style.
func PaintStyled(pdf *gofpdf.Fpdf, rng *rand.Rand, style PageStyle) {
	w, h := pdf.GetPageSize()
	p := styleParams(style)

	gradient(pdf, w, h, p.gradientDepth)
	specks(pdf, rng, w, h, p)
	scanLines(pdf, rng, w, h, p.scanLines)
	fibers(pdf, rng, w, h, p.fibers)
	if rng.Float64() < p.creaseChance {
		crease(pdf, rng, w, h)
	}
	vignette(pdf, w, h, p.vignetteAlpha)

	// Restore neutral drawing state for whatever renders on top.
	pdf.SetAlpha(1, "Normal")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
}

// gradient paints a smooth top-to-bottom brightness falloff. depth is
// the gray-value drop across the page height.
func gradient(pdf *gofpdf.Fpdf, w, h float64, depth int) {
	top := 255
	bottom := 255 - depth
	pdf.LinearGradient(0, 0, w, h, top, top, top, bottom, bottom, bottom, 0, 0, 0, 1)
}

// specks scatters small dot artifacts, occasionally in clustered groups
// the way dust on a scanner glass clumps.
func specks(pdf *gofpdf.Fpdf, rng *rand.Rand, w, h float64, p params) {
	if p.speckMax <= 0 {
		return
	}
	count := p.speckMin
	if p.speckMax > p.speckMin {
		count += rng.Intn(p.speckMax - p.speckMin)
	}
	for i := 0; i < count; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		speck(pdf, rng, x, y, p.speckDark)
		if rng.Float64() < p.clusterChance {
			n := 2 + rng.Intn(5)
			for j := 0; j < n; j++ {
				dx := (rng.Float64() - 0.5) * 4
				dy := (rng.Float64() - 0.5) * 4
				speck(pdf, rng, x+dx, y+dy, p.speckDark)
			}
		}
	}
}

func speck(pdf *gofpdf.Fpdf, rng *rand.Rand, x, y float64, dark int) {
	gray := dark + rng.Intn(256-dark)
	pdf.SetFillColor(gray, gray, gray)
	pdf.SetAlpha(0.35+rng.Float64()*0.4, "Normal")
	r := 0.08 + rng.Float64()*0.35
	pdf.Circle(x, y, r, "F")
}

// scanLines draws sparse horizontal streaks broken by random gaps.
func scanLines(pdf *gofpdf.Fpdf, rng *rand.Rand, w, h float64, n int) {
	for i := 0; i < n; i++ {
		y := rng.Float64() * h
		gray := 170 + rng.Intn(60)
		pdf.SetDrawColor(gray, gray, gray)
		pdf.SetLineWidth(0.1 + rng.Float64()*0.2)
		pdf.SetAlpha(0.15+rng.Float64()*0.2, "Normal")
		x := 0.0
		for x < w {
			segment := 5 + rng.Float64()*40
			end := math.Min(x+segment, w)
			pdf.Line(x, y, end, y)
			x = end + 2 + rng.Float64()*25
		}
	}
}

// fibers draws short diagonal hair-like strokes.
func fibers(pdf *gofpdf.Fpdf, rng *rand.Rand, w, h float64, n int) {
	for i := 0; i < n; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		length := 2 + rng.Float64()*9
		angle := rng.Float64() * 2 * math.Pi
		gray := 120 + rng.Intn(90)
		pdf.SetDrawColor(gray, gray, gray)
		pdf.SetLineWidth(0.08 + rng.Float64()*0.1)
		pdf.SetAlpha(0.2+rng.Float64()*0.25, "Normal")
		pdf.Line(x, y, x+length*math.Cos(angle), y+length*math.Sin(angle))
	}
}

// crease draws one faint fold mark: a discontinuous line across the
// page, horizontal or vertical, displaced by a slow sine so it reads as
// a physical crease rather than a ruled line.
func crease(pdf *gofpdf.Fpdf, rng *rand.Rand, w, h float64) {
	horizontal := rng.Float64() < 0.5
	gray := 150 + rng.Intn(50)
	pdf.SetDrawColor(gray, gray, gray)
	pdf.SetLineWidth(0.15 + rng.Float64()*0.15)
	pdf.SetAlpha(0.12+rng.Float64()*0.12, "Normal")

	amp := 1 + rng.Float64()*2.5
	freq := 0.5 + rng.Float64()*1.5
	phase := rng.Float64() * 2 * math.Pi

	span := w
	base := rng.Float64() * h
	if !horizontal {
		span = h
		base = rng.Float64() * w
	}
	const step = 4.0
	for t := 0.0; t < span-step; t += step {
		// Random gaps keep the crease discontinuous.
		if rng.Float64() < 0.25 {
			continue
		}
		o1 := amp * math.Sin(freq*t/span*2*math.Pi+phase)
		o2 := amp * math.Sin(freq*(t+step)/span*2*math.Pi+phase)
		if horizontal {
			pdf.Line(t, base+o1, t+step, base+o2)
		} else {
			pdf.Line(base+o1, t, base+o2, t+step)
		}
	}
}

// vignette darkens a band along all four edges. Intensity follows a
// power falloff with distance from the edge.
func vignette(pdf *gofpdf.Fpdf, w, h float64, maxAlpha float64) {
	if maxAlpha <= 0 {
		return
	}
	const steps = 8
	const band = 6.0 // mm
	pdf.SetFillColor(60, 55, 50)
	for i := 0; i < steps; i++ {
		frac := float64(i) / steps
		alpha := maxAlpha * math.Pow(1-frac, 2.2)
		d := band * frac
		thickness := band / steps
		pdf.SetAlpha(alpha, "Normal")
		pdf.Rect(0, d, w, thickness, "F")             // top
		pdf.Rect(0, h-d-thickness, w, thickness, "F") // bottom
		pdf.Rect(d, 0, thickness, h, "F")             // left
		pdf.Rect(w-d-thickness, 0, thickness, h, "F") // right
	}
}
