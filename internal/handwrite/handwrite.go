// Package handwrite renders a report document as a simulated
// handwritten PDF. The document skeleton and page-number predictions
// match the typed engine; the rendering unit is the individual glyph,
// positioned with randomized jitter, slant and ink variation over a
// synthesized scanned-paper background.
package handwrite

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goreport/internal/budget"
	"github.com/hyperifyio/goreport/internal/page"
	"github.com/hyperifyio/goreport/internal/report"
	"github.com/hyperifyio/goreport/internal/texture"
)

const (
	leftMargin   = 12
	rightMargin  = 12
	topMargin    = 15
	bottomMargin = 15

	headingSize = 16
	bodySize    = 10
	refSize     = 9
	lineH       = 7.5
)

// Options tunes a handwritten build. The zero value is ready to use.
type Options struct {
	// Seed fixes the pseudo-random source for reproducible output.
	// Zero seeds from the clock.
	Seed int64

	// FontPath optionally points at a handwriting TTF. When empty or
	// unreadable the engine falls back to the Courier italic core font.
	FontPath string

	// Abstract overrides the abstract derivation strategy. Nil selects
	// page.TruncatedAbstract.
	Abstract page.AbstractFunc

	// Trace, when set, observes each unit as it is emitted: the unit,
	// its index (-1 for singletons) and the page it starts on.
	Trace func(unit page.Unit, index, pg int)
}

// Build renders doc as a handwritten-style PDF with exactly
// doc.RequestedPages pages (clamped to a minimum of 1).
func Build(title string, doc report.Document) ([]byte, error) {
	return BuildWithOptions(title, doc, Options{})
}

// BuildWithOptions is Build with explicit options.
func BuildWithOptions(title string, doc report.Document, opts Options) ([]byte, error) {
	doc = report.Normalize(doc, title, doc.RequestedPages).Sanitized()

	abstractFn := opts.Abstract
	if abstractFn == nil {
		abstractFn = page.TruncatedAbstract
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftMargin, topMargin, rightMargin)
	pdf.SetAutoPageBreak(false, bottomMargin)
	pdf.SetTitle(doc.Title, true)
	if opts.Seed != 0 {
		// Pin the metadata timestamp so a fixed seed yields identical
		// bytes.
		pdf.SetCreationDate(time.Unix(0, 0).UTC())
	}

	e := &engine{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		doc:      doc,
		plan:     page.New(doc.RequestedPages, len(doc.Sections)),
		bud:      budget.Plan(doc.RequestedPages, len(doc.Sections), report.StyleHandwritten),
		cur:      page.NewCursor(doc.RequestedPages),
		rng:      rng,
		style:    SampleStyle(rng),
		abstract: abstractFn,
		trace:    opts.Trace,
		font:     "Courier",
		fontSty:  "I",
	}
	e.pageW, e.pageH = pdf.GetPageSize()

	if opts.FontPath != "" {
		if _, err := os.Stat(opts.FontPath); err == nil {
			pdf.AddUTF8Font("handwriting", "", opts.FontPath)
			if !pdf.Err() {
				e.font, e.fontSty = "handwriting", ""
				e.tr = func(s string) string { return s }
			}
		} else {
			log.Debug().Str("font", opts.FontPath).Msg("handwriting font unavailable, using core fallback")
		}
	}

	e.run()

	if pdf.Err() {
		return nil, fmt.Errorf("handwritten layout: %w", pdf.Error())
	}
	if got, want := e.cur.Current(), e.cur.Target(); got != want {
		return nil, fmt.Errorf("handwritten layout: produced %d pages, want %d", got, want)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("handwritten layout: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

type engine struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	doc      report.Document
	plan     page.Plan
	bud      budget.Budget
	cur      *page.Cursor
	rng      *rand.Rand
	style    Style
	abstract page.AbstractFunc
	trace    func(page.Unit, int, int)

	font    string
	fontSty string

	pageW float64
	pageH float64

	// y is the flow position on the current page; wordsWritten feeds
	// the fatigue model and survives page breaks.
	y            float64
	wordsWritten int
}

func (e *engine) run() {
	for _, entry := range e.plan.Entries() {
		e.breakTo(entry.Page)
		if e.trace != nil {
			e.trace(entry.Unit, entry.Index, e.cur.Current())
		}
		switch entry.Unit {
		case page.UnitAbstract:
			e.writeAbstract()
		case page.UnitTOC:
			e.writeTOC()
		case page.UnitIntroduction:
			e.writeBodyUnit("Introduction:", e.doc.Introduction, e.bud.IntroCap, e.plan.IntroductionPage)
		case page.UnitSection:
			sec := e.doc.Sections[entry.Index]
			e.writeBodyUnit(sec.Title, sec.Content, e.bud.PerSectionCap, e.plan.SectionPages[entry.Index])
		case page.UnitFiller:
			e.writeFiller(entry.Index)
		case page.UnitConclusion:
			e.writeBodyUnit("Conclusion:", e.doc.Conclusion, e.bud.ConclusionCap, e.plan.ConclusionPage)
		case page.UnitReferences:
			e.writeReferences()
		}
	}
	// Top up with blank textured pages if the plan somehow left slack.
	for e.cur.Current() < e.cur.Target() {
		e.breakTo(e.cur.Current() + 1)
	}
}

// breakTo opens pages until the cursor reaches pg, painting the paper
// texture before any text lands on each new page.
func (e *engine) breakTo(pg int) {
	for e.cur.Current() < pg {
		e.cur.Advance()
		e.pdf.AddPage()
		texture.Paint(e.pdf, e.rng)
		e.setFont(bodySize)
		e.y = topMargin + 5
	}
}

func (e *engine) setFont(size float64) {
	e.pdf.SetFont(e.font, e.fontSty, size)
}

func (e *engine) writeAbstract() {
	e.writeHeadingCentered("Abstract", e.y+5)
	text := e.abstract(page.Flatten(e.doc.Introduction), e.doc.Title)
	e.y += 14
	e.flow(text, bodySize)
}

func (e *engine) writeTOC() {
	e.writeHeadingAt("Contents:", leftMargin+10, e.y+5)
	e.y += 16

	titles := make([]string, len(e.doc.Sections))
	for i, s := range e.doc.Sections {
		titles[i] = s.Title
	}
	e.setFont(bodySize + 2)
	for _, entry := range e.plan.TOCEntries(titles) {
		if e.y > e.pageH-bottomMargin-lineH {
			log.Debug().Str("unit", "toc").Msg("table of contents trimmed to fit its page")
			break
		}
		x := leftMargin + 15 + e.jitter(3)
		x = e.writeWord(x, e.y, entry.Label, bodySize+2)
		// Dot leader up to the right-aligned page number.
		numX := e.pageW - rightMargin - 12
		e.setFont(bodySize + 2)
		dotW := e.pdf.GetStringWidth(". ")
		for dx := x + 2; dx < numX-2 && dotW > 0; dx += dotW {
			e.writeWord(dx, e.y+e.jitter(0.4), ".", bodySize+2)
		}
		e.writeWord(numX, e.y, strconv.Itoa(entry.Page), bodySize+2)
		e.y += lineH + 2 + e.jitter(1.5)
	}
}

// writeBodyUnit renders a heading followed by flowing body text capped
// to capWords. Short content on a page of its own starts lower so it
// sits near the middle, the way a short handwritten note would.
func (e *engine) writeBodyUnit(title, text string, capWords, pg int) {
	e.writeHeadingCentered(title, e.y+5)
	e.y += 14

	text = page.Flatten(text)
	text, cut := budget.TruncateWords(text, capWords)
	if cut {
		log.Debug().Int("cap", capWords).Msg("content truncated to page budget")
	}
	if e.ownsPage(pg) && capWords > 0 && wordCount(text) < capWords/2 && e.y < e.pageH*0.4 {
		e.y = e.pageH * 0.4
	}
	e.flow(text, bodySize)
}

func (e *engine) writeFiller(i int) {
	e.writeHeadingCentered(page.FillerHeading(i), e.y+5)
	e.y += 14
	for _, para := range page.FillerParagraphs(i, e.doc.Title) {
		e.flow(para, bodySize)
		e.y += 3
	}
}

func (e *engine) writeReferences() {
	e.writeHeadingCentered("References:", e.y+5)
	e.y += 14

	for i, ref := range e.doc.References {
		if e.y > e.pageH-bottomMargin-2*lineH {
			log.Debug().Int("shown", i).Int("total", len(e.doc.References)).
				Msg("reference list trimmed to fit its page")
			break
		}
		e.flowIndented(strconv.Itoa(i+1)+". "+page.Flatten(ref), refSize, leftMargin+8, leftMargin+13)
		e.y += 3
	}

	if e.y < e.pageH-bottomMargin-20 {
		e.y += 10
		e.writeHeadingCentered("Thank you", e.y)
		e.y += lineH
	}
}

// writeHeadingCentered writes a heading word sequence centered
// horizontally at the given baseline.
func (e *engine) writeHeadingCentered(text string, y float64) {
	e.setFont(headingSize)
	width := e.pdf.GetStringWidth(e.tr(text))
	x := (e.pageW-width)/2 + e.jitter(1)
	if x < leftMargin {
		x = leftMargin
	}
	e.writeHeadingAt(text, x, y)
}

func (e *engine) writeHeadingAt(text string, x, y float64) {
	e.setFont(headingSize)
	for _, word := range splitWords(text) {
		x = e.writeWord(x, y+e.jitter(0.5), word, headingSize)
	}
	e.y = y
}

// flow writes word-wrapped body text from the current flow position,
// stopping (and discarding the tail) at the bottom margin: the page
// budget normally prevents that, so hitting it is an overflow warning,
// not an error.
func (e *engine) flow(text string, size float64) {
	e.flowIndented(text, size, leftMargin, leftMargin)
}

func (e *engine) flowIndented(text string, size float64, firstX, contX float64) {
	e.setFont(size)
	x := firstX + e.jitter(1)
	maxX := e.pageW - rightMargin
	words := splitWords(text)
	for i, word := range words {
		e.setFont(size)
		wWidth := e.pdf.GetStringWidth(e.tr(word + " "))
		if x+wWidth > maxX {
			x = contX + e.style.HandBias*e.rng.Float64() + e.jitter(1.5)
			if x < leftMargin {
				x = leftMargin
			}
			drift := e.style.BaselineVariation * (e.rng.Float64() - 0.5)
			e.y += lineH*e.style.SpacingVariation + drift
		}
		if e.y > e.pageH-bottomMargin {
			log.Debug().Int("dropped_words", len(words)-i).
				Msg("handwritten block trimmed at page bottom")
			return
		}
		x = e.writeWord(x, e.y, word, size)
		e.wordsWritten++
	}
	e.y += lineH * e.style.SpacingVariation
}

func (e *engine) jitter(span float64) float64 {
	return (e.rng.Float64() - 0.5) * span
}

// ownsPage reports whether exactly one unit starts on the given page.
func (e *engine) ownsPage(pg int) bool {
	count := 0
	for _, entry := range e.plan.Entries() {
		if entry.Page == pg {
			count++
		}
	}
	return count == 1
}

func wordCount(s string) int { return len(splitWords(s)) }
