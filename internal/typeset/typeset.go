// Package typeset renders a report document as a typed, academic-style
// PDF: Abstract, Table of Contents with predicted page numbers,
// Introduction, body sections, optional filler pages, Conclusion and
// References, always landing on exactly the requested page count.
package typeset

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goreport/internal/budget"
	"github.com/hyperifyio/goreport/internal/page"
	"github.com/hyperifyio/goreport/internal/report"
)

const (
	marginMM  = 10
	ruleInset = 30

	headingSizeLarge = 20
	headingSizeSmall = 18
	bodySize         = 12
	bodyLineH        = 7
	tocLineH         = 8

	// avgCharsPerLine feeds the line-count estimate used for vertical
	// centering and overflow trimming at the body font size.
	avgCharsPerLine = 90
)

// Options tunes a typed build. The zero value is ready to use.
type Options struct {
	// Abstract overrides the abstract derivation strategy. Nil selects
	// page.TruncatedAbstract.
	Abstract page.AbstractFunc

	// Trace, when set, observes each unit as it is emitted: the unit,
	// its index (-1 for singletons) and the page it starts on.
	Trace func(unit page.Unit, index, pg int)
}

// Build renders doc as a typed PDF and returns the document bytes. The
// produced document always has exactly doc.RequestedPages pages
// (clamped to a minimum of 1). title is the requested topic; it backs
// every templated default when payload fields are missing.
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

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(false, marginMM)
	pdf.SetTitle(doc.Title, true)

	e := &engine{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		doc:      doc,
		plan:     page.New(doc.RequestedPages, len(doc.Sections)),
		bud:      budget.Plan(doc.RequestedPages, len(doc.Sections), report.StyleTyped),
		cur:      page.NewCursor(doc.RequestedPages),
		abstract: abstractFn,
		trace:    opts.Trace,
	}
	e.pageW, e.pageH = pdf.GetPageSize()

	e.run()

	if pdf.Err() {
		return nil, fmt.Errorf("typed layout: %w", pdf.Error())
	}
	if got, want := e.cur.Current(), e.cur.Target(); got != want {
		return nil, fmt.Errorf("typed layout: produced %d pages, want %d", got, want)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("typed layout: serialize: %w", err)
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
	abstract page.AbstractFunc
	trace    func(page.Unit, int, int)

	pageW float64
	pageH float64
}

// run walks the plan entries in layout order. breakTo opens pages as the
// plan demands; units sharing a page simply continue the flow.
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
			e.writeIntroduction()
		case page.UnitSection:
			e.writeSection(entry.Index)
		case page.UnitFiller:
			e.writeFiller(entry.Index)
		case page.UnitConclusion:
			e.writeConclusion()
		case page.UnitReferences:
			e.writeReferences()
		}
	}
	for e.cur.Current() < e.cur.Target() {
		e.breakTo(e.cur.Current() + 1)
	}
}

func (e *engine) breakTo(pg int) {
	for e.cur.Current() < pg {
		e.cur.Advance()
		e.pdf.AddPage()
	}
}

func (e *engine) writeAbstract() {
	e.heading("Abstract", headingSizeLarge)
	text := e.abstract(page.Flatten(e.doc.Introduction), e.doc.Title)
	e.bodyBlock(text, 0, e.ownsPage(e.plan.AbstractPage))
}

func (e *engine) writeTOC() {
	e.heading("Table of Contents", headingSizeLarge)
	titles := make([]string, len(e.doc.Sections))
	for i, s := range e.doc.Sections {
		titles[i] = s.Title
	}
	e.pdf.SetFont("Times", "", bodySize)
	usable := e.pageW - 2*marginMM
	numW := e.pdf.GetStringWidth("999") + 2
	labelW := usable - numW
	dotW := e.pdf.GetStringWidth(".")
	for _, entry := range e.plan.TOCEntries(titles) {
		label := e.tr(entry.Label)
		dots := 0
		if dotW > 0 {
			dots = int((labelW - e.pdf.GetStringWidth(label) - 1) / dotW)
		}
		if dots < 0 {
			dots = 0
		}
		if e.pageFull(tocLineH) {
			log.Debug().Str("unit", "toc").Msg("table of contents trimmed to fit its page")
			break
		}
		e.pdf.CellFormat(labelW, tocLineH, label+strings.Repeat(".", dots), "", 0, "L", false, 0, "")
		e.pdf.CellFormat(numW, tocLineH, strconv.Itoa(entry.Page), "", 1, "R", false, 0, "")
	}
}

func (e *engine) writeIntroduction() {
	e.heading("Introduction", headingSizeSmall)
	e.bodyBlock(e.doc.Introduction, e.bud.IntroCap, e.ownsPage(e.plan.IntroductionPage))
}

func (e *engine) writeSection(i int) {
	sec := e.doc.Sections[i]
	e.heading(sec.Title, headingSizeSmall)
	e.bodyBlock(sec.Content, e.bud.PerSectionCap, e.ownsPage(e.plan.SectionPages[i]))
}

func (e *engine) writeFiller(i int) {
	e.heading(page.FillerHeading(i), headingSizeSmall)
	e.pdf.SetFont("Times", "", bodySize)
	for _, para := range page.FillerParagraphs(i, e.doc.Title) {
		if e.pageFull(bodyLineH) {
			break
		}
		e.pdf.MultiCell(0, bodyLineH, e.tr(para), "", "L", false)
		e.pdf.Ln(3)
	}
}

func (e *engine) writeConclusion() {
	e.heading("Conclusion", headingSizeSmall)
	e.bodyBlock(e.doc.Conclusion, e.bud.ConclusionCap, e.ownsPage(e.plan.ConclusionPage))
}

func (e *engine) writeReferences() {
	e.heading("References", headingSizeSmall)
	e.pdf.SetFont("Times", "", bodySize)
	for i, ref := range e.doc.References {
		if e.pageFull(2 * bodyLineH) {
			log.Debug().Int("shown", i).Int("total", len(e.doc.References)).
				Msg("reference list trimmed to fit its page")
			break
		}
		e.referenceItem(i+1, ref)
	}
	if !e.pageFull(3 * bodyLineH) {
		e.pdf.Ln(6)
		e.pdf.SetFont("Times", "I", 14)
		e.pdf.CellFormat(0, 10, "Thank you", "", 1, "C", false, 0, "")
	}
}

// referenceItem renders one numbered citation as a hanging-indent block:
// the first line flush against the number column, continuation lines
// indented a step further.
func (e *engine) referenceItem(n int, ref string) {
	const numColW = 8.0
	const indent = 5.0
	textX := float64(marginMM) + numColW
	textW := e.pageW - marginMM - textX

	e.pdf.SetX(marginMM)
	e.pdf.CellFormat(numColW, bodyLineH, strconv.Itoa(n)+".", "", 0, "L", false, 0, "")

	lines := e.wrapWidth(page.Flatten(ref), textW, textW-indent)
	for j, line := range lines {
		if e.pageFull(bodyLineH) {
			break
		}
		x := textX
		if j > 0 {
			x += indent
		}
		e.pdf.SetX(x)
		e.pdf.CellFormat(textW, bodyLineH, e.tr(line), "", 1, "L", false, 0, "")
	}
	e.pdf.Ln(2)
}

// wrapWidth greedily wraps text so the first line fits firstW and every
// later line fits restW, measured at the current font.
func (e *engine) wrapWidth(text string, firstW, restW float64) []string {
	var lines []string
	var line string
	limit := firstW
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if e.pdf.GetStringWidth(e.tr(candidate)) < limit {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = word
		limit = restW
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// heading renders a centered bold heading with the decorative rule the
// typed style uses under every major unit. Over-wide headings wrap onto
// multiple centered lines.
func (e *engine) heading(text string, size float64) {
	e.pdf.SetFont("Times", "B", size)
	lineH := size * 0.5
	safe := e.pageW - 2*marginMM
	for _, line := range e.wrapWidth(text, safe, safe) {
		if e.pageFull(lineH) {
			break
		}
		e.pdf.CellFormat(0, lineH, e.tr(line), "", 1, "C", false, 0, "")
	}
	e.pdf.Ln(3)
	y := e.pdf.GetY() - 1
	e.pdf.Line(ruleInset, y, e.pageW-ruleInset, y)
	e.pdf.Ln(6)
}

// bodyBlock writes a word-wrapped justified paragraph capped to the
// given character budget. Short content on a page of its own is centered
// vertically. capChars <= 0 disables the budget cap; the block is still
// trimmed to the space remaining on the page.
func (e *engine) bodyBlock(text string, capChars int, ownPage bool) {
	text = page.Flatten(text)
	text, cut := budget.TruncateChars(text, capChars)
	if cut {
		log.Debug().Int("cap", capChars).Msg("content truncated to page budget")
	}

	if ownPage && capChars > 0 && len(text) < capChars/2 {
		e.centerVertically(text)
	}
	text = e.trimToRemaining(text)

	e.pdf.SetFont("Times", "", bodySize)
	e.pdf.MultiCell(0, bodyLineH, e.tr(text), "", "J", false)
	e.pdf.Ln(2)
}

// centerVertically shifts the start of a short block down by half the
// slack so it sits in the middle of the page.
func (e *engine) centerVertically(text string) {
	estLines := float64(len(text))/avgCharsPerLine + 1
	textH := estLines * bodyLineH
	avail := e.pageH - e.pdf.GetY() - marginMM
	if textH < avail*0.8 {
		e.pdf.SetY(e.pdf.GetY() + (avail-textH)/2)
	}
}

// trimToRemaining bounds text to the estimated capacity left on the
// current page so a block never spills past the page break the plan did
// not schedule.
func (e *engine) trimToRemaining(text string) string {
	remaining := e.pageH - marginMM - e.pdf.GetY()
	maxLines := int(remaining / bodyLineH)
	if maxLines < 1 {
		return ""
	}
	trimmed, cut := budget.TruncateChars(text, maxLines*avgCharsPerLine)
	if cut {
		log.Debug().Msg("content trimmed to remaining page space")
	}
	return trimmed
}

func (e *engine) pageFull(need float64) bool {
	return e.pdf.GetY()+need > e.pageH-marginMM
}

// ownsPage reports whether exactly one unit is laid out on the given
// page, which is the precondition for vertical centering.
func (e *engine) ownsPage(pg int) bool {
	count := 0
	for _, entry := range e.plan.Entries() {
		if entry.Page == pg {
			count++
		}
	}
	return count == 1
}
