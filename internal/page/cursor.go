package page

// Cursor tracks layout progress against the target page count. It is
// owned by the document assembler and is the only place page breaks are
// counted; the rendering primitive itself carries no page-count state.
type Cursor struct {
	current int
	target  int
}

// NewCursor returns a cursor for a build targeting the given page count
// (clamped to at least 1). No page exists yet; the first Advance call
// opens page 1.
func NewCursor(target int) *Cursor {
	if target < 1 {
		target = 1
	}
	return &Cursor{target: target}
}

// Advance records exactly one page break and returns the new 1-based
// page index. Callers pair every Advance with exactly one AddPage on the
// underlying document.
func (c *Cursor) Advance() int {
	c.current++
	return c.current
}

// Current returns the 1-based index of the page being written, or 0
// before the first Advance.
func (c *Cursor) Current() int { return c.current }

// Target returns the page count the build must finish on.
func (c *Cursor) Target() int { return c.target }

// Remaining returns how many pages are still owed to reach the target.
func (c *Cursor) Remaining() int {
	if c.current >= c.target {
		return 0
	}
	return c.target - c.current
}
