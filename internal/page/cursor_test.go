package page

import "testing"

func TestCursor(t *testing.T) {
	c := NewCursor(3)
	if c.Current() != 0 || c.Target() != 3 || c.Remaining() != 3 {
		t.Fatalf("fresh cursor: current=%d target=%d remaining=%d", c.Current(), c.Target(), c.Remaining())
	}
	if got := c.Advance(); got != 1 {
		t.Fatalf("first Advance = %d, want 1", got)
	}
	c.Advance()
	c.Advance()
	if c.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", c.Remaining())
	}
	// Advancing past the target never reports negative remaining.
	c.Advance()
	if c.Remaining() != 0 {
		t.Fatalf("remaining past target = %d, want 0", c.Remaining())
	}
	if c.Current() != 4 {
		t.Fatalf("current = %d, want 4", c.Current())
	}
}

func TestNewCursor_ClampsTarget(t *testing.T) {
	if got := NewCursor(0).Target(); got != 1 {
		t.Fatalf("target = %d, want 1", got)
	}
	if got := NewCursor(-5).Target(); got != 1 {
		t.Fatalf("target = %d, want 1", got)
	}
}
