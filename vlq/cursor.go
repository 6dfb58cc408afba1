package vlq

// Cursor is a forward-only reader over a mapping string.
type Cursor struct {
	s   string
	pos int
}

// NewCursor creates a Cursor positioned at the start of s.
func NewCursor(s string) *Cursor {
	return &Cursor{s: s}
}

// Peek returns the byte under the cursor without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.pos >= len(c.s) {
		return 0, false
	}

	return c.s[c.pos], true
}

// Next consumes and returns the byte under the cursor.
func (c *Cursor) Next() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.pos++
	}

	return b, ok
}

// HasNext reports whether unread input remains.
func (c *Cursor) HasNext() bool {
	return c.pos < len(c.s)
}

// Pos returns the byte offset of the cursor.
func (c *Cursor) Pos() int {
	return c.pos
}
