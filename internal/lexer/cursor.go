package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"syster/internal/source"
)

// Cursor is a byte position inside a single file.
type Cursor struct {
	file  *source.File
	off   uint32
	limit uint32
}

// NewCursor creates a cursor at the start of the file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content length overflow: %w", err))
	}
	return Cursor{file: f, off: 0, limit: limit}
}

// EOF reports whether the cursor has reached the end of the file.
func (c *Cursor) EOF() bool { return c.off >= c.limit }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.off]
}

// PeekAt returns the byte n positions ahead, or 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.file.Content[c.off+n]
}

// Bump advances by one byte and returns the byte read.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

// Eat consumes the next byte iff it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.file.Content[c.off] == b {
		c.off++
		return true
	}
	return false
}

// Mark remembers a cursor position so the caller can build a Span later.
type Mark uint32

// Mark captures the current position.
func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom builds the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}
