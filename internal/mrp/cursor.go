package mrp

import "encoding/binary"

// cursor is a bounded read window over the MRPDU. base is the payload
// offset of buf[0] and is only used for error reporting.
type cursor struct {
	buf  []byte
	pos  int
	base int
}

func newCursor(buf []byte, base int) *cursor {
	return &cursor{buf: buf, base: base}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) offset() int {
	return c.base + c.pos
}

func (c *cursor) peekUint16() (uint16, bool) {
	if c.remaining() < 2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(c.buf[c.pos:]), true
}

// rest returns the unread bytes without advancing.
func (c *cursor) rest() []byte {
	return c.buf[c.pos:]
}

func (c *cursor) take(n int) ([]byte, bool) {
	if n < 0 || c.remaining() < n {
		return nil, false
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, true
}

// sub carves the next n bytes into a child window and advances past them.
// n must not exceed remaining().
func (c *cursor) sub(n int) *cursor {
	child := newCursor(c.buf[c.pos:c.pos+n], c.offset())
	c.pos += n
	return child
}
