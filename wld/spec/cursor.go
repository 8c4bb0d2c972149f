package spec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Cursor is a sequential little-endian reader over an in-memory buffer.
//
// Errors are sticky: the first failed read is remembered, the position stops
// advancing and every later read returns a zero value. Callers check Err at
// phase boundaries instead of after every read.
type Cursor struct {
	data []byte
	pos  int
	err  error
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Err() error { return c.err }
func (c *Cursor) Pos() int   { return c.pos }
func (c *Cursor) Len() int   { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

func (c *Cursor) fail(n int) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: %w: need %d bytes at offset %d, have %d",
			ErrStream, io.ErrUnexpectedEOF, n, c.pos, c.Remaining())
	}
}

func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > c.Remaining() {
		c.fail(n)
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *Cursor) U8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *Cursor) U16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *Cursor) U32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *Cursor) U64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (c *Cursor) Bool() bool { return c.U8() != 0 }

func (c *Cursor) I16() int16 { return int16(c.U16()) }
func (c *Cursor) I32() int32 { return int32(c.U32()) }

func (c *Cursor) F32() float32 { return math.Float32frombits(c.U32()) }
func (c *Cursor) F64() float64 { return math.Float64frombits(c.U64()) }

// Uvarint7 reads a length in 7-bit groups, least significant group first,
// continuation flagged by the high bit.
func (c *Cursor) Uvarint7() uint32 {
	var value uint32
	for shift := 0; ; shift += 7 {
		b := c.U8()
		if c.err != nil {
			return 0
		}
		if shift >= 35 {
			c.err = fmt.Errorf("%w: string length overflows at offset %d", ErrStream, c.pos)
			return 0
		}
		value |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return value
		}
	}
}

// String reads a 7-bit varint length followed by that many UTF-8 bytes.
func (c *Cursor) String() string {
	n := c.Uvarint7()
	if c.err != nil {
		return ""
	}
	if uint64(n) > uint64(c.Remaining()) {
		c.fail(int(min(n, math.MaxInt32)))
		return ""
	}
	return string(c.take(int(n)))
}

// Bytes returns the next n bytes. The slice aliases the underlying buffer.
func (c *Cursor) Bytes(n int) []byte {
	return c.take(n)
}

func (c *Cursor) Skip(n int) {
	c.take(n)
}

func (c *Cursor) Seek(offset int) {
	if c.err != nil {
		return
	}
	if offset < 0 || offset > len(c.data) {
		c.err = fmt.Errorf("%w: %w: seek to %d outside %d bytes",
			ErrStream, io.ErrUnexpectedEOF, offset, len(c.data))
		return
	}
	c.pos = offset
}
