// Package wldtest builds world files and definition catalogs for tests.
package wldtest

import (
	"encoding/binary"
	"math"
)

// Writer appends little-endian values to a byte buffer.
type Writer struct {
	buf []byte
}

func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) U8(v uint8) *Writer {
	w.buf = append(w.buf, v)
	return w
}

func (w *Writer) Bool(v bool) *Writer {
	if v {
		return w.U8(1)
	}
	return w.U8(0)
}

func (w *Writer) U16(v uint16) *Writer {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return w
}

func (w *Writer) U32(v uint32) *Writer {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return w
}

func (w *Writer) U64(v uint64) *Writer {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return w
}

func (w *Writer) I16(v int16) *Writer { return w.U16(uint16(v)) }
func (w *Writer) I32(v int32) *Writer { return w.U32(uint32(v)) }

func (w *Writer) F32(v float32) *Writer { return w.U32(math.Float32bits(v)) }
func (w *Writer) F64(v float64) *Writer { return w.U64(math.Float64bits(v)) }

// String writes a 7-bit varint length and the raw bytes.
func (w *Writer) String(s string) *Writer {
	n := uint32(len(s))
	for n >= 0x80 {
		w.buf = append(w.buf, byte(n)|0x80)
		n >>= 7
	}
	w.buf = append(w.buf, byte(n))
	w.buf = append(w.buf, s...)
	return w
}

func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

// PutU32At overwrites four bytes at offset.
func (w *Writer) PutU32At(offset int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[offset:], v)
}

// EncodeExtra packs booleans eight per byte, bit 0 first.
func EncodeExtra(extra []bool) []byte {
	out := make([]byte, (len(extra)+7)/8)
	for i, v := range extra {
		if v {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}
