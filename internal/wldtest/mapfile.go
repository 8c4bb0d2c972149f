package wldtest

import (
	"bytes"

	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/klauspost/compress/flate"
)

// PlayerMap describes a player map file to be encoded by Build.
type PlayerMap struct {
	Version       int
	WorldID       int32
	Width, Height int
	// Seen is row-major, Width*Height long.
	Seen []bool
	// Dark gives seen runs per-tile light bytes.
	Dark bool
}

func (m *PlayerMap) seen(x, y int) bool {
	return m.Seen[y*m.Width+x]
}

// Build encodes the map in the legacy or current layout by version.
func (m *PlayerMap) Build() []byte {
	w := &Writer{}
	w.U32(uint32(m.Version))
	if m.Version <= 91 {
		m.buildLegacy(w)
		return w.Bytes()
	}

	if m.Version >= spec.MagicVersion {
		w.Raw([]byte(spec.Magic)).U8(spec.KindPlayerMap).U32(0).U64(0)
	}
	w.String("test").I32(m.WorldID).I32(int32(m.Height)).I32(int32(m.Width))

	tiles := []bool{false, true, false, true}
	walls := []bool{true}
	w.U16(uint16(len(tiles))).U16(uint16(len(walls)))
	w.U16(1).U16(1).U16(1).U16(1)
	w.Raw(EncodeExtra(tiles)).Raw(EncodeExtra(walls))
	w.U8(1).U8(1) // option counts of the present tiles
	w.U8(1)       // and of the present wall

	body := &Writer{}
	for i := 0; i < len(m.Seen); {
		run := 1
		for i+run < len(m.Seen) && m.Seen[i+run] == m.Seen[i] && run <= 0xffff {
			run++
		}
		rle := run - 1
		seen := m.Seen[i]

		var flags uint8
		if seen {
			flags |= 1 << 1
			if m.Dark {
				flags |= 0x20
			}
		}
		switch {
		case rle > 0xff:
			flags |= 2 << 6
		case rle > 0:
			flags |= 1 << 6
		}
		body.U8(flags)
		if seen {
			body.U8(3) // tile id
			if m.Dark {
				body.U8(0x40)
			}
		}
		switch {
		case rle > 0xff:
			body.U16(uint16(rle))
		case rle > 0:
			body.U8(uint8(rle))
		}
		if seen && m.Dark {
			for range rle {
				body.U8(0x40)
			}
		}
		i += run
	}

	if m.Version < 93 {
		return w.Raw(body.Bytes()).Bytes()
	}
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		panic(err)
	}
	if _, err := fw.Write(body.Bytes()); err != nil {
		panic(err)
	}
	if err := fw.Close(); err != nil {
		panic(err)
	}
	return w.Raw(buf.Bytes()).Bytes()
}

func (m *PlayerMap) buildLegacy(w *Writer) {
	w.String("test").I32(m.WorldID).I32(int32(m.Height)).I32(int32(m.Width))
	for x := range m.Width {
		for y := 0; y < m.Height; {
			seen := m.seen(x, y)
			run := 1
			for y+run < m.Height && m.seen(x, y+run) == seen {
				run++
			}
			w.Bool(seen)
			if seen {
				if m.Version <= 77 {
					w.U8(1)
				} else {
					w.U16(1)
				}
				w.U8(0xff).U8(0)
				if m.Version >= 50 {
					w.U8(0)
				}
			}
			w.U16(uint16(run - 1))
			y += run
		}
	}
}
