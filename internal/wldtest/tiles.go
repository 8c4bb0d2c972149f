package wldtest

import (
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// AppendTile encodes t as a tile record followed by run length rle.
func AppendTile(w *Writer, t tile.Tile, extra spec.Extra, rle int) {
	var f1, f2, f3 uint8

	if t.Active() {
		f1 |= 0x02
		if t.Type > 0xff {
			f1 |= 0x20
		}
		if t.Color != 0 {
			f3 |= 0x08
		}
	}
	if t.Wall != 0 {
		f1 |= 0x04
		if t.WallColor != 0 {
			f3 |= 0x10
		}
	}
	switch {
	case t.Lava():
		f1 |= 0x10
	case t.Honey():
		f1 |= 0x18
	case t.Liquid != 0:
		f1 |= 0x08
	}
	if t.RedWire() {
		f2 |= 0x02
	}
	if t.GreenWire() {
		f2 |= 0x04
	}
	if t.BlueWire() {
		f2 |= 0x08
	}
	switch {
	case t.Half():
		f2 |= 1 << 4
	case t.Slope > 0:
		f2 |= (t.Slope + 1) << 4
	}
	if t.Actuator() {
		f3 |= 0x02
	}
	if t.Inactive() {
		f3 |= 0x04
	}
	switch {
	case rle > 0xff:
		f1 |= 0x80
	case rle > 0:
		f1 |= 0x40
	}

	if f3 != 0 {
		f2 |= 0x01
	}
	if f2 != 0 {
		f1 |= 0x01
	}

	w.U8(f1)
	if f1&0x01 != 0 {
		w.U8(f2)
		if f2&0x01 != 0 {
			w.U8(f3)
		}
	}
	if t.Active() {
		w.U8(uint8(t.Type))
		if t.Type > 0xff {
			w.U8(uint8(t.Type >> 8))
		}
		if extra.Has(t.Type) {
			w.I16(t.UV.U)
			w.I16(t.UV.V)
		}
		if t.Color != 0 {
			w.U8(t.Color)
		}
	}
	if t.Wall != 0 {
		w.U8(t.Wall)
		if t.WallColor != 0 {
			w.U8(t.WallColor)
		}
	}
	if f1&0x18 != 0 {
		w.U8(t.Liquid)
	}
	switch {
	case rle > 0xff:
		w.U16(uint16(rle))
	case rle > 0:
		w.U8(uint8(rle))
	}
}

// AppendGrid encodes g column by column, merging equal vertical neighbours
// into runs.
func AppendGrid(w *Writer, g *tile.Grid, extra spec.Extra) {
	for x := range g.Width {
		for y := 0; y < g.Height; {
			t := *g.At(x, y)
			rle := 0
			for y+rle+1 < g.Height && *g.At(x, y+rle+1) == t && rle < 0xffff {
				rle++
			}
			AppendTile(w, t, extra, rle)
			y += rle + 1
		}
	}
}

// Active returns an active tile of the given type with unresolved coordinates.
func Active(typ uint16) tile.Tile {
	return tile.Tile{
		Type:   typ,
		Flags:  tile.FlagActive,
		UV:     tile.UnresolvedUV,
		WallUV: tile.UnresolvedUV,
	}
}

// Empty returns a tile with nothing in it.
func Empty() tile.Tile {
	return tile.Tile{UV: tile.UnresolvedUV, WallUV: tile.UnresolvedUV}
}

// WallOnly returns an inactive tile with the given wall.
func WallOnly(wall uint8) tile.Tile {
	t := Empty()
	t.Wall = wall
	return t
}
