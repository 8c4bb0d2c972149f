package spec

import "github.com/eak1mov/go-libworld/tile"

// tileFlags is the flags1 -> flags2 -> flags3 extension chain of a tile
// record. An absent byte reads as zero.
type tileFlags struct {
	f1, f2, f3 uint8
}

const (
	f1HasFlags2  = 0x01
	f1Active     = 0x02
	f1Wall       = 0x04
	f1LiquidMask = 0x18
	f1Water      = 0x08
	f1Lava       = 0x10
	f1Honey      = 0x18
	f1WideType   = 0x20
	f1RLEShift   = 6

	f2HasFlags3  = 0x01
	f2RedWire    = 0x02
	f2GreenWire  = 0x04
	f2BlueWire   = 0x08
	f2ShapeShift = 4
	f2ShapeMask  = 0x07

	f3Actuator  = 0x02
	f3Inactive  = 0x04
	f3Color     = 0x08
	f3WallColor = 0x10
)

func readTileFlags(c *Cursor) tileFlags {
	var f tileFlags
	f.f1 = c.U8()
	if f.f1&f1HasFlags2 != 0 {
		f.f2 = c.U8()
		if f.f2&f2HasFlags3 != 0 {
			f.f3 = c.U8()
		}
	}
	return f
}

// DecodeTile reads one tile record into t and returns its run length: the
// number of following rows that repeat this record.
func DecodeTile(c *Cursor, extra Extra, t *tile.Tile) int {
	f := readTileFlags(c)

	*t = tile.Tile{UV: tile.UnresolvedUV, WallUV: tile.UnresolvedUV}

	if f.f1&f1Active != 0 {
		t.Flags |= tile.FlagActive
		t.Type = uint16(c.U8())
		if f.f1&f1WideType != 0 {
			t.Type |= uint16(c.U8()) << 8
		}
		if extra.Has(t.Type) {
			t.UV.U = c.I16()
			t.UV.V = c.I16()
		}
		if f.f3&f3Color != 0 {
			t.Color = c.U8()
		}
	}

	if f.f1&f1Wall != 0 {
		t.Wall = c.U8()
		if f.f3&f3WallColor != 0 {
			t.WallColor = c.U8()
		}
	}

	if liquid := f.f1 & f1LiquidMask; liquid != 0 {
		t.Liquid = c.U8()
		switch liquid {
		case f1Lava:
			t.Flags |= tile.FlagLava
		case f1Honey:
			t.Flags |= tile.FlagHoney
		}
	}

	if f.f2&f2RedWire != 0 {
		t.Flags |= tile.FlagRedWire
	}
	if f.f2&f2GreenWire != 0 {
		t.Flags |= tile.FlagGreenWire
	}
	if f.f2&f2BlueWire != 0 {
		t.Flags |= tile.FlagBlueWire
	}

	// shape 1 is a half block, 2..5 are slopes 1..4
	switch shape := (f.f2 >> f2ShapeShift) & f2ShapeMask; {
	case shape == 1:
		t.Flags |= tile.FlagHalf
	case shape > 1:
		t.Slope = shape - 1
	}

	if f.f3&f3Actuator != 0 {
		t.Flags |= tile.FlagActuator
	}
	if f.f3&f3Inactive != 0 {
		t.Flags |= tile.FlagInactive
	}

	switch f.f1 >> f1RLEShift {
	case 1:
		return int(c.U8())
	case 2:
		return int(c.U16())
	}
	return 0
}

// DecodeTiles fills g column by column, duplicating each record downwards for
// its run length. progress, if set, is called after every column.
func DecodeTiles(c *Cursor, extra Extra, g *tile.Grid, progress func(column int)) error {
	for x := range g.Width {
		for y := 0; y < g.Height; {
			t := g.At(x, y)
			rle := DecodeTile(c, extra, t)
			if err := c.Err(); err != nil {
				return err
			}
			for r := 1; r <= rle && y+r < g.Height; r++ {
				*g.At(x, y+r) = *t
			}
			y += rle + 1
		}
		if progress != nil {
			progress(x)
		}
	}
	return c.Err()
}
