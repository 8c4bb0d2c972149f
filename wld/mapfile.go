package wld

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// Player maps up to this version store column-major records without a
// signature or tile catalog.
const legacyMapVersion = 91

// PlayerMapPath returns the map file a player keeps for the world:
// the player file path without extension, joined with "<worldID>.map".
func PlayerMapPath(playerFile string, worldID int) string {
	dir := strings.TrimSuffix(playerFile, filepath.Ext(playerFile))
	return filepath.Join(dir, strconv.Itoa(worldID)+".map")
}

// ReadPlayerMap locates and applies the player's map for w.
func ReadPlayerMap(w *World, playerFile string) error {
	data, err := os.ReadFile(PlayerMapPath(playerFile, w.Header.Int("worldID")))
	if err != nil {
		return err
	}
	return ApplyPlayerMap(w, data)
}

// ApplyPlayerMap sets the seen flag of every tile of w from a player map.
// On error the flags may be partially updated.
func ApplyPlayerMap(w *World, data []byte) error {
	c := spec.NewCursor(data)
	version := int(c.U32())
	if err := c.Err(); err != nil {
		return err
	}
	if version > spec.HighestVersion {
		return fmt.Errorf("%w: %w: player map version %d", spec.ErrFormat, spec.ErrInvalidVersion, version)
	}
	if version <= legacyMapVersion {
		return applyLegacyMap(c, version, w.Tiles)
	}
	return applyMap(c, version, w.Tiles)
}

func readMapSize(c *spec.Cursor, g *tile.Grid) error {
	_ = c.String() // world name
	c.I32()        // world id
	height, width := int(c.I32()), int(c.I32())
	if err := c.Err(); err != nil {
		return err
	}
	if width != g.Width || height != g.Height {
		return fmt.Errorf("%w: player map is %dx%d, world is %dx%d",
			spec.ErrFormat, width, height, g.Width, g.Height)
	}
	return nil
}

func applyLegacyMap(c *spec.Cursor, version int, g *tile.Grid) error {
	if err := readMapSize(c, g); err != nil {
		return err
	}
	for x := range g.Width {
		for y := 0; y < g.Height; y++ {
			seen := c.Bool()
			if seen {
				if version <= 77 {
					c.U8()
				} else {
					c.U16()
				}
				c.Skip(2) // light, misc
				if version >= 50 {
					c.U8()
				}
			}
			g.At(x, y).SetSeen(seen)
			for rle := c.U16(); rle > 0 && y+1 < g.Height; rle-- {
				y++
				g.At(x, y).SetSeen(seen)
			}
			if err := c.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyMap(c *spec.Cursor, version int, g *tile.Grid) error {
	if version >= spec.MagicVersion {
		if _, err := spec.ReadSignature(c, spec.KindPlayerMap); err != nil {
			return err
		}
	}
	if err := readMapSize(c, g); err != nil {
		return err
	}

	numTiles := int(c.U16())
	numWalls := int(c.U16())
	c.Skip(8) // liquid, sky, dirt and rock option counts
	tiles := spec.ReadExtra(c, numTiles)
	walls := spec.ReadExtra(c, numWalls)
	for _, present := range tiles {
		if present {
			c.U8()
		}
	}
	for _, present := range walls {
		if present {
			c.U8()
		}
	}
	if err := c.Err(); err != nil {
		return err
	}

	if version >= 93 {
		body, err := spec.InflateRaw(c.Bytes(c.Remaining()))
		if err != nil {
			return err
		}
		c = spec.NewCursor(body)
	}

	total := len(g.Tiles)
	for offset := 0; offset < total; {
		flags := c.U8()
		if flags&0x01 != 0 {
			c.U8() // color
		}
		kind := (flags >> 1) & 7
		if kind == 1 || kind == 2 || kind == 7 {
			if flags&0x10 != 0 {
				c.U16()
			} else {
				c.U8()
			}
		}
		// A fully lit run stores no per-tile light.
		lit := true
		if flags&0x20 != 0 {
			lit = c.U8() == 0xff
		}
		rle := 0
		switch (flags >> 6) & 3 {
		case 1:
			rle = int(c.U8())
		case 2:
			rle = int(c.U16())
		}

		seen := kind != 0
		g.Tiles[offset].SetSeen(seen)
		offset++
		for ; rle > 0; rle-- {
			if seen && !lit {
				c.U8()
			}
			if offset < total {
				g.Tiles[offset].SetSeen(seen)
			}
			offset++
		}
		if err := c.Err(); err != nil {
			return err
		}
	}
	return nil
}
