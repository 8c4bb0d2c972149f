package spec

import (
	"math/bits"

	"github.com/eak1mov/go-libworld/tile"
	"github.com/google/hilbert"
)

// CodeOrder returns the side of the smallest power-of-two square covering a
// width×height grid.
func CodeOrder(width, height int) int {
	side := max(width, height, 1)
	return 1 << bits.Len(uint(side-1))
}

// EncodeTileCode maps a position to its index along the hilbert curve of the
// given order, so that nearby tiles get nearby codes.
func EncodeTileCode(pos tile.Pos, order int) uint64 {
	h, err := hilbert.NewHilbert(order)
	if err != nil {
		panic(err)
	}
	code, err := h.MapInverse(pos.X, pos.Y)
	if err != nil {
		panic(err)
	}
	return uint64(code)
}

func DecodeTileCode(code uint64, order int) tile.Pos {
	h, err := hilbert.NewHilbert(order)
	if err != nil {
		panic(err)
	}
	x, y, err := h.Map(int(code))
	if err != nil {
		panic(err)
	}
	return tile.Pos{X: x, Y: y}
}

// TileCoder caches the curve for repeated encoding.
type TileCoder struct {
	h *hilbert.Hilbert
}

func NewTileCoder(width, height int) *TileCoder {
	h, err := hilbert.NewHilbert(CodeOrder(width, height))
	if err != nil {
		panic(err)
	}
	return &TileCoder{h: h}
}

func (c *TileCoder) Encode(pos tile.Pos) uint64 {
	code, err := c.h.MapInverse(pos.X, pos.Y)
	if err != nil {
		panic(err)
	}
	return uint64(code)
}

func (c *TileCoder) Decode(code uint64) tile.Pos {
	x, y, err := c.h.Map(int(code))
	if err != nil {
		panic(err)
	}
	return tile.Pos{X: x, Y: y}
}
