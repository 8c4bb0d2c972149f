package autotile

import (
	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/tile"
)

func isCactus(t *tile.Tile) bool {
	return t != nil && t.IsType(typeCactus)
}

// cactusBase walks down the plant from x, y and returns the column it is
// rooted in, following arms that bend sideways into the trunk.
func cactusBase(g tile.Reader, x, y int) int {
	bx, by := x, y
	for isCactus(g.At(bx, by)) {
		by++
		if isCactus(g.At(bx, by)) {
			continue
		}
		if bx >= x && isCactus(g.At(bx-1, by)) && isCactus(g.At(bx-1, by-1)) {
			bx--
		} else if bx <= x && isCactus(g.At(bx+1, by)) && isCactus(g.At(bx+1, by-1)) {
			bx++
		}
	}
	return bx
}

// ResolveCactus computes the atlas cell of a cactus segment at x, y.
func (e *Engine) ResolveCactus(g tile.Reader, x, y int) tile.UV {
	if !isCactus(g.At(x, y)) {
		return tile.UnresolvedUV
	}

	mask := 0
	set := func(bit int, ok bool) {
		if ok {
			mask |= bit
		}
	}
	set(cactusRight, isCactus(g.At(x+1, y)))
	set(cactusLeft, isCactus(g.At(x-1, y)))
	set(cactusFarLeft, isCactus(g.At(x-2, y)))
	below := g.At(x, y+1)
	set(cactusBottom, isCactus(below))
	set(cactusOnSolid, below != nil && below.Active() && e.reg.Tile(below.Type).Has(defs.Solid))
	set(cactusBottomRight, isCactus(g.At(x+1, y+1)))
	set(cactusBottomLeft, isCactus(g.At(x-1, y+1)))
	above := g.At(x, y-1)
	set(cactusTop, isCactus(above) || (above != nil && above.IsType(typeDyePlant)))

	switch base := cactusBase(g, x, y); {
	case x > base:
		mask |= cactusRightOfBase
	case x < base:
		mask |= cactusLeftOfBase
	}

	for _, rl := range cactusRules {
		if uint16(mask)&rl.mask == rl.value {
			return rl.uv
		}
	}
	panic("autotile: no cactus rule matched")
}
