package autotile

import "github.com/eak1mov/go-libworld/tile"

// Wall neighbour mask bits.
const (
	wallTop    = 1
	wallLeft   = 2
	wallRight  = 4
	wallBottom = 8
)

// WallMask returns the 4-bit mask of cardinal neighbours that have a wall or
// an active glass block.
func WallMask(g tile.Reader, x, y int) int {
	bridges := func(t *tile.Tile) bool {
		return t != nil && (t.Wall != 0 || t.IsType(typeGlass))
	}
	mask := 0
	if bridges(g.At(x, y-1)) {
		mask |= wallTop
	}
	if bridges(g.At(x-1, y)) {
		mask |= wallLeft
	}
	if bridges(g.At(x+1, y)) {
		mask |= wallRight
	}
	if bridges(g.At(x, y+1)) {
		mask |= wallBottom
	}
	return mask
}

// ResolveWall computes the atlas cell of the wall at x, y. Positions
// without a wall resolve to unresolved coordinates.
func (e *Engine) ResolveWall(g tile.Reader, x, y int) tile.UV {
	t := g.At(x, y)
	if t == nil || t.Wall == 0 {
		return tile.UnresolvedUV
	}

	var set int
	switch e.reg.Wall(uint16(t.Wall)).Large {
	case 1:
		set = phlebasPattern[y%4][x%3] - 1
	case 2:
		set = lazurePattern[x%2][y%2] - 1
	default:
		set = e.variantSet(x, y, saltWall)
	}

	mask := WallMask(g, x, y)
	if mask == wallTop|wallLeft|wallRight|wallBottom {
		mask += wallSurrounded[x%3][y%3]
	}
	return wallUVs[mask][set]
}
