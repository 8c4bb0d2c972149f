package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles visited by v.
// Iteration panics on errors other than cancellation.
func IterTiles(v Visitor) iter.Seq2[Pos, *Tile] {
	return func(yield func(Pos, *Tile) bool) {
		err := v.VisitTiles(func(pos Pos, t *Tile) error {
			if !yield(pos, t) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// IterRect returns an iterator over the tiles of r inside [x0,x1)×[y0,y1),
// clipped to the grid, in row-major order.
func IterRect(r Reader, x0, y0, x1, y1 int) iter.Seq2[Pos, *Tile] {
	return func(yield func(Pos, *Tile) bool) {
		width, height := r.Size()
		x0, y0 = max(x0, 0), max(y0, 0)
		x1, y1 = min(x1, width), min(y1, height)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if !yield(Pos{X: x, Y: y}, r.At(x, y)) {
					return
				}
			}
		}
	}
}
