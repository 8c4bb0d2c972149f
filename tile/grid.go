package tile

// Grid is a dense row-major tile array.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid allocates a grid of empty tiles with unresolved coordinates.
func NewGrid(width, height int) *Grid {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i].UV = UnresolvedUV
		tiles[i].WallUV = UnresolvedUV
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

func (g *Grid) Size() (int, int) {
	return g.Width, g.Height
}

func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g *Grid) At(x, y int) *Tile {
	if !g.In(x, y) {
		return nil
	}
	return &g.Tiles[y*g.Width+x]
}

func (g *Grid) VisitTiles(visitor func(Pos, *Tile) error) error {
	for y := range g.Height {
		row := g.Tiles[y*g.Width : (y+1)*g.Width]
		for x := range row {
			if err := visitor(Pos{X: x, Y: y}, &row[x]); err != nil {
				return err
			}
		}
	}
	return nil
}
