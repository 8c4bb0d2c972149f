package autotile

import (
	"sync"

	"github.com/eak1mov/go-libworld/tile"
)

// Cache memoizes resolution results for one grid. Coordinates stored in
// the world file take precedence over computed ones. It is safe for
// concurrent use; the grid must not change while the cache is in use.
type Cache struct {
	engine *Engine
	grid   tile.Reader

	mu    sync.Mutex
	tiles map[tile.Pos]Result
	walls map[tile.Pos]tile.UV
}

func (e *Engine) NewCache(g tile.Reader) *Cache {
	return &Cache{
		engine: e,
		grid:   g,
		tiles:  make(map[tile.Pos]Result),
		walls:  make(map[tile.Pos]tile.UV),
	}
}

func (c *Cache) Tile(x, y int) Result {
	t := c.grid.At(x, y)
	if t == nil || !t.Active() {
		return unresolved
	}
	if t.UV.Resolved() {
		return Result{UV: t.UV}
	}

	pos := tile.Pos{X: x, Y: y}
	c.mu.Lock()
	res, ok := c.tiles[pos]
	c.mu.Unlock()
	if ok {
		return res
	}

	res = c.engine.ResolveTile(c.grid, x, y)
	c.mu.Lock()
	c.tiles[pos] = res
	c.mu.Unlock()
	return res
}

func (c *Cache) Wall(x, y int) tile.UV {
	t := c.grid.At(x, y)
	if t == nil || t.Wall == 0 {
		return tile.UnresolvedUV
	}
	if t.WallUV.Resolved() {
		return t.WallUV
	}

	pos := tile.Pos{X: x, Y: y}
	c.mu.Lock()
	uv, ok := c.walls[pos]
	c.mu.Unlock()
	if ok {
		return uv
	}

	uv = c.engine.ResolveWall(c.grid, x, y)
	c.mu.Lock()
	c.walls[pos] = uv
	c.mu.Unlock()
	return uv
}

// Len returns the number of memoized tiles and walls.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tiles) + len(c.walls)
}

// Reset drops all memoized results.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.tiles)
	clear(c.walls)
}
