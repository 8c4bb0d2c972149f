package autotile_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/eak1mov/go-libworld/autotile"
	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/internal/wldtest"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, opts ...autotile.Option) *autotile.Engine {
	t.Helper()
	reg, err := defs.Load(wldtest.Definitions())
	require.NoError(t, err)
	return autotile.New(reg, append([]autotile.Option{autotile.WithSeed(1)}, opts...)...)
}

func gridOf(width, height int, tiles map[tile.Pos]tile.Tile) *tile.Grid {
	g := tile.NewGrid(width, height)
	for pos, t := range tiles {
		*g.At(pos.X, pos.Y) = t
	}
	return g
}

func cells(row, col0, col1, col2 int16) []tile.UV {
	return []tile.UV{{U: col0, V: row}, {U: col1, V: row}, {U: col2, V: row}}
}

func column(col, row0, row1, row2 int16) []tile.UV {
	return []tile.UV{{U: col, V: row0}, {U: col, V: row1}, {U: col, V: row2}}
}

var isolated = cells(54, 162, 180, 198)

func sloped(typ uint16, slope uint8) tile.Tile {
	t := wldtest.Active(typ)
	t.Slope = slope
	return t
}

func half(typ uint16) tile.Tile {
	t := wldtest.Active(typ)
	t.Flags |= tile.FlagHalf
	return t
}

func dyed(typ uint16, color uint8) tile.Tile {
	t := wldtest.Active(typ)
	t.Color = color
	return t
}

func TestResolveTile(t *testing.T) {
	engine := testEngine(t)

	for _, tc := range []struct {
		Name   string
		Width  int
		Height int
		Tiles  map[tile.Pos]tile.Tile
		At     tile.Pos
		Want   []tile.UV
		Blend  uint8
	}{
		{
			Name: "Isolated", Width: 3, Height: 3,
			Tiles: map[tile.Pos]tile.Tile{{X: 1, Y: 1}: wldtest.Active(1)},
			At:    tile.Pos{X: 1, Y: 1}, Want: isolated,
		},
		{
			Name: "StoneMerge", Width: 2, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(1), {X: 1, Y: 0}: wldtest.Active(25)},
			At:    tile.Pos{X: 0, Y: 0}, Want: column(162, 0, 18, 36),
		},
		{
			Name: "Unrelated", Width: 2, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(1), {X: 1, Y: 0}: wldtest.Active(0)},
			At:    tile.Pos{X: 0, Y: 0}, Want: isolated,
		},
		{
			Name: "Slab", Width: 2, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(1), {X: 1, Y: 0}: wldtest.Active(357)},
			At:    tile.Pos{X: 0, Y: 0}, Want: column(162, 0, 18, 36),
		},
		{
			Name: "Brick", Width: 2, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(30), {X: 1, Y: 0}: wldtest.Active(38)},
			At:    tile.Pos{X: 0, Y: 0}, Want: column(162, 0, 18, 36),
		},
		{
			Name: "Cobweb", Width: 2, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(51), {X: 1, Y: 0}: wldtest.Active(0)},
			At:    tile.Pos{X: 0, Y: 0}, Want: column(162, 0, 18, 36),
		},
		{
			Name: "Rope", Width: 3, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{
				{X: 0, Y: 0}: wldtest.Active(0), {X: 1, Y: 0}: wldtest.Active(213), {X: 2, Y: 0}: wldtest.Active(0),
			},
			At: tile.Pos{X: 1, Y: 0}, Want: cells(72, 108, 126, 144),
		},
		{
			Name: "HalfBelow", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(1), {X: 0, Y: 1}: half(1)},
			At:    tile.Pos{X: 0, Y: 0}, Want: isolated,
		},
		{
			Name: "HalfIgnoresTop", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(1), {X: 0, Y: 1}: half(1)},
			At:    tile.Pos{X: 0, Y: 1}, Want: isolated,
		},
		{
			Name: "SlopeCutsTop", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(1), {X: 0, Y: 1}: sloped(1, 1)},
			At:    tile.Pos{X: 0, Y: 1}, Want: isolated,
		},
		{
			Name: "SlopeJoinsBottom", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: sloped(1, 2), {X: 0, Y: 1}: wldtest.Active(1)},
			At:    tile.Pos{X: 0, Y: 0}, Want: cells(0, 108, 126, 144),
		},
		{
			Name: "Blend", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(147), {X: 0, Y: 1}: wldtest.Active(1)},
			At:    tile.Pos{X: 0, Y: 0}, Want: column(126, 90, 108, 126), Blend: defs.DirBottom,
		},
		{
			Name: "ColorSeam", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: dyed(147, 5), {X: 0, Y: 1}: wldtest.Active(1)},
			At:    tile.Pos{X: 0, Y: 0}, Want: cells(0, 108, 126, 144), Blend: defs.DirBottom,
		},
		{
			Name: "GrassOnDirt", Width: 1, Height: 2,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(2), {X: 0, Y: 1}: wldtest.Active(0)},
			At:    tile.Pos{X: 0, Y: 0}, Want: cells(0, 108, 126, 144),
		},
		{
			Name: "LargeShifted", Width: 3, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 1, Y: 0}: wldtest.Active(367)},
			At:    tile.Pos{X: 1, Y: 0}, Want: []tile.UV{{U: 162, V: 144}},
		},
		{
			Name: "LargePattern", Width: 3, Height: 1,
			Tiles: map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(367)},
			At:    tile.Pos{X: 0, Y: 0}, Want: []tile.UV{{U: 180, V: 54}},
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			g := gridOf(tc.Width, tc.Height, tc.Tiles)
			got := engine.ResolveTile(g, tc.At.X, tc.At.Y)
			require.Contains(t, tc.Want, got.UV)
			require.Equal(t, tc.Blend, got.Blend)
		})
	}
}

func TestResolveStoneSquare(t *testing.T) {
	engine := testEngine(t)
	g := gridOf(2, 2, map[tile.Pos]tile.Tile{
		{X: 0, Y: 0}: wldtest.Active(1), {X: 1, Y: 0}: wldtest.Active(1),
		{X: 0, Y: 1}: wldtest.Active(1), {X: 1, Y: 1}: wldtest.Active(1),
	})

	// Every tile of the square sees its two neighbours and the diagonal
	// between them, and resolves to the matching corner.
	for pos, want := range map[tile.Pos][]tile.UV{
		{X: 0, Y: 0}: cells(54, 0, 36, 72),
		{X: 1, Y: 0}: cells(54, 18, 54, 90),
		{X: 0, Y: 1}: cells(72, 0, 36, 72),
		{X: 1, Y: 1}: cells(72, 18, 54, 90),
	} {
		got := engine.ResolveTile(g, pos.X, pos.Y)
		require.Containsf(t, want, got.UV, "ResolveTile(%d, %d)", pos.X, pos.Y)
		require.Zero(t, got.Blend)
	}
}

func TestResolveInactive(t *testing.T) {
	engine := testEngine(t)
	g := gridOf(1, 1, nil)
	require.Equal(t, tile.UnresolvedUV, engine.ResolveTile(g, 0, 0).UV)
	require.Equal(t, tile.UnresolvedUV, engine.ResolveTile(g, 5, 5).UV)
}

func TestResolveDeterministic(t *testing.T) {
	g := tile.NewGrid(40, 3)
	for x := 0; x < g.Width; x += 2 {
		*g.At(x, 1) = wldtest.Active(1)
	}

	resolveAll := func(engine *autotile.Engine) []tile.UV {
		var out []tile.UV
		for x := 0; x < g.Width; x += 2 {
			out = append(out, engine.ResolveTile(g, x, 1).UV)
		}
		return out
	}

	first := resolveAll(testEngine(t))
	require.Equal(t, first, resolveAll(testEngine(t)))

	distinct := map[tile.UV]bool{}
	for _, uv := range first {
		require.Contains(t, isolated, uv)
		distinct[uv] = true
	}
	require.Greater(t, len(distinct), 1)
}

func recursiveEngine(t *testing.T, tilesJSON string, opts ...autotile.Option) *autotile.Engine {
	t.Helper()
	reg, err := defs.Load(wldtest.Catalog(map[string]string{defs.TilesFile: tilesJSON}))
	require.NoError(t, err)
	return autotile.New(reg, opts...)
}

func TestResolveRecursive(t *testing.T) {
	g := gridOf(2, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(600), {X: 1, Y: 0}: wldtest.Active(601)})

	mutual := recursiveEngine(t, `[
		{"id": 600, "name": "A", "flags": 1, "merge": "*601"},
		{"id": 601, "name": "B", "flags": 513, "blend": "600"}
	]`)
	require.Equal(t, defs.DirLeft, mutual.ResolveTile(g, 1, 0).Blend)
	require.Contains(t, column(162, 0, 18, 36), mutual.ResolveTile(g, 0, 0).UV)

	oneSided := recursiveEngine(t, `[
		{"id": 600, "name": "A", "flags": 1, "merge": "*601"},
		{"id": 601, "name": "B", "flags": 1}
	]`)
	require.Contains(t, isolated, oneSided.ResolveTile(g, 0, 0).UV)
}

func TestResolveCycle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := recursiveEngine(t, `[
		{"id": 700, "name": "A", "flags": 1, "merge": "*701"},
		{"id": 701, "name": "B", "flags": 1, "merge": "*700"}
	]`, autotile.WithMaxDepth(4), autotile.WithLogger(logger))

	g := gridOf(2, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.Active(700), {X: 1, Y: 0}: wldtest.Active(701)})
	require.Contains(t, isolated, engine.ResolveTile(g, 0, 0).UV)
	require.Contains(t, buf.String(), "depth limit reached")
}

func TestResolveWall(t *testing.T) {
	engine := testEngine(t)

	pair := gridOf(2, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.WallOnly(1), {X: 1, Y: 0}: wldtest.WallOnly(1)})
	require.Equal(t, 4, autotile.WallMask(pair, 0, 0))
	require.Contains(t, column(324, 0, 36, 72), engine.ResolveWall(pair, 0, 0))
	require.Equal(t, 2, autotile.WallMask(pair, 1, 0))
	require.Contains(t, column(432, 0, 36, 72), engine.ResolveWall(pair, 1, 0))

	glass := gridOf(2, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.WallOnly(1), {X: 1, Y: 0}: wldtest.Active(54)})
	require.Equal(t, 4, autotile.WallMask(glass, 0, 0))

	alone := gridOf(1, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.WallOnly(1)})
	require.Contains(t, cells(108, 324, 360, 396), engine.ResolveWall(alone, 0, 0))

	phlebas := gridOf(1, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.WallOnly(10)})
	require.Equal(t, tile.UV{U: 360, V: 108}, engine.ResolveWall(phlebas, 0, 0))

	lazure := gridOf(1, 1, map[tile.Pos]tile.Tile{{X: 0, Y: 0}: wldtest.WallOnly(11)})
	require.Equal(t, tile.UV{U: 324, V: 108}, engine.ResolveWall(lazure, 0, 0))

	surrounded := tile.NewGrid(3, 3)
	for _, tl := range tile.IterTiles(surrounded) {
		*tl = wldtest.WallOnly(10)
	}
	require.Equal(t, 15, autotile.WallMask(surrounded, 1, 1))
	require.Equal(t, tile.UV{U: 288, V: 36}, engine.ResolveWall(surrounded, 1, 1))

	require.Equal(t, tile.UnresolvedUV, engine.ResolveWall(gridOf(1, 1, nil), 0, 0))
}

func TestResolveCactus(t *testing.T) {
	engine := testEngine(t)

	trunk := gridOf(3, 4, map[tile.Pos]tile.Tile{
		{X: 1, Y: 0}: wldtest.Active(80),
		{X: 1, Y: 1}: wldtest.Active(80),
		{X: 1, Y: 2}: wldtest.Active(80),
		{X: 1, Y: 3}: wldtest.Active(53),
	})
	require.Equal(t, tile.UV{U: 0, V: 0}, engine.ResolveCactus(trunk, 1, 0))
	require.Equal(t, tile.UV{U: 0, V: 18}, engine.ResolveCactus(trunk, 1, 1))
	require.Equal(t, tile.UV{U: 0, V: 36}, engine.ResolveCactus(trunk, 1, 2))
	require.Equal(t, tile.UV{U: 0, V: 0}, engine.ResolveTile(trunk, 1, 0).UV)

	arm := gridOf(3, 4, map[tile.Pos]tile.Tile{
		{X: 1, Y: 0}: wldtest.Active(80),
		{X: 1, Y: 1}: wldtest.Active(80),
		{X: 1, Y: 2}: wldtest.Active(80),
		{X: 1, Y: 3}: wldtest.Active(53),
		{X: 2, Y: 0}: wldtest.Active(80),
		{X: 2, Y: 1}: wldtest.Active(80),
	})
	require.Equal(t, tile.UV{U: 36, V: 0}, engine.ResolveCactus(arm, 2, 0))
	require.Equal(t, tile.UV{U: 36, V: 36}, engine.ResolveCactus(arm, 2, 1))
	require.Equal(t, tile.UV{U: 18, V: 36}, engine.ResolveCactus(arm, 1, 1))

	require.Equal(t, tile.UnresolvedUV, engine.ResolveCactus(arm, 0, 0))
}

func TestFill(t *testing.T) {
	engine := testEngine(t)
	g := gridOf(3, 2, map[tile.Pos]tile.Tile{
		{X: 0, Y: 0}: wldtest.Active(1),
		{X: 1, Y: 0}: wldtest.Active(1),
		{X: 0, Y: 1}: wldtest.WallOnly(1),
		{X: 1, Y: 1}: wldtest.WallOnly(1),
	})
	torch := wldtest.Active(4)
	torch.UV = tile.UV{U: 22, V: 18}
	*g.At(2, 0) = torch

	engine.Fill(g)
	for pos, tl := range tile.IterTiles(g) {
		if tl.Active() {
			require.Truef(t, tl.UV.Resolved(), "tile %v", pos)
		}
		if tl.Wall != 0 {
			require.Truef(t, tl.WallUV.Resolved(), "wall %v", pos)
		}
	}
	require.Equal(t, tile.UV{U: 22, V: 18}, g.At(2, 0).UV)
	require.Equal(t, engine.ResolveTile(g, 0, 0).UV, g.At(0, 0).UV)
	require.False(t, g.At(2, 1).UV.Resolved())
}

func TestCache(t *testing.T) {
	engine := testEngine(t)
	g := gridOf(4, 4, map[tile.Pos]tile.Tile{
		{X: 0, Y: 0}: wldtest.Active(1),
		{X: 1, Y: 0}: wldtest.Active(25),
		{X: 2, Y: 2}: wldtest.WallOnly(2),
	})
	torch := wldtest.Active(4)
	torch.UV = tile.UV{U: 0, V: 18}
	*g.At(3, 3) = torch

	cache := engine.NewCache(g)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range 4 {
				for x := range 4 {
					cache.Tile(x, y)
					cache.Wall(x, y)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 3, cache.Len())
	require.Equal(t, engine.ResolveTile(g, 0, 0), cache.Tile(0, 0))
	require.Equal(t, engine.ResolveWall(g, 2, 2), cache.Wall(2, 2))
	require.Equal(t, autotile.Result{UV: tile.UV{U: 0, V: 18}}, cache.Tile(3, 3))
	require.Equal(t, tile.UnresolvedUV, cache.Tile(3, 0).UV)

	cache.Reset()
	require.Zero(t, cache.Len())
}
