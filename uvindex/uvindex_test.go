package uvindex_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/eak1mov/go-libworld/autotile"
	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/internal/wldtest"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/uvindex"
	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestItemSize(t *testing.T) {
	require.Equal(t, 20, binary.Size(uvindex.Item{}))
}

func TestCollect(t *testing.T) {
	reg, err := defs.Load(wldtest.Definitions())
	require.NoError(t, err)
	engine := autotile.New(reg, autotile.WithSeed(3))

	g := tile.NewGrid(3, 2)
	*g.At(0, 0) = wldtest.Active(1)
	*g.At(1, 0) = wldtest.WallOnly(2)
	torch := g.At(2, 1)
	*torch = wldtest.Active(4)
	torch.UV = tile.UV{U: 22, V: 18}

	stone := engine.ResolveTile(g, 0, 0)
	wall := engine.ResolveWall(g, 1, 0)
	want := []uvindex.Item{
		{X: 0, Y: 0, Type: 1, Blend: stone.Blend, U: stone.UV.U, V: stone.UV.V, WallU: tile.Unresolved, WallV: tile.Unresolved},
		{X: 1, Y: 0, Wall: 2, U: tile.Unresolved, V: tile.Unresolved, WallU: wall.U, WallV: wall.V},
		{X: 2, Y: 1, Type: 4, U: 22, V: 18, WallU: tile.Unresolved, WallV: tile.Unresolved},
	}

	items := uvindex.Collect(g, engine)
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("items mismatch (-want+got):\n%s", diff)
	}
	require.Equal(t, tile.Pos{X: 2, Y: 1}, items[2].Pos())
	require.Equal(t, torch.UV, items[2].UV())
	require.Equal(t, wall, items[1].WallUV())

	var buf bytes.Buffer
	require.NoError(t, uvindex.WriteAll(items, &buf))
	require.Equal(t, 3*20, buf.Len())

	got, err := uvindex.ReadAll(buf.Bytes())
	require.NoError(t, err)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("read mismatch (-want+got):\n%s", diff)
	}
}

func TestReadAll(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		items, err := uvindex.ReadAll(nil)
		require.NoError(t, err)
		require.Empty(t, items)
	})
	t.Run("Truncated", func(t *testing.T) {
		_, err := uvindex.ReadAll(make([]byte, 30))
		require.ErrorIs(t, err, spec.ErrFormat)
	})
}
