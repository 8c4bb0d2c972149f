package spec_test

import (
	"testing"

	"github.com/eak1mov/go-libworld/internal/wldtest"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeTile(t *testing.T) {
	extra := make(spec.Extra, 10)
	extra[5] = true

	with := func(base tile.Tile, f func(*tile.Tile)) tile.Tile {
		f(&base)
		return base
	}

	for _, tc := range []struct {
		Name string
		Tile tile.Tile
		RLE  int
	}{
		{Name: "Empty", Tile: wldtest.Empty()},
		{Name: "Active", Tile: wldtest.Active(1)},
		{Name: "WideTypeColor", Tile: with(wldtest.Active(470), func(t *tile.Tile) { t.Color = 3 })},
		{Name: "WallColor", Tile: with(wldtest.WallOnly(4), func(t *tile.Tile) { t.WallColor = 7 })},
		{Name: "Water", Tile: with(wldtest.Empty(), func(t *tile.Tile) { t.Liquid = 128 })},
		{Name: "Lava", Tile: with(wldtest.Empty(), func(t *tile.Tile) {
			t.Liquid = 255
			t.Flags |= tile.FlagLava
		})},
		{Name: "Honey", Tile: with(wldtest.WallOnly(2), func(t *tile.Tile) {
			t.Liquid = 10
			t.Flags |= tile.FlagHoney
		})},
		{Name: "WiresHalf", Tile: with(wldtest.Active(1), func(t *tile.Tile) {
			t.Flags |= tile.FlagRedWire | tile.FlagBlueWire | tile.FlagHalf
		})},
		{Name: "SlopeActuator", Tile: with(wldtest.Active(2), func(t *tile.Tile) {
			t.Slope = 3
			t.Flags |= tile.FlagGreenWire | tile.FlagActuator | tile.FlagInactive
		})},
		{Name: "ExtraUV", Tile: with(wldtest.Active(5), func(t *tile.Tile) { t.UV = tile.UV{U: 18, V: 36} })},
		{Name: "ShortRun", Tile: wldtest.Active(1), RLE: 3},
		{Name: "LongRun", Tile: wldtest.WallOnly(1), RLE: 300},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			w := &wldtest.Writer{}
			wldtest.AppendTile(w, tc.Tile, extra, tc.RLE)
			w.U8(0xaa)

			c := spec.NewCursor(w.Bytes())
			var got tile.Tile
			rle := spec.DecodeTile(c, extra, &got)
			require.NoError(t, c.Err())
			require.Equal(t, tc.RLE, rle)
			if diff := cmp.Diff(tc.Tile, got); diff != "" {
				t.Errorf("DecodeTile mismatch (-want+got):\n%s", diff)
			}
			require.Equal(t, uint8(0xaa), c.U8(), "record length")
		})
	}
}

func TestDecodeTileFlagsChain(t *testing.T) {
	// flags2 present but without flags3: the next byte is the type.
	c := spec.NewCursor([]byte{0x03, 0x00, 0x07})
	var got tile.Tile
	rle := spec.DecodeTile(c, nil, &got)
	require.NoError(t, c.Err())
	require.Equal(t, 0, rle)
	require.Equal(t, uint16(7), got.Type)
	require.True(t, got.Active())
	require.Equal(t, 0, c.Remaining())
}

func TestDecodeTiles(t *testing.T) {
	w := &wldtest.Writer{}
	// column 0: one record running past the bottom edge
	wldtest.AppendTile(w, wldtest.Active(1), nil, 10)
	// column 1: three distinct records
	wldtest.AppendTile(w, wldtest.Empty(), nil, 0)
	wldtest.AppendTile(w, wldtest.WallOnly(2), nil, 0)
	wldtest.AppendTile(w, wldtest.Active(3), nil, 0)

	g := tile.NewGrid(2, 3)
	var columns []int
	err := spec.DecodeTiles(spec.NewCursor(w.Bytes()), nil, g, func(x int) {
		columns = append(columns, x)
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, columns)

	want := []tile.Tile{
		wldtest.Active(1), wldtest.Empty(),
		wldtest.Active(1), wldtest.WallOnly(2),
		wldtest.Active(1), wldtest.Active(3),
	}
	if diff := cmp.Diff(want, g.Tiles); diff != "" {
		t.Errorf("DecodeTiles mismatch (-want+got):\n%s", diff)
	}
}

func TestDecodeTilesRoundTrip(t *testing.T) {
	g := tile.NewGrid(7, 11)
	for pos, tl := range tile.IterTiles(g) {
		switch {
		case pos.Y > 6:
			*tl = wldtest.Active(uint16(pos.X%3 + 1))
		case pos.Y == 6:
			*tl = wldtest.WallOnly(uint8(pos.X))
		}
	}

	w := &wldtest.Writer{}
	wldtest.AppendGrid(w, g, nil)

	got := tile.NewGrid(7, 11)
	require.NoError(t, spec.DecodeTiles(spec.NewCursor(w.Bytes()), nil, got, nil))
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("DecodeTiles mismatch (-want+got):\n%s", diff)
	}
}

func TestDecodeTilesTruncated(t *testing.T) {
	w := &wldtest.Writer{}
	wldtest.AppendTile(w, wldtest.Active(1), nil, 0)

	err := spec.DecodeTiles(spec.NewCursor(w.Bytes()), nil, tile.NewGrid(1, 2), nil)
	require.ErrorIs(t, err, spec.ErrStream)
}
