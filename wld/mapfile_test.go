package wld_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-libworld/internal/wldtest"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld"
	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/stretchr/testify/require"
)

func seenPattern(width, height int) []bool {
	seen := make([]bool, width*height)
	for i := range seen {
		x, y := i%width, i/width
		seen[i] = y == 0 || x == 1 || (x+y)%5 == 0
	}
	return seen
}

func gotSeen(w *wld.World) []bool {
	var seen []bool
	for _, t := range tile.IterTiles(w.Tiles) {
		seen = append(seen, t.Seen())
	}
	return seen
}

func TestApplyPlayerMap(t *testing.T) {
	for _, tc := range []struct {
		Name    string
		Version int
		Dark    bool
	}{
		{Name: "Legacy77", Version: 77},
		{Name: "Legacy91", Version: 91},
		{Name: "Plain", Version: 92},
		{Name: "Deflate", Version: 93},
		{Name: "DeflateDark", Version: 93, Dark: true},
		{Name: "Signed", Version: spec.HighestVersion, Dark: true},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			w, err := wld.Decode(testWorld().Build())
			require.NoError(t, err)
			width, height := w.Size()

			m := &wldtest.PlayerMap{
				Version: tc.Version,
				Width:   width,
				Height:  height,
				Seen:    seenPattern(width, height),
				Dark:    tc.Dark,
			}
			require.NoError(t, wld.ApplyPlayerMap(w, m.Build()))
			require.Equal(t, m.Seen, gotSeen(w))
		})
	}
}

func TestApplyPlayerMapErrors(t *testing.T) {
	w, err := wld.Decode(testWorld().Build())
	require.NoError(t, err)
	width, height := w.Size()

	m := &wldtest.PlayerMap{Version: spec.HighestVersion, Width: width + 1, Height: height}
	m.Seen = make([]bool, m.Width*m.Height)
	require.ErrorIs(t, wld.ApplyPlayerMap(w, m.Build()), spec.ErrFormat)

	m = &wldtest.PlayerMap{Version: spec.HighestVersion + 1, Width: width, Height: height}
	m.Seen = make([]bool, width*height)
	require.ErrorIs(t, wld.ApplyPlayerMap(w, m.Build()), spec.ErrInvalidVersion)

	m.Version = spec.HighestVersion
	data := m.Build()
	copy(data[4:], "xelogic")
	require.ErrorIs(t, wld.ApplyPlayerMap(w, data), spec.ErrInvalidMagic)

	m.Version = 91
	data = m.Build()
	require.ErrorIs(t, wld.ApplyPlayerMap(w, data[:len(data)-1]), spec.ErrStream)
}

func TestPlayerMapPath(t *testing.T) {
	got := wld.PlayerMapPath(filepath.Join("players", "hero.plr"), 42)
	require.Equal(t, filepath.Join("players", "hero", "42.map"), got)
}

func TestReadPlayerMap(t *testing.T) {
	w, err := wld.Decode(testWorld().Build())
	require.NoError(t, err)
	width, height := w.Size()

	dir := t.TempDir()
	player := filepath.Join(dir, "hero.plr")
	m := &wldtest.PlayerMap{Version: 93, WorldID: 42, Width: width, Height: height, Seen: seenPattern(width, height)}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hero"), 0o755))
	require.NoError(t, os.WriteFile(wld.PlayerMapPath(player, 42), m.Build(), 0o644))

	require.NoError(t, wld.ReadPlayerMap(w, player))
	require.Equal(t, m.Seen, gotSeen(w))
}
