package spec_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/eak1mov/go-libworld/internal/wldtest"
	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeader(t *testing.T) {
	schema := spec.DefaultSchema()
	w := &wldtest.Writer{}
	wldtest.AppendHeader(w, schema, spec.HighestVersion, map[string]any{
		"name":        "Test World",
		"worldID":     1234,
		"tilesWide":   4200,
		"tilesHigh":   1200,
		"groundLevel": 350.5,
		"crimson":     true,
		"numKills":    3,
		"killCount":   []int{10, 0, 7},
		"numAnglers":  2,
		"anglers":     []string{"Andrew", "Bob"},
	})
	w.U8(0xaa)

	c := spec.NewCursor(w.Bytes())
	h, err := spec.DecodeHeader(c, schema, spec.HighestVersion, nil)
	require.NoError(t, err)
	require.Equal(t, uint8(0xaa), c.U8())

	require.Equal(t, "Test World", h.Str("name"))
	require.Equal(t, 1234, h.Int("worldID"))
	require.Equal(t, 4200, h.Int("tilesWide"))
	require.Equal(t, 1200, h.Int("tilesHigh"))
	require.Equal(t, 350.5, h.Float("groundLevel"))
	require.True(t, h.Is("crimson"))
	require.False(t, h.Is("hardMode"))

	kills := h.Get("killCount")
	require.True(t, kills.Array)
	require.Equal(t, 3, kills.Len())
	require.Equal(t, 7, kills.At(2).Int())
	require.Equal(t, 0, kills.At(3).Int())

	anglers := h.Get("anglers")
	require.Equal(t, "Bob", anglers.At(1).Str())
	require.Equal(t, 16, h.Get("guid").Len())
}

func TestDecodeHeaderVersions(t *testing.T) {
	schema := spec.DefaultSchema()
	for version := spec.MinimumVersion; version <= spec.HighestVersion; version++ {
		w := &wldtest.Writer{}
		wldtest.AppendHeader(w, schema, version, map[string]any{
			"numKills":            2,
			"numAnglers":          1,
			"numPartyCelebrating": 1,
		})

		c := spec.NewCursor(w.Bytes())
		h, err := spec.DecodeHeader(c, schema, version, nil)
		require.NoErrorf(t, err, "version %d", version)
		require.Equalf(t, 0, c.Remaining(), "version %d", version)

		var want []string
		for _, f := range schema.Fields(version) {
			want = append(want, f.Name)
		}
		if diff := cmp.Diff(want, h.Names()); diff != "" {
			t.Errorf("version %d fields mismatch (-want+got):\n%s", version, diff)
		}
	}
}

func TestDecodeHeaderErrors(t *testing.T) {
	schema, err := spec.ParseSchema([]byte(`[
		{"name": "n", "type": "i32", "min": 100},
		{"name": "arr", "type": "i32", "relnum": "n"}
	]`))
	require.NoError(t, err)

	_, err = spec.DecodeHeader(spec.NewCursor([]byte{0, 0, 0, 0}), schema, 90, nil)
	require.ErrorIs(t, err, spec.ErrSchema)

	w := &wldtest.Writer{}
	w.I32(1000).I32(1)
	_, err = spec.DecodeHeader(spec.NewCursor(w.Bytes()), schema, 100, nil)
	require.ErrorIs(t, err, spec.ErrStream)

	_, err = spec.DecodeHeader(spec.NewCursor([]byte{1, 2}), schema, 100, nil)
	require.ErrorIs(t, err, spec.ErrStream)
}

func TestHeaderMissingKey(t *testing.T) {
	var buf bytes.Buffer
	h := spec.NewHeader(slog.New(slog.NewTextHandler(&buf, nil)))

	_, ok := h.Lookup("nope")
	require.False(t, ok)
	require.Empty(t, buf.String())

	require.Equal(t, 0, h.Int("nope"))
	require.Contains(t, buf.String(), "header key not found")
	require.Contains(t, buf.String(), "key=nope")
}

func TestHeaderTreeStyle(t *testing.T) {
	schema := spec.DefaultSchema()
	w := &wldtest.Writer{}
	wldtest.AppendHeader(w, schema, spec.HighestVersion, map[string]any{
		"treeX":     []int{100, 200, 300},
		"treeStyle": []int{0, 5, 2, 1},
	})
	h, err := spec.DecodeHeader(spec.NewCursor(w.Bytes()), schema, spec.HighestVersion, nil)
	require.NoError(t, err)

	for x, want := range map[int]int{50: 0, 100: 0, 150: 10, 250: 7, 400: 6} {
		require.Equalf(t, want, h.TreeStyle(x), "x=%d", x)
	}
}
