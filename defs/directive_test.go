package defs_test

import (
	"testing"

	"github.com/eak1mov/go-libworld/defs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseDirectives(t *testing.T) {
	for _, tc := range []struct {
		Tag   string
		Blend bool
		Want  []defs.Directive
	}{
		{Tag: "", Want: nil},
		{Tag: "solid", Blend: true, Want: []defs.Directive{
			{Group: defs.Solid, Blend: true, Direction: defs.DirAll},
		}},
		{Tag: "*0,v59", Want: []defs.Directive{
			{Tile: 0, HasTile: true, Recursive: true, Direction: defs.DirAll},
			{Tile: 59, HasTile: true, Direction: defs.DirBottom},
		}},
		{Tag: "^dirt", Want: []defs.Directive{
			{Group: defs.Dirt, Direction: defs.DirTop},
		}},
		{Tag: "+brick,moss", Want: []defs.Directive{
			{Group: defs.Brick, Direction: defs.DirCardinal},
			{Group: defs.Moss, Direction: defs.DirAll},
		}},
		{Tag: "357,", Blend: true, Want: []defs.Directive{
			{Tile: 357, HasTile: true, Blend: true, Direction: defs.DirAll},
		}},
	} {
		t.Run(tc.Tag, func(t *testing.T) {
			got, err := defs.ParseDirectives(tc.Tag, tc.Blend)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Errorf("ParseDirectives mismatch (-want+got):\n%s", diff)
			}
		})
	}
}

func TestParseDirectivesErrors(t *testing.T) {
	for _, tag := range []string{
		"solid!",
		"Solid",
		"grass",
		"1,,2",
		"*",
		"99999",
	} {
		t.Run(tag, func(t *testing.T) {
			_, err := defs.ParseDirectives(tag, false)
			require.ErrorIs(t, err, defs.ErrDefinition)
		})
	}
}

func TestDirectiveTargets(t *testing.T) {
	dirt := &defs.TileDef{Caps: defs.Solid | defs.Dirt}

	byID := defs.Directive{Tile: 0, HasTile: true}
	require.True(t, byID.Targets(0, dirt))
	require.False(t, byID.Targets(1, dirt))
	require.False(t, byID.Targets(-1, nil))

	byGroup := defs.Directive{Group: defs.Dirt}
	require.True(t, byGroup.Targets(0, dirt))
	require.False(t, byGroup.Targets(1, &defs.TileDef{Caps: defs.Stone}))
	require.False(t, byGroup.Targets(-1, dirt))
}
