package wldtest

import (
	"testing/fstest"

	"github.com/eak1mov/go-libworld/defs"
)

const itemsJSON = `[
	{"id": 1, "name": "Iron Pickaxe"},
	{"id": 2, "name": "Dirt Block"},
	{"id": 3, "name": "Stone Block"},
	{"id": 8, "name": "Torch"},
	{"id": 29, "name": "Life Crystal"},
	{"id": 73, "name": "Gold Coin"},
	{"id": 94, "name": "Wood Platform"},
	{"id": 3199, "name": "Ice Mirror"}
]`

const tilesJSON = `[
	{"id": 0, "name": "Dirt", "color": "976b4b", "flags": 1},
	{"id": 1, "ref": 3, "color": "808080", "flags": 9},
	{"id": 2, "name": "Grass", "color": "1cd85e", "flags": 17, "blend": "0"},
	{"id": 4, "ref": 8, "color": "fdb235", "flags": 2, "w": 22, "r": 1.0, "g": 0.95, "b": 0.8, "var": [
		{"y": 1, "name": "Blue Torch", "r": 0.0},
		{"miny": 2, "maxy": 4, "name": "Colored Torch", "var": [
			{"y": 3, "name": "Green Torch"}
		]}
	]},
	{"id": 19, "ref": 94, "color": "bf8f6f", "flags": 2},
	{"id": 25, "name": "Ebonstone", "color": "6d5a80", "flags": 9},
	{"id": 30, "name": "Wood", "color": "a87d49", "flags": 129},
	{"id": 38, "name": "Gray Brick", "color": "8c8c8c", "flags": 129},
	{"id": 51, "name": "Cobweb", "color": "c0c0c0", "flags": 2},
	{"id": 53, "name": "Sand", "color": "d3c66f", "flags": 513, "merge": "*0"},
	{"id": 54, "name": "Glass", "color": "c8f6fe", "flags": 3},
	{"id": 80, "name": "Cactus", "color": "497811", "flags": 2},
	{"id": 147, "name": "Snow", "color": "d3ecf1", "flags": 517, "blend": "solid"},
	{"id": 213, "name": "Rope", "color": "896a43", "flags": 2},
	{"id": 227, "name": "Dye Plant", "color": "6e6e6e", "flags": 2},
	{"id": 357, "name": "Sandstone Slab", "color": "c6b36c", "flags": 1},
	{"id": 367, "name": "Marble", "color": "a8b2cc", "flags": 1025},
	{"id": 470, "name": "Mannequin", "color": "8c6e55", "flags": 2}
]`

const wallsJSON = `[
	{"id": 1, "name": "Stone Wall", "color": "343434"},
	{"id": 2, "name": "Dirt Wall", "color": "58402d"},
	{"id": 4, "ref": 94, "color": "49341e", "blend": 2},
	{"id": 5, "name": "Gray Brick Wall", "color": "3c3c3c"},
	{"id": 10, "name": "Phlebas Wall", "color": "4f3a5a", "large": 1},
	{"id": 11, "name": "Lazure Wall", "color": "2e4760", "large": 2}
]`

const prefixesJSON = `[
	{"id": 1, "name": "Large"},
	{"id": 59, "name": "Godly"},
	{"id": 81, "name": "Legendary"}
]`

const npcsJSON = `[
	{"id": 1, "name": "Blue Slime", "banner": 1},
	{"id": 2, "name": "Demon Eye", "banner": 2},
	{"id": 17, "name": "Merchant", "head": 2},
	{"id": 22, "name": "Guide", "head": 1},
	{"id": 200, "name": "Guide", "head": 99},
	{"id": 300, "name": "Bunny"}
]`

const globalsJSON = `[
	{"id": "sky", "color": "84aaf8"},
	{"id": "earth", "color": "583d2e"},
	{"id": "rock", "color": "4a433c"},
	{"id": "hell", "color": "330000"},
	{"id": "water", "color": "093dbf"},
	{"id": "lava", "color": "fd2003"},
	{"id": "honey", "color": "fe9e0d"}
]`

// Definitions returns a small catalog set covering every definition kind.
func Definitions() fstest.MapFS {
	return Catalog(map[string]string{
		defs.ItemsFile:    itemsJSON,
		defs.TilesFile:    tilesJSON,
		defs.WallsFile:    wallsJSON,
		defs.PrefixesFile: prefixesJSON,
		defs.NPCsFile:     npcsJSON,
		defs.GlobalsFile:  globalsJSON,
	})
}

// Catalog returns a catalog set with the given files; absent catalogs are
// empty arrays.
func Catalog(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, name := range []string{
		defs.ItemsFile, defs.TilesFile, defs.WallsFile,
		defs.PrefixesFile, defs.NPCsFile, defs.GlobalsFile,
	} {
		data, ok := files[name]
		if !ok {
			data = "[]"
		}
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}
