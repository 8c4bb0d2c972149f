// Package defs loads the static catalogs describing tiles, walls, items,
// prefixes, NPCs and global colors, and resolves tile variants from atlas
// coordinates.
package defs

import "errors"

var ErrDefinition = errors.New("invalid definition")

// Capability is a bit of the tile flags mask.
type Capability uint32

const (
	Solid Capability = 1 << iota
	Transparent
	Dirt
	Stone
	Grass
	Pile
	Flip
	Brick
	Moss
	Merge
	Large
)

// Capability groups addressable by name in directives.
var groups = map[string]Capability{
	"solid": Solid,
	"dirt":  Dirt,
	"brick": Brick,
	"moss":  Moss,
}

// Neighbour direction bits used by directives and blend results.
const (
	DirRight uint8 = 1 << iota
	DirLeft
	DirBottom
	DirTop
	DirBottomRight
	DirBottomLeft
	DirTopRight
	DirTopLeft

	DirCardinal = DirTop | DirBottom | DirLeft | DirRight
	DirAll      = 0xff
)

// TileDef is a tile definition or one of its variants. Variants narrow the
// definition to part of the texture atlas and inherit what they don't set.
type TileDef struct {
	Type   uint16
	Name   string
	Color  uint32
	LightR float64
	LightG float64
	LightB float64
	Caps   Capability

	Directives []Directive

	// Atlas cell geometry in pixels.
	Width  int
	Height int
	SkipY  int
	TopPad int

	// Placement constraints in atlas pixels; negative means unset. Max bounds
	// are exclusive.
	U, V       int
	MinU, MaxU int
	MinV, MaxV int

	parent   int
	children []int
}

func (d *TileDef) Has(c Capability) bool { return d.Caps&c != 0 }

// IsVariant reports whether d is a variant rather than a root definition.
func (d *TileDef) IsVariant() bool { return d.parent >= 0 }

func (d *TileDef) matches(u, v int) bool {
	return (d.U < 0 || d.U == u) &&
		(d.V < 0 || d.V == v) &&
		(d.MinU < 0 || d.MinU <= u) &&
		(d.MinV < 0 || d.MinV <= v) &&
		(d.MaxU < 0 || d.MaxU > u) &&
		(d.MaxV < 0 || d.MaxV > v)
}

type WallDef struct {
	ID    uint16
	Name  string
	Color uint32
	// Blend is the wall id this wall connects with.
	Blend uint16
	// Large selects the positional pattern family: 0 random, 1 and 2 fixed
	// patterns.
	Large uint8
}

type NPCDef struct {
	ID        int
	Title     string
	Head      int
	Banner    int
	HasBanner bool
}

// Palette holds the global background and liquid colors.
type Palette struct {
	Sky   uint32
	Earth uint32
	Rock  uint32
	Hell  uint32
	Water uint32
	Lava  uint32
	Honey uint32
}
