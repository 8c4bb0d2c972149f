// Package tile provides the world grid cell types and grid access interfaces.
package tile

// Unresolved marks atlas coordinates that still need autotile resolution.
const Unresolved = -1

// Flags is the boolean state of a tile.
type Flags uint16

const (
	FlagActive Flags = 1 << iota
	FlagLava
	FlagHoney
	FlagRedWire
	FlagGreenWire
	FlagBlueWire
	FlagHalf
	FlagActuator
	FlagInactive
	FlagSeen
)

// UV is a texture-atlas cell position in pixels.
type UV struct {
	U int16
	V int16
}

func (uv UV) Resolved() bool {
	return uv.U >= 0 && uv.V >= 0
}

var UnresolvedUV = UV{U: Unresolved, V: Unresolved}

// Tile is a single world cell.
type Tile struct {
	Type      uint16
	Wall      uint8
	Liquid    uint8
	Color     uint8
	WallColor uint8
	// Slope is 0 for a full block and 1..4 for the diagonal variants.
	Slope uint8
	Flags Flags
	UV    UV
	// WallUV is always unresolved after decoding; walls carry no stored coordinates.
	WallUV UV
}

func (t *Tile) Active() bool    { return t.Flags&FlagActive != 0 }
func (t *Tile) Lava() bool      { return t.Flags&FlagLava != 0 }
func (t *Tile) Honey() bool     { return t.Flags&FlagHoney != 0 }
func (t *Tile) RedWire() bool   { return t.Flags&FlagRedWire != 0 }
func (t *Tile) GreenWire() bool { return t.Flags&FlagGreenWire != 0 }
func (t *Tile) BlueWire() bool  { return t.Flags&FlagBlueWire != 0 }
func (t *Tile) Half() bool      { return t.Flags&FlagHalf != 0 }
func (t *Tile) Actuator() bool  { return t.Flags&FlagActuator != 0 }
func (t *Tile) Inactive() bool  { return t.Flags&FlagInactive != 0 }
func (t *Tile) Seen() bool      { return t.Flags&FlagSeen != 0 }

func (t *Tile) SetSeen(seen bool) {
	if seen {
		t.Flags |= FlagSeen
	} else {
		t.Flags &^= FlagSeen
	}
}

// IsType reports whether the tile is active and of type typ.
func (t *Tile) IsType(typ uint16) bool {
	return t.Active() && t.Type == typ
}

// Pos is a tile position; X grows to the right and Y grows downwards.
type Pos struct {
	X int
	Y int
}

// Reader gives random access to tiles.
type Reader interface {
	// Size returns the grid dimensions in tiles.
	Size() (width, height int)

	// At returns the tile at x, y or nil if the position is outside the grid.
	At(x, y int) *Tile
}

type Visitor interface {
	// VisitTiles visits every tile in row-major order, stopping at the first error.
	VisitTiles(visitor func(Pos, *Tile) error) error
}
