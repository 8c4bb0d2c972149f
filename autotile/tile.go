package autotile

import (
	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/tile"
)

// Neighbour identities. Non-negative values are tile types.
const (
	absent  = -1
	blended = -2
)

// Tile types with hard-wired behaviour.
const (
	typeStone    = 1
	typePlatform = 19
	typeCobweb   = 51
	typeGlass    = 54
	typeCactus   = 80
	typeRope     = 213
	typeDyePlant = 227
	typeSlab     = 357
)

type slot int

const (
	top slot = iota
	bottom
	left
	right
	topLeft
	topRight
	bottomLeft
	bottomRight
	numSlots
)

var slotOffsets = [numSlots]tile.Pos{
	top:         {X: 0, Y: -1},
	bottom:      {X: 0, Y: 1},
	left:        {X: -1, Y: 0},
	right:       {X: 1, Y: 0},
	topLeft:     {X: -1, Y: -1},
	topRight:    {X: 1, Y: -1},
	bottomLeft:  {X: -1, Y: 1},
	bottomRight: {X: 1, Y: 1},
}

var slotDirs = [numSlots]uint8{
	top:         defs.DirTop,
	bottom:      defs.DirBottom,
	left:        defs.DirLeft,
	right:       defs.DirRight,
	topLeft:     defs.DirTopLeft,
	topRight:    defs.DirTopRight,
	bottomLeft:  defs.DirBottomLeft,
	bottomRight: defs.DirBottomRight,
}

// The edge a cardinal neighbour must claim back for recursive directives.
var opposite = [numSlots]uint8{
	top:    defs.DirBottom,
	bottom: defs.DirTop,
	left:   defs.DirRight,
	right:  defs.DirLeft,
}

// Mask bits per slot: merge sets both, blend only the high one.
var (
	slotMerge = [numSlots]uint16{0x00c0, 0x0030, 0x000c, 0x0003, 0xc000, 0x3000, 0x0c00, 0x0300}
	slotBlend = [numSlots]uint16{0x0080, 0x0020, 0x0008, 0x0002, 0x8000, 0x2000, 0x0800, 0x0200}
)

// Slopes of a cardinal neighbour that hide the edge facing us.
var hiddenBySlope = [4][2]uint8{
	top:    {3, 4},
	bottom: {1, 2},
	left:   {1, 3},
	right:  {2, 4},
}

// Edges of the tile itself cut away by its own slope.
var cutBySlope = [5][2]slot{
	1: {top, right},
	2: {top, left},
	3: {bottom, right},
	4: {bottom, left},
}

// neighbours holds the identity seen in every slot.
type neighbours [numSlots]int

type resolver struct {
	*Engine
	g tile.Reader
}

func (r *resolver) at(x, y int, s slot) *tile.Tile {
	off := slotOffsets[s]
	return r.g.At(x+off.X, y+off.Y)
}

// mergeID collapses stone-like types into one identity.
func (r *resolver) mergeID(typ uint16) int {
	if r.reg.Tile(typ).Has(defs.Stone) {
		return typeStone
	}
	return int(typ)
}

func (r *resolver) def(id int) *defs.TileDef {
	if id < 0 {
		return nil
	}
	return r.reg.Tile(uint16(id))
}

func (r *resolver) has(id int, c defs.Capability) bool {
	return id >= 0 && r.def(id).Has(c)
}

// ResolveTile computes the atlas cell of the active tile at x, y. Stored
// coordinates are ignored. Inactive or out of range positions resolve to
// unresolved coordinates.
func (e *Engine) ResolveTile(g tile.Reader, x, y int) Result {
	r := &resolver{Engine: e, g: g}
	return r.resolve(x, y, 0)
}

func (r *resolver) resolve(x, y, depth int) Result {
	t := r.g.At(x, y)
	if t == nil || !t.Active() {
		return unresolved
	}
	c := r.mergeID(t.Type)
	if c == typeCactus {
		return Result{UV: r.ResolveCactus(r.g, x, y)}
	}
	def := r.def(c)

	var n neighbours
	for s := range numSlots {
		n[s] = absent
		nt := r.at(x, y, s)
		if nt == nil || !nt.Active() {
			continue
		}
		if s < topLeft && (nt.Slope == hiddenBySlope[s][0] || nt.Slope == hiddenBySlope[s][1]) {
			continue
		}
		n[s] = r.mergeID(nt.Type)
	}
	if t.Slope > 0 && int(t.Slope) < len(cutBySlope) {
		for _, s := range cutBySlope[t.Slope] {
			n[s] = absent
		}
	}

	for i := range def.Directives {
		r.applyDirective(&def.Directives[i], x, y, c, depth, &n)
	}
	r.applyGroups(def, c, &n)
	r.applyGeometry(t, x, y, c, &n)
	blend := r.colorSeams(t, def, x, y, c, &n)

	var mask uint16
	for s := range numSlots {
		switch n[s] {
		case c:
			mask |= slotMerge[s]
		case blended:
			mask |= slotBlend[s]
		}
	}

	set := r.variantSet(x, y, saltTile)
	if def.Has(defs.Large) {
		set = largeSet(x, y)
	}
	rl := lookupRule(def, mask)
	if rl == nil {
		panic("autotile: no rule matched")
	}
	// The fourth large set is the first one shifted down.
	uv := rl.uvs[set%3]
	if set == 3 {
		uv.V += 90
	}
	return Result{UV: uv, Blend: rl.blend | blend}
}

// lookupRule evaluates the rule tables in order and returns the first match.
func lookupRule(def *defs.TileDef, mask uint16) *rule {
	grass := def.Has(defs.Grass)
	if grass {
		if rl := firstMatch(grassRules, mask); rl != nil {
			return rl
		}
	}
	if def.Has(defs.Merge) || def.Has(defs.Dirt) {
		if rl := firstMatch(blendRules, mask); rl != nil {
			return rl
		}
		if !grass {
			if rl := firstMatch(noGrassRules, mask); rl != nil {
				return rl
			}
		}
	}
	if grass {
		// Unmatched blends become merges.
		mask |= (mask & 0xaaaa) >> 1
	}
	return firstMatch(genericRules, mask)
}

func firstMatch(rules []rule, mask uint16) *rule {
	for i := range rules {
		if rules[i].match(mask) {
			return &rules[i]
		}
	}
	return nil
}

func (r *resolver) applyDirective(d *defs.Directive, x, y, c, depth int, n *neighbours) {
	var dir uint8
	for s := range numSlots {
		if d.Targets(n[s], r.def(n[s])) {
			dir |= slotDirs[s]
		}
	}
	dir &= d.Direction

	claim := c
	if d.Blend {
		claim = blended
	}
	for s := range numSlots {
		if dir&slotDirs[s] == 0 {
			continue
		}
		if d.Recursive && s < topLeft && !r.claims(x, y, s, depth) {
			continue
		}
		n[s] = claim
	}
}

// claims reports whether the neighbour in slot s claims its edge facing x, y.
func (r *resolver) claims(x, y int, s slot, depth int) bool {
	if depth >= r.maxDepth {
		r.logger.Debug("libworld: autotile depth limit reached", "x", x, "y", y)
		return false
	}
	off := slotOffsets[s]
	res := r.resolve(x+off.X, y+off.Y, depth+1)
	return res.Blend&opposite[s] != 0
}

// applyGroups runs the fixed categorical merges.
func (r *resolver) applyGroups(def *defs.TileDef, c int, n *neighbours) {
	for _, group := range []defs.Capability{defs.Brick, defs.Pile} {
		if !def.Has(group) {
			continue
		}
		for s := range numSlots {
			if r.has(n[s], group) {
				n[s] = c
			}
		}
	}
	if def.Has(defs.Dirt) {
		for s := range numSlots {
			if n[s] == 0 {
				n[s] = blended
			}
		}
	}
	for s := range numSlots {
		if n[s] == typeSlab {
			n[s] = c
		}
	}
	if c == typeRope && n[top] != c {
		for _, s := range []slot{left, right} {
			if r.has(n[s], defs.Solid) {
				n[s] = c
			}
		}
	}
	if c == typeCobweb {
		for s := range numSlots {
			if n[s] > absent {
				n[s] = c
			}
		}
	}
}

func isSlope(t *tile.Tile, a, b uint8) bool {
	return t != nil && (t.Slope == a || t.Slope == b)
}

// applyGeometry joins or separates edges by slope and half-height.
func (r *resolver) applyGeometry(t *tile.Tile, x, y, c int, n *neighbours) {
	if isSlope(t, 1, 2) && n[bottom] > absent && n[bottom] != typePlatform {
		n[bottom] = c
	}
	if n[top] > absent {
		above := r.at(x, y, top)
		if above != nil && n[top] != typePlatform && (isSlope(above, 1, 2) || above.Half()) {
			n[top] = c
		}
	}
	if isSlope(t, 3, 4) && n[top] > absent && n[top] != typePlatform {
		n[top] = c
	}
	if n[bottom] > absent {
		below := r.at(x, y, bottom)
		if below != nil {
			if isSlope(below, 3, 4) && n[bottom] != typePlatform {
				n[bottom] = c
			}
			if below.Half() {
				n[bottom] = absent
			}
		}
	}
	for _, s := range []slot{left, right} {
		if n[s] <= absent {
			continue
		}
		side := r.at(x, y, s)
		if side == nil || !side.Half() {
			continue
		}
		if t.Half() {
			n[s] = c
		} else if int(side.Type) != c {
			n[s] = absent
		}
	}
	if t.Half() {
		for _, s := range []slot{left, right} {
			if n[s] != c {
				n[s] = absent
			}
		}
		n[top] = absent
	}
}

// colorSeams turns soft matches against differently dyed neighbours into
// merges and reports those edges.
func (r *resolver) colorSeams(t *tile.Tile, def *defs.TileDef, x, y, c int, n *neighbours) uint8 {
	if def.Has(defs.Grass) {
		return 0
	}
	var blend uint8
	for _, s := range []slot{top, bottom, left, right} {
		if n[s] != blended {
			continue
		}
		if nt := r.at(x, y, s); nt != nil && nt.Color != t.Color {
			blend |= slotDirs[s]
			n[s] = c
		}
	}
	return blend
}
