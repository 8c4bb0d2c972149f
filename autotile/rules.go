package autotile

import "github.com/eak1mov/go-libworld/tile"

// rule selects atlas coordinates when mask&rule.mask == rule.value.
// uvs holds one cell per variant set.
type rule struct {
	mask  uint16
	value uint16
	uvs   [3]tile.UV
	blend uint8
}

func uvs(u0, v0, u1, v1, u2, v2 int16) [3]tile.UV {
	return [3]tile.UV{{U: u0, V: v0}, {U: u1, V: v1}, {U: u2, V: v2}}
}

func (r *rule) match(mask uint16) bool {
	return mask&r.mask == r.value
}

var grassRules = []rule{
	{0xaaaa, 0xaaaa, uvs(18, 18, 36, 18, 54, 18), 0},
	{0x0abf, 0x083f, uvs(0, 324, 18, 324, 36, 324), 0},
	{0x0abf, 0x023f, uvs(54, 324, 72, 324, 90, 324), 0},
	{0xa0ef, 0x80cf, uvs(0, 342, 18, 342, 36, 342), 0},
	{0xa0ef, 0x20cf, uvs(54, 342, 72, 342, 90, 342), 0},
	{0x22fb, 0x20f3, uvs(54, 360, 72, 360, 90, 360), 0},
	{0x22fb, 0x02f3, uvs(0, 360, 18, 360, 36, 360), 0},
	{0x88fe, 0x80fc, uvs(0, 378, 18, 378, 36, 378), 0},
	{0x88fe, 0x08fc, uvs(54, 378, 72, 378, 90, 378), 0},
	{0x02bb, 0x0033, uvs(90, 270, 108, 270, 126, 270), 0},
	{0x08be, 0x003c, uvs(144, 270, 162, 270, 180, 270), 0},
	{0x20eb, 0x00c3, uvs(90, 288, 108, 288, 126, 288), 0},
	{0x80ee, 0x00cc, uvs(144, 288, 162, 288, 180, 288), 0},
	{0x0abf, 0x003f, uvs(144, 216, 198, 216, 252, 216), 0},
	{0xa0ef, 0x00cf, uvs(144, 252, 198, 252, 252, 252), 0},
	{0x22fb, 0x00f3, uvs(126, 234, 180, 234, 234, 234), 0},
	{0x88fe, 0x00fc, uvs(162, 234, 216, 234, 270, 234), 0},
	{0x00af, 0x002a, uvs(36, 270, 54, 270, 72, 270), 0},
	{0x00af, 0x008a, uvs(36, 288, 54, 288, 72, 288), 0},
	{0x00fa, 0x00a2, uvs(0, 270, 0, 288, 0, 306), 0},
	{0x00fa, 0x00a8, uvs(18, 270, 18, 288, 18, 306), 0},
	{0x00ff, 0x00ea, uvs(198, 288, 216, 288, 234, 288), 0},
	{0x00ff, 0x00ba, uvs(198, 270, 216, 270, 234, 270), 0},
	{0x00ff, 0x00ae, uvs(198, 306, 216, 306, 234, 306), 0},
	{0x00ff, 0x00ab, uvs(144, 306, 162, 306, 180, 306), 0},
	{0xaaaa, 0x2aaa, uvs(54, 108, 54, 144, 54, 180), 0},
	{0xaaaa, 0x8aaa, uvs(36, 108, 36, 144, 36, 180), 0},
	{0xaaaa, 0xa2aa, uvs(54, 90, 54, 126, 54, 162), 0},
	{0xaaaa, 0xa8aa, uvs(36, 90, 36, 126, 36, 162), 0},
	{0x00af, 0x002b, uvs(0, 198, 18, 198, 36, 198), 0},
	{0x00af, 0x002e, uvs(54, 198, 72, 198, 90, 198), 0},
	{0x00af, 0x008b, uvs(0, 216, 18, 216, 36, 216), 0},
	{0x00af, 0x008e, uvs(54, 216, 72, 216, 90, 216), 0},
	{0x00fa, 0x00b2, uvs(72, 144, 72, 162, 72, 180), 0},
	{0x00fa, 0x00b8, uvs(90, 144, 90, 162, 90, 180), 0},
	{0x57ff, 0x02ff, uvs(108, 324, 126, 324, 144, 324), 0},
	{0x77ff, 0x20ff, uvs(108, 342, 126, 342, 144, 342), 0},
	{0x7fff, 0x08ff, uvs(108, 360, 126, 360, 144, 360), 0},
	{0xffff, 0x80ff, uvs(108, 378, 126, 378, 144, 378), 0},
	{0xffff, 0x00ff, uvs(144, 234, 198, 234, 252, 234), 0},
	{0x41ff, 0x00ff, uvs(36, 306, 54, 306, 72, 306), 0},
	{0x14ff, 0x00ff, uvs(90, 306, 108, 306, 126, 306), 0},
	{0x5fff, 0x0fff, uvs(54, 108, 54, 144, 54, 180), 0},
	{0xdfff, 0xcfff, uvs(36, 108, 36, 144, 36, 180), 0},
	{0xf7ff, 0xf3ff, uvs(54, 90, 54, 126, 54, 162), 0},
	{0xfdff, 0xfcff, uvs(36, 90, 36, 126, 36, 162), 0},
	{0xa0ff, 0x00ef, uvs(108, 18, 126, 18, 144, 18), 0},
	{0x0aff, 0x00bf, uvs(108, 36, 126, 36, 144, 36), 0},
	{0x22ff, 0x00fb, uvs(198, 0, 198, 18, 198, 36), 0},
	{0x88ff, 0x00fe, uvs(180, 0, 180, 18, 180, 36), 0},
	{0x20ff, 0x20ef, uvs(54, 108, 54, 144, 54, 180), 0},
	{0x80ff, 0x80ef, uvs(36, 108, 36, 144, 36, 180), 0},
	{0x02ff, 0x02bf, uvs(54, 90, 54, 126, 54, 162), 0},
	{0x08ff, 0x08bf, uvs(36, 90, 36, 126, 36, 162), 0},
	{0x80ff, 0x80fe, uvs(54, 90, 54, 126, 54, 162), 0},
	{0x08ff, 0x08fe, uvs(54, 108, 54, 144, 54, 180), 0},
	{0x20ff, 0x20fb, uvs(36, 90, 36, 126, 36, 162), 0},
	{0x02ff, 0x02fb, uvs(36, 108, 36, 144, 36, 180), 0},
	{0x00ff, 0x00bf, uvs(18, 18, 36, 18, 54, 18), 0},
	{0x00ff, 0x00ef, uvs(18, 18, 36, 18, 54, 18), 0},
	{0x00ff, 0x00fb, uvs(18, 18, 36, 18, 54, 18), 0},
	{0x00ff, 0x00fe, uvs(18, 18, 36, 18, 54, 18), 0},
}

var blendRules = []rule{
	{0x00ff, 0x00bf, uvs(144, 108, 162, 108, 180, 108), 8},
	{0x00ff, 0x00ef, uvs(144, 90, 162, 90, 180, 90), 4},
	{0x00ff, 0x00fb, uvs(162, 126, 162, 144, 162, 162), 2},
	{0x00ff, 0x00fe, uvs(144, 126, 144, 144, 144, 162), 1},
	{0x00ff, 0x00bb, uvs(36, 90, 36, 126, 36, 162), 8 | 2},
	{0x00ff, 0x00be, uvs(54, 90, 54, 126, 54, 162), 8 | 1},
	{0x00ff, 0x00eb, uvs(36, 108, 36, 144, 36, 180), 4 | 2},
	{0x00ff, 0x00ee, uvs(54, 108, 54, 144, 54, 180), 4 | 1},
	{0x00ff, 0x00fa, uvs(180, 126, 180, 144, 180, 162), 2 | 1},
	{0x00ff, 0x00af, uvs(144, 180, 162, 180, 180, 180), 8 | 4},
	{0x00ff, 0x00ba, uvs(198, 90, 198, 108, 198, 126), 8 | 2 | 1},
	{0x00ff, 0x00ea, uvs(216, 144, 216, 162, 216, 180), 4 | 2 | 1},
	{0x00ff, 0x00ab, uvs(216, 90, 216, 108, 216, 126), 8 | 4 | 2},
	{0x00ff, 0x00aa, uvs(108, 198, 126, 198, 144, 198), 8 | 4 | 2 | 1},
	{0x03ff, 0x02ff, uvs(0, 90, 0, 126, 0, 162), 0},
	{0x0cff, 0x08ff, uvs(18, 90, 18, 126, 18, 162), 0},
	{0x30ff, 0x20ff, uvs(0, 108, 0, 144, 0, 180), 0},
	{0xc0ff, 0x80ff, uvs(18, 108, 18, 144, 18, 180), 0},
}

var noGrassRules = []rule{
	{0x00fb, 0x00b3, uvs(72, 144, 72, 162, 72, 180), 8},
	{0x00fb, 0x00e3, uvs(72, 90, 72, 108, 72, 126), 4},
	{0x00fe, 0x00bc, uvs(90, 144, 90, 162, 90, 180), 8},
	{0x00fe, 0x00ec, uvs(90, 90, 90, 108, 90, 126), 4},
	{0x00bf, 0x003b, uvs(0, 198, 18, 198, 36, 198), 2},
	{0x00bf, 0x003e, uvs(54, 198, 72, 198, 90, 198), 1},
	{0x00ef, 0x00cb, uvs(0, 216, 18, 216, 36, 216), 2},
	{0x00ef, 0x00ce, uvs(54, 216, 72, 216, 90, 216), 1},
	{0x00fa, 0x00a0, uvs(108, 216, 108, 234, 108, 252), 8 | 4},
	{0x00ca, 0x0080, uvs(126, 144, 126, 162, 126, 180), 8},
	{0x003a, 0x0020, uvs(126, 90, 126, 108, 126, 126), 4},
	{0x00af, 0x000a, uvs(162, 198, 180, 198, 198, 198), 2 | 1},
	{0x00ac, 0x0008, uvs(0, 252, 18, 252, 36, 252), 2},
	{0x00a3, 0x0002, uvs(54, 252, 72, 252, 90, 252), 1},
	{0x00ea, 0x0080, uvs(108, 144, 108, 162, 108, 180), 8},
	{0x00ba, 0x0020, uvs(108, 90, 108, 108, 108, 126), 4},
	{0x00ae, 0x0008, uvs(0, 234, 18, 234, 36, 234), 2},
	{0x00ab, 0x0002, uvs(54, 234, 72, 234, 90, 234), 1},
	{0x00bf, 0x002f, uvs(234, 0, 252, 0, 270, 0), 4},
	{0x00ef, 0x008f, uvs(234, 18, 252, 18, 270, 18), 8},
	{0x00fb, 0x00f2, uvs(234, 36, 252, 36, 270, 36), 1},
	{0x00fe, 0x00f8, uvs(234, 54, 252, 54, 270, 54), 2},
}

// genericRules ends with a rule matching every mask.
var genericRules = []rule{
	{0x50ff, 0x00ff, uvs(108, 18, 126, 18, 144, 18), 0},
	{0x05ff, 0x00ff, uvs(108, 36, 126, 36, 144, 36), 0},
	{0x44ff, 0x00ff, uvs(180, 0, 180, 18, 180, 36), 0},
	{0x11ff, 0x00ff, uvs(198, 0, 198, 18, 198, 36), 0},
	{0x00ff, 0x00ff, uvs(18, 18, 36, 18, 54, 18), 0},
	{0x007f, 0x003f, uvs(18, 0, 36, 0, 54, 0), 0},
	{0x00df, 0x00cf, uvs(18, 36, 36, 36, 54, 36), 0},
	{0x00f7, 0x00f3, uvs(0, 0, 0, 18, 0, 36), 0},
	{0x00fd, 0x00fc, uvs(72, 0, 72, 18, 72, 36), 0},
	{0x0077, 0x0033, uvs(0, 54, 36, 54, 72, 54), 0},
	{0x007d, 0x003c, uvs(18, 54, 54, 54, 90, 54), 0},
	{0x00d7, 0x00c3, uvs(0, 72, 36, 72, 72, 72), 0},
	{0x00dd, 0x00cc, uvs(18, 72, 54, 72, 90, 72), 0},
	{0x00f5, 0x00f0, uvs(90, 0, 90, 18, 90, 36), 0},
	{0x005f, 0x000f, uvs(108, 72, 126, 72, 144, 72), 0},
	{0x0075, 0x0030, uvs(108, 0, 126, 0, 144, 0), 0},
	{0x00d5, 0x00c0, uvs(108, 54, 126, 54, 144, 54), 0},
	{0x0057, 0x0003, uvs(162, 0, 162, 18, 162, 36), 0},
	{0x005d, 0x000c, uvs(216, 0, 216, 18, 216, 36), 0},
	{0x0055, 0x0000, uvs(162, 54, 180, 54, 198, 54), 0},
	{0x0000, 0x0000, uvs(18, 18, 36, 18, 54, 18), 0},
}

type cactusRule struct {
	mask  uint16
	value uint16
	uv    tile.UV
}

// Cactus mask bits.
const (
	cactusRight       = 0x001
	cactusLeft        = 0x002
	cactusBottom      = 0x004
	cactusTop         = 0x008
	cactusBottomRight = 0x010
	cactusBottomLeft  = 0x020
	cactusFarLeft     = 0x040
	cactusOnSolid     = 0x080
	cactusLeftOfBase  = 0x100
	cactusRightOfBase = 0x200
)

var cactusRules = []cactusRule{
	{0x37b, 0x003, tile.UV{U: 90, V: 0}},
	{0x36a, 0x002, tile.UV{U: 72, V: 0}},
	{0x319, 0x001, tile.UV{U: 18, V: 0}},
	{0x308, 0x000, tile.UV{U: 0, V: 0}},
	{0x37b, 0x00b, tile.UV{U: 90, V: 36}},
	{0x36a, 0x00a, tile.UV{U: 72, V: 36}},
	{0x319, 0x009, tile.UV{U: 18, V: 36}},
	{0x380, 0x080, tile.UV{U: 0, V: 36}},
	{0x300, 0x000, tile.UV{U: 0, V: 18}},
	{0x30d, 0x101, tile.UV{U: 108, V: 36}},
	{0x305, 0x101, tile.UV{U: 54, V: 36}},
	{0x309, 0x101, tile.UV{U: 54, V: 0}},
	{0x301, 0x101, tile.UV{U: 54, V: 18}},
	{0x309, 0x100, tile.UV{U: 54, V: 0}},
	{0x300, 0x100, tile.UV{U: 54, V: 18}},
	{0x30e, 0x202, tile.UV{U: 108, V: 18}},
	{0x306, 0x202, tile.UV{U: 36, V: 36}},
	{0x30a, 0x202, tile.UV{U: 36, V: 0}},
	{0x302, 0x202, tile.UV{U: 36, V: 18}},
	{0x30a, 0x200, tile.UV{U: 36, V: 0}},
	{0x300, 0x200, tile.UV{U: 36, V: 18}},
}

// Positional variant patterns for large tiles and walls, 1-based.
var (
	phlebasPattern = [4][3]int{
		{2, 4, 2},
		{1, 3, 1},
		{2, 2, 4},
		{1, 1, 3},
	}
	lazurePattern = [2][2]int{
		{1, 2},
		{3, 4},
	}
	// Offsets added to a fully surrounded wall mask.
	wallSurrounded = [3][3]int{
		{2, 0, 0},
		{0, 1, 4},
		{0, 3, 0},
	}
)

// wallUVs is indexed by the 4-bit neighbour mask, extended past 15 for
// surrounded walls, then by variant set.
var wallUVs = [20][4]tile.UV{
	{{U: 324, V: 108}, {U: 360, V: 108}, {U: 396, V: 108}, {U: 216, V: 216}},
	{{U: 216, V: 108}, {U: 252, V: 108}, {U: 288, V: 108}, {U: 144, V: 216}},
	{{U: 432, V: 0}, {U: 432, V: 36}, {U: 432, V: 72}, {U: 432, V: 180}},
	{{U: 36, V: 144}, {U: 108, V: 144}, {U: 180, V: 144}, {U: 108, V: 216}},
	{{U: 324, V: 0}, {U: 324, V: 36}, {U: 324, V: 72}, {U: 324, V: 180}},
	{{U: 0, V: 144}, {U: 72, V: 144}, {U: 144, V: 144}, {U: 72, V: 216}},
	{{U: 216, V: 144}, {U: 252, V: 144}, {U: 288, V: 144}, {U: 180, V: 216}},
	{{U: 36, V: 72}, {U: 72, V: 72}, {U: 108, V: 72}, {U: 108, V: 180}},
	{{U: 216, V: 0}, {U: 252, V: 0}, {U: 288, V: 0}, {U: 216, V: 180}},
	{{U: 180, V: 0}, {U: 180, V: 36}, {U: 180, V: 72}, {U: 180, V: 180}},
	{{U: 36, V: 108}, {U: 108, V: 108}, {U: 180, V: 108}, {U: 36, V: 216}},
	{{U: 144, V: 0}, {U: 144, V: 36}, {U: 144, V: 72}, {U: 144, V: 180}},
	{{U: 0, V: 108}, {U: 72, V: 108}, {U: 144, V: 108}, {U: 0, V: 216}},
	{{U: 0, V: 0}, {U: 0, V: 36}, {U: 0, V: 72}, {U: 0, V: 180}},
	{{U: 36, V: 0}, {U: 72, V: 0}, {U: 108, V: 0}, {U: 36, V: 216}},
	{{U: 36, V: 36}, {U: 72, V: 36}, {U: 108, V: 36}, {U: 72, V: 180}},
	{{U: 216, V: 36}, {U: 252, V: 36}, {U: 288, V: 36}, {U: 252, V: 180}},
	{{U: 216, V: 72}, {U: 252, V: 72}, {U: 288, V: 72}, {U: 288, V: 180}},
	{{U: 360, V: 0}, {U: 360, V: 36}, {U: 360, V: 72}, {U: 360, V: 180}},
	{{U: 396, V: 0}, {U: 396, V: 36}, {U: 396, V: 72}, {U: 396, V: 180}},
}
