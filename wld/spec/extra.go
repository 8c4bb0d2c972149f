package spec

// Extra records, per tile type id, whether tiles of that type store explicit
// atlas coordinates in the tile section.
type Extra []bool

// ReadExtra reads n packed booleans, eight per byte, bit 0 first.
func ReadExtra(c *Cursor, n int) Extra {
	extra := make(Extra, n)
	var bits uint8
	for i := range n {
		if i%8 == 0 {
			bits = c.U8()
		}
		extra[i] = bits&(1<<(i%8)) != 0
	}
	return extra
}

// Has reports whether tile type t carries atlas coordinates. Types beyond
// the recorded count never do.
func (e Extra) Has(t uint16) bool {
	return int(t) < len(e) && e[t]
}
