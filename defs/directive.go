package defs

import (
	"errors"
	"fmt"
	"strings"
)

// Directive is one blend or merge instruction of a tile definition.
type Directive struct {
	// Tile is the explicit target when HasTile is set, otherwise Group is.
	Tile    uint16
	HasTile bool
	Group   Capability

	// Blend marks a soft match; otherwise the neighbour merges fully.
	Blend bool
	// Recursive directives only claim a neighbour that claims back.
	Recursive bool
	// Direction restricts the neighbours the directive applies to.
	Direction uint8
}

// Targets reports whether a neighbour of the given type and definition is
// a target of d.
func (d *Directive) Targets(typ int, def *TileDef) bool {
	if d.HasTile {
		return typ == int(d.Tile)
	}
	return typ >= 0 && def != nil && def.Caps&d.Group != 0
}

// ParseDirectives parses a comma separated directive list such as
// "*solid,v59". Every directive gets the given blend kind.
//
// Tokens: '*' recursive, 'v' downward, '^' upward, '+' all four edges,
// digits an explicit tile id, lowercase letters a capability group. A
// directive without a direction token applies in all eight directions.
func ParseDirectives(tag string, blend bool) ([]Directive, error) {
	var out []Directive
	for rest := tag; rest != ""; {
		var item string
		item, rest, _ = strings.Cut(rest, ",")
		d, err := parseDirective(item, blend)
		if err != nil {
			return nil, fmt.Errorf("%w: directive %q: %w", ErrDefinition, tag, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDirective(item string, blend bool) (Directive, error) {
	d := Directive{Blend: blend}
	var group strings.Builder
	tileID := 0
	for _, ch := range item {
		switch {
		case ch == '*':
			d.Recursive = true
		case ch == 'v':
			d.Direction |= DirBottom
		case ch == '^':
			d.Direction |= DirTop
		case ch == '+':
			d.Direction |= DirCardinal
		case ch >= '0' && ch <= '9':
			d.HasTile = true
			tileID = tileID*10 + int(ch-'0')
			if tileID > 0xffff {
				return d, errors.New("tile id out of range")
			}
		case ch >= 'a' && ch <= 'z':
			group.WriteRune(ch)
		default:
			return d, fmt.Errorf("unknown token %q", ch)
		}
	}

	if d.Direction == 0 {
		d.Direction = DirAll
	}
	if d.HasTile {
		d.Tile = uint16(tileID)
		return d, nil
	}
	g, ok := groups[group.String()]
	if !ok {
		return d, fmt.Errorf("unknown group %q", group.String())
	}
	d.Group = g
	return d, nil
}
