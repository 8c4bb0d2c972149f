package defs

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry is the loaded, read-only definition catalog. Tile definitions
// and their variants live in one arena and refer to each other by index.
// All methods are safe for concurrent use.
type Registry struct {
	tiles    []TileDef
	roots    map[uint16]int
	walls    map[uint16]*WallDef
	items    map[int]string
	prefixes map[int]string

	npcsByID     map[int]*NPCDef
	npcsByBanner map[int]*NPCDef
	npcsByName   map[string]*NPCDef

	Palette Palette

	unknown TileDef
	missed  sync.Map
	logger  *slog.Logger
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New returns an empty registry. Every tile lookup misses.
func New(opts ...Option) *Registry {
	r := &Registry{
		roots:        make(map[uint16]int),
		walls:        make(map[uint16]*WallDef),
		items:        make(map[int]string),
		prefixes:     make(map[int]string),
		npcsByID:     make(map[int]*NPCDef),
		npcsByBanner: make(map[int]*NPCDef),
		npcsByName:   make(map[string]*NPCDef),
		unknown: TileDef{
			Name: "Unknown", Width: 18, Height: 18,
			U: -1, V: -1, MinU: -1, MaxU: -1, MinV: -1, MaxV: -1,
			parent: -1,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) miss(kind string, id any) {
	if _, seen := r.missed.LoadOrStore(fmt.Sprintf("%s:%v", kind, id), struct{}{}); !seen {
		r.logger.Warn("libworld: unknown "+kind, "id", id)
	}
}

// LookupTile returns the root definition of a tile type.
func (r *Registry) LookupTile(typ uint16) (*TileDef, bool) {
	i, ok := r.roots[typ]
	if !ok {
		return nil, false
	}
	return &r.tiles[i], true
}

// Tile returns the root definition of a tile type, or a placeholder without
// capabilities if the type is unknown. Misses are logged once per type.
func (r *Registry) Tile(typ uint16) *TileDef {
	if d, ok := r.LookupTile(typ); ok {
		return d
	}
	r.miss("tile type", typ)
	return &r.unknown
}

// Resolve returns the deepest variant of typ matching atlas coordinates
// (u, v). At each level the first matching child in declaration order is
// taken; the search never backtracks and falls back to the root.
func (r *Registry) Resolve(typ uint16, u, v int) *TileDef {
	d := r.Tile(typ)
	for {
		next := -1
		for _, c := range d.children {
			if r.tiles[c].matches(u, v) {
				next = c
				break
			}
		}
		if next < 0 {
			return d
		}
		d = &r.tiles[next]
	}
}

// Variants returns the direct children of d.
func (r *Registry) Variants(d *TileDef) []*TileDef {
	out := make([]*TileDef, 0, len(d.children))
	for _, c := range d.children {
		out = append(out, &r.tiles[c])
	}
	return out
}

// Parent returns the definition d narrows, or false for a root.
func (r *Registry) Parent(d *TileDef) (*TileDef, bool) {
	if d.parent < 0 {
		return nil, false
	}
	return &r.tiles[d.parent], true
}

func (r *Registry) LookupWall(id uint16) (*WallDef, bool) {
	w, ok := r.walls[id]
	return w, ok
}

// Wall returns the wall definition, or a nameless wall blending with itself
// if the id is unknown.
func (r *Registry) Wall(id uint16) *WallDef {
	if w, ok := r.walls[id]; ok {
		return w
	}
	r.miss("wall", id)
	return &WallDef{ID: id, Blend: id}
}

func (r *Registry) Item(id int) (string, bool) {
	name, ok := r.items[id]
	return name, ok
}

func (r *Registry) Prefix(id int) (string, bool) {
	name, ok := r.prefixes[id]
	return name, ok
}

func (r *Registry) NPC(id int) (*NPCDef, bool) {
	n, ok := r.npcsByID[id]
	return n, ok
}

func (r *Registry) NPCByBanner(banner int) (*NPCDef, bool) {
	n, ok := r.npcsByBanner[banner]
	return n, ok
}

// NPCByName looks up a town NPC by title. Only NPCs without a banner are
// indexed; the first declaration of a title wins.
func (r *Registry) NPCByName(title string) (*NPCDef, bool) {
	n, ok := r.npcsByName[title]
	return n, ok
}

// NumTiles returns the number of root tile definitions.
func (r *Registry) NumTiles() int { return len(r.roots) }
