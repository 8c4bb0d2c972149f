package defs

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// Catalog file names inside a definitions directory.
const (
	ItemsFile    = "items.json"
	TilesFile    = "tiles.json"
	WallsFile    = "walls.json"
	PrefixesFile = "prefixes.json"
	NPCsFile     = "npcs.json"
	GlobalsFile  = "globals.json"
)

// LoadDir loads the catalogs from a directory on disk.
func LoadDir(dir string, opts ...Option) (*Registry, error) {
	return Load(os.DirFS(dir), opts...)
}

// Load reads every catalog from fsys. Items are loaded first since tile and
// wall entries may take their name from an item by "ref".
func Load(fsys fs.FS, opts ...Option) (*Registry, error) {
	r := New(opts...)

	steps := []struct {
		file string
		load func(gjson.Result) error
	}{
		{ItemsFile, r.loadItems},
		{TilesFile, r.loadTiles},
		{WallsFile, r.loadWalls},
		{PrefixesFile, r.loadPrefixes},
		{NPCsFile, r.loadNPCs},
		{GlobalsFile, r.loadGlobals},
	}
	for _, step := range steps {
		catalog, err := readCatalog(fsys, step.file)
		if err != nil {
			return nil, err
		}
		if err := step.load(catalog); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDefinition, step.file, err)
		}
		r.logger.Debug("libworld: loaded catalog", "file", step.file)
	}
	return r, nil
}

func readCatalog(fsys fs.FS, name string) (gjson.Result, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %s is missing: %w", ErrDefinition, name, err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: %s is corrupt", ErrDefinition, name)
	}
	catalog := gjson.ParseBytes(data)
	if !catalog.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: %s isn't an array", ErrDefinition, name)
	}
	return catalog, nil
}

func requireID(obj gjson.Result, i int) (int, error) {
	id := obj.Get("id")
	if id.Type != gjson.Number {
		return 0, fmt.Errorf("entry %d has no numeric id", i)
	}
	return int(id.Int()), nil
}

func intOr(obj gjson.Result, key string, def int) int {
	if v := obj.Get(key); v.Exists() {
		return int(v.Int())
	}
	return def
}

func floatOr(obj gjson.Result, key string, def float64) float64 {
	if v := obj.Get(key); v.Exists() {
		return v.Float()
	}
	return def
}

func parseColor(s string) (uint32, error) {
	c, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return uint32(c), nil
}

func colorOr(obj gjson.Result, def uint32) (uint32, error) {
	if v := obj.Get("color"); v.Exists() {
		return parseColor(v.String())
	}
	return def, nil
}

func (r *Registry) nameOf(obj gjson.Result, def string) string {
	if ref := obj.Get("ref"); ref.Exists() {
		return r.items[int(ref.Int())]
	}
	if name := obj.Get("name"); name.Exists() {
		return name.String()
	}
	return def
}

func (r *Registry) loadItems(catalog gjson.Result) error {
	for i, obj := range catalog.Array() {
		id, err := requireID(obj, i)
		if err != nil {
			return err
		}
		r.items[id] = obj.Get("name").String()
	}
	return nil
}

func (r *Registry) loadPrefixes(catalog gjson.Result) error {
	for i, obj := range catalog.Array() {
		id, err := requireID(obj, i)
		if err != nil {
			return err
		}
		r.prefixes[id] = obj.Get("name").String()
	}
	return nil
}

func (r *Registry) loadTiles(catalog gjson.Result) error {
	for i, obj := range catalog.Array() {
		id, err := requireID(obj, i)
		if err != nil {
			return err
		}
		if id < 0 || id > 0xffff {
			return fmt.Errorf("tile id %d out of range", id)
		}
		idx, err := r.addTile(obj, uint16(id), -1)
		if err != nil {
			return fmt.Errorf("tile %d: %w", id, err)
		}
		r.roots[uint16(id)] = idx
	}
	return nil
}

// addTile appends a definition and, recursively, its variants to the arena.
func (r *Registry) addTile(obj gjson.Result, typ uint16, parent int) (int, error) {
	def := TileDef{
		Type:   typ,
		Width:  18,
		Height: 18,
		U:      -1, V: -1,
		MinU: -1, MaxU: -1,
		MinV: -1, MaxV: -1,
		parent: parent,
	}
	if parent >= 0 {
		p := &r.tiles[parent]
		def.Name = p.Name
		def.Color = p.Color
		def.LightR, def.LightG, def.LightB = p.LightR, p.LightG, p.LightB
		def.Caps = p.Caps
		def.Directives = p.Directives
		def.Width, def.Height = p.Width, p.Height
		def.SkipY, def.TopPad = p.SkipY, p.TopPad
	}

	def.Name = r.nameOf(obj, def.Name)
	color, err := colorOr(obj, def.Color)
	if err != nil {
		return -1, err
	}
	def.Color = color
	def.LightR = floatOr(obj, "r", def.LightR)
	def.LightG = floatOr(obj, "g", def.LightG)
	def.LightB = floatOr(obj, "b", def.LightB)
	def.Caps = Capability(intOr(obj, "flags", int(def.Caps)))

	blend, merge := obj.Get("blend"), obj.Get("merge")
	if blend.Exists() || merge.Exists() {
		// blends are evaluated before merges
		blends, err := ParseDirectives(blend.String(), true)
		if err != nil {
			return -1, err
		}
		merges, err := ParseDirectives(merge.String(), false)
		if err != nil {
			return -1, err
		}
		def.Directives = append(blends, merges...)
	}

	def.Width = intOr(obj, "w", def.Width)
	def.Height = intOr(obj, "h", def.Height)
	def.SkipY = intOr(obj, "skipy", def.SkipY)
	def.TopPad = intOr(obj, "toppad", def.TopPad)

	if parent >= 0 {
		du, dv := def.Width, def.Height+def.SkipY
		def.U = intOr(obj, "x", -1) * du
		def.V = intOr(obj, "y", -1) * dv
		def.MinU = intOr(obj, "minx", -1) * du
		def.MaxU = intOr(obj, "maxx", -1) * du
		def.MinV = intOr(obj, "miny", -1) * dv
		def.MaxV = intOr(obj, "maxy", -1) * dv
	}

	idx := len(r.tiles)
	r.tiles = append(r.tiles, def)
	for _, v := range obj.Get("var").Array() {
		child, err := r.addTile(v, typ, idx)
		if err != nil {
			return -1, err
		}
		r.tiles[idx].children = append(r.tiles[idx].children, child)
	}
	return idx, nil
}

func (r *Registry) loadWalls(catalog gjson.Result) error {
	for i, obj := range catalog.Array() {
		id, err := requireID(obj, i)
		if err != nil {
			return err
		}
		if id < 0 || id > 0xffff {
			return fmt.Errorf("wall id %d out of range", id)
		}
		color, err := colorOr(obj, 0)
		if err != nil {
			return fmt.Errorf("wall %d: %w", id, err)
		}
		r.walls[uint16(id)] = &WallDef{
			ID:    uint16(id),
			Name:  r.nameOf(obj, ""),
			Color: color,
			Blend: uint16(intOr(obj, "blend", id)),
			Large: uint8(intOr(obj, "large", 0)),
		}
	}
	return nil
}

func (r *Registry) loadNPCs(catalog gjson.Result) error {
	for i, obj := range catalog.Array() {
		id, err := requireID(obj, i)
		if err != nil {
			return err
		}
		npc := &NPCDef{
			ID:    id,
			Title: obj.Get("name").String(),
			Head:  intOr(obj, "head", 0),
		}
		r.npcsByID[id] = npc
		if banner := obj.Get("banner"); banner.Exists() {
			npc.Banner, npc.HasBanner = int(banner.Int()), true
			r.npcsByBanner[npc.Banner] = npc
		} else if _, ok := r.npcsByName[npc.Title]; !ok {
			r.npcsByName[npc.Title] = npc
		}
	}
	return nil
}

func (r *Registry) loadGlobals(catalog gjson.Result) error {
	slots := map[string]*uint32{
		"sky":   &r.Palette.Sky,
		"earth": &r.Palette.Earth,
		"rock":  &r.Palette.Rock,
		"hell":  &r.Palette.Hell,
		"water": &r.Palette.Water,
		"lava":  &r.Palette.Lava,
		"honey": &r.Palette.Honey,
	}
	for i, obj := range catalog.Array() {
		key := obj.Get("id").String()
		slot, ok := slots[key]
		if !ok {
			return fmt.Errorf("global %d: unknown palette key %q", i, key)
		}
		color, err := parseColor(obj.Get("color").String())
		if err != nil {
			return fmt.Errorf("global %s: %w", key, err)
		}
		*slot = color
	}
	return nil
}
