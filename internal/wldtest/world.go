package wldtest

import (
	"fmt"

	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
)

type Item struct {
	Stack  int16
	ID     int32
	Prefix uint8
}

type Chest struct {
	X, Y  int32
	Name  string
	Items []Item
}

type Sign struct {
	Text string
	X, Y int32
}

type NPC struct {
	Title, Name  string
	X, Y         float32
	Homeless     bool
	HomeX, HomeY int32
}

type AmbientNPC struct {
	Title string
	X, Y  float32
}

// Entity is a typed entity record; Kind selects which fields are written.
type Entity struct {
	Kind   uint8
	ID     int32
	X, Y   int16
	NPC    int16
	Item   int16
	Prefix uint8
	Stack  int16
	Sensor uint8
	On     bool
}

type Room struct {
	NPC, X, Y int32
}

// World describes a world file to be encoded by Build.
type World struct {
	Version int
	// Magic and Kind override the signature when non-empty.
	Magic    string
	Kind     uint8
	Revision uint32

	Extra  []bool
	Schema spec.Schema
	// Header values by field name. tilesWide and tilesHigh default to the
	// grid size; any other missing field is written as zero.
	Header map[string]any

	Grid *tile.Grid

	ItemsPerChest  int
	Chests         []Chest
	Signs          []Sign
	NPCs           []NPC
	Ambient        []AmbientNPC
	Entities       []Entity
	PressurePlates [][2]int32
	Rooms          []Room
}

// NumSections returns the length of the section table for the version.
func NumSections(version int) int {
	switch {
	case version >= 189:
		return 8
	case version >= 170:
		return 7
	default:
		return 6
	}
}

// Build encodes the world.
func (wd *World) Build() []byte {
	version := wd.Version
	if version == 0 {
		version = spec.HighestVersion
	}
	schema := wd.Schema
	if schema == nil {
		schema = spec.DefaultSchema()
	}
	grid := wd.Grid
	if grid == nil {
		grid = tile.NewGrid(1, 1)
	}

	w := &Writer{}
	w.U32(uint32(version))
	if version >= spec.MagicVersion {
		magic := wd.Magic
		if magic == "" {
			magic = spec.Magic
		}
		kind := wd.Kind
		if kind == 0 {
			kind = spec.KindWorld
		}
		w.Raw([]byte(magic)).U8(kind).U32(wd.Revision).U64(0)
	}

	numSections := NumSections(version)
	w.U16(uint16(numSections))
	table := w.Len()
	for range numSections {
		w.U32(0)
	}
	w.U16(uint16(len(wd.Extra))).Raw(EncodeExtra(wd.Extra))

	section := func(i int) {
		w.PutU32At(table+4*i, uint32(w.Len()))
	}

	section(spec.SectionHeader)
	values := map[string]any{
		"tilesWide": grid.Width,
		"tilesHigh": grid.Height,
	}
	for k, v := range wd.Header {
		values[k] = v
	}
	AppendHeader(w, schema, version, values)

	section(spec.SectionTiles)
	AppendGrid(w, grid, wd.Extra)

	section(spec.SectionChests)
	perChest := wd.ItemsPerChest
	if perChest == 0 {
		perChest = 40
	}
	w.U16(uint16(len(wd.Chests))).U16(uint16(perChest))
	for _, c := range wd.Chests {
		w.I32(c.X).I32(c.Y).String(c.Name)
		for i := range perChest {
			if i >= len(c.Items) || c.Items[i].Stack <= 0 {
				w.I16(0)
				continue
			}
			it := c.Items[i]
			w.I16(it.Stack).I32(it.ID).U8(it.Prefix)
		}
	}

	section(spec.SectionSigns)
	w.U16(uint16(len(wd.Signs)))
	for _, s := range wd.Signs {
		w.String(s.Text).I32(s.X).I32(s.Y)
	}

	section(spec.SectionNPCs)
	for _, n := range wd.NPCs {
		w.Bool(true).String(n.Title).String(n.Name).F32(n.X).F32(n.Y).
			Bool(n.Homeless).I32(n.HomeX).I32(n.HomeY)
	}
	w.Bool(false)
	if version >= 140 {
		for _, n := range wd.Ambient {
			w.Bool(true).String(n.Title).F32(n.X).F32(n.Y)
		}
		w.Bool(false)
	}

	section(spec.SectionEntities)
	switch {
	case version >= 122:
		w.I32(int32(len(wd.Entities)))
		for _, e := range wd.Entities {
			w.U8(e.Kind).I32(e.ID).I16(e.X).I16(e.Y)
			switch e.Kind {
			case 0:
				w.I16(e.NPC)
			case 1:
				w.I16(e.Item).U8(e.Prefix).I16(e.Stack)
			case 2:
				w.U8(e.Sensor).Bool(e.On)
			}
		}
	case version >= 116:
		w.I32(int32(len(wd.Entities)))
		for _, e := range wd.Entities {
			w.I16(e.X).I16(e.Y)
		}
	}

	if numSections > spec.SectionPressurePlates {
		section(spec.SectionPressurePlates)
		w.I32(int32(len(wd.PressurePlates)))
		for _, p := range wd.PressurePlates {
			w.I32(p[0]).I32(p[1])
		}
	}
	if numSections > spec.SectionTownManager {
		section(spec.SectionTownManager)
		w.I32(int32(len(wd.Rooms)))
		for _, r := range wd.Rooms {
			w.I32(r.NPC).I32(r.X).I32(r.Y)
		}
	}
	return w.Bytes()
}

// AppendHeader writes every schema field present in version, taking values
// from the map and writing zeros for missing ones. Array lengths follow the
// schema, reading dynamic counts from the map.
func AppendHeader(w *Writer, schema spec.Schema, version int, values map[string]any) {
	for _, f := range schema.Fields(version) {
		v := values[f.Name]
		if !f.Array {
			appendScalar(w, f.Type, v)
			continue
		}
		n := f.Length
		if f.LengthFrom != "" {
			n = toInt(values[f.LengthFrom])
		}
		for i := range n {
			var elem any
			switch arr := v.(type) {
			case []int:
				if i < len(arr) {
					elem = arr[i]
				}
			case []string:
				if i < len(arr) {
					elem = arr[i]
				}
			case nil:
			default:
				panic(fmt.Sprintf("wldtest: unsupported array value %T for %s", v, f.Name))
			}
			appendScalar(w, f.Type, elem)
		}
	}
}

func appendScalar(w *Writer, t spec.FieldType, v any) {
	switch t {
	case spec.FieldBool, spec.FieldByte:
		w.U8(uint8(toInt(v)))
	case spec.FieldInt16:
		w.I16(int16(toInt(v)))
	case spec.FieldInt32:
		w.I32(int32(toInt(v)))
	case spec.FieldInt64:
		w.U64(uint64(toInt(v)))
	case spec.FieldFloat32:
		w.F32(float32(toFloat(v)))
	case spec.FieldFloat64:
		w.F64(toFloat(v))
	case spec.FieldString:
		s, _ := v.(string)
		w.String(s)
	}
}

func toInt(v any) int {
	switch v := v.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return v
	case float64:
		return int(v)
	}
	panic(fmt.Sprintf("wldtest: unsupported integer value %T", v))
}

func toFloat(v any) float64 {
	switch v := v.(type) {
	case nil:
		return 0
	case int:
		return float64(v)
	case float64:
		return v
	}
	panic(fmt.Sprintf("wldtest: unsupported float value %T", v))
}
