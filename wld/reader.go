package wld

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// MaxDimension bounds tilesWide and tilesHigh before the grid is allocated.
const MaxDimension = 1 << 16

type decodeConfig struct {
	Logger   *slog.Logger
	Progress func(percent int)
	Registry *defs.Registry
	Schema   spec.Schema
}

type Option func(*decodeConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *decodeConfig) { c.Logger = logger }
}

// WithProgress sets a callback receiving the tile phase completion in
// percent. It is called from the decoding goroutine, once per change.
func WithProgress(progress func(percent int)) Option {
	return func(c *decodeConfig) { c.Progress = progress }
}

// WithRegistry enables naming of chest items and town NPC sprites.
func WithRegistry(registry *defs.Registry) Option {
	return func(c *decodeConfig) { c.Registry = registry }
}

func WithSchema(schema spec.Schema) Option {
	return func(c *decodeConfig) { c.Schema = schema }
}

// ReadFile reads and decodes a world file. Gzip and zstd wrapped files are
// unpacked first.
func ReadFile(filePath string, opts ...Option) (*World, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	data, err = spec.Decompress(data)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts...)
}

// Decode decodes a world file held in memory. Any format or stream error
// aborts the decode and no partial world is returned.
func Decode(data []byte, opts ...Option) (*World, error) {
	config := decodeConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Schema == nil {
		config.Schema = spec.DefaultSchema()
	}

	d := &decoder{
		c:      spec.NewCursor(data),
		config: config,
		logger: config.Logger,
	}
	return d.decode()
}

type decoder struct {
	c       *spec.Cursor
	config  decodeConfig
	logger  *slog.Logger
	version int
	extra   spec.Extra
}

type phase struct {
	name    string
	section int
	read    func(w *World) error
}

func (d *decoder) decode() (*World, error) {
	preamble, err := spec.ReadPreamble(d.c)
	if err != nil {
		return nil, err
	}
	d.version = preamble.Version
	d.extra = preamble.Extra
	d.logger.Debug("libworld: preamble",
		"version", preamble.Version, "sections", len(preamble.Sections), "types", len(preamble.Extra))

	w := &World{Version: preamble.Version, Revision: preamble.Revision}

	phases := []phase{
		{"header", spec.SectionHeader, d.readHeader},
		{"tiles", spec.SectionTiles, d.readTiles},
		{"chests", spec.SectionChests, d.readChests},
		{"signs", spec.SectionSigns, d.readSigns},
		{"npcs", spec.SectionNPCs, d.readNPCs},
		{"entities", spec.SectionEntities, d.readEntities},
		{"pressure plates", spec.SectionPressurePlates, d.readPressurePlates},
		{"town manager", spec.SectionTownManager, d.readRooms},
	}
	for _, p := range phases {
		offset, ok := preamble.Section(p.section)
		if !ok {
			continue
		}
		d.logger.Debug("libworld: "+p.name, "offset", offset)
		d.c.Seek(offset)
		if err := p.read(w); err != nil {
			return nil, fmt.Errorf("read %s: %w", p.name, err)
		}
		if err := d.c.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", p.name, err)
		}
	}
	return w, nil
}

func (d *decoder) readHeader(w *World) error {
	header, err := spec.DecodeHeader(d.c, d.config.Schema, d.version, d.logger)
	if err != nil {
		return err
	}
	width, height := header.Int("tilesWide"), header.Int("tilesHigh")
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: invalid world size %dx%d", spec.ErrFormat, width, height)
	}
	w.Header = header
	w.Tiles = tile.NewGrid(width, height)
	return nil
}

func (d *decoder) readTiles(w *World) error {
	width := w.Tiles.Width
	last := -1
	progress := func(x int) {
		if d.config.Progress == nil {
			return
		}
		if percent := (x + 1) * 100 / width; percent != last {
			last = percent
			d.config.Progress(percent)
		}
	}
	return spec.DecodeTiles(d.c, d.extra, w.Tiles, progress)
}

func (d *decoder) itemName(id int) string {
	if d.config.Registry == nil {
		return ""
	}
	name, ok := d.config.Registry.Item(id)
	if !ok {
		d.logger.Warn("libworld: unknown item", "id", id)
	}
	return name
}

func (d *decoder) prefixName(id int) string {
	if d.config.Registry == nil || id == 0 {
		return ""
	}
	name, ok := d.config.Registry.Prefix(id)
	if !ok {
		d.logger.Warn("libworld: unknown prefix", "id", id)
	}
	return name
}

func (d *decoder) readChests(w *World) error {
	c := d.c
	numChests := int(c.U16())
	itemsPerChest := int(c.U16())
	w.Chests = make([]Chest, 0, min(numChests, c.Remaining()))
	for range numChests {
		chest := Chest{
			X:    int(c.I32()),
			Y:    int(c.I32()),
			Name: c.String(),
		}
		for range itemsPerChest {
			stack := int(c.I16())
			if stack <= 0 {
				continue
			}
			item := Item{Stack: stack, ID: int(c.I32()), Prefix: int(c.U8())}
			if c.Err() != nil {
				break
			}
			item.Name = d.itemName(item.ID)
			item.PrefixName = d.prefixName(item.Prefix)
			chest.Items = append(chest.Items, item)
		}
		if err := c.Err(); err != nil {
			return err
		}
		w.Chests = append(w.Chests, chest)
	}
	return nil
}

func (d *decoder) readSigns(w *World) error {
	c := d.c
	numSigns := int(c.U16())
	w.Signs = make([]Sign, 0, min(numSigns, c.Remaining()))
	for range numSigns {
		sign := Sign{Text: c.String(), X: int(c.I32()), Y: int(c.I32())}
		if err := c.Err(); err != nil {
			return err
		}
		w.Signs = append(w.Signs, sign)
	}
	return nil
}

func (d *decoder) readNPCs(w *World) error {
	c := d.c
	for c.Bool() {
		npc := NPC{
			Kind:     NPCTown,
			Title:    c.String(),
			Name:     c.String(),
			X:        c.F32(),
			Y:        c.F32(),
			Homeless: c.Bool(),
			HomeX:    int(c.I32()),
			HomeY:    int(c.I32()),
		}
		if d.config.Registry != nil {
			if def, ok := d.config.Registry.NPCByName(npc.Title); ok {
				npc.Head, npc.Sprite = def.Head, def.ID
			} else {
				d.logger.Warn("libworld: unknown npc", "title", npc.Title)
			}
		}
		w.NPCs = append(w.NPCs, npc)
	}
	if err := c.Err(); err != nil {
		return err
	}

	if d.version < 140 {
		return nil
	}
	for c.Bool() {
		w.NPCs = append(w.NPCs, NPC{
			Kind:     NPCAmbient,
			Title:    c.String(),
			X:        c.F32(),
			Y:        c.F32(),
			Homeless: true,
		})
	}
	return c.Err()
}

func (d *decoder) readEntities(w *World) error {
	c := d.c
	switch {
	case d.version < 116:
		return nil

	case d.version < 122:
		numDummies := int(c.I32())
		for range numDummies {
			dummy := Entity{Kind: EntityTrainingDummy, ID: -1, X: int(c.I16()), Y: int(c.I16())}
			if err := c.Err(); err != nil {
				return err
			}
			w.Entities = append(w.Entities, dummy)
		}
		return nil
	}

	numEntities := int(c.I32())
	for range numEntities {
		kind := EntityKind(c.U8())
		e := Entity{Kind: kind, ID: int(c.I32()), X: int(c.I16()), Y: int(c.I16())}
		switch kind {
		case EntityTrainingDummy:
			e.NPC = int(c.I16())
		case EntityItemFrame:
			e.Item = int(c.I16())
			e.Prefix = int(c.U8())
			e.Stack = int(c.I16())
		case EntityLogicSensor:
			e.Sensor = int(c.U8())
			e.On = c.Bool()
		default:
			if err := c.Err(); err != nil {
				return err
			}
			return fmt.Errorf("%w: unknown entity kind %d", spec.ErrFormat, kind)
		}
		if err := c.Err(); err != nil {
			return err
		}
		w.Entities = append(w.Entities, e)
	}
	return nil
}

func (d *decoder) readPressurePlates(w *World) error {
	if d.version < 170 {
		return nil
	}
	c := d.c
	count := int(c.I32())
	for range count {
		plate := PressurePlate{X: int(c.I32()), Y: int(c.I32())}
		if err := c.Err(); err != nil {
			return err
		}
		w.PressurePlates = append(w.PressurePlates, plate)
	}
	return nil
}

func (d *decoder) readRooms(w *World) error {
	if d.version < 189 {
		return nil
	}
	c := d.c
	count := int(c.I32())
	for range count {
		room := Room{NPC: int(c.I32()), X: int(c.I32()), Y: int(c.I32())}
		if err := c.Err(); err != nil {
			return err
		}
		w.Rooms = append(w.Rooms, room)
	}
	return nil
}
