package store

import (
	"database/sql"
	"errors"
	"log/slog"
	"strconv"

	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// Writer exports a world into a SQLite database.
//
// All rows are written in a single transaction committed by Finalize.
type Writer struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	coder  *spec.TileCoder
	logger *slog.Logger

	written map[string]bool
	chests  int
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

const schema = `
	CREATE TABLE metadata (name TEXT, value TEXT);
	CREATE TABLE tiles (
		code INTEGER,
		type INTEGER,
		wall INTEGER,
		liquid INTEGER,
		color INTEGER,
		wall_color INTEGER,
		slope INTEGER,
		flags INTEGER,
		u INTEGER,
		v INTEGER,
		wall_u INTEGER,
		wall_v INTEGER
	);
	CREATE TABLE chests (id INTEGER, x INTEGER, y INTEGER, name TEXT);
	CREATE TABLE items (
		chest INTEGER,
		slot INTEGER,
		item INTEGER,
		stack INTEGER,
		prefix INTEGER,
		name TEXT,
		prefix_name TEXT
	);
	CREATE TABLE signs (x INTEGER, y INTEGER, text TEXT);
	CREATE TABLE npcs (
		kind INTEGER,
		title TEXT,
		name TEXT,
		x REAL,
		y REAL,
		homeless INTEGER,
		home_x INTEGER,
		home_y INTEGER
	);
`

// NewWriter creates a database at filePath for a width×height world.
// Tiles are keyed by their hilbert code so that neighbouring tiles are
// stored close together.
func NewWriter(filePath string, width, height int, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	if _, err = db.Exec(schema); err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	metadata := map[string]string{
		"width":  strconv.Itoa(width),
		"height": strconv.Itoa(height),
	}
	for k, v := range config.Metadata {
		metadata[k] = v
	}
	for k, v := range metadata {
		_, err = tx.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}
	written := make(map[string]bool, len(metadata))
	for k := range metadata {
		written[k] = true
	}

	stmt, err := tx.Prepare(`INSERT INTO tiles (code, type, wall, liquid, color, wall_color, slope, flags, u, v, wall_u, wall_v)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}

	return &Writer{
		db:     db,
		tx:     tx,
		stmt:   stmt,
		coder:  spec.NewTileCoder(width, height),
		logger: config.Logger,

		written: written,
	}, nil
}

// Close releases the database. Rows not yet committed by Finalize are discarded.
func (w *Writer) Close() error {
	err := w.stmt.Close()
	if w.tx != nil {
		err = errors.Join(err, w.tx.Rollback())
	}
	return errors.Join(err, w.db.Close())
}

var emptyTile = tile.Tile{UV: tile.UnresolvedUV, WallUV: tile.UnresolvedUV}

// WriteTile stores t at pos. Empty tiles are skipped.
func (w *Writer) WriteTile(pos tile.Pos, t *tile.Tile) error {
	if *t == emptyTile {
		return nil
	}
	_, err := w.stmt.Exec(
		w.coder.Encode(pos),
		t.Type, t.Wall, t.Liquid, t.Color, t.WallColor, t.Slope, t.Flags,
		t.UV.U, t.UV.V, t.WallUV.U, t.WallUV.V,
	)
	return err
}

func (w *Writer) WriteChest(chest *wld.Chest) error {
	id := w.chests
	w.chests++
	_, err := w.tx.Exec("INSERT INTO chests (id, x, y, name) VALUES (?, ?, ?, ?)", id, chest.X, chest.Y, chest.Name)
	if err != nil {
		return err
	}
	for slot, item := range chest.Items {
		_, err := w.tx.Exec(
			"INSERT INTO items (chest, slot, item, stack, prefix, name, prefix_name) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, slot, item.ID, item.Stack, item.Prefix, item.Name, item.PrefixName,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) WriteSign(sign *wld.Sign) error {
	_, err := w.tx.Exec("INSERT INTO signs (x, y, text) VALUES (?, ?, ?)", sign.X, sign.Y, sign.Text)
	return err
}

func (w *Writer) WriteNPC(npc *wld.NPC) error {
	_, err := w.tx.Exec(
		"INSERT INTO npcs (kind, title, name, x, y, homeless, home_x, home_y) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		npc.Kind, npc.Title, npc.Name, npc.X, npc.Y, npc.Homeless, npc.HomeX, npc.HomeY,
	)
	return err
}

// WriteWorld stores the header values, tiles and objects of world.
// Header arrays are not stored, and metadata given to NewWriter wins over
// header values of the same name.
func (w *Writer) WriteWorld(world *wld.World) error {
	meta := map[string]string{
		"version":  strconv.Itoa(world.Version),
		"revision": strconv.FormatUint(uint64(world.Revision), 10),
	}
	if world.Header != nil {
		for name, v := range world.Header.All() {
			if !v.Array {
				meta[name] = v.String()
			}
		}
	}
	for k, v := range meta {
		if w.written[k] {
			continue
		}
		w.written[k] = true
		if _, err := w.tx.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}

	w.logger.Debug("libworld: writing tiles")
	if err := world.Tiles.VisitTiles(w.WriteTile); err != nil {
		return err
	}

	w.logger.Debug("libworld: writing objects")
	for i := range world.Chests {
		if err := w.WriteChest(&world.Chests[i]); err != nil {
			return err
		}
	}
	for i := range world.Signs {
		if err := w.WriteSign(&world.Signs[i]); err != nil {
			return err
		}
	}
	for i := range world.NPCs {
		if err := w.WriteNPC(&world.NPCs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Finalize commits the written rows and builds the tile index.
func (w *Writer) Finalize() error {
	if err := w.tx.Commit(); err != nil {
		return err
	}
	w.tx = nil

	w.logger.Debug("libworld: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (code)")

	w.logger.Debug("libworld: done!")
	return err
}
