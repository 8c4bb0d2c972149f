// Package store exports decoded worlds into SQLite databases and reads them back.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// Reader implements tile.Reader and tile.Visitor over an exported world.
type Reader struct {
	db    *sql.DB
	stmt  *sql.Stmt
	coder *spec.TileCoder

	width, height int
}

// NewReader opens the database at filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	r := &Reader{db: db}
	if err := r.readSize(); err != nil {
		db.Close()
		return nil, err
	}
	r.coder = spec.NewTileCoder(r.width, r.height)

	r.stmt, err = db.Prepare(`SELECT type, wall, liquid, color, wall_color, slope, flags, u, v, wall_u, wall_v
		FROM tiles WHERE code = ?`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

func (r *Reader) readSize() error {
	metadata, err := r.ReadMetadata()
	if err != nil {
		return err
	}
	if r.width, err = strconv.Atoi(metadata["width"]); err != nil {
		return fmt.Errorf("%w: bad width: %w", spec.ErrFormat, err)
	}
	if r.height, err = strconv.Atoi(metadata["height"]); err != nil {
		return fmt.Errorf("%w: bad height: %w", spec.ErrFormat, err)
	}
	return nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) Size() (int, int) {
	return r.width, r.height
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTile(s scanner, t *tile.Tile) error {
	return s.Scan(
		&t.Type, &t.Wall, &t.Liquid, &t.Color, &t.WallColor, &t.Slope, &t.Flags,
		&t.UV.U, &t.UV.V, &t.WallUV.U, &t.WallUV.V,
	)
}

// ReadTile returns the tile at pos. Positions without a stored row are empty.
func (r *Reader) ReadTile(pos tile.Pos) (tile.Tile, error) {
	t := emptyTile
	if err := scanTile(r.stmt.QueryRow(r.coder.Encode(pos)), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emptyTile, nil
		}
		return tile.Tile{}, err
	}
	return t, nil
}

// At returns the tile at x, y, or nil outside the world or on a database error.
func (r *Reader) At(x, y int) *tile.Tile {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return nil
	}
	t, err := r.ReadTile(tile.Pos{X: x, Y: y})
	if err != nil {
		return nil
	}
	return &t
}

// VisitTiles visits the stored tiles in hilbert order. Empty tiles are not visited.
func (r *Reader) VisitTiles(visitor func(tile.Pos, *tile.Tile) error) error {
	rows, err := r.db.Query(`SELECT code, type, wall, liquid, color, wall_color, slope, flags, u, v, wall_u, wall_v
		FROM tiles ORDER BY code`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var code uint64
		var t tile.Tile

		err := rows.Scan(
			&code,
			&t.Type, &t.Wall, &t.Liquid, &t.Color, &t.WallColor, &t.Slope, &t.Flags,
			&t.UV.U, &t.UV.V, &t.WallUV.U, &t.WallUV.V,
		)
		if err != nil {
			return err
		}

		if err := visitor(r.coder.Decode(code), &t); err != nil {
			return err
		}
	}

	return rows.Err()
}

// ReadGrid loads all tiles into memory.
func (r *Reader) ReadGrid() (*tile.Grid, error) {
	g := tile.NewGrid(r.width, r.height)
	err := r.VisitTiles(func(pos tile.Pos, t *tile.Tile) error {
		dst := g.At(pos.X, pos.Y)
		if dst == nil {
			return fmt.Errorf("%w: tile %v outside %dx%d", spec.ErrFormat, pos, r.width, r.height)
		}
		*dst = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Reader) ReadChests() ([]wld.Chest, error) {
	rows, err := r.db.Query("SELECT id, x, y, name FROM chests ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chests []wld.Chest
	index := make(map[int]int)
	for rows.Next() {
		var id int
		var chest wld.Chest
		if err := rows.Scan(&id, &chest.X, &chest.Y, &chest.Name); err != nil {
			return nil, err
		}
		index[id] = len(chests)
		chests = append(chests, chest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.db.Query("SELECT chest, item, stack, prefix, name, prefix_name FROM items ORDER BY chest, slot")
	if err != nil {
		return nil, err
	}
	defer items.Close()

	for items.Next() {
		var id int
		var item wld.Item
		if err := items.Scan(&id, &item.ID, &item.Stack, &item.Prefix, &item.Name, &item.PrefixName); err != nil {
			return nil, err
		}
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: item of unknown chest %d", spec.ErrFormat, id)
		}
		chests[i].Items = append(chests[i].Items, item)
	}

	return chests, items.Err()
}

func (r *Reader) ReadSigns() ([]wld.Sign, error) {
	rows, err := r.db.Query("SELECT x, y, text FROM signs ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signs []wld.Sign
	for rows.Next() {
		var sign wld.Sign
		if err := rows.Scan(&sign.X, &sign.Y, &sign.Text); err != nil {
			return nil, err
		}
		signs = append(signs, sign)
	}
	return signs, rows.Err()
}

func (r *Reader) ReadNPCs() ([]wld.NPC, error) {
	rows, err := r.db.Query("SELECT kind, title, name, x, y, homeless, home_x, home_y FROM npcs ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var npcs []wld.NPC
	for rows.Next() {
		var npc wld.NPC
		err := rows.Scan(&npc.Kind, &npc.Title, &npc.Name, &npc.X, &npc.Y, &npc.Homeless, &npc.HomeX, &npc.HomeY)
		if err != nil {
			return nil, err
		}
		npcs = append(npcs, npc)
	}
	return npcs, rows.Err()
}
