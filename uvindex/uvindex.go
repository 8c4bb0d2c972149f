// Package uvindex stores resolved tile appearance as flat binary records.
package uvindex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/eak1mov/go-libworld/autotile"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// Item is the resolved appearance of one tile. It is a fixed-size
// little-endian record so that other tools can read the index directly.
type Item struct {
	X     uint32
	Y     uint32
	Type  uint16
	Wall  uint8
	Blend uint8
	U     int16
	V     int16
	WallU int16
	WallV int16
}

func (i Item) Pos() tile.Pos {
	return tile.Pos{X: int(i.X), Y: int(i.Y)}
}

func (i Item) UV() tile.UV {
	return tile.UV{U: i.U, V: i.V}
}

func (i Item) WallUV() tile.UV {
	return tile.UV{U: i.WallU, V: i.WallV}
}

// Collect resolves every tile of g that has a block or a wall, in row-major order.
func Collect(g tile.Reader, engine *autotile.Engine) []Item {
	width, height := g.Size()
	return CollectRect(g, engine.NewCache(g), 0, 0, width, height)
}

// CollectRect is Collect limited to [x0,x1)×[y0,y1). The cache must belong
// to g; it may be shared between concurrent calls.
func CollectRect(g tile.Reader, cache *autotile.Cache, x0, y0, x1, y1 int) []Item {
	var items []Item
	for pos, t := range tile.IterRect(g, x0, y0, x1, y1) {
		if !t.Active() && t.Wall == 0 {
			continue
		}
		res := cache.Tile(pos.X, pos.Y)
		wall := cache.Wall(pos.X, pos.Y)
		items = append(items, Item{
			X:     uint32(pos.X),
			Y:     uint32(pos.Y),
			Type:  t.Type,
			Wall:  t.Wall,
			Blend: res.Blend,
			U:     res.UV.U,
			V:     res.UV.V,
			WallU: wall.U,
			WallV: wall.V,
		})
	}
	return items
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	size := binary.Size(Item{})
	if len(indexData)%size != 0 {
		return nil, fmt.Errorf("%w: index length %d isn't a multiple of %d", spec.ErrFormat, len(indexData), size)
	}
	items := make([]Item, len(indexData)/size)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
