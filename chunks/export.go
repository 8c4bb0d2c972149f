package chunks

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/eak1mov/go-libworld/autotile"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/uvindex"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultChunkSize = 200
	DefaultWorkers   = 4
)

type exportConfig struct {
	ChunkSize int
	Workers   int
	Progress  func(done, total int)
	Logger    *slog.Logger
}

type ExportOption func(*exportConfig)

// WithChunkSize sets the chunk side in tiles.
func WithChunkSize(size int) ExportOption {
	return func(c *exportConfig) { c.ChunkSize = size }
}

// WithWorkers bounds the number of chunks resolved at once.
func WithWorkers(workers int) ExportOption {
	return func(c *exportConfig) { c.Workers = workers }
}

// WithProgress reports the number of finished chunks. Calls are serialized.
func WithProgress(progress func(done, total int)) ExportOption {
	return func(c *exportConfig) { c.Progress = progress }
}

func WithLogger(logger *slog.Logger) ExportOption {
	return func(c *exportConfig) { c.Logger = logger }
}

// Grid returns the ids of the chunks covering a width×height world.
func Grid(width, height, chunkSize int) []ID {
	var ids []ID
	for y := 0; y*chunkSize < height; y++ {
		for x := 0; x*chunkSize < width; x++ {
			ids = append(ids, ID{X: x, Y: y})
		}
	}
	return ids
}

// Export resolves the appearance of every chunk of g and writes it as
// uvindex records. Chunks without blocks or walls are not written.
func Export(ctx context.Context, g tile.Reader, engine *autotile.Engine, writer *Writer, opts ...ExportOption) error {
	config := exportConfig{
		ChunkSize: DefaultChunkSize,
		Workers:   DefaultWorkers,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	size := max(config.ChunkSize, 1)

	width, height := g.Size()
	ids := Grid(width, height, size)
	config.Logger.Debug("libworld: exporting chunks", "count", len(ids), "size", size)

	var mu sync.Mutex
	done := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(config.Workers, 1))
	for _, id := range ids {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			x0, y0 := id.X*size, id.Y*size
			items := uvindex.CollectRect(g, engine.NewCache(g), x0, y0, x0+size, y0+size)
			if len(items) > 0 {
				var buf bytes.Buffer
				if err := uvindex.WriteAll(items, &buf); err != nil {
					return err
				}
				if err := writer.WriteChunk(id, buf.Bytes()); err != nil {
					return err
				}
			}

			if config.Progress != nil {
				mu.Lock()
				done++
				config.Progress(done, len(ids))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writer.Finalize()
}
