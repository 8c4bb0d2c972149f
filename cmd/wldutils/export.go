package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-libworld/chunks"
	"github.com/eak1mov/go-libworld/store"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type exportCmd struct {
	worldFlags
	outputFormat string
	outputPath   string
	compression  string
	chunkSize    int
	workers      int
	seed         uint64
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "export resolved world to sqlite or chunk directory" }
func (c *exportCmd) Usage() string {
	return "wldutils export -i <path> -o <path> [-of <format>] [-d <dir>]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.worldFlags.SetFlags(f)
	f.StringVar(&c.outputPath, "o", "", "Output path (file for sqlite, pattern with {x} and {y} for chunks)")
	f.StringVar(&c.outputFormat, "of", "", "Output format (sqlite, chunks)")
	f.StringVar(&c.compression, "c", "", "Chunk compression (none, gzip, zstd)")
	f.IntVar(&c.chunkSize, "chunk", 0, "Chunk size in tiles")
	f.IntVar(&c.workers, "workers", 0, "Number of chunks resolved at once")
	f.Uint64Var(&c.seed, "seed", 0, "Variant seed")
}

func (c *exportCmd) exportSqlite(s *session) error {
	s.engine(c.seed).Fill(s.world.Tiles)

	width, height := s.world.Size()
	writer, err := store.NewWriter(c.outputPath, width, height,
		store.WithLogger(s.logger),
		store.WithMetadata(map[string]string{"source": c.inputPath}))
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteWorld(s.world); err != nil {
		return err
	}
	return writer.Finalize()
}

func (c *exportCmd) exportChunks(ctx context.Context, s *session) error {
	compression, err := parseCompression(c.compression)
	if err != nil {
		return err
	}
	writer, err := chunks.NewWriter(c.outputPath, chunks.WithCompression(compression))
	if err != nil {
		return err
	}

	opts := []chunks.ExportOption{chunks.WithLogger(s.logger)}
	if size := cmp.Or(c.chunkSize, s.cfg.ChunkSize); size > 0 {
		opts = append(opts, chunks.WithChunkSize(size))
	}
	if workers := cmp.Or(c.workers, s.cfg.Workers); workers > 0 {
		opts = append(opts, chunks.WithWorkers(workers))
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr))
	opts = append(opts, chunks.WithProgress(func(_, _ int) { bar.Add(1) }))

	err = chunks.Export(ctx, s.world.Tiles, s.engine(c.seed), writer, opts...)
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	return err
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	format := deduceFormat(c.outputFormat, c.outputPath)
	if format != "sqlite" && format != "chunks" {
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitFailure
	}

	s, err := c.open()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	switch format {
	case "sqlite":
		err = c.exportSqlite(s)
	case "chunks":
		err = c.exportChunks(ctx, s)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
