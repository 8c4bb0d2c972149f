package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-libworld/uvindex"
	"github.com/google/subcommands"
)

type uvdumpCmd struct {
	worldFlags
	outputPath string
	seed       uint64
}

func (c *uvdumpCmd) Name() string     { return "uvdump" }
func (c *uvdumpCmd) Synopsis() string { return "dump resolved atlas coordinates of every tile" }
func (c *uvdumpCmd) Usage() string {
	return "wldutils uvdump -i <path> [-o <path>] [-d <dir>]\n"
}
func (c *uvdumpCmd) SetFlags(f *flag.FlagSet) {
	c.worldFlags.SetFlags(f)
	f.StringVar(&c.outputPath, "o", "", "Output index file path (text on stdout if empty)")
	f.Uint64Var(&c.seed, "seed", 0, "Variant seed")
}

func (c *uvdumpCmd) writeIndex(items []uvindex.Item) error {
	file, err := os.Create(c.outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := uvindex.WriteAll(items, writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *uvdumpCmd) writeText(s *session, items []uvindex.Item) error {
	out := bufio.NewWriter(os.Stdout)
	for _, item := range items {
		name := "-"
		if uv := item.UV(); uv.Resolved() {
			name = s.reg.Resolve(item.Type, int(uv.U), int(uv.V)).Name
		}
		_, err := fmt.Fprintf(out, "%d\t%d\t%s\t%d\t%d\t%d\t%d\t%d\n",
			item.X, item.Y, name, item.U, item.V, item.WallU, item.WallV, item.Blend)
		if err != nil {
			return err
		}
	}
	return out.Flush()
}

func (c *uvdumpCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := c.open()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	items := uvindex.Collect(s.world.Tiles, s.engine(c.seed))
	if c.outputPath != "" {
		err = c.writeIndex(items)
	} else {
		err = c.writeText(s, items)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
