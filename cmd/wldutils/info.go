package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
)

type infoCmd struct {
	worldFlags
	verbose bool
	at      string
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print world summary and header values" }
func (c *infoCmd) Usage() string {
	return "wldutils info -i <path> [-v] [-at <x,y>] [-d <dir>]\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	c.worldFlags.SetFlags(f)
	f.BoolVar(&c.verbose, "v", false, "Print every header value")
	f.StringVar(&c.at, "at", "", "Describe the tile at x,y")
}

func (c *infoCmd) describeTile(s *session) error {
	var x, y int
	if _, err := fmt.Sscanf(c.at, "%d,%d", &x, &y); err != nil {
		return fmt.Errorf("invalid position %q: %w", c.at, err)
	}
	t := s.world.At(x, y)
	if t == nil {
		return fmt.Errorf("position %d,%d is outside the world", x, y)
	}

	fmt.Printf("tile %d,%d:\n", x, y)
	if t.Active() {
		uv := t.UV
		if !uv.Resolved() {
			uv = s.engine(0).ResolveTile(s.world.Tiles, x, y).UV
		}
		def := s.reg.Resolve(t.Type, int(uv.U), int(uv.V))
		fmt.Printf("  block: %s (type %d, uv %d,%d)\n", def.Name, t.Type, uv.U, uv.V)
	}
	if t.Wall != 0 {
		fmt.Printf("  wall: %s (id %d)\n", s.reg.Wall(uint16(t.Wall)).Name, t.Wall)
	}
	if t.Liquid != 0 {
		kind := "water"
		switch {
		case t.Lava():
			kind = "lava"
		case t.Honey():
			kind = "honey"
		}
		fmt.Printf("  liquid: %s %d\n", kind, t.Liquid)
	}
	fmt.Printf("  seen: %v\n", t.Seen())
	return nil
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := c.open()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	w := s.world

	width, height := w.Size()
	fmt.Printf("name: %s\n", w.Header.Str("name"))
	fmt.Printf("version: %d (revision %d)\n", w.Version, w.Revision)
	fmt.Printf("size: %dx%d\n", width, height)
	fmt.Printf("chests: %d\n", len(w.Chests))
	fmt.Printf("signs: %d\n", len(w.Signs))
	fmt.Printf("npcs: %d\n", len(w.NPCs))
	fmt.Printf("entities: %d\n", len(w.Entities))
	fmt.Printf("pressure plates: %d\n", len(w.PressurePlates))
	fmt.Printf("rooms: %d\n", len(w.Rooms))

	if c.verbose {
		for name, v := range w.Header.All() {
			fmt.Printf("  %s = %v\n", name, v)
		}
	}

	if c.at != "" {
		if err := c.describeTile(s); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
