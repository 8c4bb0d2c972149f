package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"slices"

	"github.com/eak1mov/go-libworld/wld"
	"github.com/google/subcommands"
)

type killsCmd struct {
	worldFlags
}

func (c *killsCmd) Name() string     { return "kills" }
func (c *killsCmd) Synopsis() string { return "print kill counts per creature" }
func (c *killsCmd) Usage() string {
	return "wldutils kills -i <path> -d <dir>\n"
}

func (c *killsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := c.open()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	kills := s.world.Kills(s.reg)
	slices.SortStableFunc(kills, func(a, b wld.Kill) int { return cmp.Compare(b.Count, a.Count) })
	for _, kill := range kills {
		if kill.Count > 0 {
			fmt.Printf("%8d  %s\n", kill.Count, kill.Title)
		}
	}

	return subcommands.ExitSuccess
}
