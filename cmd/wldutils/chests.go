package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/eak1mov/go-libworld/wld"
	"github.com/google/subcommands"
)

type chestsCmd struct {
	worldFlags
	find string
}

func (c *chestsCmd) Name() string     { return "chests" }
func (c *chestsCmd) Synopsis() string { return "list chests and their contents" }
func (c *chestsCmd) Usage() string {
	return "wldutils chests -i <path> [-find <item>] [-d <dir>]\n"
}
func (c *chestsCmd) SetFlags(f *flag.FlagSet) {
	c.worldFlags.SetFlags(f)
	f.StringVar(&c.find, "find", "", "Only list chests holding an item whose name contains this text")
}

func formatItem(item wld.Item) string {
	name := item.Name
	if name == "" {
		name = fmt.Sprintf("item %d", item.ID)
	}
	if item.PrefixName != "" {
		name = item.PrefixName + " " + name
	}
	if item.Stack > 1 {
		return fmt.Sprintf("%s x%d", name, item.Stack)
	}
	return name
}

func (c *chestsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := c.open()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	var chests []*wld.Chest
	if c.find != "" {
		chests = s.world.FindItem(c.find)
	} else {
		for i := range s.world.Chests {
			chests = append(chests, &s.world.Chests[i])
		}
	}

	for _, chest := range chests {
		items := make([]string, 0, len(chest.Items))
		for _, item := range chest.Items {
			items = append(items, formatItem(item))
		}
		title := chest.Name
		if title == "" {
			title = "chest"
		}
		fmt.Printf("%d,%d %s: %s\n", chest.X, chest.Y, title, strings.Join(items, ", "))
	}

	return subcommands.ExitSuccess
}
