package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

var configPath = flag.String("config", "", "Config file path (default $LIBWORLD_CONFIG)")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&killsCmd{}, "")
	subcommands.Register(&chestsCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&uvdumpCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
