package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libworld/autotile"
	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/internal/config"
	"github.com/eak1mov/go-libworld/wld"
	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/schollz/progressbar/v3"
)

// worldFlags are shared by every command that reads a world file. Non-empty
// flags override the config file.
type worldFlags struct {
	inputPath   string
	definitions string
	schema      string
	player      string
	logLevel    string
}

func (f *worldFlags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.inputPath, "i", "", "Input world file path")
	fs.StringVar(&f.definitions, "d", "", "Definitions directory")
	fs.StringVar(&f.schema, "schema", "", "Header schema file")
	fs.StringVar(&f.player, "p", "", "Player file revealing explored tiles")
	fs.StringVar(&f.logLevel, "log", "", "Log level (debug, info, warn, error)")
}

type session struct {
	cfg    *config.Config
	logger *slog.Logger
	reg    *defs.Registry
	world  *wld.World
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}

func (f *worldFlags) open() (*session, error) {
	if f.inputPath == "" {
		return nil, errors.New("missing input path")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	override(&cfg.Definitions, f.definitions)
	override(&cfg.Schema, f.schema)
	override(&cfg.Player, f.player)
	override(&cfg.LogLevel, f.logLevel)

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}

	opts := []wld.Option{wld.WithLogger(s.logger)}
	if cfg.Definitions != "" {
		s.reg, err = defs.LoadDir(cfg.Definitions, defs.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		opts = append(opts, wld.WithRegistry(s.reg))
	}
	if cfg.Schema != "" {
		data, err := os.ReadFile(cfg.Schema)
		if err != nil {
			return nil, err
		}
		schema, err := spec.ParseSchema(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, wld.WithSchema(schema))
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("decoding"),
		progressbar.OptionSetWriter(os.Stderr))
	opts = append(opts, wld.WithProgress(func(percent int) { bar.Set(percent) }))

	s.world, err = wld.ReadFile(f.inputPath, opts...)
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}

	if cfg.Player != "" {
		if err := wld.ReadPlayerMap(s.world, cfg.Player); err != nil {
			return nil, err
		}
	}

	if s.reg == nil {
		s.reg = defs.New(defs.WithLogger(s.logger))
	}
	return s, nil
}

func (s *session) engine(seed uint64) *autotile.Engine {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	return autotile.New(s.reg, autotile.WithSeed(seed), autotile.WithLogger(s.logger))
}
