// Package autotile picks texture atlas cells for tiles and walls whose
// coordinates are not stored in the world file, from the types of their
// neighbours.
//
// Resolution is pure: it reads the grid and the registry and returns the
// result without writing to either, so an Engine is safe for concurrent use.
package autotile

import (
	"log/slog"
	"math/rand/v2"

	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/tile"
)

const DefaultMaxDepth = 8

type Engine struct {
	reg      *defs.Registry
	seed     uint64
	maxDepth int
	logger   *slog.Logger
}

type Option func(*Engine)

// WithSeed sets the seed of the variant set choice for ordinary tiles and
// walls. Equal seeds give equal results.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithMaxDepth bounds the chain of recursive directive checks. A check past
// the bound claims nothing.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func New(reg *defs.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:      reg,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is a resolved tile.
type Result struct {
	UV tile.UV
	// Blend has a Dir bit for every edge drawn as a soft transition.
	Blend uint8
}

var unresolved = Result{UV: tile.UnresolvedUV}

const (
	saltTile uint64 = iota + 1
	saltWall
)

// variantSet returns a pseudo-random set in [0, 3) keyed by position.
func (e *Engine) variantSet(x, y int, salt uint64) int {
	pcg := rand.NewPCG(e.seed^salt, uint64(uint32(x))<<32|uint64(uint32(y)))
	return int(pcg.Uint64() % 3)
}

// largeSet returns the positional variant set of large tiles in [0, 4).
func largeSet(x, y int) int {
	return phlebasPattern[y%4][x%3] - 1
}

// Fill writes resolved coordinates into every active tile and wall of g
// that has none.
func (e *Engine) Fill(g *tile.Grid) {
	e.FillRect(g, 0, 0, g.Width, g.Height)
}

// FillRect is Fill restricted to [x0,x1)×[y0,y1). Neighbours outside the
// rectangle are read but not written, so disjoint rectangles of one grid
// may be filled concurrently.
func (e *Engine) FillRect(g *tile.Grid, x0, y0, x1, y1 int) {
	for pos, t := range tile.IterRect(g, x0, y0, x1, y1) {
		if t.Active() && !t.UV.Resolved() {
			t.UV = e.ResolveTile(g, pos.X, pos.Y).UV
		}
		if t.Wall != 0 && !t.WallUV.Resolved() {
			t.WallUV = e.ResolveWall(g, pos.X, pos.Y)
		}
	}
}
