// Package generator builds level layouts: rooms scattered by rejection
// sampling, then linked by corridors along a minimum spanning tree.
package generator

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"dungeongen/pkg/engine/world"
)

// GenerateWalls returns a fresh grid with up to cfg.RoomCount rooms placed
func GenerateWalls(rng *rand.Rand, cfg Config, logger *log.Logger) (*world.Grid, error) {
	return PlaceRooms(rng, cfg, logger)
}

// GenerateHallways returns a copy of grid with corridors added between its
// rooms. Any grid with correctly tagged room cells is accepted, including one
// with no rooms at all.
func GenerateHallways(rng *rand.Rand, grid *world.Grid, cfg Config) (*world.Grid, error) {
	if err := cfg.validateHallways(); err != nil {
		return nil, err
	}
	return ConnectRooms(rng, grid, cfg.RoomCount, cfg.HallwayFactor, cfg.HallwayWidth).Grid, nil
}

// Layout is the result of a full generation run
type Layout struct {
	ID     uuid.UUID
	Seed   int64
	Config Config

	// Walls is the grid after room placement, before corridors
	Walls     *world.Grid
	Corridors *Corridors
}

// Grid returns the finished grid
func (l *Layout) Grid() *world.Grid {
	return l.Corridors.Grid
}

// RoomCount returns the number of rooms that were actually placed
func (l *Layout) RoomCount() int {
	return len(l.Corridors.Centers)
}

// Generator runs both stages with one random source. It is not safe for
// concurrent use; give each goroutine its own Generator.
type Generator struct {
	cfg    Config
	seed   int64
	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed seeds the generator's random source. A seed of 0 picks one from the clock.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithRand makes the generator draw from rng instead of a seeded source.
// Any WithSeed value is ignored and Seed reports 0.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithLogger sets the logger used for progress messages
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New validates cfg and returns a ready Generator
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng != nil {
		// WithRand wins over WithSeed; the seed would not reproduce anything.
		g.seed = 0
	} else {
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	g.logger = orDiscard(g.logger)
	return g, nil
}

// Config returns the generator's configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// Seed returns the seed of the random source, or 0 if one was injected with WithRand
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate places rooms and connects them
func (g *Generator) Generate() (*Layout, error) {
	walls, err := GenerateWalls(g.rng, g.cfg, g.logger)
	if err != nil {
		return nil, err
	}

	corridors := ConnectRooms(g.rng, walls, g.cfg.RoomCount, g.cfg.HallwayFactor, g.cfg.HallwayWidth)
	g.logger.Info("Corridors drawn", "rooms", len(corridors.Centers), "tree_edges", len(corridors.Tree), "extra_edges", len(corridors.Extra))

	// Drawn last so the layout itself does not depend on the id.
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return nil, fmt.Errorf("layout id: %w", err)
	}

	return &Layout{
		ID:        id,
		Seed:      g.seed,
		Config:    g.cfg,
		Walls:     walls,
		Corridors: corridors,
	}, nil
}

func orDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
