package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dungeongen/pkg/engine/terminal"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/config"
	"dungeongen/pkg/game/devtools"
	"dungeongen/pkg/game/generator"
	"dungeongen/pkg/game/layout"
	"dungeongen/pkg/game/renderer/tui"
)

// ErrUnreachableRooms is returned by generate --check when a placed room
// cannot be walked to from the others.
var ErrUnreachableRooms = errors.New("layout has unreachable rooms")

type generateOptions struct {
	configPath string
	seed       int64

	gridSize       int
	rooms          int
	roomSizeFactor float64
	minDistance    int
	maxAttempts    int
	hallwayFactor  float64
	hallwayWidth   int

	dumpPath string
	jsonPath string
	check    bool
	start    bool
	noColor  bool
	quiet    bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	defaults := generator.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a layout and print it",
		Long: `Generate places rooms on an empty grid, connects them with corridors and
prints the result. Flags override values read from --config.`,
		Example: `  dungeongen generate --seed 42
  dungeongen generate --grid-size 50 --rooms 12 --hallway-factor 0.2
  dungeongen generate --config level.toml --json - --quiet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	f.Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	f.IntVar(&opts.gridSize, "grid-size", defaults.GridSize, "side length of the square grid")
	f.IntVar(&opts.rooms, "rooms", defaults.RoomCount, "number of rooms to try to place")
	f.Float64Var(&opts.roomSizeFactor, "room-size-factor", defaults.RoomSizeFactor, "room size scale in (0,1]")
	f.IntVar(&opts.minDistance, "min-distance", defaults.MinDistance, "minimum distance between a new room and existing rooms")
	f.IntVar(&opts.maxAttempts, "max-attempts", defaults.MaxAttempts, "placement attempts per room")
	f.Float64Var(&opts.hallwayFactor, "hallway-factor", defaults.HallwayFactor, "chance in [0,1] of adding each extra corridor")
	f.IntVar(&opts.hallwayWidth, "hallway-width", defaults.HallwayWidth, "corridor thickness in cells")
	f.StringVar(&opts.dumpPath, "dump", "", "write a text dump of the layout to this file")
	f.StringVar(&opts.jsonPath, "json", "", "write the layout as JSON to this file (- for stdout)")
	f.BoolVar(&opts.check, "check", false, "fail if any placed room is unreachable")
	f.BoolVar(&opts.start, "start", false, "mark a random walkable start cell")
	f.BoolVar(&opts.noColor, "no-color", false, "disable ANSI colours")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the map")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	file, err := loadSettings(cmd, opts, logger)
	if err != nil {
		return err
	}
	// Flags win over the file; the root command already loaded them.
	if opts.configPath != "" && !cmd.Flags().Changed("locale") && !cmd.Flags().Changed("locales-dir") {
		tui.LoadLocale(file.Render.LocalesDir, file.Render.Locale)
	}

	gen, err := generator.New(file.Generator, generator.WithSeed(file.Seed), generator.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("Generating", "seed", gen.Seed(), "grid_size", file.Generator.GridSize, "rooms", file.Generator.RoomCount)

	l, err := gen.Generate()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var start *world.Point
	if opts.start {
		if p, ok := layout.RandomWalkable(rand.New(rand.NewSource(l.Seed)), l.Grid()); ok {
			start = &p
		} else {
			logger.Warn("No walkable cell for a start position")
		}
	}

	out := cmd.OutOrStdout()
	jsonToStdout := opts.jsonPath == "-"

	if opts.jsonPath != "" {
		if err := writeJSON(out, opts.jsonPath, l); err != nil {
			return err
		}
	}

	unreachable := layout.UnreachableRooms(l.Walls, l.Grid())

	if !opts.quiet && !jsonToStdout {
		if !tui.FitsTerminal(l.Grid().Size()) {
			logger.Warn("Grid is wider than the terminal", "grid_size", l.Grid().Size(), "width", terminal.GetWidth())
		}
		r := tui.New(out, useColor(out, file.Render.Color && !opts.noColor))
		if err := r.RenderGrid(l.Grid(), start); err != nil {
			return err
		}
		if err := r.RenderLegend(); err != nil {
			return err
		}
		if err := r.RenderSummary(layout.Summarize(l.Grid()), file.Generator.RoomCount, unreachable); err != nil {
			return err
		}
	}

	if opts.dumpPath != "" {
		path, err := devtools.DumpLayoutToFile(opts.dumpPath, l, start)
		if err != nil {
			return fmt.Errorf("dump layout: %w", err)
		}
		logger.Info("Layout dumped", "path", path)
	}

	logger.Info("Layout ready", "id", l.ID, "seed", l.Seed, "rooms", l.RoomCount())

	if len(unreachable) > 0 {
		logger.Warn("Unreachable rooms", "ids", unreachable)
		if opts.check {
			return fmt.Errorf("%w: %v", ErrUnreachableRooms, unreachable)
		}
	}
	return nil
}

// loadSettings reads the config file, if any, and lays changed flags over it
func loadSettings(cmd *cobra.Command, opts *generateOptions, logger *log.Logger) (config.File, error) {
	file := config.Default()
	if opts.configPath != "" {
		var err error
		if file, err = config.Load(opts.configPath); err != nil {
			return config.File{}, err
		}
		logger.Debug("Config loaded", "path", opts.configPath)
	}

	flags := cmd.Flags()
	g := &file.Generator
	if flags.Changed("seed") {
		file.Seed = opts.seed
	}
	if flags.Changed("grid-size") {
		g.GridSize = opts.gridSize
	}
	if flags.Changed("rooms") {
		g.RoomCount = opts.rooms
	}
	if flags.Changed("room-size-factor") {
		g.RoomSizeFactor = opts.roomSizeFactor
	}
	if flags.Changed("min-distance") {
		g.MinDistance = opts.minDistance
	}
	if flags.Changed("max-attempts") {
		g.MaxAttempts = opts.maxAttempts
	}
	if flags.Changed("hallway-factor") {
		g.HallwayFactor = opts.hallwayFactor
	}
	if flags.Changed("hallway-width") {
		g.HallwayWidth = opts.hallwayWidth
	}

	g.RoomSizeFactor = clampFactor(logger, "room_size_factor", g.RoomSizeFactor)
	g.HallwayFactor = clampFactor(logger, "hallway_factor", g.HallwayFactor)

	if err := file.Validate(); err != nil {
		return config.File{}, err
	}
	return file, nil
}

// clampFactor pulls v into [0,1]. A room size factor of 0 is still rejected
// by validation.
func clampFactor(logger *log.Logger, name string, v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	c := min(max(v, 0), 1)
	if c != v {
		logger.Warn("Factor out of range, clamped", "name", name, "value", v, "clamped", c)
	}
	return c
}

func writeJSON(stdout io.Writer, path string, l *generator.Layout) error {
	if path == "-" {
		return devtools.WriteJSON(stdout, l)
	}
	if _, err := devtools.ExportLayoutToFile(path, l); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// useColor turns colour off for anything that is not a terminal
func useColor(out io.Writer, want bool) bool {
	if !want {
		return false
	}
	f, ok := out.(*os.File)
	return ok && terminal.IsTerminal(f)
}
