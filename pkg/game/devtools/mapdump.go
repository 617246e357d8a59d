// Package devtools provides developer tools for inspecting generated layouts.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
	"dungeongen/pkg/game/layout"
)

// DefaultDumpFilename is used when no dump path is given
const DefaultDumpFilename = "map.txt"

// Cell symbols used by text dumps
const (
	SymbolWall    = '#'
	SymbolRoom    = '.'
	SymbolHallway = '+'
	SymbolStart   = '@'
)

// CellSymbol returns the single-character symbol for a cell
func CellSymbol(cell world.Cell) rune {
	switch cell.Kind {
	case world.Room:
		return SymbolRoom
	case world.Hallway:
		return SymbolHallway
	default:
		return SymbolWall
	}
}

// WriteMapGrid writes the grid one row per line with an optional start overlay.
// Pass nil for start to draw the bare grid.
func WriteMapGrid(w io.Writer, grid *world.Grid, start *world.Point) error {
	size := grid.Size()
	line := make([]rune, 0, size)
	for y := 0; y < size; y++ {
		line = line[:0]
		for x := 0; x < size; x++ {
			if start != nil && start.X == x && start.Y == y {
				line = append(line, SymbolStart)
				continue
			}
			line = append(line, CellSymbol(grid.At(x, y)))
		}
		if _, err := fmt.Fprintln(w, string(line)); err != nil {
			return err
		}
	}
	return nil
}

// WriteDump writes a full debug dump of a layout: metadata, legend, the
// grid before and after corridors, rooms and corridor edges.
// Format is human-readable (sections, key: value, consistent structure).
func WriteDump(w io.Writer, l *generator.Layout, start *world.Point) error {
	ew := &errWriter{w: w}
	grid := l.Grid()
	cfg := l.Config
	stats := layout.Summarize(grid)

	ew.println("=== MAP DUMP DEBUG (room layout, corridors) ===")
	ew.println("")
	ew.println("--- Metadata ---")
	ew.printf("layout_id: %s\n", l.ID)
	ew.printf("seed: %d\n", l.Seed)
	ew.printf("grid_size: %d\n", cfg.GridSize)
	ew.printf("coordinate_system: x,y (0-based, y=row, x=column)\n")
	ew.printf("room_count_requested: %d\n", cfg.RoomCount)
	ew.printf("room_count_placed: %d\n", l.RoomCount())
	ew.printf("room_size_factor: %v\n", cfg.RoomSizeFactor)
	minSize, maxSize := cfg.RoomSizeBounds()
	ew.printf("room_size_range: [%d, %d)\n", minSize, maxSize)
	ew.printf("min_distance: %d\n", cfg.MinDistance)
	ew.printf("max_attempts: %d\n", cfg.MaxAttempts)
	ew.printf("hallway_factor: %v\n", cfg.HallwayFactor)
	ew.printf("hallway_width: %d\n", cfg.HallwayWidth)
	ew.printf("room_cells: %d\n", stats.RoomCells)
	ew.printf("hallway_cells: %d\n", stats.HallwayCells)
	ew.printf("wall_cells: %d\n", stats.WallCells)
	ew.printf("walkable_regions: %d\n", stats.Components)
	if start != nil {
		ew.printf("start_cell: %d,%d\n", start.X, start.Y)
	}
	ew.println("")

	ew.println("--- Legend (cell symbols) ---")
	ew.printf("%c = wall  %c = room  %c = hallway  %c = start\n", SymbolWall, SymbolRoom, SymbolHallway, SymbolStart)
	ew.println("")

	ew.println("--- Map (rooms only, before corridors) ---")
	if ew.err == nil {
		ew.err = WriteMapGrid(w, l.Walls, nil)
	}
	ew.println("")

	ew.println("--- Map (final) ---")
	if ew.err == nil {
		ew.err = WriteMapGrid(w, grid, start)
	}
	ew.println("")

	ew.println("Rooms:")
	for _, room := range layout.Rooms(l.Walls) {
		b := room.Bounds
		ew.printf("  room_id: %d x: %d y: %d width: %d height: %d room_size: %d\n", room.ID, b.X, b.Y, b.Width, b.Height, room.Size)
	}
	ew.println("")

	ew.println("Centroids:")
	for i, c := range l.Corridors.Centers {
		ew.printf("  index: %d room_id: %d x: %d y: %d\n", i, c.RoomID, c.X, c.Y)
	}
	ew.println("")

	writeEdges(ew, "Spanning tree edges:", l.Corridors.Tree, l.Corridors.Centers)
	ew.printf("  total_distance: %d\n", l.Corridors.TreeWeight())
	ew.println("")
	writeEdges(ew, "Extra edges:", l.Corridors.Extra, l.Corridors.Centers)
	ew.println("")

	ew.println("=== END MAP DUMP ===")
	return ew.err
}

func writeEdges(ew *errWriter, title string, edges []generator.Edge, centers []generator.Center) {
	ew.println(title)
	if len(edges) == 0 {
		ew.println("  (none)")
		return
	}
	for _, e := range edges {
		ew.printf("  room_a: %d room_b: %d distance: %d\n", centers[e.A].RoomID, centers[e.B].RoomID, e.Distance)
	}
}

// DumpLayoutToFile writes WriteDump output to path (DefaultDumpFilename when
// empty) and returns the absolute path written.
func DumpLayoutToFile(path string, l *generator.Layout, start *world.Point) (string, error) {
	if l == nil {
		return "", fmt.Errorf("no layout")
	}
	if path == "" {
		path = DefaultDumpFilename
	}
	return writeFile(path, func(w io.Writer) error {
		return WriteDump(w, l, start)
	})
}

// writeFile creates path, fills it with write, then syncs and closes it.
// The first error wins, including one from Close.
func writeFile(path string, write func(io.Writer) error) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}

	err = write(f)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return absPath, err
}

// errWriter remembers the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
