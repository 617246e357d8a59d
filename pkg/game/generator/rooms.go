package generator

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"dungeongen/pkg/engine/world"
)

// PlaceRooms builds a wall-filled grid and scatters up to cfg.RoomCount
// rectangular rooms on it by rejection sampling. A candidate is rejected if it
// overlaps an existing room or if its origin lies closer than cfg.MinDistance
// to any existing room cell. A room that finds no valid spot within
// cfg.MaxAttempts tries is skipped, so the result may hold fewer rooms.
func PlaceRooms(rng *rand.Rand, cfg Config, logger *log.Logger) (*world.Grid, error) {
	if err := cfg.validatePlacement(); err != nil {
		return nil, err
	}
	logger = orDiscard(logger)

	grid := world.NewGrid(cfg.GridSize)
	minSize, maxSize := cfg.RoomSizeBounds()
	logger.Info("Room size bounds", "min_room_size", minSize, "max_room_size", maxSize)

	placed := 0
	for roomID := 0; roomID < cfg.RoomCount; roomID++ {
		rect, attempts, ok := findRoomSpot(rng, grid, cfg, minSize, maxSize)
		if !ok {
			logger.Debug("Room skipped, attempt budget exhausted", "room_id", roomID, "attempts", attempts)
			continue
		}
		grid.FillRect(rect, world.NewRoomCell(roomID, rect.Area()))
		placed++
		logger.Debug("Room placed", "room_id", roomID, "rect", rect, "attempts", attempts)
	}

	logger.Info("Rooms placed", "placed", placed, "requested", cfg.RoomCount)
	return grid, nil
}

// findRoomSpot samples candidate rectangles until one passes both checks or
// the attempt budget runs out
func findRoomSpot(rng *rand.Rand, grid *world.Grid, cfg Config, minSize, maxSize int) (world.Rect, int, bool) {
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		width := sampleSide(rng, minSize, maxSize)
		height := sampleSide(rng, minSize, maxSize)
		rect := world.Rect{
			X:      rng.Intn(cfg.GridSize - width),
			Y:      rng.Intn(cfg.GridSize - height),
			Width:  width,
			Height: height,
		}

		if grid.RectHasKind(rect, world.Room) {
			continue
		}
		if tooClose(grid, rect.X, rect.Y, cfg.MinDistance) {
			continue
		}
		return rect, attempt, true
	}
	return world.Rect{}, cfg.MaxAttempts, false
}

// sampleSide draws a side length from [minSize, maxSize), or minSize when the
// range is degenerate
func sampleSide(rng *rand.Rand, minSize, maxSize int) int {
	if maxSize <= minSize {
		return minSize
	}
	return minSize + rng.Intn(maxSize-minSize)
}

// tooClose reports whether any room cell lies within minDistance of (x, y).
// Distances are Euclidean rounded down, so floor(sqrt(d2)) < m is d2 < m*m.
func tooClose(grid *world.Grid, x, y, minDistance int) bool {
	size := grid.Size()
	// Capped past the grid diagonal so the square cannot overflow.
	minDistance = min(minDistance, 2*size)
	limit := minDistance * minDistance
	for oy := 0; oy < size; oy++ {
		for ox := 0; ox < size; ox++ {
			if !grid.At(ox, oy).IsRoom() {
				continue
			}
			dx, dy := ox-x, oy-y
			if dx*dx+dy*dy < limit {
				return true
			}
		}
	}
	return false
}
