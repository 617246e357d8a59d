// Package layout inspects finished grids: which rooms exist, whether they
// are all reachable from each other, and where a host can drop a start position.
package layout

import (
	"math/rand"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"dungeongen/pkg/engine/world"
)

// RoomInfo describes one room as it appears on a grid
type RoomInfo struct {
	ID     int
	Bounds world.Rect // bounding box of the room's cells
	Cells  int        // number of cells still tagged Room
	Size   int        // area recorded on the cells when the room was stamped
}

// Rooms returns every room on the grid ordered by id. Rooms whose cells were
// all painted over by corridors no longer appear.
func Rooms(grid *world.Grid) []RoomInfo {
	byID := make(map[int]*RoomInfo)
	grid.ForEachCell(func(x, y int, cell world.Cell) {
		if !cell.IsRoom() {
			return
		}
		info, ok := byID[cell.RoomID]
		if !ok {
			info = &RoomInfo{ID: cell.RoomID, Bounds: world.Rect{X: x, Y: y, Width: 1, Height: 1}, Size: cell.RoomSize}
			byID[cell.RoomID] = info
		}
		b := info.Bounds
		x0, y0 := min(b.X, x), min(b.Y, y)
		x1, y1 := max(b.X+b.Width, x+1), max(b.Y+b.Height, y+1)
		info.Bounds = world.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
		info.Cells++
	})

	rooms := make([]RoomInfo, 0, len(byID))
	for _, info := range byID {
		rooms = append(rooms, *info)
	}
	slices.SortFunc(rooms, func(a, b RoomInfo) int { return a.ID - b.ID })
	return rooms
}

// Reachable returns every walkable position reachable from start via
// N/E/S/W steps. An unwalkable start yields an empty set.
func Reachable(grid *world.Grid, start world.Point) mapset.Set[world.Point] {
	visited := mapset.New[world.Point]()
	if !grid.At(start.X, start.Y).IsWalkable() {
		return visited
	}

	q := queue.New[world.Point]()
	q.Enqueue(start)
	visited.Put(start)
	for !q.Empty() {
		current := q.Dequeue()
		for _, n := range grid.Neighbors(current) {
			if !visited.Has(n) && grid.At(n.X, n.Y).IsWalkable() {
				visited.Put(n)
				q.Enqueue(n)
			}
		}
	}
	return visited
}

// Components returns the number of separate walkable regions on the grid
func Components(grid *world.Grid) int {
	seen := mapset.New[world.Point]()
	count := 0
	grid.ForEachCell(func(x, y int, cell world.Cell) {
		p := world.Point{X: x, Y: y}
		if !cell.IsWalkable() || seen.Has(p) {
			return
		}
		count++
		Reachable(grid, p).Each(func(r world.Point) {
			seen.Put(r)
		})
	})
	return count
}

// UnreachableRooms returns the ids of rooms in walls whose cells cannot all
// be reached on grid from the first room. walls is the grid before corridors
// were drawn, so rooms crossed by a corridor are still known.
func UnreachableRooms(walls, grid *world.Grid) []int {
	rooms := Rooms(walls)
	if len(rooms) == 0 {
		return nil
	}
	origin := rooms[0].Bounds
	reach := Reachable(grid, world.Point{X: origin.X, Y: origin.Y})

	var missing []int
	for _, room := range rooms {
		b := room.Bounds
		connected := true
		for y := b.Y; y < b.Y+b.Height && connected; y++ {
			for x := b.X; x < b.X+b.Width; x++ {
				if walls.At(x, y).IsRoom() && walls.At(x, y).RoomID == room.ID && !reach.Has(world.Point{X: x, Y: y}) {
					connected = false
					break
				}
			}
		}
		if !connected {
			missing = append(missing, room.ID)
		}
	}
	return missing
}

// RandomWalkable picks a uniformly random room or hallway cell, for use as a
// start position. ok is false when the grid has no walkable cell.
func RandomWalkable(rng *rand.Rand, grid *world.Grid) (p world.Point, ok bool) {
	var candidates []world.Point
	grid.ForEachCell(func(x, y int, cell world.Cell) {
		if cell.IsWalkable() {
			candidates = append(candidates, world.Point{X: x, Y: y})
		}
	})
	if len(candidates) == 0 {
		return world.Point{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// Stats summarises a grid for reports
type Stats struct {
	Size         int
	Rooms        int
	RoomCells    int
	HallwayCells int
	WallCells    int
	Components   int
}

// Summarize counts the cells of each kind and the walkable regions
func Summarize(grid *world.Grid) Stats {
	return Stats{
		Size:         grid.Size(),
		Rooms:        len(grid.RoomIDs()),
		RoomCells:    grid.CountKind(world.Room),
		HallwayCells: grid.CountKind(world.Hallway),
		WallCells:    grid.CountKind(world.Wall),
		Components:   Components(grid),
	}
}
