package generator

import (
	"math"
	"math/rand"
	"slices"

	"dungeongen/pkg/engine/world"
)

// Center is the centroid of a room, used as a vertex of the corridor graph
type Center struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	RoomID int `json:"room_id"`
}

// Edge is a candidate corridor between Centers[A] and Centers[B]
type Edge struct {
	A, B     int
	Distance int
}

// Corridors is the outcome of a corridor synthesis pass
type Corridors struct {
	Grid    *world.Grid
	Centers []Center
	Edges   []Edge // every candidate, sorted by distance
	Tree    []Edge // minimum spanning tree edges, in the order they were drawn
	Extra   []Edge // edges drawn again by the hallway factor pass
}

// TreeWeight returns the summed distance of the spanning tree edges
func (c *Corridors) TreeWeight() int {
	total := 0
	for _, e := range c.Tree {
		total += e.Distance
	}
	return total
}

// Centroids averages the coordinates of every room cell per room id in
// [0, roomCount). Ids without any room cell produce no entry.
func Centroids(grid *world.Grid, roomCount int) []Center {
	if roomCount <= 0 {
		return nil
	}
	type sum struct{ x, y, n int }
	sums := make([]sum, roomCount)
	grid.ForEachCell(func(x, y int, cell world.Cell) {
		if !cell.IsRoom() || cell.RoomID < 0 || cell.RoomID >= roomCount {
			return
		}
		s := &sums[cell.RoomID]
		s.x += x
		s.y += y
		s.n++
	})

	var centers []Center
	for id, s := range sums {
		if s.n == 0 {
			continue
		}
		centers = append(centers, Center{X: s.x / s.n, Y: s.y / s.n, RoomID: id})
	}
	return centers
}

// CandidateEdges returns every unordered pair of centers with its Euclidean
// distance rounded down, sorted ascending. Equal distances keep pair order.
func CandidateEdges(centers []Center) []Edge {
	var edges []Edge
	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			edges = append(edges, Edge{A: i, B: j, Distance: distance(centers[i], centers[j])})
		}
	}
	slices.SortStableFunc(edges, func(a, b Edge) int {
		return a.Distance - b.Distance
	})
	return edges
}

func distance(a, b Center) int {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// ConnectRooms links the rooms of grid with corridors on a copy of it.
// A Kruskal minimum spanning tree over the room centroids guarantees every
// room is reachable; afterwards each candidate edge is drawn again with
// probability hallwayFactor to add loops. The input grid is not modified.
func ConnectRooms(rng *rand.Rand, grid *world.Grid, roomCount int, hallwayFactor float64, hallwayWidth int) *Corridors {
	out := &Corridors{Grid: grid.Clone()}
	out.Centers = Centroids(grid, roomCount)
	out.Edges = CandidateEdges(out.Centers)

	sets := newDisjointSet(len(out.Centers))
	for _, e := range out.Edges {
		if sets.union(e.A, e.B) {
			PaintCorridor(out.Grid, out.Centers[e.A], out.Centers[e.B], hallwayWidth)
			out.Tree = append(out.Tree, e)
		}
	}

	for _, e := range out.Edges {
		if rng.Float64() < hallwayFactor {
			PaintCorridor(out.Grid, out.Centers[e.A], out.Centers[e.B], hallwayWidth)
			out.Extra = append(out.Extra, e)
		}
	}

	return out
}

// PaintCorridor carves an L-shaped hallway from a to b: a horizontal run
// along a's row and a vertical run along b's column, each width cells thick
// growing up/left and clamped at the grid edge. Hallway cells replace
// whatever was there, including room cells, whose room data is cleared.
func PaintCorridor(grid *world.Grid, a, b Center, width int) {
	hallway := world.HallwayCell()

	for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
		for offset := 0; offset < width; offset++ {
			grid.Set(x, max(a.Y-offset, 0), hallway)
		}
	}

	for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
		for offset := 0; offset < width; offset++ {
			grid.Set(max(b.X-offset, 0), y, hallway)
		}
	}
}
