package world

// Direction represents a cardinal direction on the grid
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Delta returns the column and row offsets for this direction.
// Row 0 is the top of the grid, so North decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Point is a grid position
type Point struct {
	X, Y int
}

// Step returns the neighbouring point in direction d
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Neighbors returns the in-bounds orthogonal neighbours of p
func (g *Grid) Neighbors(p Point) []Point {
	var out []Point
	for _, dir := range AllDirections() {
		n := p.Step(dir)
		if g.IsValidPosition(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}
