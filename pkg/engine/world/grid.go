package world

import (
	"fmt"
	"slices"
)

// Rect is an axis-aligned rectangle of cells with its origin at the top-left
type Rect struct {
	X, Y          int
	Width, Height int
}

// Area returns the number of cells covered by the rectangle
func (r Rect) Area() int {
	return r.Width * r.Height
}

// String returns the rectangle as "WxH@(x,y)"
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.X, r.Y)
}

// Grid represents the level map as a square, row-major matrix of cells.
// cells[y][x] addresses row y, column x.
type Grid struct {
	cells [][]Cell
	size  int
}

// NewGrid creates a size x size grid with every cell set to Wall
func NewGrid(size int) *Grid {
	g := &Grid{}
	g.Build(size)
	return g
}

// Build initializes the grid with the given side length
func (g *Grid) Build(size int) {
	if size <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.size = size
	g.cells = make([][]Cell, size)
	for y := range g.cells {
		g.cells[y] = make([]Cell, size)
	}
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

// IsValidPosition checks if an x/y position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// At returns the cell at column x, row y. Out of bounds positions read as Wall.
func (g *Grid) At(x, y int) Cell {
	if !g.IsValidPosition(x, y) {
		return Cell{}
	}
	return g.cells[y][x]
}

// Set stores c at column x, row y. Returns false if out of bounds.
func (g *Grid) Set(x, y int, c Cell) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	g.cells[y][x] = c
	return true
}

// FillRect sets every in-bounds cell of r to c
func (g *Grid) FillRect(r Rect, c Cell) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			g.Set(x, y, c)
		}
	}
}

// RectHasKind reports whether any in-bounds cell of r has the given kind
func (g *Grid) RectHasKind(r Rect, kind CellKind) bool {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if g.IsValidPosition(x, y) && g.cells[y][x].Kind == kind {
				return true
			}
		}
	}
	return false
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(x, y int, cell Cell)) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			fn(x, y, g.cells[y][x])
		}
	}
}

// CountKind returns the number of cells of the given kind
func (g *Grid) CountKind(kind CellKind) int {
	n := 0
	g.ForEachCell(func(x, y int, cell Cell) {
		if cell.Kind == kind {
			n++
		}
	})
	return n
}

// RoomIDs returns the distinct ids carried by Room cells, ascending
func (g *Grid) RoomIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	g.ForEachCell(func(x, y int, cell Cell) {
		if cell.Kind == Room && !seen[cell.RoomID] {
			seen[cell.RoomID] = true
			ids = append(ids, cell.RoomID)
		}
	})
	slices.Sort(ids)
	return ids
}

// Clone returns a deep copy that shares no storage with g
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, cells: make([][]Cell, g.size)}
	for y := range g.cells {
		c.cells[y] = slices.Clone(g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same size and identical cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for y := range g.cells {
		if !slices.Equal(g.cells[y], other.cells[y]) {
			return false
		}
	}
	return true
}

// Cells returns a copy of the cell matrix, indexed [y][x]
func (g *Grid) Cells() [][]Cell {
	return g.Clone().cells
}

// FromCells builds a grid from a square [y][x] matrix.
// Returns an error if the matrix is empty, not square or holds an unknown kind.
func FromCells(cells [][]Cell) (*Grid, error) {
	size := len(cells)
	if size == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	g := NewGrid(size)
	for y, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), size)
		}
		for x, cell := range row {
			if !cell.Kind.IsValid() {
				return nil, fmt.Errorf("cell (%d,%d) has invalid kind %d", x, y, cell.Kind)
			}
			g.cells[y][x] = cell
		}
	}
	return g, nil
}
