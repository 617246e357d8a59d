// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based layout.
package world

import "fmt"

// CellKind is the type of a single grid cell
type CellKind uint8

// Cell kinds. The zero value is Wall so a zeroed Cell is solid rock.
const (
	Wall CellKind = iota
	Room
	Hallway
)

// AllKinds returns every cell kind in declaration order
func AllKinds() []CellKind {
	return []CellKind{Wall, Room, Hallway}
}

// String returns the lower-case name of the kind
func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Room:
		return "room"
	case Hallway:
		return "hallway"
	default:
		return "unknown"
	}
}

// IsValid returns true if k is one of the declared kinds
func (k CellKind) IsValid() bool {
	return k <= Hallway
}

// IsWalkable returns true for rooms and hallways
func (k CellKind) IsWalkable() bool {
	return k == Room || k == Hallway
}

// MarshalText implements encoding.TextMarshaler
func (k CellKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid cell kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *CellKind) UnmarshalText(text []byte) error {
	for _, kind := range AllKinds() {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown cell kind %q", text)
}

// Cell represents a single cell/tile in the grid.
// RoomID and RoomSize only mean something when Kind is Room.
type Cell struct {
	Kind     CellKind `json:"cell_type"`
	RoomID   int      `json:"room_id"`
	IsMerged bool     `json:"is_merged"`
	RoomSize int      `json:"room_size"`
}

// NewRoomCell creates a room cell belonging to room id with the given area
func NewRoomCell(id, size int) Cell {
	return Cell{
		Kind:     Room,
		RoomID:   id,
		RoomSize: size,
	}
}

// HallwayCell returns a corridor cell with no room data
func HallwayCell() Cell {
	return Cell{Kind: Hallway}
}

// IsRoom returns true if the cell is part of a room
func (c Cell) IsRoom() bool {
	return c.Kind == Room
}

// IsWalkable returns true if the cell is a room or hallway
func (c Cell) IsWalkable() bool {
	return c.Kind.IsWalkable()
}
