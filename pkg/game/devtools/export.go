package devtools

import (
	"encoding/json"
	"fmt"
	"io"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
)

// ExportedEdge is a corridor between two rooms, identified by room id
type ExportedEdge struct {
	RoomA    int `json:"room_a"`
	RoomB    int `json:"room_b"`
	Distance int `json:"distance"`
}

// ExportedLayout is the JSON document handed to external hosts
type ExportedLayout struct {
	ID     string             `json:"id"`
	Seed   int64              `json:"seed"`
	Config generator.Config   `json:"config"`
	Rooms  []generator.Center `json:"rooms"`
	Tree   []ExportedEdge     `json:"tree"`
	Extra  []ExportedEdge     `json:"extra"`
	Grid   [][]world.Cell     `json:"grid"`
}

// NewExport converts a layout into its JSON document form
func NewExport(l *generator.Layout) ExportedLayout {
	return ExportedLayout{
		ID:     l.ID.String(),
		Seed:   l.Seed,
		Config: l.Config,
		Rooms:  l.Corridors.Centers,
		Tree:   exportEdges(l.Corridors.Tree, l.Corridors.Centers),
		Extra:  exportEdges(l.Corridors.Extra, l.Corridors.Centers),
		Grid:   l.Grid().Cells(),
	}
}

func exportEdges(edges []generator.Edge, centers []generator.Center) []ExportedEdge {
	out := make([]ExportedEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, ExportedEdge{RoomA: centers[e.A].RoomID, RoomB: centers[e.B].RoomID, Distance: e.Distance})
	}
	return out
}

// WriteJSON encodes the layout as indented JSON
func WriteJSON(w io.Writer, l *generator.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(l))
}

// ExportLayoutToFile writes WriteJSON output to path and returns the
// absolute path written
func ExportLayoutToFile(path string, l *generator.Layout) (string, error) {
	if l == nil {
		return "", fmt.Errorf("no layout")
	}
	return writeFile(path, func(w io.Writer) error {
		return WriteJSON(w, l)
	})
}

// ReadGridJSON decodes the grid of a document written by WriteJSON
func ReadGridJSON(r io.Reader) (*world.Grid, error) {
	var doc ExportedLayout
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return world.FromCells(doc.Grid)
}
