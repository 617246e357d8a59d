package tui

import (
	"bytes"
	"strings"
	"testing"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/layout"
)

func smallGrid() *world.Grid {
	g := world.NewGrid(3)
	g.Set(0, 0, world.NewRoomCell(0, 1))
	g.Set(1, 0, world.HallwayCell())
	return g
}

func TestRenderGrid_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	if err := r.RenderGrid(smallGrid(), &world.Point{X: 2, Y: 2}); err != nil {
		t.Fatal(err)
	}
	want := "..++##\n######\n####@@\n"
	if buf.String() != want {
		t.Errorf("RenderGrid =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRenderGrid_ColourKeepsLayout(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)
	if err := r.RenderGrid(smallGrid(), nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(StripColor(buf.String()), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != IconRoom+IconHallway+IconWall {
		t.Errorf("first row = %q", lines[0])
	}
}

func TestFormatText(t *testing.T) {
	r := New(&bytes.Buffer{}, false)
	got := r.FormatText("LABEL{Rooms placed}: VALUE{%d}/VALUE{%d}", 3, 10)
	if got != "Rooms placed: 3/10" {
		t.Errorf("FormatText = %q", got)
	}
	if got := r.FormatText("NOPE{x}"); !strings.HasPrefix(got, "ERROR") {
		t.Errorf("unknown markup = %q, want error text", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	stats := layout.Stats{Rooms: 4, RoomCells: 100, HallwayCells: 30, Components: 2}
	if err := r.RenderSummary(stats, 10, []int{2, 5}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Rooms placed: 4/10", "Hallway cells: 30", "Unreachable rooms: 2,5"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLegend(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, false).RenderLegend(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "## Wall   .. Room   ++ Hallway\n" {
		t.Errorf("legend = %q", got)
	}
}

func TestLoadLocale(t *testing.T) {
	const dir = "../../../../locales"
	LoadLocale(dir, "de_DE")
	t.Cleanup(func() { LoadLocale(dir, "en_GB") })

	r := New(&bytes.Buffer{}, false)
	if got := r.FormatText("LABEL{Rooms placed}: VALUE{%d}", 2); got != "Platzierte Räume: 2" {
		t.Errorf("FormatText = %q", got)
	}
	if got := r.FormatText("GT{Untranslated text}"); got != "Untranslated text" {
		t.Errorf("missing key = %q, want it unchanged", got)
	}
}
