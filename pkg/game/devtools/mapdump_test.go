package devtools

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
)

func testLayout(t *testing.T) *generator.Layout {
	t.Helper()
	cfg := generator.DefaultConfig()
	cfg.GridSize = 40
	cfg.HallwayFactor = 0.2
	g, err := generator.New(cfg, generator.WithSeed(11))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return l
}

func TestWriteMapGrid(t *testing.T) {
	g := world.NewGrid(3)
	g.Set(0, 0, world.NewRoomCell(0, 1))
	g.Set(1, 0, world.HallwayCell())
	var buf bytes.Buffer
	if err := WriteMapGrid(&buf, g, &world.Point{X: 2, Y: 2}); err != nil {
		t.Fatal(err)
	}
	want := ".+#\n###\n##@\n"
	if buf.String() != want {
		t.Errorf("WriteMapGrid =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteDump_Sections(t *testing.T) {
	l := testLayout(t)
	var buf bytes.Buffer
	if err := WriteDump(&buf, l, nil); err != nil {
		t.Fatalf("WriteDump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"layout_id: " + l.ID.String(),
		"seed: 11",
		"grid_size: 40",
		"--- Map (final) ---",
		"Spanning tree edges:",
		"=== END MAP DUMP ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
	if strings.Contains(out, "start_cell:") {
		t.Error("dump has a start cell although none was given")
	}
}

func TestDumpLayoutToFile(t *testing.T) {
	l := testLayout(t)
	path := filepath.Join(t.TempDir(), "dump.txt")
	written, err := DumpLayoutToFile(path, l, &world.Point{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("DumpLayoutToFile: %v", err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "start_cell: 1,1") {
		t.Error("dump file missing start cell")
	}
	if _, err := DumpLayoutToFile(path, nil, nil); err == nil {
		t.Error("DumpLayoutToFile(nil layout) returned no error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	l := testLayout(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, l); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"cell_type": "hallway"`) {
		t.Error("JSON has no hallway cells")
	}
	grid, err := ReadGridJSON(&buf)
	if err != nil {
		t.Fatalf("ReadGridJSON: %v", err)
	}
	if !grid.Equal(l.Grid()) {
		t.Error("grid changed across JSON round trip")
	}
	if _, err := ReadGridJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadGridJSON accepted truncated input")
	}
}

func TestExportLayoutToFile(t *testing.T) {
	l := testLayout(t)
	path := filepath.Join(t.TempDir(), "layout.json")
	written, err := ExportLayoutToFile(path, l)
	if err != nil {
		t.Fatalf("ExportLayoutToFile: %v", err)
	}
	f, err := os.Open(written)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	grid, err := ReadGridJSON(f)
	if err != nil {
		t.Fatalf("ReadGridJSON: %v", err)
	}
	if !grid.Equal(l.Grid()) {
		t.Error("exported grid differs from the layout")
	}

	if _, err := ExportLayoutToFile(filepath.Join(t.TempDir(), "missing", "layout.json"), l); err == nil {
		t.Error("ExportLayoutToFile into a missing directory returned no error")
	}
	if _, err := ExportLayoutToFile(path, nil); err == nil {
		t.Error("ExportLayoutToFile(nil layout) returned no error")
	}
}

func TestWriteFile_ReportsWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.txt")
	boom := errors.New("boom")
	written, err := writeFile(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, "partial"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("writeFile error = %v, want %v", err, boom)
	}
	if written == "" {
		t.Error("writeFile did not report the path it created")
	}
}
