package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dungeongen/pkg/game/generator"
)

func TestDefault(t *testing.T) {
	f := Default()
	if f.Generator != generator.DefaultConfig() {
		t.Errorf("Generator = %+v, want %+v", f.Generator, generator.DefaultConfig())
	}
	if f.Seed != 0 {
		t.Errorf("Seed = %d, want 0", f.Seed)
	}
	if !f.Render.Color {
		t.Error("colour should be on by default")
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	f, err := Parse(`
seed = 42

[generator]
grid_size = 50
hallway_factor = 0.25

[render]
color = false
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := generator.DefaultConfig()
	want.GridSize = 50
	want.HallwayFactor = 0.25
	if f.Generator != want {
		t.Errorf("Generator = %+v, want %+v", f.Generator, want)
	}
	if f.Seed != 42 {
		t.Errorf("Seed = %d, want 42", f.Seed)
	}
	if f.Render.Color {
		t.Error("render.color = false was not applied")
	}
	if f.Render.Locale != "en_GB" {
		t.Errorf("Locale = %q, want the default en_GB", f.Render.Locale)
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse("[generator]\nroom_cnt = 4\n")
	if err == nil || !strings.Contains(err.Error(), "generator.room_cnt") {
		t.Errorf("Parse error = %v, want it to name generator.room_cnt", err)
	}
}

func TestParse_BadSyntax(t *testing.T) {
	if _, err := Parse("[generator\n"); err == nil {
		t.Error("Parse accepted an unterminated table header")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon.toml")
	if err := os.WriteFile(path, []byte("[generator]\ngrid_size = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Generator.GridSize != 2 {
		t.Errorf("GridSize = %d, want 2", f.Generator.GridSize)
	}
	if err := f.Validate(); !errors.Is(err, generator.ErrInvalidConfiguration) {
		t.Errorf("Validate = %v, want ErrInvalidConfiguration", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of a missing file returned no error")
	}
}
