// Package config loads generation settings from TOML files.
//
// A file may set any subset of the fields; missing ones keep their defaults:
//
//	seed = 42
//
//	[generator]
//	grid_size = 50
//	room_count = 12
//	hallway_factor = 0.15
//
//	[render]
//	color = true
//	locale = "en_GB"
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"dungeongen/pkg/game/generator"
)

// Render holds terminal output settings
type Render struct {
	Color      bool   `toml:"color"`
	Locale     string `toml:"locale"`
	LocalesDir string `toml:"locales_dir"`
}

// File is the root of a config file
type File struct {
	Seed      int64            `toml:"seed"`
	Generator generator.Config `toml:"generator"`
	Render    Render           `toml:"render"`
}

// Default returns the settings used when no file is given
func Default() File {
	return File{
		Generator: generator.DefaultConfig(),
		Render: Render{
			Color:      true,
			Locale:     "en_GB",
			LocalesDir: "locales",
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error so typos do
// not go unnoticed.
func Load(path string) (File, error) {
	f := Default()
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes TOML text over the defaults
func Parse(data string) (File, error) {
	f := Default()
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, err
	}
	if err := checkUndecoded(meta); err != nil {
		return File{}, err
	}
	return f, nil
}

func checkUndecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Validate checks the generator section
func (f File) Validate() error {
	return f.Generator.Validate()
}
