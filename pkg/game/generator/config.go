package generator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned when generation parameters cannot
// produce a valid sampling range. Use errors.Is to test for it.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Default tunables
const (
	DefaultGridSize       = 70
	DefaultRoomCount      = 10
	DefaultRoomSizeFactor = 1.0
	DefaultMinDistance    = 5
	DefaultMaxAttempts    = 1000
	DefaultHallwayFactor  = 0.0
	DefaultHallwayWidth   = 2
)

// Hard floor on room side length
const minRoomSide = 3

// Config holds every tunable of a generation run
type Config struct {
	GridSize       int     `toml:"grid_size" json:"grid_size"`
	RoomCount      int     `toml:"room_count" json:"room_count"`
	RoomSizeFactor float64 `toml:"room_size_factor" json:"room_size_factor"`
	MinDistance    int     `toml:"min_distance" json:"min_distance"`
	MaxAttempts    int     `toml:"max_attempts" json:"max_attempts"`
	HallwayFactor  float64 `toml:"hallway_factor" json:"hallway_factor"`
	HallwayWidth   int     `toml:"hallway_width" json:"hallway_width"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		GridSize:       DefaultGridSize,
		RoomCount:      DefaultRoomCount,
		RoomSizeFactor: DefaultRoomSizeFactor,
		MinDistance:    DefaultMinDistance,
		MaxAttempts:    DefaultMaxAttempts,
		HallwayFactor:  DefaultHallwayFactor,
		HallwayWidth:   DefaultHallwayWidth,
	}
}

// RoomSizeBounds returns the half-open side length range [min, max) rooms are
// sampled from. When min == max every room side is exactly min.
func (c Config) RoomSizeBounds() (minSize, maxSize int) {
	minSize = max(minRoomSide, int(math.Floor(float64(c.GridSize)*0.1*c.RoomSizeFactor)))
	maxSize = max(minSize, int(math.Floor(float64(c.GridSize)*0.5*c.RoomSizeFactor)))
	return minSize, maxSize
}

// largestSide is the biggest side length sampleSide can return
func (c Config) largestSide() int {
	minSize, maxSize := c.RoomSizeBounds()
	if maxSize > minSize {
		return maxSize - 1
	}
	return minSize
}

// Validate checks the room placement and corridor parameters
func (c Config) Validate() error {
	if err := c.validatePlacement(); err != nil {
		return err
	}
	return c.validateHallways()
}

func (c Config) validatePlacement() error {
	switch {
	case c.GridSize < 1:
		return fmt.Errorf("%w: grid size %d must be positive", ErrInvalidConfiguration, c.GridSize)
	case c.RoomCount < 1:
		return fmt.Errorf("%w: room count %d must be positive", ErrInvalidConfiguration, c.RoomCount)
	case math.IsNaN(c.RoomSizeFactor) || c.RoomSizeFactor <= 0 || c.RoomSizeFactor > 1:
		return fmt.Errorf("%w: room size factor %v must be in (0, 1]", ErrInvalidConfiguration, c.RoomSizeFactor)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min distance %d must not be negative", ErrInvalidConfiguration, c.MinDistance)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts %d must be positive", ErrInvalidConfiguration, c.MaxAttempts)
	}

	// The origin is sampled from [0, GridSize-side), which must not be empty.
	if side := c.largestSide(); side >= c.GridSize {
		return fmt.Errorf("%w: grid size %d cannot fit rooms with sides up to %d", ErrInvalidConfiguration, c.GridSize, side)
	}
	return nil
}

func (c Config) validateHallways() error {
	switch {
	case c.RoomCount < 0:
		return fmt.Errorf("%w: room count %d must not be negative", ErrInvalidConfiguration, c.RoomCount)
	case math.IsNaN(c.HallwayFactor) || c.HallwayFactor < 0 || c.HallwayFactor > 1:
		return fmt.Errorf("%w: hallway factor %v must be in [0, 1]", ErrInvalidConfiguration, c.HallwayFactor)
	case c.HallwayWidth < 1:
		return fmt.Errorf("%w: hallway width %d must be positive", ErrInvalidConfiguration, c.HallwayWidth)
	}
	return nil
}
