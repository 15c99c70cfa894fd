package drive

import (
	"errors"
	"fmt"
)

// City layout (in grid cells).
const (
	DefaultHalfExtent   = 25
	DefaultBlockSpacing = 4
)

// Item placement.
const (
	ItemSize         = 0.3
	ItemPickupRadius = 0.3
	ItemHeight       = 0.15
	RespawnDelay     = 2.0 // seconds
	MaxSpawnAttempts = 10000
)

// Rain field.
const (
	RainDrops     = 50000
	RainArea      = 300.0
	RainMinY      = 50.0
	RainSpanY     = 100.0
	RainFallSpeed = 0.5
)

// Viewport defaults.
const (
	DefaultViewWidth  = 1280
	DefaultViewHeight = 720
	DefaultFovY       = 75.0 // degrees
	DefaultNear       = 0.1
	DefaultFar        = 1000.0
)

// Broadphase tree fan-out.
const (
	TreeMinChildren = 25
	TreeMaxChildren = 50
)

var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrUnknownProfile = errors.New("unknown profile")
	ErrNoFreeSpot     = errors.New("no free spot for item")
)

// Config holds the per-run settings of a Game.
type Config struct {
	Seed         uint64
	HalfExtent   int
	BlockSpacing int

	// SpawnHalfExtent bounds item placement; 0 uses the city bounds.
	SpawnHalfExtent  float64
	MaxSpawnAttempts int

	RainDrops int
	RainArea  float64

	// LinearQueries disables the broadphase tree.
	LinearQueries bool

	Profile  Profile
	Viewport Viewport
}

func DefaultConfig() Config {
	return Config{
		Seed:             1,
		HalfExtent:       DefaultHalfExtent,
		BlockSpacing:     DefaultBlockSpacing,
		MaxSpawnAttempts: MaxSpawnAttempts,
		RainDrops:        RainDrops,
		RainArea:         RainArea,
		Profile:          DefaultProfile(),
		Viewport: Viewport{
			Width:  DefaultViewWidth,
			Height: DefaultViewHeight,
			FovY:   DefaultFovY,
			Near:   DefaultNear,
			Far:    DefaultFar,
		},
	}
}

func (c Config) Validate() error {
	switch {
	case c.HalfExtent < 0:
		return fmt.Errorf("%w: half extent %d", ErrInvalidConfig, c.HalfExtent)
	case c.BlockSpacing <= 0:
		return fmt.Errorf("%w: block spacing %d", ErrInvalidConfig, c.BlockSpacing)
	case c.SpawnHalfExtent < 0:
		return fmt.Errorf("%w: spawn half extent %g", ErrInvalidConfig, c.SpawnHalfExtent)
	case c.MaxSpawnAttempts <= 0:
		return fmt.Errorf("%w: max spawn attempts %d", ErrInvalidConfig, c.MaxSpawnAttempts)
	case c.RainDrops < 0:
		return fmt.Errorf("%w: rain drops %d", ErrInvalidConfig, c.RainDrops)
	case c.RainArea <= 0 && c.RainDrops > 0:
		return fmt.Errorf("%w: rain area %g", ErrInvalidConfig, c.RainArea)
	case c.Viewport.FovY <= 0 || c.Viewport.FovY >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalidConfig, c.Viewport.FovY)
	case c.Viewport.Near <= 0 || c.Viewport.Far <= c.Viewport.Near:
		return fmt.Errorf("%w: clip planes %g..%g", ErrInvalidConfig, c.Viewport.Near, c.Viewport.Far)
	}
	return c.Profile.Validate()
}
