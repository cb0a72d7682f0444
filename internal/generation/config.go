package generation

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth        = 100
	DefaultHeight       = 100
	DefaultLoops        = 16
	DefaultMaxGrowth    = 15
	DefaultFallDownRate = 20

	// MinSize is the smallest width or height that leaves room for an
	// island between the Water border and the sand ring.
	MinSize = 5
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("generation: invalid config")

// Config holds the parameters fixed when a generator is built
type Config struct {
	Width        int `json:"width"`
	Height       int `json:"height"`
	Loops        int `json:"loops"`
	MaxGrowth    int `json:"max_growth"`
	FallDownRate int `json:"fall_down_rate"` // percent chance a grown tile erodes one rank
}

// DefaultConfig returns the standard 100x100, 16 island setup
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Loops:        DefaultLoops,
		MaxGrowth:    DefaultMaxGrowth,
		FallDownRate: DefaultFallDownRate,
	}
}

// Validate checks every field and reports the first bad one
func (c Config) Validate() error {
	switch {
	case c.Width < MinSize:
		return fmt.Errorf("%w: width %d is below %d", ErrInvalidConfig, c.Width, MinSize)
	case c.Height < MinSize:
		return fmt.Errorf("%w: height %d is below %d", ErrInvalidConfig, c.Height, MinSize)
	case c.Loops < 0:
		return fmt.Errorf("%w: loops %d is negative", ErrInvalidConfig, c.Loops)
	case c.MaxGrowth < 0:
		return fmt.Errorf("%w: max growth %d is negative", ErrInvalidConfig, c.MaxGrowth)
	case c.FallDownRate < 0 || c.FallDownRate > 100:
		return fmt.Errorf("%w: fall down rate %d is outside [0, 100]", ErrInvalidConfig, c.FallDownRate)
	}
	return nil
}

// landBounds is the region growth may claim. It keeps two cells of
// clearance from every edge so the sand ring never reaches the border.
func (c Config) landBounds() Bounds {
	return Bounds{MinX: 2, MinY: 2, MaxX: c.Width - 3, MaxY: c.Height - 3}
}
