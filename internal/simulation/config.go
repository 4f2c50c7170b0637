// Package simulation provides configuration for the view, movement and overlay.
// Values are loaded from a JSON file so each session can tune its own feel.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render/lighting"
)

// Config holds all static settings for a session
type Config struct {
	// Projection and screen layout
	View ViewConfig `json:"view"`

	// Player movement
	Movement MovementConfig `json:"movement"`

	// Top-down debug overlay
	Minimap MinimapConfig `json:"minimap"`

	// Wall shading
	Lighting LightingConfig `json:"lighting"`
}

// ViewConfig defines the screen and the projection
type ViewConfig struct {
	ScreenWidth  int     `json:"screen_width"`  // 0 = map width in world units
	ScreenHeight int     `json:"screen_height"` // 0 = map height in world units
	StripWidth   int     `json:"strip_width"`   // Pixels per cast ray
	FOVDegrees   float64 `json:"fov_degrees"`   // Horizontal field of view
}

// MovementConfig defines per-tick movement
type MovementConfig struct {
	MoveSpeed            float64 `json:"move_speed"`             // World units per tick
	RotationSpeedDegrees float64 `json:"rotation_speed_degrees"` // Degrees per tick
	PlayerRadius         float64 `json:"player_radius"`          // Marker radius in world units
}

// MinimapConfig defines the overlay drawn on top of the projected view
type MinimapConfig struct {
	Enabled       bool    `json:"enabled"`
	Scale         float64 `json:"scale"`          // World-to-screen downscale (e.g., 0.2)
	HeadingLength float64 `json:"heading_length"` // Heading indicator length in world units
}

// LightingConfig defines the strip shading
type LightingConfig struct {
	WallColor      string  `json:"wall_color"` // Hex "RRGGBB"
	VerticalFace   float64 `json:"vertical_face"`
	HorizontalFace float64 `json:"horizontal_face"`
	FogDistance    float64 `json:"fog_distance"`
	AmbientLight   float64 `json:"ambient_light"`
}

// DefaultConfig returns the classic settings: 70° FOV, 2px strips, a
// 0.2-scale minimap and pink walls.
func DefaultConfig() *Config {
	return &Config{
		View: ViewConfig{
			ScreenWidth:  0,
			ScreenHeight: 0,
			StripWidth:   2,
			FOVDegrees:   70,
		},
		Movement: MovementConfig{
			MoveSpeed:            6.0,
			RotationSpeedDegrees: 4.0,
			PlayerRadius:         5.0,
		},
		Minimap: MinimapConfig{
			Enabled:       true,
			Scale:         0.2,
			HeadingLength: 30,
		},
		Lighting: LightingConfig{
			WallColor:      "FFB6C1",
			VerticalFace:   1.0,
			HorizontalFace: 0.7,
			FogDistance:    300,
			AmbientLight:   0,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	return config, nil
}

// Resolve fills a zero screen size from the map's world size.
func (c *Config) Resolve(worldWidth, worldHeight float64) {
	if c.View.ScreenWidth == 0 {
		c.View.ScreenWidth = int(worldWidth)
	}
	if c.View.ScreenHeight == 0 {
		c.View.ScreenHeight = int(worldHeight)
	}
}

// Validate checks the config for values that cannot produce a frame.
// Call it after Resolve.
func (c *Config) Validate() error {
	v := c.View
	if v.ScreenWidth <= 0 || v.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size: %dx%d", v.ScreenWidth, v.ScreenHeight)
	}
	if v.StripWidth <= 0 {
		return fmt.Errorf("invalid strip width: %d", v.StripWidth)
	}
	if c.NumRays() < 1 {
		return fmt.Errorf("strip width %d leaves no rays on a %dpx screen", v.StripWidth, v.ScreenWidth)
	}
	if !(v.FOVDegrees > 0 && v.FOVDegrees < 180) {
		return fmt.Errorf("invalid field of view: %v degrees (must be in (0, 180))", v.FOVDegrees)
	}

	m := c.Movement
	if m.MoveSpeed < 0 || m.RotationSpeedDegrees < 0 || m.PlayerRadius < 0 {
		return fmt.Errorf("movement values must not be negative: %+v", m)
	}

	if c.Minimap.Enabled && c.Minimap.Scale <= 0 {
		return fmt.Errorf("invalid minimap scale: %v", c.Minimap.Scale)
	}

	if _, err := lighting.ParseHexColor(c.Lighting.WallColor); err != nil {
		return fmt.Errorf("invalid wall color: %w", err)
	}
	if c.Lighting.FogDistance <= 0 {
		return fmt.Errorf("invalid fog distance: %v", c.Lighting.FogDistance)
	}

	return nil
}

// NumRays returns the number of columns cast per frame.
func (c *Config) NumRays() int {
	if c.View.StripWidth <= 0 {
		return 0
	}
	return c.View.ScreenWidth / c.View.StripWidth
}

// FOV returns the field of view in radians.
func (c *Config) FOV() float64 {
	return geom.Radians(c.View.FOVDegrees)
}

// RotationSpeed returns the rotation speed in radians per tick.
func (c *Config) RotationSpeed() float64 {
	return geom.Radians(c.Movement.RotationSpeedDegrees)
}

// LightingModel builds the shading model. Validate must have passed.
func (c *Config) LightingModel() lighting.Model {
	base, err := lighting.ParseHexColor(c.Lighting.WallColor)
	if err != nil {
		base = lighting.DefaultModel().Base
	}
	return lighting.Model{
		Base:           base,
		VerticalFace:   c.Lighting.VerticalFace,
		HorizontalFace: c.Lighting.HorizontalFace,
		FogDistance:    c.Lighting.FogDistance,
		AmbientLight:   c.Lighting.AmbientLight,
	}
}
