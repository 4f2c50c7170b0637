package lighting

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Model is the fixed directional-lighting and depth-fog model used to shade
// wall strips. There is no real light source: faces on vertical grid lines and
// faces on horizontal grid lines get different constant brightness, and
// opacity falls off with distance.
type Model struct {
	Base           color.NRGBA
	VerticalFace   float64 // Brightness of faces hit on vertical grid lines
	HorizontalFace float64 // Brightness of faces hit on horizontal grid lines
	FogDistance    float64 // Distance at which opacity starts falling below 1
	AmbientLight   float64 // Opacity floor (0.0 = fades out, 1.0 = no fog)
}

// DefaultModel returns the pink-wall model with a darker shade on horizontal
// faces.
func DefaultModel() Model {
	return Model{
		Base:           color.NRGBA{255, 182, 193, 255},
		VerticalFace:   1.0,
		HorizontalFace: 0.7,
		FogDistance:    300,
		AmbientLight:   0,
	}
}

// FaceBrightness returns the brightness multiplier for the given face.
func (m Model) FaceBrightness(vertical bool) float64 {
	if vertical {
		return m.VerticalFace
	}
	return m.HorizontalFace
}

// Attenuation returns the opacity for a wall at the given distance, in
// [AmbientLight, 1].
func (m Model) Attenuation(distance float64) float64 {
	if distance <= 0 || math.IsNaN(distance) {
		return 1
	}
	a := m.FogDistance / distance
	if a > 1 {
		a = 1
	}
	if a < m.AmbientLight {
		a = m.AmbientLight
	}
	return a
}

// Shade returns the strip colour for a face at the given corrected distance.
func (m Model) Shade(vertical bool, distance float64) color.NRGBA {
	b := m.FaceBrightness(vertical)
	return color.NRGBA{
		R: scaleChannel(m.Base.R, b),
		G: scaleChannel(m.Base.G, b),
		B: scaleChannel(m.Base.B, b),
		A: scaleChannel(255, m.Attenuation(distance)),
	}
}

func scaleChannel(c uint8, f float64) uint8 {
	v := float64(c) * f
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ParseHexColor parses an opaque colour in "RRGGBB" form (a leading '#' is
// allowed).
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected RRGGBB, got %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("failed to parse color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
