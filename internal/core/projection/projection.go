// Package projection turns per-column ray results into vertical wall strips
// on a flat projection plane.
package projection

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render/lighting"
)

// Strip is one column of the projected view, ready to be drawn as a filled
// rectangle.
type Strip struct {
	Column            int
	X, Y              float64
	Width, Height     float64
	RawDistance       float64
	CorrectedDistance float64
	Color             color.NRGBA
	Visible           bool // false when the ray found no wall
}

// Projector holds the session-constant projection parameters.
type Projector struct {
	screenWidth   float64
	screenHeight  float64
	stripWidth    float64
	fov           float64
	tileSize      float64
	planeDistance float64
	lighting      lighting.Model
}

// New creates a projector. The projection plane distance is derived once from
// the screen width and field of view.
func New(screenWidth, screenHeight, stripWidth int, fov, tileSize float64, model lighting.Model) (*Projector, error) {
	if screenWidth <= 0 || screenHeight <= 0 {
		return nil, fmt.Errorf("invalid screen size: %dx%d", screenWidth, screenHeight)
	}
	if stripWidth <= 0 {
		return nil, fmt.Errorf("invalid strip width: %d", stripWidth)
	}
	if !(fov > 0 && fov < math.Pi) {
		return nil, fmt.Errorf("invalid field of view: %v rad", fov)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size: %v", tileSize)
	}

	return &Projector{
		screenWidth:   float64(screenWidth),
		screenHeight:  float64(screenHeight),
		stripWidth:    float64(stripWidth),
		fov:           fov,
		tileSize:      tileSize,
		planeDistance: (float64(screenWidth) / 2) / math.Tan(fov/2),
		lighting:      model,
	}, nil
}

// PlaneDistance returns the distance from the viewer to the projection plane.
func (p *Projector) PlaneDistance() float64 {
	return p.planeDistance
}

// CorrectedDistance removes the fisheye bulge by projecting the radial
// distance onto the viewing direction.
func CorrectedDistance(distance, rayAngle, heading float64) float64 {
	return distance * math.Cos(rayAngle-geom.NormalizeAngle(heading))
}

// StripHeight returns the on-screen height of a wall at the given corrected
// distance, clamped to [0, screen height].
func (p *Projector) StripHeight(corrected float64) float64 {
	if math.IsNaN(corrected) || math.IsInf(corrected, 0) {
		return 0
	}
	if corrected <= 0 {
		return p.screenHeight
	}
	h := (p.tileSize / corrected) * p.planeDistance
	if h > p.screenHeight {
		h = p.screenHeight
	}
	return h
}

// ProjectRay builds the strip for column i.
func (p *Projector) ProjectRay(i int, ray raycast.Ray, heading float64) Strip {
	s := Strip{
		Column: i,
		X:      float64(i) * p.stripWidth,
		Y:      p.screenHeight / 2,
		Width:  p.stripWidth,
	}

	dist, ok := ray.Distance()
	if !ok {
		return s
	}

	corrected := CorrectedDistance(dist, ray.Angle, heading)
	h := p.StripHeight(corrected)
	if h <= 0 {
		return s
	}

	s.RawDistance = dist
	s.CorrectedDistance = corrected
	s.Height = h
	s.Y = p.screenHeight/2 - h/2
	s.Color = p.lighting.Shade(ray.Hit.Vertical, corrected)
	s.Visible = true
	return s
}

// Project builds one strip per ray, indexed by screen column.
func (p *Projector) Project(rays []raycast.Ray, heading float64) []Strip {
	strips := make([]Strip, len(rays))
	for i, ray := range rays {
		strips[i] = p.ProjectRay(i, ray, heading)
	}
	return strips
}
