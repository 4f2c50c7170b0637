// Package player integrates the viewer's pose from movement intents.
package player

import (
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
)

// WallQuery is the only view of the map the player needs.
type WallQuery interface {
	HasWallAt(x, y float64) bool
}

// Intents is the resolved state of the four directional signals, independent
// of whatever device produced them.
type Intents struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
}

// Player represents the viewer's continuous pose in the world.
type Player struct {
	Pos     geom.Point
	Heading float64 // radians; accumulates, normalize when consuming

	TurnDirection int // -1 left, 0 none, 1 right
	WalkDirection int // -1 back, 0 none, 1 forward

	MoveSpeed     float64 // world units per tick
	RotationSpeed float64 // radians per tick
	Radius        float64 // marker radius on the minimap
}

// New creates a player at the given pose with no active intents.
func New(pos geom.Point, heading, moveSpeed, rotationSpeed, radius float64) *Player {
	return &Player{
		Pos:           pos,
		Heading:       heading,
		MoveSpeed:     moveSpeed,
		RotationSpeed: rotationSpeed,
		Radius:        radius,
	}
}

// SetIntents maps the four boolean intents onto walk and turn directions.
// Opposing intents cancel out.
func (p *Player) SetIntents(in Intents) {
	p.WalkDirection = direction(in.Forward, in.Backward)
	p.TurnDirection = direction(in.TurnRight, in.TurnLeft)
}

func direction(pos, neg bool) int {
	d := 0
	if pos {
		d++
	}
	if neg {
		d--
	}
	return d
}

// Update advances the pose by one tick. The heading always turns; the step is
// taken whole or not at all, and Update reports true when a requested step was
// rejected because its end point is inside a wall.
func (p *Player) Update(walls WallQuery) (blocked bool) {
	p.Heading += float64(p.TurnDirection) * p.RotationSpeed

	if p.WalkDirection == 0 {
		return false
	}

	step := float64(p.WalkDirection) * p.MoveSpeed
	next := p.Pos.Add(math.Cos(p.Heading)*step, math.Sin(p.Heading)*step)
	if walls.HasWallAt(next.X, next.Y) {
		return true
	}
	p.Pos = next
	return false
}

// NormalizedHeading returns the heading in [0, 2π).
func (p *Player) NormalizedHeading() float64 {
	return geom.NormalizeAngle(p.Heading)
}

// HeadingTip returns the end of a heading indicator of the given length.
func (p *Player) HeadingTip(length float64) geom.Point {
	return p.Pos.Add(math.Cos(p.Heading)*length, math.Sin(p.Heading)*length)
}
