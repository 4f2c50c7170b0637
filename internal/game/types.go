package game

import (
	"image/color"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/projection"
	"chosenoffset.com/raycaster/internal/core/raycast"
)

// State is the frame orchestrator's phase.
type State int

const (
	// StateIdle waits for the next tick.
	StateIdle State = iota
	// StateRunning is inside a tick: pose, rays, projection.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Frame is the result of one tick. It is rebuilt from scratch every tick and
// never shared with the next one.
type Frame struct {
	Tick    int
	Origin  geom.Point
	Heading float64 // normalized
	Rays    []raycast.Ray
	Strips  []projection.Strip
	Blocked bool // the step this tick was rejected by a wall
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

var (
	backgroundColor  = color.NRGBA{0x21, 0x21, 0x21, 0xff}
	minimapWallColor = color.NRGBA{0x55, 0x55, 0x55, 0xff}
	minimapOpenColor = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	minimapEdgeColor = color.NRGBA{0x22, 0x22, 0x22, 0xff}
	minimapRayColor  = color.NRGBA{0, 225, 20, 77} // 30% opacity
	playerColor      = color.NRGBA{0xff, 0, 0, 0xff}
	hudTextColor     = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)
