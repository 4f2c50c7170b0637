// Package raycast finds, for a single viewing angle, the nearest wall along a
// ray by stepping across horizontal and vertical grid lines one tile at a time.
//
// Cast is a pure function of the map, the origin and the angle. It never reads
// any ambient player state, so it can be exercised without a live player.
package raycast

import (
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
)

// ProbeNudge is the distance, as a fraction of the tile size, by which a probe
// point on a grid line is pushed into the tile being entered. Without it a
// point lying exactly on a boundary is attributed to the tile being exited
// whenever the ray travels up or left.
const ProbeNudge = 1e-6

// Map is the read-only view of the world the caster needs.
type Map interface {
	HasWallAt(x, y float64) bool
	InBounds(x, y float64) bool
	TileSize() float64
}

// Hit describes the wall crossing that won for a ray.
type Hit struct {
	Point    geom.Point // where the ray meets the grid line
	Cell     geom.Coord // the occupied tile behind that grid line
	Distance float64    // Euclidean distance from the origin
	Vertical bool       // true if the crossing was on a vertical grid line
}

// Ray is the per-column result of a cast. A nil Hit means neither scan found a
// wall before leaving the map.
type Ray struct {
	Angle float64 // normalized to [0, 2π)
	Hit   *Hit
}

// Missed reports whether the ray found no wall.
func (r Ray) Missed() bool {
	return r.Hit == nil
}

// Distance returns the hit distance and whether there was a hit.
func (r Ray) Distance() (float64, bool) {
	if r.Hit == nil {
		return 0, false
	}
	return r.Hit.Distance, true
}

// quadrant is the facing classification of a normalized angle.
// Screen coordinates: y grows downward, so 0 < angle < π faces down.
type quadrant struct {
	down  bool
	right bool
}

func classify(angle float64) quadrant {
	return quadrant{
		down:  angle > 0 && angle < math.Pi,
		right: angle < 0.5*math.Pi || angle > 1.5*math.Pi,
	}
}

// stepSign is the direction of travel along each axis.
type stepSign struct {
	x, y float64
}

// stepSigns is indexed [down][right].
var stepSigns = [2][2]stepSign{
	{ // facing up
		{x: -1, y: -1}, // left
		{x: 1, y: -1},  // right
	},
	{ // facing down
		{x: -1, y: 1}, // left
		{x: 1, y: 1},  // right
	},
}

func (q quadrant) signs() stepSign {
	return stepSigns[boolIndex(q.down)][boolIndex(q.right)]
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

// crossing is the outcome of one grid-line scan.
type crossing struct {
	point geom.Point
	cell  geom.Coord
	found bool
}

// Cast traces a single ray from origin at the given angle and returns the
// nearest wall crossing. Ties between the two scans resolve to the horizontal
// crossing.
func Cast(m Map, origin geom.Point, angle float64) Ray {
	angle = geom.NormalizeAngle(angle)
	q := classify(angle)
	s := q.signs()

	ray := Ray{Angle: angle}

	h := scanHorizontal(m, origin, angle, q, s)
	v := scanVertical(m, origin, angle, q, s)

	if h.found {
		ray.Hit = &Hit{
			Point:    h.point,
			Cell:     h.cell,
			Distance: origin.DistanceTo(h.point),
		}
	}
	if v.found {
		d := origin.DistanceTo(v.point)
		if ray.Hit == nil || d < ray.Hit.Distance {
			ray.Hit = &Hit{
				Point:    v.point,
				Cell:     v.cell,
				Distance: d,
				Vertical: true,
			}
		}
	}

	return ray
}

// scanHorizontal walks the horizontal grid lines crossed by the ray.
func scanHorizontal(m Map, origin geom.Point, angle float64, q quadrant, s stepSign) crossing {
	ts := m.TileSize()
	tan := math.Tan(angle)

	y := math.Floor(origin.Y/ts) * ts
	if q.down {
		y += ts
	}
	x := origin.X + (y-origin.Y)/tan

	dy := s.y * ts
	dx := s.x * math.Abs(ts/tan)

	probeDY := 0.0
	if !q.down {
		probeDY = -ProbeNudge * ts
	}

	for m.InBounds(x, y) {
		if m.HasWallAt(x, y+probeDY) {
			return crossing{
				point: geom.Point{X: x, Y: y},
				cell:  cellOf(x, y+probeDY, ts),
				found: true,
			}
		}
		x += dx
		y += dy
	}
	return crossing{}
}

// scanVertical walks the vertical grid lines crossed by the ray.
func scanVertical(m Map, origin geom.Point, angle float64, q quadrant, s stepSign) crossing {
	ts := m.TileSize()
	tan := math.Tan(angle)

	x := math.Floor(origin.X/ts) * ts
	if q.right {
		x += ts
	}
	y := origin.Y + (x-origin.X)*tan

	dx := s.x * ts
	dy := s.y * math.Abs(ts*tan)

	probeDX := 0.0
	if !q.right {
		probeDX = -ProbeNudge * ts
	}

	for m.InBounds(x, y) {
		if m.HasWallAt(x+probeDX, y) {
			return crossing{
				point: geom.Point{X: x, Y: y},
				cell:  cellOf(x+probeDX, y, ts),
				found: true,
			}
		}
		x += dx
		y += dy
	}
	return crossing{}
}

func cellOf(x, y, ts float64) geom.Coord {
	return geom.Coord{X: int(math.Floor(x / ts)), Y: int(math.Floor(y / ts))}
}

// ColumnAngle returns the angle of column k out of n across a field of view
// centred on heading.
func ColumnAngle(heading, fov float64, k, n int) float64 {
	return heading - fov/2 + float64(k)*(fov/float64(n))
}

// CastAll casts n evenly spaced rays across fov, centred on heading. The
// result is indexed by screen column.
func CastAll(m Map, origin geom.Point, heading, fov float64, n int) []Ray {
	if n <= 0 {
		return nil
	}
	rays := make([]Ray, n)
	for k := range rays {
		rays[k] = Cast(m, origin, ColumnAngle(heading, fov, k, n))
	}
	return rays
}
