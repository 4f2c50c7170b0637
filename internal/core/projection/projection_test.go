package projection

import (
	"math"
	"testing"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/world/grid"
)

func newProjector(t *testing.T) *Projector {
	t.Helper()
	p, err := New(1200, 880, 2, geom.Radians(70), 80, lighting.DefaultModel())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func hitRay(angle, dist float64, vertical bool) raycast.Ray {
	return raycast.Ray{Angle: angle, Hit: &raycast.Hit{Distance: dist, Vertical: vertical}}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	m := lighting.DefaultModel()
	if _, err := New(1200, 880, 2, math.Pi, 80, m); err == nil {
		t.Error("expected error for FOV of π")
	}
	if _, err := New(1200, 880, 2, 0, 80, m); err == nil {
		t.Error("expected error for zero FOV")
	}
	if _, err := New(1200, 880, 0, 1, 80, m); err == nil {
		t.Error("expected error for zero strip width")
	}
	if _, err := New(0, 880, 2, 1, 80, m); err == nil {
		t.Error("expected error for zero screen width")
	}
	if _, err := New(1200, 880, 2, 1, -80, m); err == nil {
		t.Error("expected error for negative tile size")
	}
}

func TestPlaneDistance(t *testing.T) {
	p, err := New(200, 100, 1, math.Pi/2, 10, lighting.DefaultModel())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// tan(π/4) == 1, so the plane sits half a screen away.
	if math.Abs(p.PlaneDistance()-100) > 1e-9 {
		t.Fatalf("expected plane distance 100, got %v", p.PlaneDistance())
	}
}

func TestCorrectedDistance_OnHeading(t *testing.T) {
	for _, heading := range []float64{0, 1, math.Pi, 5} {
		if got := CorrectedDistance(123.5, heading, heading); got != 123.5 {
			t.Errorf("heading %v: expected corrected == raw, got %v", heading, got)
		}
	}
}

func TestCorrectedDistance_EdgesShrink(t *testing.T) {
	g, err := grid.FromInts([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	}, 80)
	if err != nil {
		t.Fatalf("FromInts failed: %v", err)
	}
	fov := geom.Radians(70)
	heading := 0.3
	rays := raycast.CastAll(g, geom.Point{X: 200, Y: 200}, heading, fov, 60)
	for _, idx := range []int{0, len(rays) - 1} {
		raw, ok := rays[idx].Distance()
		if !ok {
			t.Fatalf("column %d: unexpected miss", idx)
		}
		corrected := CorrectedDistance(raw, rays[idx].Angle, heading)
		if !(corrected < raw) {
			t.Errorf("column %d: expected corrected %v < raw %v", idx, corrected, raw)
		}
	}
}

func TestStripHeight(t *testing.T) {
	p := newProjector(t)
	want := 80.0 / 400 * p.PlaneDistance()
	if got := p.StripHeight(400); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := p.StripHeight(0.001); got != 880 {
		t.Fatalf("expected clamp to screen height, got %v", got)
	}
	if got := p.StripHeight(math.Inf(1)); got != 0 {
		t.Fatalf("expected 0 for infinite distance, got %v", got)
	}
	if got := p.StripHeight(math.NaN()); got != 0 {
		t.Fatalf("expected 0 for NaN distance, got %v", got)
	}
}

func TestProjectRay_CentredStrip(t *testing.T) {
	p := newProjector(t)
	s := p.ProjectRay(10, hitRay(0, 400, true), 0)
	if !s.Visible {
		t.Fatal("expected visible strip")
	}
	if s.X != 20 || s.Width != 2 {
		t.Errorf("expected x=20 width=2, got x=%v width=%v", s.X, s.Width)
	}
	if math.Abs(s.Y+s.Height/2-440) > 1e-9 {
		t.Errorf("strip not centred on screen midpoint: y=%v h=%v", s.Y, s.Height)
	}
	if s.CorrectedDistance != 400 || s.RawDistance != 400 {
		t.Errorf("expected distances 400, got raw=%v corrected=%v", s.RawDistance, s.CorrectedDistance)
	}
	if s.Color.R != 255 {
		t.Errorf("expected vertical-face brightness, got %v", s.Color)
	}
}

func TestProjectRay_HorizontalFaceIsDarker(t *testing.T) {
	p := newProjector(t)
	v := p.ProjectRay(0, hitRay(0, 200, true), 0)
	h := p.ProjectRay(0, hitRay(0, 200, false), 0)
	if h.Color.R >= v.Color.R {
		t.Fatalf("expected horizontal face darker: vertical=%v horizontal=%v", v.Color, h.Color)
	}
}

func TestProjectRay_MissIsZeroHeight(t *testing.T) {
	p := newProjector(t)
	s := p.ProjectRay(3, raycast.Ray{Angle: 1}, 1)
	if s.Visible || s.Height != 0 {
		t.Fatalf("expected invisible zero-height strip, got %+v", s)
	}
	if math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
		t.Fatalf("strip carries non-finite position: %+v", s)
	}
}

func TestProject_OneStripPerRay(t *testing.T) {
	p := newProjector(t)
	rays := []raycast.Ray{hitRay(0, 100, true), {Angle: 0}, hitRay(0, 300, false)}
	strips := p.Project(rays, 0)
	if len(strips) != 3 {
		t.Fatalf("expected 3 strips, got %d", len(strips))
	}
	for i, s := range strips {
		if s.Column != i {
			t.Errorf("strip %d has column %d", i, s.Column)
		}
	}
	if strips[1].Visible {
		t.Error("missed ray should produce an invisible strip")
	}
	if strips[0].Height <= strips[2].Height {
		t.Error("closer wall should produce a taller strip")
	}
}
