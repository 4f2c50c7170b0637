package player

import (
	"math"
	"testing"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/world/grid"
)

func roomGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromInts([][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	}, 80)
	if err != nil {
		t.Fatalf("FromInts failed: %v", err)
	}
	return g
}

func TestSetIntents(t *testing.T) {
	p := New(geom.Point{}, 0, 1, 1, 5)

	p.SetIntents(Intents{Forward: true, TurnRight: true})
	if p.WalkDirection != 1 || p.TurnDirection != 1 {
		t.Fatalf("expected walk=1 turn=1, got walk=%d turn=%d", p.WalkDirection, p.TurnDirection)
	}

	p.SetIntents(Intents{Backward: true, TurnLeft: true})
	if p.WalkDirection != -1 || p.TurnDirection != -1 {
		t.Fatalf("expected walk=-1 turn=-1, got walk=%d turn=%d", p.WalkDirection, p.TurnDirection)
	}

	p.SetIntents(Intents{Forward: true, Backward: true, TurnLeft: true, TurnRight: true})
	if p.WalkDirection != 0 || p.TurnDirection != 0 {
		t.Fatalf("expected opposing intents to cancel, got walk=%d turn=%d", p.WalkDirection, p.TurnDirection)
	}
}

func TestUpdate_MovesForward(t *testing.T) {
	p := New(geom.Point{X: 120, Y: 120}, 0, 6, 0, 5)
	p.WalkDirection = 1

	if blocked := p.Update(roomGrid(t)); blocked {
		t.Fatal("step inside open cell should not be blocked")
	}
	if math.Abs(p.Pos.X-126) > 1e-9 || math.Abs(p.Pos.Y-120) > 1e-9 {
		t.Fatalf("expected (126,120), got (%v,%v)", p.Pos.X, p.Pos.Y)
	}
}

func TestUpdate_BlockedStepLeavesPositionUnchanged(t *testing.T) {
	// Wall face at x=160; a 45-unit step from x=120 lands inside it.
	start := geom.Point{X: 120.3, Y: 119.7}
	p := New(start, 0.1, 45, 0, 5)
	p.WalkDirection = 1

	if blocked := p.Update(roomGrid(t)); !blocked {
		t.Fatal("expected step into wall to be blocked")
	}
	if p.Pos != start {
		t.Fatalf("position changed on rejected step: %v -> %v", start, p.Pos)
	}
}

func TestUpdate_TurnsEvenWhenBlocked(t *testing.T) {
	p := New(geom.Point{X: 120, Y: 120}, 0, 45, 0.25, 5)
	p.WalkDirection = 1
	p.TurnDirection = 1

	p.Update(roomGrid(t))
	if p.Heading != 0.25 {
		t.Fatalf("expected heading 0.25, got %v", p.Heading)
	}
}

func TestUpdate_HeadingNotRenormalized(t *testing.T) {
	p := New(geom.Point{X: 120, Y: 120}, 0, 0, 1, 5)
	p.TurnDirection = -1
	p.Update(roomGrid(t))
	if p.Heading != -1 {
		t.Fatalf("expected raw heading -1, got %v", p.Heading)
	}
	if h := p.NormalizedHeading(); h < 0 || h >= geom.TwoPi {
		t.Fatalf("normalized heading out of range: %v", h)
	}
}

func TestUpdate_Backward(t *testing.T) {
	p := New(geom.Point{X: 120, Y: 120}, math.Pi/2, 10, 0, 5)
	p.WalkDirection = -1
	p.Update(roomGrid(t))
	if math.Abs(p.Pos.Y-110) > 1e-9 || math.Abs(p.Pos.X-120) > 1e-9 {
		t.Fatalf("expected (120,110), got (%v,%v)", p.Pos.X, p.Pos.Y)
	}
}

func TestUpdate_IdleNeverBlocked(t *testing.T) {
	p := New(geom.Point{X: 120, Y: 120}, 0, 1000, 0, 5)
	if p.Update(roomGrid(t)) {
		t.Fatal("player without walk intent should never report blocked")
	}
}

func TestHeadingTip(t *testing.T) {
	p := New(geom.Point{X: 10, Y: 10}, 0, 0, 0, 5)
	tip := p.HeadingTip(30)
	if math.Abs(tip.X-40) > 1e-9 || math.Abs(tip.Y-10) > 1e-9 {
		t.Fatalf("expected (40,10), got %v", tip)
	}
}
