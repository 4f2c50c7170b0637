package main

import (
	"testing"

	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/simulation"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

func TestParseScript(t *testing.T) {
	steps, err := parseScript("F10, fr5 ,W3")
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if !steps[0].intents.Forward || steps[0].ticks != 10 {
		t.Errorf("unexpected first step: %+v", steps[0])
	}
	if !steps[1].intents.Forward || !steps[1].intents.TurnRight || steps[1].ticks != 5 {
		t.Errorf("unexpected combined step: %+v", steps[1])
	}
	if steps[2].intents != (player.Intents{}) || steps[2].ticks != 3 {
		t.Errorf("unexpected wait step: %+v", steps[2])
	}

	for _, bad := range []string{"", "F", "10", "X5", "F0", ","} {
		if _, err := parseScript(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRun_EnclosedMapNeverMisses(t *testing.T) {
	cfg := simulation.DefaultConfig()
	m, err := maploader.Build(maploader.DefaultMapData())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cfg.Resolve(m.Grid.Width(), m.Grid.Height())
	g, err := game.New(cfg, m, game.Deps{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	steps, err := parseScript("F200,R30")
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}
	seen := 0
	stats := run(g, steps, 300, func(game.Frame) { seen++ })

	if stats.frames != 300 || seen != 300 {
		t.Errorf("expected 300 frames, got %d (callback %d)", stats.frames, seen)
	}
	if stats.misses != 0 || stats.firstMissTick != 0 {
		t.Errorf("enclosed map produced %d missed rays", stats.misses)
	}
	// 200 forward ticks at 6 units each cannot fit in the map; some must block.
	if stats.blocked == 0 {
		t.Error("expected the walk to hit a wall")
	}
	if stats.minDistance <= 0 || stats.meanDistance < stats.minDistance || stats.maxDistance < stats.meanDistance {
		t.Errorf("inconsistent distances: %+v", stats)
	}
}
