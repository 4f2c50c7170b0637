package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/game"
)

// scriptStep holds one intent set for a number of ticks.
type scriptStep struct {
	intents player.Intents
	ticks   int
}

type runStats struct {
	ticks         int
	blocked       int
	misses        int
	frames        int
	minDistance   float64
	maxDistance   float64
	meanDistance  float64
	lastFrame     game.Frame
	firstMissTick int
}

func main() {
	var configPath, mapPath, script string
	var ticks, every int

	flag.StringVar(&configPath, "config", "data/config.json", "simulation config file (missing file = defaults)")
	flag.StringVar(&mapPath, "map", "", "map file (empty = built-in map)")
	flag.StringVar(&script, "script", "F40,R20,F40,L45,B10", "comma-separated moves: F/B/L/R/W(ait) followed by a tick count")
	flag.IntVar(&ticks, "ticks", 600, "ticks to run; the script repeats")
	flag.IntVar(&every, "every", 100, "print a frame summary every N ticks (0 = never)")
	flag.Parse()

	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	steps, err := parseScript(script)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	session, err := game.LoadSession(configPath, mapPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	g, err := session.NewGame(game.Deps{})
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Ray Report ===\n")
	fmt.Printf("map=%s rays=%d ticks=%d script=%s\n\n", session.Map.Data.Name, g.NumRays(), ticks, script)

	stats := run(g, steps, ticks, func(f game.Frame) {
		if every > 0 && f.Tick%every == 0 {
			fmt.Print(game.Report(f))
			fmt.Println()
		}
	})
	printStats(stats)
}

// parseScript reads entries such as "F40" (forward for 40 ticks). Letters
// may be combined, e.g. "FR10" walks forward while turning right.
func parseScript(s string) ([]scriptStep, error) {
	var steps []scriptStep
	for _, raw := range strings.Split(s, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		i := strings.IndexAny(entry, "0123456789")
		if i <= 0 {
			return nil, fmt.Errorf("invalid script entry %q", entry)
		}
		n, err := strconv.Atoi(entry[i:])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid tick count in %q", entry)
		}
		var in player.Intents
		for _, c := range strings.ToUpper(entry[:i]) {
			switch c {
			case 'F':
				in.Forward = true
			case 'B':
				in.Backward = true
			case 'L':
				in.TurnLeft = true
			case 'R':
				in.TurnRight = true
			case 'W':
			default:
				return nil, fmt.Errorf("unknown move %q in %q", c, entry)
			}
		}
		steps = append(steps, scriptStep{intents: in, ticks: n})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return steps, nil
}

// run steps the game through the script, repeating it until ticks have run.
func run(g *game.Game, steps []scriptStep, ticks int, onFrame func(game.Frame)) runStats {
	stats := runStats{ticks: ticks}
	total := 0.0
	hits := 0

	step, left := 0, steps[0].ticks
	for t := 0; t < ticks; t++ {
		if left == 0 {
			step = (step + 1) % len(steps)
			left = steps[step].ticks
		}
		left--

		f := g.Step(steps[step].intents)
		s := game.Summarize(f)
		stats.frames++
		if f.Blocked {
			stats.blocked++
		}
		if s.Misses > 0 && stats.firstMissTick == 0 {
			stats.firstMissTick = f.Tick
		}
		stats.misses += s.Misses
		if s.Hits > 0 {
			if hits == 0 || s.MinDistance < stats.minDistance {
				stats.minDistance = s.MinDistance
			}
			if s.MaxDistance > stats.maxDistance {
				stats.maxDistance = s.MaxDistance
			}
			total += s.MeanDistance * float64(s.Hits)
			hits += s.Hits
		}
		stats.lastFrame = f
		if onFrame != nil {
			onFrame(f)
		}
	}
	if hits > 0 {
		stats.meanDistance = total / float64(hits)
	}
	return stats
}

func printStats(s runStats) {
	fmt.Printf("=== Totals ===\n")
	fmt.Printf("frames=%d blocked_steps=%d missed_rays=%d\n", s.frames, s.blocked, s.misses)
	if s.firstMissTick > 0 {
		fmt.Printf("first_miss_tick=%d (map is not enclosed)\n", s.firstMissTick)
	}
	fmt.Printf("distance min=%.2f mean=%.2f max=%.2f\n", s.minDistance, s.meanDistance, s.maxDistance)
	fmt.Printf("final pos=(%.2f, %.2f)\n", s.lastFrame.Origin.X, s.lastFrame.Origin.Y)
}
