package game

import (
	"fmt"
	"math"
	"strings"

	"chosenoffset.com/raycaster/internal/core/geom"
)

// Stats summarises the rays and strips of one frame.
type Stats struct {
	Rays          int
	Hits          int
	Misses        int
	VerticalHits  int
	MinDistance   float64 // 0 when nothing was hit
	MaxDistance   float64
	MeanDistance  float64
	VisibleStrips int
	TallestStrip  float64
}

// Summarize computes the statistics of a frame.
func Summarize(f Frame) Stats {
	s := Stats{Rays: len(f.Rays)}
	total := 0.0
	for _, r := range f.Rays {
		d, ok := r.Distance()
		if !ok {
			s.Misses++
			continue
		}
		if s.Hits == 0 || d < s.MinDistance {
			s.MinDistance = d
		}
		s.MaxDistance = math.Max(s.MaxDistance, d)
		total += d
		s.Hits++
		if r.Hit.Vertical {
			s.VerticalHits++
		}
	}
	if s.Hits > 0 {
		s.MeanDistance = total / float64(s.Hits)
	}
	for _, st := range f.Strips {
		if st.Visible {
			s.VisibleStrips++
			s.TallestStrip = math.Max(s.TallestStrip, st.Height)
		}
	}
	return s
}

// Report renders a frame as plain text: a summary line followed by the
// centre column's ray.
func Report(f Frame) string {
	s := Summarize(f)
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d pos=(%.2f, %.2f) heading=%.2f°\n",
		f.Tick, f.Origin.X, f.Origin.Y, geom.Degrees(f.Heading))
	fmt.Fprintf(&b, "rays=%d hits=%d misses=%d vertical=%d\n",
		s.Rays, s.Hits, s.Misses, s.VerticalHits)
	fmt.Fprintf(&b, "distance min=%.2f mean=%.2f max=%.2f\n",
		s.MinDistance, s.MeanDistance, s.MaxDistance)
	fmt.Fprintf(&b, "strips visible=%d tallest=%.1f\n", s.VisibleStrips, s.TallestStrip)
	if f.Blocked {
		b.WriteString("last step blocked by a wall\n")
	}

	if len(f.Rays) > 0 {
		mid := len(f.Rays) / 2
		r := f.Rays[mid]
		if r.Missed() {
			fmt.Fprintf(&b, "centre ray %d angle=%.2f° miss\n", mid, geom.Degrees(r.Angle))
		} else {
			face := "horizontal"
			if r.Hit.Vertical {
				face = "vertical"
			}
			fmt.Fprintf(&b, "centre ray %d angle=%.2f° hit=(%.2f, %.2f) cell=(%d, %d) distance=%.2f face=%s\n",
				mid, geom.Degrees(r.Angle), r.Hit.Point.X, r.Hit.Point.Y,
				r.Hit.Cell.X, r.Hit.Cell.Y, r.Hit.Distance, face)
		}
	}
	return b.String()
}

// CopyReport puts the current frame's report on the clipboard.
func (g *Game) CopyReport() {
	if g.FrameCount == 0 {
		g.ShowMessage("Nothing to copy yet")
		return
	}
	if err := g.copyText(Report(g.Frame)); err != nil {
		g.ShowMessage(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	g.ShowMessage(fmt.Sprintf("Frame %d report copied", g.Frame.Tick))
}
