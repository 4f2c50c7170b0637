package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/raycaster/internal/render"
)

// Draw renders the last completed frame. It never advances the simulation.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)
	if g.Renderer == nil {
		return
	}

	g.drawStrips(screen)
	if g.ShowMinimap {
		g.drawMinimap(screen)
	}
	g.drawHUD(screen)
	g.drawMessages(screen)
}

func (g *Game) drawStrips(screen render.Image) {
	for _, s := range g.Frame.Strips {
		if !s.Visible || s.Height <= 0 {
			continue
		}
		g.Renderer.FillRect(screen, float32(s.X), float32(s.Y), float32(s.Width), float32(s.Height), s.Color)
	}
}

// drawMinimap draws the top-down overlay: tiles, ray segments and the player.
func (g *Game) drawMinimap(screen render.Image) {
	scale := g.Config.Minimap.Scale
	grid := g.GameMap.Grid
	ts := grid.TileSize() * scale

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			x := float32(float64(col) * ts)
			y := float32(float64(row) * ts)
			tile := minimapOpenColor
			if grid.IsWall(col, row) {
				tile = minimapWallColor
			}
			g.Renderer.FillRect(screen, x, y, float32(ts), float32(ts), tile)
			g.Renderer.StrokeRect(screen, x, y, float32(ts), float32(ts), 1, minimapEdgeColor)
		}
	}

	origin := g.Frame.Origin.Scale(scale)
	for _, r := range g.Frame.Rays {
		if r.Missed() {
			continue
		}
		hit := r.Hit.Point.Scale(scale)
		g.Renderer.StrokeLine(screen, float32(origin.X), float32(origin.Y), float32(hit.X), float32(hit.Y), 1, minimapRayColor)
	}

	pos := g.Player.Pos.Scale(scale)
	tip := g.Player.HeadingTip(g.Config.Minimap.HeadingLength).Scale(scale)
	radius := max(float32(g.Player.Radius*scale), 1)
	g.Renderer.FillCircle(screen, float32(pos.X), float32(pos.Y), radius, playerColor)
	g.Renderer.StrokeLine(screen, float32(pos.X), float32(pos.Y), float32(tip.X), float32(tip.Y), 1, playerColor)
}

func (g *Game) drawHUD(screen render.Image) {
	line := fmt.Sprintf("frame %d  rays %d  (%.0f, %.0f)", g.FrameCount, g.numRays, g.Player.Pos.X, g.Player.Pos.Y)
	w, h := screen.Size()
	tw, th := g.Renderer.MeasureText(line, 1)
	g.Renderer.DrawText(screen, line, w-tw-8, h-th-8, hudTextColor, 1)
}

// drawMessages shows recent messages, fading as they expire.
func (g *Game) drawMessages(screen render.Image) {
	_, h := screen.Size()
	y := h / 2
	for _, msg := range g.Messages {
		alpha := uint8(255)
		if msg.MaxTime > 0 && msg.TimeLeft < 1 {
			alpha = uint8(255 * msg.TimeLeft)
		}
		clr := color.NRGBA{hudTextColor.R, hudTextColor.G, hudTextColor.B, alpha}
		g.Renderer.DrawText(screen, msg.Text, 8, y, clr, 1)
		_, th := g.Renderer.MeasureText(msg.Text, 1)
		y += th + 4
	}
}
