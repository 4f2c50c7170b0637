// Package game drives the per-tick simulation: it reads intents, moves the
// player, casts one ray per column and projects the result into strips.
package game

import (
	"fmt"
	"log"

	"github.com/atotto/clipboard"

	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/projection"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/simulation"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

// debugFrames is how many initial ticks log their ray summary.
const debugFrames = 3

// Bumper plays feedback when a step is rejected by a wall.
type Bumper interface {
	PlayBump() bool
}

// Deps are the collaborators a Game draws and reads input through. Input and
// Bump may be nil for headless use.
type Deps struct {
	Renderer render.Renderer
	Input    render.InputManager
	Bump     Bumper
	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

// Game holds all session state. Nothing outside it is mutated by a tick.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *simulation.Config
	GameMap      *maploader.Map
	Player       *player.Player
	Projector    *projection.Projector
	Renderer     render.Renderer
	InputMgr     render.InputManager

	// Last completed tick
	Frame Frame

	// UI state
	ShowMinimap bool
	Messages    []Message

	// Debug
	FrameCount int

	state    State
	fov      float64
	numRays  int
	bump     Bumper
	copyText func(string) error
}

// New creates a game for a resolved config and a loaded map.
func New(cfg *simulation.Config, gameMap *maploader.Map, deps Deps) (*Game, error) {
	if cfg == nil || gameMap == nil || gameMap.Grid == nil {
		return nil, fmt.Errorf("game needs a config and a loaded map")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	proj, err := projection.New(
		cfg.View.ScreenWidth,
		cfg.View.ScreenHeight,
		cfg.View.StripWidth,
		cfg.FOV(),
		gameMap.Grid.TileSize(),
		cfg.LightingModel(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create projector: %w", err)
	}

	copyText := deps.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	return &Game{
		ScreenWidth:  cfg.View.ScreenWidth,
		ScreenHeight: cfg.View.ScreenHeight,
		Config:       cfg,
		GameMap:      gameMap,
		Player: player.New(
			gameMap.Spawn,
			gameMap.Heading,
			cfg.Movement.MoveSpeed,
			cfg.RotationSpeed(),
			cfg.Movement.PlayerRadius,
		),
		Projector:   proj,
		Renderer:    deps.Renderer,
		InputMgr:    deps.Input,
		ShowMinimap: cfg.Minimap.Enabled,
		state:       StateIdle,
		fov:         cfg.FOV(),
		numRays:     cfg.NumRays(),
		bump:        deps.Bump,
		copyText:    copyText,
	}, nil
}

// State returns the orchestrator phase. Outside of Step it is always idle.
func (g *Game) State() State {
	return g.state
}

// NumRays returns the number of columns cast per tick.
func (g *Game) NumRays() int {
	return g.numRays
}

// Update handles one engine tick: UI keys, then a simulation step.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.updateMessages(dt)

	var in player.Intents
	if g.InputMgr != nil {
		if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			log.Printf("Quit requested after %d frames", g.FrameCount)
			return render.ErrQuit
		}
		if g.InputMgr.IsKeyJustPressed(render.KeyM) {
			g.ShowMinimap = !g.ShowMinimap
			if g.ShowMinimap {
				g.ShowMessage("Minimap on")
			} else {
				g.ShowMessage("Minimap off")
			}
		}
		if g.InputMgr.IsKeyJustPressed(render.KeyC) {
			g.CopyReport()
		}
		in = ReadIntents(g.InputMgr)
	}

	g.Step(in)
	return nil
}

// ReadIntents resolves the directional keys into intents.
func ReadIntents(input render.InputManager) player.Intents {
	pressed := func(keys ...render.Key) bool {
		for _, k := range keys {
			if input.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return player.Intents{
		Forward:   pressed(render.KeyW, render.KeyUp),
		Backward:  pressed(render.KeyS, render.KeyDown),
		TurnLeft:  pressed(render.KeyA, render.KeyLeft),
		TurnRight: pressed(render.KeyD, render.KeyRight),
	}
}

// Step runs one full tick with the given intents. The pose is resolved before
// any ray is cast, and every ray before projection starts.
func (g *Game) Step(in player.Intents) Frame {
	g.state = StateRunning
	defer func() { g.state = StateIdle }()

	g.Player.SetIntents(in)
	blocked := g.Player.Update(g.GameMap.Grid)

	heading := g.Player.NormalizedHeading()
	rays := raycast.CastAll(g.GameMap.Grid, g.Player.Pos, heading, g.fov, g.numRays)
	strips := g.Projector.Project(rays, heading)

	g.FrameCount++
	g.Frame = Frame{
		Tick:    g.FrameCount,
		Origin:  g.Player.Pos,
		Heading: heading,
		Rays:    rays,
		Strips:  strips,
		Blocked: blocked,
	}

	if blocked && g.bump != nil {
		g.bump.PlayBump()
	}
	if g.FrameCount <= debugFrames {
		stats := Summarize(g.Frame)
		log.Printf("DEBUG frame %d: pos=(%.1f,%.1f) heading=%.3f rays=%d misses=%d nearest=%.2f",
			g.FrameCount, g.Player.Pos.X, g.Player.Pos.Y, heading, len(rays), stats.Misses, stats.MinDistance)
	}

	return g.Frame
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	log.Printf("Message: %s", text)
}
