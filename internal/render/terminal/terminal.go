package terminal

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raycaster/internal/render"
)

const (
	tickInterval = 16 * time.Millisecond // ~60 FPS
	// Terminals report key presses only; a key counts as held while repeat
	// events keep arriving within this window.
	holdWindow = 180 * time.Millisecond
)

// TerminalRenderer implements render.Renderer by rasterising into a Canvas.
type TerminalRenderer struct{}

// NewRenderer creates a terminal renderer.
func NewRenderer() render.Renderer {
	return &TerminalRenderer{}
}

// NewBackend creates the renderer, input manager and engine together.
func NewBackend() render.Backend {
	input := NewInputManager(time.Now)
	return render.Backend{
		Renderer: NewRenderer(),
		Input:    input,
		Engine:   NewEngine(input),
	}
}

func canvas(img render.Image) *Canvas {
	return img.(*Canvas)
}

// NewImage creates an off-screen canvas one cell per logical pixel.
func (r *TerminalRenderer) NewImage(width, height int) render.Image {
	return NewCanvas(width, height, width, height)
}

// FillRect draws a filled rectangle.
func (r *TerminalRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	canvas(dst).fillRect(float64(x), float64(y), float64(width), float64(height), clr)
}

// StrokeRect draws a rectangle outline.
func (r *TerminalRenderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	canvas(dst).strokeRect(float64(x), float64(y), float64(width), float64(height), clr)
}

// FillCircle draws a filled circle.
func (r *TerminalRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	canvas(dst).fillCircle(float64(x), float64(y), float64(radius), clr)
}

// StrokeLine draws a line segment.
func (r *TerminalRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	canvas(dst).line(float64(x0), float64(y0), float64(x1), float64(y1), clr)
}

// DrawText writes text; scale is ignored since cells have a fixed size.
func (r *TerminalRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	canvas(dst).text(str, x, y, clr)
}

// MeasureText returns the size of the text in cells.
func (r *TerminalRenderer) MeasureText(str string, scale float64) (width, height int) {
	return len([]rune(str)), 1
}

// InputManager tracks key state from tcell key events.
type InputManager struct {
	now      func() time.Time
	lastSeen map[render.Key]time.Time
	pending  map[render.Key]bool
	just     map[render.Key]bool
}

// NewInputManager creates an input manager using the given clock.
func NewInputManager(now func() time.Time) *InputManager {
	return &InputManager{
		now:      now,
		lastSeen: make(map[render.Key]time.Time),
		pending:  make(map[render.Key]bool),
		just:     make(map[render.Key]bool),
	}
}

// IsKeyPressed reports whether the key was seen within the hold window.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	t, ok := m.lastSeen[key]
	return ok && m.now().Sub(t) < holdWindow
}

// IsKeyJustPressed reports whether a fresh press of the key arrived before
// the current tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	return m.just[key]
}

// Press records a key event.
func (m *InputManager) Press(key render.Key) {
	if !m.IsKeyPressed(key) {
		m.pending[key] = true
	}
	m.lastSeen[key] = m.now()
}

// Advance starts a new tick: presses recorded since the previous tick become
// the just-pressed set.
func (m *InputManager) Advance() {
	m.just, m.pending = m.pending, make(map[render.Key]bool)
}

// HandleEvent maps a tcell key event onto a render.Key.
func (m *InputManager) HandleEvent(ev *tcell.EventKey) {
	if key, ok := translateKey(ev); ok {
		m.Press(key)
	}
}

func translateKey(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.KeyEscape, true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			return render.KeyW, true
		case 'a':
			return render.KeyA, true
		case 's':
			return render.KeyS, true
		case 'd':
			return render.KeyD, true
		case 'm':
			return render.KeyM, true
		case 'c':
			return render.KeyC, true
		case 'q':
			return render.KeyEscape, true
		}
	}
	return 0, false
}

// Engine runs the game loop on a tcell screen.
type Engine struct {
	input     *InputManager
	newScreen func() (tcell.Screen, error)
	title     string
}

// NewEngine creates a terminal engine feeding key events to input.
func NewEngine(input *InputManager) *Engine {
	return &Engine{input: input, newScreen: tcell.NewScreen}
}

// SetWindowSize is a no-op; the terminal decides its own size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the terminal title.
func (e *Engine) SetWindowTitle(title string) {
	e.title = title
}

// SetWindowResizable is a no-op; terminals are always resizable.
func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame runs the loop until the game returns an error or ErrQuit.
// Events are drained on the loop goroutine, so Update never races with input.
func (e *Engine) RunGame(game render.Game) error {
	screen, err := e.newScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal screen: %w", err)
	}
	defer screen.Fini()
	if e.title != "" {
		screen.SetTitle(e.title)
	}
	screen.HideCursor()

	events := make(chan tcell.Event, 100)
	go func() {
		// PollEvent returns nil once the screen is finalised.
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	c := NewCanvas(1, 1, 0, 0)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				e.input.HandleEvent(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			done, err := e.step(game, screen, c)
			if done {
				return err
			}
		}
	}
}

// step runs one update and draw. It reports whether the loop should stop.
func (e *Engine) step(game render.Game, screen tcell.Screen, c *Canvas) (bool, error) {
	cols, rows := screen.Size()
	w, h := game.Layout(cols, rows)
	c.Resize(w, h, cols, rows)

	e.input.Advance()
	if err := game.Update(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return true, nil
		}
		log.Printf("terminal: update failed: %v", err)
		return true, err
	}

	c.Clear()
	game.Draw(c)
	c.Flush(screen)
	screen.Show()
	return false, nil
}
