// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/rhighs/quadtree-demo/pkg/entity"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// Input is a terminal event translated into simulation terms.
type Input struct {
	Quit          bool
	ToggleRegions bool
	MouseWorld    *physics.Vector2D
	WheelSteps    float64
}

// TerminalRenderer draws the simulation as character cells. The whole
// world is scaled to fit the current terminal size.
type TerminalRenderer struct {
	screen tcell.Screen
	worldW float64
	worldH float64
	width  int
	height int

	showRegions bool

	particleStyle tcell.Style
	playerStyle   tcell.Style
	regionStyle   tcell.Style
	hudStyle      tcell.Style
}

// NewTerminalRenderer initializes a tcell screen sized to the given
// world. Call Close before the process exits to restore the terminal.
func NewTerminalRenderer(worldW, worldH float64) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return newTerminalRenderer(screen, worldW, worldH), nil
}

// newTerminalRenderer wraps an already-initialized screen. Split out
// so tests can drive a simulation screen.
func newTerminalRenderer(screen tcell.Screen, worldW, worldH float64) *TerminalRenderer {
	screen.EnableMouse()
	screen.HideCursor()

	r := &TerminalRenderer{
		screen:      screen,
		worldW:      worldW,
		worldH:      worldH,
		showRegions: true,

		particleStyle: tcell.StyleDefault.Foreground(tcell.ColorAqua),
		playerStyle:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
		regionStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		hudStyle:      tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
	r.width, r.height = screen.Size()
	return r
}

// Close restores the terminal.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

// PollEvent blocks until the next raw terminal event.
func (r *TerminalRenderer) PollEvent() tcell.Event {
	return r.screen.PollEvent()
}

// TranslateEvent maps a raw terminal event to simulation input.
func (r *TerminalRenderer) TranslateEvent(ev tcell.Event) Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return Input{Quit: true}
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			r.showRegions = !r.showRegions
			return Input{ToggleRegions: true}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		world := r.screenToWorld(x, y)
		input := Input{MouseWorld: &world}
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			input.WheelSteps = 1
		case ev.Buttons()&tcell.WheelDown != 0:
			input.WheelSteps = -1
		}
		return input
	case *tcell.EventResize:
		r.width, r.height = r.screen.Size()
		r.screen.Sync()
	}
	return Input{}
}

// ShowingRegions reports whether the quadtree overlay is enabled.
func (r *TerminalRenderer) ShowingRegions() bool {
	return r.showRegions
}

func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	x := int(pos.X / r.worldW * float64(r.width))
	y := int(pos.Y / r.worldH * float64(r.height))
	return x, y
}

func (r *TerminalRenderer) screenToWorld(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x) + 0.5) / float64(r.width) * r.worldW,
		Y: (float64(y) + 0.5) / float64(r.height) * r.worldH,
	}
}

func (r *TerminalRenderer) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderParticle implements entity.Renderer
func (r *TerminalRenderer) RenderParticle(particle *entity.Particle) {
	x, y := r.worldToScreen(particle.Position)
	if r.inBounds(x, y) {
		r.screen.SetContent(x, y, '·', nil, r.particleStyle)
	}
}

// RenderPlayer implements entity.Renderer
func (r *TerminalRenderer) RenderPlayer(player *entity.Player) {
	center := player.GetPosition()
	radius := player.Radius()

	// Ring sampled densely enough that adjacent cells connect.
	steps := int(radius)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		point := physics.Vector2D{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		}
		x, y := r.worldToScreen(point)
		if r.inBounds(x, y) {
			r.screen.SetContent(x, y, 'o', nil, r.playerStyle)
		}
	}

	cx, cy := r.worldToScreen(center)
	if r.inBounds(cx, cy) {
		r.screen.SetContent(cx, cy, '@', nil, r.playerStyle)
	}
}

// RenderRegion implements entity.Renderer
func (r *TerminalRenderer) RenderRegion(region physics.Rect) {
	if !r.showRegions {
		return
	}
	x0, y0 := r.worldToScreen(physics.Vector2D{X: region.X, Y: region.Y})
	x1, y1 := r.worldToScreen(physics.Vector2D{X: region.X + region.W, Y: region.Y + region.H})

	for x := x0; x <= x1; x++ {
		r.setIfEmpty(x, y0, tcell.RuneHLine)
		r.setIfEmpty(x, y1, tcell.RuneHLine)
	}
	for y := y0; y <= y1; y++ {
		r.setIfEmpty(x0, y, tcell.RuneVLine)
		r.setIfEmpty(x1, y, tcell.RuneVLine)
	}
}

// setIfEmpty draws a region border rune without overwriting entities.
func (r *TerminalRenderer) setIfEmpty(x, y int, ch rune) {
	if !r.inBounds(x, y) {
		return
	}
	existing, _, _, _ := r.screen.GetContent(x, y)
	if existing == ' ' || existing == 0 {
		r.screen.SetContent(x, y, ch, nil, r.regionStyle)
	}
}

// RenderHUD implements entity.Renderer
func (r *TerminalRenderer) RenderHUD(tick uint64, particles, candidates, collisions int) {
	text := fmt.Sprintf(" tick %d  particles %d  candidates %d  collisions %d ",
		tick, particles, candidates, collisions)
	for i, ch := range text {
		if i >= r.width {
			break
		}
		r.screen.SetContent(i, 0, ch, nil, r.hudStyle)
	}
}
