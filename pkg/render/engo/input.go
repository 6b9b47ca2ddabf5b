// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

const (
	toggleRegionsButton = "toggleRegions"
	quitButton          = "quit"
)

// InputSystem feeds pointer and key input into the simulation: the
// player follows the mouse, the wheel resizes it, space toggles the
// region overlay, escape quits.
type InputSystem struct {
	game *engine.Game

	showRegions bool
}

// NewInputSystem creates an input system driving the given simulation.
func NewInputSystem(game *engine.Game) *InputSystem {
	return &InputSystem{
		game:        game,
		showRegions: true,
	}
}

// RegisterButtons binds the key names used by Update. Called once
// during scene setup.
func RegisterButtons() {
	engo.Input.RegisterButton(toggleRegionsButton, engo.KeySpace)
	engo.Input.RegisterButton(quitButton, engo.KeyEscape, engo.KeyQ)
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes one frame of input.
func (is *InputSystem) Update(dt float32) {
	mouse := engo.Input.Mouse
	is.game.MovePlayer(physics.Vector2D{
		X: float64(mouse.X),
		Y: float64(mouse.Y),
	}, float64(dt))

	if mouse.ScrollY != 0 {
		is.game.ResizePlayer(float64(mouse.ScrollY))
	}

	if engo.Input.Button(toggleRegionsButton).JustPressed() {
		is.showRegions = !is.showRegions
	}
	if engo.Input.Button(quitButton).JustPressed() {
		engo.Exit()
	}
}

// ShowingRegions reports whether the quadtree overlay is enabled.
func (is *InputSystem) ShowingRegions() bool {
	return is.showRegions
}
