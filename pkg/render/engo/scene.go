// pkg/render/engo/scene.go
package engo

import (
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/rhighs/quadtree-demo/pkg/engine"
)

// DemoScene runs the simulation and draws it in a window. The engine
// ticks inside the scene's update loop, one simulation step per frame.
type DemoScene struct {
	world *ecs.World

	game     *engine.Game
	renderer *EngoRenderer
	input    *InputSystem

	// Observer, when set, receives each tick's stats. Used to feed
	// the telemetry recorder without coupling the scene to it.
	Observer func(engine.FrameStats)
}

// NewDemoScene creates a scene around an existing simulation.
func NewDemoScene(game *engine.Game) *DemoScene {
	return &DemoScene{
		game:  game,
		world: &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *DemoScene) Type() string {
	return "DemoScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *DemoScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *DemoScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	scene.world.AddSystem(&common.RenderSystem{})
	scene.world.AddSystem(&common.MouseSystem{})

	scene.renderer = NewEngoRenderer(scene.world)
	scene.renderer.Initialize()

	RegisterButtons()
	scene.input = NewInputSystem(scene.game)
	scene.world.AddSystem(scene.input)

	scene.world.AddSystem(&simSystem{scene: scene})

	scene.game.Start()
}

// Exit is called when the scene ends.
func (scene *DemoScene) Exit() {
	scene.game.Stop()
}

// simSystem advances the simulation and pushes the fresh snapshot to
// the renderer every frame.
type simSystem struct {
	scene *DemoScene
}

func (s *simSystem) Update(dt float32) {
	stats := s.scene.game.Update(float64(dt))
	if s.scene.Observer != nil {
		s.scene.Observer(stats)
	}
	state := s.scene.game.GetGameState()
	s.scene.renderer.Sync(state, s.scene.input.ShowingRegions())

	engo.SetTitle(fmt.Sprintf("quadtree demo | particles %d  candidates %d  collisions %d",
		stats.Particles, stats.Candidates, stats.Collisions))
}

func (s *simSystem) Remove(basic ecs.BasicEntity) {}

// Run opens the window and blocks until the user quits.
func Run(scene *DemoScene, width, height int) {
	opts := engo.RunOptions{
		Title:  "quadtree demo",
		Width:  width,
		Height: height,
	}
	engo.Run(opts, scene)
}
