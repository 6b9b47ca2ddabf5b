// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/rhighs/quadtree-demo/pkg/config"
	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

func TestNewDemoScene(t *testing.T) {
	game := engine.NewGame(config.DefaultConfig())
	scene := NewDemoScene(game)

	if scene == nil {
		t.Fatal("NewDemoScene() returned nil")
	}
	if scene.game != game {
		t.Error("expected game to be set")
	}
	if scene.world == nil {
		t.Error("expected world to be initialized")
	}
}

func TestDemoScene_Type(t *testing.T) {
	scene := NewDemoScene(engine.NewGame(config.DefaultConfig()))
	if scene.Type() != "DemoScene" {
		t.Errorf("Type() = %q, expected %q", scene.Type(), "DemoScene")
	}
}

// fakeRenderSystem records Add calls without touching the GPU.
type fakeRenderSystem struct {
	added int
}

func (f *fakeRenderSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.added++
}

func newTestEngoRenderer() *EngoRenderer {
	r := NewEngoRenderer(&ecs.World{})
	r.renderSystem = &fakeRenderSystem{}
	return r
}

func TestEngoRenderer_SyncPoolsParticles(t *testing.T) {
	r := newTestEngoRenderer()

	state := &engine.GameState{
		Player: engine.PlayerState{Position: physics.Vector2D{X: 500, Y: 300}, Radius: 100},
		Particles: []engine.ParticleState{
			{Position: physics.Vector2D{X: 10, Y: 10}, Radius: 1},
			{Position: physics.Vector2D{X: 20, Y: 20}, Radius: 1},
			{Position: physics.Vector2D{X: 30, Y: 30}, Radius: 1},
		},
	}
	r.Sync(state, false)

	if len(r.particles) != 3 {
		t.Fatalf("expected pool of 3, got %d", len(r.particles))
	}
	if r.player == nil {
		t.Fatal("expected player entity")
	}

	// Shrinking the population hides the extra entities but keeps them pooled.
	state.Particles = state.Particles[:1]
	r.Sync(state, false)

	if len(r.particles) != 3 {
		t.Errorf("pool should not shrink, got %d", len(r.particles))
	}
	if r.particles[0].render.Hidden {
		t.Error("live particle should be visible")
	}
	if !r.particles[1].render.Hidden || !r.particles[2].render.Hidden {
		t.Error("unused particles should be hidden")
	}
}

func TestEngoRenderer_SyncRegionsToggle(t *testing.T) {
	r := newTestEngoRenderer()

	state := &engine.GameState{
		Player:  engine.PlayerState{Radius: 100},
		Regions: []physics.Rect{physics.NewRect(0, 0, 500, 300)},
	}

	r.Sync(state, true)
	if len(r.regions) != 1 || r.regions[0].render.Hidden {
		t.Fatal("expected visible region entity")
	}
	if r.regions[0].space.Width != 500 {
		t.Errorf("region width %g, expected 500", r.regions[0].space.Width)
	}

	r.Sync(state, false)
	if !r.regions[0].render.Hidden {
		t.Error("regions should be hidden when overlay is off")
	}
}

func TestEngoRenderer_PlayerFollowsSnapshot(t *testing.T) {
	r := newTestEngoRenderer()

	state := &engine.GameState{
		Player: engine.PlayerState{Position: physics.Vector2D{X: 200, Y: 150}, Radius: 50},
	}
	r.Sync(state, false)

	if r.player.space.Position.X != 150 || r.player.space.Position.Y != 100 {
		t.Errorf("player drawable at (%g,%g), expected (150,100)",
			r.player.space.Position.X, r.player.space.Position.Y)
	}
	if r.player.space.Width != 100 {
		t.Errorf("player drawable width %g, expected 100", r.player.space.Width)
	}
}
