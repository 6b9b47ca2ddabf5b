// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// drawEntity is one pooled drawable in the render system.
type drawEntity struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// renderAdder is the part of common.RenderSystem the renderer needs.
type renderAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// EngoRenderer draws simulation snapshots through Engo's render
// system. Particle and region entities are pooled: the pool grows to
// the high-water mark and unused entries are hidden, so steady-state
// frames allocate nothing.
type EngoRenderer struct {
	world        *ecs.World
	renderSystem renderAdder

	player    *drawEntity
	particles []*drawEntity
	regions   []*drawEntity

	particleColor color.RGBA
	playerColor   color.RGBA
	regionColor   color.RGBA
}

// NewEngoRenderer creates a renderer bound to the scene's world.
func NewEngoRenderer(world *ecs.World) *EngoRenderer {
	return &EngoRenderer{
		world:         world,
		particleColor: color.RGBA{R: 80, G: 200, B: 255, A: 255},
		playerColor:   color.RGBA{R: 255, G: 210, B: 0, A: 255},
		regionColor:   color.RGBA{R: 90, G: 90, B: 90, A: 255},
	}
}

// Initialize locates the render system added during scene setup.
func (r *EngoRenderer) Initialize() {
	for _, system := range r.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
		}
	}
	if r.renderSystem == nil {
		r.renderSystem = &common.RenderSystem{}
		r.world.AddSystem(r.renderSystem)
	}
}

// Sync updates all drawables to match the given snapshot.
func (r *EngoRenderer) Sync(state *engine.GameState, showRegions bool) {
	r.syncPlayer(state)
	r.syncParticles(state)
	r.syncRegions(state, showRegions)
}

func (r *EngoRenderer) syncPlayer(state *engine.GameState) {
	if r.player == nil {
		r.player = r.addEntity(common.Circle{}, r.playerColor, 2)
	}
	radius := float32(state.Player.Radius)
	r.player.space.Position = engo.Point{
		X: float32(state.Player.Position.X) - radius,
		Y: float32(state.Player.Position.Y) - radius,
	}
	r.player.space.Width = radius * 2
	r.player.space.Height = radius * 2
}

func (r *EngoRenderer) syncParticles(state *engine.GameState) {
	for i, particle := range state.Particles {
		if i >= len(r.particles) {
			r.particles = append(r.particles, r.addEntity(common.Circle{}, r.particleColor, 1))
		}
		e := r.particles[i]
		radius := float32(particle.Radius)
		// Single-pixel particles stay visible at any zoom.
		if radius < 1 {
			radius = 1
		}
		e.render.Hidden = false
		e.space.Position = engo.Point{
			X: float32(particle.Position.X) - radius,
			Y: float32(particle.Position.Y) - radius,
		}
		e.space.Width = radius * 2
		e.space.Height = radius * 2
	}
	for i := len(state.Particles); i < len(r.particles); i++ {
		r.particles[i].render.Hidden = true
	}
}

func (r *EngoRenderer) syncRegions(state *engine.GameState, showRegions bool) {
	if !showRegions {
		for _, e := range r.regions {
			e.render.Hidden = true
		}
		return
	}
	for i, region := range state.Regions {
		if i >= len(r.regions) {
			drawable := common.Rectangle{BorderWidth: 1, BorderColor: r.regionColor}
			e := r.addEntity(drawable, color.RGBA{}, 0)
			r.regions = append(r.regions, e)
		}
		e := r.regions[i]
		e.render.Hidden = false
		r.placeRegion(e, region)
	}
	for i := len(state.Regions); i < len(r.regions); i++ {
		r.regions[i].render.Hidden = true
	}
}

func (r *EngoRenderer) placeRegion(e *drawEntity, region physics.Rect) {
	e.space.Position = engo.Point{X: float32(region.X), Y: float32(region.Y)}
	e.space.Width = float32(region.W)
	e.space.Height = float32(region.H)
}

func (r *EngoRenderer) addEntity(drawable common.Drawable, fill color.RGBA, z float32) *drawEntity {
	e := &drawEntity{basic: ecs.NewBasic()}
	e.render = common.RenderComponent{
		Drawable: drawable,
		Color:    fill,
	}
	e.render.SetZIndex(z)
	e.space = common.SpaceComponent{}
	r.renderSystem.Add(&e.basic, &e.render, &e.space)
	return e
}
