// pkg/entity/player.go
package entity

import (
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// Player is the pointer-controlled circle that particles bounce off.
// Its position is set directly from input each frame; Velocity holds
// the resulting per-frame motion so collisions can inherit it.
type Player struct {
	BaseEntity
	MinRadius float64
	MaxRadius float64
	WheelStep float64

	prevPosition physics.Vector2D
}

// NewPlayer creates a player with the given starting radius and the
// allowed radius range.
func NewPlayer(id ID, position physics.Vector2D, radius, minRadius, maxRadius, wheelStep float64) *Player {
	p := &Player{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Collider: physics.Circle{
				Center: position,
				Radius: radius,
			},
			Active: true,
		},
		MinRadius: minRadius,
		MaxRadius: maxRadius,
		WheelStep: wheelStep,

		prevPosition: position,
	}
	p.SetRadius(radius)
	return p
}

// MoveTo places the player at the pointer position and derives the
// frame velocity from the displacement since the previous frame.
func (p *Player) MoveTo(position physics.Vector2D, deltaTime float64) {
	p.prevPosition = p.Position
	p.Position = position
	p.Collider.Center = position
	if deltaTime > 0 {
		p.Velocity = position.Sub(p.prevPosition).Scale(1 / deltaTime)
	} else {
		p.Velocity = physics.Vector2D{}
	}
}

// Radius returns the player's current radius.
func (p *Player) Radius() float64 {
	return p.Collider.Radius
}

// SetRadius clamps the radius into the allowed range.
func (p *Player) SetRadius(radius float64) {
	if radius < p.MinRadius {
		radius = p.MinRadius
	}
	if radius > p.MaxRadius {
		radius = p.MaxRadius
	}
	p.Collider.Radius = radius
}

// Grow adjusts the radius by steps wheel increments. Negative steps
// shrink the player.
func (p *Player) Grow(steps float64) {
	p.SetRadius(p.Collider.Radius + steps*p.WheelStep)
}

// Bounds returns the axis-aligned rectangle enclosing the player,
// used as the broad-phase query area.
func (p *Player) Bounds() physics.Rect {
	return p.GetCollider().Bounds()
}

// Render draws the player
func (p *Player) Render(r Renderer) {
	r.RenderPlayer(p)
}
