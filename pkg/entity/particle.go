// pkg/entity/particle.go
package entity

import (
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// Particle is a falling circle subject to gravity. Thousands of these
// are alive at once, so the struct stays small and methods avoid
// allocation.
type Particle struct {
	BaseEntity
}

// NewParticle creates a particle at the given position with an initial
// downward velocity.
func NewParticle(id ID, position physics.Vector2D, fallSpeed, radius float64) *Particle {
	return &Particle{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Velocity: physics.Vector2D{X: 0, Y: fallSpeed},
			Collider: physics.Circle{
				Center: position,
				Radius: radius,
			},
			Active: true,
		},
	}
}

// Update applies gravity and integrates position
func (p *Particle) Update(deltaTime float64) {
	p.Velocity.Y += gravity * deltaTime
	p.BaseEntity.Update(deltaTime)
}

// UpdateWithGravity integrates with an explicit gravity value, used
// when the simulation config overrides the default.
func (p *Particle) UpdateWithGravity(deltaTime, g float64) {
	p.Velocity.Y += g * deltaTime
	p.BaseEntity.Update(deltaTime)
}

// Below reports whether the particle has fallen past the given floor.
func (p *Particle) Below(floor float64) bool {
	return p.Position.Y > floor
}

// Render draws the particle
func (p *Particle) Render(r Renderer) {
	r.RenderParticle(p)
}

// gravity is the default downward acceleration in world units per
// second squared. Positive Y points down.
const gravity = 500.0
