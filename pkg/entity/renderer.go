package entity

import (
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// Renderer handles rendering simulation entities
type Renderer interface {
	RenderParticle(particle *Particle)
	RenderPlayer(player *Player)
	RenderRegion(region physics.Rect)
	RenderHUD(tick uint64, particles, candidates, collisions int)
	Clear()
	Present()
}
