// pkg/engine/state.go
package engine

import (
	"github.com/rhighs/quadtree-demo/pkg/entity"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// GameState represents a snapshot of the simulation, safe to hand to
// renderers and network code while the engine keeps ticking.
type GameState struct {
	Tick      uint64
	Player    PlayerState
	Particles []ParticleState
	Regions   []physics.Rect
	Stats     FrameStats
}

// PlayerState represents a snapshot of the player's state
type PlayerState struct {
	ID       entity.ID
	Position physics.Vector2D
	Radius   float64
}

// ParticleState represents a snapshot of a particle's state
type ParticleState struct {
	Position physics.Vector2D
	Radius   float64
}

// GetGameState returns a snapshot of the current simulation state
func (g *Game) GetGameState() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds the complete snapshot. Caller holds
// at least a read lock.
func (g *Game) createGameStateSnapshot() *GameState {
	state := &GameState{
		Tick: g.CurrentTick,
		Player: PlayerState{
			ID:       g.Player.GetID(),
			Position: g.Player.GetPosition(),
			Radius:   g.Player.Radius(),
		},
		Particles: make([]ParticleState, 0, len(g.Particles)),
		Regions:   g.SpatialIndex.Regions(nil),
		Stats:     g.lastStats,
	}
	for _, p := range g.Particles {
		state.Particles = append(state.Particles, ParticleState{
			Position: p.Position,
			Radius:   p.Collider.Radius,
		})
	}
	return state
}
