// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/rhighs/quadtree-demo/pkg/entity"
	"github.com/rhighs/quadtree-demo/pkg/logging"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// NullRenderer is a no-op implementation of entity.Renderer, used for
// headless runs where only the spectator feed or telemetry matters.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {}

// RenderParticle implements entity.Renderer.
func (d *NullRenderer) RenderParticle(particle *entity.Particle) {
	if particle == nil {
		d.logger.Debug(context.Background(), "RenderParticle called with nil particle")
	}
}

// RenderPlayer implements entity.Renderer.
func (d *NullRenderer) RenderPlayer(player *entity.Player) {
	if player == nil {
		d.logger.Debug(context.Background(), "RenderPlayer called with nil player")
	}
}

// RenderRegion implements entity.Renderer.
func (d *NullRenderer) RenderRegion(region physics.Rect) {}

// RenderHUD implements entity.Renderer.
func (d *NullRenderer) RenderHUD(tick uint64, particles, candidates, collisions int) {
	d.logger.Debug(context.Background(), "frame",
		"tick", tick,
		"particles", particles,
		"candidates", candidates,
		"collisions", collisions,
	)
}
