// pkg/engine/game.go
package engine

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rhighs/quadtree-demo/pkg/config"
	"github.com/rhighs/quadtree-demo/pkg/entity"
	"github.com/rhighs/quadtree-demo/pkg/event"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

// Game holds the simulation state: the falling particles, the
// pointer-controlled player, and the spatial index rebuilt every tick.
type Game struct {
	Config       *config.SimConfig
	Player       *entity.Player
	Particles    []*entity.Particle
	EntityLock   sync.RWMutex
	Running      bool
	CurrentTick  uint64
	LastUpdate   time.Time
	EventBus     *event.Bus
	SpatialIndex *physics.QuadTree

	spawnAccumulator float64
	lastStats        FrameStats

	rng *rand.Rand
}

// FrameStats summarizes the work done in a single tick.
type FrameStats struct {
	Tick       uint64
	Particles  int
	Candidates int
	Collisions int
	Culled     int
	Duration   time.Duration
}

// NewGame creates a simulation from the given configuration.
func NewGame(cfg *config.SimConfig) *Game {
	center := physics.Vector2D{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2}
	game := &Game{
		Config: cfg,
		Player: entity.NewPlayer(
			entity.GenerateID(), center,
			cfg.Player.Radius, cfg.Player.MinRadius, cfg.Player.MaxRadius,
			cfg.Player.WheelStep,
		),
		LastUpdate: time.Now(),
		EventBus:   event.NewEventBus(),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	game.initSpatialIndex()
	return game
}

func (g *Game) initSpatialIndex() {
	bounds := physics.NewRect(0, 0, g.Config.WorldWidth, g.Config.WorldHeight)
	g.SpatialIndex = physics.NewQuadTreeWithDepth(
		bounds, g.Config.Index.Capacity, g.Config.Index.MaxDepth,
	)
}

// Start marks the simulation running and publishes a start event.
func (g *Game) Start() {
	g.Running = true
	g.LastUpdate = time.Now()
	g.EventBus.Publish(event.NewSimulationStartedEvent(g))
}

// Stop halts the simulation and publishes a stop event.
func (g *Game) Stop() {
	g.Running = false
	g.EventBus.Publish(event.NewSimulationStoppedEvent(g, g.CurrentTick))
}

// Update advances the simulation by deltaTime seconds: spawn, cull,
// rebuild the spatial index, resolve player collisions, integrate.
func (g *Game) Update(deltaTime float64) FrameStats {
	started := time.Now()

	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	culled := g.cullParticles()
	g.spawnParticles(deltaTime)
	g.rebuildSpatialIndex()
	candidates, collisions := g.resolvePlayerCollisions()
	g.integrateParticles(deltaTime)
	g.CurrentTick++

	g.lastStats = FrameStats{
		Tick:       g.CurrentTick,
		Particles:  len(g.Particles),
		Candidates: candidates,
		Collisions: collisions,
		Culled:     culled,
		Duration:   time.Since(started),
	}
	return g.lastStats
}

// MovePlayer places the player under the pointer. Safe to call from
// the render loop while Update runs on another goroutine.
func (g *Game) MovePlayer(position physics.Vector2D, deltaTime float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.Player.MoveTo(position, deltaTime)
}

// ResizePlayer grows or shrinks the player by wheel steps.
func (g *Game) ResizePlayer(steps float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.Player.Grow(steps)
}

// spawnParticles emits a batch of particles along the top edge once
// enough time has accumulated. Batch size is rate*interval so the
// average spawn rate is independent of frame timing.
func (g *Game) spawnParticles(deltaTime float64) {
	spawn := g.Config.Spawn
	g.spawnAccumulator += deltaTime
	for g.spawnAccumulator >= spawn.Interval {
		g.spawnAccumulator -= spawn.Interval
		batch := int(spawn.Rate * spawn.Interval)
		for i := 0; i < batch; i++ {
			position := physics.Vector2D{
				X: g.rng.Float64() * g.Config.WorldWidth,
				Y: 0,
			}
			fallSpeed := spawn.FallSpeedMin +
				g.rng.Float64()*(spawn.FallSpeedMax-spawn.FallSpeedMin)
			g.Particles = append(g.Particles, entity.NewParticle(
				entity.GenerateID(), position, fallSpeed, spawn.ParticleRadius,
			))
		}
	}
}

// cullParticles removes particles that fell past the bottom edge,
// compacting the slice in place.
func (g *Game) cullParticles() int {
	kept := g.Particles[:0]
	for _, p := range g.Particles {
		if p.Below(g.Config.WorldHeight) {
			continue
		}
		kept = append(kept, p)
	}
	removed := len(g.Particles) - len(kept)
	for i := len(kept); i < len(g.Particles); i++ {
		g.Particles[i] = nil
	}
	g.Particles = kept

	if removed > 0 {
		g.EventBus.Publish(event.NewCullEvent(g, removed, g.CurrentTick))
	}
	return removed
}

// rebuildSpatialIndex discards last tick's tree and inserts every
// particle keyed by its slice index. IDs are only meaningful until the
// next rebuild.
func (g *Game) rebuildSpatialIndex() {
	g.initSpatialIndex()
	for i, p := range g.Particles {
		g.SpatialIndex.Insert(i, p.Position)
	}
}

// resolvePlayerCollisions queries the index for particles near the
// player and bounces the ones actually touching it. The query returns
// whole leaves, so every candidate is re-checked against the exact
// circle before responding.
func (g *Game) resolvePlayerCollisions() (candidates, collisions int) {
	playerCollider := g.Player.GetCollider()
	found := g.SpatialIndex.Query(g.Player.Bounds())
	candidates = len(found)

	for _, point := range found {
		particle := g.Particles[point.ID]
		result := physics.CheckCollision(playerCollider, particle.GetCollider())
		if !result.Collided {
			continue
		}
		g.bounceParticle(particle, result)
		collisions++
		g.EventBus.Publish(event.NewCollisionEvent(g, uint64(particle.GetID()), g.CurrentTick))
	}
	return candidates, collisions
}

// bounceParticle pushes the particle out to contact distance and
// reflects its velocity off the player surface. The player's own
// motion is added so a moving player flings particles.
func (g *Game) bounceParticle(particle *entity.Particle, result physics.CollisionResult) {
	phys := g.Config.Physics
	contact := g.Player.Radius() + particle.Collider.Radius
	particle.Position = g.Player.GetPosition().Add(result.Normal.Scale(contact))
	particle.Collider.Center = particle.Position

	reflected := physics.Reflect(particle.Velocity, result.Normal)
	speed := reflected.Length() * phys.Restitution
	if speed < phys.MinBounceSpeed {
		speed = phys.MinBounceSpeed
	}

	jitter := (g.rng.Float64()*2 - 1) * phys.AngleJitter
	direction := result.Normal
	if reflected.LengthSquared() > 0 {
		direction = reflected.Normalize()
	}
	direction = direction.Rotate(jitter)

	particle.Velocity = direction.Scale(speed).Add(g.Player.Velocity)
}

// integrateParticles applies gravity and advances positions.
func (g *Game) integrateParticles(deltaTime float64) {
	gravity := g.Config.Physics.Gravity
	for _, p := range g.Particles {
		p.UpdateWithGravity(deltaTime, gravity)
	}
}

// LastStats returns the stats from the most recent tick.
func (g *Game) LastStats() FrameStats {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.lastStats
}
