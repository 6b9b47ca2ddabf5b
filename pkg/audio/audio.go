// Package audio plays a short blip when particles bounce off the
// player. Sound is best effort: failed speaker init leaves the demo
// silent but running.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/rhighs/quadtree-demo/pkg/event"
	"github.com/rhighs/quadtree-demo/pkg/logging"
)

const (
	sampleRate   = beep.SampleRate(44100)
	blipDuration = 40 * time.Millisecond
	blipFreq     = 880
	minGap       = 50 * time.Millisecond
)

// Player owns the speaker and throttles blips so a burst of
// collisions in one tick does not stack into noise.
type Player struct {
	logger *logging.Logger

	mu       sync.Mutex
	ready    bool
	lastBlip time.Time
}

// NewPlayer initializes the speaker. On failure the returned player
// is inert, not nil.
func NewPlayer() *Player {
	p := &Player{logger: logging.NewLogger()}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		p.logger.Warn(context.Background(), "audio unavailable", "error", err.Error())
		return p
	}
	p.ready = true
	return p
}

// Ready reports whether the speaker initialized.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// PlayCollision plays the bounce blip, rate-limited.
func (p *Player) PlayCollision() {
	p.mu.Lock()
	if !p.ready || time.Since(p.lastBlip) < minGap {
		p.mu.Unlock()
		return
	}
	p.lastBlip = time.Now()
	p.mu.Unlock()

	sine, err := generators.SineTone(sampleRate, blipFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(blipDuration), sine))
}

// Attach subscribes the player to collision events on the bus.
func (p *Player) Attach(bus *event.Bus) {
	bus.Subscribe(event.ParticleCollision, func(e event.Event) {
		p.PlayCollision()
	})
}

// Close releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}
