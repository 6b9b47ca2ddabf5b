// pkg/network/messages.go
package network

import (
	"github.com/rhighs/quadtree-demo/pkg/engine"
)

// Frame is the wire form of one simulation snapshot, msgpack-encoded
// with short keys to keep 60Hz broadcasts small.
type Frame struct {
	Tick      uint64          `msgpack:"t"`
	Player    PlayerFrame     `msgpack:"p"`
	Particles []ParticleFrame `msgpack:"q"`
	Regions   []RectFrame     `msgpack:"r"`
	Stats     StatsFrame      `msgpack:"s"`
}

// PlayerFrame is the wire form of the player circle.
type PlayerFrame struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"r"`
}

// ParticleFrame is the wire form of one particle.
type ParticleFrame struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// RectFrame is the wire form of one index region.
type RectFrame struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	W float64 `msgpack:"w"`
	H float64 `msgpack:"h"`
}

// StatsFrame carries the per-tick counters shown in spectator HUDs.
type StatsFrame struct {
	Particles  int   `msgpack:"n"`
	Candidates int   `msgpack:"c"`
	Collisions int   `msgpack:"h"`
	Culled     int   `msgpack:"d"`
	DurationUS int64 `msgpack:"u"`
}

// FrameFromState converts an engine snapshot to its wire form.
func FrameFromState(state *engine.GameState) *Frame {
	frame := &Frame{
		Tick: state.Tick,
		Player: PlayerFrame{
			X:      state.Player.Position.X,
			Y:      state.Player.Position.Y,
			Radius: state.Player.Radius,
		},
		Particles: make([]ParticleFrame, 0, len(state.Particles)),
		Regions:   make([]RectFrame, 0, len(state.Regions)),
		Stats: StatsFrame{
			Particles:  state.Stats.Particles,
			Candidates: state.Stats.Candidates,
			Collisions: state.Stats.Collisions,
			Culled:     state.Stats.Culled,
			DurationUS: state.Stats.Duration.Microseconds(),
		},
	}
	for _, p := range state.Particles {
		frame.Particles = append(frame.Particles, ParticleFrame{X: p.Position.X, Y: p.Position.Y})
	}
	for _, r := range state.Regions {
		frame.Regions = append(frame.Regions, RectFrame{X: r.X, Y: r.Y, W: r.W, H: r.H})
	}
	return frame
}
