// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimConfig contains configuration for one demo run
type SimConfig struct {
	WorldWidth  float64         `json:"worldWidth"`
	WorldHeight float64         `json:"worldHeight"`
	Index       IndexConfig     `json:"index"`
	Spawn       SpawnConfig     `json:"spawn"`
	Physics     PhysicsConfig   `json:"physics"`
	Player      PlayerConfig    `json:"player"`
	Network     NetworkConfig   `json:"network"`
	Telemetry   TelemetryConfig `json:"telemetry"`
}

// IndexConfig contains spatial index tuning
type IndexConfig struct {
	// Capacity is the number of points a quadtree leaf holds before
	// the next insertion splits it.
	Capacity int `json:"capacity"`
	// MaxDepth bounds subdivision under pathological clustering.
	MaxDepth int `json:"maxDepth"`
}

// SpawnConfig controls the particle emitter
type SpawnConfig struct {
	Interval       float64 `json:"interval"`  // seconds between spawn batches
	Rate           float64 `json:"rate"`      // particles per second
	ParticleRadius float64 `json:"particleRadius"`
	FallSpeedMin   float64 `json:"fallSpeedMin"`
	FallSpeedMax   float64 `json:"fallSpeedMax"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity        float64 `json:"gravity"`
	Restitution    float64 `json:"restitution"`
	MinBounceSpeed float64 `json:"minBounceSpeed"`
	AngleJitter    float64 `json:"angleJitter"` // radians, applied ± after a bounce
}

// PlayerConfig contains the pointer-driven actor's configuration
type PlayerConfig struct {
	Radius    float64 `json:"radius"`
	MinRadius float64 `json:"minRadius"`
	MaxRadius float64 `json:"maxRadius"`
	WheelStep float64 `json:"wheelStep"`
}

// NetworkConfig contains the spectator feed configuration
type NetworkConfig struct {
	ListenAddress string `json:"listenAddress"`
	UpdateRate    int    `json:"updateRate"` // frames broadcast per second
	MaxSpectators int    `json:"maxSpectators"`
}

// TelemetryConfig contains the frame-sample recorder configuration
type TelemetryConfig struct {
	Path      string `json:"path"`      // sqlite file; empty disables recording
	BatchSize int    `json:"batchSize"` // samples per transaction
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *SimConfig) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.Index.Capacity < 1 {
		return fmt.Errorf("index capacity must be at least 1, got %d", c.Index.Capacity)
	}
	if c.Index.MaxDepth < 1 {
		return fmt.Errorf("index max depth must be at least 1, got %d", c.Index.MaxDepth)
	}
	if c.Spawn.Interval <= 0 {
		return fmt.Errorf("spawn interval must be positive, got %g", c.Spawn.Interval)
	}
	if c.Spawn.Rate < 0 {
		return fmt.Errorf("spawn rate must not be negative, got %g", c.Spawn.Rate)
	}
	if c.Spawn.FallSpeedMax < c.Spawn.FallSpeedMin {
		return fmt.Errorf("fall speed range inverted: [%g, %g]", c.Spawn.FallSpeedMin, c.Spawn.FallSpeedMax)
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0, 1], got %g", c.Physics.Restitution)
	}
	if c.Player.MaxRadius < c.Player.MinRadius {
		return fmt.Errorf("player radius range inverted: [%g, %g]", c.Player.MinRadius, c.Player.MaxRadius)
	}
	if c.Network.UpdateRate < 1 {
		return fmt.Errorf("network update rate must be at least 1, got %d", c.Network.UpdateRate)
	}
	return nil
}

// DefaultConfig returns the configuration matching the original demo:
// a 1000x600 universe, capacity-10 quadtree, 2000 particles/second.
func DefaultConfig() *SimConfig {
	return &SimConfig{
		WorldWidth:  1000,
		WorldHeight: 600,
		Index: IndexConfig{
			Capacity: 10,
			MaxDepth: 16,
		},
		Spawn: SpawnConfig{
			Interval:       0.05,
			Rate:           2000,
			ParticleRadius: 1,
			FallSpeedMin:   100,
			FallSpeedMax:   300,
		},
		Physics: PhysicsConfig{
			Gravity:        500,
			Restitution:    0.3,
			MinBounceSpeed: 100,
			AngleJitter:    0.1,
		},
		Player: PlayerConfig{
			Radius:    100,
			MinRadius: 30,
			MaxRadius: 300,
			WheelStep: 5,
		},
		Network: NetworkConfig{
			ListenAddress: "localhost:4580",
			UpdateRate:    20,
			MaxSpectators: 32,
		},
		Telemetry: TelemetryConfig{
			Path:      "",
			BatchSize: 64,
		},
	}
}
