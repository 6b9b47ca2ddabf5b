// Package health exposes liveness and readiness probes for headless
// simulation runs, where there is no window to look at and the only
// sign of life is the HTTP surface.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HealthCheck is one component's health probe.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the process.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check, replacing any existing check
// with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered checks. The overall status is
// "healthy" only if every individual check passes.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// LivenessHandler returns 200 OK whenever the process can serve HTTP.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs all checks and returns 503 if any fail.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// SimulationHealthCheck verifies that the simulation is running and
// its tick counter keeps advancing.
type SimulationHealthCheck struct {
	running    func() bool
	tick       func() uint64
	stallAfter time.Duration

	mu          sync.Mutex
	lastTick    uint64
	lastAdvance time.Time
}

// NewSimulationHealthCheck creates a simulation check. stallAfter is
// how long the tick may stay unchanged before the check fails.
func NewSimulationHealthCheck(running func() bool, tick func() uint64, stallAfter time.Duration) *SimulationHealthCheck {
	return &SimulationHealthCheck{
		running:     running,
		tick:        tick,
		stallAfter:  stallAfter,
		lastAdvance: time.Now(),
	}
}

// Name returns the name of this health check.
func (s *SimulationHealthCheck) Name() string {
	return "simulation"
}

// Check verifies the simulation is running and not stalled.
func (s *SimulationHealthCheck) Check(ctx context.Context) error {
	if !s.running() {
		return fmt.Errorf("simulation is not running")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.tick()
	if current != s.lastTick {
		s.lastTick = current
		s.lastAdvance = time.Now()
		return nil
	}
	if since := time.Since(s.lastAdvance); since > s.stallAfter {
		return fmt.Errorf("simulation stalled at tick %d for %s", current, since.Round(time.Millisecond))
	}
	return nil
}

// FeedHealthCheck verifies that the spectator listener is active.
type FeedHealthCheck struct {
	listenerAddr func() string
}

// NewFeedHealthCheck creates a check for the spectator feed listener.
func NewFeedHealthCheck(listenerAddr func() string) *FeedHealthCheck {
	return &FeedHealthCheck{
		listenerAddr: listenerAddr,
	}
}

// Name returns the name of this health check.
func (f *FeedHealthCheck) Name() string {
	return "spectator_feed"
}

// Check verifies that the feed listener is active.
func (f *FeedHealthCheck) Check(ctx context.Context) error {
	if f.listenerAddr() == "" {
		return fmt.Errorf("spectator feed listener is not active")
	}
	return nil
}

// ParticleLoadHealthCheck fails when the particle population exceeds
// a limit, which means culling has fallen behind spawning.
type ParticleLoadHealthCheck struct {
	maxParticles int
	particles    func() int
}

// NewParticleLoadHealthCheck creates a check for the particle population.
func NewParticleLoadHealthCheck(maxParticles int, particles func() int) *ParticleLoadHealthCheck {
	return &ParticleLoadHealthCheck{
		maxParticles: maxParticles,
		particles:    particles,
	}
}

// Name returns the name of this health check.
func (p *ParticleLoadHealthCheck) Name() string {
	return "particle_load"
}

// Check verifies that the particle population is within limits.
func (p *ParticleLoadHealthCheck) Check(ctx context.Context) error {
	current := p.particles()
	if current > p.maxParticles {
		return fmt.Errorf("particle count %d exceeds limit %d", current, p.maxParticles)
	}
	return nil
}
