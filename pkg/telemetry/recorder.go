// pkg/telemetry/recorder.go
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/logging"
)

const flushInterval = 2 * time.Second

// Recorder persists frame stats in the background. Record never
// blocks the simulation loop: when the queue is full samples are
// dropped.
type Recorder struct {
	store     *Store
	logger    *logging.Logger
	batchSize int

	samples chan FrameSample
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewRecorder creates and starts a recorder writing to the store.
func NewRecorder(store *Store, batchSize int) *Recorder {
	if batchSize < 1 {
		batchSize = 64
	}
	r := &Recorder{
		store:     store,
		logger:    logging.NewLogger(),
		batchSize: batchSize,
		samples:   make(chan FrameSample, batchSize*16),
		stop:      make(chan struct{}),
	}
	r.wg.Add(1)
	go r.writer()
	return r
}

// Record enqueues one tick's stats for async persistence.
func (r *Recorder) Record(stats engine.FrameStats) {
	select {
	case r.samples <- FrameSample{
		Tick:       stats.Tick,
		Particles:  stats.Particles,
		Candidates: stats.Candidates,
		Collisions: stats.Collisions,
		Culled:     stats.Culled,
		DurationUS: stats.Duration.Microseconds(),
		RecordedAt: time.Now().UTC(),
	}:
	default:
		// Queue full; dropping a sample beats stalling the tick.
	}
}

// Stop flushes pending samples and shuts the writer down.
func (r *Recorder) Stop() {
	close(r.stop)
	r.wg.Wait()
}

func (r *Recorder) writer() {
	defer r.wg.Done()

	batch := make([]FrameSample, 0, r.batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case sample := <-r.samples:
			batch = append(batch, sample)
			if len(batch) >= r.batchSize {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-r.stop:
			close(r.samples)
			for sample := range r.samples {
				batch = append(batch, sample)
			}
			if len(batch) > 0 {
				r.flush(batch)
			}
			return
		}
	}
}

func (r *Recorder) flush(batch []FrameSample) {
	if err := r.store.InsertSamples(batch); err != nil {
		r.logger.Error(context.Background(), "failed to persist frame samples", err,
			"batch_size", len(batch),
		)
	}
}
