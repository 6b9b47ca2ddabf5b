// Package telemetry persists per-tick frame statistics to SQLite so
// long demo runs can be analyzed offline: how the candidate count
// tracks the particle population, where frame time spikes, and so on.
package telemetry

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// FrameSample is one persisted tick measurement.
type FrameSample struct {
	Tick       uint64
	Particles  int
	Candidates int
	Collisions int
	Culled     int
	DurationUS int64
	RecordedAt time.Time
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS frame_samples (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	tick        INTEGER NOT NULL,
	particles   INTEGER NOT NULL,
	candidates  INTEGER NOT NULL,
	collisions  INTEGER NOT NULL,
	culled      INTEGER NOT NULL,
	duration_us INTEGER NOT NULL,
	recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_frame_samples_tick ON frame_samples(tick);
`

// OpenStore opens (or creates) the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry database: %w", err)
	}

	// WAL keeps the background writer from blocking readers.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// InsertSamples writes a batch of samples in one transaction.
func (s *Store) InsertSamples(samples []FrameSample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO frame_samples
		(tick, particles, candidates, collisions, culled, duration_us, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sample := range samples {
		if _, err := stmt.Exec(
			sample.Tick, sample.Particles, sample.Candidates,
			sample.Collisions, sample.Culled, sample.DurationUS,
			sample.RecordedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert sample: %w", err)
		}
	}

	return tx.Commit()
}

// RecentSamples returns the newest limit samples, oldest first.
func (s *Store) RecentSamples(limit int) ([]FrameSample, error) {
	rows, err := s.conn.Query(`SELECT tick, particles, candidates, collisions, culled, duration_us, recorded_at
		FROM frame_samples ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []FrameSample
	for rows.Next() {
		var sample FrameSample
		if err := rows.Scan(
			&sample.Tick, &sample.Particles, &sample.Candidates,
			&sample.Collisions, &sample.Culled, &sample.DurationUS,
			&sample.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
	return samples, nil
}

// SampleCount returns the total number of persisted samples.
func (s *Store) SampleCount() (int64, error) {
	var count int64
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM frame_samples`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return count, nil
}
