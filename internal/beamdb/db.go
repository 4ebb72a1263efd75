// Package beamdb persists generated beams so that propagation runs can be
// repeated against an identical ray set.
package beamdb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/beamrays/internal/beam"
	"github.com/banshee-data/beamrays/internal/monitoring"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("beam run not found")

// DB wraps a SQLite connection holding beam runs.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and migrates it to the latest
// schema.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	// PRAGMAs are per connection.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Run describes one generated beam.
type Run struct {
	RunID               string    `json:"run_id"`
	Kind                beam.Kind `json:"kind"`
	NumRaysApprox       int       `json:"num_rays_approx"`
	Size                float64   `json:"size"` // outer radius or semiangle
	Random              bool      `json:"random"`
	Seed                uint64    `json:"seed"`
	NumRays             int       `json:"num_rays"`
	AcceleratingVoltage float64   `json:"accelerating_voltage"`
	Wavelength          float64   `json:"wavelength"`
	CreatedAt           int64     `json:"created_at"`
}

// RecordRun stores run and its rays in a single transaction. RunID and
// CreatedAt are filled in when empty; NumRays is taken from rays.
func (db *DB) RecordRun(run *Run, rays *beam.Rays) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	run.NumRays = rays.Num()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO beam_runs (
			run_id, kind, num_rays_approx, size, random, seed, num_rays,
			accelerating_voltage, wavelength, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, string(run.Kind), run.NumRaysApprox, run.Size, run.Random, int64(run.Seed), run.NumRays,
		run.AcceleratingVoltage, run.Wavelength, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO beam_rays (run_id, ray_index, x, theta_x, y, theta_y) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare ray insert: %w", err)
	}
	defer stmt.Close()

	xs, txs, ys, tys := rays.X(), rays.SlopeX(), rays.Y(), rays.SlopeY()
	for i := range xs {
		if _, err := stmt.Exec(run.RunID, i, xs[i], txs[i], ys[i], tys[i]); err != nil {
			return fmt.Errorf("failed to insert ray %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	monitoring.Logf("[beamdb] recorded run %s (%s, %d rays)", run.RunID, run.Kind, run.NumRays)
	return nil
}

const runColumns = `run_id, kind, num_rays_approx, size, random, seed, num_rays,
	COALESCE(accelerating_voltage, 0), COALESCE(wavelength, 0), created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	var kind string
	var seed int64
	if err := s.Scan(&r.RunID, &kind, &r.NumRaysApprox, &r.Size, &r.Random, &seed, &r.NumRays,
		&r.AcceleratingVoltage, &r.Wavelength, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Kind = beam.Kind(kind)
	r.Seed = uint64(seed)
	return &r, nil
}

// GetRun returns a single run.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM beam_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// Runs lists all runs, newest first.
func (db *DB) Runs() ([]*Run, error) {
	rows, err := db.Query(`SELECT ` + runColumns + ` FROM beam_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRays rebuilds the ray set of a stored run.
func (db *DB) LoadRays(runID string) (*beam.Rays, error) {
	run, err := db.GetRun(runID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT x, theta_x, y, theta_y FROM beam_rays
		WHERE run_id = ? ORDER BY ray_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rays: %w", err)
	}
	defer rows.Close()

	x := make([]float64, 0, run.NumRays)
	tx := make([]float64, 0, run.NumRays)
	y := make([]float64, 0, run.NumRays)
	ty := make([]float64, 0, run.NumRays)
	for rows.Next() {
		var vx, vtx, vy, vty float64
		if err := rows.Scan(&vx, &vtx, &vy, &vty); err != nil {
			return nil, fmt.Errorf("failed to scan ray: %w", err)
		}
		x = append(x, vx)
		tx = append(tx, vtx)
		y = append(y, vy)
		ty = append(ty, vty)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(x) != run.NumRays {
		return nil, fmt.Errorf("run %s: expected %d rays, found %d", runID, run.NumRays, len(x))
	}
	return beam.NewRays(x, tx, y, ty)
}

// DeleteRun removes a run and its rays.
func (db *DB) DeleteRun(runID string) error {
	res, err := db.Exec(`DELETE FROM beam_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
