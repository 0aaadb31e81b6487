package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"firewatch/internal/model"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// InsertRun records the start of a run.
func (r *EventRepository) InsertRun(run *model.Run) error {
	r.db.Lock()
	defer r.db.Unlock()

	return insertRun(r.db.Conn(), run)
}

// InsertBatch adds all events of a run in a single transaction.
func (r *EventRepository) InsertBatch(runID string, events []model.DetectionEvent) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertEvents(tx, runID, events); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertRunWithEvents stores a run and its events atomically. On failure nothing is kept.
func (r *EventRepository) InsertRunWithEvents(run *model.Run, events []model.DetectionEvent) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRun(tx, run); err != nil {
		return err
	}
	if err := insertEvents(tx, run.ID, events); err != nil {
		return err
	}
	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertRun(db execer, run *model.Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, location, started_at, video_path)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Location, run.StartedAt.UTC(), run.VideoPath)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func insertEvents(tx *sql.Tx, runID string, events []model.DetectionEvent) error {
	stmt, err := tx.Prepare(`
		INSERT INTO events (run_id, occurred_at, location, detected, intensity)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(runID, e.OccurredAt.UTC(), e.Location, e.Detected, e.Intensity); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}
	return nil
}

// GetRuns returns all runs, newest first.
func (r *EventRepository) GetRuns() ([]model.Run, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, location, started_at, video_path
		FROM runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		if err := rows.Scan(&run.ID, &run.Location, &run.StartedAt, &run.VideoPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = run.StartedAt.Local()
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a single run. It returns nil, nil when the run does not exist.
func (r *EventRepository) GetRun(id string) (*model.Run, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var run model.Run
	err := r.db.Conn().QueryRow(`
		SELECT id, location, started_at, video_path FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Location, &run.StartedAt, &run.VideoPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	run.StartedAt = run.StartedAt.Local()
	return &run, nil
}

// GetByRunID retrieves the events of a run in insertion order.
func (r *EventRepository) GetByRunID(runID string) ([]model.DetectionEvent, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, run_id, occurred_at, location, detected, intensity
		FROM events WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.DetectionEvent
	for rows.Next() {
		var e model.DetectionEvent
		if err := rows.Scan(&e.ID, &e.RunID, &e.OccurredAt, &e.Location, &e.Detected, &e.Intensity); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		// Stored in UTC; reports show the operator's local time, as during the run.
		e.OccurredAt = e.OccurredAt.Local()
		events = append(events, e)
	}

	return events, rows.Err()
}

// Count returns the number of events stored for a run.
func (r *EventRepository) Count(runID string) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM events WHERE run_id = ?`, runID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
