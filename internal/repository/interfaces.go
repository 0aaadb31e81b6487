package repository

import "firewatch/internal/model"

// EventRepository defines the interface for archived runs and their detection events.
type EventRepository interface {
	// Create operations
	InsertRun(run *model.Run) error
	InsertBatch(runID string, events []model.DetectionEvent) error
	InsertRunWithEvents(run *model.Run, events []model.DetectionEvent) error

	// Read operations
	GetRuns() ([]model.Run, error)
	GetRun(id string) (*model.Run, error)
	GetByRunID(runID string) ([]model.DetectionEvent, error)
	Count(runID string) (int, error)
}
