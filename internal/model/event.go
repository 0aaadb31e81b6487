package model

import "time"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// DetectionEvent is one report row: a frame in which at least one fire region qualified.
type DetectionEvent struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Location   string    `json:"location"`
	Detected   bool      `json:"detected"`
	Intensity  float64   `json:"intensity"`
}

// Date returns the calendar date of the event (YYYY-MM-DD).
func (e DetectionEvent) Date() string {
	return e.OccurredAt.Format(dateLayout)
}

// Clock returns the time of day with second precision (HH:MM:SS).
func (e DetectionEvent) Clock() string {
	return e.OccurredAt.Format(timeLayout)
}
