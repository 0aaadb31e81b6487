package model

import "time"

// Run represents one execution of the detection loop.
type Run struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	StartedAt time.Time `json:"started_at"`
	VideoPath string    `json:"video_path"`
}
