package dto

// Status is the payload of /api/status.
type Status struct {
	RunID           string `json:"run_id"`
	Location        string `json:"location"`
	Running         bool   `json:"running"`
	FramesProcessed int64  `json:"frames_processed"`
	EventsRecorded  int64  `json:"events_recorded"`
}
