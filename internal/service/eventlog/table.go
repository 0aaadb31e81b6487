package eventlog

import "firewatch/internal/model"

// ReportTable is the insertion-ordered list of detection events for one run.
// It is append-only and owned by a single Recorder.
type ReportTable struct {
	events []model.DetectionEvent
}

func (t *ReportTable) append(e model.DetectionEvent) {
	t.events = append(t.events, e)
}

// Len returns the number of recorded events.
func (t *ReportTable) Len() int {
	return len(t.events)
}

// Events returns a copy of the recorded events in insertion order.
func (t *ReportTable) Events() []model.DetectionEvent {
	out := make([]model.DetectionEvent, len(t.events))
	copy(out, t.events)
	return out
}
