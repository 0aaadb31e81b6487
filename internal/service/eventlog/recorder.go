package eventlog

import (
	"time"

	"firewatch/internal/model"
	"firewatch/internal/service/detector"
)

// Recorder applies the per-frame logging policy: one event for every frame with at
// least one qualifying region, carrying the highest region intensity of that frame.
// It keeps no memory across frames.
type Recorder struct {
	runID    string
	location string
	now      func() time.Time
	table    ReportTable
}

// NewRecorder creates a Recorder that stamps events with location and runID.
// A nil clock defaults to time.Now.
func NewRecorder(runID, location string, clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{
		runID:    runID,
		location: location,
		now:      clock,
	}
}

// Record evaluates one frame's region intensities. It appends and returns an event
// when the list is non-empty; an empty list leaves the table unchanged.
func (r *Recorder) Record(intensities []float64) (model.DetectionEvent, bool) {
	best, ok := detector.MaxIntensity(intensities)
	if !ok {
		return model.DetectionEvent{}, false
	}

	event := model.DetectionEvent{
		RunID:      r.runID,
		OccurredAt: r.now().Truncate(time.Second),
		Location:   r.location,
		Detected:   true,
		Intensity:  detector.Round2(best),
	}
	r.table.append(event)
	return event, true
}

// Table exposes the events recorded so far.
func (r *Recorder) Table() *ReportTable {
	return &r.table
}

// Intensities extracts the intensity of every region, preserving order.
func Intensities(regions []model.Region) []float64 {
	out := make([]float64, len(regions))
	for i, region := range regions {
		out[i] = region.Intensity
	}
	return out
}
