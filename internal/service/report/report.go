package report

import (
	"errors"
	"fmt"

	"firewatch/internal/model"
)

// ErrFlushFailed marks a failure to persist the report table.
var ErrFlushFailed = errors.New("report flush failed")

// Columns is the header row of the spreadsheet report.
var Columns = []string{"Date", "Time", "Location", "Fire Detected", "Frequency"}

// Sink persists a run's report table. Flush is called once, at shutdown.
type Sink interface {
	Flush(events []model.DetectionEvent) error
}

// MultiSink flushes to every sink, even when earlier ones fail.
type MultiSink []Sink

// Flush writes events to all sinks and joins their errors.
func (m MultiSink) Flush(events []model.DetectionEvent) error {
	var errs []error
	for _, s := range m {
		err := s.Flush(events)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrFlushFailed) {
			err = fmt.Errorf("%w: %w", ErrFlushFailed, err)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func detectedLabel(detected bool) string {
	if detected {
		return "Yes"
	}
	return "No"
}
