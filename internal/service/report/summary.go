package report

import (
	"firewatch/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the intensities of a report table.
type Summary struct {
	Events        int
	MaxIntensity  float64
	MeanIntensity float64
}

// Summarize computes count, max and mean intensity. An empty table yields zeros.
func Summarize(events []model.DetectionEvent) Summary {
	if len(events) == 0 {
		return Summary{}
	}

	values := make([]float64, len(events))
	for i, e := range events {
		values[i] = e.Intensity
	}

	return Summary{
		Events:        len(events),
		MaxIntensity:  floats.Max(values),
		MeanIntensity: stat.Mean(values, nil),
	}
}
