package dto

// FrameSummary describes the detections of one processed frame.
type FrameSummary struct {
	Frame        int64   `json:"frame"`
	Regions      int     `json:"regions"`
	MaxIntensity float64 `json:"max_intensity"`
}
