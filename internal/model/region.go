package model

import "image"

// Region is a connected, area-filtered fire candidate within a single frame.
type Region struct {
	Box       image.Rectangle
	Area      float64
	Intensity float64 // normalized to [0,1]
}
