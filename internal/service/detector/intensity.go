package detector

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

const maxPixelValue = 255.0

// Intensity is the mean of mask inside box, normalized to [0,1].
func Intensity(mask gocv.Mat, box image.Rectangle) float64 {
	roi := mask.Region(box)
	defer roi.Close()

	mean := roi.Mean()
	return normalize(mean.Val1)
}

// Brightness is the mean V channel of an HSV image inside box, normalized to [0,1].
func Brightness(hsv gocv.Mat, box image.Rectangle) float64 {
	roi := hsv.Region(box)
	defer roi.Close()

	mean := roi.Mean()
	return normalize(mean.Val3)
}

// MaxIntensity returns the largest region intensity, or false if there are none.
func MaxIntensity(intensities []float64) (float64, bool) {
	if len(intensities) == 0 {
		return 0, false
	}
	best := intensities[0]
	for _, v := range intensities[1:] {
		if v > best {
			best = v
		}
	}
	return best, true
}

// Round2 rounds to two decimal digits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalize(v float64) float64 {
	n := v / maxPixelValue
	switch {
	case n < 0 || math.IsNaN(n):
		return 0
	case n > 1:
		return 1
	}
	return n
}
