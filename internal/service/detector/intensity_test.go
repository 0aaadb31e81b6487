package detector

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func TestIntensity_FullMaskIsOne(t *testing.T) {
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), 50, 50, gocv.MatTypeCV8U)
	defer mask.Close()

	got := Intensity(mask, image.Rect(10, 10, 40, 40))
	if Round2(got) != 1.00 {
		t.Errorf("Expected intensity 1.00 for a saturated mask, got %v", got)
	}
}

func TestIntensity_HalfMask(t *testing.T) {
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 20, 20, gocv.MatTypeCV8U)
	defer mask.Close()

	// Left half (columns 0..9) set to 255.
	if err := gocv.Rectangle(&mask, image.Rect(0, 0, 9, 19), color.RGBA{R: 255, G: 255, B: 255}, -1); err != nil {
		t.Fatalf("Failed to draw: %v", err)
	}

	got := Intensity(mask, image.Rect(0, 0, 20, 20))
	if Round2(got) != 0.50 {
		t.Errorf("Expected intensity 0.50, got %v", got)
	}
}

func TestIntensity_WithinUnitInterval(t *testing.T) {
	values := []float64{0, 1, 64, 128, 200, 255}
	for _, v := range values {
		mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, 0, 0, 0), 8, 8, gocv.MatTypeCV8U)
		got := Intensity(mask, image.Rect(0, 0, 8, 8))
		mask.Close()

		if got < 0 || got > 1 {
			t.Errorf("Intensity for pixel value %v out of range: %v", v, got)
		}
	}
}

func TestMaxIntensity(t *testing.T) {
	tests := []struct {
		input    []float64
		expected float64
		ok       bool
	}{
		{nil, 0, false},
		{[]float64{0.3}, 0.3, true},
		{[]float64{0.2, 0.876, 0.5}, 0.876, true},
		{[]float64{1, 0.99}, 1, true},
	}

	for _, tt := range tests {
		got, ok := MaxIntensity(tt.input)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("MaxIntensity(%v) = (%v, %v), expected (%v, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.98666, 0.99},
		{0.994, 0.99},
		{0.125, 0.13},
		{1, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.expected {
			t.Errorf("Round2(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
