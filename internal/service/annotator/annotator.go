package annotator

import (
	"fmt"
	"image"
	"image/color"

	"firewatch/internal/model"

	"gocv.io/x/gocv"
)

var (
	boxColor  = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	labelFont = gocv.FontHersheySimplex
)

const (
	boxThickness   = 2
	labelScale     = 0.8
	labelThickness = 2
	labelOffset    = 10
)

// Annotate returns a copy of frame with a box and an intensity label for every region.
// frame itself is left untouched; the caller owns the returned Mat.
func Annotate(frame gocv.Mat, regions []model.Region) (gocv.Mat, error) {
	out := frame.Clone()

	for _, region := range regions {
		if err := gocv.Rectangle(&out, region.Box, boxColor, boxThickness); err != nil {
			out.Close()
			return gocv.NewMat(), fmt.Errorf("failed to draw rectangle: %w", err)
		}

		pt := labelPoint(region.Box)
		if err := gocv.PutText(&out, Label(region.Intensity), pt, labelFont, labelScale, boxColor, labelThickness); err != nil {
			out.Close()
			return gocv.NewMat(), fmt.Errorf("failed to draw text: %w", err)
		}
	}

	return out, nil
}

// Label is the text drawn next to a region.
func Label(intensity float64) string {
	return fmt.Sprintf("FIRE %.2f", intensity)
}

// labelPoint places the text baseline just above the box, or inside it at the top edge.
func labelPoint(box image.Rectangle) image.Point {
	y := box.Min.Y - labelOffset
	if y < labelOffset {
		y = box.Min.Y + 2*labelOffset
	}
	return image.Pt(box.Min.X, y)
}
