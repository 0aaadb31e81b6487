package display

import (
	"firewatch/internal/dto"

	"gocv.io/x/gocv"
)

// Viewer shows annotated frames to an operator.
type Viewer interface {
	Show(frame gocv.Mat, summary dto.FrameSummary) error
}
