package detector

import (
	"fmt"
	"image"

	"firewatch/internal/config"
	"firewatch/internal/logger"
	"firewatch/internal/model"

	"gocv.io/x/gocv"
)

// DetectorService finds fire-colored regions in BGR frames.
type DetectorService struct {
	lower          gocv.Scalar
	upper          gocv.Scalar
	medianKernel   int
	minRegionArea  float64
	fromBrightness bool
	logger         *logger.Logger
}

// NewDetectorService creates a detector from the configured HSV thresholds.
func NewDetectorService(cfg *config.Config, logger *logger.Logger) *DetectorService {
	service := &DetectorService{
		lower:          gocv.NewScalar(float64(cfg.Hue.Min), float64(cfg.Saturation.Min), float64(cfg.Value.Min), 0),
		upper:          gocv.NewScalar(float64(cfg.Hue.Max), float64(cfg.Saturation.Max), float64(cfg.Value.Max), 0),
		medianKernel:   cfg.MedianKernel,
		minRegionArea:  cfg.MinRegionArea,
		fromBrightness: cfg.IntensitySource == config.IntensityFromBrightness,
		logger:         logger,
	}

	service.logger.Info("Fire detector ready: H%v S%v V%v, median %d, min area %.0f, intensity from %s",
		cfg.Hue, cfg.Saturation, cfg.Value, cfg.MedianKernel, cfg.MinRegionArea, cfg.IntensitySource)
	return service
}

// Detect returns the qualifying fire regions of frame in contour discovery order.
// A frame without fire-colored pixels yields an empty slice and no error.
func (s *DetectorService) Detect(frame gocv.Mat) ([]model.Region, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	if err := gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV); err != nil {
		return nil, fmt.Errorf("failed to convert frame to HSV: %w", err)
	}

	mask, err := s.FireMask(hsv)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	if gocv.CountNonZero(mask) == 0 {
		return nil, nil
	}

	return s.regions(mask, hsv), nil
}

// FireMask thresholds an HSV image to the fire-color range and median-filters the result.
// The caller owns the returned Mat.
func (s *DetectorService) FireMask(hsv gocv.Mat) (gocv.Mat, error) {
	raw := gocv.NewMat()
	defer raw.Close()
	if err := gocv.InRangeWithScalar(hsv, s.lower, s.upper, &raw); err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to threshold frame: %w", err)
	}

	mask := gocv.NewMat()
	if err := gocv.MedianBlur(raw, &mask, s.medianKernel); err != nil {
		mask.Close()
		return gocv.Mat{}, fmt.Errorf("failed to filter mask with kernel %d: %w", s.medianKernel, err)
	}
	return mask, nil
}

func (s *DetectorService) regions(mask, hsv gocv.Mat) []model.Region {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bounds := image.Rect(0, 0, mask.Cols(), mask.Rows())

	var regions []model.Region
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area <= s.minRegionArea {
			continue
		}

		box := gocv.BoundingRect(contour).Intersect(bounds)
		if box.Empty() {
			continue
		}

		var intensity float64
		if s.fromBrightness {
			intensity = Brightness(hsv, box)
		} else {
			intensity = Intensity(mask, box)
		}

		regions = append(regions, model.Region{
			Box:       box,
			Area:      area,
			Intensity: intensity,
		})
	}

	return regions
}
