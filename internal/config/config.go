package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DisplayWindow = "window"
	DisplayNone   = "none"

	IntensityFromMask       = "mask"
	IntensityFromBrightness = "brightness"
)

// Range is an inclusive [Min, Max] interval on one 8-bit HSV channel.
type Range struct {
	Min int
	Max int
}

// Size is a frame resolution in pixels.
type Size struct {
	Width  int
	Height int
}

type Config struct {
	LocationName string
	Source       string // device index ("0") or a file path / stream URL

	MinRegionArea   float64
	Hue             Range // OpenCV hue scale, 0-179
	Saturation      Range
	Value           Range
	MedianKernel    int
	IntensitySource string

	FrameRate  float64
	FrameSize  Size // used when the source does not report its resolution
	VideoDir   string
	VideoCodec string
	VideoExt   string

	ReportFile string
	ArchiveDB  string // empty disables the SQLite archive

	Display   string
	KeyPollMs int
	HTTPPort  int
	Password  string

	LogDirectory string
}

// Load reads .env (if present) and then the environment, falling back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	frameRate := getEnvAsFloat("FRAME_RATE", 20)

	return &Config{
		LocationName: getEnv("LOCATION_NAME", "Site_A"),
		Source:       getEnv("SOURCE", "0"),

		MinRegionArea:   getEnvAsFloat("MIN_REGION_AREA", 500),
		Hue:             Range{Min: getEnvAsInt("HUE_MIN", 5), Max: getEnvAsInt("HUE_MAX", 35)},
		Saturation:      Range{Min: getEnvAsInt("SAT_MIN", 150), Max: getEnvAsInt("SAT_MAX", 255)},
		Value:           Range{Min: getEnvAsInt("VAL_MIN", 150), Max: getEnvAsInt("VAL_MAX", 255)},
		MedianKernel:    getEnvAsInt("MEDIAN_KERNEL", 5),
		IntensitySource: getEnv("INTENSITY_SOURCE", IntensityFromMask),

		FrameRate:  frameRate,
		FrameSize:  Size{Width: getEnvAsInt("FRAME_WIDTH", 640), Height: getEnvAsInt("FRAME_HEIGHT", 480)},
		VideoDir:   getEnv("VIDEO_DIR", "fire_videos"),
		VideoCodec: getEnv("VIDEO_CODEC", "mp4v"),
		VideoExt:   getEnv("VIDEO_EXT", ".mp4"),

		ReportFile: getEnv("REPORT_FILE", "fire_report.xlsx"),
		ArchiveDB:  getEnv("ARCHIVE_DB", "fire_events.db"),

		Display:   getEnv("DISPLAY_MODE", DisplayWindow),
		KeyPollMs: getEnvAsInt("KEY_POLL_MS", framePeriodMs(frameRate)),
		HTTPPort:  getEnvAsInt("HTTP_PORT", 0),
		Password:  getEnv("PASSWORD", ""),

		LogDirectory: getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

// Validate checks the detection thresholds and output settings.
func (c *Config) Validate() error {
	if c.LocationName == "" {
		return fmt.Errorf("location name must not be empty")
	}
	if c.MinRegionArea < 0 {
		return fmt.Errorf("min region area must be >= 0, got %v", c.MinRegionArea)
	}
	if err := c.Hue.check("hue", 179); err != nil {
		return err
	}
	if err := c.Saturation.check("saturation", 255); err != nil {
		return err
	}
	if err := c.Value.check("value", 255); err != nil {
		return err
	}
	if c.MedianKernel < 1 || c.MedianKernel%2 == 0 {
		return fmt.Errorf("median kernel must be a positive odd number, got %d", c.MedianKernel)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", c.FrameRate)
	}
	if c.FrameSize.Width <= 0 || c.FrameSize.Height <= 0 {
		return fmt.Errorf("fallback frame size must be positive, got %dx%d", c.FrameSize.Width, c.FrameSize.Height)
	}
	if c.KeyPollMs < 1 {
		return fmt.Errorf("key poll delay must be at least 1ms, got %d", c.KeyPollMs)
	}
	switch c.Display {
	case DisplayWindow, DisplayNone:
	default:
		return fmt.Errorf("unknown display mode %q", c.Display)
	}
	switch c.IntensitySource {
	case IntensityFromMask, IntensityFromBrightness:
	default:
		return fmt.Errorf("unknown intensity source %q", c.IntensitySource)
	}
	if c.ReportFile == "" {
		return fmt.Errorf("report file must not be empty")
	}
	return nil
}

func (r Range) check(name string, limit int) error {
	if r.Min < 0 || r.Max > limit || r.Min > r.Max {
		return fmt.Errorf("%s range [%d,%d] must lie within [0,%d] with min <= max", name, r.Min, r.Max, limit)
	}
	return nil
}

func framePeriodMs(fps float64) int {
	if fps <= 0 {
		return 1
	}
	ms := int(1000 / fps)
	if ms < 1 {
		return 1
	}
	return ms
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
