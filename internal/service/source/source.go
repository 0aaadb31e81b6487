package source

import (
	"errors"
	"fmt"
	"strconv"

	"firewatch/internal/logger"

	"github.com/mdobak/go-xerrors"
	"gocv.io/x/gocv"
)

// ErrDeviceUnavailable is returned when the camera or stream cannot be opened.
var ErrDeviceUnavailable = errors.New("video source unavailable")

// FrameSource supplies frames one at a time. Next returns false at end of stream.
type FrameSource interface {
	Next(dst *gocv.Mat) bool
	Size() (width, height int)
	Close() error
}

// Capture reads frames from a camera device, a video file or a stream URL.
type Capture struct {
	capture *gocv.VideoCapture
	name    string
	width   int
	height  int
	pending *gocv.Mat // first frame, read early to learn the size
	logger  *logger.Logger
}

// Open opens source: a numeric device index ("0") or a path/URL understood by OpenCV.
func Open(source string, logger *logger.Logger) (*Capture, error) {
	var target interface{} = source
	if idx, err := strconv.Atoi(source); err == nil {
		target = idx
	}

	capture, err := gocv.OpenVideoCapture(target)
	if err != nil {
		return nil, xerrors.New(fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, source, err))
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, xerrors.New(fmt.Errorf("%w: %s", ErrDeviceUnavailable, source))
	}

	c := &Capture{
		capture: capture,
		name:    source,
		width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
		logger:  logger,
	}

	// Some backends do not report a size until a frame has been decoded.
	if c.width <= 0 || c.height <= 0 {
		first := gocv.NewMat()
		if ok := capture.Read(&first); ok && !first.Empty() {
			c.width, c.height = first.Cols(), first.Rows()
			c.pending = &first
		} else {
			first.Close()
		}
	}

	logger.Info("📷 Opened video source %s (%dx%d)", source, c.width, c.height)
	return c, nil
}

// Next reads the next frame into dst. A failed read or an empty frame ends the stream.
func (c *Capture) Next(dst *gocv.Mat) bool {
	if c.pending != nil {
		c.pending.CopyTo(dst)
		c.pending.Close()
		c.pending = nil
		return true
	}
	if ok := c.capture.Read(dst); !ok || dst.Empty() {
		c.logger.Info("Video source %s reached end of stream", c.name)
		return false
	}
	return true
}

// Size reports the frame resolution announced by the device.
func (c *Capture) Size() (int, int) {
	return c.width, c.height
}

// Close releases the device.
func (c *Capture) Close() error {
	if c.pending != nil {
		c.pending.Close()
		c.pending = nil
	}
	return c.capture.Close()
}
