package sink

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"firewatch/internal/logger"

	"gocv.io/x/gocv"
)

// ErrWriteFailed marks a failure to open, write or finalize the output video.
var ErrWriteFailed = errors.New("video write failed")

// VideoSink receives annotated frames in order.
type VideoSink interface {
	Write(frame gocv.Mat) error
	Close() error
	Path() string
}

// VideoOptions describes the output file.
type VideoOptions struct {
	Dir       string
	Codec     string // FourCC, e.g. "mp4v"
	Extension string // e.g. ".mp4"
	FPS       float64
	Width     int
	Height    int
}

// VideoFile encodes frames to a timestamp-named file at a fixed rate and resolution.
type VideoFile struct {
	writer *gocv.VideoWriter
	path   string
	size   image.Point
	frames int
	logger *logger.Logger
}

// VideoFileName returns the output name for a run started at t.
func VideoFileName(t time.Time, ext string) string {
	return fmt.Sprintf("fire_%s%s", t.Format("20060102_150405"), ext)
}

// OpenVideoFile creates opts.Dir if needed and opens a new video file in it.
func OpenVideoFile(opts VideoOptions, started time.Time, logger *logger.Logger) (*VideoFile, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", ErrWriteFailed, opts.Width, opts.Height)
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory %s: %v", ErrWriteFailed, opts.Dir, err)
	}

	path := filepath.Join(opts.Dir, VideoFileName(started, opts.Extension))
	writer, err := gocv.VideoWriterFile(path, opts.Codec, opts.FPS, opts.Width, opts.Height, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("%w: could not open %s with codec %s", ErrWriteFailed, path, opts.Codec)
	}

	logger.Info("🎬 Recording to %s (%dx%d @ %.0f fps)", path, opts.Width, opts.Height, opts.FPS)

	return &VideoFile{
		writer: writer,
		path:   path,
		size:   image.Pt(opts.Width, opts.Height),
		logger: logger,
	}, nil
}

// Write appends frame, resizing it first if it does not match the file resolution.
func (v *VideoFile) Write(frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("%w: empty frame", ErrWriteFailed)
	}

	if frame.Cols() != v.size.X || frame.Rows() != v.size.Y {
		resized := gocv.NewMat()
		defer resized.Close()
		if err := gocv.Resize(frame, &resized, v.size, 0, 0, gocv.InterpolationLinear); err != nil {
			return fmt.Errorf("%w: failed to resize frame %d: %v", ErrWriteFailed, v.frames+1, err)
		}
		frame = resized
	}

	if err := v.writer.Write(frame); err != nil {
		return fmt.Errorf("%w: frame %d: %v", ErrWriteFailed, v.frames+1, err)
	}
	v.frames++
	return nil
}

// Close finalizes the file.
func (v *VideoFile) Close() error {
	if err := v.writer.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %v", ErrWriteFailed, v.path, err)
	}
	v.logger.Info("Video saved: %s (%d frames)", v.path, v.frames)
	return nil
}

// Path returns the file being written.
func (v *VideoFile) Path() string {
	return v.path
}
