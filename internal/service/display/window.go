package display

import (
	"firewatch/internal/dto"

	"gocv.io/x/gocv"
)

// StopKey ends the run when pressed in the window.
const StopKey = 'q'

// Window is a desktop preview that also acts as the operator's stop key.
type Window struct {
	window *gocv.Window
	pollMs int
}

// NewWindow opens a named preview window. pollMs is the key wait per iteration.
func NewWindow(title string, pollMs int) *Window {
	return &Window{
		window: gocv.NewWindow(title),
		pollMs: pollMs,
	}
}

// Show draws the frame.
func (w *Window) Show(frame gocv.Mat, _ dto.FrameSummary) error {
	w.window.IMShow(frame)
	return nil
}

// StopRequested waits up to pollMs for a key press and reports whether it was the stop key.
func (w *Window) StopRequested() bool {
	key := w.window.WaitKey(w.pollMs)
	return key&0xFF == StopKey
}

// Close destroys the window.
func (w *Window) Close() error {
	w.window.Close()
	return nil
}
