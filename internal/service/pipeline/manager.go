package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"firewatch/internal/dto"
	"firewatch/internal/logger"
	"firewatch/internal/model"
	"firewatch/internal/service/annotator"
	"firewatch/internal/service/control"
	"firewatch/internal/service/detector"
	"firewatch/internal/service/display"
	"firewatch/internal/service/eventlog"
	"firewatch/internal/service/sink"
	"firewatch/internal/service/source"

	"gocv.io/x/gocv"
)

// Detector finds fire regions in a frame.
type Detector interface {
	Detect(frame gocv.Mat) ([]model.Region, error)
}

// Stats counts the work done by a run.
type Stats struct {
	Frames int64
	Events int64
}

// Manager runs the single-threaded capture, detect, annotate, log and write loop.
type Manager struct {
	source   source.FrameSource
	detector Detector
	recorder *eventlog.Recorder
	video    sink.VideoSink
	viewers  []display.Viewer
	control  control.StopControl
	logger   *logger.Logger

	frames  atomic.Int64
	events  atomic.Int64
	running atomic.Bool
}

func NewManager(src source.FrameSource, det Detector, recorder *eventlog.Recorder, video sink.VideoSink, viewers []display.Viewer, stop control.StopControl, logger *logger.Logger) *Manager {
	if stop == nil {
		stop = control.Any{}
	}
	return &Manager{
		source:   src,
		detector: det,
		recorder: recorder,
		video:    video,
		viewers:  viewers,
		control:  stop,
		logger:   logger,
	}
}

// Run processes frames until end of stream, a stop request or ctx cancellation.
// A detection, annotation or video write failure aborts the loop and is returned.
func (m *Manager) Run(ctx context.Context) (Stats, error) {
	m.running.Store(true)
	defer m.running.Store(false)

	frame := gocv.NewMat()
	defer frame.Close()

	m.logger.Info("🎬 Detection loop started")

	for {
		if !m.source.Next(&frame) {
			break
		}

		if err := m.processFrame(frame); err != nil {
			m.logger.Error("Aborting detection loop at frame %d: %v", m.frames.Load()+1, err)
			return m.Stats(), err
		}

		if m.control.StopRequested() {
			m.logger.Info("Stop requested by operator")
			break
		}
		if ctx.Err() != nil {
			m.logger.Info("Stop requested: %v", ctx.Err())
			break
		}
	}

	stats := m.Stats()
	m.logger.Info("🛑 Detection loop stopped after %d frames, %d events", stats.Frames, stats.Events)
	return stats, nil
}

func (m *Manager) processFrame(frame gocv.Mat) error {
	regions, err := m.detector.Detect(frame)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	annotated, err := annotator.Annotate(frame, regions)
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}
	defer annotated.Close()

	intensities := eventlog.Intensities(regions)
	if event, ok := m.recorder.Record(intensities); ok {
		m.events.Add(1)
		m.logger.Info("🔥 Fire detected at %s: intensity %.2f across %d region(s)", event.Location, event.Intensity, len(regions))
	}

	if err := m.video.Write(annotated); err != nil {
		return err
	}

	index := m.frames.Add(1)

	summary := dto.FrameSummary{Frame: index, Regions: len(regions)}
	if best, ok := detector.MaxIntensity(intensities); ok {
		summary.MaxIntensity = best
	}
	for _, v := range m.viewers {
		if err := v.Show(annotated, summary); err != nil {
			m.logger.Warning("Viewer failed on frame %d: %v", index, err)
		}
	}

	return nil
}

// Stats returns the counters so far. Safe to call from other goroutines.
func (m *Manager) Stats() Stats {
	return Stats{Frames: m.frames.Load(), Events: m.events.Load()}
}

// Running reports whether Run is in progress.
func (m *Manager) Running() bool {
	return m.running.Load()
}
