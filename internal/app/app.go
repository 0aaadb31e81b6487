package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"firewatch/internal/config"
	"firewatch/internal/dto"
	"firewatch/internal/logger"
	"firewatch/internal/model"
	"firewatch/internal/repository/sqlite"
	"firewatch/internal/routes"
	"firewatch/internal/service/control"
	"firewatch/internal/service/detector"
	"firewatch/internal/service/display"
	"firewatch/internal/service/eventlog"
	"firewatch/internal/service/pipeline"
	"firewatch/internal/service/report"
	"firewatch/internal/service/sink"
	"firewatch/internal/service/source"
	"firewatch/internal/service/websocket"

	"github.com/google/uuid"
	"github.com/hybridgroup/mjpeg"
	"github.com/mdobak/go-xerrors"
)

const windowTitle = "Fire Detection"

// App wires one detection run: source, detector, sinks, viewers and the HTTP surface.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	runID   string
	started time.Time
	remote  *control.Remote
	open    func(string, *logger.Logger) (source.FrameSource, error)

	mu      sync.RWMutex
	manager *pipeline.Manager
}

func NewApp(cfg *config.Config, logger *logger.Logger) *App {
	return &App{
		config:  cfg,
		logger:  logger,
		runID:   uuid.NewString(),
		started: time.Now(),
		remote:  &control.Remote{},
		open:    openCapture,
	}
}

func openCapture(name string, logger *logger.Logger) (source.FrameSource, error) {
	return source.Open(name, logger)
}

// Stop asks the loop to end after the current frame.
func (a *App) Stop() {
	a.remote.Stop()
}

// Status reports the progress of the run.
func (a *App) Status() dto.Status {
	status := dto.Status{RunID: a.runID, Location: a.config.LocationName}

	a.mu.RLock()
	m := a.manager
	a.mu.RUnlock()

	if m != nil {
		stats := m.Stats()
		status.Running = m.Running()
		status.FramesProcessed = stats.Frames
		status.EventsRecorded = stats.Events
	}
	return status
}

// Run executes the detection loop until end of stream, a stop request or ctx cancellation.
// The video is finalized and the report flushed once on every exit path after startup.
func (a *App) Run(ctx context.Context) error {
	cfg := a.config

	src, err := a.open(cfg.Source, a.logger)
	if err != nil {
		return err
	}
	defer src.Close()

	width, height := src.Size()
	if width <= 0 || height <= 0 {
		a.logger.Warning("Source %s did not report its resolution, recording at %dx%d",
			cfg.Source, cfg.FrameSize.Width, cfg.FrameSize.Height)
		width, height = cfg.FrameSize.Width, cfg.FrameSize.Height
	}

	video, err := sink.OpenVideoFile(sink.VideoOptions{
		Dir:       cfg.VideoDir,
		Codec:     cfg.VideoCodec,
		Extension: cfg.VideoExt,
		FPS:       cfg.FrameRate,
		Width:     width,
		Height:    height,
	}, a.started, a.logger)
	if err != nil {
		return xerrors.New(err)
	}

	reports, closeArchive, err := a.reportSinks(video.Path())
	if err != nil {
		video.Close()
		return xerrors.New(err)
	}
	defer closeArchive()

	recorder := eventlog.NewRecorder(a.runID, cfg.LocationName, nil)
	stops := control.Any{a.remote}
	var viewers []display.Viewer

	if cfg.Display == config.DisplayWindow {
		window := display.NewWindow(windowTitle, cfg.KeyPollMs)
		defer window.Close()
		viewers = append(viewers, window)
		stops = append(stops, window)
	}

	var server *http.Server
	if cfg.HTTPPort > 0 {
		hub := websocket.NewHubService(a.logger)
		go hub.Run()
		defer hub.Stop()

		stream := mjpeg.NewStream()
		viewers = append(viewers, display.NewBroadcaster(cfg.LocationName, hub, stream))

		server = &http.Server{
			Addr: fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler: routes.SetupRoutes(routes.Services{
				Hub:     hub,
				Stream:  stream,
				Stopper: a,
				Status:  a,
			}, cfg.Password, a.logger),
		}
	}

	manager := pipeline.NewManager(src, detector.NewDetectorService(cfg, a.logger), recorder, video, viewers, stops, a.logger)
	a.mu.Lock()
	a.manager = manager
	a.mu.Unlock()

	if server != nil {
		go func() {
			a.logger.Info("📍 Live view: http://localhost:%d/stream", cfg.HTTPPort)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("HTTP server failed: %v", err)
			}
		}()
	}

	a.logger.Info("🚀 Run %s at %s", a.runID, cfg.LocationName)
	_, runErr := manager.Run(ctx)

	closeErr := video.Close()
	if closeErr != nil {
		a.logger.Error("Failed to finalize video: %v", closeErr)
	}

	events := recorder.Table().Events()
	flushErr := reports.Flush(events)
	if flushErr != nil {
		a.logger.Error("Failed to save report: %v", flushErr)
	}

	summary := report.Summarize(events)
	a.logger.Info("Run %s finished: %d events, max intensity %.2f, mean %.2f",
		a.runID, summary.Events, summary.MaxIntensity, summary.MeanIntensity)

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Warning("HTTP server shutdown: %v", err)
		}
	}

	return xerrors.New(errors.Join(runErr, closeErr, flushErr))
}

// reportSinks builds the spreadsheet sink and, when configured, the SQLite archive.
func (a *App) reportSinks(videoPath string) (report.Sink, func(), error) {
	sinks := report.MultiSink{report.NewXLSXSink(a.config.ReportFile, a.logger)}

	if a.config.ArchiveDB == "" {
		return sinks, func() {}, nil
	}

	db, err := sqlite.New(a.config.ArchiveDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive %s: %w", a.config.ArchiveDB, err)
	}

	run := model.Run{
		ID:        a.runID,
		Location:  a.config.LocationName,
		StartedAt: a.started,
		VideoPath: videoPath,
	}
	sinks = append(sinks, report.NewArchiveSink(sqlite.NewEventRepository(db), run, a.logger))

	return sinks, func() {
		if err := db.Close(); err != nil {
			a.logger.Warning("Failed to close archive: %v", err)
		}
	}, nil
}
