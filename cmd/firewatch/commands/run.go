package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"firewatch/internal/app"
	"firewatch/internal/config"
	"firewatch/internal/logger"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run fire detection until end of stream or stop",
	Example: `  # Watch the first camera and show a preview window (press q to stop)
  firewatch run

  # Headless on a stream, live view on :8080
  firewatch run --source rtsp://camera/stream --display none --http-port 8080`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("source", "", "camera index, video file or stream URL")
	runCmd.Flags().String("location", "", "location name attached to every event")
	runCmd.Flags().Float64("min-area", 0, "minimum region area in pixels")
	runCmd.Flags().String("display", "", "preview display (window or none)")
	runCmd.Flags().Int("http-port", 0, "port for live view and remote stop (0 disables)")
	runCmd.Flags().String("report", "", "spreadsheet report file")
	runCmd.Flags().String("video-dir", "", "directory for recorded videos")
	runCmd.Flags().String("archive", "", "SQLite archive for run history")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewApp(cfg, log).Run(ctx); err != nil {
		log.Error("Run failed: %v", err)
		return err
	}
	return nil
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("location") {
		cfg.LocationName, _ = flags.GetString("location")
	}
	if flags.Changed("min-area") {
		cfg.MinRegionArea, _ = flags.GetFloat64("min-area")
	}
	if flags.Changed("display") {
		cfg.Display, _ = flags.GetString("display")
	}
	if flags.Changed("http-port") {
		cfg.HTTPPort, _ = flags.GetInt("http-port")
	}
	if flags.Changed("report") {
		cfg.ReportFile, _ = flags.GetString("report")
	}
	if flags.Changed("video-dir") {
		cfg.VideoDir, _ = flags.GetString("video-dir")
	}
	if flags.Changed("archive") {
		cfg.ArchiveDB, _ = flags.GetString("archive")
	}
}
