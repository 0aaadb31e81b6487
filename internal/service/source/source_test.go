package source

import (
	"errors"
	"path/filepath"
	"testing"

	"firewatch/internal/logger"

	"gocv.io/x/gocv"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.avi"), logger.Nop())
	if !errors.Is(err, ErrDeviceUnavailable) {
		t.Errorf("Expected ErrDeviceUnavailable, got %v", err)
	}
}

func TestCapture_ReadsRecordedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.avi")

	writer, err := gocv.VideoWriterFile(path, "MJPG", 20, 160, 120, true)
	if err != nil {
		t.Fatalf("Failed to create clip: %v", err)
	}
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 128, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < 4; i++ {
		if err := writer.Write(frame); err != nil {
			t.Fatalf("Failed to write clip frame: %v", err)
		}
	}
	writer.Close()

	src, err := Open(path, logger.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if w, h := src.Size(); w != 160 || h != 120 {
		t.Errorf("Expected 160x120, got %dx%d", w, h)
	}

	dst := gocv.NewMat()
	defer dst.Close()

	count := 0
	for src.Next(&dst) {
		count++
		if dst.Cols() != 160 || dst.Rows() != 120 {
			t.Errorf("Frame %d has size %dx%d", count, dst.Cols(), dst.Rows())
		}
	}
	if count != 4 {
		t.Errorf("Expected 4 frames, got %d", count)
	}
	if src.Next(&dst) {
		t.Error("Next should keep returning false after end of stream")
	}
}
