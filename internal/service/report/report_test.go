package report

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"firewatch/internal/logger"
	"firewatch/internal/model"
	"firewatch/internal/repository/sqlite"

	"github.com/xuri/excelize/v2"
)

func sampleEvents() []model.DetectionEvent {
	base := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	return []model.DetectionEvent{
		{RunID: "run-1", OccurredAt: base, Location: "Site_A", Detected: true, Intensity: 0.99},
		{RunID: "run-1", OccurredAt: base.Add(time.Second), Location: "Site_A", Detected: true, Intensity: 0.42},
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	return rows
}

func TestXLSXSink_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fire_report.xlsx")

	if err := NewXLSXSink(path, logger.Nop()).Flush(nil); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 1 {
		t.Fatalf("Expected header only, got %d rows", len(rows))
	}
	for i, c := range Columns {
		if rows[0][i] != c {
			t.Errorf("Header column %d: expected %q, got %q", i, c, rows[0][i])
		}
	}
}

func TestXLSXSink_Rows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "fire_report.xlsx")

	if err := NewXLSXSink(path, logger.Nop()).Flush(sampleEvents()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}

	expected := []string{"2025-06-15", "14:30:00", "Site_A", "Yes", "0.99"}
	for i, v := range expected {
		if rows[1][i] != v {
			t.Errorf("Row 1 column %d: expected %q, got %q", i, v, rows[1][i])
		}
	}
	if rows[2][1] != "14:30:01" || rows[2][4] != "0.42" {
		t.Errorf("Unexpected second row %v", rows[2])
	}
}

func TestXLSXSink_OverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fire_report.xlsx")
	sink := NewXLSXSink(path, logger.Nop())

	if err := sink.Flush(sampleEvents()); err != nil {
		t.Fatalf("First flush failed: %v", err)
	}
	if err := sink.Flush(sampleEvents()[:1]); err != nil {
		t.Fatalf("Second flush failed: %v", err)
	}

	if rows := readRows(t, path); len(rows) != 2 {
		t.Errorf("Expected the second run to replace the first, got %d rows", len(rows))
	}
}

func TestXLSXSink_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	err := NewXLSXSink(dir, logger.Nop()).Flush(sampleEvents())
	if !errors.Is(err, ErrFlushFailed) {
		t.Errorf("Expected ErrFlushFailed when the path is a directory, got %v", err)
	}
}

type failingSink struct{ calls int }

func (f *failingSink) Flush([]model.DetectionEvent) error {
	f.calls++
	return errors.New("disk full")
}

type countingSink struct{ rows int }

func (c *countingSink) Flush(events []model.DetectionEvent) error {
	c.rows = len(events)
	return nil
}

func TestMultiSink_FlushesAllAndJoinsErrors(t *testing.T) {
	failing := &failingSink{}
	counting := &countingSink{}

	err := MultiSink{failing, counting}.Flush(sampleEvents())
	if !errors.Is(err, ErrFlushFailed) {
		t.Errorf("Expected ErrFlushFailed, got %v", err)
	}
	if failing.calls != 1 || counting.rows != 2 {
		t.Errorf("Every sink should be flushed once: failing=%d counting=%d", failing.calls, counting.rows)
	}

	if err := (MultiSink{counting}).Flush(nil); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestArchiveSink_Flush(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	repo := sqlite.NewEventRepository(db)

	run := model.Run{ID: "run-1", Location: "Site_A", StartedAt: time.Now(), VideoPath: "fire_videos/x.mp4"}
	if err := NewArchiveSink(repo, run, logger.Nop()).Flush(sampleEvents()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	count, err := repo.Count("run-1")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 archived events, got %d", count)
	}

	// Flushing the same run twice violates the primary key.
	if err := NewArchiveSink(repo, run, logger.Nop()).Flush(nil); !errors.Is(err, ErrFlushFailed) {
		t.Errorf("Expected ErrFlushFailed on duplicate run, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Expected zero summary, got %+v", s)
	}

	s := Summarize(sampleEvents())
	if s.Events != 2 || s.MaxIntensity != 0.99 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if math.Abs(s.MeanIntensity-0.705) > 1e-9 {
		t.Errorf("Expected mean 0.705, got %v", s.MeanIntensity)
	}
}

func TestArchiveSink_FailedFlushLeavesNoRun(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	repo := sqlite.NewEventRepository(db)

	if _, err := db.Conn().Exec(`
		CREATE TRIGGER reject_events BEFORE INSERT ON events
		BEGIN SELECT RAISE(ABORT, 'disk full'); END
	`); err != nil {
		t.Fatalf("Failed to create trigger: %v", err)
	}

	run := model.Run{ID: "run-1", Location: "Site_A", StartedAt: time.Now(), VideoPath: "fire_videos/x.mp4"}
	if err := NewArchiveSink(repo, run, logger.Nop()).Flush(sampleEvents()); !errors.Is(err, ErrFlushFailed) {
		t.Fatalf("Expected ErrFlushFailed, got %v", err)
	}

	runs, err := repo.GetRuns()
	if err != nil {
		t.Fatalf("GetRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no archived run after a failed flush, got %+v", runs)
	}
}

type wrappedFailingSink struct{}

func (wrappedFailingSink) Flush([]model.DetectionEvent) error {
	return fmt.Errorf("%w: disk full", ErrFlushFailed)
}

func TestMultiSink_PrefixesFailureOnce(t *testing.T) {
	err := MultiSink{wrappedFailingSink{}, &failingSink{}}.Flush(nil)
	if !errors.Is(err, ErrFlushFailed) {
		t.Fatalf("Expected ErrFlushFailed, got %v", err)
	}

	for _, line := range strings.Split(err.Error(), "\n") {
		if strings.Count(line, ErrFlushFailed.Error()) != 1 {
			t.Errorf("Expected one %q prefix per sink error, got %q", ErrFlushFailed, line)
		}
	}
}
