package report

import (
	"fmt"
	"os"
	"path/filepath"

	"firewatch/internal/logger"
	"firewatch/internal/model"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report rows.
const SheetName = "Fire Report"

// XLSXSink writes the report table to a spreadsheet, replacing any previous file.
type XLSXSink struct {
	path   string
	logger *logger.Logger
}

// NewXLSXSink creates a sink writing to path.
func NewXLSXSink(path string, logger *logger.Logger) *XLSXSink {
	return &XLSXSink{path: path, logger: logger}
}

// Flush writes the header and one row per event. With no events the file holds only the header.
func (s *XLSXSink) Flush(events []model.DetectionEvent) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: %v", ErrFlushFailed, err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: failed to write header: %v", ErrFlushFailed, err)
	}

	for i, e := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFlushFailed, err)
		}
		row := []interface{}{e.Date(), e.Clock(), e.Location, detectedLabel(e.Detected), e.Intensity}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("%w: failed to write row %d: %v", ErrFlushFailed, i+1, err)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: failed to create directory %s: %v", ErrFlushFailed, dir, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("%w: failed to save %s: %v", ErrFlushFailed, s.path, err)
	}

	s.logger.Info("📊 Report saved: %s (%d rows)", s.path, len(events))
	return nil
}

// Path returns the report file location.
func (s *XLSXSink) Path() string {
	return s.path
}
