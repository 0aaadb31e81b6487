package report

import (
	"fmt"

	"firewatch/internal/logger"
	"firewatch/internal/model"
	"firewatch/internal/repository"
)

// ArchiveSink stores a run and its events in the event repository.
type ArchiveSink struct {
	repo   repository.EventRepository
	run    model.Run
	logger *logger.Logger
}

// NewArchiveSink creates a sink that archives events under run.
func NewArchiveSink(repo repository.EventRepository, run model.Run, logger *logger.Logger) *ArchiveSink {
	return &ArchiveSink{repo: repo, run: run, logger: logger}
}

// Flush inserts the run and all of its events in one transaction.
func (s *ArchiveSink) Flush(events []model.DetectionEvent) error {
	if err := s.repo.InsertRunWithEvents(&s.run, events); err != nil {
		return fmt.Errorf("%w: %v", ErrFlushFailed, err)
	}

	s.logger.Info("🗄️  Archived run %s with %d events", s.run.ID, len(events))
	return nil
}
