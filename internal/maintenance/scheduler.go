// Package maintenance runs the bot's periodic housekeeping, cleaning
// stale temp files and pruning old conversation history.
package maintenance

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/logoscenter/logos-bot/internal/repository"
	"github.com/logoscenter/logos-bot/pkg/utils"
)

const usageRetentionDays = 90

// Scheduler wraps gocron for the bot's housekeeping jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

func (s *Scheduler) Start() {
	slog.Info("Starting maintenance scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	slog.Info("Stopping maintenance scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleDailyCleanup wipes the temp directory once a day, dropping
// voice notes and charts that never got removed.
func (s *Scheduler) ScheduleDailyCleanup(tmpDir string) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(utils.CleanupTmpDir, tmpDir),
		gocron.WithName("tmp-cleanup"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cleanup job: %w", err)
	}
	return nil
}

// ScheduleHistoryPrune drops conversation history past the retention
// window and usage events older than usageRetentionDays.
func (s *Scheduler) ScheduleHistoryPrune(store *repository.Store, retentionDays int) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			pruned, err := store.PruneOlderThan(retentionDays)
			if err != nil {
				slog.Error("Failed to prune history", "error", err)
			} else if pruned > 0 {
				slog.Info("Pruned old history", "messages", pruned, "retention_days", retentionDays)
			}

			prunedEvents, err := store.PruneUsageOlderThan(usageRetentionDays)
			if err != nil {
				slog.Error("Failed to prune usage events", "error", err)
			} else if prunedEvents > 0 {
				slog.Info("Pruned old usage events", "events", prunedEvents)
			}
		}),
		gocron.WithName("history-prune"),
	)
	if err != nil {
		return fmt.Errorf("failed to create history prune job: %w", err)
	}
	return nil
}
