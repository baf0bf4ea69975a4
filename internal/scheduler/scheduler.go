// Package scheduler runs the recurring feed sync and accuracy evaluation jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/propline/internal/service"
)

// Scheduler manages the recurring ingestion and learning jobs
type Scheduler struct {
	cron       *cron.Cron
	ingestion  *service.IngestionService
	learning   *service.LearningService
	logger     *logrus.Logger
	sports     []string
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	syncWindow time.Duration
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler covering the given sports
func NewScheduler(ingestion *service.IngestionService, learning *service.LearningService, sports []string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		ingestion:  ingestion,
		learning:   learning,
		logger:     logger,
		sports:     sports,
		jobIDs:     make([]cron.EntryID, 0),
		syncWindow: 7 * 24 * time.Hour,
		jobTimeout: time.Hour,
	}
}

// ScheduleFeedSync schedules the recurring stats feed synchronization
func (s *Scheduler) ScheduleFeedSync(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		endDate := time.Now().UTC()
		startDate := endDate.Add(-s.syncWindow)

		for _, sport := range s.sports {
			stats, err := s.ingestion.SyncGameLogs(ctx, sport, startDate, endDate)
			if err != nil {
				s.logger.WithError(err).WithField("sport", sport).Error("Scheduled feed sync failed")
				continue
			}
			s.logger.WithFields(logrus.Fields{
				"sport":          sport,
				"games_ingested": stats.GamesIngested,
			}).Info("Scheduled feed sync completed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add feed sync job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled feed sync job")

	return nil
}

// ScheduleAccuracyEvaluation schedules the recurring prediction verification
// and retrain trigger evaluation
func (s *Scheduler) ScheduleAccuracyEvaluation(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		for _, sport := range s.sports {
			result, err := s.learning.EvaluateAccuracy(ctx, sport)
			if err != nil {
				s.logger.WithError(err).WithField("sport", sport).Error("Scheduled accuracy evaluation failed")
				continue
			}
			s.logger.WithFields(logrus.Fields{
				"sport":             sport,
				"verified":          result.Verified,
				"pending":           result.Pending,
				"accuracy_rate":     result.AccuracyRate,
				"retrain_triggered": result.RetrainTriggered,
			}).Info("Scheduled accuracy evaluation completed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add accuracy evaluation job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled accuracy evaluation job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
