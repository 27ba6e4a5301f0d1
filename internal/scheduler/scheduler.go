// Package scheduler runs the recurring background jobs: the daily baseline
// refresh and the pregame slate analysis.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// BaselineRefresher rebuilds cached baselines for the tracked entities.
type BaselineRefresher interface {
	RefreshBaselines(ctx context.Context) error
}

// SlateRunner analyzes the day's prop slate.
type SlateRunner interface {
	RunSlate(ctx context.Context, date time.Time) error
}

// Job timeouts. The slate run races game start times so it gets far less
// slack than the overnight refresh.
const (
	baselineRefreshTimeout = 2 * time.Hour
	slateRunTimeout        = 15 * time.Minute
)

// Scheduler manages the cron-driven background jobs
type Scheduler struct {
	cron            *cron.Cron
	baselines       BaselineRefresher
	slates          SlateRunner
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(baselines BaselineRefresher, slates SlateRunner, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		baselines:       baselines,
		slates:          slates,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleBaselineRefresh schedules the recurring baseline rebuild
func (s *Scheduler) ScheduleBaselineRefresh(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), baselineRefreshTimeout)
		defer cancel()

		s.logger.Info("Starting scheduled baseline refresh")
		if err := s.baselines.RefreshBaselines(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled baseline refresh failed")
			return
		}
		s.logger.Info("Scheduled baseline refresh completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled baseline refresh job")

	return nil
}

// ScheduleSlateRun schedules the recurring pregame slate analysis
func (s *Scheduler) ScheduleSlateRun(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), slateRunTimeout)
		defer cancel()

		date := time.Now().UTC()
		s.logger.WithField("date", date.Format("2006-01-02")).Info("Starting scheduled slate run")
		if err := s.slates.RunSlate(ctx, date); err != nil {
			s.logger.WithError(err).Error("Scheduled slate run failed")
			return
		}
		s.logger.Info("Scheduled slate run completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled slate run job")

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

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}
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

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
