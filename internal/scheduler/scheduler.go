// Package scheduler drives the two recurring batch loops on cron
// expressions: the analysis cycle and the settlement audit cycle.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/service"
)

// Scheduler manages the recurring analysis and audit jobs.
type Scheduler struct {
	cron            *cron.Cron
	analysis        *service.AnalysisService
	audit           *service.AuditService
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a scheduler over the two cycle services.
func NewScheduler(analysis *service.AnalysisService, audit *service.AuditService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		analysis:        analysis,
		audit:           audit,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleAnalysis schedules the analysis cycle.
func (s *Scheduler) ScheduleAnalysis(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		s.logger.Info("Starting scheduled analysis cycle")
		_, report, err := s.analysis.RunCycle(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled analysis cycle failed")
			return
		}
		s.logger.WithField("report", report.String()).Info("Scheduled analysis cycle completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add analysis job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled analysis cycle")

	return nil
}

// ScheduleAudit schedules the settlement audit cycle.
func (s *Scheduler) ScheduleAudit(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		s.logger.Info("Starting scheduled audit cycle")
		report, summary, err := s.audit.RunCycle(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled audit cycle failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"settled": report.Settled,
			"pnl":     summary.String(),
		}).Info("Scheduled audit cycle completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add audit job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled audit cycle")

	return nil
}

// Start starts the scheduler.
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

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}

	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the earliest upcoming job time, zero when idle.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if !entry.Valid() {
			continue
		}
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}
