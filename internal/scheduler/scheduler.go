package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// Scheduler runs the periodic low-stock snapshot job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard 5-field cron.
	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	if !s.cfg.Snapshot.Enabled {
		s.logger.Info("low-stock snapshot disabled")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Snapshot.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.snapshotLowStock); err != nil {
		s.logger.Error("failed to schedule low-stock snapshot", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) snapshotLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := s.reportingSvc.Summary(ctx)
	if err != nil {
		s.logger.Error("failed to build low-stock snapshot", zap.Error(err))
		return
	}

	s.logger.Info("low-stock snapshot", zap.String("summary", summary))
}
