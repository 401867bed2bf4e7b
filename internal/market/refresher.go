package market

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"finlearn/internal/logger"
)

// Refresher keeps the funds cache warm on a cron schedule.
type Refresher struct {
	cron    *cron.Cron
	service *Service
	timeout time.Duration
}

// NewRefresher creates a Refresher for service. Each refresh is bounded by
// timeout.
func NewRefresher(service *Service, timeout time.Duration) *Refresher {
	return &Refresher{
		cron:    cron.New(cron.WithSeconds()),
		service: service,
		timeout: timeout,
	}
}

// Register schedules the refresh task. schedule accepts six-field expressions
// and descriptors such as "@every 30m".
func (r *Refresher) Register(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.RunNow); err != nil {
		return fmt.Errorf("register funds refresh: %w", err)
	}
	return nil
}

// Start starts the scheduler in its own goroutine.
func (r *Refresher) Start() {
	r.cron.Start()
	logger.Get().Info("Market refresher started")
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	logger.Get().Info("Market refresher stopped")
}

// RunNow refreshes the cache immediately.
func (r *Refresher) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.service.Refresh(ctx); err != nil {
		logger.Get().Warnw("Scheduled funds refresh failed", "error", err)
	}
}
