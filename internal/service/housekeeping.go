package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lotworks/opls/internal/store"
)

// HousekeepingService periodically deletes expired sessions so the sessions
// table does not grow without bound. Expired sessions are also removed
// lazily when presented, so this is purely hygiene.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the background worker, blocking until any in-progress
// cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes expired sessions once.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	deleted, err := s.Store.Sessions().DeleteExpiredSessions(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return
	}
	if deleted > 0 {
		s.Logger.Info("deleted expired sessions", "count", deleted)
	}
}
