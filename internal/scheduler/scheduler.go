package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vkleiv/energy-data-pipeline/internal/dataset"
)

// Scheduler periodically rebuilds the production snapshot so consumers see
// fresh data without paying the fetch cost on their own requests.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *dataset.Service
	interval  time.Duration
}

// New creates a Scheduler.
func New(interval time.Duration, service *dataset.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. A non-positive interval disables scheduling.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; snapshots rebuild on demand only")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Println("scheduler: refreshing production snapshot")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.RefreshProduction(ctx); err != nil {
			log.Printf("scheduler: production refresh failed: %v", err)
			return
		}
		log.Println("scheduler: production snapshot refreshed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
