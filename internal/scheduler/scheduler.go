package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-display/internal/display"
)

const (
	defaultInterval = 30 * time.Minute
	passTimeout     = 2 * time.Minute
)

// Renderer runs one render pass.
type Renderer interface {
	RenderPass(ctx context.Context) (display.Frame, error)
}

// Scheduler periodically renders a new frame.
type Scheduler struct {
	scheduler *gocron.Scheduler
	renderer  Renderer
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, renderer Renderer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		renderer:  renderer,
		interval:  interval,
	}
}

// Start schedules the periodic pass and starts the underlying scheduler.
// The first pass runs immediately.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = defaultInterval
	}

	_, err := s.scheduler.Every(interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running render pass")

	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	frame, err := s.renderer.RenderPass(ctx)
	switch {
	case errors.Is(err, display.ErrAsleep):
		log.Println("scheduler: outside wake window; pass skipped")
	case err != nil:
		log.Printf("scheduler: render pass failed: %v", err)
	default:
		log.Printf("scheduler: completed render pass, frame %s", frame.ID)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
