package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Saver is the job the scheduler runs on every tick.
type Saver interface {
	Save() error
}

// Scheduler periodically persists the session state.
type Scheduler struct {
	scheduler *gocron.Scheduler
	saver     Saver
	interval  time.Duration
}

// New creates a new Scheduler. A zero or negative interval disables it.
func New(interval time.Duration, saver Saver) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		saver:     saver,
		interval:  interval,
	}
}

// Start schedules the autosave job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || s.saver == nil {
		log.Println("INFO: scheduler: autosave disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("INFO: scheduler: autosave every %s", s.interval)
	return nil
}

func (s *Scheduler) run() {
	if err := s.saver.Save(); err != nil {
		log.Printf("ERROR: scheduler: autosave failed: %v", err)
		return
	}
	log.Println("DEBUG: scheduler: state saved")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil && s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}
