// Package scheduler periodically rescans configured roots so their cached
// results stay warm and the history log tracks growth over time.
package scheduler

import (
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dirscope/dirscope/internal/services"
)

// Scheduler runs forced rescans of a fixed set of paths on a cron schedule.
type Scheduler struct {
	scanner *services.Scanner
	paths   []string
	spec    string

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New creates a scheduler. spec is a standard five-field cron expression.
func New(scanner *services.Scanner, paths []string, spec string) *Scheduler {
	return &Scheduler{
		scanner: scanner,
		paths:   paths,
		spec:    spec,
	}
}

// Start begins scheduling. It validates the cron expression and is a no-op
// if the scheduler is already running.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	c.Start()

	s.cron = c
	s.running = true
	log.Printf("scheduler: rescanning %d paths on schedule %q", len(s.paths), s.spec)
	return nil
}

// Stop stops scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.running = false
}

// runOnce rescans every configured path with a forced refresh.
func (s *Scheduler) runOnce() {
	for _, path := range s.paths {
		result, err := s.scanner.Scan(path, true)
		if err != nil {
			log.Printf("scheduler: scan of %s failed: %v", path, err)
			continue
		}
		log.Printf("scheduler: rescanned %s: %s across %d items", path, result.TotalSizeFormatted, len(result.Items))
	}
}
