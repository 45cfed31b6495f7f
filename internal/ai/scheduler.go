package ai

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Scheduler defers AI decisions by a "thinking" delay. Only one decision is
// pending at a time; scheduling a new one or cancelling makes any in-flight
// timer a no-op. A fired timer additionally re-validates the spot through
// the stillValid callback, so a decision scheduled for a seat that is no
// longer active is dropped rather than applied.
type Scheduler struct {
	clock  quartz.Clock
	logger *log.Logger

	mu    sync.Mutex
	seq   uint64
	timer *quartz.Timer
}

// NewScheduler creates a scheduler on the given clock. Tests pass a
// quartz.Mock to control time explicitly.
func NewScheduler(clock quartz.Clock, logger *log.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		logger: logger.WithPrefix("scheduler"),
	}
}

// Schedule runs fn after delay, replacing any pending decision. fn runs
// only if no newer Schedule or Cancel arrived in the meantime and
// stillValid still holds when the timer fires.
func (s *Scheduler) Schedule(delay time.Duration, stillValid func() bool, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.seq++
	id := s.seq

	s.timer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		stale := id != s.seq
		s.mu.Unlock()

		if stale {
			s.logger.Debug("dropping superseded decision", "id", id)
			return
		}
		if !stillValid() {
			s.logger.Debug("dropping decision for inactive seat", "id", id)
			return
		}
		fn()
	})
}

// Cancel drops any pending decision. Required on game reset or exit.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
