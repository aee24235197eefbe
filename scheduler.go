package main

import (
	"time"
)

// PhaseScheduler is the replacement for chained one-shot timers. Every
// scheduled continuation remembers the generation it was issued for;
// bumping the generation (on any phase change) silently drops whatever
// is still pending from the superseded phase. This kills the whole
// class of stale-callback bugs where a delayed continuation fires
// after the user already navigated away.
type PhaseScheduler struct {
	generation int64
	pending    []scheduledCall
}

type scheduledCall struct {
	at         time.Duration
	generation int64
	fn         func()
}

func NewPhaseScheduler() *PhaseScheduler {
	return &PhaseScheduler{}
}

// Generation returns the current generation token.
func (s *PhaseScheduler) Generation() int64 {
	return s.generation
}

// Advance invalidates everything scheduled under the current
// generation and returns the new one.
func (s *PhaseScheduler) Advance() int64 {
	s.generation++
	s.pending = s.pending[:0]
	return s.generation
}

// After schedules fn to run once delay has elapsed on the global
// timer, unless the generation has moved on by then.
func (s *PhaseScheduler) After(delay time.Duration, fn func()) {
	s.pending = append(s.pending, scheduledCall{
		at:         GlobalTimerNow() + delay,
		generation: s.generation,
		fn:         fn,
	})
}

// Update fires due continuations. Runs once per tick.
func (s *PhaseScheduler) Update() {
	now := GlobalTimerNow()

	// fns may schedule more work or advance the generation; iterate
	// over a stable view and re-check liveness per call
	i := 0
	for i < len(s.pending) {
		call := s.pending[i]

		if call.generation != s.generation {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			continue
		}

		if call.at > now {
			i++
			continue
		}

		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		call.fn()
	}
}

// PendingCount is for tests and the debug console.
func (s *PhaseScheduler) PendingCount() int {
	return len(s.pending)
}

// Cancel drops everything without changing the generation.
func (s *PhaseScheduler) Cancel() {
	s.pending = s.pending[:0]
}
