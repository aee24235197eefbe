package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresAfterDelay(t *testing.T) {
	globalTimer = 0
	s := NewPhaseScheduler()

	fired := false
	s.After(time.Millisecond*100, func() { fired = true })

	AdvanceGlobalTimer(time.Millisecond * 99)
	s.Update()
	require.False(t, fired)

	AdvanceGlobalTimer(time.Millisecond * 1)
	s.Update()
	assert.True(t, fired)
	assert.Zero(t, s.PendingCount())
}

func TestSchedulerDropsStaleGeneration(t *testing.T) {
	globalTimer = 0
	s := NewPhaseScheduler()

	fired := false
	s.After(time.Millisecond*50, func() { fired = true })

	// the phase moved on before the continuation came due
	s.Advance()

	AdvanceGlobalTimer(time.Second)
	s.Update()

	assert.False(t, fired, "a continuation from a superseded phase must never fire")
	assert.Zero(t, s.PendingCount())
}

func TestSchedulerChainedContinuations(t *testing.T) {
	globalTimer = 0
	s := NewPhaseScheduler()

	var order []int
	s.After(time.Millisecond*10, func() {
		order = append(order, 1)
		s.After(time.Millisecond*10, func() {
			order = append(order, 2)
		})
	})

	for i := 0; i < 4; i++ {
		AdvanceGlobalTimer(time.Millisecond * 10)
		s.Update()
	}

	assert.Equal(t, []int{1, 2}, order)
}

func TestSchedulerAdvanceInsideCallback(t *testing.T) {
	globalTimer = 0
	s := NewPhaseScheduler()

	secondFired := false
	s.After(time.Millisecond*10, func() {
		// navigating away mid-phase invalidates the sibling below
		s.Advance()
	})
	s.After(time.Millisecond*10, func() { secondFired = true })

	AdvanceGlobalTimer(time.Millisecond * 20)
	s.Update()
	s.Update()

	assert.False(t, secondFired)
}

func TestSchedulerCancelKeepsGeneration(t *testing.T) {
	globalTimer = 0
	s := NewPhaseScheduler()

	gen := s.Generation()
	s.After(time.Millisecond*10, func() {})
	s.Cancel()

	assert.Equal(t, gen, s.Generation())
	assert.Zero(t, s.PendingCount())
}
