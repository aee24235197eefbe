package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAgentTransition(from, to AgentPhase) bool {
	switch from {
	case AgentHidden:
		return to == AgentEntering
	case AgentEntering:
		return to == AgentSwimming
	case AgentSwimming:
		return to == AgentExiting
	case AgentExiting:
		return to == AgentHidden
	}
	return false
}

func TestAgentPhasesFollowTheCycle(t *testing.T) {
	const dt = 1.0 / 60.0

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		as := NewAmbientAgentSystem(6, 1280, 800, rng)

		prev := make([]AgentPhase, 6)
		for i, a := range as.Agents() {
			prev[i] = a.Phase
		}

		inputRng := rand.New(rand.NewSource(seed + 100))

		for frame := 0; frame < 3000; frame++ {
			// occasional presses so the flee path gets exercised too
			pointerDown := inputRng.Float64() < 0.1
			pointer := FPt(inputRng.Float64()*1280, inputRng.Float64()*800)

			as.Update(dt, pointer, pointerDown)

			for i, a := range as.Agents() {
				if a.Phase != prev[i] {
					require.True(t, validAgentTransition(prev[i], a.Phase),
						"seed %v frame %v agent %v: illegal transition %v -> %v",
						seed, frame, i, prev[i], a.Phase)
					prev[i] = a.Phase
				}
			}
		}
	}
}

func TestAgentFleesFromPressNearby(t *testing.T) {
	const dt = 1.0 / 60.0

	rng := rand.New(rand.NewSource(7))
	as := NewAmbientAgentSystem(1, 1280, 800, rng)

	// run until the single agent is swimming on screen
	for frame := 0; frame < 60*60; frame++ {
		as.Update(dt, FPoint{}, false)
		if as.Agents()[0].Phase == AgentSwimming {
			break
		}
	}
	require.Equal(t, AgentSwimming, as.Agents()[0].Phase)

	// a press right on top of the fish
	as.Update(dt, as.Agents()[0].Pos, true)

	a := &as.agents[0]
	require.True(t, a.Flee)
	assert.InDelta(t, TheTuningTable.FishFleeSpeed, a.Vel.Length(), 1e-6)

	savedVel := a.preFleeVel

	// a hover at the same spot must not trigger anything once the
	// flee expires
	for frame := 0; frame < 60*3 && a.Flee; frame++ {
		as.Update(dt, FPt(-500, -500), false)
	}

	require.False(t, a.Flee, "flee must expire")
	assert.InDelta(t, savedVel.X, a.Vel.X, 1e-6,
		"pre-flee velocity must be restored")
	assert.InDelta(t, savedVel.Y, a.Vel.Y, 1e-6)
}

func TestAgentProximityAloneDoesNotTriggerFlee(t *testing.T) {
	const dt = 1.0 / 60.0

	rng := rand.New(rand.NewSource(7))
	as := NewAmbientAgentSystem(1, 1280, 800, rng)

	for frame := 0; frame < 60*60; frame++ {
		as.Update(dt, as.Agents()[0].Pos, false)
		assert.False(t, as.Agents()[0].Flee,
			"an unpressed pointer must never cause a flee")
		if as.Agents()[0].Phase == AgentExiting {
			break
		}
	}
}

func TestFleeNeverInterruptsExit(t *testing.T) {
	const dt = 1.0 / 60.0

	rng := rand.New(rand.NewSource(3))
	as := NewAmbientAgentSystem(1, 1280, 800, rng)

	a := &as.agents[0]
	a.Phase = AgentExiting
	a.Pos = FPt(640, 400)
	a.Vel = FPt(TheTuningTable.FishSpeedMax, 0)

	for frame := 0; frame < 60*30 && a.Phase == AgentExiting; frame++ {
		// press directly on the fish every frame
		as.Update(dt, a.Pos, true)
		assert.False(t, a.Flee, "an exiting fish must ignore the pointer")
	}

	assert.Equal(t, AgentHidden, a.Phase,
		"an exiting fish must leave the screen and go hidden")
}

func TestEnteringTimesOutWhenDeflected(t *testing.T) {
	const dt = 1.0 / 60.0

	rng := rand.New(rand.NewSource(5))
	as := NewAmbientAgentSystem(1, 1280, 800, rng)

	// an entrance path shoved parallel to the screen edge; it can
	// never cross the inset rect on its own
	a := &as.agents[0]
	a.Phase = AgentEntering
	a.Pos = FPt(-200, 400)
	a.Vel = FPt(0, -TheTuningTable.FishSpeedMax)
	a.PhaseTimer = Timer{Duration: TheTuningTable.FishEnterTimeout}

	// a respawn teleports; per-frame integration never moves this far
	jump := TheTuningTable.FishSpeedMax * dt * 2

	recycled := false
	prevPos := a.Pos
	for frame := 0; frame < 60*20 && !recycled; frame++ {
		as.Update(dt, FPoint{}, false)
		recycled = a.Pos.Sub(prevPos).Length() > jump
		prevPos = a.Pos
	}

	require.True(t, recycled,
		"a stuck entrance must be recycled, not left drifting off screen forever")
	assert.Equal(t, AgentEntering, a.Phase)
	assert.False(t, a.Pos.In(FRectWH(1280, 800)))
}

func TestRespawnReusesTheSlot(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	as := NewAmbientAgentSystem(3, 1280, 800, rng)

	before := &as.agents[1]
	as.respawn(&as.agents[1])
	after := &as.agents[1]

	assert.Same(t, before, after)
	assert.Equal(t, AgentEntering, after.Phase)
	assert.False(t, after.Pos.In(FRectWH(1280, 800)),
		"a fresh spawn must start off screen")
	assert.Greater(t, after.Vel.Length(), 0.0)
}

func TestSpawnFromEdgeIsDeterministic(t *testing.T) {
	a := spawnFromEdge(rand.New(rand.NewSource(42)), 1280, 800)
	b := spawnFromEdge(rand.New(rand.NewSource(42)), 1280, 800)

	assert.Equal(t, a, b)

	// the target always lands inside the viewport
	for seed := int64(0); seed < 50; seed++ {
		sp := spawnFromEdge(rand.New(rand.NewSource(seed)), 1280, 800)
		assert.True(t, sp.target.In(FRectWH(1280, 800)),
			"seed %v: swim target must be on screen", seed)
		assert.False(t, sp.start.In(FRectWH(1280, 800)),
			"seed %v: entrance must be off screen", seed)
	}
}
