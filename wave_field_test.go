package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDt = 1.0 / 60.0

func maxAbsPlane(plane []float32) float64 {
	m := 0.0
	for _, v := range plane {
		a := math.Abs(f64(v))
		if a > m {
			m = a
		}
	}
	return m
}

func assertPlaneFinite(t *testing.T, plane []float32) {
	t.Helper()
	for i, v := range plane {
		if math.IsNaN(f64(v)) || math.IsInf(f64(v), 0) {
			t.Fatalf("non finite value %v at texel %v", v, i)
		}
	}
}

func TestWaveFieldDecaysWithoutInput(t *testing.T) {
	field := NewWaveField(64, 64, BoundaryClamp)

	field.SplashAt(0.5, 0.5, 0.9)
	field.Step(testDt, PointerState{})

	require.Greater(t, maxAbsPlane(field.Read().Pressure), 0.0)

	for i := 0; i < 10000; i++ {
		field.Step(testDt, PointerState{})
	}

	read := field.Read()
	assertPlaneFinite(t, read.Pressure)
	assertPlaneFinite(t, read.Velocity)

	assert.Less(t, maxAbsPlane(read.Pressure), 1e-3,
		"pressure should decay toward zero with no input")
	assert.Less(t, maxAbsPlane(read.Velocity), 1e-2,
		"velocity should decay toward zero with no input")
}

func TestWaveFieldBoundedUnderForcing(t *testing.T) {
	for _, boundary := range []BoundaryMode{BoundaryClamp, BoundaryWrap} {
		field := NewWaveField(64, 64, boundary)

		pointer := PointerState{X: 0.5, Y: 0.5, IsDown: true}

		for i := 0; i < 10000; i++ {
			field.Step(testDt, pointer)
		}

		read := field.Read()
		assertPlaneFinite(t, read.Pressure)
		assertPlaneFinite(t, read.Velocity)

		// pressure is hard bounded by the storage contract; velocity
		// must settle into a bounded oscillation, not run away
		assert.LessOrEqual(t, maxAbsPlane(read.Pressure), 1.0)
		assert.Less(t, maxAbsPlane(read.Velocity), 1e3)
	}
}

func TestWaveFieldClampsFrameHitch(t *testing.T) {
	field := NewWaveField(32, 32, BoundaryClamp)
	field.SplashAt(0.5, 0.5, 0.9)

	// a multi second hitch must be treated as one clamped step
	for i := 0; i < 100; i++ {
		field.Step(5.0, PointerState{})
	}

	assertPlaneFinite(t, field.Read().Pressure)
	assertPlaneFinite(t, field.Read().Velocity)
}

func TestWaveBufferRingOfTwo(t *testing.T) {
	field := NewWaveField(16, 16, BoundaryClamp)

	first := field.Read()
	field.Step(testDt, PointerState{})
	second := field.Read()

	require.NotSame(t, first, second,
		"a step must expose the buffer it just wrote")

	for i := 0; i < 10; i++ {
		beforeStep := field.Read()
		field.Step(testDt, PointerState{})
		afterStep := field.Read()

		assert.NotSame(t, beforeStep, afterStep)

		field.Step(testDt, PointerState{})
		assert.Same(t, beforeStep, field.Read(),
			"two steps must land back on the same buffer object")
	}
}

func TestWaveImpulseCenteredOnPointer(t *testing.T) {
	field := NewWaveField(128, 128, BoundaryClamp)
	field.ImpulseRadius = 0.08

	pointer := PointerState{X: 0.5, Y: 0.5, IsDown: true}

	// one simulated second at 60fps
	for i := 0; i < 60; i++ {
		field.Step(testDt, pointer)
	}

	center := f64(field.PressureAt(0.5, 0.5))
	distant := f64(field.PressureAt(0.0, 0.5))

	assert.Greater(t, center, distant,
		"pressure under the pointer must exceed pressure half a screen away")
}

func TestWaveFieldResizeResets(t *testing.T) {
	field := NewWaveField(32, 32, BoundaryClamp)
	field.SplashAt(0.5, 0.5, 0.9)
	field.Step(testDt, PointerState{})

	field.Resize(64, 64)

	assert.Equal(t, 64, field.Width())
	assert.Equal(t, 64*64, len(field.Read().Pressure))
	assert.Zero(t, maxAbsPlane(field.Read().Pressure))

	// stepping right after a resize must be safe
	field.Step(testDt, PointerState{X: 0.2, Y: 0.8, IsDown: true})
	assertPlaneFinite(t, field.Read().Pressure)
}

func TestSplashIsConsumedOnce(t *testing.T) {
	field := NewWaveField(64, 64, BoundaryClamp)

	field.SplashAt(0.5, 0.5, 0.9)
	field.Step(testDt, PointerState{})
	after := maxAbsPlane(field.Read().Pressure)
	require.Greater(t, after, 0.0)

	// no new input: the next steps may only decay
	field.Step(testDt, PointerState{})
	field.Step(testDt, PointerState{})
	assert.Less(t, maxAbsPlane(field.Read().Pressure), after+1e-6)
}

func TestQuantizeSignedRoundTrip(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{-1, 0},
		{0, 127},
		{1, 255},
		{-2, 0},  // clamped
		{2, 255}, // clamped
	}

	for _, c := range cases {
		assert.Equal(t, c.want, quantizeSigned(c.in), "quantize %v", c.in)
	}
}
