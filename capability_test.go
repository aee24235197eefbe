package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNarrowScreenIsMobile(t *testing.T) {
	caps := DetectDeviceCaps(500)

	assert.True(t, caps.IsMobile)
	assert.True(t, caps.ShouldUseMobileWater)
	assert.Equal(t, TheTuningTable.WaveGridSizeLow, caps.WaveGridSize())
	assert.Equal(t, 0.5, caps.CaptureScale())
	assert.Greater(t, caps.ChromaOffset(), 0.0,
		"the low tier substitutes channel offset for antialiasing")
}

func TestWideScreenIsFullTier(t *testing.T) {
	caps := DetectDeviceCaps(1400)

	assert.False(t, caps.IsMobile)
	assert.False(t, caps.ShouldUseMobileWater)
	assert.Equal(t, TheTuningTable.WaveGridSize, caps.WaveGridSize())
	assert.Equal(t, 1.0, caps.CaptureScale())
	assert.Zero(t, caps.ChromaOffset())
}

func TestForceLowTierFlag(t *testing.T) {
	FlagForceLowTier = true
	defer func() { FlagForceLowTier = false }()

	caps := DetectDeviceCaps(1920)

	assert.True(t, caps.ShouldUseMobileWater)
	assert.False(t, caps.HasFloatTextures)
	assert.Equal(t, TheTuningTable.WaveGridSizeLow, caps.WaveGridSize())
}
