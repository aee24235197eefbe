package main

import (
	"runtime"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// DeviceCaps is the capability collaborator the compositor consumes.
// It is computed, never guessed at per call site.
type DeviceCaps struct {
	IsMobile             bool
	HasFloatTextures     bool
	ShouldUseMobileWater bool
}

const mobileScreenWidthThreshold = 900

var FlagForceLowTier bool

// DetectDeviceCaps is idempotent and may re-run at any time, e.g.
// after a resize.
func DetectDeviceCaps(screenWidth float64) DeviceCaps {
	caps := DeviceCaps{}

	switch runtime.GOOS {
	case "android", "ios", "js":
		caps.IsMobile = true
	}

	if HasTouchInput() {
		caps.IsMobile = true
	}

	if screenWidth > 0 && screenWidth < mobileScreenWidthThreshold {
		caps.IsMobile = true
	}

	// ebiten keeps texture formats byte-range for us either way; the
	// float flag only tracks whether we afford the full grid and full
	// resolution capture target
	caps.HasFloatTextures = !caps.IsMobile

	caps.ShouldUseMobileWater = caps.IsMobile || FlagForceLowTier

	if FlagForceLowTier {
		caps.IsMobile = true
		caps.HasFloatTextures = false
	}

	return caps
}

// WaveGridSize picks the simulation grid side for the tier.
func (c DeviceCaps) WaveGridSize() int {
	if c.ShouldUseMobileWater {
		return TheTuningTable.WaveGridSizeLow
	}
	return TheTuningTable.WaveGridSize
}

// CaptureScale is the capture-target resolution multiplier.
func (c DeviceCaps) CaptureScale() float64 {
	if c.ShouldUseMobileWater {
		return 0.5
	}
	return 1.0
}

// ChromaOffset returns the channel-offset amount used instead of
// antialiasing on the low tier.
func (c DeviceCaps) ChromaOffset() float64 {
	if c.ShouldUseMobileWater {
		return TheTuningTable.ChromaOffset
	}
	return 0
}

// DeviceScale is a convenience over ebiten's monitor scale.
func DeviceScale() float64 {
	s := eb.Monitor().DeviceScaleFactor()
	if s <= 0 {
		s = 1
	}
	return s
}
