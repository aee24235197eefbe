package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
)

const (
	ShowDebugConsoleKey = eb.KeyF1
	CopyTuningTableKey  = eb.KeyF2
	ToggleBarrelViewKey = eb.KeyF3
	ResetWaterKey       = eb.KeyF4
	TakeScreenshotKey   = eb.KeyF5
)
