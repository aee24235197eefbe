package main

import (
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// GalleryView is the post-transition full-screen image sequence for a
// single project. Every input source funnels into Navigate.
type GalleryView struct {
	screenW, screenH float64

	Project           *Project
	CurrentImageIndex int

	lastNavTime time.Duration

	// a touch tap that navigated marks mouse input handled for a
	// short window, so the synthetic click after a tap can't
	// double-advance
	mouseHandledUntil time.Duration

	OnBack func()
}

func NewGalleryView(screenW, screenH float64) *GalleryView {
	return &GalleryView{
		screenW: screenW,
		screenH: screenH,
		// allow immediate first navigation
		lastNavTime: -time.Hour,
	}
}

func (g *GalleryView) Layout(screenW, screenH float64) {
	g.screenW = screenW
	g.screenH = screenH
}

// Open points the gallery at a project and resets navigation.
func (g *GalleryView) Open(project *Project) {
	g.Project = project
	g.CurrentImageIndex = 0
	g.lastNavTime = -time.Hour
	g.mouseHandledUntil = 0
}

// Navigate advances by direction (+1 next, -1 previous), wrapping.
// Throttled by a fixed cooldown against compound input events.
func (g *GalleryView) Navigate(direction int) bool {
	if g.Project == nil || len(g.Project.Images) == 0 || direction == 0 {
		return false
	}

	if TimeSinceNow(g.lastNavTime) < TheTuningTable.GalleryCooldown {
		return false
	}

	g.lastNavTime = GlobalTimerNow()

	n := len(g.Project.Images)
	g.CurrentImageIndex = ((g.CurrentImageIndex+direction)%n + n) % n

	return true
}

func (g *GalleryView) Update() {
	if g.Project == nil {
		return
	}

	im := &TheInputManager

	// =============================
	// keys
	// =============================
	if IsKeyJustPressed(eb.KeyArrowRight) {
		g.Navigate(1)
	}
	if IsKeyJustPressed(eb.KeyArrowLeft) {
		g.Navigate(-1)
	}
	if IsKeyJustPressed(eb.KeyEscape) && g.OnBack != nil {
		g.OnBack()
	}

	// =============================
	// wheel
	// =============================
	if im.WheelDeltaY > 0 {
		g.Navigate(1)
	} else if im.WheelDeltaY < 0 {
		g.Navigate(-1)
	}

	// =============================
	// touch swipe / tap
	// =============================
	for _, touchId := range im.JustReleasedBuf {
		info, ok := GetTouchInfo(touchId)
		if !ok || info.MaxTouchCount > 1 {
			continue
		}

		if info.Dragged {
			swipe := info.EndedPos.X - info.StartedPos.X
			if swipe < 0 {
				g.Navigate(1)
			} else {
				g.Navigate(-1)
			}
		} else {
			g.navigateForPosition(info.EndedPos)
		}

		g.mouseHandledUntil = GlobalTimerNow() + time.Millisecond*350
	}

	// =============================
	// click halves
	// =============================
	if IsMouseButtonJustPressed(eb.MouseButtonLeft) &&
		GlobalTimerNow() >= g.mouseHandledUntil &&
		IsTouchFree() {
		g.navigateForPosition(CursorFPt())
	}
}

// right half advances, left half goes back
func (g *GalleryView) navigateForPosition(pos FPoint) {
	if pos.X >= g.screenW*0.5 {
		g.Navigate(1)
	} else {
		g.Navigate(-1)
	}
}

func (g *GalleryView) CurrentImage() (ProjectImage, bool) {
	if g.Project == nil || len(g.Project.Images) == 0 {
		return ProjectImage{}, false
	}
	return g.Project.Images[g.CurrentImageIndex], true
}

// DrawCapture renders the current image fit-contain into the scene.
func (g *GalleryView) DrawCapture(dst *eb.Image, scale float64) {
	pi, ok := g.CurrentImage()
	if !ok {
		return
	}

	tex := ProjectTexture(pi.Src)
	texW, texH := ImageSizeF(tex)

	availW := g.screenW * 0.82
	availH := g.screenH * 0.82

	fit := min(availW/texW, availH/texH)

	drawW := texW * fit
	drawH := texH * fit

	op := &eb.DrawImageOptions{}
	op.Filter = eb.FilterLinear
	op.GeoM.Scale(fit, fit)
	op.GeoM.Translate(
		(g.screenW-drawW)*0.5,
		(g.screenH-drawH)*0.5,
	)
	op.GeoM.Scale(scale, scale)

	dst.DrawImage(tex, op)
}
