package main

import (
	"math/rand"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// Game wires the whole scene together and fixes the per-frame order:
// input sample, simulation step, agents, slider, overlay, then the
// capture and display passes. The simulation step runs every frame no
// matter what the render passes do; stale scenery beats frozen water.
type Game struct {
	screenW, screenH float64

	caps    DeviceCaps
	shaders *Shaders

	field      *WaveField
	compositor *SceneCompositor

	slider  *SliderController
	agents  *AmbientAgentSystem
	gallery *GalleryView
	barrel  *BarrelView
	overlay *Overlay

	rng *rand.Rand

	sliderMounted   bool
	showBarrel      bool
	queueScreenshot bool
}

func NewGame(screenW, screenH float64, seed int64) (*Game, error) {
	shaders, err := NewShaders()
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		screenW: screenW,
		screenH: screenH,
		shaders: shaders,
		rng:     rand.New(rand.NewSource(seed)),
	}

	g.caps = DetectDeviceCaps(screenW)
	if g.caps.ShouldUseMobileWater {
		InfoLogger.Print("low tier selected: byte-range half-resolution water")
	}

	grid := g.caps.WaveGridSize()
	boundary := BoundaryClamp
	if !g.caps.ShouldUseMobileWater {
		// the full tier wraps for the continuous flow feel
		boundary = BoundaryWrap
	}
	g.field = NewWaveField(grid, grid, boundary)

	g.compositor = NewSceneCompositor(g.caps, shaders, screenW, screenH)

	g.agents = NewAmbientAgentSystem(TheTuningTable.FishCount, screenW, screenH, g.rng)
	g.compositor.Register(g.agents)

	g.gallery = NewGalleryView(screenW, screenH)
	g.barrel = NewBarrelView(screenW, screenH, shaders)
	g.overlay = NewOverlay(screenW, screenH)

	g.overlay.RequestBack = g.requestBack
	g.gallery.OnBack = g.requestBack

	return g, nil
}

// mountSlider builds the slider once the feed has resolved. A fresh
// slider is also what the return sequence produces; see
// SliderController.resetState.
func (g *Game) mountSlider() {
	pm := &TheProjectManager

	g.slider = NewSliderController(g.screenW, g.screenH, len(pm.Projects))
	g.slider.OnHover = g.overlay.OnHover
	g.slider.OnTransitionStart = g.onTransitionStart
	g.slider.OnBackToSlider = g.onBackToSlider

	g.compositor.Register(g.slider)
	g.sliderMounted = true
}

func (g *Game) onTransitionStart() {
	g.overlay.OnTransitionStart()

	// a selection lands on the water
	g.field.SplashAt(0.5, 0.5, TheTuningTable.WaveImpulseStrength*1.4)
}

// openGallery and closeGallery also hook the gallery into the capture
// pass; it only draws while a project is open.
func (g *Game) openGallery(project *Project) {
	g.gallery.Open(project)
	g.compositor.Register(g.gallery)
}

func (g *Game) closeGallery() {
	g.compositor.Deregister(g.gallery)
	g.gallery.Project = nil
}

func (g *Game) onBackToSlider() {
	g.closeGallery()
	g.overlay.OnBackToSlider()
}

func (g *Game) requestBack() {
	if g.slider == nil {
		return
	}
	if g.slider.Phase == TransitionPost {
		g.closeGallery()
	}
	g.slider.BeginReturn()
}

func (g *Game) Update() error {
	UpdateInput(g.screenW, g.screenH)

	UpdateProjects()

	pm := &TheProjectManager
	if pm.Loaded && !g.sliderMounted {
		g.mountSlider()
	}

	g.handleHotkeys()

	dt := UpdateDelta().Seconds()
	pointer := Pointer()

	// =============================
	// simulation step, always
	// =============================
	g.stepWave(dt, pointer)

	// =============================
	// agents
	// =============================
	cursor := TheInputManager.CursorPos
	g.agents.Update(dt, cursor, pointer.IsDown)

	// =============================
	// slider / gallery / barrel
	// =============================
	if g.showBarrel {
		g.barrel.Update(pm.Projects)
	} else if g.slider != nil {
		g.slider.Update(pm.Projects)

		if g.slider.IsPostTransition() {
			if g.gallery.Project == nil &&
				g.slider.SelectedTile < len(pm.Projects) {
				g.openGallery(&pm.Projects[g.slider.SelectedTile])
			}
			g.gallery.Update()
		}
	}

	// =============================
	// overlay
	// =============================
	if g.slider != nil {
		g.overlay.Update(g.slider)
	}

	g.updateDebugPrints()

	return nil
}

// stepWave advances the water; a panic here is logged and the frame
// carries on with stale buffers.
func (g *Game) stepWave(dt float64, pointer PointerState) {
	defer func() {
		if r := recover(); r != nil {
			ErrorLogger.Printf("wave step failed : %v", r)
		}
	}()

	g.field.Step(dt, pointer)
}

func (g *Game) handleHotkeys() {
	if IsKeyJustPressed(CopyTuningTableKey) {
		CopyTuningTableToClipboard()
	}

	if IsKeyJustPressed(ToggleBarrelViewKey) {
		// only from the resting slider state; the transition machine
		// owns the screen otherwise
		if g.slider == nil || g.slider.Phase == TransitionIdle {
			g.showBarrel = !g.showBarrel
		}
	}

	if IsKeyJustPressed(ResetWaterKey) {
		g.field.Reset()
	}

	if IsKeyJustPressed(TakeScreenshotKey) {
		g.queueScreenshot = true
	}
}

func (g *Game) updateDebugPrints() {
	if g.slider != nil {
		DebugPrintf("offset", "%.1f -> %.1f", g.slider.CurrentOffset, g.slider.TargetOffset)
		DebugPrint("phase", g.slider.Phase)
	}
	DebugPrintf("pointer", "%.2f %.2f down=%v", Pointer().X, Pointer().Y, Pointer().IsDown)
}

func (g *Game) Draw(dst *eb.Image) {
	if g.showBarrel {
		g.barrel.Draw(dst, TheProjectManager.Projects)
	} else {
		g.compositor.CapturePass()
		g.compositor.DisplayPass(dst, g.field)
	}

	// overlay text sits above the water, undistorted
	g.overlay.Draw(dst, g.gallery)

	if g.queueScreenshot {
		g.queueScreenshot = false

		if name, err := TakeScreenshot(dst); err == nil {
			InfoLogger.Printf("saved screenshot to %v", name)
		} else {
			ErrorLogger.Printf("failed to take screenshot : %v", err)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := f64(outsideWidth), f64(outsideHeight)

	if w != g.screenW || h != g.screenH {
		g.screenW, g.screenH = w, h

		g.compositor.Resize(w, h)
		g.agents.Layout(w, h)
		g.gallery.Layout(w, h)
		g.barrel.Layout(w, h)
		g.overlay.Layout(w, h)
		if g.slider != nil {
			g.slider.Layout(w, h)
		}
	}

	return outsideWidth, outsideHeight
}

// Dispose releases render targets and unhooks the capture drawers.
func (g *Game) Dispose() {
	if g.slider != nil {
		g.compositor.Deregister(g.slider)
	}
	g.compositor.Deregister(g.gallery)
	g.compositor.Deregister(g.agents)
	g.compositor.Dispose()
	g.barrel.Dispose()
	g.shaders.Dispose()
}
