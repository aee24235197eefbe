package main

import (
	"image/color"
	"slices"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// CaptureDrawer is implemented by anything that wants to appear in the
// rippled scene. Drawers register themselves; the compositor never
// goes looking for them.
type CaptureDrawer interface {
	// scale maps screen space onto the (possibly half-sized) target
	DrawCapture(dst *eb.Image, scale float64)
}

// SceneCompositor renders the registered scene into an offscreen
// target, then puts it on screen through the wave-distortion shader.
type SceneCompositor struct {
	caps    DeviceCaps
	shaders *Shaders

	capture    *eb.Image
	waveScaled *eb.Image
	waveTex    *WaveTexture

	drawers []CaptureDrawer

	screenW, screenH   float64
	captureW, captureH int

	// set once a capture pass has succeeded; until then the display
	// pass draws the background only
	captureValid bool

	lightDir [3]float64
}

func NewSceneCompositor(caps DeviceCaps, shaders *Shaders, screenW, screenH float64) *SceneCompositor {
	c := &SceneCompositor{
		caps:     caps,
		shaders:  shaders,
		lightDir: [3]float64{-0.4, -0.6, 0.7},
	}
	c.Resize(screenW, screenH)

	grid := caps.WaveGridSize()
	c.waveTex = NewWaveTexture(grid, grid)

	return c
}

func (c *SceneCompositor) Register(d CaptureDrawer) {
	if slices.Contains(c.drawers, d) {
		return
	}
	c.drawers = append(c.drawers, d)
}

func (c *SceneCompositor) Deregister(d CaptureDrawer) {
	c.drawers = slices.DeleteFunc(c.drawers, func(e CaptureDrawer) bool {
		return e == d
	})
}

// Resize recreates the offscreen targets for a new viewport. The wave
// texture keeps its grid size; only screen-sized targets change.
func (c *SceneCompositor) Resize(screenW, screenH float64) {
	if screenW <= 0 || screenH <= 0 {
		return
	}
	if screenW == c.screenW && screenH == c.screenH && c.capture != nil {
		return
	}

	c.screenW, c.screenH = screenW, screenH

	scale := c.caps.CaptureScale()
	w := max(int(screenW*scale), 1)
	h := max(int(screenH*scale), 1)

	if c.capture != nil {
		c.capture.Deallocate()
	}
	if c.waveScaled != nil {
		c.waveScaled.Deallocate()
	}

	c.capture = eb.NewImage(w, h)
	c.waveScaled = eb.NewImage(w, h)
	c.captureW, c.captureH = w, h
	c.captureValid = false
}

// CapturePass renders every registered drawer into the offscreen
// target. A panicking drawer leaves the previous capture in place and
// the frame continues.
func (c *SceneCompositor) CapturePass() {
	defer func() {
		if r := recover(); r != nil {
			ErrorLogger.Printf("capture pass failed, reusing previous frame : %v", r)
		}
	}()

	c.capture.Clear()

	scale := c.caps.CaptureScale()

	for _, d := range c.drawers {
		d.DrawCapture(c.capture, scale)
	}

	c.captureValid = true
}

// DisplayPass samples the capture through the wave shader onto dst.
func (c *SceneCompositor) DisplayPass(dst *eb.Image, field *WaveField) {
	defer func() {
		if r := recover(); r != nil {
			ErrorLogger.Printf("display pass failed : %v", r)
			// fall back to the undistorted capture so the screen is
			// never left blank
			if c.captureValid {
				op := &eb.DrawImageOptions{}
				op.GeoM.Scale(c.screenW/f64(c.captureW), c.screenH/f64(c.captureH))
				dst.DrawImage(c.capture, op)
			}
		}
	}()

	if !c.captureValid {
		dst.Fill(ThemeColors[ColorBg])
		return
	}

	c.waveTex.Upload(field.Read())

	// upscale the wave grid to the capture size with linear filtering;
	// the shader wants both sources the same size and the filtering
	// smooths the grid for free
	c.waveScaled.Clear()
	{
		op := &eb.DrawImageOptions{}
		op.Filter = eb.FilterLinear
		op.GeoM.Scale(
			f64(c.captureW)/f64(field.Width()),
			f64(c.captureH)/f64(field.Height()),
		)
		c.waveScaled.DrawImage(c.waveTex.Image(), op)
	}

	bg := ColorNormalized(ThemeColors[ColorBg], false)

	op := &eb.DrawRectShaderOptions{}
	op.Images[0] = c.capture
	op.Images[1] = c.waveScaled
	op.Uniforms = map[string]any{
		"DistortionStrength": TheTuningTable.DistortionStrength,
		"SpecularStrength":   TheTuningTable.SpecularStrength,
		"PressureTint":       TheTuningTable.PressureTint,
		"ChromaOffset":       c.caps.ChromaOffset(),
		"BgColor":            bg,
		"LightDir":           c.lightDir,
	}
	op.GeoM.Scale(c.screenW/f64(c.captureW), c.screenH/f64(c.captureH))

	dst.DrawRectShader(c.captureW, c.captureH, c.shaders.Display, op)
}

// CaptureSize is exposed for drawers that want to match the target.
func (c *SceneCompositor) CaptureSize() (int, int) {
	return c.captureW, c.captureH
}

func (c *SceneCompositor) CaptureScale() float64 {
	return c.caps.CaptureScale()
}

func (c *SceneCompositor) BackgroundColor() color.NRGBA {
	return ThemeColors[ColorBg]
}

func (c *SceneCompositor) Dispose() {
	if c.capture != nil {
		c.capture.Deallocate()
	}
	if c.waveScaled != nil {
		c.waveScaled.Deallocate()
	}
	if c.waveTex != nil {
		c.waveTex.Dispose()
	}
	c.drawers = nil
}
