package main

import (
	"math"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// BarrelView is the alternate presentation mode: a vertical scroll of
// all project imagery viewed through a barrel distortion whose
// strength follows scroll velocity.
type BarrelView struct {
	screenW, screenH float64

	TargetScroll  float64
	CurrentScroll float64
	smoothedSpeed float64

	content *eb.Image
	shaders *Shaders
}

func NewBarrelView(screenW, screenH float64, shaders *Shaders) *BarrelView {
	b := &BarrelView{shaders: shaders}
	b.Layout(screenW, screenH)
	return b
}

func (b *BarrelView) Layout(screenW, screenH float64) {
	if screenW == b.screenW && screenH == b.screenH && b.content != nil {
		return
	}

	b.screenW = screenW
	b.screenH = screenH

	if b.content != nil {
		b.content.Deallocate()
	}
	b.content = eb.NewImage(max(int(screenW), 1), max(int(screenH), 1))
}

func (b *BarrelView) rowHeight() float64 {
	return b.screenH * 0.6
}

func (b *BarrelView) contentHeight(projects []Project) float64 {
	rows := 0
	for _, p := range projects {
		rows += len(p.Images)
	}
	return f64(max(rows, 1)) * b.rowHeight()
}

func (b *BarrelView) Update(projects []Project) {
	t := &TheTuningTable
	im := &TheInputManager

	if im.WheelDeltaY != 0 {
		b.TargetScroll += im.WheelDeltaY * t.WheelSensitivity * 90
	}

	maxScroll := b.contentHeight(projects) - b.screenH
	b.TargetScroll = Clamp(b.TargetScroll, 0, math.Max(maxScroll, 0))

	prev := b.CurrentScroll
	b.CurrentScroll += (b.TargetScroll - b.CurrentScroll) * t.SliderLerpReleased

	speed := math.Abs(b.CurrentScroll - prev)
	b.smoothedSpeed = Lerp(b.smoothedSpeed, speed, t.BarrelVelocitySmooth)
}

// Strength is the current shader distortion amount.
func (b *BarrelView) Strength() float64 {
	t := &TheTuningTable
	return Clamp(b.smoothedSpeed*0.02, 0, t.BarrelStrengthMax)
}

// Draw renders the visible strip slice offscreen, then displays it
// through the barrel shader.
func (b *BarrelView) Draw(dst *eb.Image, projects []Project) {
	defer func() {
		if r := recover(); r != nil {
			ErrorLogger.Printf("barrel pass failed : %v", r)
		}
	}()

	b.content.Fill(ThemeColors[ColorBg])

	rowH := b.rowHeight()
	imgH := rowH * 0.82

	row := 0
	for _, project := range projects {
		for _, pi := range project.Images {
			y := f64(row)*rowH - b.CurrentScroll
			row++

			if y+rowH < 0 || y > b.screenH {
				continue
			}

			tex := ProjectTexture(pi.Src)
			texW, texH := ImageSizeF(tex)

			fit := imgH / texH
			drawW := texW * fit

			op := &eb.DrawImageOptions{}
			op.Filter = eb.FilterLinear
			op.GeoM.Scale(fit, fit)
			op.GeoM.Translate((b.screenW-drawW)*0.5, y+(rowH-imgH)*0.5)

			b.content.DrawImage(tex, op)

			textOp := &ebt.DrawOptions{}
			textOp.GeoM.Translate(b.screenW*0.09, y+rowH*0.5)
			textOp.ColorScale.ScaleWithColor(ThemeColors[ColorOverlayTextDim])
			ebt.Draw(b.content, project.Name, SmallFace, textOp)
		}
	}

	bg := ColorNormalized(ThemeColors[ColorBg], false)

	op := &eb.DrawRectShaderOptions{}
	op.Images[0] = b.content
	op.Uniforms = map[string]any{
		"Strength": b.Strength(),
		"BgColor":  bg,
	}

	dst.DrawRectShader(b.content.Bounds().Dx(), b.content.Bounds().Dy(), b.shaders.Barrel, op)
}

func (b *BarrelView) Dispose() {
	if b.content != nil {
		b.content.Deallocate()
	}
}
