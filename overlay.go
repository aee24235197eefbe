package main

import (
	"fmt"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Overlay is the text/navigation layer that sits on top of the
// composited scene. It mirrors what the reference site renders in the
// DOM: hover title and description, the loading state, the gallery
// counter and the back control. It receives state through callbacks
// and flags; its only outbound call is the back action.
type Overlay struct {
	screenW, screenH float64

	hovered    *Project
	hoverAlpha float64

	galleryAlpha float64

	BackButton TextButton

	// wired by the game at mount
	RequestBack func()
}

func NewOverlay(screenW, screenH float64) *Overlay {
	o := &Overlay{}
	o.Layout(screenW, screenH)

	o.BackButton = TextButton{
		Label: "back",
		Face:  BodyFace,
	}
	o.BackButton.OnRelease = func() {
		if o.RequestBack != nil {
			o.RequestBack()
		}
	}

	return o
}

func (o *Overlay) Layout(screenW, screenH float64) {
	o.screenW = screenW
	o.screenH = screenH
}

// OnHover is the slider's hover callback. nil clears the hover.
func (o *Overlay) OnHover(project *Project) {
	o.hovered = project
}

func (o *Overlay) OnTransitionStart() {
	o.hovered = nil
}

func (o *Overlay) OnBackToSlider() {
	o.galleryAlpha = 0
}

func (o *Overlay) Update(slider *SliderController) {
	// hover text eases in and out rather than popping
	hoverTarget := 0.0
	if o.hovered != nil && slider.Phase == TransitionIdle {
		hoverTarget = 1.0
	}
	o.hoverAlpha = Lerp(o.hoverAlpha, hoverTarget, 0.12)

	galleryTarget := 0.0
	if slider.IsPostTransition() {
		galleryTarget = 1.0
	}
	o.galleryAlpha = Lerp(o.galleryAlpha, galleryTarget, 0.1)

	o.BackButton.Rect = FRect(
		o.screenW*0.05, o.screenH*0.07,
		o.screenW*0.05+80, o.screenH*0.07+30,
	)
	o.BackButton.Disabled = !slider.IsPostTransition()
	o.BackButton.Update()
}

func (o *Overlay) Draw(dst *eb.Image, gallery *GalleryView) {
	pm := &TheProjectManager

	if !pm.Loaded {
		o.drawCentered(dst, "loading", BodyFace, ThemeColors[ColorLoadingText], 1, o.screenH*0.5)
		return
	}

	if len(pm.Projects) == 0 {
		o.drawCentered(dst, "nothing here yet", BodyFace, ThemeColors[ColorLoadingText], 1, o.screenH*0.5)
		return
	}

	// =============================
	// hover title / description
	// =============================
	if o.hoverAlpha > 0.004 && o.hovered != nil {
		o.drawCentered(dst, o.hovered.Name, TitleFace,
			ThemeColors[ColorOverlayText], o.hoverAlpha, o.screenH*0.12)
		o.drawCentered(dst, o.hovered.Description, BodyFace,
			ThemeColors[ColorOverlayTextDim], o.hoverAlpha, o.screenH*0.88)
	}

	// =============================
	// gallery chrome
	// =============================
	if o.galleryAlpha > 0.004 && gallery.Project != nil {
		o.drawCentered(dst, gallery.Project.Name, BodyFace,
			ThemeColors[ColorOverlayText], o.galleryAlpha, o.screenH*0.06)

		counter := fmt.Sprintf("%d / %d", gallery.CurrentImageIndex+1, len(gallery.Project.Images))
		o.drawCentered(dst, counter, SmallFace,
			ThemeColors[ColorOverlayTextDim], o.galleryAlpha, o.screenH*0.94)

		if img, ok := gallery.CurrentImage(); ok && img.Description != "" {
			o.drawCentered(dst, img.Description, SmallFace,
				ThemeColors[ColorOverlayTextDim], o.galleryAlpha, o.screenH*0.90)
		}

		o.BackButton.Draw(dst, o.galleryAlpha)
	}
}

func (o *Overlay) drawCentered(
	dst *eb.Image,
	str string,
	face *ebt.GoTextFace,
	clr color.Color,
	alpha float64,
	y float64,
) {
	if face == nil || str == "" {
		return
	}

	w, _ := ebt.Measure(str, face, 0)

	op := &ebt.DrawOptions{}
	op.GeoM.Translate((o.screenW-w)*0.5, y)
	op.ColorScale.ScaleWithColor(ColorFade(clr, alpha))

	ebt.Draw(dst, str, face, op)
}
