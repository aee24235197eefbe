package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
)

type ButtonState int

const (
	ButtonStateNormal ButtonState = iota
	ButtonStateHover
	ButtonStateDown
)

type BaseButton struct {
	Rect FRectangle

	Disabled bool

	OnPress   func()
	OnRelease func()

	State ButtonState

	readyToCallOnRelease bool
}

func (b *BaseButton) Update() {
	if b.Disabled {
		b.State = ButtonStateNormal
		b.readyToCallOnRelease = false
		return
	}

	pt := TheInputManager.CursorPos

	inRect := pt.In(b.Rect)

	if inRect {
		if IsMouseButtonJustPressed(eb.MouseButtonLeft) || IsTouchJustPressedIn(b.Rect) {
			b.State = ButtonStateDown
			b.readyToCallOnRelease = true
			if b.OnPress != nil {
				b.OnPress()
			}
		}

		released := IsMouseButtonJustReleased(eb.MouseButtonLeft) || IsTouchJustReleasedIn(b.Rect)

		if b.readyToCallOnRelease && released {
			if b.OnRelease != nil {
				b.OnRelease()
			}
			b.readyToCallOnRelease = false
		}
	}

	if inRect {
		if b.State != ButtonStateDown || !IsMouseButtonPressed(eb.MouseButtonLeft) {
			b.State = ButtonStateHover
		}
	} else {
		b.State = ButtonStateNormal
		b.readyToCallOnRelease = false
	}
}

func IsTouchJustPressedIn(rect FRectangle) bool {
	im := &TheInputManager

	for _, touchId := range im.JustTouchedBuf {
		if TouchFPt(touchId).In(rect) {
			return true
		}
	}

	return false
}

func IsTouchJustReleasedIn(rect FRectangle) bool {
	im := &TheInputManager

	for _, touchId := range im.JustReleasedBuf {
		if PrevTouchFPt(touchId).In(rect) {
			return true
		}
	}

	return false
}

// TextButton is the overlay's navigation button: a label with a hover
// brightening, no chrome.
type TextButton struct {
	BaseButton

	Label string
	Face  *ebt.GoTextFace
}

func (b *TextButton) Draw(dst *eb.Image, alpha float64) {
	if b.Face == nil || alpha <= 0.004 {
		return
	}

	clr := ThemeColors[ColorOverlayButton]
	if b.State == ButtonStateHover || b.State == ButtonStateDown {
		clr = ThemeColors[ColorOverlayButtonHover]
	}

	op := &ebt.DrawOptions{}
	op.GeoM.Translate(b.Rect.Min.X, b.Rect.Min.Y)
	op.ColorScale.ScaleWithColor(ColorFade(clr, alpha))

	ebt.Draw(dst, b.Label, b.Face, op)
}
