package main

import (
	"math"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
)

type TransitionPhase int

const (
	TransitionIdle TransitionPhase = iota
	TransitionExpanding
	TransitionAwaitingFade
	TransitionFading
	TransitionPost
	TransitionReturning1
	TransitionReturning2
	TransitionReturning3
)

func (p TransitionPhase) String() string {
	switch p {
	case TransitionIdle:
		return "Idle"
	case TransitionExpanding:
		return "Expanding"
	case TransitionAwaitingFade:
		return "AwaitingFade"
	case TransitionFading:
		return "Fading"
	case TransitionPost:
		return "PostTransition"
	case TransitionReturning1:
		return "Returning1"
	case TransitionReturning2:
		return "Returning2"
	case TransitionReturning3:
		return "Returning3"
	}
	return "Unknown"
}

// SliderTile is one visible strip item. Tiles are regenerated from the
// offset every frame, never stored.
type SliderTile struct {
	Index  int     // project index, already wrapped
	StripI int     // unwrapped strip slot, distinct across the seam
	WorldX float64 // screen-space center x
}

// SliderController maps pointer/wheel/touch input onto a 1-D strip
// offset, with momentum, snapping and the tile-selection transition.
type SliderController struct {
	screenW, screenH float64

	projectCount int

	TargetOffset  float64
	CurrentOffset float64
	Momentum      float64
	IsDragging    bool
	IsSnapping    bool
	// -1, 0, or 1
	SwipeDirection int

	dragStartX      float64
	dragStartY      float64
	dragStartOffset float64
	prevTarget      float64
	wasDown         bool

	lastInteraction time.Duration

	// selection transition
	Phase        TransitionPhase
	SelectedTile int
	Progress     float64
	selectTimer  Timer
	returnTimer  Timer
	fadeInTimer  Timer
	startOffset  float64

	HiddenSlides       map[string]bool
	TransitionComplete bool

	scheduler *PhaseScheduler

	// overlay collaborator callbacks
	OnHover           func(project *Project)
	OnTransitionStart func()
	OnBackToSlider    func()

	hoveredProject int
}

func NewSliderController(screenW, screenH float64, projectCount int) *SliderController {
	s := &SliderController{
		scheduler:      NewPhaseScheduler(),
		hoveredProject: -1,
	}
	s.Layout(screenW, screenH)
	s.projectCount = projectCount
	s.HiddenSlides = make(map[string]bool)
	return s
}

func (s *SliderController) Layout(screenW, screenH float64) {
	s.screenW = screenW
	s.screenH = screenH
}

// tile geometry is derived from the viewport every frame so resizes
// need no special handling

func (s *SliderController) TileWidth() float64 {
	return s.screenW * 0.26
}

func (s *SliderController) TileHeight() float64 {
	return s.TileWidth() * 1.3
}

func (s *SliderController) TileSpacing() float64 {
	return s.TileWidth() * 1.22
}

// TotalStripWidth is one full wraparound cycle of the strip.
func (s *SliderController) TotalStripWidth() float64 {
	return s.TileSpacing() * f64(max(s.projectCount, 1))
}

// VisibleTiles recomputes the sliding window for the current offset.
// Near the wrap seam the same project index legitimately appears at
// two world positions; gaps are not allowed.
func (s *SliderController) VisibleTiles() []SliderTile {
	if s.projectCount == 0 {
		return nil
	}

	spacing := s.TileSpacing()
	halfTile := s.TileWidth() * 0.5
	center := s.screenW * 0.5

	// strip slots whose centers land within the viewport plus one
	// tile of margin on both sides
	minWorld := -halfTile - spacing
	maxWorld := s.screenW + halfTile + spacing

	first := int(math.Floor((s.CurrentOffset + minWorld - center) / spacing))
	last := int(math.Ceil((s.CurrentOffset + maxWorld - center) / spacing))

	tiles := make([]SliderTile, 0, last-first+1)

	for i := first; i <= last; i++ {
		worldX := f64(i)*spacing - s.CurrentOffset + center

		index := i % s.projectCount
		if index < 0 {
			index += s.projectCount
		}

		tiles = append(tiles, SliderTile{
			Index:  index,
			StripI: i,
			WorldX: worldX,
		})
	}

	return tiles
}

// TileRect is the screen rect of a visible tile.
func (s *SliderController) TileRect(t SliderTile) FRectangle {
	return CenterFRectangle(
		FRectWH(s.TileWidth(), s.TileHeight()),
		t.WorldX, s.screenH*0.5,
	)
}

// CalculateNearestSnapPosition returns the offset that centers the
// closest tile, honoring the swipe direction. With direction 0 and an
// offset already at a center it returns the offset unchanged.
func (s *SliderController) CalculateNearestSnapPosition(offset float64, direction int) float64 {
	spacing := s.TileSpacing()
	if spacing == 0 {
		return offset
	}

	slot := offset / spacing

	switch {
	case direction > 0:
		return math.Ceil(slot-1e-9) * spacing
	case direction < 0:
		return math.Floor(slot+1e-9) * spacing
	default:
		return math.Round(slot) * spacing
	}
}

// OffsetForTile returns the offset value that centers a project index
// using the nearest strip slot to the current offset.
func (s *SliderController) OffsetForTile(index int) float64 {
	if s.projectCount == 0 {
		return 0
	}

	spacing := s.TileSpacing()
	cycle := s.TotalStripWidth()

	base := f64(index) * spacing

	// pick the cycle copy closest to where we are now
	n := math.Round((s.CurrentOffset - base) / cycle)
	return base + n*cycle
}

func (s *SliderController) Update(projects []Project) {
	t := &TheTuningTable

	s.scheduler.Update()

	switch s.Phase {
	case TransitionIdle:
		s.updateIdle(projects)
	case TransitionExpanding:
		s.updateExpanding(projects)
	case TransitionReturning1:
		s.returnTimer.TickUp()
	case TransitionReturning3:
		s.fadeInTimer.TickUp()
	case TransitionPost,
		TransitionAwaitingFade, TransitionFading,
		TransitionReturning2:
		// input disabled; phases advance on the scheduler
	}

	// currentOffset always chases targetOffset, except while the
	// selection curve drives both explicitly
	if s.Phase != TransitionExpanding {
		lerpFactor := t.SliderLerpReleased
		if s.IsDragging {
			lerpFactor = t.SliderLerpHeld
		}
		s.CurrentOffset += (s.TargetOffset - s.CurrentOffset) * lerpFactor
	}
}

func (s *SliderController) updateIdle(projects []Project) {
	t := &TheTuningTable
	im := &TheInputManager

	pointer := im.Pointer
	cursor := im.CursorPos

	// =============================
	// wheel
	// =============================
	if im.WheelDeltaY != 0 {
		s.TargetOffset += im.WheelDeltaY * t.WheelSensitivity * 60
		s.lastInteraction = GlobalTimerNow()
		s.IsSnapping = false
		if im.WheelDeltaY > 0 {
			s.SwipeDirection = 1
		} else {
			s.SwipeDirection = -1
		}
	}

	// =============================
	// drag
	// =============================
	if pointer.IsDown && !s.wasDown {
		s.IsDragging = true
		s.dragStartX = cursor.X
		s.dragStartY = cursor.Y
		s.dragStartOffset = s.TargetOffset
		s.Momentum = 0
		s.IsSnapping = false
		s.lastInteraction = GlobalTimerNow()
	}

	if s.IsDragging && pointer.IsDown {
		delta := s.dragStartX - cursor.X
		s.TargetOffset = s.dragStartOffset + delta*t.DragSensitivity

		targetDelta := s.TargetOffset - s.prevTarget
		s.Momentum = Lerp(s.Momentum, targetDelta, t.MomentumSmoothing)

		s.lastInteraction = GlobalTimerNow()
	}

	if s.wasDown && !pointer.IsDown {
		wasDrag := math.Hypot(cursor.X-s.dragStartX, cursor.Y-s.dragStartY) > t.TapMaxDistance

		if s.IsDragging && !wasDrag {
			s.handleTap(cursor, projects)
			if s.Phase != TransitionIdle {
				s.wasDown = false
				return
			}
		}

		s.IsDragging = false

		if wasDrag {
			if math.Abs(s.Momentum) > t.MomentumThreshold {
				carry := Clamp(s.Momentum*t.MomentumProjection, -t.MomentumMaxCarry, t.MomentumMaxCarry)
				s.TargetOffset += carry

				if s.Momentum > 0 {
					s.SwipeDirection = 1
				} else {
					s.SwipeDirection = -1
				}
			}
			s.lastInteraction = GlobalTimerNow()
		}
	}

	s.Momentum *= t.MomentumDecay

	// =============================
	// snap
	// =============================
	idle := !s.IsDragging && TimeSinceNow(s.lastInteraction) > t.SnapDelay

	if idle && s.projectCount > 0 {
		snapPos := s.CalculateNearestSnapPosition(s.TargetOffset, s.SwipeDirection)

		if math.Abs(s.CurrentOffset-snapPos) <= t.SnapEpsilon {
			if s.IsSnapping {
				s.TargetOffset = snapPos
				s.IsSnapping = false
				s.SwipeDirection = 0
			}
		} else {
			s.IsSnapping = true
			s.TargetOffset += (snapPos - s.TargetOffset) * t.SnapBias
		}
	}

	// =============================
	// hover
	// =============================
	if !s.IsDragging {
		s.updateHover(cursor, projects)
	}

	s.prevTarget = s.TargetOffset
	s.wasDown = pointer.IsDown
}

func (s *SliderController) updateHover(cursor FPoint, projects []Project) {
	hovered := -1

	for _, tile := range s.VisibleTiles() {
		if cursor.In(s.TileRect(tile)) {
			hovered = tile.Index
			break
		}
	}

	if hovered == s.hoveredProject {
		return
	}

	s.hoveredProject = hovered

	if s.OnHover == nil {
		return
	}

	if hovered >= 0 && hovered < len(projects) {
		s.OnHover(&projects[hovered])
	} else {
		s.OnHover(nil)
	}
}

func (s *SliderController) handleTap(cursor FPoint, projects []Project) {
	for _, tile := range s.VisibleTiles() {
		if cursor.In(s.TileRect(tile)) {
			s.StartSelection(tile.Index, projects)
			return
		}
	}
}

// StartSelection begins the fixed-duration move of the chosen tile to
// screen center while everything else fades out.
func (s *SliderController) StartSelection(index int, projects []Project) {
	if s.Phase != TransitionIdle {
		return
	}

	s.Phase = TransitionExpanding
	s.scheduler.Advance()

	s.SelectedTile = index
	s.Progress = 0
	s.startOffset = s.CurrentOffset
	s.selectTimer = Timer{Duration: TheTuningTable.SelectDuration}
	s.IsDragging = false
	s.IsSnapping = false
	s.Momentum = 0

	if s.OnHover != nil {
		s.OnHover(nil)
	}
	if s.OnTransitionStart != nil {
		s.OnTransitionStart()
	}
}

func (s *SliderController) updateExpanding(projects []Project) {
	t := &TheTuningTable

	s.selectTimer.TickUp()
	s.Progress = EaseInOutCubic(s.selectTimer.Normalize())

	// the one place both offsets are driven directly
	endOffset := s.OffsetForTile(s.SelectedTile)
	s.CurrentOffset = Lerp(s.startOffset, endOffset, s.Progress)
	s.TargetOffset = s.CurrentOffset

	if !s.selectTimer.Done() {
		return
	}

	for i := range projects {
		if i != s.SelectedTile {
			s.HiddenSlides[projects[i].Name] = true
		}
	}
	s.TransitionComplete = true

	s.Phase = TransitionAwaitingFade
	s.scheduler.Advance()

	s.scheduler.After(t.FadeDelay, func() {
		s.Phase = TransitionFading
		s.scheduler.After(t.FadeDuration, func() {
			s.Phase = TransitionPost
		})
	})
}

// BeginReturn starts the strictly ordered three-phase trip back from
// the detail view. Phases never skip; each advances only after its
// fixed delay.
func (s *SliderController) BeginReturn() {
	if s.Phase != TransitionPost {
		return
	}

	t := &TheTuningTable

	s.Phase = TransitionReturning1
	s.scheduler.Advance()
	s.returnTimer = Timer{Duration: t.ReturnPhase1}

	s.scheduler.After(t.ReturnPhase1, func() {
		s.Phase = TransitionReturning2

		// the slider itself is rebuilt wholesale here, recentered on
		// the tile the user came from; incremental rollback of the
		// old dynamics is exactly what this avoids
		s.resetState(s.OffsetForTile(s.SelectedTile))

		s.scheduler.After(t.ReturnPhase2, func() {
			s.Phase = TransitionReturning3
			s.fadeInTimer = Timer{Duration: t.ReturnPhase3}

			s.scheduler.After(t.ReturnPhase3, func() {
				s.Phase = TransitionIdle
				if s.OnBackToSlider != nil {
					s.OnBackToSlider()
				}
			})
		})
	})
}

// resetState wipes every dynamic field back to mount state at a given
// initial offset.
func (s *SliderController) resetState(initialOffset float64) {
	s.TargetOffset = initialOffset
	s.CurrentOffset = initialOffset
	s.Momentum = 0
	s.IsDragging = false
	s.IsSnapping = false
	s.SwipeDirection = 0
	s.Progress = 0
	s.prevTarget = initialOffset
	s.wasDown = false
	s.lastInteraction = GlobalTimerNow()
	s.HiddenSlides = make(map[string]bool)
	s.TransitionComplete = false
	s.hoveredProject = -1
}

// IsPostTransition reports whether the detail view owns the screen.
func (s *SliderController) IsPostTransition() bool {
	return s.Phase == TransitionPost
}

func (s *SliderController) IsTransitioning() bool {
	return s.Phase != TransitionIdle && s.Phase != TransitionPost
}

// TileAlpha is the draw alpha for a tile during the selection fade.
func (s *SliderController) TileAlpha(index int) float64 {
	switch s.Phase {
	case TransitionIdle:
		return 1
	case TransitionExpanding:
		if index == s.SelectedTile {
			return 1
		}
		return 1 - s.Progress
	case TransitionAwaitingFade, TransitionFading, TransitionPost:
		if index == s.SelectedTile {
			return 1
		}
		return 0
	case TransitionReturning1, TransitionReturning2:
		if index == s.SelectedTile {
			return 1
		}
		return 0
	case TransitionReturning3:
		if index == s.SelectedTile {
			return 1
		}
		return s.fadeInTimer.Normalize()
	}
	return 1
}

// TileScale is the draw scale for a tile during selection.
func (s *SliderController) TileScale(index int) float64 {
	if s.Phase == TransitionExpanding && index == s.SelectedTile {
		return Lerp(1.0, 1.18, s.Progress)
	}
	if s.Phase == TransitionReturning1 && index == s.SelectedTile {
		return Lerp(1.18, 1.0, s.returnTimer.Normalize())
	}
	return 1
}

// DrawCapture renders the visible strip into the compositor's capture
// target.
func (s *SliderController) DrawCapture(dst *eb.Image, scale float64) {
	pm := &TheProjectManager

	if !pm.Loaded || s.projectCount == 0 {
		return
	}

	for _, tile := range s.VisibleTiles() {
		project := pm.Projects[tile.Index]

		alpha := s.TileAlpha(tile.Index)
		if alpha <= 0.004 {
			continue
		}

		rect := s.TileRect(tile)
		tileScale := s.TileScale(tile.Index)
		if tileScale != 1 {
			rect = FRectScaleCentered(rect, tileScale)
		}

		var tex *eb.Image
		if len(project.Images) > 0 {
			tex = ProjectTexture(project.Images[0].Src)
		} else {
			tex = ProjectTexture(project.Name)
		}

		texW, texH := ImageSizeF(tex)

		op := &eb.DrawImageOptions{}
		op.Filter = eb.FilterLinear
		op.GeoM.Scale(rect.Dx()/texW, rect.Dy()/texH)
		op.GeoM.Translate(rect.Min.X, rect.Min.Y)
		op.GeoM.Scale(scale, scale)
		op.ColorScale.ScaleAlpha(f32(alpha))

		dst.DrawImage(tex, op)

		StrokeRect(
			dst,
			FRect(rect.Min.X*scale, rect.Min.Y*scale, rect.Max.X*scale, rect.Max.Y*scale),
			1,
			ColorFade(ThemeColors[ColorTileStroke], alpha*0.5),
			false,
		)
	}
}
