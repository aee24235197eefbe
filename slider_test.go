package main

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjects(count int) []Project {
	projects := make([]Project, count)
	for i := range projects {
		projects[i] = Project{
			Name:        fmt.Sprintf("project %v", i),
			Description: fmt.Sprintf("description %v", i),
		}
	}
	return projects
}

// tick advances one simulated frame for slider tests.
func tickSlider(s *SliderController, projects []Project) {
	AdvanceGlobalTimer(UpdateDelta())
	s.Update(projects)
}

// ticksFor returns how many fixed ticks cover d. The per-tick delta
// truncates time.Second/TPS, so d only elapses on the ceil tick.
func ticksFor(d time.Duration) int {
	delta := UpdateDelta()
	return int((d + delta - 1) / delta)
}

func resetSliderTestEnv() {
	globalTimer = 0
	TheInputManager.Pointer = PointerState{}
	TheInputManager.CursorPos = FPoint{}
	TheInputManager.WheelDeltaY = 0
}

func TestOffsetConvergesGeometrically(t *testing.T) {
	resetSliderTestEnv()

	s := NewSliderController(1280, 800, 5)

	// a target already on a snap position so snapping cannot move it
	initial := s.TileSpacing() * 3
	s.TargetOffset = initial
	s.CurrentOffset = 0

	lerp := TheTuningTable.SliderLerpReleased

	for frame := 1; frame <= 90; frame++ {
		tickSlider(s, nil)

		want := initial * math.Pow(1-lerp, f64(frame))
		got := math.Abs(s.TargetOffset - s.CurrentOffset)

		require.LessOrEqual(t, got, want*1.0001+1e-9,
			"frame %v: gap %v exceeds geometric bound %v", frame, got, want)
	}
}

func TestSnapIsIdempotentAtCenter(t *testing.T) {
	resetSliderTestEnv()

	s := NewSliderController(1280, 800, 5)
	spacing := s.TileSpacing()

	for _, slot := range []float64{-3, -1, 0, 1, 7} {
		offset := slot * spacing
		got := s.CalculateNearestSnapPosition(offset, 0)
		assert.InDelta(t, offset, got, 1e-9,
			"offset already at slot %v must not move", slot)
	}

	// direction honors the last swipe even from mid-gap
	mid := spacing * 2.5
	assert.InDelta(t, spacing*3, s.CalculateNearestSnapPosition(mid, 1), 1e-9)
	assert.InDelta(t, spacing*2, s.CalculateNearestSnapPosition(mid, -1), 1e-9)
}

func TestVisibleTilesRepeatPerCycle(t *testing.T) {
	resetSliderTestEnv()

	s := NewSliderController(1280, 800, 4)

	s.CurrentOffset = s.TileSpacing() * 1.37
	tilesA := s.VisibleTiles()

	s.CurrentOffset += s.TotalStripWidth()
	tilesB := s.VisibleTiles()

	require.Equal(t, len(tilesA), len(tilesB))

	for i := range tilesA {
		assert.Equal(t, tilesA[i].Index, tilesB[i].Index)
		assert.InDelta(t, tilesA[i].WorldX, tilesB[i].WorldX, 1e-6)
		assert.Equal(t, tilesA[i].StripI+4, tilesB[i].StripI)
	}
}

func TestVisibleTilesLeaveNoGaps(t *testing.T) {
	resetSliderTestEnv()

	s := NewSliderController(1280, 800, 3)
	spacing := s.TileSpacing()

	for _, offset := range []float64{0, spacing * 0.5, spacing * 100.1, -spacing * 7.7} {
		s.CurrentOffset = offset
		tiles := s.VisibleTiles()
		require.NotEmpty(t, tiles)

		// the window must cover the whole viewport
		assert.Less(t, tiles[0].WorldX, 0.0)
		assert.Greater(t, tiles[len(tiles)-1].WorldX, s.screenW)

		for i := 1; i < len(tiles); i++ {
			assert.InDelta(t, spacing, tiles[i].WorldX-tiles[i-1].WorldX, 1e-6,
				"tiles must be evenly spaced at offset %v", offset)
			assert.Equal(t, tiles[i-1].StripI+1, tiles[i].StripI)
		}
	}
}

func TestSelectionTransitionSequence(t *testing.T) {
	resetSliderTestEnv()

	projects := testProjects(4)
	s := NewSliderController(1280, 800, len(projects))

	transitionStarted := false
	s.OnTransitionStart = func() { transitionStarted = true }

	s.StartSelection(1, projects)

	require.Equal(t, TransitionExpanding, s.Phase)
	require.True(t, transitionStarted)

	selectTicks := ticksFor(TheTuningTable.SelectDuration)

	for i := 0; i < selectTicks-1; i++ {
		tickSlider(s, projects)
		require.False(t, s.TransitionComplete,
			"transition must not complete before the full duration")
	}

	tickSlider(s, projects)

	require.True(t, s.TransitionComplete)
	require.Equal(t, TransitionAwaitingFade, s.Phase)
	assert.InDelta(t, s.OffsetForTile(1), s.CurrentOffset, 1e-6,
		"the selected tile must end centered")

	for i, p := range projects {
		if i == 1 {
			assert.False(t, s.HiddenSlides[p.Name])
		} else {
			assert.True(t, s.HiddenSlides[p.Name], "%v must be hidden", p.Name)
		}
	}

	// fade phases advance on the scheduler
	fadeDelayTicks := ticksFor(TheTuningTable.FadeDelay)
	for i := 0; i < fadeDelayTicks; i++ {
		tickSlider(s, projects)
	}
	require.Equal(t, TransitionFading, s.Phase)

	fadeTicks := ticksFor(TheTuningTable.FadeDuration) + 1
	for i := 0; i < fadeTicks; i++ {
		tickSlider(s, projects)
	}
	require.Equal(t, TransitionPost, s.Phase)
	assert.True(t, s.IsPostTransition())
}

func TestReturnPhasesNeverSkip(t *testing.T) {
	resetSliderTestEnv()

	projects := testProjects(4)
	s := NewSliderController(1280, 800, len(projects))

	s.StartSelection(2, projects)
	for i := 0; i < 60*4 && !s.IsPostTransition(); i++ {
		tickSlider(s, projects)
	}
	require.True(t, s.IsPostTransition())

	backCalled := false
	s.OnBackToSlider = func() { backCalled = true }

	s.BeginReturn()
	require.Equal(t, TransitionReturning1, s.Phase)

	var seen []TransitionPhase
	prev := s.Phase

	for i := 0; i < 60*3 && s.Phase != TransitionIdle; i++ {
		tickSlider(s, projects)
		if s.Phase != prev {
			seen = append(seen, s.Phase)
			prev = s.Phase
		}
	}

	assert.Equal(t,
		[]TransitionPhase{TransitionReturning2, TransitionReturning3, TransitionIdle},
		seen,
		"return phases must run strictly in order")
	assert.True(t, backCalled)

	// the controller is rebuilt wholesale, recentered on the tile the
	// user came from
	assert.InDelta(t, s.OffsetForTile(2), s.CurrentOffset, 1e-6)
	assert.InDelta(t, s.TargetOffset, s.CurrentOffset, 1e-6)
	assert.Empty(t, s.HiddenSlides)
	assert.False(t, s.TransitionComplete)
	assert.Zero(t, s.Momentum)
}

func TestBeginReturnOnlyFromPost(t *testing.T) {
	resetSliderTestEnv()

	s := NewSliderController(1280, 800, 3)
	s.BeginReturn()
	assert.Equal(t, TransitionIdle, s.Phase)
}

func TestTapSelectsWhileSmallDragDoesNot(t *testing.T) {
	resetSliderTestEnv()
	defer resetSliderTestEnv()

	projects := testProjects(5)
	s := NewSliderController(1280, 800, len(projects))

	center := FPoint{X: 640, Y: 400}

	// press and release within the tap threshold
	TheInputManager.Pointer = PointerState{X: 0.5, Y: 0.5, IsDown: true}
	TheInputManager.CursorPos = center
	tickSlider(s, projects)

	TheInputManager.CursorPos = FPoint{X: center.X + 3, Y: center.Y}
	TheInputManager.Pointer.IsDown = false
	tickSlider(s, projects)

	require.Equal(t, TransitionExpanding, s.Phase, "a tap on a tile must select it")
	assert.Equal(t, 0, s.SelectedTile)
}

func TestDragMovesOffsetWithoutSelecting(t *testing.T) {
	resetSliderTestEnv()
	defer resetSliderTestEnv()

	projects := testProjects(5)
	s := NewSliderController(1280, 800, len(projects))

	TheInputManager.Pointer = PointerState{X: 0.5, Y: 0.5, IsDown: true}
	TheInputManager.CursorPos = FPoint{X: 640, Y: 400}
	tickSlider(s, projects)

	// drag left by 120px over a few frames
	for i := 1; i <= 4; i++ {
		TheInputManager.CursorPos = FPoint{X: 640 - f64(i)*30, Y: 400}
		tickSlider(s, projects)
	}

	assert.True(t, s.IsDragging)
	assert.InDelta(t, 120*TheTuningTable.DragSensitivity, s.TargetOffset, 1e-6)

	TheInputManager.Pointer.IsDown = false
	tickSlider(s, projects)

	assert.Equal(t, TransitionIdle, s.Phase, "a real drag must not select")
	assert.False(t, s.IsDragging)
	assert.GreaterOrEqual(t, s.TargetOffset, 120.0,
		"released momentum may only carry the offset further")
}

func TestOffsetForTilePicksNearestCycle(t *testing.T) {
	resetSliderTestEnv()

	s := NewSliderController(1280, 800, 4)
	cycle := s.TotalStripWidth()
	spacing := s.TileSpacing()

	s.CurrentOffset = cycle*3 + spacing
	got := s.OffsetForTile(1)

	assert.InDelta(t, cycle*3+spacing, got, 1e-6,
		"must center on the cycle copy nearest the current offset")
}
