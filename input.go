package main

import (
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebi "github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState is the single shared pointer record consumed once per
// frame by the simulation. Coordinates are normalized to [0,1].
// Intermediate positions between frames are lost on purpose; the
// simulation samples, it does not stream.
type PointerState struct {
	X, Y   float64
	IsDown bool
}

type TouchInfo struct {
	TouchID eb.TouchID

	StartedTime time.Duration
	StartedPos  FPoint

	EndedTime time.Duration
	EndedPos  FPoint
	DidEnd    bool

	Dragged bool

	// max number of simultaneous touches during
	// this was touching
	MaxTouchCount int
}

func (ti *TouchInfo) IsTouching() bool {
	return IsTouchIdTouching(ti.TouchID)
}

var TheInputManager struct {
	// below fields are updated by TheInputManager
	// only public for convinience
	// don't write in to it

	Pointer PointerState

	// screen-space pointer position, regardless of source
	CursorPos FPoint

	WheelDeltaY float64

	TouchInfos map[eb.TouchID]TouchInfo

	TouchingMap     map[eb.TouchID]bool
	JustTouchedMap  map[eb.TouchID]bool
	JustReleasedMap map[eb.TouchID]bool

	TouchingBuf     []eb.TouchID
	JustTouchedBuf  []eb.TouchID
	JustReleasedBuf []eb.TouchID

	sawTouchInput bool
}

func InitInputManager() {
	im := &TheInputManager

	im.TouchInfos = make(map[eb.TouchID]TouchInfo)
}

// UpdateInput runs once per tick, after ebiten has dispatched all
// queued events, and before anything reads the pointer.
func UpdateInput(screenWidth, screenHeight float64) {
	im := &TheInputManager

	// =============================
	// update touch buffers
	// =============================
	im.TouchingBuf = eb.AppendTouchIDs(im.TouchingBuf[:0])
	im.JustTouchedBuf = ebi.AppendJustPressedTouchIDs(im.JustTouchedBuf[:0])
	im.JustReleasedBuf = ebi.AppendJustReleasedTouchIDs(im.JustReleasedBuf[:0])

	if len(im.TouchingBuf) > 0 {
		im.sawTouchInput = true
	}

	// =============================
	// update touch maps
	// =============================
	im.TouchingMap = nil
	im.JustTouchedMap = nil
	im.JustReleasedMap = nil

	if len(im.TouchingBuf) > 0 {
		im.TouchingMap = make(map[eb.TouchID]bool)
		for _, id := range im.TouchingBuf {
			im.TouchingMap[id] = true
		}
	}
	if len(im.JustTouchedBuf) > 0 {
		im.JustTouchedMap = make(map[eb.TouchID]bool)
		for _, id := range im.JustTouchedBuf {
			im.JustTouchedMap[id] = true
		}
	}
	if len(im.JustReleasedBuf) > 0 {
		im.JustReleasedMap = make(map[eb.TouchID]bool)
		for _, id := range im.JustReleasedBuf {
			im.JustReleasedMap[id] = true
		}
	}

	// =============================
	// update touch infos
	// =============================
	for _, touchId := range im.JustTouchedBuf {
		im.TouchInfos[touchId] = TouchInfo{
			StartedTime: GlobalTimerNow(),
			StartedPos:  TouchFPt(touchId),
			TouchID:     touchId,
		}
	}

	dragDistance := TheTuningTable.TapMaxDistance

	for _, touchId := range im.TouchingBuf {
		if info, ok := im.TouchInfos[touchId]; ok {
			curPos := TouchFPt(touchId)
			if info.StartedPos.Sub(curPos).LengthSquared() > dragDistance*dragDistance {
				info.Dragged = true
			}

			info.MaxTouchCount = max(info.MaxTouchCount, len(im.TouchingBuf))

			im.TouchInfos[touchId] = info
		}
	}

	for _, touchId := range im.JustReleasedBuf {
		if info, ok := im.TouchInfos[touchId]; ok {
			info.DidEnd = true
			info.EndedTime = GlobalTimerNow()
			info.EndedPos = PrevTouchFPt(touchId)
			im.TouchInfos[touchId] = info
		}
	}

	// remove TouchInfo that are unpressed and too old
	for touchId, info := range im.TouchInfos {
		if !IsTouchIdTouching(touchId) && TimeSinceNow(info.StartedTime) > time.Minute*30 {
			delete(im.TouchInfos, touchId)
		}
	}

	// =============================
	// unified pointer sample
	// =============================
	pos := CursorFPt()
	down := IsMouseButtonPressed(eb.MouseButtonLeft)

	if len(im.TouchingBuf) > 0 {
		pos = TouchFPt(im.TouchingBuf[0])
		down = true
	}

	im.CursorPos = pos

	if screenWidth > 0 && screenHeight > 0 {
		im.Pointer = PointerState{
			X:      Clamp(pos.X/screenWidth, 0, 1),
			Y:      Clamp(pos.Y/screenHeight, 0, 1),
			IsDown: down,
		}
	}

	_, im.WheelDeltaY = eb.Wheel()
}

// Pointer returns the pointer sample for this frame.
func Pointer() PointerState {
	return TheInputManager.Pointer
}

// HasTouchInput reports whether any touch has been seen this run.
func HasTouchInput() bool {
	return TheInputManager.sawTouchInput
}

func GetTouchInfo(touchId eb.TouchID) (TouchInfo, bool) {
	im := &TheInputManager
	info, ok := im.TouchInfos[touchId]
	return info, ok
}

func IsMouseButtonPressed(button eb.MouseButton) bool {
	return eb.IsMouseButtonPressed(button)
}

func IsMouseButtonJustPressed(button eb.MouseButton) bool {
	return ebi.IsMouseButtonJustPressed(button)
}

func IsMouseButtonJustReleased(button eb.MouseButton) bool {
	return ebi.IsMouseButtonJustReleased(button)
}

func IsKeyPressed(key eb.Key) bool {
	return eb.IsKeyPressed(key)
}

func IsKeyJustPressed(key eb.Key) bool {
	return ebi.IsKeyJustPressed(key)
}

func IsTouchFree() bool {
	im := &TheInputManager

	return len(im.TouchingBuf) <= 0
}

func IsTouchIdTouching(touchId eb.TouchID) bool {
	im := &TheInputManager
	return im.TouchingMap[touchId]
}

func IsTouchIdJustPressed(touchId eb.TouchID) bool {
	im := &TheInputManager
	return im.JustTouchedMap[touchId]
}

func IsTouchIdJustReleased(touchId eb.TouchID) bool {
	im := &TheInputManager
	return im.JustReleasedMap[touchId]
}
