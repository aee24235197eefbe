package main

import (
	"math"
	"math/rand"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebv "github.com/hajimehoshi/ebiten/v2/vector"
)

type AgentPhase int

const (
	AgentHidden AgentPhase = iota
	AgentEntering
	AgentSwimming
	AgentExiting
)

func (p AgentPhase) String() string {
	switch p {
	case AgentHidden:
		return "Hidden"
	case AgentEntering:
		return "Entering"
	case AgentSwimming:
		return "Swimming"
	case AgentExiting:
		return "Exiting"
	}
	return "Unknown"
}

// Agent is one decorative fish. Respawning overwrites the struct in
// place; agents are never freed or reallocated.
type Agent struct {
	Pos      FPoint
	Vel      FPoint
	Rotation float64
	// fake depth in [0,1], drives scale and dimming
	Depth float64

	Phase      AgentPhase
	PhaseTimer Timer

	Flee       bool
	FleeTimer  Timer
	preFleeVel FPoint

	SpawnDelay Timer

	wigglePhase float64
}

// spawnPoint is what spawnFromEdge produces: an off-screen start and
// an on-screen swim target.
type spawnPoint struct {
	start  FPoint
	target FPoint
}

// spawnFromEdge picks a random screen edge to enter from and a
// wander target inside the viewport. Pure so tests can seed it.
func spawnFromEdge(rng *rand.Rand, screenW, screenH float64) spawnPoint {
	const margin = 80

	edge := rng.Intn(4)

	var start FPoint
	switch edge {
	case 0: // left
		start = FPt(-margin, rng.Float64()*screenH)
	case 1: // right
		start = FPt(screenW+margin, rng.Float64()*screenH)
	case 2: // top
		start = FPt(rng.Float64()*screenW, -margin)
	default: // bottom
		start = FPt(rng.Float64()*screenW, screenH+margin)
	}

	target := FPt(
		screenW*(0.2+rng.Float64()*0.6),
		screenH*(0.2+rng.Float64()*0.6),
	)

	return spawnPoint{start: start, target: target}
}

// exitPoint picks a random off-screen point for the Exiting phase.
func exitPoint(rng *rand.Rand, screenW, screenH float64) FPoint {
	const margin = 120

	switch rng.Intn(4) {
	case 0:
		return FPt(-margin, rng.Float64()*screenH)
	case 1:
		return FPt(screenW+margin, rng.Float64()*screenH)
	case 2:
		return FPt(rng.Float64()*screenW, -margin)
	default:
		return FPt(rng.Float64()*screenW, screenH+margin)
	}
}

// AmbientAgentSystem owns every fish. It reads the pointer but is
// otherwise independent of the slider.
type AmbientAgentSystem struct {
	agents []Agent
	rng    *rand.Rand

	screenW, screenH float64
}

func NewAmbientAgentSystem(count int, screenW, screenH float64, rng *rand.Rand) *AmbientAgentSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	as := &AmbientAgentSystem{
		agents:  make([]Agent, count),
		rng:     rng,
		screenW: screenW,
		screenH: screenH,
	}

	for i := range as.agents {
		a := &as.agents[i]
		a.Phase = AgentHidden
		a.Depth = rng.Float64()
		// stagger initial entrances
		a.SpawnDelay = Timer{
			Duration: time.Duration(rng.Int63n(int64(TheTuningTable.FishRespawnMax))),
		}
	}

	return as
}

func (as *AmbientAgentSystem) Layout(screenW, screenH float64) {
	as.screenW = screenW
	as.screenH = screenH
}

func (as *AmbientAgentSystem) Agents() []Agent {
	return as.agents
}

func (as *AmbientAgentSystem) Update(dt float64, pointerPos FPoint, pointerDown bool) {
	for i := range as.agents {
		as.updateAgent(&as.agents[i], dt, pointerPos, pointerDown)
	}
}

func (as *AmbientAgentSystem) updateAgent(a *Agent, dt float64, pointerPos FPoint, pointerDown bool) {
	t := &TheTuningTable

	switch a.Phase {
	case AgentHidden:
		a.SpawnDelay.TickUp()
		if a.SpawnDelay.Done() {
			as.respawn(a)
		}
		return

	case AgentEntering:
		a.PhaseTimer.TickUp()

		bounds := FRectWH(as.screenW, as.screenH).Inset(40)
		if a.Pos.In(bounds) {
			a.Phase = AgentSwimming
			a.PhaseTimer = Timer{
				Duration: t.FishSwimMin +
					time.Duration(as.rng.Int63n(int64(t.FishSwimMax-t.FishSwimMin))),
			}
		} else if a.PhaseTimer.Done() {
			// a flee shove can deflect the entrance path clean past the
			// screen; recycle instead of swimming off forever
			as.respawn(a)
			return
		}

	case AgentSwimming:
		a.PhaseTimer.TickUp()

		if !a.Flee && as.rng.Float64() < t.FishWanderChance {
			speed := a.Vel.Length()
			if speed == 0 {
				speed = t.FishSpeedMin
			}
			turn := (as.rng.Float64()*2 - 1) * math.Pi * 0.6
			a.Vel = a.Vel.Normalize().Rotate(turn).Scale(speed)
		}

		if a.PhaseTimer.Done() && !a.Flee {
			a.Phase = AgentExiting
			exit := exitPoint(as.rng, as.screenW, as.screenH)
			speed := Lerp(t.FishSpeedMin, t.FishSpeedMax, as.rng.Float64())
			a.Vel = exit.Sub(a.Pos).Normalize().Scale(speed)
		}

	case AgentExiting:
		// flee never interrupts an exit
		margin := 140.0
		outside := a.Pos.X < -margin || a.Pos.X > as.screenW+margin ||
			a.Pos.Y < -margin || a.Pos.Y > as.screenH+margin
		if outside {
			a.Phase = AgentHidden
			a.SpawnDelay = Timer{
				Duration: time.Duration(as.rng.Int63n(int64(t.FishRespawnMax)) + 1),
			}
			return
		}
	}

	// =============================
	// flee interrupt
	// =============================
	// triggers on proximity AND an actively pressed pointer; the
	// proximity-only variant felt too jumpy next to the slider
	canFlee := a.Phase == AgentEntering || a.Phase == AgentSwimming

	if a.Flee {
		a.FleeTimer.TickUp()
		if a.FleeTimer.Done() {
			a.Flee = false
			a.Vel = a.preFleeVel
		}
	} else if canFlee && pointerDown {
		delta := a.Pos.Sub(pointerPos)
		if delta.Length() < t.FishFleeRadius {
			a.Flee = true
			a.FleeTimer = Timer{Duration: t.FishFleeDuration}
			a.preFleeVel = a.Vel

			away := delta.Normalize()
			if away.LengthSquared() == 0 {
				away = FPt(1, 0)
			}
			a.Vel = away.Scale(t.FishFleeSpeed)
		}
	}

	// =============================
	// integrate
	// =============================
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))

	if a.Vel.LengthSquared() > 0.001 {
		a.Rotation = RotateTowards(a.Rotation, a.Vel.Angle(), t.FishTurnRate*dt)
	}

	speedRatio := a.Vel.Length() / t.FishSpeedMax
	a.wigglePhase += dt * (4 + speedRatio*14)
}

// respawn overwrites the agent with a fresh edge entrance.
func (as *AmbientAgentSystem) respawn(a *Agent) {
	t := &TheTuningTable

	sp := spawnFromEdge(as.rng, as.screenW, as.screenH)
	speed := Lerp(t.FishSpeedMin, t.FishSpeedMax, as.rng.Float64())

	a.Pos = sp.start
	a.Vel = sp.target.Sub(sp.start).Normalize().Scale(speed)
	a.Rotation = a.Vel.Angle()
	a.Depth = as.rng.Float64()
	a.Phase = AgentEntering
	a.PhaseTimer = Timer{Duration: t.FishEnterTimeout}
	a.Flee = false
	a.FleeTimer = Timer{}
	a.SpawnDelay = Timer{}
	a.wigglePhase = as.rng.Float64() * math.Pi * 2
}

// DrawCapture renders the fish as layered vector shapes with a
// velocity-driven tail wiggle.
func (as *AmbientAgentSystem) DrawCapture(dst *eb.Image, scale float64) {
	for i := range as.agents {
		a := &as.agents[i]
		if a.Phase == AgentHidden {
			continue
		}
		as.drawAgent(dst, a, scale)
	}
}

func (as *AmbientAgentSystem) drawAgent(dst *eb.Image, a *Agent, scale float64) {
	size := Lerp(14.0, 30.0, 1-a.Depth) * scale
	dim := Lerp(0.35, 1.0, 1-a.Depth)

	bodyClr := ColorFade(ThemeColors[ColorFishBody], dim)
	finClr := ColorFade(ThemeColors[ColorFishFin], dim)

	cx := f32(a.Pos.X * scale)
	cy := f32(a.Pos.Y * scale)

	wiggle := math.Sin(a.wigglePhase) * 0.45

	// body
	p := ebv.Path{}
	p.MoveTo(cx, cy)
	nose := FPt(size, 0).Rotate(a.Rotation)
	side1 := FPt(-size*0.4, size*0.45).Rotate(a.Rotation)
	side2 := FPt(-size*0.4, -size*0.45).Rotate(a.Rotation)
	p.LineTo(cx+f32(nose.X), cy+f32(nose.Y))
	p.LineTo(cx+f32(side1.X), cy+f32(side1.Y))
	p.LineTo(cx+f32(side2.X), cy+f32(side2.Y))
	p.Close()
	drawFilledPath(dst, p, bodyClr)

	// tail, deflected by the wiggle
	tailBase := FPt(-size*0.35, 0).Rotate(a.Rotation)
	tailTip := FPt(-size*1.1, 0).Rotate(a.Rotation + wiggle)
	tailUp := FPt(-size*1.0, size*0.4).Rotate(a.Rotation + wiggle)
	tailDown := FPt(-size*1.0, -size*0.4).Rotate(a.Rotation + wiggle)

	p = ebv.Path{}
	p.MoveTo(cx+f32(tailBase.X), cy+f32(tailBase.Y))
	p.LineTo(cx+f32(tailUp.X), cy+f32(tailUp.Y))
	p.LineTo(cx+f32(tailTip.X), cy+f32(tailTip.Y))
	p.LineTo(cx+f32(tailDown.X), cy+f32(tailDown.Y))
	p.Close()
	drawFilledPath(dst, p, finClr)
}
