package main

// The ripple simulation is a plain finite difference wave solver on a
// fixed grid. It deliberately has no rendering dependencies so it can
// run headless.

type BoundaryMode int

const (
	// edge-extend the pressure at the borders
	BoundaryClamp BoundaryMode = iota
	// wrap around, for the continuous flow feel
	BoundaryWrap
)

// WaveBuffer holds one full set of simulation planes. Values stay in
// [-1, 1] so the byte texture upload never has to rescale adaptively.
type WaveBuffer struct {
	Pressure []float32
	Velocity []float32
	GradX    []float32
	GradY    []float32
}

func newWaveBuffer(size int) *WaveBuffer {
	return &WaveBuffer{
		Pressure: make([]float32, size),
		Velocity: make([]float32, size),
		GradX:    make([]float32, size),
		GradY:    make([]float32, size),
	}
}

func (b *WaveBuffer) zero() {
	for i := range b.Pressure {
		b.Pressure[i] = 0
		b.Velocity[i] = 0
		b.GradX[i] = 0
		b.GradY[i] = 0
	}
}

type waveImpulse struct {
	x, y     float64 // normalized [0,1]
	radius   float64 // normalized
	strength float64
}

type WaveField struct {
	width, height int
	boundary      BoundaryMode

	// ring of 2: buffers[readIndex] is current, the other is scratch.
	buffers   [2]*WaveBuffer
	readIndex int

	// feel constants, copied from the tuning table at construction so
	// tests can override them per instance
	Propagation     float64
	VelocityDamp    float64
	PressureDamp    float64
	MaxDt           float64
	ImpulseRadius   float64
	ImpulseStrength float64

	pendingImpulses CircularQueue[waveImpulse]
}

func NewWaveField(width, height int, boundary BoundaryMode) *WaveField {
	t := &TheTuningTable

	return &WaveField{
		width:    width,
		height:   height,
		boundary: boundary,

		buffers: [2]*WaveBuffer{
			newWaveBuffer(width * height),
			newWaveBuffer(width * height),
		},

		Propagation:     t.WavePropagation,
		VelocityDamp:    t.WaveVelocityDamp,
		PressureDamp:    t.WavePressureDamp,
		MaxDt:           t.WaveMaxDt,
		ImpulseRadius:   t.WaveImpulseRadius,
		ImpulseStrength: t.WaveImpulseStrength,

		pendingImpulses: NewCircularQueue[waveImpulse](64),
	}
}

func (f *WaveField) Width() int  { return f.width }
func (f *WaveField) Height() int { return f.height }

// Read returns the buffer the display pass and the next Step read
// from. Nothing outside Step may write to it.
func (f *WaveField) Read() *WaveBuffer {
	return f.buffers[f.readIndex]
}

func (f *WaveField) scratch() *WaveBuffer {
	return f.buffers[1-f.readIndex]
}

// SplashAt queues a one-off impulse at a normalized position, applied
// on the next Step. Used by transitions and tile selections. The queue
// is bounded; a flood of splashes drops the oldest ones.
func (f *WaveField) SplashAt(x, y, strength float64) {
	f.pendingImpulses.Enqueue(waveImpulse{
		x: x, y: y,
		radius:   f.ImpulseRadius,
		strength: strength,
	})
}

func (f *WaveField) neighborIndex(x, y int) int {
	switch f.boundary {
	case BoundaryWrap:
		if x < 0 {
			x += f.width
		} else if x >= f.width {
			x -= f.width
		}
		if y < 0 {
			y += f.height
		} else if y >= f.height {
			y -= f.height
		}
	default:
		x = Clamp(x, 0, f.width-1)
		y = Clamp(y, 0, f.height-1)
	}
	return y*f.width + x
}

// Step advances the simulation by dt seconds and swaps the buffer
// roles. It runs once per frame no matter what the render passes do.
func (f *WaveField) Step(dt float64, pointer PointerState) {
	dt = Clamp(dt, 0, f.MaxDt)

	read := f.Read()
	write := f.scratch()

	k := f32(dt * f.Propagation)
	velDamp := f32(f.VelocityDamp)
	pressureDamp := f32(f.PressureDamp)
	dtF := f32(dt)

	for y := 0; y < f.height; y++ {
		rowUp := f.neighborIndex(0, y-1)
		rowDown := f.neighborIndex(0, y+1)
		row := y * f.width

		for x := 0; x < f.width; x++ {
			idx := row + x

			p := read.Pressure[idx]
			v := read.Velocity[idx]

			left := read.Pressure[f.neighborIndex(x-1, y)]
			right := read.Pressure[f.neighborIndex(x+1, y)]
			up := read.Pressure[rowUp+x]
			down := read.Pressure[rowDown+x]

			laplacian := left + right + up + down - 4*p

			v += k * laplacian
			p += dtF * v

			v *= velDamp
			p *= pressureDamp

			write.Pressure[idx] = Clamp(p, -1, 1)
			write.Velocity[idx] = v

			// central difference on the pre-step pressures
			write.GradX[idx] = (right - left) * 0.5
			write.GradY[idx] = (down - up) * 0.5
		}
	}

	if pointer.IsDown {
		f.applyImpulse(write, waveImpulse{
			x: pointer.X, y: pointer.Y,
			radius:   f.ImpulseRadius,
			strength: f.ImpulseStrength,
		})
	}

	for !f.pendingImpulses.IsEmpty() {
		f.applyImpulse(write, f.pendingImpulses.Dequeue())
	}

	f.readIndex = 1 - f.readIndex
}

func (f *WaveField) applyImpulse(buf *WaveBuffer, imp waveImpulse) {
	cx := imp.x * f64(f.width-1)
	cy := imp.y * f64(f.height-1)
	radius := imp.radius * f64(min(f.width, f.height))

	if radius < 1 {
		radius = 1
	}

	minX := Clamp(int(cx-radius), 0, f.width-1)
	maxX := Clamp(int(cx+radius)+1, 0, f.width-1)
	minY := Clamp(int(cy-radius), 0, f.height-1)
	maxY := Clamp(int(cy+radius)+1, 0, f.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := f64(x) - cx
			dy := f64(y) - cy
			dist := dx*dx + dy*dy

			if dist > radius*radius {
				continue
			}

			falloff := 1 - SmoothStep(0, 1, (dist/(radius*radius)))

			idx := y*f.width + x
			p := buf.Pressure[idx] + f32(imp.strength*falloff)
			buf.Pressure[idx] = Clamp(p, -1, 1)
		}
	}
}

// Resize recreates both buffers at a new grid size. The previous read
// contents are discarded; a reset to flat water is the accepted
// behavior on resize.
func (f *WaveField) Resize(width, height int) {
	if width == f.width && height == f.height {
		return
	}

	f.width = width
	f.height = height
	f.buffers[0] = newWaveBuffer(width * height)
	f.buffers[1] = newWaveBuffer(width * height)
	f.readIndex = 0
}

// Reset zeroes both buffers without reallocating.
func (f *WaveField) Reset() {
	f.buffers[0].zero()
	f.buffers[1].zero()
	f.pendingImpulses.Clear()
}

// PressureAt samples the current pressure at a normalized position.
func (f *WaveField) PressureAt(x, y float64) float32 {
	px := Clamp(int(x*f64(f.width-1)), 0, f.width-1)
	py := Clamp(int(y*f64(f.height-1)), 0, f.height-1)
	return f.Read().Pressure[py*f.width+px]
}
