package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
)

// WaveTexture uploads the wave field's current buffer into a byte
// texture the display shader can sample. Channel layout:
//
//	R = pressure, G = gradX, B = gradY, A = velocity
//
// all remapped [-1,1] -> [0,255]. The shader undoes the remap; the two
// sides must agree or the distortion silently collapses toward one
// corner, so keep them in sync.
type WaveTexture struct {
	image  *eb.Image
	pixels []byte
	width  int
	height int
}

func NewWaveTexture(width, height int) *WaveTexture {
	return &WaveTexture{
		image:  eb.NewImage(width, height),
		pixels: make([]byte, width*height*4),
		width:  width,
		height: height,
	}
}

func (wt *WaveTexture) Image() *eb.Image {
	return wt.image
}

func quantizeSigned(v float32) byte {
	v = Clamp(v, -1, 1)
	return byte((v + 1) * 0.5 * 255)
}

// Upload quantizes the buffer and writes it to the GPU image. The
// buffer must have exactly width*height texels.
func (wt *WaveTexture) Upload(buf *WaveBuffer) {
	n := wt.width * wt.height
	if len(buf.Pressure) != n {
		ErrorLogger.Printf(
			"wave texture size mismatch: have %v texels, want %v",
			len(buf.Pressure), n,
		)
		return
	}

	for i := 0; i < n; i++ {
		o := i * 4
		wt.pixels[o+0] = quantizeSigned(buf.Pressure[i])
		wt.pixels[o+1] = quantizeSigned(buf.GradX[i])
		wt.pixels[o+2] = quantizeSigned(buf.GradY[i])
		wt.pixels[o+3] = quantizeSigned(buf.Velocity[i])
	}

	wt.image.WritePixels(wt.pixels)
}

func (wt *WaveTexture) Resize(width, height int) {
	if width == wt.width && height == wt.height {
		return
	}

	wt.image.Deallocate()
	wt.image = eb.NewImage(width, height)
	wt.pixels = make([]byte, width*height*4)
	wt.width = width
	wt.height = height
}

func (wt *WaveTexture) Dispose() {
	wt.image.Deallocate()
}
