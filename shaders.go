package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
)

// Kage sources are kept as strings and compiled once at startup.
// Source 0 is always the captured scene, source 1 (when present) the
// upscaled wave texture. Both are viewport sized; ebiten wants shader
// sources to match in size.

const displayShaderSrc = `//kage:unit pixels

package main

// Uniform variables.
var DistortionStrength float
var SpecularStrength float
var PressureTint float
var ChromaOffset float
var BgColor vec4
var LightDir vec3

// wave channels are [-1,1] packed into bytes
func decodeSigned(v float) float {
	return v*2 - 1
}

func sceneAt(at vec2) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	at = clamp(at, vec2(0), size-vec2(1))
	return imageSrc0UnsafeAt(at + origin)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	size := imageSrc0Size()

	wave := imageSrc1UnsafeAt(srcPos + imageSrc1Origin())
	pressure := decodeSigned(wave.r)
	grad := vec2(decodeSigned(wave.g), decodeSigned(wave.b))

	offset := grad * DistortionStrength * size

	distorted := srcPos + offset

	// never sample past the seam, fall back to the straight uv
	if distorted.x < 0 || distorted.y < 0 ||
		distorted.x >= size.x || distorted.y >= size.y {
		distorted = srcPos
	}

	var scene vec4
	if ChromaOffset > 0.001 {
		shift := normalize(vec2(grad.y, -grad.x)+vec2(0.0001)) * ChromaOffset
		scene.r = sceneAt(distorted + shift).r
		scene.g = sceneAt(distorted).g
		scene.b = sceneAt(distorted - shift).b
		scene.a = sceneAt(distorted).a
	} else {
		scene = sceneAt(distorted)
	}

	if scene.a < 0.02 {
		scene = BgColor
	}

	normal := normalize(vec3(-grad.x, -grad.y, 1))
	specular := pow(max(dot(normal, normalize(LightDir)), 0), 24)

	lit := scene.rgb +
		vec3(specular*SpecularStrength) +
		vec3(pressure*PressureTint)

	return vec4(clamp(lit, vec3(0), vec3(1)), 1)
}
`

const barrelShaderSrc = `//kage:unit pixels

package main

// Uniform variables.
var Strength float
var BgColor vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	size := imageSrc0Size()

	uv := srcPos/size - vec2(0.5)

	r2 := dot(uv, uv)
	uv = uv * (1 + Strength*r2)

	uv += vec2(0.5)

	if uv.x < 0 || uv.x >= 1 || uv.y < 0 || uv.y >= 1 {
		return BgColor
	}

	return imageSrc0UnsafeAt(uv*size + imageSrc0Origin())
}
`

type Shaders struct {
	Display *eb.Shader
	Barrel  *eb.Shader
}

func NewShaders() (*Shaders, error) {
	display, err := eb.NewShader([]byte(displayShaderSrc))
	if err != nil {
		return nil, err
	}

	barrel, err := eb.NewShader([]byte(barrelShaderSrc))
	if err != nil {
		return nil, err
	}

	return &Shaders{
		Display: display,
		Barrel:  barrel,
	}, nil
}

func (s *Shaders) Dispose() {
	if s.Display != nil {
		s.Display.Deallocate()
	}
	if s.Barrel != nil {
		s.Barrel.Deallocate()
	}
}
