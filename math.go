package main

import (
	"math"

	"golang.org/x/exp/constraints"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// =================================
// FPoint
// =================================

type FPoint struct {
	X, Y float64
}

func FPt(x, y float64) FPoint {
	return FPoint{X: x, Y: y}
}

func (p FPoint) Add(q FPoint) FPoint {
	p.X += q.X
	p.Y += q.Y
	return p
}

func (p FPoint) Sub(q FPoint) FPoint {
	p.X -= q.X
	p.Y -= q.Y
	return p
}

func (p FPoint) Mul(q FPoint) FPoint {
	p.X *= q.X
	p.Y *= q.Y
	return p
}

func (p FPoint) Scale(s float64) FPoint {
	p.X *= s
	p.Y *= s
	return p
}

func (p FPoint) Eq(q FPoint) bool {
	return p.X == q.X && p.Y == q.Y
}

func (p FPoint) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p FPoint) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

func (p FPoint) Normalize() FPoint {
	l := p.Length()
	if l == 0 {
		return FPoint{}
	}
	return FPt(p.X/l, p.Y/l)
}

// Angle returns the heading implied by p, in radians.
func (p FPoint) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

func (p FPoint) In(r FRectangle) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X &&
		r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

func (p FPoint) Rotate(theta float64) FPoint {
	cos := math.Cos(theta)
	sin := math.Sin(theta)

	return FPoint{
		X: cos*p.X - sin*p.Y,
		Y: sin*p.X + cos*p.Y,
	}
}

func FPointTransform(pt FPoint, geom eb.GeoM) FPoint {
	x, y := geom.Apply(pt.X, pt.Y)
	return FPt(x, y)
}

// =================================
// FRectangle
// =================================

type FRectangle struct {
	Min, Max FPoint
}

func FRect(x0, y0, x1, y1 float64) FRectangle {
	return FRectangle{
		Min: FPt(x0, y0),
		Max: FPt(x1, y1),
	}
}

func FRectWH(w, h float64) FRectangle {
	return FRectangle{
		Min: FPoint{0, 0},
		Max: FPoint{w, h},
	}
}

// Dx returns r's width.
func (r FRectangle) Dx() float64 {
	return r.Max.X - r.Min.X
}

// Dy returns r's height.
func (r FRectangle) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

// Add returns the rectangle r translated by p.
func (r FRectangle) Add(p FPoint) FRectangle {
	return FRectangle{
		FPoint{r.Min.X + p.X, r.Min.Y + p.Y},
		FPoint{r.Max.X + p.X, r.Max.Y + p.Y},
	}
}

// Inset returns the rectangle r inset by n, which may be negative.
func (r FRectangle) Inset(n float64) FRectangle {
	if r.Dx() < 2*n {
		r.Min.X = (r.Min.X + r.Max.X) / 2
		r.Max.X = r.Min.X
	} else {
		r.Min.X += n
		r.Max.X -= n
	}
	if r.Dy() < 2*n {
		r.Min.Y = (r.Min.Y + r.Max.Y) / 2
		r.Max.Y = r.Min.Y
	} else {
		r.Min.Y += n
		r.Max.Y -= n
	}
	return r
}

// Empty reports whether the rectangle contains no points.
func (r FRectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Overlaps reports whether r and s have a non-empty intersection.
func (r FRectangle) Overlaps(s FRectangle) bool {
	return !r.Empty() && !s.Empty() &&
		r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

func FRectangleCenter(rect FRectangle) FPoint {
	return FPoint{
		X: (rect.Min.X + rect.Max.X) * 0.5,
		Y: (rect.Min.Y + rect.Max.Y) * 0.5,
	}
}

func CenterFRectangle(rect FRectangle, x, y float64) FRectangle {
	halfW := rect.Dx() * 0.5
	halfH := rect.Dy() * 0.5

	return FRectangle{
		Min: FPt(x-halfW, y-halfH),
		Max: FPt(x+halfW, y+halfH),
	}
}

func FRectScaleCentered(rect FRectangle, scale float64) FRectangle {
	center := FRectangleCenter(rect)
	halfW := rect.Dx() * 0.5 * scale
	halfH := rect.Dy() * 0.5 * scale

	return FRect(
		center.X-halfW, center.Y-halfH,
		center.X+halfW, center.Y+halfH,
	)
}

// =================================
// scalar helpers
// =================================

func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)

	return n
}

// FMod is math.Mod that always returns a value in [0, m) for m > 0.
func FMod(v, m float64) float64 {
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

func SmoothStep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}

func EaseInOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	inv := -2*t + 2
	return 1 - inv*inv*inv/2
}

// =================================
// angles
// =================================

// ShortestAngleDelta returns the smallest signed rotation that takes
// `from` to `to`, always in (-Pi, Pi].
func ShortestAngleDelta(from, to float64) float64 {
	delta := math.Mod(to-from, math.Pi*2)

	if delta > math.Pi {
		delta -= math.Pi * 2
	} else if delta <= -math.Pi {
		delta += math.Pi * 2
	}

	return delta
}

// RotateTowards moves `from` toward `to` along the shortest arc by at
// most maxDelta, without overshooting.
func RotateTowards(from, to, maxDelta float64) float64 {
	delta := ShortestAngleDelta(from, to)

	if math.Abs(delta) <= maxDelta {
		return from + delta
	}
	if delta > 0 {
		return from + maxDelta
	}
	return from - maxDelta
}

// NormalizeAngle wraps an angle into (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	return ShortestAngleDelta(0, a)
}
