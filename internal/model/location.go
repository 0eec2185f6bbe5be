package model

import "math"

// Vec2 задаёт точку или вектор на игровом поле (пиксели).
// Value type, передаётся по значению.
type Vec2 struct {
	X float64
	Y float64
}

// Add возвращает сумму векторов.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub возвращает разность векторов.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale умножает вектор на скаляр.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len возвращает длину вектора.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistanceSquared возвращает квадрат расстояния (без sqrt для производительности).
func (v Vec2) DistanceSquared(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Normalized returns the unit vector and true, or the zero vector and false
// when the length is zero or not finite. Callers treat false as "no direction".
func (v Vec2) Normalized() (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Rect is an axis-aligned rectangle described by its center and half extents.
type Rect struct {
	Center Vec2
	HalfW  float64
	HalfH  float64
}

// NewRect creates a rectangle of size w×h centered at c.
func NewRect(c Vec2, w, h float64) Rect {
	return Rect{Center: c, HalfW: w / 2, HalfH: h / 2}
}

// Overlaps reports whether two rectangles intersect (touching edges do not count).
func (r Rect) Overlaps(o Rect) bool {
	return math.Abs(r.Center.X-o.Center.X) < r.HalfW+o.HalfW &&
		math.Abs(r.Center.Y-o.Center.Y) < r.HalfH+o.HalfH
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, r.Center.X-r.HalfW, r.Center.X+r.HalfW),
		Y: clamp(p.Y, r.Center.Y-r.HalfH, r.Center.Y+r.HalfH),
	}
}

// IntersectsCircle is the circle/rectangle distance test: the circle overlaps
// when the closest rectangle point is strictly inside the radius.
func (r Rect) IntersectsCircle(c Vec2, radius float64) bool {
	return r.ClosestPoint(c).DistanceSquared(c) < radius*radius
}

// Bounds is the playable world area with origin at (0, 0).
type Bounds struct {
	Width  float64
	Height float64
}

// Valid reports whether the bounds describe a non-empty area.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// ClampRect keeps a footprint centered at p fully inside the bounds.
// When the footprint is larger than the world the center is pinned to the middle.
func (b Bounds) ClampRect(p Vec2, halfW, halfH float64) Vec2 {
	return Vec2{
		X: clampAxis(p.X, halfW, b.Width),
		Y: clampAxis(p.Y, halfH, b.Height),
	}
}

func clampAxis(v, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(v, half, size-half)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
