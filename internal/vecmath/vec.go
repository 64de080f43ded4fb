package vecmath

import "math"

// Vec2 is a planar vector with value semantics. Operations return new
// vectors; callers that accumulate do so explicitly.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

func (v Vec2) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagSq avoids the sqrt where only the squared magnitude is needed, e.g. in
// the inverse-square force law.
func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector. The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// Cross is the scalar cross product of two planar vectors.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Rotate applies the 2-D rotation matrix for angle theta in radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// WithMag returns a vector in the direction of v with magnitude m. The zero
// vector stays zero regardless of m.
func (v Vec2) WithMag(m float64) Vec2 {
	return v.Normalize().Scale(m)
}
