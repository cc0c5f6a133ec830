package model

import "math"

// Vec3 is a point or direction in world space. Y is up.
// Value type, passed by value (immutable).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// NewVec3 creates Vec3 from components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LenSquared returns squared length (no sqrt).
func (v Vec3) LenSquared() float64 {
	return v.Dot(v)
}

// Len returns vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSquared())
}

// Normalize returns unit vector in the same direction.
// Zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// DistanceSquared returns squared distance to other point.
func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LenSquared()
}

// Distance returns Euclidean distance to other point.
func (v Vec3) Distance(o Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Pose is position plus forward orientation.
type Pose struct {
	Position Vec3
	Forward  Vec3
}

// FacingTowards returns pose rotated to face point p on the horizontal plane.
// Forward is unchanged when p is directly above/below or equal to Position.
func (p Pose) FacingTowards(pt Vec3) Pose {
	dir := pt.Sub(p.Position).Flat()
	if dir.IsZero() {
		return p
	}
	p.Forward = dir.Normalize()
	return p
}
