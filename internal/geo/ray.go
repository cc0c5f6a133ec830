package geo

import (
	"math"

	"github.com/udisondev/warbrain/internal/model"
)

// Ray is a half-line from Origin along unit Dir, limited to MaxRange.
type Ray struct {
	Origin   model.Vec3
	Dir      model.Vec3
	MaxRange float64
}

// NewRay creates ray with normalized direction.
func NewRay(origin, dir model.Vec3, maxRange float64) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize(), MaxRange: maxRange}
}

// At returns point at distance d along the ray.
func (r Ray) At(d float64) model.Vec3 {
	return r.Origin.Add(r.Dir.Scale(d))
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min model.Vec3
	Max model.Vec3
}

// NewBox creates box from two corners in any order.
func NewBox(a, b model.Vec3) Box {
	return Box{
		Min: model.NewVec3(min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)),
		Max: model.NewVec3(max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)),
	}
}

// StandingBox returns box of a standing body: feet at pos, halfWidth around, height up.
func StandingBox(pos model.Vec3, halfWidth, height float64) Box {
	return Box{
		Min: model.NewVec3(pos.X-halfWidth, pos.Y, pos.Z-halfWidth),
		Max: model.NewVec3(pos.X+halfWidth, pos.Y+height, pos.Z+halfWidth),
	}
}

// Contains reports whether p is inside the box (inclusive).
func (b Box) Contains(p model.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect returns entry distance of the ray into the box (slab method).
// Origin inside the box yields distance 0.
// Returns false if the box is missed or lies beyond MaxRange.
func (b Box) Intersect(r Ray) (float64, bool) {
	tMin := 0.0
	tMax := r.MaxRange

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := range 3 {
		if math.Abs(dir[axis]) < 1e-12 {
			// Parallel to slab: must already be between the planes
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}

		inv := 1 / dir[axis]
		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}
