package geo

import (
	"sync"

	"github.com/udisondev/warbrain/internal/model"
)

// Hit describes the first thing a ray struck.
// Entity is nil for static obstacles.
type Hit struct {
	Entity   model.Locatable
	Distance float64
	Point    model.Vec3
}

// RayCaster resolves ray casts synchronously within the calling tick.
type RayCaster interface {
	Raycast(r Ray) (Hit, bool)
}

// actor is a moving body; its box follows Entity.Position() at cast time.
type actor struct {
	entity    model.Locatable
	halfWidth float64
	height    float64
}

// Scene is a collision world of static obstacle boxes and moving actor boxes.
// Safe for concurrent use: casts take a read lock.
type Scene struct {
	mu        sync.RWMutex
	obstacles []Box
	actors    []actor
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddObstacle adds a static box that blocks rays.
func (s *Scene) AddObstacle(b Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obstacles = append(s.obstacles, b)
}

// AddActor registers a moving entity with a standing collision box.
func (s *Scene) AddActor(entity model.Locatable, halfWidth, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors = append(s.actors, actor{entity: entity, halfWidth: halfWidth, height: height})
}

// RemoveActor unregisters entity. No-op if absent.
func (s *Scene) RemoveActor(entity model.Locatable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.actors {
		if a.entity == entity {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			return
		}
	}
}

// ObstacleCount returns number of static obstacles.
func (s *Scene) ObstacleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.obstacles)
}

// Raycast returns the nearest obstacle or actor along the ray within MaxRange.
// Actors are ignored if their box contains the ray origin (the shooter itself).
func (s *Scene) Raycast(r Ray) (Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best Hit
	found := false

	for _, b := range s.obstacles {
		d, ok := b.Intersect(r)
		if !ok || (found && d >= best.Distance) {
			continue
		}
		best = Hit{Distance: d, Point: r.At(d)}
		found = true
	}

	for _, a := range s.actors {
		box := StandingBox(a.entity.Position(), a.halfWidth, a.height)
		if box.Contains(r.Origin) {
			continue
		}
		d, ok := box.Intersect(r)
		if !ok || (found && d >= best.Distance) {
			continue
		}
		best = Hit{Entity: a.entity, Distance: d, Point: r.At(d)}
		found = true
	}

	return best, found
}

// Blocked reports whether p lies inside a static obstacle.
func (s *Scene) Blocked(p model.Vec3) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.obstacles {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// CanSee reports whether no obstacle blocks the segment from a to b.
// Actors never block sight.
func (s *Scene) CanSee(a, b model.Vec3) bool {
	dist := a.Distance(b)
	if dist == 0 {
		return true
	}
	r := NewRay(a, b.Sub(a), dist)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, box := range s.obstacles {
		if _, ok := box.Intersect(r); ok {
			return false
		}
	}
	return true
}
