package ai

import (
	"github.com/udisondev/warbrain/internal/model"
)

// Perception is what an agent knows about its target this tick.
type Perception struct {
	HasTarget     bool
	InSight       bool
	InAttackRange bool
	Distance      float64
	TargetPos     model.Vec3
}

// SightChecker reports whether nothing blocks the view between two points.
// Implemented by geo.Scene.
type SightChecker interface {
	CanSee(from, to model.Vec3) bool
}

// Perceiver evaluates the spatial relation between an agent and its target.
// Every agent kind uses "distance <= range" semantics.
type Perceiver struct {
	sightRange  float64
	attackRange float64
	eyeHeight   float64

	// sight is optional; nil means obstacles never hide the target.
	sight SightChecker
}

// NewPerceiver creates perceiver for given ranges.
func NewPerceiver(sightRange, attackRange, eyeHeight float64, sight SightChecker) Perceiver {
	return Perceiver{
		sightRange:  sightRange,
		attackRange: attackRange,
		eyeHeight:   eyeHeight,
		sight:       sight,
	}
}

// Perceive evaluates target relative to self.
// Missing or dead target yields zero Perception, never an error.
func (p Perceiver) Perceive(self model.Vec3, target model.Target) Perception {
	if target == nil || target.IsDead() {
		return Perception{}
	}

	targetPos := target.Position()
	distSq := self.DistanceSquared(targetPos)

	out := Perception{
		HasTarget:     true,
		TargetPos:     targetPos,
		Distance:      self.Distance(targetPos),
		InSight:       distSq <= p.sightRange*p.sightRange,
		InAttackRange: distSq <= p.attackRange*p.attackRange,
	}

	if out.InSight && p.sight != nil {
		eye := model.NewVec3(0, p.eyeHeight, 0)
		out.InSight = p.sight.CanSee(self.Add(eye), targetPos.Add(eye))
	}

	return out
}
