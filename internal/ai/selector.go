package ai

import (
	"time"

	"github.com/udisondev/warbrain/internal/model"
)

// SelectorInput is everything the behavior FSM consumes each tick.
type SelectorInput struct {
	Perception Perception
	Alerted    bool
	Enraged    bool
	Now        time.Duration
	Dt         time.Duration
}

// BehaviorSelector picks one active behavior per tick.
//
// Priority (highest first):
//  1. target in attack range and (seen or alerted) → Attack
//  2. (seen or alerted), out of attack range → Rush if the rush module says so,
//     otherwise CircleStrafe when enabled, otherwise Chase
//  3. otherwise → Patrol
type BehaviorSelector struct {
	strafe bool
	rush   RushPolicy

	state     model.BehaviorState
	enteredAt time.Duration
}

// NewBehaviorSelector creates selector starting in Idle.
func NewBehaviorSelector(circleStrafe bool, rush RushPolicy) *BehaviorSelector {
	if rush == nil {
		rush = ThresholdRush{}
	}
	return &BehaviorSelector{
		strafe: circleStrafe,
		rush:   rush,
		state:  model.BehaviorIdle,
	}
}

// Select evaluates transitions and returns the behavior for this tick.
func (s *BehaviorSelector) Select(in SelectorInput) model.BehaviorState {
	p := in.Perception
	aware := p.HasTarget && (p.InSight || in.Alerted)

	var next model.BehaviorState
	switch {
	case aware && p.InAttackRange:
		next = model.BehaviorAttack

	case aware:
		circling := s.state == model.BehaviorCircleStrafe
		var circleTime time.Duration
		if circling {
			circleTime = in.Now - s.enteredAt
		}

		rushing := s.rush.Rushing(RushInput{
			Now:        in.Now,
			Dt:         in.Dt,
			Enraged:    in.Enraged,
			Circling:   circling,
			CircleTime: circleTime,
		})

		switch {
		case rushing:
			next = model.BehaviorRush
		case s.strafe:
			next = model.BehaviorCircleStrafe
		default:
			next = model.BehaviorChase
		}

	default:
		next = model.BehaviorPatrol
	}

	if next != s.state {
		s.state = next
		s.enteredAt = in.Now
	}
	return next
}

// State returns the behavior selected on the last tick.
func (s *BehaviorSelector) State() model.BehaviorState {
	return s.state
}

// EnteredAt returns clock time at which the current state was entered.
func (s *BehaviorSelector) EnteredAt() time.Duration {
	return s.enteredAt
}

// Reset returns to Idle and cancels rush timers.
func (s *BehaviorSelector) Reset() {
	s.state = model.BehaviorIdle
	s.enteredAt = 0
	s.rush.Reset()
}
