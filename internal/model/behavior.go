package model

// BehaviorState is the movement/combat behavior a hostile agent runs this tick.
type BehaviorState int32

const (
	// BehaviorIdle - agent is inactive or dead, nothing is selected
	BehaviorIdle BehaviorState = iota
	// BehaviorPatrol - agent wanders around its spawn point
	BehaviorPatrol
	// BehaviorChase - agent moves straight to the target at base speed
	BehaviorChase
	// BehaviorCircleStrafe - agent orbits the target while facing it
	BehaviorCircleStrafe
	// BehaviorRush - agent charges the target at rush speed
	BehaviorRush
	// BehaviorAttack - agent stands still, faces the target and fires
	BehaviorAttack
)

// String returns human-readable behavior name
func (b BehaviorState) String() string {
	switch b {
	case BehaviorIdle:
		return "IDLE"
	case BehaviorPatrol:
		return "PATROL"
	case BehaviorChase:
		return "CHASE"
	case BehaviorCircleStrafe:
		return "CIRCLE_STRAFE"
	case BehaviorRush:
		return "RUSH"
	case BehaviorAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// IsPursuit reports whether the behavior closes in on the target.
func (b BehaviorState) IsPursuit() bool {
	return b == BehaviorChase || b == BehaviorCircleStrafe || b == BehaviorRush
}

// Phase is the difficulty tier derived from health fraction (1..3).
type Phase int32

const (
	Phase1 Phase = 1
	Phase2 Phase = 2
	Phase3 Phase = 3
)

// String returns human-readable phase name
func (p Phase) String() string {
	switch p {
	case Phase1:
		return "PHASE_1"
	case Phase2:
		return "PHASE_2"
	case Phase3:
		return "PHASE_3"
	default:
		return "UNKNOWN"
	}
}

// PhaseFor maps health fraction to phase.
// Thresholds are inclusive: fraction == phase2 already yields Phase2.
func PhaseFor(fraction, phase2, phase3 float64) Phase {
	switch {
	case fraction <= phase3:
		return Phase3
	case fraction <= phase2:
		return Phase2
	default:
		return Phase1
	}
}
