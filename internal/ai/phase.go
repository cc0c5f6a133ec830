package ai

import (
	"math"
	"time"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
)

// PhaseController maps health fraction to a difficulty phase and rescales
// attack cadence and accuracy when the phase changes.
//
// There is no hysteresis: health oscillating across a threshold changes
// the phase (and reports a transition) on every crossing.
type PhaseController struct {
	cfg          config.Phases
	baseInterval time.Duration
	baseAccuracy float64

	phase              model.Phase
	timeBetweenAttacks time.Duration
	accuracy           float64
	transitions        int
}

// NewPhaseController creates controller with the phase for the given health.
// The initial phase is applied silently, it is not a transition.
func NewPhaseController(phases config.Phases, attack config.Attack, health, maxHealth float64) *PhaseController {
	pc := &PhaseController{
		cfg:          phases,
		baseInterval: attack.TimeBetweenAttacks,
		baseAccuracy: attack.Accuracy,
	}
	pc.apply(pc.phaseFor(health, maxHealth))
	return pc
}

// Recompute re-derives the phase from health.
// Returns the new phase and true exactly when it differs from the previous one.
func (pc *PhaseController) Recompute(health, maxHealth float64) (model.Phase, bool) {
	next := pc.phaseFor(health, maxHealth)
	if next == pc.phase {
		return pc.phase, false
	}

	pc.apply(next)
	pc.transitions++
	return next, true
}

// Phase returns current phase.
func (pc *PhaseController) Phase() model.Phase {
	return pc.phase
}

// TimeBetweenAttacks returns attack cooldown scaled for the current phase.
func (pc *PhaseController) TimeBetweenAttacks() time.Duration {
	return pc.timeBetweenAttacks
}

// Accuracy returns hit probability for the current phase, capped at 1.
func (pc *PhaseController) Accuracy() float64 {
	return pc.accuracy
}

// Transitions returns number of phase changes since creation.
func (pc *PhaseController) Transitions() int {
	return pc.transitions
}

func (pc *PhaseController) phaseFor(health, maxHealth float64) model.Phase {
	return model.PhaseFor(model.HealthFraction(health, maxHealth), pc.cfg.Phase2Threshold, pc.cfg.Phase3Threshold)
}

func (pc *PhaseController) apply(phase model.Phase) {
	pc.phase = phase

	speed, bonus := 1.0, 0.0
	switch phase {
	case model.Phase2:
		speed, bonus = pc.cfg.Phase2SpeedMultiplier, pc.cfg.Phase2AccuracyBonus
	case model.Phase3:
		speed, bonus = pc.cfg.Phase3SpeedMultiplier, pc.cfg.Phase3AccuracyBonus
	}
	if speed <= 0 {
		speed = 1
	}

	pc.timeBetweenAttacks = time.Duration(math.Round(float64(pc.baseInterval) / speed))
	pc.accuracy = math.Min(1, pc.baseAccuracy+bonus)
}
