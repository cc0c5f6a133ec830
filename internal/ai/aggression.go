package ai

import (
	"time"

	"github.com/udisondev/warbrain/internal/config"
)

// AggressionTracker maintains a decaying, hit-incremented rage value.
// Invariant: 0 <= Value() <= max under any sequence of calls.
type AggressionTracker struct {
	value float64

	max           float64
	decayRate     float64
	buildRate     float64
	rushThreshold float64
}

// NewAggressionTracker creates tracker starting at zero.
func NewAggressionTracker(cfg config.Aggression) *AggressionTracker {
	return &AggressionTracker{
		max:           cfg.Max,
		decayRate:     cfg.DecayRate,
		buildRate:     cfg.BuildRate,
		rushThreshold: cfg.RushThreshold,
	}
}

// Value returns current aggression.
func (t *AggressionTracker) Value() float64 {
	return t.value
}

// Max returns upper bound.
func (t *AggressionTracker) Max() float64 {
	return t.max
}

// Decay lowers aggression by decayRate·dt, never below zero.
func (t *AggressionTracker) Decay(dt time.Duration) {
	t.add(-t.decayRate * dt.Seconds())
}

// Build accrues aggression passively by buildRate·dt·multiplier.
func (t *AggressionTracker) Build(dt time.Duration, multiplier float64) {
	t.add(t.buildRate * dt.Seconds() * multiplier)
}

// OnHit adds aggression for being hit.
func (t *AggressionTracker) OnHit(amount float64) {
	t.add(amount)
}

// OnPhaseChange adds the fixed phase-transition bonus.
func (t *AggressionTracker) OnPhaseChange(bonus float64) {
	t.add(bonus)
}

// IsEnraged reports aggression >= rush threshold.
func (t *AggressionTracker) IsEnraged() bool {
	return t.value >= t.rushThreshold
}

// Reset drops aggression to zero.
func (t *AggressionTracker) Reset() {
	t.value = 0
}

func (t *AggressionTracker) add(amount float64) {
	t.value = max(0, min(t.max, t.value+amount))
}
