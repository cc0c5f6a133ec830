package ai

import (
	"math/rand/v2"
	"time"

	"github.com/udisondev/warbrain/internal/config"
)

// RushInput is what a rush module sees while the agent pursues its target.
type RushInput struct {
	Now        time.Duration
	Dt         time.Duration
	Enraged    bool
	Circling   bool          // agent was circle-strafing on the previous tick
	CircleTime time.Duration // how long it has been circling
}

// RushPolicy decides whether a pursuing agent rushes this tick.
type RushPolicy interface {
	// Rushing is evaluated once per tick in the pursuit branch only.
	Rushing(in RushInput) bool
	// Reset cancels any active rush window and cooldown.
	Reset()
}

// NewRushPolicy builds the rush module selected by config.
func NewRushPolicy(cfg config.Rush, rng *rand.Rand) RushPolicy {
	if cfg.Mode == config.RushTimed {
		return NewTimedRush(cfg, rng)
	}
	return ThresholdRush{}
}

// ThresholdRush rushes exactly as long as the agent is enraged.
type ThresholdRush struct{}

// Rushing implements RushPolicy.
func (ThresholdRush) Rushing(in RushInput) bool {
	return in.Enraged
}

// Reset implements RushPolicy.
func (ThresholdRush) Reset() {}

// TimedRush is a probability-gated, time-boxed rush with a cooldown.
// While enraged and off cooldown, each tick starts a rush with probability
// chance·dt. Circling for maxCircle forces a rush without the roll.
// A rush lasts exactly duration; the cooldown starts when it ends.
type TimedRush struct {
	chance    float64
	duration  time.Duration
	cooldown  time.Duration
	maxCircle time.Duration
	rng       *rand.Rand

	active        bool
	rushUntil     time.Duration
	cooldownUntil time.Duration
}

// NewTimedRush creates timed rush module.
func NewTimedRush(cfg config.Rush, rng *rand.Rand) *TimedRush {
	return &TimedRush{
		chance:    cfg.Chance,
		duration:  cfg.Duration,
		cooldown:  cfg.Cooldown,
		maxCircle: cfg.MaxCircleTime,
		rng:       rng,
	}
}

// Rushing implements RushPolicy.
func (r *TimedRush) Rushing(in RushInput) bool {
	if r.active {
		if in.Now < r.rushUntil {
			return true
		}
		r.active = false
		r.cooldownUntil = r.rushUntil + r.cooldown
	}

	if in.Now < r.cooldownUntil {
		return false
	}

	forced := r.maxCircle > 0 && in.Circling && in.CircleTime >= r.maxCircle
	if !forced && !(in.Enraged && r.rng.Float64() < r.chance*in.Dt.Seconds()) {
		return false
	}

	r.active = true
	r.rushUntil = in.Now + r.duration
	return true
}

// Active reports whether a rush window is open.
func (r *TimedRush) Active() bool {
	return r.active
}

// CooldownUntil returns the deadline before which no rush may start.
func (r *TimedRush) CooldownUntil() time.Duration {
	return r.cooldownUntil
}

// Reset implements RushPolicy.
func (r *TimedRush) Reset() {
	r.active = false
	r.rushUntil = 0
	r.cooldownUntil = 0
}
