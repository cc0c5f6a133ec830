package config

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalid marks a tuning or scenario value outside its allowed range.
	ErrInvalid = errors.New("invalid config")
	// ErrUnknownKind is returned for an agent kind with no preset.
	ErrUnknownKind = errors.New("unknown agent kind")
)

// RushMode selects the rush behavior module.
type RushMode string

const (
	// RushThreshold rushes for exactly as long as aggression stays at or above the threshold.
	RushThreshold RushMode = "threshold"
	// RushTimed rushes in probability-gated, time-boxed bursts with a cooldown.
	RushTimed RushMode = "timed"
)

// Perception holds sensing ranges.
type Perception struct {
	SightRange  float64 `yaml:"sight_range"`
	AttackRange float64 `yaml:"attack_range"`
	// RequireLineOfSight makes obstacles hide the target even within SightRange.
	RequireLineOfSight bool `yaml:"require_line_of_sight"`
}

// Movement holds locomotion tuning handed to the navigator.
type Movement struct {
	BaseSpeed    float64 `yaml:"base_speed"`
	RushSpeed    float64 `yaml:"rush_speed"`
	PatrolRadius float64 `yaml:"patrol_radius"`
	PatrolArrive float64 `yaml:"patrol_arrive"` // re-pick patrol point within this distance
	StrafeRadius float64 `yaml:"strafe_radius"`
	StrafeSpeed  float64 `yaml:"strafe_speed"` // radians per second
}

// Attack holds ranged attack tuning.
type Attack struct {
	Damage             float64       `yaml:"damage"`
	MaxRange           float64       `yaml:"max_range"`
	Accuracy           float64       `yaml:"accuracy"`             // base hit roll probability
	TimeBetweenAttacks time.Duration `yaml:"time_between_attacks"` // base, before phase scaling
	EyeHeight          float64       `yaml:"eye_height"`

	AccurateSpread   float64 `yaml:"accurate_spread"`    // per-axis deviation of an accurate shot
	MissHorizontal   float64 `yaml:"miss_horizontal"`    // max horizontal deviation of a miss
	MissVertical     float64 `yaml:"miss_vertical"`      // max vertical deviation of a miss
	MissMinDeviation float64 `yaml:"miss_min_deviation"` // min horizontal deviation of a miss
	MissTightness    float64 `yaml:"miss_tightness"`     // 0..1, miss cone shrinks by tightness*accuracy
}

// Aggression holds aggression tracker tuning.
type Aggression struct {
	Max           float64 `yaml:"max"`
	DecayRate     float64 `yaml:"decay_rate"` // per second
	HitBonus      float64 `yaml:"hit_bonus"`
	PhaseBonus    float64 `yaml:"phase_bonus"`
	RushThreshold float64 `yaml:"rush_threshold"`
	PassiveBuild  bool    `yaml:"passive_build"` // accrue while target seen but out of reach
	BuildRate     float64 `yaml:"build_rate"`    // per second
}

// Phases holds health thresholds and per-phase combat scaling.
type Phases struct {
	Phase2Threshold       float64 `yaml:"phase2_threshold"`
	Phase3Threshold       float64 `yaml:"phase3_threshold"`
	Phase2SpeedMultiplier float64 `yaml:"phase2_speed_multiplier"`
	Phase3SpeedMultiplier float64 `yaml:"phase3_speed_multiplier"`
	Phase2AccuracyBonus   float64 `yaml:"phase2_accuracy_bonus"`
	Phase3AccuracyBonus   float64 `yaml:"phase3_accuracy_bonus"`
}

// Rush holds rush module tuning. Chance, Cooldown, Duration and MaxCircleTime
// are used only by RushTimed.
type Rush struct {
	Mode          RushMode      `yaml:"mode"`
	Chance        float64       `yaml:"chance"` // per second
	Cooldown      time.Duration `yaml:"cooldown"`
	Duration      time.Duration `yaml:"duration"`
	MaxCircleTime time.Duration `yaml:"max_circle_time"` // 0 disables forced rush
}

// EnhancedMobility boosts passive aggression build and movement from a given phase on.
type EnhancedMobility struct {
	Phase           int     `yaml:"phase"` // 0 disables
	BuildMultiplier float64 `yaml:"build_multiplier"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// Agent is the immutable tuning of one hostile agent kind.
type Agent struct {
	Kind      string  `yaml:"kind"`
	MaxHealth float64 `yaml:"max_health"`

	Perception       Perception       `yaml:"perception"`
	Movement         Movement         `yaml:"movement"`
	Attack           Attack           `yaml:"attack"`
	Aggression       Aggression       `yaml:"aggression"`
	Phases           Phases           `yaml:"phases"`
	Rush             Rush             `yaml:"rush"`
	CircleStrafe     bool             `yaml:"circle_strafe"`
	EnhancedMobility EnhancedMobility `yaml:"enhanced_mobility"`

	AlertDuration time.Duration `yaml:"alert_duration"`
}

// Validate checks every tuning value and reports all problems at once.
func (a Agent) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalid, a.Kind, fmt.Sprintf(format, args...)))
	}

	if a.MaxHealth <= 0 {
		bad("max_health must be > 0, got %v", a.MaxHealth)
	}

	if a.Perception.SightRange < 0 || a.Perception.AttackRange < 0 {
		bad("perception ranges must be >= 0")
	}

	if a.Movement.BaseSpeed < 0 || a.Movement.RushSpeed < 0 {
		bad("movement speeds must be >= 0")
	}
	if a.Movement.PatrolArrive <= 0 {
		bad("movement.patrol_arrive must be > 0, got %v", a.Movement.PatrolArrive)
	}

	if a.Attack.Accuracy < 0 || a.Attack.Accuracy > 1 {
		bad("attack.accuracy must be in [0,1], got %v", a.Attack.Accuracy)
	}
	if a.Attack.Damage < 0 {
		bad("attack.damage must be >= 0, got %v", a.Attack.Damage)
	}
	if a.Attack.MaxRange <= 0 {
		bad("attack.max_range must be > 0, got %v", a.Attack.MaxRange)
	}
	if a.Attack.TimeBetweenAttacks <= 0 {
		bad("attack.time_between_attacks must be > 0, got %v", a.Attack.TimeBetweenAttacks)
	}
	if a.Attack.MissMinDeviation > a.Attack.MissHorizontal {
		bad("attack.miss_min_deviation %v exceeds miss_horizontal %v", a.Attack.MissMinDeviation, a.Attack.MissHorizontal)
	}
	if a.Attack.MissTightness < 0 || a.Attack.MissTightness > 1 {
		bad("attack.miss_tightness must be in [0,1], got %v", a.Attack.MissTightness)
	}

	if a.Aggression.Max <= 0 {
		bad("aggression.max must be > 0, got %v", a.Aggression.Max)
	}
	if a.Aggression.DecayRate < 0 || a.Aggression.BuildRate < 0 {
		bad("aggression rates must be >= 0")
	}

	p := a.Phases
	if !(p.Phase3Threshold <= p.Phase2Threshold && p.Phase2Threshold <= 1 && p.Phase3Threshold >= 0) {
		bad("phase thresholds must satisfy 0 <= phase3 <= phase2 <= 1, got %v/%v", p.Phase2Threshold, p.Phase3Threshold)
	}
	if p.Phase2SpeedMultiplier <= 0 || p.Phase3SpeedMultiplier <= 0 {
		bad("phase speed multipliers must be > 0")
	}

	switch a.Rush.Mode {
	case RushThreshold:
	case RushTimed:
		if a.Rush.Chance < 0 {
			bad("rush.chance must be >= 0, got %v", a.Rush.Chance)
		}
		if a.Rush.Duration <= 0 {
			bad("rush.duration must be > 0 for timed rush, got %v", a.Rush.Duration)
		}
	default:
		bad("rush.mode must be %q or %q, got %q", RushThreshold, RushTimed, a.Rush.Mode)
	}

	if m := a.EnhancedMobility; m.Phase != 0 {
		if m.Phase < 1 || m.Phase > 3 {
			bad("enhanced_mobility.phase must be 0..3, got %d", m.Phase)
		}
		if m.BuildMultiplier <= 0 || m.SpeedMultiplier <= 0 {
			bad("enhanced_mobility multipliers must be > 0")
		}
	}

	if a.AlertDuration < 0 {
		bad("alert_duration must be >= 0, got %v", a.AlertDuration)
	}

	return errors.Join(errs...)
}
