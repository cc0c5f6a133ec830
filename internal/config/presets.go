package config

import (
	"fmt"
	"slices"
	"time"
)

// Agent kinds with built-in presets.
const (
	KindGrunt    = "grunt"    // basic enemy
	KindWarden   = "warden"   // circling boss with timed rushes
	KindMarauder = "marauder" // aggressive boss that builds rage from a distance
	KindSentinel = "sentinel" // marksman boss, tight miss cone
	KindOverlord = "overlord" // final boss, enhanced mobility in phase 3
)

// DefaultAgent returns the basic enemy tuning.
func DefaultAgent() Agent {
	return Agent{
		Kind:      KindGrunt,
		MaxHealth: 100,
		Perception: Perception{
			SightRange:  25,
			AttackRange: 15,
		},
		Movement: Movement{
			BaseSpeed:    3.5,
			RushSpeed:    7,
			PatrolRadius: 10,
			PatrolArrive: 1,
			StrafeRadius: 10,
			StrafeSpeed:  0.8,
		},
		Attack: Attack{
			Damage:             10,
			MaxRange:           100,
			Accuracy:           0.5,
			TimeBetweenAttacks: 1500 * time.Millisecond,
			EyeHeight:          1.6,
			AccurateSpread:     0.05,
			MissHorizontal:     1,
			MissVertical:       0.5,
			MissMinDeviation:   0.15,
		},
		Aggression: Aggression{
			Max:           100,
			DecayRate:     5,
			HitBonus:      20,
			PhaseBonus:    15,
			RushThreshold: 70,
		},
		Phases: Phases{
			Phase2Threshold:       0.6,
			Phase3Threshold:       0.3,
			Phase2SpeedMultiplier: 1.25,
			Phase3SpeedMultiplier: 1.5,
			Phase2AccuracyBonus:   0.05,
			Phase3AccuracyBonus:   0.1,
		},
		Rush: Rush{
			Mode: RushThreshold,
		},
		AlertDuration: 10 * time.Second,
	}
}

// Preset returns built-in tuning for kind.
func Preset(kind string) (Agent, error) {
	a := DefaultAgent()

	switch kind {
	case KindGrunt:
		return a, nil

	case KindWarden:
		a.Kind = KindWarden
		a.MaxHealth = 500
		a.Perception.SightRange = 35
		a.Attack.Damage = 15
		a.Attack.Accuracy = 0.6
		a.Attack.TimeBetweenAttacks = 1200 * time.Millisecond
		a.Attack.MissTightness = 0.3
		a.CircleStrafe = true
		a.Rush = Rush{
			Mode:          RushTimed,
			Chance:        0.3,
			Cooldown:      5 * time.Second,
			Duration:      2 * time.Second,
			MaxCircleTime: 8 * time.Second,
		}
		return a, nil

	case KindMarauder:
		a.Kind = KindMarauder
		a.MaxHealth = 650
		a.Movement.BaseSpeed = 4
		a.Movement.RushSpeed = 9
		a.Attack.Damage = 20
		a.Attack.Accuracy = 0.45
		a.Attack.TimeBetweenAttacks = 1800 * time.Millisecond
		a.Aggression.PassiveBuild = true
		a.Aggression.BuildRate = 8
		a.Aggression.DecayRate = 3
		a.Phases.Phase2SpeedMultiplier = 1.4
		a.Phases.Phase3SpeedMultiplier = 1.8
		return a, nil

	case KindSentinel:
		a.Kind = KindSentinel
		a.MaxHealth = 400
		a.Perception.SightRange = 45
		a.Perception.AttackRange = 30
		a.Perception.RequireLineOfSight = true
		a.Attack.Damage = 25
		a.Attack.Accuracy = 0.75
		a.Attack.TimeBetweenAttacks = 2500 * time.Millisecond
		a.Attack.MissTightness = 0.6
		a.Phases.Phase2AccuracyBonus = 0.1
		a.Phases.Phase3AccuracyBonus = 0.2
		a.CircleStrafe = true
		a.Movement.StrafeRadius = 20
		a.Rush = Rush{
			Mode:     RushTimed,
			Chance:   0.15,
			Cooldown: 8 * time.Second,
			Duration: 1500 * time.Millisecond,
		}
		return a, nil

	case KindOverlord:
		a.Kind = KindOverlord
		a.MaxHealth = 1200
		a.Perception.SightRange = 40
		a.Perception.AttackRange = 18
		a.Movement.RushSpeed = 10
		a.Attack.Damage = 30
		a.Attack.Accuracy = 0.65
		a.Attack.TimeBetweenAttacks = 1400 * time.Millisecond
		a.Attack.MissTightness = 0.4
		a.Aggression.PassiveBuild = true
		a.Aggression.BuildRate = 5
		a.Aggression.PhaseBonus = 25
		a.Phases.Phase2Threshold = 0.7
		a.Phases.Phase3Threshold = 0.35
		a.Phases.Phase3SpeedMultiplier = 2
		a.CircleStrafe = true
		a.Rush = Rush{
			Mode:          RushTimed,
			Chance:        0.4,
			Cooldown:      4 * time.Second,
			Duration:      2500 * time.Millisecond,
			MaxCircleTime: 6 * time.Second,
		}
		a.EnhancedMobility = EnhancedMobility{
			Phase:           3,
			BuildMultiplier: 2,
			SpeedMultiplier: 1.3,
		}
		return a, nil

	default:
		return Agent{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Kinds returns all preset kinds, sorted.
func Kinds() []string {
	kinds := []string{KindGrunt, KindWarden, KindMarauder, KindSentinel, KindOverlord}
	slices.Sort(kinds)
	return kinds
}
