package ai

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
)

func TestBehaviorSelector_Priority(t *testing.T) {
	seen := Perception{HasTarget: true, InSight: true}
	inRange := Perception{HasTarget: true, InSight: true, InAttackRange: true}
	hiddenInRange := Perception{HasTarget: true, InAttackRange: true}
	unseen := Perception{HasTarget: true}

	tests := []struct {
		name   string
		strafe bool
		in     SelectorInput
		want   model.BehaviorState
	}{
		{"no target", false, SelectorInput{}, model.BehaviorPatrol},
		{"no target but alerted", false, SelectorInput{Alerted: true}, model.BehaviorPatrol},
		{"target unseen", false, SelectorInput{Perception: unseen}, model.BehaviorPatrol},
		{"seen out of range", false, SelectorInput{Perception: seen}, model.BehaviorChase},
		{"seen out of range with strafe", true, SelectorInput{Perception: seen}, model.BehaviorCircleStrafe},
		{"alerted unseen", false, SelectorInput{Perception: unseen, Alerted: true}, model.BehaviorChase},
		{"enraged", true, SelectorInput{Perception: seen, Enraged: true}, model.BehaviorRush},
		{"in range", false, SelectorInput{Perception: inRange}, model.BehaviorAttack},
		{"in range beats enraged", false, SelectorInput{Perception: inRange, Enraged: true}, model.BehaviorAttack},
		{"in range but hidden", false, SelectorInput{Perception: hiddenInRange}, model.BehaviorPatrol},
		{"in range hidden alerted", false, SelectorInput{Perception: hiddenInRange, Alerted: true}, model.BehaviorAttack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBehaviorSelector(tt.strafe, ThresholdRush{})
			assert.Equal(t, model.BehaviorIdle, s.State())
			assert.Equal(t, tt.want, s.Select(tt.in))
			assert.Equal(t, tt.want, s.State())
		})
	}
}

func TestBehaviorSelector_TracksEntryTime(t *testing.T) {
	s := NewBehaviorSelector(true, nil)
	seen := Perception{HasTarget: true, InSight: true}

	s.Select(SelectorInput{Now: time.Second})
	assert.Equal(t, time.Second, s.EnteredAt())

	s.Select(SelectorInput{Perception: seen, Now: 2 * time.Second})
	s.Select(SelectorInput{Perception: seen, Now: 3 * time.Second})
	assert.Equal(t, model.BehaviorCircleStrafe, s.State())
	assert.Equal(t, 2*time.Second, s.EnteredAt(), "staying in a state keeps entry time")
}

func TestBehaviorSelector_TimedRushRevertsToCircleStrafe(t *testing.T) {
	rush := NewTimedRush(config.Rush{
		Mode:     config.RushTimed,
		Chance:   100,
		Duration: time.Second,
		Cooldown: 10 * time.Second,
	}, rand.New(rand.NewPCG(1, 2)))
	s := NewBehaviorSelector(true, rush)
	seen := Perception{HasTarget: true, InSight: true}

	var states []model.BehaviorState
	for i := range 40 {
		states = append(states, s.Select(SelectorInput{
			Perception: seen,
			Enraged:    true,
			Now:        time.Duration(i) * tick,
			Dt:         tick,
		}))
	}

	// 1s of rush = 20 ticks, then circle strafe while cooling down
	for i, st := range states {
		if i < 20 {
			assert.Equal(t, model.BehaviorRush, st, "tick %d", i)
		} else {
			assert.Equal(t, model.BehaviorCircleStrafe, st, "tick %d", i)
		}
	}
}

func TestBehaviorSelector_MaxCircleTimeForcesRush(t *testing.T) {
	rush := NewTimedRush(config.Rush{
		Mode:          config.RushTimed,
		Duration:      time.Second,
		Cooldown:      time.Second,
		MaxCircleTime: 2 * time.Second,
	}, rand.New(rand.NewPCG(1, 2)))
	s := NewBehaviorSelector(true, rush)
	seen := Perception{HasTarget: true, InSight: true}

	firstRush := time.Duration(-1)
	for i := range 100 {
		now := time.Duration(i) * tick
		if s.Select(SelectorInput{Perception: seen, Now: now, Dt: tick}) == model.BehaviorRush {
			firstRush = now
			break
		}
	}

	// Circle strafe entered at tick 0, forced rush once 2s have passed
	assert.Equal(t, 2*time.Second, firstRush)
}

func TestBehaviorSelector_Reset(t *testing.T) {
	s := NewBehaviorSelector(false, ThresholdRush{})
	s.Select(SelectorInput{Perception: Perception{HasTarget: true, InSight: true}, Now: time.Second})

	s.Reset()
	assert.Equal(t, model.BehaviorIdle, s.State())
	assert.Equal(t, time.Duration(0), s.EnteredAt())
}
