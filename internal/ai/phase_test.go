package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
)

func newTestPhaseController(health float64) *PhaseController {
	cfg := config.DefaultAgent()
	return NewPhaseController(cfg.Phases, cfg.Attack, health, 100)
}

func TestPhaseController_InitialPhaseIsSilent(t *testing.T) {
	tests := []struct {
		health float64
		want   model.Phase
	}{
		{100, model.Phase1},
		{60, model.Phase2},
		{30, model.Phase3},
	}

	for _, tt := range tests {
		pc := newTestPhaseController(tt.health)
		assert.Equal(t, tt.want, pc.Phase())
		assert.Equal(t, 0, pc.Transitions())
	}
}

func TestPhaseController_TransitionRescales(t *testing.T) {
	pc := newTestPhaseController(65)
	assert.Equal(t, model.Phase1, pc.Phase())
	assert.Equal(t, 1500*time.Millisecond, pc.TimeBetweenAttacks())
	assert.InDelta(t, 0.5, pc.Accuracy(), 1e-9)

	phase, changed := pc.Recompute(55, 100)
	assert.True(t, changed)
	assert.Equal(t, model.Phase2, phase)
	assert.Equal(t, 1200*time.Millisecond, pc.TimeBetweenAttacks(), "1.5s / 1.25")
	assert.InDelta(t, 0.55, pc.Accuracy(), 1e-9)

	// Holding the condition does not fire again
	for range 10 {
		_, changed = pc.Recompute(55, 100)
		assert.False(t, changed)
	}
	assert.Equal(t, 1, pc.Transitions())

	phase, changed = pc.Recompute(20, 100)
	assert.True(t, changed)
	assert.Equal(t, model.Phase3, phase)
	assert.Equal(t, time.Second, pc.TimeBetweenAttacks(), "1.5s / 1.5")
	assert.InDelta(t, 0.6, pc.Accuracy(), 1e-9)
}

func TestPhaseController_SkipsPhaseTwo(t *testing.T) {
	pc := newTestPhaseController(100)

	phase, changed := pc.Recompute(10, 100)
	assert.True(t, changed)
	assert.Equal(t, model.Phase3, phase)
	assert.Equal(t, 1, pc.Transitions(), "one transition even across two thresholds")
}

func TestPhaseController_AccuracyCappedAtOne(t *testing.T) {
	cfg := config.DefaultAgent()
	cfg.Attack.Accuracy = 0.95
	cfg.Phases.Phase3AccuracyBonus = 0.2

	pc := NewPhaseController(cfg.Phases, cfg.Attack, 10, 100)
	assert.Equal(t, 1.0, pc.Accuracy())
}

// No hysteresis: oscillating across a threshold fires on every crossing.
// This pins current behavior; a hysteresis band would change this test.
func TestPhaseController_OscillationRefiresEveryCrossing(t *testing.T) {
	pc := newTestPhaseController(61)

	for i := range 10 {
		_, down := pc.Recompute(59, 100)
		_, up := pc.Recompute(61, 100)
		assert.True(t, down, "crossing %d down", i)
		assert.True(t, up, "crossing %d up", i)
	}

	assert.Equal(t, 20, pc.Transitions())
	assert.Equal(t, model.Phase1, pc.Phase())
	assert.Equal(t, 1500*time.Millisecond, pc.TimeBetweenAttacks(), "phase 1 restores base cadence")
}

func TestPhaseController_ZeroMaxHealth(t *testing.T) {
	pc := newTestPhaseController(100)
	phase, _ := pc.Recompute(10, 0)
	assert.Equal(t, model.Phase3, phase)
}
