package sim

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
)

func TestTrainingTarget_DamageClamp(t *testing.T) {
	tgt := NewTrainingTarget(config.Target{Name: "dummy", Health: 30})

	tgt.TakeDamage(10)
	tgt.TakeDamage(-5)
	assert.Equal(t, 20.0, tgt.Health())
	assert.Equal(t, 1, tgt.Hits())

	tgt.TakeDamage(50)
	assert.Zero(t, tgt.Health())
	assert.True(t, tgt.IsDead())
	assert.Equal(t, 30.0, tgt.DamageTaken())

	tgt.TakeDamage(10)
	assert.Equal(t, 2, tgt.Hits(), "dead target ignores damage")
}

func TestTrainingTarget_DeathOnce(t *testing.T) {
	tgt := NewTrainingTarget(config.Target{Health: 100})

	var deaths atomic.Int32
	tgt.OnDeath(func() { deaths.Add(1) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() { tgt.TakeDamage(7) })
	}
	wg.Wait()

	assert.True(t, tgt.IsDead())
	assert.Equal(t, int32(1), deaths.Load())
}

func TestTrainingTarget_WalksWaypoints(t *testing.T) {
	tgt := NewTrainingTarget(config.Target{
		Health:    10,
		Position:  config.Vec{0, 0, 0},
		Waypoints: []config.Vec{{4, 0, 0}, {4, 0, 4}},
		Speed:     2,
	})

	tgt.Update(time.Second)
	assert.InDelta(t, 2.0, tgt.Position().X, 1e-9)

	// Reaches (4,0,0) and turns the corner in the same tick
	tgt.Update(1500 * time.Millisecond)
	assert.InDelta(t, 4.0, tgt.Position().X, 1e-9)
	assert.InDelta(t, 1.0, tgt.Position().Z, 1e-9)

	tgt.TakeDamage(10)
	before := tgt.Position()
	tgt.Update(time.Second)
	assert.Equal(t, before, tgt.Position(), "dead target stands still")
}

func TestTrainingTarget_CoincidentWaypoints(t *testing.T) {
	tgt := NewTrainingTarget(config.Target{
		Health:    10,
		Waypoints: []config.Vec{{0, 0, 0}, {0, 0, 0}},
		Speed:     1,
	})

	tgt.Update(time.Second)
	assert.Equal(t, model.Vec3{}, tgt.Position())
}
