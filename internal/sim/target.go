package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
)

// TrainingTarget is the damage sink agents hunt. It walks a waypoint loop
// and dies once when health reaches zero.
//
// Thread-safe.
type TrainingTarget struct {
	id   uuid.UUID
	name string

	mu          sync.RWMutex
	pos         model.Vec3
	health      float64
	maxHealth   float64
	hits        int
	damageTaken float64

	waypoints []model.Vec3
	next      int
	speed     float64

	deathOnce sync.Once
	onDeath   func()
}

// NewTrainingTarget creates target from config.
func NewTrainingTarget(cfg config.Target) *TrainingTarget {
	t := &TrainingTarget{
		id:        uuid.New(),
		name:      cfg.Name,
		pos:       cfg.Position.Vec3(),
		health:    cfg.Health,
		maxHealth: cfg.Health,
		speed:     cfg.Speed,
	}
	for _, w := range cfg.Waypoints {
		t.waypoints = append(t.waypoints, w.Vec3())
	}
	return t
}

// OnDeath sets callback invoked once when health reaches zero.
func (t *TrainingTarget) OnDeath(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDeath = fn
}

// ID returns unique target identifier.
func (t *TrainingTarget) ID() string {
	return "target-" + t.id.String()
}

// Name returns target name.
func (t *TrainingTarget) Name() string {
	return t.name
}

// Position returns current position.
func (t *TrainingTarget) Position() model.Vec3 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pos
}

// TakeDamage reduces health, clamped at 0. Damage to a dead target is ignored.
func (t *TrainingTarget) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}

	t.mu.Lock()
	if t.health <= 0 {
		t.mu.Unlock()
		return
	}
	dealt := min(amount, t.health)
	t.health -= dealt
	t.hits++
	t.damageTaken += dealt
	dead := t.health <= 0
	t.mu.Unlock()

	if dead {
		t.die()
	}
}

func (t *TrainingTarget) die() {
	t.deathOnce.Do(func() {
		t.mu.RLock()
		fn := t.onDeath
		t.mu.RUnlock()

		slog.Info("target destroyed", "target", t.name, "hits", t.Hits())

		if fn != nil {
			fn()
		}
	})
}

// Health returns current health.
func (t *TrainingTarget) Health() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.health
}

// MaxHealth returns maximum health.
func (t *TrainingTarget) MaxHealth() float64 {
	return t.maxHealth
}

// IsDead returns true at zero health.
func (t *TrainingTarget) IsDead() bool {
	return t.Health() <= 0
}

// Hits returns number of damaging hits taken.
func (t *TrainingTarget) Hits() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hits
}

// DamageTaken returns total damage absorbed.
func (t *TrainingTarget) DamageTaken() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.damageTaken
}

// Init implements ai.Controller.
func (t *TrainingTarget) Init() {}

// Update walks toward the next waypoint. Dead targets stand still.
func (t *TrainingTarget) Update(dt time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.health <= 0 || len(t.waypoints) == 0 || t.speed <= 0 {
		return
	}

	budget := t.speed * dt.Seconds()
	// Bounded so a loop of coincident waypoints cannot spin forever
	for range len(t.waypoints) + 1 {
		wp := t.waypoints[t.next]
		d := t.pos.Distance(wp)
		if d > budget {
			t.pos = t.pos.Add(wp.Sub(t.pos).Scale(budget / d))
			return
		}
		t.pos = wp
		budget -= d
		t.next = (t.next + 1) % len(t.waypoints)
	}
}

// Shutdown implements ai.Controller.
func (t *TrainingTarget) Shutdown() {}
