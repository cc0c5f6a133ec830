package ai

import (
	"time"

	"github.com/udisondev/warbrain/internal/model"
)

// Snapshot is a read-only view of agent state for logging and inspection.
type Snapshot struct {
	ID           string
	Name         string
	Kind         string
	Position     model.Vec3
	Health       float64
	MaxHealth    float64
	Phase        model.Phase
	Aggression   float64
	State        model.BehaviorState
	Active       bool
	Dead         bool
	Alerted      bool
	AttackLocked bool
	Attacks      int
}

// Snapshot returns current state.
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		ID:           a.ID(),
		Name:         a.name,
		Kind:         a.cfg.Kind,
		Position:     a.pose.Position,
		Health:       a.health,
		MaxHealth:    a.maxHealth,
		Phase:        a.phases.Phase(),
		Aggression:   a.aggression.Value(),
		State:        a.selector.State(),
		Active:       a.active,
		Dead:         a.dead,
		Alerted:      a.Alerted(),
		AttackLocked: a.attackLocked,
		Attacks:      a.attackCount,
	}
}

// Position returns current world position.
func (a *Agent) Position() model.Vec3 {
	return a.pose.Position
}

// Pose returns position and facing.
func (a *Agent) Pose() model.Pose {
	return a.pose
}

// Health returns current health.
func (a *Agent) Health() float64 {
	return a.health
}

// MaxHealth returns maximum health.
func (a *Agent) MaxHealth() float64 {
	return a.maxHealth
}

// Heal restores health up to maximum. Dead agents cannot be healed.
// The phase follows on the next tick.
func (a *Agent) Heal(amount float64) {
	if a.dead || amount <= 0 {
		return
	}
	a.health = min(a.maxHealth, a.health+amount)
}

// IsDead returns true after the death transition.
func (a *Agent) IsDead() bool {
	return a.dead
}

// IsActive returns true while the agent ticks.
func (a *Agent) IsActive() bool {
	return a.active
}

// State returns the behavior selected on the last tick.
// Idle before activation and after Deactivate; frozen after death.
func (a *Agent) State() model.BehaviorState {
	return a.selector.State()
}

// Phase returns current difficulty phase.
func (a *Agent) Phase() model.Phase {
	return a.phases.Phase()
}

// PhaseTransitions returns number of phase changes so far.
func (a *Agent) PhaseTransitions() int {
	return a.phases.Transitions()
}

// Aggression returns current aggression value.
func (a *Agent) Aggression() float64 {
	return a.aggression.Value()
}

// TimeBetweenAttacks returns phase-scaled attack cooldown.
func (a *Agent) TimeBetweenAttacks() time.Duration {
	return a.phases.TimeBetweenAttacks()
}

// Accuracy returns phase-scaled hit probability.
func (a *Agent) Accuracy() float64 {
	return a.phases.Accuracy()
}

// AttackLocked reports whether the attack cooldown is running.
func (a *Agent) AttackLocked() bool {
	return a.attackLocked
}

// Alerted reports whether the post-hit pursuit window is open.
func (a *Agent) Alerted() bool {
	return a.now < a.alertedUntil
}

// Now returns the agent's tick clock.
func (a *Agent) Now() time.Duration {
	return a.now
}

// Perception returns what the agent perceived on the last tick.
func (a *Agent) Perception() Perception {
	return a.perception
}

// LastAttack returns the most recent attack attempt and whether there was one.
func (a *Agent) LastAttack() (AttackAttempt, bool) {
	return a.lastAttempt, a.attackCount > 0
}

// AttackCount returns number of attack attempts so far.
func (a *Agent) AttackCount() int {
	return a.attackCount
}

// EnhancedMobility reports whether enhanced mobility mode is on.
func (a *Agent) EnhancedMobility() bool {
	return a.enhancedMobility
}

// LastAttackAt returns tick clock time of the most recent attack attempt.
func (a *Agent) LastAttackAt() time.Duration {
	return a.lastAttackAt
}
