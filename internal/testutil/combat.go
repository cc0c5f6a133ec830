package testutil

import (
	"sync"

	"github.com/udisondev/warbrain/internal/model"
)

// Navigator is a recording movement agent for unit tests.
// It does not move by itself; tests place it with Teleport.
type Navigator struct {
	mu sync.Mutex

	Pathable    bool
	pos         model.Vec3
	destination model.Vec3
	hasDest     bool
	speed       float64

	SetDestinationCalls int
	StopCalls           int
	SetSpeedCalls       int
	Speeds              []float64
}

// NewNavigator creates pathable navigator at pos.
func NewNavigator(pos model.Vec3) *Navigator {
	return &Navigator{Pathable: true, pos: pos}
}

// SetDestination records destination.
func (n *Navigator) SetDestination(pos model.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.destination = pos
	n.hasDest = true
	n.SetDestinationCalls++
}

// Stop records a stop.
func (n *Navigator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hasDest = false
	n.StopCalls++
}

// SetSpeed records speed.
func (n *Navigator) SetSpeed(v float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.speed = v
	n.SetSpeedCalls++
	n.Speeds = append(n.Speeds, v)
}

// IsPathable returns Pathable.
func (n *Navigator) IsPathable() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Pathable
}

// Position returns current position.
func (n *Navigator) Position() model.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pos
}

// Teleport moves body to pos.
func (n *Navigator) Teleport(pos model.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pos = pos
}

// Destination returns last destination and whether one is set.
func (n *Navigator) Destination() (model.Vec3, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.destination, n.hasDest
}

// Speed returns last requested speed.
func (n *Navigator) Speed() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speed
}

// MovementCalls returns total number of recorded movement requests.
func (n *Navigator) MovementCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.SetDestinationCalls + n.StopCalls + n.SetSpeedCalls
}

// Target is a recording damage sink with a one-shot death latch.
type Target struct {
	mu        sync.Mutex
	pos       model.Vec3
	health    float64
	maxHealth float64

	DamageCalls int
	Deaths      int
}

// NewTarget creates target at pos with given health.
func NewTarget(pos model.Vec3, health float64) *Target {
	return &Target{pos: pos, health: health, maxHealth: health}
}

// Position returns target position.
func (t *Target) Position() model.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// MoveTo places target at pos.
func (t *Target) MoveTo(pos model.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos = pos
}

// TakeDamage records call and reduces health, clamped at 0.
func (t *Target) TakeDamage(amount float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.DamageCalls++
	if t.health <= 0 {
		return
	}
	t.health = max(0, t.health-amount)
	if t.health == 0 {
		t.Deaths++
	}
}

// Health returns current health.
func (t *Target) Health() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.health
}

// MaxHealth returns max health.
func (t *Target) MaxHealth() float64 {
	return t.maxHealth
}

// IsDead returns true at zero health.
func (t *Target) IsDead() bool {
	return t.Health() <= 0
}

// Damaged returns number of TakeDamage calls.
func (t *Target) Damaged() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.DamageCalls
}

// Cues records audio/VFX and animation cues.
type Cues struct {
	mu    sync.Mutex
	cues  []model.Cue
	anims []model.AnimCue
}

// Cue records an audio/VFX cue.
func (c *Cues) Cue(cue model.Cue, _ model.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cues = append(c.cues, cue)
}

// Trigger records an animation cue.
func (c *Cues) Trigger(cue model.AnimCue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anims = append(c.anims, cue)
}

// Count returns how many times cue was emitted.
func (c *Cues) Count(cue model.Cue) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, x := range c.cues {
		if x == cue {
			n++
		}
	}
	return n
}

// AnimCount returns how many times animation cue was triggered.
func (c *Cues) AnimCount(cue model.AnimCue) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, x := range c.anims {
		if x == cue {
			n++
		}
	}
	return n
}

// Anims returns a copy of recorded animation cues.
func (c *Cues) Anims() []model.AnimCue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.AnimCue(nil), c.anims...)
}
