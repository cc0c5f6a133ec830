package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
)

// Navigator is the external path-following capability.
// The engine only requests destinations and speeds; locomotion is not ours.
type Navigator interface {
	SetDestination(pos model.Vec3)
	Stop()
	SetSpeed(v float64)
	IsPathable() bool
	// Position reports where locomotion has moved the body.
	Position() model.Vec3
}

// PointSampler is optionally implemented by navigators that know which
// points are reachable.
type PointSampler interface {
	RandomPoint(center model.Vec3, radius float64, rng *rand.Rand) (model.Vec3, bool)
}

// MotionReporter is optionally implemented by navigators that can tell
// when locomotion has stopped, including stopping short of the destination.
type MotionReporter interface {
	Moving() bool
}

// MovementDirector translates behaviors into navigator requests.
// Every request is a logged no-op when no navigator is attached or the
// navigator is off its path.
type MovementDirector struct {
	nav  Navigator
	cfg  config.Movement
	rng  *rand.Rand
	name string

	spawn           model.Vec3
	patrolPoint     model.Vec3
	hasPatrolPoint  bool
	strafeAngle     float64
	speedMultiplier float64
}

// NewMovementDirector creates director around nav (may be nil).
func NewMovementDirector(name string, nav Navigator, cfg config.Movement, spawn model.Vec3, rng *rand.Rand) *MovementDirector {
	return &MovementDirector{
		nav:             nav,
		cfg:             cfg,
		rng:             rng,
		name:            name,
		spawn:           spawn,
		speedMultiplier: 1,
	}
}

// SetSpeedMultiplier scales every requested speed (enhanced mobility).
func (m *MovementDirector) SetSpeedMultiplier(f float64) {
	if f <= 0 {
		f = 1
	}
	m.speedMultiplier = f
}

// SpeedMultiplier returns current speed scale.
func (m *MovementDirector) SpeedMultiplier() float64 {
	return m.speedMultiplier
}

// PatrolPoint returns current patrol destination, if any.
func (m *MovementDirector) PatrolPoint() (model.Vec3, bool) {
	return m.patrolPoint, m.hasPatrolPoint
}

// StrafeAngle returns current orbit angle in radians.
func (m *MovementDirector) StrafeAngle() float64 {
	return m.strafeAngle
}

// Patrol wanders around spawn: picks a random reachable point within
// PatrolRadius and re-picks once within PatrolArrive of it, or as soon as
// the navigator reports it stopped short.
func (m *MovementDirector) Patrol(pos model.Vec3) {
	if !m.ready("patrol") {
		return
	}

	arrived := m.hasPatrolPoint && pos.Flat().Distance(m.patrolPoint.Flat()) <= m.cfg.PatrolArrive
	if !m.hasPatrolPoint || arrived || m.stalled() {
		m.patrolPoint = m.pickPatrolPoint()
		m.hasPatrolPoint = true

		if IsDebugEnabled() {
			slog.Debug("patrol point picked",
				"agent", m.name,
				"x", m.patrolPoint.X,
				"z", m.patrolPoint.Z)
		}
	}

	m.nav.SetSpeed(m.cfg.BaseSpeed * m.speedMultiplier)
	m.nav.SetDestination(m.patrolPoint)
}

// Chase moves straight to target at base speed.
func (m *MovementDirector) Chase(target model.Vec3) {
	if !m.ready("chase") {
		return
	}
	m.nav.SetSpeed(m.cfg.BaseSpeed * m.speedMultiplier)
	m.nav.SetDestination(target)
}

// Rush moves straight to target at rush speed.
func (m *MovementDirector) Rush(target model.Vec3) {
	if !m.ready("rush") {
		return
	}
	m.nav.SetSpeed(m.cfg.RushSpeed * m.speedMultiplier)
	m.nav.SetDestination(target)
}

// CircleStrafe advances the orbit angle by StrafeSpeed·dt and heads for
// target + StrafeRadius·(sin, 0, cos).
func (m *MovementDirector) CircleStrafe(target model.Vec3, dt time.Duration) {
	if !m.ready("circle strafe") {
		return
	}

	m.strafeAngle = math.Mod(m.strafeAngle+m.cfg.StrafeSpeed*dt.Seconds(), 2*math.Pi)
	offset := model.NewVec3(math.Sin(m.strafeAngle), 0, math.Cos(m.strafeAngle)).Scale(m.cfg.StrafeRadius)

	m.nav.SetSpeed(m.cfg.BaseSpeed * m.speedMultiplier)
	m.nav.SetDestination(target.Add(offset))
}

// Halt stops locomotion.
func (m *MovementDirector) Halt() {
	if !m.ready("halt") {
		return
	}
	m.nav.Stop()
}

// Reset forgets patrol point and orbit angle.
func (m *MovementDirector) Reset() {
	m.hasPatrolPoint = false
	m.patrolPoint = model.Vec3{}
	m.strafeAngle = 0
}

func (m *MovementDirector) ready(op string) bool {
	if m.nav == nil {
		if IsDebugEnabled() {
			slog.Debug("movement skipped: no navigator", "agent", m.name, "op", op)
		}
		return false
	}
	if !m.nav.IsPathable() {
		if IsDebugEnabled() {
			slog.Debug("movement skipped: not pathable", "agent", m.name, "op", op)
		}
		return false
	}
	return true
}

// stalled reports a patrol leg the navigator gave up on.
func (m *MovementDirector) stalled() bool {
	mr, ok := m.nav.(MotionReporter)
	return ok && m.hasPatrolPoint && !mr.Moving()
}

// pickPatrolPoint samples uniformly over the patrol disc around spawn.
func (m *MovementDirector) pickPatrolPoint() model.Vec3 {
	if sampler, ok := m.nav.(PointSampler); ok {
		if p, found := sampler.RandomPoint(m.spawn, m.cfg.PatrolRadius, m.rng); found {
			return p
		}
	}

	r := m.cfg.PatrolRadius * math.Sqrt(m.rng.Float64())
	theta := m.rng.Float64() * 2 * math.Pi
	return m.spawn.Add(model.NewVec3(r*math.Cos(theta), 0, r*math.Sin(theta)))
}
