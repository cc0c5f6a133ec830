package ai

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/geo"
	"github.com/udisondev/warbrain/internal/model"
)

// Options wires an agent to its collaborators. All fields are optional.
type Options struct {
	Name  string
	Spawn model.Vec3

	Navigator Navigator
	RayCaster geo.RayCaster
	Sight     SightChecker // used only when tuning requires line of sight
	Animator  Animator
	Cues      CueSink
	Death     DeathHandler

	// Rand drives attack, rush and patrol rolls. Nil = randomly seeded.
	Rand *rand.Rand
}

// Agent is a hostile combat agent: one parameterized type for every kind,
// composed from perception, aggression, phase, behavior, attack and
// movement modules chosen by its tuning.
//
// Not safe for concurrent use: the owning scheduler calls Update from a
// single goroutine. Timers are deadlines on the agent's own tick clock,
// so nothing fires after Deactivate or death.
type Agent struct {
	id   uuid.UUID
	name string
	cfg  config.Agent

	pose      model.Pose
	spawn     model.Vec3
	health    float64
	maxHealth float64
	dead      bool
	target    model.Target

	perceiver  Perceiver
	aggression *AggressionTracker
	phases     *PhaseController
	selector   *BehaviorSelector
	resolver   *AttackResolver
	mover      *MovementDirector

	anim  Animator
	cues  CueSink
	death DeathHandler

	// Tick clock and deadlines
	now               time.Duration
	active            bool
	activationPending bool
	activateAt        time.Duration
	attackLocked      bool
	attackLockedUntil time.Duration
	alertedUntil      time.Duration
	lastAnim          model.AnimCue
	enhancedMobility  bool
	perception        Perception
	lastAttempt       AttackAttempt
	attackCount       int
	lastAttackAt      time.Duration
}

// NewAgent creates an inactive agent at its spawn point with full health.
func NewAgent(cfg config.Agent, opts Options) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating agent %q: %w", opts.Name, err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	a := &Agent{
		id:        uuid.New(),
		name:      opts.Name,
		cfg:       cfg,
		spawn:     opts.Spawn,
		pose:      model.Pose{Position: opts.Spawn, Forward: model.NewVec3(0, 0, 1)},
		health:    cfg.MaxHealth,
		maxHealth: cfg.MaxHealth,
		anim:      opts.Animator,
		cues:      opts.Cues,
		death:     opts.Death,
	}
	if a.name == "" {
		a.name = cfg.Kind + "-" + a.id.String()[:8]
	}
	if a.anim == nil {
		a.anim = nopAnimator{}
	}
	if a.cues == nil {
		a.cues = nopCues{}
	}

	var sight SightChecker
	if cfg.Perception.RequireLineOfSight {
		sight = opts.Sight
	}

	a.perceiver = NewPerceiver(cfg.Perception.SightRange, cfg.Perception.AttackRange, cfg.Attack.EyeHeight, sight)
	a.aggression = NewAggressionTracker(cfg.Aggression)
	a.phases = NewPhaseController(cfg.Phases, cfg.Attack, a.health, a.maxHealth)
	a.selector = NewBehaviorSelector(cfg.CircleStrafe, NewRushPolicy(cfg.Rush, rng))
	a.resolver = NewAttackResolver(cfg.Attack, opts.RayCaster, rng, a.cues)
	a.mover = NewMovementDirector(a.name, opts.Navigator, cfg.Movement, opts.Spawn, rng)

	return a, nil
}

// ID returns unique agent identifier.
func (a *Agent) ID() string {
	return a.id.String()
}

// Name returns agent name.
func (a *Agent) Name() string {
	return a.name
}

// Kind returns tuning kind.
func (a *Agent) Kind() string {
	return a.cfg.Kind
}

// SetTarget sets (or clears, with nil) the perceived target.
func (a *Agent) SetTarget(t model.Target) {
	a.target = t
}

// Init prepares the agent for ticking. Activation is separate.
func (a *Agent) Init() {
	a.syncPose()

	if IsDebugEnabled() {
		slog.Debug("agent initialized",
			"agent", a.name,
			"kind", a.cfg.Kind,
			"id", a.id,
			"phase", a.phases.Phase())
	}
}

// Shutdown deactivates the agent and drops the target reference.
func (a *Agent) Shutdown() {
	a.Deactivate()
	a.target = nil

	if IsDebugEnabled() {
		slog.Debug("agent shut down", "agent", a.name)
	}
}

// Activate enables ticking after delay (immediately if delay <= 0).
// Dead agents stay dead.
func (a *Agent) Activate(delay time.Duration) {
	if a.dead {
		return
	}

	if delay <= 0 {
		a.activationPending = false
		a.active = true
		slog.Debug("agent activated", "agent", a.name)
		return
	}

	a.activationPending = true
	a.activateAt = a.now + delay
}

// Deactivate stops the agent within this call: clears the attack lock,
// cancels pending activation, alert and rush timers, calms aggression and
// stops movement.
func (a *Agent) Deactivate() {
	if a.dead {
		return
	}

	a.attackLocked = false
	a.attackLockedUntil = 0
	a.alertedUntil = 0
	a.activationPending = false
	a.selector.Reset()
	a.aggression.Reset()
	a.mover.Halt()
	a.mover.Reset()
	a.active = false
	a.lastAnim = ""

	if IsDebugEnabled() {
		slog.Debug("agent deactivated", "agent", a.name)
	}
}

// OnHitByPlayer raises aggression and opens the alert window.
func (a *Agent) OnHitByPlayer() {
	if a.dead {
		return
	}

	a.aggression.OnHit(a.cfg.Aggression.HitBonus)
	a.alertedUntil = a.now + a.cfg.AlertDuration
	a.anim.Trigger(model.AnimHitReaction)
	a.lastAnim = model.AnimHitReaction

	if IsDebugEnabled() {
		slog.Debug("agent hit",
			"agent", a.name,
			"aggression", a.aggression.Value(),
			"alertedUntil", a.alertedUntil)
	}
}

// TakeDamage reduces health (clamped at 0). Reaching 0 kills the agent
// exactly once; later calls are no-ops.
func (a *Agent) TakeDamage(amount float64) {
	if a.dead || amount <= 0 {
		return
	}

	a.health = max(0, a.health-amount)
	if a.health <= 0 {
		a.die()
		return
	}

	a.OnHitByPlayer()
}

// Update advances the agent by one tick of length dt.
//
// Order: clock → activation → deadline expiry → pose sync → perception →
// aggression → phase → behavior selection → movement or attack.
func (a *Agent) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	a.now += dt

	if a.dead {
		return
	}

	if a.activationPending && a.now >= a.activateAt {
		a.activationPending = false
		a.active = true
		slog.Debug("agent activated", "agent", a.name, "at", a.now)
	}
	if !a.active {
		return
	}

	if a.attackLocked && a.now >= a.attackLockedUntil {
		a.attackLocked = false
	}

	a.syncPose()

	p := a.perceiver.Perceive(a.pose.Position, a.target)
	a.perception = p

	a.aggression.Decay(dt)
	if a.cfg.Aggression.PassiveBuild && p.InSight && !p.InAttackRange {
		mult := 1.0
		if a.enhancedMobility {
			mult = a.cfg.EnhancedMobility.BuildMultiplier
		}
		a.aggression.Build(dt, mult)
	}

	a.recomputePhase()

	prev := a.selector.State()
	state := a.selector.Select(SelectorInput{
		Perception: p,
		Alerted:    a.Alerted(),
		Enraged:    a.aggression.IsEnraged(),
		Now:        a.now,
		Dt:         dt,
	})

	if state != prev && IsDebugEnabled() {
		slog.Debug("agent behavior changed",
			"agent", a.name,
			"from", prev,
			"to", state,
			"aggression", a.aggression.Value(),
			"distance", p.Distance)
	}

	a.act(state, p, dt)
}

func (a *Agent) recomputePhase() {
	phase, changed := a.phases.Recompute(a.health, a.maxHealth)
	if !changed {
		return
	}

	a.aggression.OnPhaseChange(a.cfg.Aggression.PhaseBonus)
	a.cues.Cue(model.CuePhaseChange, a.pose.Position)

	em := a.cfg.EnhancedMobility
	enhanced := em.Phase > 0 && int(phase) >= em.Phase
	if enhanced != a.enhancedMobility {
		a.enhancedMobility = enhanced
		if enhanced {
			a.mover.SetSpeedMultiplier(em.SpeedMultiplier)
		} else {
			a.mover.SetSpeedMultiplier(1)
		}
	}

	slog.Info("agent phase changed",
		"agent", a.name,
		"kind", a.cfg.Kind,
		"phase", phase,
		"timeBetweenAttacks", a.phases.TimeBetweenAttacks(),
		"accuracy", a.phases.Accuracy(),
		"enhancedMobility", a.enhancedMobility)
}

func (a *Agent) act(state model.BehaviorState, p Perception, dt time.Duration) {
	if state.IsPursuit() {
		a.faceTarget(p)
	}

	switch state {
	case model.BehaviorPatrol:
		a.mover.Patrol(a.pose.Position)
		a.setAnim(model.AnimWalk)

	case model.BehaviorChase:
		a.mover.Chase(p.TargetPos)
		a.setAnim(model.AnimWalk)

	case model.BehaviorCircleStrafe:
		a.mover.CircleStrafe(p.TargetPos, dt)
		a.setAnim(model.AnimWalk)

	case model.BehaviorRush:
		a.mover.Rush(p.TargetPos)
		a.setAnim(model.AnimRush)

	case model.BehaviorAttack:
		a.mover.Halt()
		a.faceTarget(p)
		if a.attackLocked {
			a.setAnim(model.AnimIdle)
			return
		}
		a.attack()
	}
}

func (a *Agent) attack() {
	a.anim.Trigger(model.AnimAttack)
	a.lastAnim = model.AnimAttack

	attempt := a.resolver.Attempt(a.pose, a.target, a.phases.Accuracy())

	a.attackLocked = true
	a.attackLockedUntil = a.now + a.phases.TimeBetweenAttacks()
	a.lastAttempt = attempt
	a.attackCount++
	a.lastAttackAt = a.now

	if IsDebugEnabled() {
		slog.Debug("agent attacked",
			"agent", a.name,
			"accurate", attempt.Accurate,
			"damage", attempt.Damage,
			"lockedUntil", a.attackLockedUntil)
	}
}

func (a *Agent) die() {
	a.dead = true
	a.active = false
	a.activationPending = false
	a.attackLocked = false
	a.alertedUntil = 0
	a.mover.Halt()

	a.anim.Trigger(model.AnimDeath)
	a.lastAnim = model.AnimDeath

	slog.Info("agent died",
		"agent", a.name,
		"kind", a.cfg.Kind,
		"state", a.selector.State())

	if a.death != nil {
		a.death.OnDeath(a)
	}
}

func (a *Agent) syncPose() {
	if a.mover.nav != nil {
		a.pose.Position = a.mover.nav.Position()
	}
}

func (a *Agent) faceTarget(p Perception) {
	if p.HasTarget {
		a.pose = a.pose.FacingTowards(p.TargetPos)
	}
}

// setAnim triggers cue only when it differs from the last one.
func (a *Agent) setAnim(cue model.AnimCue) {
	if a.lastAnim == cue {
		return
	}
	a.lastAnim = cue
	a.anim.Trigger(cue)
}
