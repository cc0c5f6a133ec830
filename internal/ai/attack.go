package ai

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/geo"
	"github.com/udisondev/warbrain/internal/model"
)

var up = model.NewVec3(0, 1, 0)

// AttackAttempt is the outcome of one ranged attack. Not persisted.
type AttackAttempt struct {
	Origin    model.Vec3 // eye position the ray starts from
	BaseDir   model.Vec3 // straight at the target
	Direction model.Vec3 // after accuracy deviation
	Accurate  bool       // accuracy roll succeeded

	// Hit is what the ray struck first; nil when it struck nothing or a static obstacle.
	Hit         model.Locatable
	HitDistance float64
	Damage      float64 // damage applied to the target, 0 on miss
}

// HitTarget reports whether damage was applied.
func (a AttackAttempt) HitTarget() bool {
	return a.Damage > 0
}

// AttackResolver executes the accuracy roll, the ray-based hit test and damage.
// Cooldown bookkeeping is the caller's: every attempt consumes the attack slot.
type AttackResolver struct {
	cfg    config.Attack
	caster geo.RayCaster
	rng    *rand.Rand
	cues   CueSink
}

// NewAttackResolver creates resolver. Nil caster makes every shot a miss.
func NewAttackResolver(cfg config.Attack, caster geo.RayCaster, rng *rand.Rand, cues CueSink) *AttackResolver {
	if cues == nil {
		cues = nopCues{}
	}
	return &AttackResolver{
		cfg:    cfg,
		caster: caster,
		rng:    rng,
		cues:   cues,
	}
}

// Attempt fires one shot from pose at target with given accuracy.
// Damage is applied only if the first thing the ray hits is the target.
// Never fails: a nil target or empty ray is a miss.
func (r *AttackResolver) Attempt(pose model.Pose, target model.Target, accuracy float64) AttackAttempt {
	origin := pose.Position.Add(up.Scale(r.cfg.EyeHeight))

	out := AttackAttempt{Origin: origin}

	base := pose.Forward
	if target != nil {
		base = target.Position().Sub(pose.Position)
	}
	base = base.Normalize()
	if base.IsZero() {
		base = model.NewVec3(0, 0, 1)
	}
	out.BaseDir = base

	out.Accurate = r.rng.Float64() <= accuracy
	if out.Accurate {
		out.Direction = r.accurateDirection(base)
	} else {
		out.Direction = r.missDirection(base, accuracy)
	}

	r.cues.Cue(model.CueAttackFired, origin)
	r.cues.Cue(model.CueCasingEject, pose.Position)

	if r.caster == nil || target == nil {
		return out
	}

	hit, ok := r.caster.Raycast(geo.NewRay(origin, out.Direction, r.cfg.MaxRange))
	if !ok {
		return out
	}
	out.Hit = hit.Entity
	out.HitDistance = hit.Distance

	if hit.Entity != nil && hit.Entity == model.Locatable(target) {
		target.TakeDamage(r.cfg.Damage)
		out.Damage = r.cfg.Damage
	}

	if IsDebugEnabled() {
		slog.Debug("attack resolved",
			"accurate", out.Accurate,
			"hitTarget", out.HitTarget(),
			"distance", hit.Distance)
	}

	return out
}

// accurateDirection adds a narrow per-axis deviation.
func (r *AttackResolver) accurateDirection(base model.Vec3) model.Vec3 {
	s := r.cfg.AccurateSpread
	dev := model.NewVec3(r.uniform(-s, s), r.uniform(-s, s), r.uniform(-s, s))
	return base.Add(dev).Normalize()
}

// missDirection adds a wide deviation, at least MissMinDeviation sideways,
// shrunk by MissTightness·accuracy for marksman kinds.
func (r *AttackResolver) missDirection(base model.Vec3, accuracy float64) model.Vec3 {
	scale := 1 - r.cfg.MissTightness*accuracy

	side := up.Cross(base).Normalize()
	if side.IsZero() {
		side = model.NewVec3(1, 0, 0)
	}

	h := r.uniform(r.cfg.MissMinDeviation, r.cfg.MissHorizontal) * scale
	if r.rng.IntN(2) == 0 {
		h = -h
	}
	v := r.uniform(-r.cfg.MissVertical, r.cfg.MissVertical) * scale

	return base.Add(side.Scale(h)).Add(up.Scale(v)).Normalize()
}

func (r *AttackResolver) uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}
