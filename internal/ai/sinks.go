package ai

import "github.com/udisondev/warbrain/internal/model"

// Animator receives semantic animation cues. The engine never inspects
// concrete animation state.
type Animator interface {
	Trigger(cue model.AnimCue)
}

// CueSink dispatches audio/VFX cues. Implementations must not block the tick.
type CueSink interface {
	Cue(cue model.Cue, at model.Vec3)
}

// DeathHandler is notified exactly once when an agent dies.
// Injected per agent by the composition root (score, removal, corpse).
type DeathHandler interface {
	OnDeath(a *Agent)
}

// DeathHandlerFunc adapts a function to DeathHandler.
type DeathHandlerFunc func(a *Agent)

// OnDeath implements DeathHandler.
func (f DeathHandlerFunc) OnDeath(a *Agent) {
	f(a)
}

type nopAnimator struct{}

func (nopAnimator) Trigger(model.AnimCue) {}

type nopCues struct{}

func (nopCues) Cue(model.Cue, model.Vec3) {}
