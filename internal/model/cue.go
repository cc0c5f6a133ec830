package model

// AnimCue is an opaque semantic animation trigger.
// The animation collaborator maps it to concrete clips.
type AnimCue string

const (
	AnimWalk        AnimCue = "walk"
	AnimAttack      AnimCue = "attack"
	AnimRush        AnimCue = "rush"
	AnimIdle        AnimCue = "idle"
	AnimHitReaction AnimCue = "hit-reaction"
	AnimDeath       AnimCue = "death"
)

// Cue is a fire-and-forget audio/VFX event.
type Cue string

const (
	CueAttackFired Cue = "attack-fired"
	CueCasingEject Cue = "casing-eject"
	CuePhaseChange Cue = "phase-change"
)
