package sim

import (
	"log/slog"
	"sync"

	"github.com/udisondev/warbrain/internal/ai"
	"github.com/udisondev/warbrain/internal/model"
)

// LogSink stands in for the animation and audio/VFX layers of one agent:
// it counts cues and logs them at debug level.
type LogSink struct {
	agent string

	mu    sync.Mutex
	cues  map[model.Cue]int
	anims map[model.AnimCue]int
}

// NewLogSink creates sink for named agent.
func NewLogSink(agent string) *LogSink {
	return &LogSink{
		agent: agent,
		cues:  make(map[model.Cue]int),
		anims: make(map[model.AnimCue]int),
	}
}

// Cue implements ai.CueSink.
func (s *LogSink) Cue(cue model.Cue, at model.Vec3) {
	s.mu.Lock()
	s.cues[cue]++
	s.mu.Unlock()

	if ai.IsDebugEnabled() {
		slog.Debug("cue", "agent", s.agent, "cue", cue, "x", at.X, "y", at.Y, "z", at.Z)
	}
}

// Trigger implements ai.Animator.
func (s *LogSink) Trigger(cue model.AnimCue) {
	s.mu.Lock()
	s.anims[cue]++
	s.mu.Unlock()

	if ai.IsDebugEnabled() {
		slog.Debug("animation", "agent", s.agent, "anim", cue)
	}
}

// Count returns how many times cue was emitted.
func (s *LogSink) Count(cue model.Cue) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cues[cue]
}

// AnimCount returns how many times animation cue was triggered.
func (s *LogSink) AnimCount(cue model.AnimCue) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anims[cue]
}
