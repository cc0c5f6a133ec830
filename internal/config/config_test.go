package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadArena_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadArena(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultArena().TickRate, cfg.TickRate)
	assert.Len(t, cfg.Spawns, 2)
}

func TestDefaultArena_Valid(t *testing.T) {
	require.NoError(t, DefaultArena().Validate())
}

func TestLoadArena_OverridesAndTuning(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
seed: 42
tick_rate: 30
duration: 90s
target:
  name: bot
  position: [1, 0, 2]
  health: 300
  half_width: 0.4
  height: 1.8
spawns:
  - kind: warden
    name: w1
    position: [10, 0, 10]
    activation_delay: 1.5s
    tuning:
      attack:
        damage: 99
      rush:
        duration: 4s
`)

	cfg, err := LoadArena(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, 90*time.Second, cfg.Duration)
	assert.Equal(t, 300.0, cfg.Target.Health)
	require.Len(t, cfg.Spawns, 1, "spawn list replaces defaults")

	spawn := cfg.Spawns[0]
	assert.Equal(t, 1500*time.Millisecond, spawn.ActivationDelay)
	assert.Equal(t, 10.0, spawn.Position.Vec3().X)

	agent, err := spawn.Resolve()
	require.NoError(t, err)
	assert.Equal(t, KindWarden, agent.Kind)
	assert.Equal(t, 99.0, agent.Attack.Damage, "override applied")
	assert.Equal(t, 4*time.Second, agent.Rush.Duration, "override applied")
	assert.Equal(t, RushTimed, agent.Rush.Mode, "preset kept for untouched fields")
	assert.True(t, agent.CircleStrafe, "preset kept for untouched fields")
}

func TestLoadArena_InvalidSpawn(t *testing.T) {
	path := writeConfig(t, `
spawns:
  - kind: dragon
`)

	_, err := LoadArena(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestLoadArena_BadYAML(t *testing.T) {
	path := writeConfig(t, "tick_rate: [oops")
	_, err := LoadArena(path)
	assert.Error(t, err)
}

func TestArena_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Arena)
	}{
		{"zero tick rate", func(a *Arena) { a.TickRate = 0 }},
		{"bad log level", func(a *Arena) { a.LogLevel = "loud" }},
		{"dead target", func(a *Arena) { a.Target.Health = 0 }},
		{"negative duration", func(a *Arena) { a.Duration = -time.Second }},
		{"retaliation without interval", func(a *Arena) { a.Retaliation.Interval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultArena()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestArena_TickInterval(t *testing.T) {
	cfg := DefaultArena()
	cfg.TickRate = 20
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())

	cfg.TickRate = 0
	assert.Equal(t, time.Duration(0), cfg.TickInterval())
}

func TestSpawn_ResolveRejectsInvalidOverride(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("attack:\n  accuracy: 1.5\n"), &node))

	// Unmarshal into a Node yields a document node; Decode handles it
	s := Spawn{Kind: KindGrunt, Tuning: node}
	_, err := s.Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadArena_ShippedScenario(t *testing.T) {
	cfg, err := LoadArena(filepath.Join("..", "..", "configs", "arena.yaml"))
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Len(t, cfg.Spawns, 5)
	assert.Len(t, cfg.Obstacles, 2)

	overlord, err := cfg.Spawns[4].Resolve()
	require.NoError(t, err)
	assert.Equal(t, KindOverlord, overlord.Kind)
	assert.Equal(t, 900.0, overlord.MaxHealth)
	assert.Equal(t, 0.5, overlord.Rush.Chance)
	assert.Equal(t, RushTimed, overlord.Rush.Mode, "unset fields keep the preset")
}
