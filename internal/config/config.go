package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/warbrain/internal/model"
)

// Vec is a point written as [x, y, z] in YAML.
type Vec [3]float64

// Vec3 converts to model.Vec3.
func (v Vec) Vec3() model.Vec3 {
	return model.NewVec3(v[0], v[1], v[2])
}

// Box is a static obstacle given by two corners.
type Box struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// Target describes the training target agents hunt.
type Target struct {
	Name      string  `yaml:"name"`
	Position  Vec     `yaml:"position"`
	Health    float64 `yaml:"health"`
	HalfWidth float64 `yaml:"half_width"`
	Height    float64 `yaml:"height"`

	// Waypoints the target walks through in a loop at Speed. Empty = stationary.
	Waypoints []Vec   `yaml:"waypoints"`
	Speed     float64 `yaml:"speed"`
}

// Retaliation makes the target shoot back at the nearest active agent.
// Zero Damage disables it.
type Retaliation struct {
	Damage   float64       `yaml:"damage"`
	Interval time.Duration `yaml:"interval"`
	Range    float64       `yaml:"range"`
}

// Spawn places one agent of a preset kind.
// Tuning holds a partial Agent mapping applied on top of the preset.
type Spawn struct {
	Kind            string        `yaml:"kind"`
	Name            string        `yaml:"name"`
	Position        Vec           `yaml:"position"`
	ActivationDelay time.Duration `yaml:"activation_delay"`
	Tuning          yaml.Node     `yaml:"tuning"`
}

// Resolve returns preset tuning for the spawn kind with overrides applied.
func (s Spawn) Resolve() (Agent, error) {
	agent, err := Preset(s.Kind)
	if err != nil {
		return Agent{}, err
	}

	if !s.Tuning.IsZero() {
		if err := s.Tuning.Decode(&agent); err != nil {
			return Agent{}, fmt.Errorf("decoding tuning for %s: %w", s.Kind, err)
		}
		// Kind always comes from the spawn, not from the override
		agent.Kind = s.Kind
	}

	if err := agent.Validate(); err != nil {
		return Agent{}, err
	}
	return agent, nil
}

// Arena holds all configuration for a headless combat simulation.
type Arena struct {
	LogLevel string `yaml:"log_level"`
	Seed     uint64 `yaml:"seed"`

	// Simulation clock
	TickRate int           `yaml:"tick_rate"` // ticks per second
	Duration time.Duration `yaml:"duration"`  // simulated time; 0 = until interrupted
	RealTime bool          `yaml:"real_time"` // pace ticks on the wall clock

	// Collision body of every agent
	BodyHalfWidth float64 `yaml:"body_half_width"`
	BodyHeight    float64 `yaml:"body_height"`

	Target      Target      `yaml:"target"`
	Retaliation Retaliation `yaml:"retaliation"`
	Obstacles   []Box       `yaml:"obstacles"`
	Spawns      []Spawn     `yaml:"spawns"`
}

// TickInterval returns simulated time per tick.
func (a Arena) TickInterval() time.Duration {
	if a.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(a.TickRate)
}

// DefaultArena returns Arena config with a small two-agent scenario.
func DefaultArena() Arena {
	return Arena{
		LogLevel:      "info",
		Seed:          1,
		TickRate:      20,
		Duration:      60 * time.Second,
		BodyHalfWidth: 0.5,
		BodyHeight:    2,
		Target: Target{
			Name:      "dummy",
			Position:  Vec{0, 0, 0},
			Health:    1000,
			HalfWidth: 0.5,
			Height:    2,
			Waypoints: []Vec{{0, 0, 0}, {12, 0, 0}, {12, 0, 12}, {0, 0, 12}},
			Speed:     1.5,
		},
		Retaliation: Retaliation{
			Damage:   12,
			Interval: time.Second,
			Range:    30,
		},
		Obstacles: []Box{
			{Min: Vec{4, 0, 20}, Max: Vec{8, 3, 21}},
		},
		Spawns: []Spawn{
			{Kind: KindGrunt, Name: "grunt-1", Position: Vec{-20, 0, 0}},
			{Kind: KindWarden, Name: "warden", Position: Vec{20, 0, 25}, ActivationDelay: 3 * time.Second},
		},
	}
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks scenario values and resolves every spawn.
func (a Arena) Validate() error {
	var errs []error

	switch a.LogLevel {
	case "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalid, a.LogLevel))
	}
	if a.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick_rate must be > 0, got %d", ErrInvalid, a.TickRate))
	}
	if a.Duration < 0 {
		errs = append(errs, fmt.Errorf("%w: duration must be >= 0, got %v", ErrInvalid, a.Duration))
	}
	if a.Target.Health <= 0 {
		errs = append(errs, fmt.Errorf("%w: target.health must be > 0, got %v", ErrInvalid, a.Target.Health))
	}
	if a.Retaliation.Damage > 0 && a.Retaliation.Interval <= 0 {
		errs = append(errs, fmt.Errorf("%w: retaliation.interval must be > 0", ErrInvalid))
	}

	for i, s := range a.Spawns {
		if _, err := s.Resolve(); err != nil {
			errs = append(errs, fmt.Errorf("spawn %d (%s): %w", i, s.Name, err))
		}
	}

	return errors.Join(errs...)
}
