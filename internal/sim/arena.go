package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/warbrain/internal/ai"
	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/geo"
	"github.com/udisondev/warbrain/internal/model"
)

// Summary is the outcome of a simulation run.
type Summary struct {
	Elapsed time.Duration
	Frames  uint64

	Shots        int
	Hits         int
	DamageDealt  float64
	PhaseChanges int

	AgentDeaths      int
	RetaliationShots int

	TargetHealth float64
	TargetDead   bool

	Agents []ai.Snapshot
}

// HitRate returns hits per shot, 0 without shots.
func (s Summary) HitRate() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

// entry is one spawned agent with its collaborators.
type entry struct {
	agent  *ai.Agent
	walker *Walker
	sink   *LogSink
	seen   int // attacks already counted
}

// Arena is the composition root of a headless simulation: a collision
// scene, a training target, agents with straight-line walkers, and a
// referee that counts shots and shoots back.
//
// Controllers tick in registration order: target, walkers, agents, referee.
type Arena struct {
	cfg     config.Arena
	scene   *geo.Scene
	target  *TrainingTarget
	manager *ai.TickManager
	entries []*entry

	now         time.Duration
	nextShot    time.Duration
	done        bool
	deaths      int
	retaliation int
	shots       int
	hits        int
	damage      float64

	progressMu sync.Mutex
	progress   Summary
}

// NewArena builds arena from config. Agents are registered and activated
// with their spawn delays; nothing ticks until Step or Run.
func NewArena(cfg config.Arena) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}

	a := &Arena{
		cfg:     cfg,
		scene:   geo.NewScene(),
		target:  NewTrainingTarget(cfg.Target),
		manager: ai.NewTickManager(cfg.TickInterval()),
	}

	for _, b := range cfg.Obstacles {
		a.scene.AddObstacle(geo.NewBox(b.Min.Vec3(), b.Max.Vec3()))
	}
	a.scene.AddActor(a.target, cfg.Target.HalfWidth, cfg.Target.Height)

	for i, spawn := range cfg.Spawns {
		tuning, err := spawn.Resolve()
		if err != nil {
			return nil, fmt.Errorf("resolving spawn %d: %w", i, err)
		}

		name := spawn.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", spawn.Kind, i+1)
		}

		walker := NewWalker(name+"/walker", spawn.Position.Vec3(), a.scene)
		sink := NewLogSink(name)

		agent, err := ai.NewAgent(tuning, ai.Options{
			Name:      name,
			Spawn:     spawn.Position.Vec3(),
			Navigator: walker,
			RayCaster: a.scene,
			Sight:     a.scene,
			Animator:  sink,
			Cues:      sink,
			Death:     ai.DeathHandlerFunc(a.onAgentDeath),
			Rand:      rand.New(rand.NewPCG(cfg.Seed, uint64(i)+1)),
		})
		if err != nil {
			return nil, fmt.Errorf("creating agent %s: %w", name, err)
		}
		agent.SetTarget(a.target)
		a.scene.AddActor(agent, cfg.BodyHalfWidth, cfg.BodyHeight)

		a.entries = append(a.entries, &entry{agent: agent, walker: walker, sink: sink})
	}

	a.target.OnDeath(func() { a.done = true })

	a.manager.Register(a.target)
	for _, e := range a.entries {
		a.manager.Register(e.walker)
	}
	for i, e := range a.entries {
		a.manager.Register(e.agent)
		e.agent.Activate(cfg.Spawns[i].ActivationDelay)
	}
	a.manager.Register(referee{a})

	slog.Info("arena ready",
		"agents", len(a.entries),
		"obstacles", a.scene.ObstacleCount(),
		"seed", cfg.Seed,
		"tickRate", cfg.TickRate)

	return a, nil
}

// Target returns the training target.
func (a *Arena) Target() *TrainingTarget {
	return a.target
}

// Agents returns spawned agents in spawn order, dead ones included.
func (a *Arena) Agents() []*ai.Agent {
	out := make([]*ai.Agent, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.agent)
	}
	return out
}

// Walker returns navigator of named agent, nil if unknown.
func (a *Arena) Walker(agent string) *Walker {
	for _, e := range a.entries {
		if e.agent.Name() == agent {
			return e.walker
		}
	}
	return nil
}

// Sink returns cue sink of named agent, nil if unknown.
func (a *Arena) Sink(agent string) *LogSink {
	for _, e := range a.entries {
		if e.agent.Name() == agent {
			return e.sink
		}
	}
	return nil
}

// Scene returns the collision scene.
func (a *Arena) Scene() *geo.Scene {
	return a.scene
}

// Now returns simulated time.
func (a *Arena) Now() time.Duration {
	return a.now
}

// Done reports whether the run is over: target dead, every agent dead,
// or the configured duration elapsed.
func (a *Arena) Done() bool {
	return a.done
}

// Step advances the whole arena by one tick.
func (a *Arena) Step() {
	a.manager.Step(a.manager.Interval())
}

// Run ticks until Done or ctx is canceled. With RealTime set, frames are
// paced on the wall clock; otherwise they run back to back.
func (a *Arena) Run(ctx context.Context) (Summary, error) {
	slog.Info("arena running", "realTime", a.cfg.RealTime, "duration", a.cfg.Duration)

	if a.cfg.RealTime {
		if err := a.manager.Start(ctx); err != nil {
			return a.Summary(), err
		}
		return a.Summary(), nil
	}

	for !a.done {
		if err := ctx.Err(); err != nil {
			return a.Summary(), err
		}
		a.Step()
	}
	return a.Summary(), nil
}

// Progress returns counters as of the last completed frame.
// Safe to call from any goroutine while Run is in progress.
func (a *Arena) Progress() Summary {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()
	return a.progress
}

// Summary returns counters and per-agent snapshots.
// Call from the ticking goroutine or after Run returns.
func (a *Arena) Summary() Summary {
	s := a.counters()
	for _, e := range a.entries {
		s.Agents = append(s.Agents, e.agent.Snapshot())
	}
	return s
}

func (a *Arena) counters() Summary {
	s := Summary{
		Elapsed:          a.now,
		Frames:           a.manager.Frames(),
		Shots:            a.shots,
		Hits:             a.hits,
		DamageDealt:      a.damage,
		AgentDeaths:      a.deaths,
		RetaliationShots: a.retaliation,
		TargetHealth:     a.target.Health(),
		TargetDead:       a.target.IsDead(),
	}
	for _, e := range a.entries {
		s.PhaseChanges += e.agent.PhaseTransitions()
	}
	return s
}

func (a *Arena) onAgentDeath(agent *ai.Agent) {
	a.deaths++
	a.scene.RemoveActor(agent)
	a.manager.Unregister(agent.ID())

	slog.Info("agent removed from arena",
		"agent", agent.Name(),
		"alive", len(a.entries)-a.deaths)

	if a.deaths == len(a.entries) {
		a.done = true
	}
}

// referee runs last in every frame: it tallies attacks, lets the target
// shoot back and ends the run.
type referee struct {
	arena *Arena
}

func (r referee) ID() string { return "referee" }

func (r referee) Init() {}

func (r referee) Shutdown() {}

func (r referee) Update(dt time.Duration) {
	a := r.arena
	a.now += dt

	for _, e := range a.entries {
		n := e.agent.AttackCount()
		if n == e.seen {
			continue
		}
		e.seen = n
		a.shots++
		if last, ok := e.agent.LastAttack(); ok && last.HitTarget() {
			a.hits++
			a.damage += last.Damage
		}
	}

	a.retaliate()

	if a.cfg.Duration > 0 && a.now >= a.cfg.Duration {
		a.done = true
	}

	a.progressMu.Lock()
	a.progress = a.counters()
	a.progressMu.Unlock()

	if a.done {
		a.manager.Stop()
	}
}

// retaliate fires the target's weapon at the nearest visible active agent.
func (a *Arena) retaliate() {
	rt := a.cfg.Retaliation
	if rt.Damage <= 0 || a.target.IsDead() || a.now < a.nextShot {
		return
	}

	eye := model.NewVec3(0, a.cfg.Target.Height*0.8, 0)
	from := a.target.Position().Add(eye)

	var victim *ai.Agent
	best := rt.Range
	for _, e := range a.entries {
		ag := e.agent
		if ag.IsDead() || !ag.IsActive() {
			continue
		}
		d := ag.Position().Distance(a.target.Position())
		if d > best || !a.scene.CanSee(from, ag.Position().Add(eye)) {
			continue
		}
		victim, best = ag, d
	}
	if victim == nil {
		return
	}

	a.nextShot = a.now + rt.Interval
	a.retaliation++
	victim.TakeDamage(rt.Damage)

	if ai.IsDebugEnabled() {
		slog.Debug("target retaliated",
			"victim", victim.Name(),
			"distance", best,
			"victimHealth", victim.Health())
	}
}
