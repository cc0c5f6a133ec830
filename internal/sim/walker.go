package sim

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/warbrain/internal/geo"
	"github.com/udisondev/warbrain/internal/model"
)

const samplerAttempts = 16

// Walker is a straight-line movement agent: it heads for its destination at
// the requested speed and slides along obstacle faces on the ground plane.
// It implements ai.Navigator and ai.PointSampler.
//
// Thread-safe.
type Walker struct {
	id    string
	scene *geo.Scene

	mu       sync.Mutex
	pos      model.Vec3
	dest     model.Vec3
	moving   bool
	speed    float64
	pathable bool
	traveled float64
}

// NewWalker creates pathable walker at pos. Scene may be nil.
func NewWalker(id string, pos model.Vec3, scene *geo.Scene) *Walker {
	return &Walker{
		id:       id,
		scene:    scene,
		pos:      pos,
		pathable: true,
	}
}

// ID implements ai.Controller.
func (w *Walker) ID() string {
	return w.id
}

// SetDestination starts moving toward pos.
func (w *Walker) SetDestination(pos model.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dest = pos
	w.moving = true
}

// Stop halts movement.
func (w *Walker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moving = false
}

// SetSpeed sets speed in units per second.
func (w *Walker) SetSpeed(v float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.speed = v
}

// IsPathable reports whether the walker accepts movement requests.
func (w *Walker) IsPathable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pathable
}

// SetPathable toggles IsPathable.
func (w *Walker) SetPathable(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pathable = v
	if !v {
		w.moving = false
	}
}

// Position returns current position.
func (w *Walker) Position() model.Vec3 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pos
}

// Moving reports whether a destination is set and not reached.
func (w *Walker) Moving() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.moving
}

// Traveled returns total distance covered.
func (w *Walker) Traveled() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.traveled
}

// RandomPoint samples the disc around center for a point the walker can
// reach in a straight line from where it stands.
func (w *Walker) RandomPoint(center model.Vec3, radius float64, rng *rand.Rand) (model.Vec3, bool) {
	from := w.Position()

	for range samplerAttempts {
		r := radius * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		p := center.Add(model.NewVec3(r*math.Cos(theta), 0, r*math.Sin(theta)))
		if w.scene == nil || (!w.scene.Blocked(p) && w.scene.CanSee(from, p)) {
			return p, true
		}
	}
	return model.Vec3{}, false
}

// Init implements ai.Controller.
func (w *Walker) Init() {}

// Update advances toward destination by speed·dt.
func (w *Walker) Update(dt time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.moving || !w.pathable || w.speed <= 0 {
		return
	}

	to := w.dest.Sub(w.pos)
	dist := to.Len()
	step := w.speed * dt.Seconds()
	if dist <= step {
		w.moveTo(w.dest)
		w.moving = false
		return
	}

	delta := to.Scale(step / dist)
	for _, try := range []model.Vec3{delta, {X: delta.X}, {Z: delta.Z}} {
		next := w.pos.Add(try)
		if try.IsZero() || w.blocked(next) {
			continue
		}
		w.moveTo(next)
		return
	}

	// Wedged in a corner
	w.moving = false
}

// Shutdown implements ai.Controller.
func (w *Walker) Shutdown() {
	w.Stop()
}

func (w *Walker) moveTo(p model.Vec3) {
	w.traveled += w.pos.Distance(p)
	w.pos = p
}

func (w *Walker) blocked(p model.Vec3) bool {
	return w.scene != nil && w.scene.Blocked(p)
}
