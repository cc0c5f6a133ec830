package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/model"
	"github.com/udisondev/warbrain/internal/testutil"
)

// recordingController logs lifecycle calls into a shared journal.
type recordingController struct {
	id      string
	journal *[]string
	mu      *sync.Mutex
	updates int
	total   time.Duration
}

func (c *recordingController) ID() string { return c.id }

func (c *recordingController) Init() { c.record("init") }

func (c *recordingController) Update(dt time.Duration) {
	c.updates++
	c.total += dt
	c.record("update")
}

func (c *recordingController) Shutdown() { c.record("shutdown") }

func (c *recordingController) record(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.journal = append(*c.journal, c.id+":"+op)
}

func newRecorders(ids ...string) ([]*recordingController, *[]string) {
	journal := &[]string{}
	mu := &sync.Mutex{}
	out := make([]*recordingController, 0, len(ids))
	for _, id := range ids {
		out = append(out, &recordingController{id: id, journal: journal, mu: mu})
	}
	return out, journal
}

func TestTickManager_RegisterUnregister(t *testing.T) {
	mgr := NewTickManager(tick)
	recs, journal := newRecorders("a")

	mgr.Register(recs[0])
	if mgr.Count() != 1 {
		t.Fatalf("Count() after Register() = %d, want 1", mgr.Count())
	}

	c, err := mgr.GetController("a")
	if err != nil {
		t.Fatalf("GetController() error = %v", err)
	}
	if c.ID() != "a" {
		t.Errorf("GetController().ID() = %q, want %q", c.ID(), "a")
	}

	mgr.Unregister("a")
	if mgr.Count() != 0 {
		t.Errorf("Count() after Unregister() = %d, want 0", mgr.Count())
	}
	if _, err := mgr.GetController("a"); err == nil {
		t.Error("GetController() after Unregister() should fail")
	}

	want := []string{"a:init", "a:shutdown"}
	if len(*journal) != len(want) || (*journal)[0] != want[0] || (*journal)[1] != want[1] {
		t.Errorf("journal = %v, want %v", *journal, want)
	}

	// Unknown IDs are ignored
	mgr.Unregister("missing")
}

func TestTickManager_DuplicateRegistration(t *testing.T) {
	mgr := NewTickManager(tick)
	recs, journal := newRecorders("a")

	mgr.Register(recs[0])
	mgr.Register(recs[0])

	if mgr.Count() != 1 {
		t.Errorf("Count() = %d, want 1", mgr.Count())
	}
	if len(*journal) != 1 {
		t.Errorf("Init called %d times, want 1", len(*journal))
	}
}

func TestTickManager_StepOrder(t *testing.T) {
	mgr := NewTickManager(tick)
	recs, journal := newRecorders("c", "a", "b")
	for _, r := range recs {
		mgr.Register(r)
	}
	*journal = (*journal)[:0]

	mgr.Step(tick)
	mgr.Step(tick)

	want := []string{"c:update", "a:update", "b:update", "c:update", "a:update", "b:update"}
	if len(*journal) != len(want) {
		t.Fatalf("journal = %v, want %v", *journal, want)
	}
	for i := range want {
		if (*journal)[i] != want[i] {
			t.Errorf("journal[%d] = %q, want %q", i, (*journal)[i], want[i])
		}
	}

	if mgr.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", mgr.Frames())
	}
	for _, r := range recs {
		if r.total != 2*tick {
			t.Errorf("%s advanced %v, want %v", r.id, r.total, 2*tick)
		}
	}
}

func TestTickManager_StartStop(t *testing.T) {
	mgr := NewTickManager(5 * time.Millisecond)
	recs, _ := newRecorders("a")
	mgr.Register(recs[0])

	done := make(chan error, 1)
	go func() { done <- mgr.Start(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	mgr.Stop()
	mgr.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() after Stop() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after Stop()")
	}

	if mgr.Frames() == 0 {
		t.Error("no frames ticked")
	}
}

func TestTickManager_ContextCancel(t *testing.T) {
	mgr := NewTickManager(5 * time.Millisecond)

	err := mgr.Start(testutil.ContextWithTimeout(t, 30*time.Millisecond))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Start() = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestTickManager_DrivesAgents(t *testing.T) {
	mgr := NewTickManager(tick)

	a, err := NewAgent(config.DefaultAgent(), Options{Name: "grunt"})
	if err != nil {
		t.Fatalf("NewAgent() error = %v", err)
	}
	mgr.Register(a)
	a.Activate(0)

	for range 20 {
		mgr.Step(tick)
	}

	if a.Now() != 20*tick {
		t.Errorf("agent clock = %v, want %v", a.Now(), 20*tick)
	}
	if a.State() != model.BehaviorPatrol {
		t.Errorf("State() = %v, want %v", a.State(), model.BehaviorPatrol)
	}

	mgr.Unregister(a.ID())
	if a.IsActive() {
		t.Error("agent still active after Unregister()")
	}
}
