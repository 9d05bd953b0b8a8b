package modal

import (
	"errors"
	"testing"
)

func testDefinition() StackDefinition {
	return NewDefinition(map[Name]Config{
		"alert":   {Title: "Alert", Width: 48},
		"confirm": {Title: "Confirm", Width: 52},
		"prompt":  {Title: "Prompt", Width: 52},
	})
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := &Store{}
	s.Init(func() State { return State{Definition: testDefinition()} })
	return s
}

func mustOpen(t *testing.T, s *Store, name Name, params Params) *Instance {
	t.Helper()
	inst, err := s.Open(name, params)
	if err != nil {
		t.Fatalf("Open(%q) error: %v", name, err)
	}
	return inst
}

func TestInitPreconditions(t *testing.T) {
	t.Run("operation before init panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic from Open before Init")
			}
		}()
		s := &Store{}
		_, _ = s.Open("alert", nil)
	})

	t.Run("double init panics", func(t *testing.T) {
		s := newTestStore(t)
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic from second Init")
			}
		}()
		s.Init(func() State { return State{Definition: testDefinition()} })
	})
}

func TestStackLengthTracksOpensMinusCloses(t *testing.T) {
	s := newTestStore(t)
	a := mustOpen(t, s, "alert", nil)
	b := mustOpen(t, s, "confirm", nil)
	c := mustOpen(t, s, "prompt", nil)
	if got := s.Snapshot().Depth(); got != 3 {
		t.Fatalf("depth = %d, want 3", got)
	}
	s.Close(b.Hash)
	snap := s.Snapshot()
	if snap.Depth() != 2 {
		t.Fatalf("depth after close = %d, want 2", snap.Depth())
	}
	if snap.CurrentModal != c {
		t.Fatalf("current = %v, want topmost prompt", snap.CurrentModal)
	}
	if snap.Stack[0] != a || snap.Stack[1] != c {
		t.Fatalf("remaining stack order changed: %v", snap.Stack)
	}
	s.Close(c.Hash)
	s.Close(a.Hash)
	snap = s.Snapshot()
	if snap.Depth() != 0 || snap.CurrentModal != nil {
		t.Fatalf("expected empty stack with no current modal, got depth=%d current=%v", snap.Depth(), snap.CurrentModal)
	}
}

func TestOpenUnknownNameDoesNotMutate(t *testing.T) {
	s := newTestStore(t)
	notifications := 0
	s.Subscribe(func(snap *Snapshot, err error) { notifications++ })

	inst, err := s.Open("alrt", nil)
	if inst != nil {
		t.Fatalf("expected nil instance for unknown name")
	}
	var unknown *UnknownModalError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownModalError", err)
	}
	if unknown.Name != "alrt" {
		t.Fatalf("error name = %q, want alrt", unknown.Name)
	}
	if unknown.Suggestion != "alert" {
		t.Fatalf("suggestion = %q, want alert", unknown.Suggestion)
	}
	if notifications != 0 {
		t.Fatalf("unknown open notified %d times, want 0", notifications)
	}
	if s.Snapshot().Depth() != 0 {
		t.Fatalf("stack mutated by failed open")
	}
}

func TestUnknownNameWithoutCloseMatchHasNoSuggestion(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Open("dashboard", nil)
	var unknown *UnknownModalError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownModalError", err)
	}
	if unknown.Suggestion != "" {
		t.Fatalf("suggestion = %q, want none", unknown.Suggestion)
	}
}

func TestCloseUnknownHashIsSilentNoop(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, "alert", nil)
	notifications := 0
	s.Subscribe(func(snap *Snapshot, err error) { notifications++ })

	s.Close("no-such-hash")
	if notifications != 0 {
		t.Fatalf("close of unknown hash notified %d times, want 0", notifications)
	}
	if s.Snapshot().Depth() != 1 {
		t.Fatalf("stack mutated by unknown close")
	}
}

func TestCloseRunsActionsInRegistrationOrderThenClearsListeners(t *testing.T) {
	s := newTestStore(t)
	inst := mustOpen(t, s, "confirm", nil)

	var order []string
	s.AddClosingAction(inst.Hash, func() { order = append(order, "first") })
	s.AddClosingAction(inst.Hash, func() { order = append(order, "second") })
	if _, err := s.RegisterListener(inst.Hash, "submit", func(any) {}); err != nil {
		t.Fatalf("register listener: %v", err)
	}

	s.Close(inst.Hash)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("closing actions ran as %v, want [first second]", order)
	}
	if n := s.Emit(inst.Hash, "submit", nil); n != 0 {
		t.Fatalf("listeners survived close, %d handlers ran", n)
	}

	// Re-closing must not re-run the discarded actions.
	s.Close(inst.Hash)
	if len(order) != 2 {
		t.Fatalf("closing actions re-ran on idempotent close: %v", order)
	}
}

func TestCloseAllRunsTopmostFirstAndNotifiesOnce(t *testing.T) {
	s := newTestStore(t)
	bottom := mustOpen(t, s, "alert", nil)
	middle := mustOpen(t, s, "confirm", nil)
	top := mustOpen(t, s, "prompt", nil)

	var closed []string
	for _, inst := range []*Instance{bottom, middle, top} {
		hash := inst.Hash
		s.AddClosingAction(hash, func() { closed = append(closed, hash) })
	}

	notifications := 0
	var last *Snapshot
	s.Subscribe(func(snap *Snapshot, err error) {
		notifications++
		last = snap
	})

	s.CloseAll()
	want := []string{top.Hash, middle.Hash, bottom.Hash}
	if len(closed) != 3 {
		t.Fatalf("closing actions ran %d times, want 3", len(closed))
	}
	for i := range want {
		if closed[i] != want[i] {
			t.Fatalf("closing order = %v, want %v", closed, want)
		}
	}
	if notifications != 1 {
		t.Fatalf("CloseAll notified %d times, want exactly 1", notifications)
	}
	if last.Depth() != 0 || last.CurrentModal != nil {
		t.Fatalf("final snapshot not empty: depth=%d", last.Depth())
	}

	// Empty stack: nothing to do, nothing to announce.
	s.CloseAll()
	if notifications != 1 {
		t.Fatalf("CloseAll on empty stack notified")
	}
}

func TestCloseAllByNamePreservesRemainderOrder(t *testing.T) {
	s := newTestStore(t)
	a1 := mustOpen(t, s, "alert", nil)
	b := mustOpen(t, s, "confirm", nil)
	a2 := mustOpen(t, s, "alert", nil)

	notifications := 0
	s.Subscribe(func(snap *Snapshot, err error) { notifications++ })

	s.CloseAllByName("alert")
	snap := s.Snapshot()
	if snap.Depth() != 1 || snap.Stack[0] != b {
		t.Fatalf("stack after CloseAllByName = %v, want only confirm", snap.Stack)
	}
	if notifications != 1 {
		t.Fatalf("CloseAllByName notified %d times, want 1", notifications)
	}
	if s.find(a1.Hash) != nil || s.find(a2.Hash) != nil {
		t.Fatalf("alert instances still present")
	}

	s.CloseAllByName("prompt")
	if notifications != 1 {
		t.Fatalf("no-op CloseAllByName notified")
	}
}

func TestParamLookup(t *testing.T) {
	s := newTestStore(t)
	inst := mustOpen(t, s, "alert", Params{"message": "hi", "count": 3})

	tests := []struct {
		name string
		hash string
		key  string
		def  any
		want any
	}{
		{"present key", inst.Hash, "message", "fallback", "hi"},
		{"absent key yields default", inst.Hash, "missing", "fallback", "fallback"},
		{"unknown hash yields default", "gone", "message", "fallback", "fallback"},
		{"nil default is the absent sentinel", inst.Hash, "missing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Param(tt.hash, tt.key, tt.def); got != tt.want {
				t.Fatalf("Param(%q, %q) = %v, want %v", tt.hash, tt.key, got, tt.want)
			}
		})
	}

	s.Close(inst.Hash)
	if got := s.Param(inst.Hash, "message", "fallback"); got != "fallback" {
		t.Fatalf("param lookup after close = %v, want default", got)
	}
}

func TestRemoveClosingActionCancelsBeforeFire(t *testing.T) {
	s := newTestStore(t)
	inst := mustOpen(t, s, "confirm", nil)

	fired := false
	kept := false
	cancellable := s.AddClosingAction(inst.Hash, func() { fired = true })
	s.AddClosingAction(inst.Hash, func() { kept = true })

	s.RemoveClosingAction(inst.Hash, cancellable)
	s.RemoveClosingAction(inst.Hash, cancellable) // second removal is benign
	s.RemoveClosingAction("gone", cancellable)    // so is an unknown instance

	s.Close(inst.Hash)
	if fired {
		t.Fatalf("removed closing action still fired")
	}
	if !kept {
		t.Fatalf("surviving closing action did not fire")
	}
}

func TestAddClosingActionOnClosedInstanceReturnsNil(t *testing.T) {
	s := newTestStore(t)
	inst := mustOpen(t, s, "alert", nil)
	s.Close(inst.Hash)
	if a := s.AddClosingAction(inst.Hash, func() {}); a != nil {
		t.Fatalf("expected nil handle for closed instance")
	}
	if a := s.AddClosingAction(inst.Hash, nil); a != nil {
		t.Fatalf("expected nil handle for nil fn")
	}
}

func TestBackPressScenario(t *testing.T) {
	s := newTestStore(t)

	if s.HandleBackPress() {
		t.Fatalf("back press on empty stack reported handled")
	}

	inst := mustOpen(t, s, "alert", Params{"msg": "hi"})
	snap := s.Snapshot()
	if snap.Depth() != 1 || snap.CurrentModal.Name != "alert" {
		t.Fatalf("unexpected stack after open: %+v", snap)
	}
	if got := snap.CurrentModal.Params.String("msg", ""); got != "hi" {
		t.Fatalf("params msg = %q, want hi", got)
	}
	_ = inst

	if !s.HandleBackPress() {
		t.Fatalf("back press with open modal reported unhandled")
	}
	snap = s.Snapshot()
	if snap.Depth() != 0 || snap.CurrentModal != nil {
		t.Fatalf("back press did not close topmost: depth=%d", snap.Depth())
	}
}

func TestBackPressClosesTopmostOnly(t *testing.T) {
	s := newTestStore(t)
	bottom := mustOpen(t, s, "alert", nil)
	mustOpen(t, s, "confirm", nil)

	if !s.HandleBackPress() {
		t.Fatalf("back press reported unhandled")
	}
	snap := s.Snapshot()
	if snap.Depth() != 1 || snap.CurrentModal != bottom {
		t.Fatalf("back press closed wrong instance")
	}
}

func TestSubscribersSeeFullyAppliedStateAndUnsubscribeStops(t *testing.T) {
	s := newTestStore(t)

	var depths []int
	sub := s.Subscribe(func(snap *Snapshot, err error) {
		if err != nil {
			t.Fatalf("unexpected subscriber error: %v", err)
		}
		depths = append(depths, snap.Depth())
	})

	a := mustOpen(t, s, "alert", nil)
	mustOpen(t, s, "confirm", nil)
	s.Close(a.Hash)
	if len(depths) != 3 || depths[0] != 1 || depths[1] != 2 || depths[2] != 1 {
		t.Fatalf("observed depths = %v, want [1 2 1]", depths)
	}

	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	mustOpen(t, s, "prompt", nil)
	if len(depths) != 3 {
		t.Fatalf("unsubscribed observer still notified")
	}
}

func TestEverySubscriberGetsEveryNotification(t *testing.T) {
	s := newTestStore(t)
	first, second := 0, 0
	s.Subscribe(func(*Snapshot, error) { first++ })
	s.Subscribe(func(*Snapshot, error) { second++ })
	mustOpen(t, s, "alert", nil)
	s.CloseAll()
	if first != 2 || second != 2 {
		t.Fatalf("subscriber counts = %d/%d, want 2/2", first, second)
	}
}

func TestPanickingClosingActionIsSurfacedAsError(t *testing.T) {
	s := newTestStore(t)
	inst := mustOpen(t, s, "alert", nil)

	ranAfter := false
	s.AddClosingAction(inst.Hash, func() { panic("boom") })
	s.AddClosingAction(inst.Hash, func() { ranAfter = true })

	var snapshots, failures int
	s.Subscribe(func(snap *Snapshot, err error) {
		if err != nil {
			failures++
			if snap != nil {
				t.Fatalf("error notification carried a snapshot")
			}
			return
		}
		snapshots++
	})

	s.Close(inst.Hash)
	if failures != 1 {
		t.Fatalf("panicking action surfaced %d errors, want 1", failures)
	}
	if !ranAfter {
		t.Fatalf("action after the panicking one did not run")
	}
	if snapshots != 1 {
		t.Fatalf("close still notifies once with a snapshot, got %d", snapshots)
	}
	if s.Snapshot().Depth() != 0 {
		t.Fatalf("instance not removed despite panicking action")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)
	mustOpen(t, s, "alert", nil)
	snap := s.Snapshot()
	snap.Stack[0] = nil
	if s.Snapshot().Stack[0] == nil {
		t.Fatalf("mutating a snapshot reached the store")
	}
}

func TestInstanceHashesAreUnique(t *testing.T) {
	s := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		inst := mustOpen(t, s, "alert", nil)
		if inst.Hash == "" {
			t.Fatalf("empty instance hash")
		}
		if seen[inst.Hash] {
			t.Fatalf("hash %q reused", inst.Hash)
		}
		seen[inst.Hash] = true
	}
}
