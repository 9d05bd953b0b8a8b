package modal

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the initial store contents produced by the factory handed to
// Init. Most hosts only set Definition and start with an empty stack.
type State struct {
	Stack      []*Instance
	Definition StackDefinition
}

// SubscriberFunc observes store mutations. On every successful mutation it
// receives the fresh snapshot and a nil error. On an internal failure it
// receives a nil snapshot and the error; subscribers are expected to surface
// it and carry on, never to crash the render loop.
type SubscriberFunc func(snap *Snapshot, err error)

type subscriberEntry struct {
	fn SubscriberFunc
}

// Subscription unregisters a subscriber. Unsubscribe is idempotent.
type Subscription struct {
	store *Store
	entry *subscriberEntry
}

// Unsubscribe stops delivery to this subscriber. Calling it twice, or on a
// zero Subscription, is a no-op.
func (s Subscription) Unsubscribe() {
	if s.store == nil || s.entry == nil {
		return
	}
	subs := s.store.subscribers
	for i, e := range subs {
		if e == s.entry {
			s.store.subscribers = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Store is the single source of truth for the open modal stack of one UI
// root. The zero value is uninitialized: Init must be called exactly once
// before any other operation, and every operation before that (or a second
// Init) panics, since both indicate host programming errors.
//
// Exactly one Store should exist per UI root for its lifetime; pass it by
// reference to every collaborator instead of holding global state.
type Store struct {
	initialized bool
	stack       []*Instance
	definition  StackDefinition
	listeners   *Registry
	subscribers []*subscriberEntry
}

// Init moves the store from uninitialized to initialized using the
// factory's state. The transition is one-way for the process lifetime.
func (s *Store) Init(factory func() State) {
	if s.initialized {
		panic("modal: store initialized twice")
	}
	if factory == nil {
		panic("modal: nil state factory")
	}
	st := factory()
	s.stack = append([]*Instance(nil), st.Stack...)
	s.definition = st.Definition
	s.listeners = NewRegistry()
	s.initialized = true
}

func (s *Store) mustInit() {
	if !s.initialized {
		panic("modal: store used before Init")
	}
}

// Definition returns the stack definition fixed at Init.
func (s *Store) Definition() StackDefinition {
	s.mustInit()
	return s.definition
}

// Open validates name against the definition, appends a new instance as the
// topmost modal and notifies subscribers. The returned instance carries the
// freshly generated hash the opener uses for params, listeners and closing
// actions.
func (s *Store) Open(name Name, params Params) (*Instance, error) {
	s.mustInit()
	if !s.definition.Has(name) {
		return nil, &UnknownModalError{Name: name, Suggestion: suggestName(s.definition, name)}
	}
	inst := &Instance{Hash: uuid.NewString(), Name: name, Params: params}
	s.stack = append(s.stack, inst)
	s.notify()
	return inst, nil
}

// Close removes the instance with the given hash from wherever it sits in
// the stack; a modal below the top may close itself directly. Its closing
// actions run in registration order, its scoped listeners are cleared, then
// subscribers are notified. Unknown hashes are a silent no-op with no
// notification, so closes racing UI teardown stay harmless.
func (s *Store) Close(hash string) {
	s.mustInit()
	idx := s.indexOf(hash)
	if idx < 0 {
		return
	}
	inst := s.stack[idx]
	s.stack = append(s.stack[:idx], s.stack[idx+1:]...)
	s.finalize(inst)
	s.notify()
}

// CloseAllByName removes every instance named name, preserving the relative
// order of the remainder. Each removed instance goes through the same
// closing sequence as Close; subscribers are notified once at the end. A
// name with no open instances is a no-op.
func (s *Store) CloseAllByName(name Name) {
	s.mustInit()
	kept := make([]*Instance, 0, len(s.stack))
	var removed []*Instance
	for _, inst := range s.stack {
		if inst.Name == name {
			removed = append(removed, inst)
			continue
		}
		kept = append(kept, inst)
	}
	if len(removed) == 0 {
		return
	}
	s.stack = kept
	for _, inst := range removed {
		s.finalize(inst)
	}
	s.notify()
}

// CloseAll empties the stack, running each instance's closing sequence from
// topmost to bottommost, then notifies subscribers exactly once. Batching
// the notification avoids one redundant re-render per instance; the closing
// actions themselves still run immediately and in order.
func (s *Store) CloseAll() {
	s.mustInit()
	if len(s.stack) == 0 {
		return
	}
	closing := s.stack
	s.stack = nil
	for i := len(closing) - 1; i >= 0; i-- {
		s.finalize(closing[i])
	}
	s.notify()
}

// Param returns the named parameter of the instance with the given hash, or
// def when the key is absent. A hash that no longer corresponds to an open
// instance also yields def: param lookups may race with closing and must
// never fail loudly.
func (s *Store) Param(hash string, key string, def any) any {
	s.mustInit()
	inst := s.find(hash)
	if inst == nil {
		return def
	}
	if v, ok := inst.Params.Get(key); ok {
		return v
	}
	return def
}

// AddClosingAction defers fn until the instance closes. Actions run in
// registration order. The returned handle cancels the action via
// RemoveClosingAction; nil is returned (and nothing registered) when the
// instance is not open or fn is nil.
func (s *Store) AddClosingAction(hash string, fn func()) *ClosingAction {
	s.mustInit()
	inst := s.find(hash)
	if inst == nil || fn == nil {
		return nil
	}
	a := &ClosingAction{fn: fn}
	inst.closing = append(inst.closing, a)
	return a
}

// RemoveClosingAction cancels a not-yet-fired closing action. No-op when
// the instance already closed or the action was already removed.
func (s *Store) RemoveClosingAction(hash string, action *ClosingAction) {
	s.mustInit()
	inst := s.find(hash)
	if inst == nil || action == nil {
		return
	}
	for i, a := range inst.closing {
		if a == action {
			inst.closing = append(inst.closing[:i], inst.closing[i+1:]...)
			return
		}
	}
}

// RegisterListener adds a handler for a custom event scoped to an instance
// hash. See Registry.Register.
func (s *Store) RegisterListener(hash string, event string, fn Handler) (*Listener, error) {
	s.mustInit()
	return s.listeners.Register(hash, event, fn)
}

// ClearListeners removes every listener scoped to hash. Closing an instance
// does this automatically.
func (s *Store) ClearListeners(hash string) {
	s.mustInit()
	s.listeners.Clear(hash)
}

// Emit delivers a custom event to every listener registered for
// (hash, event) and returns how many handlers ran.
func (s *Store) Emit(hash string, event string, payload any) int {
	s.mustInit()
	return s.listeners.Emit(hash, event, payload)
}

// HandleBackPress routes the platform's hardware back signal: with a
// non-empty stack it closes the topmost instance and reports the press as
// handled; with an empty stack it reports unhandled so the platform falls
// back to its default behavior.
func (s *Store) HandleBackPress() bool {
	s.mustInit()
	if len(s.stack) == 0 {
		return false
	}
	s.Close(s.stack[len(s.stack)-1].Hash)
	return true
}

// Subscribe registers an observer for every subsequent mutation. Multiple
// subscribers are allowed; they must not depend on each other's ordering.
func (s *Store) Subscribe(fn SubscriberFunc) Subscription {
	s.mustInit()
	if fn == nil {
		panic("modal: nil subscriber")
	}
	e := &subscriberEntry{fn: fn}
	s.subscribers = append(s.subscribers, e)
	return Subscription{store: s, entry: e}
}

// Snapshot returns the current projection of the store without mutating it.
func (s *Store) Snapshot() *Snapshot {
	s.mustInit()
	return s.snapshot()
}

func (s *Store) snapshot() *Snapshot {
	stack := append([]*Instance(nil), s.stack...)
	var current *Instance
	if len(stack) > 0 {
		current = stack[len(stack)-1]
	}
	return &Snapshot{CurrentModal: current, Stack: stack, Definition: s.definition}
}

// finalize runs an instance's closing sequence: actions in registration
// order, then listener cleanup. It is called after the instance has already
// left the stack, so actions observing the store see the post-close state.
func (s *Store) finalize(inst *Instance) {
	actions := inst.closing
	inst.closing = nil
	for _, a := range actions {
		s.runAction(inst, a)
	}
	s.listeners.Clear(inst.Hash)
}

// runAction executes one closing action, converting a panic into an error
// delivered on the subscriber error channel rather than unwinding the UI
// loop.
func (s *Store) runAction(inst *Instance, a *ClosingAction) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Errorf("modal: closing action for %q (%s) panicked: %v", string(inst.Name), inst.Hash, r))
		}
	}()
	a.fn()
}

func (s *Store) notify() {
	snap := s.snapshot()
	for _, e := range append([]*subscriberEntry(nil), s.subscribers...) {
		e.fn(snap, nil)
	}
}

func (s *Store) fail(err error) {
	for _, e := range append([]*subscriberEntry(nil), s.subscribers...) {
		e.fn(nil, err)
	}
}

func (s *Store) indexOf(hash string) int {
	for i, inst := range s.stack {
		if inst.Hash == hash {
			return i
		}
	}
	return -1
}

func (s *Store) find(hash string) *Instance {
	if i := s.indexOf(hash); i >= 0 {
		return s.stack[i]
	}
	return nil
}
