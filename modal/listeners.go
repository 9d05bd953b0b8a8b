package modal

// Handler receives the payload passed to Emit.
type Handler func(payload any)

// listenerKey scopes a registration to one instance hash and one event name.
// Keying by struct rather than by a concatenated string makes scope matching
// exact by construction: a hash that is a prefix of another hash can never
// alias its events.
type listenerKey struct {
	hash  string
	event string
}

// Registry holds ad-hoc event listeners scoped to modal instances. A modal
// and whichever code opened it exchange named events here without going
// through the stack's params.
type Registry struct {
	entries map[listenerKey][]*Listener
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[listenerKey][]*Listener)}
}

// Listener is a single registration. Remove deletes exactly this entry and
// is an idempotent no-op once removed.
type Listener struct {
	reg *Registry
	key listenerKey
	fn  Handler
}

// Register adds a handler for the named event scoped to hash. It returns an
// InvalidListenerError when the hash or event name is empty or the handler
// is nil.
func (r *Registry) Register(hash string, event string, fn Handler) (*Listener, error) {
	switch {
	case hash == "":
		return nil, &InvalidListenerError{Hash: hash, Event: event, Reason: "empty instance hash"}
	case event == "":
		return nil, &InvalidListenerError{Hash: hash, Event: event, Reason: "empty event name"}
	case fn == nil:
		return nil, &InvalidListenerError{Hash: hash, Event: event, Reason: "nil handler"}
	}
	l := &Listener{reg: r, key: listenerKey{hash: hash, event: event}, fn: fn}
	r.entries[l.key] = append(r.entries[l.key], l)
	return l, nil
}

// Remove deletes this registration from its registry. Safe to call more
// than once, and safe after Clear already dropped the entry.
func (l *Listener) Remove() {
	if l == nil || l.reg == nil {
		return
	}
	reg := l.reg
	l.reg = nil
	current := reg.entries[l.key]
	for i, entry := range current {
		if entry == l {
			reg.entries[l.key] = append(current[:i], current[i+1:]...)
			break
		}
	}
	if len(reg.entries[l.key]) == 0 {
		delete(reg.entries, l.key)
	}
}

// Emit invokes every handler registered for (hash, event) with payload and
// returns how many ran. A panicking handler is recovered so the remaining
// handlers in the same emission still run.
func (r *Registry) Emit(hash string, event string, payload any) int {
	matched := r.entries[listenerKey{hash: hash, event: event}]
	if len(matched) == 0 {
		return 0
	}
	// Handlers may register or remove listeners while running.
	invoked := append([]*Listener(nil), matched...)
	for _, l := range invoked {
		safeInvoke(l.fn, payload)
	}
	return len(invoked)
}

// Clear removes every entry scoped to hash, across all event names. The
// store calls this whenever the owning instance closes; hosts may also call
// it directly.
func (r *Registry) Clear(hash string) {
	for key := range r.entries {
		if key.hash == hash {
			delete(r.entries, key)
		}
	}
}

// Len returns the total number of live registrations.
func (r *Registry) Len() int {
	n := 0
	for _, entries := range r.entries {
		n += len(entries)
	}
	return n
}

func safeInvoke(fn Handler, payload any) {
	defer func() {
		// A broken handler must not take down the emission or the UI loop.
		_ = recover()
	}()
	fn(payload)
}
