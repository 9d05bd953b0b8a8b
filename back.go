package main

// backRouter fans a single back gesture (Esc) out to registered handlers in
// reverse registration order, stopping at the first one that consumes it.
// It satisfies modal.BackSource.
type backRouter struct {
	entries []*backEntry
}

type backEntry struct {
	handler func() bool
	removed bool
}

func newBackRouter() *backRouter {
	return &backRouter{}
}

func (r *backRouter) AddBackListener(handler func() bool) func() {
	e := &backEntry{handler: handler}
	r.entries = append(r.entries, e)
	return func() {
		if e.removed {
			return
		}
		e.removed = true
		for i, cur := range r.entries {
			if cur == e {
				r.entries = append(r.entries[:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

// Dispatch reports whether any handler consumed the back gesture. Most
// recently registered handlers get first refusal.
func (r *backRouter) Dispatch() bool {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.removed {
			continue
		}
		if e.handler() {
			return true
		}
	}
	return false
}

func (r *backRouter) Len() int {
	return len(r.entries)
}
