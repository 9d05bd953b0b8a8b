package modal

import "sort"

// Name identifies a configured modal type. Every Name used with a Store must
// exist in its StackDefinition.
type Name string

// Config is the presentation metadata a host supplies per modal. The store
// only reads names for validation; the rest is rendered by the host.
type Config struct {
	Title       string
	Width       int
	Accent      string
	DimBackdrop bool
}

// StackDefinition is an immutable mapping from modal name to its Config,
// fixed for the lifetime of the store it initializes.
type StackDefinition struct {
	configs map[Name]Config
}

// NewDefinition copies configs into an immutable definition.
func NewDefinition(configs map[Name]Config) StackDefinition {
	own := make(map[Name]Config, len(configs))
	for n, c := range configs {
		own[n] = c
	}
	return StackDefinition{configs: own}
}

// Lookup returns the Config for name and whether it is defined.
func (d StackDefinition) Lookup(name Name) (Config, bool) {
	c, ok := d.configs[name]
	return c, ok
}

// Has reports whether name is defined.
func (d StackDefinition) Has(name Name) bool {
	_, ok := d.configs[name]
	return ok
}

// Names returns all defined modal names in sorted order.
func (d StackDefinition) Names() []Name {
	out := make([]Name, 0, len(d.configs))
	for n := range d.configs {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of defined modals.
func (d StackDefinition) Len() int {
	return len(d.configs)
}

// Instance is one open modal on the stack. Hash is unique for the lifetime
// of the instance and never reused. Params are read-only to everyone except
// the opener.
type Instance struct {
	Hash   string
	Name   Name
	Params Params

	closing []*ClosingAction
}

// ClosingAction is a deferred callback that runs when its instance closes.
// The handle returned by Store.AddClosingAction is the removal identity,
// since Go function values cannot be compared.
type ClosingAction struct {
	fn func()
}

// Snapshot is the externally visible projection of the store at one point
// in time. The Stack slice is a fresh copy per mutation; callers never
// observe partially applied state.
type Snapshot struct {
	CurrentModal *Instance
	Stack        []*Instance
	Definition   StackDefinition
}

// Depth returns the number of open instances.
func (s *Snapshot) Depth() int {
	return len(s.Stack)
}
