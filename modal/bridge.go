package modal

// BackSource is the platform's hardware-back hookup: an add/remove-listener
// pair for the named back event. The handler returns true when it consumed
// the press, per the platform contract; the returned remove function
// detaches exactly that handler and is safe to call more than once.
type BackSource interface {
	AddBackListener(handler func() bool) (remove func())
}

// Bridge connects one UI root to a Store. On Mount it verifies the host
// supplied a stack definition, performs the store's one-time Init, and
// subscribes a listener that folds each snapshot into the root's displayed
// state via Render. The hardware-back handler is attached lazily on the
// first empty-to-non-empty stack transition and stays attached until
// Unmount, which avoids re-registering with the platform on every
// close-to-empty.
type Bridge struct {
	Store      *Store
	Definition StackDefinition

	// Render receives every post-mutation snapshot. Hosts overwrite their
	// displayed currentModal/stack from it and keep their other state.
	Render func(*Snapshot)

	// OnError receives internal store failures. Hosts should surface them
	// (status line, log) and keep rendering.
	OnError func(error)

	// Back is optional; without it back presses are the host's problem.
	Back BackSource

	mounted      bool
	backAttached bool
	removeBack   func()
	sub          Subscription
}

// Mount wires the bridge. A nil store or an empty definition is a
// ConfigurationError: a host wiring mistake to fix, not a condition to
// retry. Mounting twice is likewise refused.
func (b *Bridge) Mount() error {
	if b.mounted {
		return &ConfigurationError{Reason: "bridge already mounted"}
	}
	if b.Store == nil {
		return &ConfigurationError{Reason: "no store supplied"}
	}
	if b.Definition.Len() == 0 {
		return &ConfigurationError{Reason: "no stack definition supplied"}
	}
	def := b.Definition
	b.Store.Init(func() State { return State{Definition: def} })
	b.sub = b.Store.Subscribe(b.onNotify)
	b.mounted = true
	return nil
}

// Unmount unsubscribes from the store and detaches the hardware-back
// handler. Idempotent.
func (b *Bridge) Unmount() {
	if !b.mounted {
		return
	}
	b.sub.Unsubscribe()
	if b.removeBack != nil {
		b.removeBack()
		b.removeBack = nil
	}
	b.backAttached = false
	b.mounted = false
}

func (b *Bridge) onNotify(snap *Snapshot, err error) {
	if err != nil {
		if b.OnError != nil {
			b.OnError(err)
		}
		return
	}
	if len(snap.Stack) > 0 && !b.backAttached && b.Back != nil {
		b.removeBack = b.Back.AddBackListener(b.Store.HandleBackPress)
		b.backAttached = true
	}
	if b.Render != nil {
		b.Render(snap)
	}
}
