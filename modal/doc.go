// Package modal coordinates a stack of open modal dialogs for a single UI
// root: which modals are open, in what z-order, with what parameters.
//
// The package is UI-framework agnostic. A host supplies a StackDefinition
// (the set of modals it knows how to present), mounts a Bridge against its
// render loop, and drives the Store through Open/Close operations. Every
// mutation produces a fresh Snapshot delivered to all subscribers, so the
// host always re-renders from a consistent view.
//
// Everything here is single-threaded by contract: operations, closing
// actions, listener handlers and subscriber notifications all run
// synchronously on the caller's goroutine, which is expected to be the UI
// event loop. Nothing in this package takes locks.
package modal
