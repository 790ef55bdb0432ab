// Package guard wraps long-running, fallible tool actions: BusyGuard shows a
// busy indicator for the duration of an action and ErrorBoundary contains
// and reports its failure.
package guard

import "sync"

// Indicator is the process-wide busy state, e.g. a wait cursor or a spinner.
type Indicator interface {
	Busy() bool
	SetBusy(busy bool)
}

// BusyGuard marks an Indicator busy for the duration of a scope.
type BusyGuard struct {
	indicator Indicator
}

// NewBusyGuard creates a guard over indicator. A nil indicator makes every
// scope a no-op.
func NewBusyGuard(indicator Indicator) *BusyGuard {
	return &BusyGuard{indicator: indicator}
}

// Enter marks the indicator busy and returns the function that restores the
// state it had before. The release function is safe to call more than once;
// only the first call has an effect. Callers defer it:
//
//	release := g.Enter()
//	defer release()
func (g *BusyGuard) Enter() (release func()) {
	if g == nil || g.indicator == nil {
		return func() {}
	}
	prior := g.indicator.Busy()
	g.indicator.SetBusy(true)

	var once sync.Once
	return func() {
		once.Do(func() { g.indicator.SetBusy(prior) })
	}
}

// Busy runs action inside a busy scope and returns its results. The
// indicator is restored when action returns an error and when it panics.
func Busy[R any](g *BusyGuard, action func() (R, error)) (R, error) {
	release := g.Enter()
	defer release()
	return action()
}

// FlagIndicator is an Indicator backed by a boolean. The CLI and tests use it
// directly; front ends embed it to render the flag.
type FlagIndicator struct {
	mu   sync.Mutex
	busy bool
	// OnChange, if set, is called after every SetBusy.
	OnChange func(busy bool)
}

// Busy reports the current state.
func (f *FlagIndicator) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// SetBusy stores the state and notifies OnChange.
func (f *FlagIndicator) SetBusy(busy bool) {
	f.mu.Lock()
	f.busy = busy
	cb := f.OnChange
	f.mu.Unlock()
	if cb != nil {
		cb(busy)
	}
}
