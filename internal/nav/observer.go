package nav

import "github.com/chatter/uinav/internal/rebind"

// Observer receives navigation notifications. Calls are synchronous and made
// from the goroutine that drives the session.
type Observer interface {
	// OnFocusChanged is called after focus moved. from is Unset for the
	// initial focus.
	OnFocusChanged(from, to int)
	// OnSelect is called when the focused element is activated.
	OnSelect(index int)
	// OnRebindRejected is called when a proposed key is refused.
	OnRebindRejected(rejection *rebind.Rejection)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	FocusChanged   func(from, to int)
	Select         func(index int)
	RebindRejected func(rejection *rebind.Rejection)
}

func (o ObserverFuncs) OnFocusChanged(from, to int) {
	if o.FocusChanged != nil {
		o.FocusChanged(from, to)
	}
}

func (o ObserverFuncs) OnSelect(index int) {
	if o.Select != nil {
		o.Select(index)
	}
}

func (o ObserverFuncs) OnRebindRejected(rejection *rebind.Rejection) {
	if o.RebindRejected != nil {
		o.RebindRejected(rejection)
	}
}

type nopObserver struct{}

func (nopObserver) OnFocusChanged(int, int) {}
func (nopObserver) OnSelect(int) {}
func (nopObserver) OnRebindRejected(*rebind.Rejection) {}
