package librevent

import "github.com/cockroachdb/errors"

// DisableOnAction disables a whenever other runs its callbacks
func (a *Action) DisableOnAction(other *Action) *Action {
	other.Do(func() error {
		a.Disable()
		return nil
	})
	return a
}

// EnableOnAction enables a whenever other runs its callbacks
func (a *Action) EnableOnAction(other *Action) *Action {
	other.Do(a.Enable)
	return a
}

// DisableOnEvent registers an anonymous action on e that disables a
func (a *Action) DisableOnEvent(e *Event) *Action {
	e.Action(a.forwarder(func() error {
		a.Disable()
		return nil
	}))
	return a
}

// EnableOnEvent registers an anonymous action on e that enables a and then
// cancels a's pending timer
func (a *Action) EnableOnEvent(e *Event) *Action {
	e.Action(a.forwarder(func() error {
		err := a.Enable()
		a.mu.Lock()
		a.stopTimerLocked()
		a.mu.Unlock()
		return err
	}))
	return a
}

// ErrorOnEvent registers an anonymous action on e that hands ErrForwarded
// to a's ErrorHandler. Without a handler the forwarder fails with
// ErrNoErrorHandler, which Reached returns.
func (a *Action) ErrorOnEvent(e *Event) *Action {
	name := e.Name()
	e.Action(a.forwarder(func() error {
		a.mu.Lock()
		handler := a.onError
		a.mu.Unlock()

		if handler == nil {
			return errors.Wrapf(ErrNoErrorHandler, "action %q", a.id)
		}
		handler(errors.Wrapf(ErrForwarded, "event %q", name))
		return nil
	}))
	return a
}

// forwarder builds the anonymous action used by the *OnEvent helpers. It
// shares a's scheduler, logger and ID source but gets a fresh identity.
func (a *Action) forwarder(cb Callback) *Action {
	return NewAction(
		WithIDSource(a.idSource),
		WithScheduler(a.scheduler),
		WithActionLogger(a.logger),
	).Do(cb)
}
