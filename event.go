package librevent

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
)

// Event is a named broadcast point. Reached runs every registered action in
// registration order; each action's own gate decides whether it does work.
type Event struct {
	name   string
	logger *slog.Logger

	mu        sync.Mutex
	order     []string
	listeners map[string]*Action
}

// EventOption is a functional option for configuring an Event
type EventOption func(*Event)

// WithLogger sets the logger receiving duplicate registration warnings
func WithLogger(logger *slog.Logger) EventOption {
	return func(e *Event) {
		e.logger = logger
	}
}

// NewEvent creates an event with no listeners
func NewEvent(name string, opts ...EventOption) *Event {
	e := &Event{
		name:      name,
		logger:    Logger,
		listeners: make(map[string]*Action),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the event name
func (e *Event) Name() string {
	return e.name
}

// Action registers a under its ID. A second action with the same ID
// replaces the first in place, after a warning is logged.
func (e *Event) Action(a *Action) *Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := a.ID()
	if _, ok := e.listeners[id]; ok {
		e.logger.Warn("duplicate action",
			"id", id,
			"event", e.name,
			"component", "eventManager",
			"method", "Event.Action",
		)
	} else {
		e.order = append(e.order, id)
	}
	e.listeners[id] = a
	return e
}

// Reached runs every registered action. The first error stops the broadcast.
func (e *Event) Reached() error {
	for _, a := range e.snapshot() {
		if err := a.Run(); err != nil {
			return errors.Wrapf(err, "event %q", e.name)
		}
	}
	return nil
}

// snapshot copies the listeners so Reached can run them unlocked
func (e *Event) snapshot() []*Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	actions := make([]*Action, 0, len(e.order))
	for _, id := range e.order {
		actions = append(actions, e.listeners[id])
	}
	return actions
}

// Len returns the number of registered actions
func (e *Event) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

// IDs returns the registered action IDs in registration order
func (e *Event) IDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.order...)
}

// Lookup returns the action registered under id
func (e *Event) Lookup(id string) (*Action, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.listeners[id]
	return a, ok
}
