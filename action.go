package librevent

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// Action is a gateable unit of deferred work. Callbacks registered with Do
// run in order on Run while the action is enabled. A Run while disabled is
// recorded and, with Remember, replayed by the next Enable.
//
// The mutex only guards fields; it is never held while callbacks or the
// ErrorHandler run, so those may call back into the action.
type Action struct {
	id string
	mu sync.Mutex

	enabled  bool
	once     bool
	remember bool
	tried    bool

	timeoutTime time.Duration
	timer       *timerEntry

	onError   ErrorHandler
	callbacks []Callback

	idSource         IDSource
	scheduler        Scheduler
	unhandledTimeout ErrorHandler
	logger           *slog.Logger
}

// ActionOption is a functional option for configuring an Action
type ActionOption func(*actionConfig)

type actionConfig struct {
	id               string
	idSource         IDSource
	scheduler        Scheduler
	unhandledTimeout ErrorHandler
	logger           *slog.Logger
	timeout          time.Duration
}

// WithID sets the action identity. Events key their listeners by it.
func WithID(id string) ActionOption {
	return func(c *actionConfig) {
		c.id = id
	}
}

// WithIDSource sets the generator used when no explicit ID is given.
// A nil source keeps DefaultIDSource.
func WithIDSource(src IDSource) ActionOption {
	return func(c *actionConfig) {
		if src != nil {
			c.idSource = src
		}
	}
}

// WithScheduler sets the scheduler used to arm the timeout timer
func WithScheduler(s Scheduler) ActionOption {
	return func(c *actionConfig) {
		c.scheduler = s
	}
}

// WithUnhandledTimeout sets the hook called when the timer expires on an
// action without an ErrorHandler. The default hook panics.
func WithUnhandledTimeout(fn ErrorHandler) ActionOption {
	return func(c *actionConfig) {
		c.unhandledTimeout = fn
	}
}

// WithActionLogger sets the logger for timer diagnostics
func WithActionLogger(logger *slog.Logger) ActionOption {
	return func(c *actionConfig) {
		c.logger = logger
	}
}

// WithDefaultTimeout presets the timeout, as if Timeout had been called
func WithDefaultTimeout(d time.Duration) ActionOption {
	return func(c *actionConfig) {
		c.timeout = d
	}
}

// NewAction creates an enabled action with no callbacks
func NewAction(opts ...ActionOption) *Action {
	cfg := actionConfig{
		idSource:         DefaultIDSource,
		scheduler:        SystemScheduler{},
		unhandledTimeout: panicOnTimeout,
		logger:           Logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.idSource == nil {
		cfg.idSource = TimestampID
	}

	id := cfg.id
	if id == "" {
		id = cfg.idSource()
	}

	return &Action{
		id:               id,
		enabled:          true,
		timeoutTime:      cfg.timeout,
		idSource:         cfg.idSource,
		scheduler:        cfg.scheduler,
		unhandledTimeout: cfg.unhandledTimeout,
		logger:           cfg.logger,
	}
}

// Do appends a callback
func (a *Action) Do(cb Callback) *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = append(a.callbacks, cb)
	return a
}

// Once makes the first successful Run also disable the action
func (a *Action) Once() *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.once = true
	return a
}

// Remember makes Enable replay a Run attempted while disabled
func (a *Action) Remember() *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.remember = true
	return a
}

// Timeout sets the delay armed by StartTimer. It does not arm the timer.
func (a *Action) Timeout(d time.Duration) *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeoutTime = d
	return a
}

// OnError sets the handler for timeouts and ErrorOnEvent forwarding
func (a *Action) OnError(fn ErrorHandler) *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onError = fn
	return a
}

// ID returns the action identity
func (a *Action) ID() string {
	return a.id
}

// IsEnabled reports the gate state
func (a *Action) IsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Enable opens the gate. If Remember is set and a Run was attempted while
// disabled, Run is called immediately and its error returned.
func (a *Action) Enable() error {
	a.mu.Lock()
	a.enabled = true
	replay := a.remember && a.tried
	a.mu.Unlock()

	if replay {
		return a.Run()
	}
	return nil
}

// Disable closes the gate and cancels a pending timer
func (a *Action) Disable() *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = false
	a.stopTimerLocked()
	return a
}

// Run executes the callbacks in order if the action is enabled. A Once
// action disables itself first. A pending timer is cancelled either way the
// gate is open. While disabled, Run only records the attempt.
//
// The first callback error stops the run and is returned; the attempt then
// stays recorded as it was.
func (a *Action) Run() error {
	a.mu.Lock()
	if !a.enabled {
		a.tried = true
		a.mu.Unlock()
		return nil
	}
	if a.once {
		a.enabled = false
	}
	a.stopTimerLocked()
	callbacks := a.callbacks
	a.mu.Unlock()

	for i, cb := range callbacks {
		if err := cb(); err != nil {
			return errors.Wrapf(err, "action %q callback %d", a.id, i)
		}
	}

	a.mu.Lock()
	a.tried = false
	a.mu.Unlock()
	return nil
}

// Reset drops all callbacks, opens the gate and forgets a recorded attempt.
// Identity and timeout configuration are kept.
func (a *Action) Reset() *Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = nil
	a.enabled = true
	a.tried = false
	return a
}
