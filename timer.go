package librevent

import "time"

// Timer is a pending one-shot callback returned by a Scheduler.
// Stop is best-effort: it reports false if the callback already started.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules callbacks on the Go runtime timer
type SystemScheduler struct{}

// AfterFunc calls f in its own goroutine after d
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// StartTimer arms the timeout timer if a timeout is set and the action is
// enabled. An already armed timer is stopped first. On expiry the action is
// disabled and its ErrorHandler receives ErrTimeout; without a handler the
// error goes to the unhandled-timeout hook.
func (a *Action) StartTimer() *Action {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timeoutTime <= 0 || !a.enabled {
		return a
	}

	a.stopTimerLocked()

	// Cancellation is best-effort: an expiry that is already running when
	// Disable or Run stops the timer still completes.
	entry := &timerEntry{}
	entry.timer = a.scheduler.AfterFunc(a.timeoutTime, func() { a.expire(entry) })
	a.timer = entry
	a.logger.Debug("timer started", "action", a.id, "duration", a.timeoutTime)
	return a
}

// timerEntry identifies one arming of the timeout timer
type timerEntry struct {
	timer Timer
}

// expire runs on the scheduler when the timer armed as entry elapses. A
// stale expiry still escalates but leaves a newer timer tracked.
func (a *Action) expire(entry *timerEntry) {
	a.mu.Lock()
	a.enabled = false
	if a.timer == entry {
		a.timer = nil
	}
	handler := a.onError
	unhandled := a.unhandledTimeout
	a.mu.Unlock()

	a.logger.Debug("timer fired", "action", a.id)

	if handler == nil {
		unhandled(ErrTimeout)
		return
	}
	handler(ErrTimeout)
}

// stopTimerLocked cancels a pending timer. Caller must hold a.mu.
func (a *Action) stopTimerLocked() {
	if a.timer == nil {
		return
	}
	a.timer.timer.Stop()
	a.timer = nil
	a.logger.Debug("timer stopped", "action", a.id)
}

// TimerActive reports whether a timeout timer is currently armed
func (a *Action) TimerActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}
