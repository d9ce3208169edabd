package librevent

import "github.com/cockroachdb/errors"

var (
	// ErrTimeout is delivered to an action's ErrorHandler when its timer expires
	ErrTimeout = errors.New("event timeout")

	// ErrForwarded is delivered to an action's ErrorHandler by an ErrorOnEvent forwarder
	ErrForwarded = errors.New("event error")

	// ErrNoErrorHandler is returned by an ErrorOnEvent forwarder whose action has no handler
	ErrNoErrorHandler = errors.New("no error handler")
)

// panicOnTimeout is the default unhandled-timeout hook. A timeout nobody
// listens for is fatal.
func panicOnTimeout(err error) {
	panic(err)
}
