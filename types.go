package librevent

import "log/slog"

// Callback is a unit of work registered on an Action with Do
type Callback func() error

// ErrorHandler receives errors escalated by an Action (timeouts, forwarded event errors)
type ErrorHandler func(err error)

// Logger is the default logger used when none is provided
var Logger = slog.Default()
