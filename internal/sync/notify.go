package sync

import "log/slog"

// Notifier displays a transient user-facing message. Fire-and-forget: no
// acknowledgment, no queuing guarantees beyond call order.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// NewLogNotifier returns a Notifier that routes messages to the logger.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(msg string) {
		logger.Info(msg)
	})
}
