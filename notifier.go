package papertrade

import "github.com/rs/zerolog"

// Notifier displays the outcome of trades to the user. Calls are fire and
// forget.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// LogNotifier writes messages to a logger.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Success(msg string) { n.Logger.Info().Str("outcome", "success").Msg(msg) }
func (n LogNotifier) Error(msg string)   { n.Logger.Warn().Str("outcome", "error").Msg(msg) }

// notify sends msg to n. A panic in the notifier is logged and swallowed: a
// display failure is never a trade failure.
func notify(n Notifier, logger zerolog.Logger, success bool, msg string) {
	if n == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Str("message", msg).Msg("notifier failed")
		}
	}()
	if success {
		n.Success(msg)
	} else {
		n.Error(msg)
	}
}
