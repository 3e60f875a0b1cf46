package animevent

// Logger receives development diagnostics. None of them are errors for the
// caller; production builds inject a no-op.
type Logger interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Observer is notified after each registry operation.
type Observer interface {
	Subscribed(key string, added bool)
	Unsubscribed(key string, removed bool)
	Handled(key string, outcome Outcome)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

type nopObserver struct{}

func (nopObserver) Subscribed(string, bool) {}
func (nopObserver) Unsubscribed(string, bool) {}
func (nopObserver) Handled(string, Outcome) {}
