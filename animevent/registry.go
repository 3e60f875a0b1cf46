package animevent

import (
	"sort"
	"strings"
	"sync"
)

// Action is a callback fired for a named animation event.
type Action func()

// Outcome describes what Handle did with an event.
type Outcome string

const (
	Invoked Outcome = "invoked"
	Skipped Outcome = "skipped"
	Missing Outcome = "missing"
)

// Registry maps case-insensitive animation event names to callbacks.
// It is safe for concurrent use. A callback that was loaded by Handle may
// still run after a concurrent Unsubscribe of the same name.
type Registry struct {
	events sync.Map // string -> Action

	log Logger
	obs Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the diagnostic logger. Pass a no-op logger in production.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver sets an observer notified of every operation.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.obs = o
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{log: nopLogger{}, obs: nopObserver{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Key returns the normalized form of an event name.
func Key(name string) string {
	return strings.ToLower(name)
}

// Subscribe registers fn under name. The first subscription wins: if the name
// is already taken the existing callback is kept and a diagnostic is logged.
// A nil fn is stored and skipped when the event fires.
func (r *Registry) Subscribe(name string, fn Action) {
	if r == nil {
		return
	}
	key := Key(name)
	_, loaded := r.events.LoadOrStore(key, fn)
	r.obs.Subscribed(key, !loaded)
	if loaded {
		r.log.Errorf("event %q is already subscribed", name)
	}
}

// Unsubscribe removes the callback registered under name.
func (r *Registry) Unsubscribe(name string) {
	if r == nil {
		return
	}
	key := Key(name)
	_, removed := r.events.LoadAndDelete(key)
	r.obs.Unsubscribed(key, removed)
	if !removed {
		r.log.Errorf("event %q is not found and cannot be unsubscribed", name)
	}
}

// Handle invokes the callback registered under name on the calling goroutine.
// This is the entry point wired to the animation driver's frame events.
func (r *Registry) Handle(name string) {
	if r == nil {
		return
	}
	key := Key(name)
	v, ok := r.events.Load(key)
	if !ok {
		r.obs.Handled(key, Missing)
		r.log.Warnf("event %q is not subscribed; consider removing it as it's unused", name)
		return
	}
	fn, _ := v.(Action)
	if fn == nil {
		r.obs.Handled(key, Skipped)
		return
	}
	r.obs.Handled(key, Invoked)
	fn()
}

// Has reports whether a callback (possibly nil) is registered under name.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.events.Load(Key(name))
	return ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	r.events.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Names returns the registered normalized names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	var names []string
	r.events.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}
