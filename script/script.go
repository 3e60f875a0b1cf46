// Package script binds animation events to tengo scripts.
//
// Each compiled script sees three globals:
//
//	event  the event name it was bound to
//	state  a map that survives between invocations of the same callback
//	log    a function writing its arguments to the diagnostic logger
package script

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/prefabs"
)

// Logger receives script output and run errors.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

// Modules exposed to scripts. os and other host-facing modules stay out.
var Modules = []string{"fmt", "math", "text", "times", "rand", "enum"}

// Option configures a Callback.
type Option func(*Callback)

// WithLogger routes script log() output and run errors to l.
func WithLogger(l Logger) Option {
	return func(c *Callback) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds a single run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Callback) {
		c.timeout = d
	}
}

// Callback is a compiled script bound to one event name. Runs of the same
// callback are serialized.
type Callback struct {
	Event  string
	Source string

	mu       sync.Mutex
	compiled *tengo.Compiled
	state    *tengo.Map
	runs     int
	log      Logger
	timeout  time.Duration
}

// Compile compiles src for the given event. source names the script in
// diagnostics.
func Compile(event, source string, src []byte, opts ...Option) (*Callback, error) {
	c := &Callback{
		Event:  event,
		Source: source,
		state:  &tengo.Map{Value: map[string]tengo.Object{}},
		log:    nopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	s := tengo.NewScript(src)
	_ = s.Add("event", event)
	_ = s.Add("state", map[string]any{})
	_ = s.Add("log", &tengo.UserFunction{Name: "log", Value: c.logFunc})
	s.SetImports(stdlib.GetModuleMap(Modules...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", source, err)
	}
	c.compiled = compiled
	return c, nil
}

func (c *Callback) logFunc(args ...tengo.Object) (tengo.Object, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if s, ok := tengo.ToString(a); ok {
			parts = append(parts, s)
		} else {
			parts = append(parts, a.String())
		}
	}
	c.log.Infof("%s: %s", c.Source, strings.Join(parts, " "))
	return tengo.UndefinedValue, nil
}

// Run executes the script once.
func (c *Callback) Run() error {
	if c == nil || c.compiled == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.compiled.Set("state", c.state); err != nil {
		return fmt.Errorf("script: %s: set state: %w", c.Source, err)
	}

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("script: run %s: %w", c.Source, err)
	}
	c.runs++

	// scripts may rebind state to a fresh map
	if m, ok := c.compiled.Get("state").Object().(*tengo.Map); ok {
		c.state = m
	}
	return nil
}

// Action adapts the callback to the registry. Errors are logged, never
// returned to the animation driver.
func (c *Callback) Action() animevent.Action {
	return func() {
		if err := c.Run(); err != nil {
			c.log.Errorf("event %q: %v", c.Event, err)
		}
	}
}

// Runs returns how many times the script completed.
func (c *Callback) Runs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs
}

// State returns a copy of the persisted script state.
func (c *Callback) State() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, _ := tengo.ToInterface(c.state).(map[string]any)
	return out
}

// Loader reads a script by name.
type Loader func(name string) ([]byte, error)

// Bind compiles every binding in spec and subscribes it on reg. Compilation
// stops at the first bad script; callbacks compiled before it stay
// subscribed.
func Bind(reg *animevent.Registry, spec *prefabs.BindingSpec, load Loader, opts ...Option) ([]*Callback, error) {
	if spec == nil {
		return nil, nil
	}
	if load == nil {
		load = prefabs.LoadScript
	}
	callbacks := make([]*Callback, 0, len(spec.Events))
	for i, b := range spec.Events {
		if strings.TrimSpace(b.Name) == "" {
			return callbacks, fmt.Errorf("script: binding %d has no event name", i)
		}
		src, err := load(b.Script)
		if err != nil {
			return callbacks, fmt.Errorf("script: load %s: %w", b.Script, err)
		}
		cb, err := Compile(b.Name, b.Script, src, opts...)
		if err != nil {
			return callbacks, err
		}
		reg.Subscribe(b.Name, cb.Action())
		callbacks = append(callbacks, cb)
	}
	return callbacks, nil
}
