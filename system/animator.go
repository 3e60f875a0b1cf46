package system

import (
	"fmt"
	"sort"
	"sync"

	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/component"
	"github.com/milk9111/animevents/prefabs"
)

// Animator owns the clips of one animated object and forwards their frame
// events to the object's registry. It is the integration layer between the
// animation clock and the event registry. Without a registry frame events are
// dropped.
type Animator struct {
	// Trace, when set, sees every event before the registry handles it.
	Trace func(clip string, frame int, name string)

	mu       sync.Mutex
	registry *animevent.Registry
	spec     *prefabs.AnimationSpec
	clips    map[string]*component.Animation
	events   map[string]*component.AnimationEventMap
	current  string
}

// NewAnimator builds clips from spec and starts the spec's current clip. reg
// may be nil and set later with SetRegistry.
func NewAnimator(spec *prefabs.AnimationSpec, reg *animevent.Registry) (*Animator, error) {
	a := &Animator{registry: reg}
	if err := a.Load(spec); err != nil {
		return nil, err
	}
	return a, nil
}

// Load replaces the clip set. The playing clip keeps running from its first
// frame if it still exists in the new spec.
func (a *Animator) Load(spec *prefabs.AnimationSpec) error {
	if a == nil {
		return fmt.Errorf("animator is nil")
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	clips := make(map[string]*component.Animation, len(spec.Defs))
	events := make(map[string]*component.AnimationEventMap, len(spec.Defs))
	for key, def := range spec.Defs {
		anim, evts := component.NewAnimationFromDef(key, def)
		component.BindAnimationEvents(anim, evts, clipSink{a: a, clip: key, anim: anim})
		clips[key] = anim
		events[key] = evts
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.current
	a.spec = spec
	a.clips = clips
	a.events = events
	a.current = ""
	switch {
	case prev != "" && clips[prev] != nil:
		a.current = prev
	case spec.Current != "":
		a.current = spec.Current
	}
	return nil
}

// SetRegistry replaces the registry that receives frame events.
func (a *Animator) SetRegistry(reg *animevent.Registry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry = reg
}

// Registry returns the registry that receives frame events.
func (a *Animator) Registry() *animevent.Registry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry
}

// Play switches to the named clip and restarts it.
func (a *Animator) Play(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	anim, ok := a.clips[name]
	if !ok {
		return fmt.Errorf("unknown clip %q", name)
	}
	a.current = name
	anim.Reset()
	return nil
}

// Update advances the current clip by one tick. Frame events fire on the
// calling goroutine, outside the animator lock.
func (a *Animator) Update() {
	a.mu.Lock()
	anim := a.clips[a.current]
	a.mu.Unlock()
	anim.Update()
}

// Current returns the playing clip name and clock.
func (a *Animator) Current() (string, *component.Animation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current, a.clips[a.current]
}

// Clip returns the definition of the named clip.
func (a *Animator) Clip(name string) (prefabs.AnimationDefSpec, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	def, ok := a.spec.Defs[name]
	return def, ok
}

// Clips returns the clip names, sorted.
func (a *Animator) Clips() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.clips))
	for name := range a.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EventNames returns every event name the clips can fire, sorted.
func (a *Animator) EventNames() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	merged := component.NewAnimationEventMap()
	for _, evts := range a.events {
		for frame, names := range evts.Frames {
			for _, n := range names {
				merged.Add(frame, n)
			}
		}
	}
	return merged.Names()
}

type clipSink struct {
	a    *Animator
	clip string
	anim *component.Animation
}

func (s clipSink) Handle(name string) {
	if s.a.Trace != nil {
		s.a.Trace(s.clip, s.anim.Frame(), name)
	}
	s.a.Registry().Handle(name)
}
