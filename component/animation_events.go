package component

import (
	"math"
	"sort"
	"strings"

	"github.com/milk9111/animevents/prefabs"
)

// EventSink receives named animation events. *animevent.Registry satisfies it.
type EventSink interface {
	Handle(name string)
}

// AnimationEventMap stores per-frame event names.
type AnimationEventMap struct {
	Frames map[int][]string
}

// NewAnimationEventMap creates a new event map.
func NewAnimationEventMap() *AnimationEventMap {
	return &AnimationEventMap{Frames: make(map[int][]string)}
}

// Add adds an event for a frame. Blank names and negative frames are dropped.
func (m *AnimationEventMap) Add(frame int, name string) {
	if m == nil || frame < 0 || strings.TrimSpace(name) == "" {
		return
	}
	if m.Frames == nil {
		m.Frames = make(map[int][]string)
	}
	m.Frames[frame] = append(m.Frames[frame], name)
}

// Names returns every distinct event name in the map, sorted.
func (m *AnimationEventMap) Names() []string {
	if m == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, evts := range m.Frames {
		for _, n := range evts {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// BindAnimationEvents registers callbacks on the animation that forward each
// frame's events to the sink, in the order they were added.
func BindAnimationEvents(anim *Animation, events *AnimationEventMap, sink EventSink) {
	if anim == nil || events == nil || sink == nil || len(events.Frames) == 0 {
		return
	}
	for frame, evts := range events.Frames {
		copied := append([]string(nil), evts...)
		anim.AddFrameCallback(frame, func(_ *Animation, _ int) {
			for _, name := range copied {
				sink.Handle(name)
			}
		})
	}
}

// NewAnimationFromDef builds a clock and its event map from a prefab
// definition. The def name falls back to key.
func NewAnimationFromDef(key string, def prefabs.AnimationDefSpec) (*Animation, *AnimationEventMap) {
	name := def.Name
	if name == "" {
		name = key
	}
	fps := int(math.Round(def.FPS))
	anim := NewAnimation(name, def.FrameCount, fps, def.Loop)
	events := NewAnimationEventMap()
	for frame, names := range def.Events {
		for _, n := range names {
			events.Add(frame, n)
		}
	}
	return anim, events
}
