package component

import (
	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/system"
)

// AnimationComponent is the animation playback capability of an entity.
var AnimationComponent = NewComponent[*system.Animator]("animation")

// AnimationEventsComponent is the event registry fed by the entity's
// AnimationComponent. It may only be attached next to one.
var AnimationEventsComponent = NewComponent[*animevent.Registry]("animation_events")
