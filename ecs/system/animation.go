package system

import (
	"github.com/milk9111/animevents/ecs"
	"github.com/milk9111/animevents/ecs/component"
	anim "github.com/milk9111/animevents/system"
)

// AnimationSystem advances every entity's animation once per tick. Frame
// events reach the entity's registry through the animator.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent, func(_ ecs.Entity, a *anim.Animator) {
		a.Update()
	})
}
