package ecs

import (
	"errors"

	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/ecs/component"
)

var ErrMissingAnimation = errors.New("ecs: entity has no animation component")

// AttachAnimationEvents gives e an event registry fed by its animation
// component. If e already has one it is returned unchanged.
func AttachAnimationEvents(w *World, e Entity, opts ...animevent.Option) (*animevent.Registry, error) {
	if !IsAlive(w, e) {
		return nil, ErrEntityNotAlive
	}
	if reg, ok := Get(w, e, component.AnimationEventsComponent); ok {
		return reg, nil
	}
	anim, ok := Get(w, e, component.AnimationComponent)
	if !ok || anim == nil {
		return nil, ErrMissingAnimation
	}

	reg := animevent.New(opts...)
	if err := Add(w, e, component.AnimationEventsComponent, reg); err != nil {
		return nil, err
	}
	anim.SetRegistry(reg)
	return reg, nil
}

// DetachAnimationEvents removes e's registry. Its frame events are dropped
// from then on.
func DetachAnimationEvents(w *World, e Entity) bool {
	if !Remove(w, e, component.AnimationEventsComponent) {
		return false
	}
	if anim, ok := Get(w, e, component.AnimationComponent); ok && anim != nil {
		anim.SetRegistry(nil)
	}
	return true
}
