package ecs

import "github.com/milk9111/animevents/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	kind := handle.Kind()
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if !IsAlive(w, e) {
		return ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.store(handle.Kind().ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(handle.Kind().ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	if !IsAlive(w, e) {
		return zero, false
	}
	value, ok := w.store(handle.Kind().ID(), false).Get(e)
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach calls fn for every entity that has the component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(handle.Kind().ID(), false).Entities() {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every entity that has both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, A, B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ha.Kind().ID(), false)
	sb := w.store(hb.Kind().ID(), false)
	if sa.Len() > sb.Len() {
		// iterate the smaller set
		for _, e := range sb.Entities() {
			forEach2Visit(w, e, ha, hb, fn)
		}
		return
	}
	for _, e := range sa.Entities() {
		forEach2Visit(w, e, ha, hb, fn)
	}
}

func forEach2Visit[A, B any](w *World, e Entity, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, A, B)) {
	a, ok := Get(w, e, ha)
	if !ok {
		return
	}
	b, ok := Get(w, e, hb)
	if !ok {
		return
	}
	fn(e, a, b)
}
