package component

import "sync/atomic"

// ComponentID identifies a component type within a process.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key a world stores T under.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Name() string {
	return k.name
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is declared once per component type, usually as a package
// variable next to the type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: ComponentID(nextComponentID.Add(1)), name: name}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
