package ecs

import (
	"testing"

	"github.com/milk9111/animevents/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestWorldSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)
	reused := CreateEntity(w)

	if old.id() != reused.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), reused.id())
	}
	if reused.generation() != old.generation()+1 {
		t.Fatalf("expected generation %d, got %d", old.generation()+1, reused.generation())
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle should not be alive")
	}
	if !IsAlive(w, reused) {
		t.Fatalf("reused handle should be alive")
	}
	if Entity(0).Valid() {
		t.Fatalf("zero entity should be invalid")
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]("int")
	strs := component.NewComponent[string]("string")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"add_int_e1", func(t *testing.T) {
			if err := Add(w, e1, ints, 7); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}},
		{"add_both_e2", func(t *testing.T) {
			if err := Add(w, e2, ints, 9); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if err := Add(w, e2, strs, "two"); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}},
		{"add_string_e3", func(t *testing.T) {
			if err := Add(w, e3, strs, "three"); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}},
		{"get_and_has", func(t *testing.T) {
			if v, ok := Get(w, e1, ints); !ok || v != 7 {
				t.Fatalf("Get(e1) = %d, %v", v, ok)
			}
			if Has(w, e1, strs) {
				t.Fatalf("e1 should not have a string")
			}
		}},
		{"for_each2_intersects", func(t *testing.T) {
			var seen []Entity
			ForEach2(w, ints, strs, func(e Entity, i int, s string) {
				if i != 9 || s != "two" {
					t.Fatalf("unexpected values %d %q", i, s)
				}
				seen = append(seen, e)
			})
			if len(seen) != 1 || seen[0] != e2 {
				t.Fatalf("expected only e2, got %v", seen)
			}
		}},
		{"remove_keeps_others", func(t *testing.T) {
			if !Remove(w, e1, ints) {
				t.Fatalf("Remove should report true")
			}
			if Remove(w, e1, ints) {
				t.Fatalf("second Remove should report false")
			}
			if v, ok := Get(w, e2, ints); !ok || v != 9 {
				t.Fatalf("e2 int lost after removing e1: %d, %v", v, ok)
			}
		}},
		{"destroy_drops_components", func(t *testing.T) {
			DestroyEntity(w, e2)
			count := 0
			ForEach(w, strs, func(Entity, string) { count++ })
			if count != 1 {
				t.Fatalf("expected 1 string left, got %d", count)
			}
			if err := Add(w, e2, ints, 1); err != ErrEntityNotAlive {
				t.Fatalf("expected ErrEntityNotAlive, got %v", err)
			}
		}},
		{"invalid_kind", func(t *testing.T) {
			var zero component.ComponentHandle[int]
			if err := Add(w, e1, zero, 1); err != ErrInvalidComponentKind {
				t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

type countingSystem struct {
	order *[]string
	name  string
}

func (s countingSystem) Update(*World) {
	*s.order = append(*s.order, s.name)
}

func TestWorldSystemsRunInOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(countingSystem{&order, "a"})
	w.AddSystem(nil)
	w.AddSystem(countingSystem{&order, "b"})

	w.Update()
	w.Update()

	want := []string{"a", "b", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}
