package drift

import (
	"reflect"
)

// Queries iterate archetypes that carry every requested component type. Map
// stops early when the callback returns false.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	id1 := componentIdOf[A](q.ecs)

	for _, arch := range q.ecs.archetypes {
		compData, ok := arch.componentData[id1]
		if !ok {
			continue
		}
		comps1 := compData.([]A)

		for entityId, row := range arch.entities {
			if !m(entityId, &comps1[row]) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	id1 := componentIdOf[A](q.ecs)
	id2 := componentIdOf[B](q.ecs)

	for _, arch := range q.ecs.archetypes {
		compData1, ok := arch.componentData[id1]
		if !ok {
			continue
		}
		compData2, ok := arch.componentData[id2]
		if !ok {
			continue
		}
		comps1 := compData1.([]A)
		comps2 := compData2.([]B)

		for entityId, row := range arch.entities {
			if !m(entityId, &comps1[row], &comps2[row]) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	id1 := componentIdOf[A](q.ecs)
	id2 := componentIdOf[B](q.ecs)
	id3 := componentIdOf[C](q.ecs)

	for _, arch := range q.ecs.archetypes {
		compData1, ok := arch.componentData[id1]
		if !ok {
			continue
		}
		compData2, ok := arch.componentData[id2]
		if !ok {
			continue
		}
		compData3, ok := arch.componentData[id3]
		if !ok {
			continue
		}
		comps1 := compData1.([]A)
		comps2 := compData2.([]B)
		comps3 := compData3.([]C)

		for entityId, row := range arch.entities {
			if !m(entityId, &comps1[row], &comps2[row], &comps3[row]) {
				return
			}
		}
	}
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeOf((*T)(nil)).Elem())
}
