package drift

import (
	"reflect"
	"testing"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	if len(ecs.archetypes) != 0 {
		t.Errorf("Expected archetypes to be empty, got %v", ecs.archetypes)
	}
	if len(ecs.entityIndex) != 0 {
		t.Errorf("Expected entityIndex to be empty, got %v", ecs.entityIndex)
	}
	if ecs.entityIdCounter != 0 {
		t.Errorf("Expected entityIdCounter to be 0, got %v", ecs.entityIdCounter)
	}
	if ecs.componentIdCounter != 0 {
		t.Errorf("Expected componentIdCounter to be 0, got %v", ecs.componentIdCounter)
	}
}

func TestEcs_AddEntity(t *testing.T) {
	ecs := MakeEcs()

	entityId := ecs.addEntity()
	if _, ok := ecs.entityIndex[entityId]; !ok {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId)
	}

	type TestComponent struct {
		x string
	}
	entityId2 := ecs.addEntity(TestComponent{x: "test"})
	if _, ok := ecs.entityIndex[entityId2]; !ok {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId2)
	}

	archId1 := ecs.entityIndex[entityId]
	archId2 := ecs.entityIndex[entityId2]
	if archId1 == archId2 {
		t.Errorf("Entities with different components ended up in the same Archetype")
	}
}

func TestEcs_AddComponents(t *testing.T) {
	type TestComponent0 struct{ a int }
	type TestComponent1 struct{ x string }
	type TestComponent2 struct{ y string }

	ecs := MakeEcs()

	entityId := ecs.addEntity(TestComponent0{a: 1337})
	srcArchId := ecs.entityIndex[entityId]

	// Add components, one by value, one by pointer
	ecs.addComponents(entityId, TestComponent1{x: "test"}, &TestComponent2{y: "hello"})

	dstArchId := ecs.entityIndex[entityId]
	if srcArchId == dstArchId {
		t.Errorf("Expected the entity to move to a wider archetype")
	}

	arch := ecs.archetypes[dstArchId]
	if len(arch.key) != 3 {
		t.Errorf("Expected destination archetype with 3 components, got %d", len(arch.key))
	}

	row, ok := arch.entities[entityId]
	if !ok {
		t.Fatalf("Entity missing from destination archetype")
	}

	id0 := ecs.getComponentId(reflect.TypeOf(TestComponent0{}))
	got := arch.componentData[id0].([]TestComponent0)[row]
	if got.a != 1337 {
		t.Errorf("Expected carried-over component value 1337, got %d", got.a)
	}
}

func TestEcs_RemoveEntity_RecyclesRow(t *testing.T) {
	type TestComponent struct{ v int }

	ecs := MakeEcs()

	e1 := ecs.addEntity(TestComponent{v: 1})
	archId := ecs.entityIndex[e1]
	arch := ecs.archetypes[archId]
	removedRow := arch.entities[e1]

	ecs.removeEntity(e1)
	if _, ok := ecs.entityIndex[e1]; ok {
		t.Errorf("Expected removed entity to be gone from entityIndex")
	}

	e2 := ecs.addEntity(TestComponent{v: 2})
	if arch.entities[e2] != removedRow {
		t.Errorf("Expected the recycled row %v to be reused, got %v", removedRow, arch.entities[e2])
	}
}
