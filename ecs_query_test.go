package drift

import (
	"testing"
)

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	app := NewApp()
	cmd := app.Commands()
	ecs := app.ecs

	ecs.addEntity(Comp1{a: 1})                                 // comp1 only                       -- shouldn't match
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})          // comp1 & comp2                    -- should match
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{}) // comp1 & comp2 + something extra  -- should match
	ecs.addEntity(Comp1{a: 4}, Comp3{})                        // comp1 + something extra          -- shouldn't match
	ecs.addEntity(Comp2{b: 3.14})                              // comp2 only                       -- shouldn't match

	// Archetype and entity iteration order is undefined; collect and compare.
	got := map[EntityId]Comp1{}
	MakeQuery2[Comp1, Comp2](cmd).Map(func(entityId EntityId, c1 *Comp1, c2 *Comp2) bool {
		got[entityId] = *c1
		return true
	})

	if len(got) != 2 {
		t.Fatalf("Unexpected number of results, got %v", len(got))
	}
	if got[id2].a != 2 {
		t.Errorf("Unexpected component for %v: %+v", id2, got[id2])
	}
	if got[id3].a != 3 {
		t.Errorf("Unexpected component for %v: %+v", id3, got[id3])
	}
}

func TestQuery_MapEarlyStop(t *testing.T) {
	type Comp struct{ a int }

	app := NewApp()
	cmd := app.Commands()
	for i := 0; i < 5; i++ {
		app.ecs.addEntity(Comp{a: i})
	}

	visits := 0
	MakeQuery1[Comp](cmd).Map(func(entityId EntityId, c *Comp) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("Expected Map to stop after the first callback, got %v visits", visits)
	}
}

func TestQuery_MapMutatesInPlace(t *testing.T) {
	type Comp struct{ a int }

	app := NewApp()
	cmd := app.Commands()
	id := app.ecs.addEntity(Comp{a: 1})

	MakeQuery1[Comp](cmd).Map(func(entityId EntityId, c *Comp) bool {
		c.a = 42
		return true
	})

	comps := cmd.GetAllComponents(id)
	if len(comps) != 1 || comps[0].(Comp).a != 42 {
		t.Errorf("Expected in-place mutation to persist, got %+v", comps)
	}
}
