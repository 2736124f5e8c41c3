package drift

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := NewApp().UseStates(1, 2)
	app.state = 1

	// Test changing state
	app.changeState(2)
	if app.nextState != State(2) {
		t.Errorf("The nextState should be set correctly.")
	}
	if !app.stateTransitioning {
		t.Errorf("The stateTransitioning flag should be true.")
	}

	// Test executing state change
	app.executeChangeState(2)
	if app.state != State(2) {
		t.Errorf("The app state should change correctly.")
	}
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()

	// Add a resource
	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	// Check that the resource was added
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	// Add a resource
	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestApp_findResource(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("found"))

	res, ok := findResource[*MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "found", res.name)

	_, ok = findResource[*MockResource2](app)
	assert.False(t, ok)
}

func TestApp_callSystem(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("injected"))

	called := false
	app.callSystem(func(res *MockResource1, cmd *Commands) {
		called = true
		assert.Equal(t, "injected", res.name)
		require.NotNil(t, cmd)
	})
	assert.True(t, called)
}

func TestApp_callSystem_unresolvable(t *testing.T) {
	app := NewApp()
	require.Panics(t, func() {
		app.callSystem(func(res *MockResource2) {})
	})
}

func TestApp_flushCommands(t *testing.T) {
	type comp struct{ v int }

	app := NewApp()
	cmd := app.Commands()

	eid := cmd.AddEntity(comp{v: 7})
	// Buffered until flush
	assert.Nil(t, cmd.GetAllComponents(eid))

	app.FlushCommands()
	comps := cmd.GetAllComponents(eid)
	require.Len(t, comps, 1)
	assert.Equal(t, comp{v: 7}, comps[0])

	cmd.RemoveEntity(eid)
	app.FlushCommands()
	assert.Nil(t, cmd.GetAllComponents(eid))
}
