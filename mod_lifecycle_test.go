package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetimeSystem(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	clock := &Time{Dt: 0.4}
	app.addResources(clock)

	eid := cmd.AddEntity(LifetimeComponent{TimeLeft: 1.0})
	app.FlushCommands()

	// Two ticks keep it alive, the third expires it
	lifetimeSystem(clock, cmd)
	app.FlushCommands()
	require.NotNil(t, cmd.GetAllComponents(eid))

	lifetimeSystem(clock, cmd)
	app.FlushCommands()
	require.NotNil(t, cmd.GetAllComponents(eid))

	lifetimeSystem(clock, cmd)
	app.FlushCommands()
	assert.Nil(t, cmd.GetAllComponents(eid))
}

func TestLifetimeSystem_IgnoresZeroDt(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	clock := &Time{Dt: 0}
	app.addResources(clock)

	eid := cmd.AddEntity(LifetimeComponent{TimeLeft: 0.01})
	app.FlushCommands()

	lifetimeSystem(clock, cmd)
	app.FlushCommands()
	assert.NotNil(t, cmd.GetAllComponents(eid))
}
