package drift

import (
	"time"
)

// Time is the frame clock resource. Dt is the last frame duration in seconds.
type Time struct {
	Now time.Time
	Dt  float64
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Now: time.Now(),
	})
	cmd.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()
	timeResource.Dt = now.Sub(timeResource.Now).Seconds()
	timeResource.Now = now
}
