package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_SeedsInactive(t *testing.T) {
	pool := NewPool(testParams(), 42)

	require.Len(t, pool.Particles, 64)
	assert.Equal(t, 0, pool.Alive())
	for i := range pool.Particles {
		assert.False(t, pool.Params.OutOfBounds(&pool.Particles[i]))
	}
}

func TestPool_StepEmissionQuota(t *testing.T) {
	pool := NewPool(testParams(), 42)

	emitted := pool.Step(1.0/60.0, 0)
	assert.Equal(t, pool.Params.MaxEmitPerFrame, emitted)
	assert.Equal(t, emitted, pool.Alive())

	// A burst widens the quota for one step only
	emitted = pool.Step(1.0/60.0, 16)
	assert.LessOrEqual(t, emitted, pool.Params.MaxEmitPerFrame+16)
	assert.Greater(t, emitted, pool.Params.MaxEmitPerFrame)
}

func TestPool_StepIntegratesAndRecycles(t *testing.T) {
	params := testParams()
	params.MaxParticles = 1
	params.MaxEmitPerFrame = 1
	pool := NewPool(params, 7)

	// First step activates the particle
	pool.Step(0, 0)
	require.Equal(t, 1, pool.Alive())

	p := &pool.Particles[0]
	p.Pos = [4]float32{params.Center.X(), params.Center.Y(), 0, 0}
	p.Vel = [4]float32{1, 0, 0, 0}

	// Moves with pos += vel*dt
	pool.Step(0.5, 0)
	assert.InDelta(t, params.Center.X()+0.5, p.Pos[0], 1e-6)
	assert.Equal(t, uint32(1), p.Active)

	// One more big step leaves the circle and deactivates
	pool.Step(1.0, 0)
	assert.Equal(t, uint32(0), p.Active)

	// The following step re-emits it inside the spawn disk
	pool.Step(0, 0)
	assert.Equal(t, uint32(1), p.Active)
	assert.False(t, params.OutOfBounds(p))
}

func TestPool_StepKeepsActiveInsideCircle(t *testing.T) {
	pool := NewPool(testParams(), 99)

	for i := 0; i < 300; i++ {
		pool.Step(1.0/60.0, 0)
	}
	for i := range pool.Particles {
		p := &pool.Particles[i]
		if p.Active != 0 {
			assert.False(t, pool.Params.OutOfBounds(p), "active particle escaped the circle")
		}
	}
}

func TestPool_Deterministic(t *testing.T) {
	a := NewPool(testParams(), 1234)
	b := NewPool(testParams(), 1234)

	for i := 0; i < 50; i++ {
		a.Step(1.0/60.0, 0)
		b.Step(1.0/60.0, 0)
	}
	assert.Equal(t, a.Particles, b.Particles)
}

func TestPool_Reseed(t *testing.T) {
	pool := NewPool(testParams(), 5)
	for i := 0; i < 10; i++ {
		pool.Step(1.0/60.0, 0)
	}
	require.Greater(t, pool.Alive(), 0)

	pool.Reseed()
	assert.Equal(t, 0, pool.Alive())
	for i := range pool.Particles {
		assert.False(t, pool.Params.OutOfBounds(&pool.Particles[i]))
	}
}

func TestPool_ZeroSpeedRangeStaysAtSpeedMin(t *testing.T) {
	params := testParams()
	params.SpeedMin = 0.2
	params.SpeedMax = 0.2
	pool := NewPool(params, 11)
	pool.Step(0, 0)

	for i := range pool.Particles {
		p := &pool.Particles[i]
		if p.Active == 0 {
			continue
		}
		speed := mgl32.Vec2{p.Vel[0], p.Vel[1]}.Len()
		assert.InDelta(t, 0.2, speed, 1e-5)
	}
}
