package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testParams() EmitterParams {
	return EmitterParams{
		Center:          mgl32.Vec2{0.2, -0.1},
		Radius:          1.0,
		SpeedMin:        0.05,
		SpeedMax:        0.35,
		MaxParticles:    64,
		MaxEmitPerFrame: 8,
	}
}

func TestEmitterParams_ResetParticle(t *testing.T) {
	params := testParams()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		var p Particle
		params.ResetParticle(rng, &p)

		dx := p.Pos[0] - params.Center.X()
		dy := p.Pos[1] - params.Center.Y()
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		assert.LessOrEqual(t, dist, float32(SpawnRadius), "spawn outside the emitter disk")

		speed := float32(math.Hypot(float64(p.Vel[0]), float64(p.Vel[1])))
		assert.GreaterOrEqual(t, speed, params.SpeedMin-1e-5)
		assert.LessOrEqual(t, speed, params.SpeedMax+1e-5)

		// z and w lanes are padding only
		assert.Zero(t, p.Pos[2])
		assert.Zero(t, p.Vel[2])
	}
}

func TestEmitterParams_ResetParticleKeepsActiveFlag(t *testing.T) {
	params := testParams()
	rng := rand.New(rand.NewSource(2))

	p := Particle{Active: 1}
	params.ResetParticle(rng, &p)
	assert.Equal(t, uint32(1), p.Active)
}

func TestEmitterParams_OutOfBounds(t *testing.T) {
	params := testParams()

	inside := Particle{Pos: [4]float32{params.Center.X() + 0.5, params.Center.Y(), 0, 0}}
	assert.False(t, params.OutOfBounds(&inside))

	outside := Particle{Pos: [4]float32{params.Center.X() + 1.01, params.Center.Y(), 0, 0}}
	assert.True(t, params.OutOfBounds(&outside))

	// Exactly on the circle is still in bounds
	onEdge := Particle{Pos: [4]float32{params.Center.X() + params.Radius, params.Center.Y(), 0, 0}}
	assert.False(t, params.OutOfBounds(&onEdge))
}

func TestEmitterParams_NewVelocityRange(t *testing.T) {
	params := testParams()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		v := params.NewVelocity(rng)
		speed := v.Len()
		assert.GreaterOrEqual(t, speed, params.SpeedMin-1e-5)
		assert.LessOrEqual(t, speed, params.SpeedMax+1e-5)
	}
}
