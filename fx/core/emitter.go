package core

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// SpawnRadius is the disk around the emitter center in which re-emitted
// particles appear, in clip-space units.
const SpawnRadius = 0.1

// EmitterParams describes one point emitter. Center and radius are in clip
// space ([-1,1] on both axes), speeds in clip units per second.
type EmitterParams struct {
	Center   mgl32.Vec2
	Radius   float32
	SpeedMin float32
	SpeedMax float32

	MaxParticles    int
	MaxEmitPerFrame int
}

func (e EmitterParams) RadiusSqr() float32 {
	return e.Radius * e.Radius
}

// OutOfBounds reports whether p left the emitter's bounding circle.
func (e EmitterParams) OutOfBounds(p *Particle) bool {
	dx := p.Pos[0] - e.Center.X()
	dy := p.Pos[1] - e.Center.Y()
	return dx*dx+dy*dy > e.RadiusSqr()
}

// ResetParticle re-seeds position and velocity. The active flag is left
// untouched; activation is an update-step decision.
func (e EmitterParams) ResetParticle(rng *rand.Rand, p *Particle) {
	dir := randomUnitVec(rng)
	spawnDist := rng.Float32() * SpawnRadius

	p.Pos = [4]float32{
		e.Center.X() + dir.X()*spawnDist,
		e.Center.Y() + dir.Y()*spawnDist,
		0, 0,
	}

	vel := e.NewVelocity(rng)
	p.Vel = [4]float32{vel.X(), vel.Y(), 0, 0}
}

// NewVelocity returns a vector with random direction and a magnitude uniform
// in [SpeedMin, SpeedMax].
func (e EmitterParams) NewVelocity(rng *rand.Rand) mgl32.Vec2 {
	speed := e.SpeedMin + rng.Float32()*(e.SpeedMax-e.SpeedMin)
	return randomUnitVec(rng).Mul(speed)
}

func randomUnitVec(rng *rand.Rand) mgl32.Vec2 {
	theta := float64(rng.Float32()) * 2.0 * math.Pi
	return mgl32.Vec2{float32(math.Cos(theta)), float32(math.Sin(theta))}
}
