package core

import (
	"math/rand"
)

// Pool is the CPU simulation of the particle lifecycle. It applies the exact
// policy the compute shader runs on the GPU: active particles integrate and
// are deactivated once outside the bounding circle; inactive particles are
// re-emitted with fresh random state, at most MaxEmitPerFrame per step.
//
// The GPU path uploads the pool once at init and never reads it back; the CPU
// path re-uploads it every frame.
type Pool struct {
	Params    EmitterParams
	Particles []Particle

	rng *rand.Rand
}

func NewPool(params EmitterParams, seed int64) *Pool {
	if params.MaxParticles <= 0 {
		params.MaxParticles = 1
	}
	pool := &Pool{
		Params:    params,
		Particles: make([]Particle, params.MaxParticles),
		rng:       rand.New(rand.NewSource(seed)),
	}
	for i := range pool.Particles {
		pool.Params.ResetParticle(pool.rng, &pool.Particles[i])
	}
	return pool
}

// Step advances the simulation by dt seconds. extraEmit raises this step's
// emission quota (used for burst events). Returns the number of particles
// emitted.
func (pool *Pool) Step(dt float32, extraEmit int) int {
	quota := pool.Params.MaxEmitPerFrame + extraEmit
	emitted := 0

	for i := range pool.Particles {
		p := &pool.Particles[i]

		if p.Active != 0 {
			p.Pos[0] += p.Vel[0] * dt
			p.Pos[1] += p.Vel[1] * dt
			if pool.Params.OutOfBounds(p) {
				p.Active = 0
			}
			continue
		}

		if emitted < quota {
			pool.Params.ResetParticle(pool.rng, p)
			p.Active = 1
			emitted++
		}
	}
	return emitted
}

// Reseed rewinds every particle to a fresh inactive spawn state.
func (pool *Pool) Reseed() {
	for i := range pool.Particles {
		pool.Params.ResetParticle(pool.rng, &pool.Particles[i])
		pool.Particles[i].Active = 0
	}
}

// Alive counts currently active particles.
func (pool *Pool) Alive() int {
	n := 0
	for i := range pool.Particles {
		if pool.Particles[i].Active != 0 {
			n++
		}
	}
	return n
}
