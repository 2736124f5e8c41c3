package core

// Particle matches the WGSL layout in particle_update.wgsl:
//
//	struct Particle { pos: vec4<f32>; vel: vec4<f32>; active: u32; }
//
// Only xy of pos/vel are meaningful; the trailing vec4 lanes keep the record
// 16-byte aligned so the same buffer serves as compute storage and vertex
// input. Stride is 48 bytes.
type Particle struct {
	Pos    [4]float32
	Vel    [4]float32
	Active uint32
	_      [3]uint32
}

const ParticleStride = 48
