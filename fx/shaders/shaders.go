package shaders

import (
	_ "embed"
)

//go:embed particle_update.wgsl
var ParticleUpdateWGSL string

//go:embed particle_points.wgsl
var ParticlePointsWGSL string

//go:embed text.wgsl
var TextWGSL string
