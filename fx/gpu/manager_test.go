package gpu

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/drift/fx/core"
)

func TestParticleLayoutMatchesShader(t *testing.T) {
	// The Go struct is uploaded byte for byte; any drift from the WGSL
	// struct corrupts every particle after the first.
	assert.Equal(t, uintptr(core.ParticleStride), unsafe.Sizeof(core.Particle{}))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(core.Particle{}.Pos))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(core.Particle{}.Vel))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(core.Particle{}.Active))
}

func TestPackSimParams(t *testing.T) {
	params := core.EmitterParams{
		Center:   mgl32.Vec2{0.25, -0.5},
		Radius:   2.0,
		SpeedMin: 0.1,
		SpeedMax: 0.4,
	}

	buf := packSimParams(params, 0.016, 100000, 256, 0xDEADBEEF)
	require.Len(t, buf, simParamsSize)

	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	u32 := func(off int) uint32 {
		return binary.LittleEndian.Uint32(buf[off:])
	}

	assert.Equal(t, float32(0.25), f32(0))
	assert.Equal(t, float32(-0.5), f32(4))
	assert.Equal(t, float32(4.0), f32(8)) // radius squared
	assert.Equal(t, float32(0.016), f32(12))
	assert.Equal(t, float32(0.1), f32(16))
	assert.Equal(t, float32(0.4), f32(20))
	assert.Equal(t, uint32(100000), u32(24))
	assert.Equal(t, uint32(256), u32(28))
	assert.Equal(t, uint32(0xDEADBEEF), u32(32))

	// Trailing pad stays zeroed for a stable uniform
	for off := 36; off < simParamsSize; off += 4 {
		assert.Equal(t, uint32(0), u32(off))
	}
}
