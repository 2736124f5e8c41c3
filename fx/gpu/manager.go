package gpu

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/driftlab/drift/fx/core"
)

const simParamsSize = 48

// BufferManager owns the GPU side of the particle system: the shared
// storage/vertex particle buffer, the simulation uniform and the per-frame
// emission quota counter.
type BufferManager struct {
	Device *wgpu.Device

	ParticleBuf *wgpu.Buffer
	ParamsBuf   *wgpu.Buffer
	EmitCtrBuf  *wgpu.Buffer

	ParticleCount uint32

	UpdateBindGroup0 *wgpu.BindGroup
	PointBindGroup0  *wgpu.BindGroup
}

func NewBufferManager(device *wgpu.Device) *BufferManager {
	return &BufferManager{Device: device}
}

func (m *BufferManager) ensureBuffer(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage) bool {
	neededSize := uint64(len(data))
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}

	current := *buf
	if current != nil && current.GetSize() >= neededSize {
		if len(data) > 0 {
			m.Device.GetQueue().WriteBuffer(current, 0, data)
		}
		return false
	}

	if current != nil {
		current.Release()
	}
	newBuf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name,
		Size:  neededSize,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	*buf = newBuf

	if len(data) > 0 {
		m.Device.GetQueue().WriteBuffer(*buf, 0, data)
	}
	return true
}

// UploadParticles (re)creates the particle buffer from the CPU records. The
// buffer doubles as compute storage and point vertex data, so it carries both
// usages. Returns true when the buffer was recreated and bind groups need to
// be rebuilt.
func (m *BufferManager) UploadParticles(particles []core.Particle) bool {
	if len(particles) == 0 {
		particles = make([]core.Particle, 1)
	}
	m.ParticleCount = uint32(len(particles))

	data := unsafe.Slice((*byte)(unsafe.Pointer(&particles[0])), len(particles)*core.ParticleStride)
	return m.ensureBuffer("ParticleBuf", &m.ParticleBuf,
		data, wgpu.BufferUsageStorage|wgpu.BufferUsageVertex)
}

// packSimParams lays out the SimParams uniform.
//
//	struct SimParams {
//	  center: vec2<f32>;      -- 0
//	  radius_sqr: f32;        -- 8
//	  dt: f32;                -- 12
//	  speed_min: f32;         -- 16
//	  speed_max: f32;         -- 20
//	  particle_count: u32;    -- 24
//	  max_emit: u32;          -- 28
//	  seed: u32;              -- 32
//	} -> 48 bytes (padded)
func packSimParams(params core.EmitterParams, dt float32, particleCount, maxEmit, seed uint32) []byte {
	buf := make([]byte, simParamsSize)

	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(params.Center.X()))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(params.Center.Y()))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(params.RadiusSqr()))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(dt))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(params.SpeedMin))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(params.SpeedMax))
	binary.LittleEndian.PutUint32(buf[24:], particleCount)
	binary.LittleEndian.PutUint32(buf[28:], maxEmit)
	binary.LittleEndian.PutUint32(buf[32:], seed)

	return buf
}

// WriteParams uploads the SimParams uniform.
func (m *BufferManager) WriteParams(params core.EmitterParams, dt float32, maxEmit uint32, seed uint32) {
	buf := packSimParams(params, dt, m.ParticleCount, maxEmit, seed)

	if m.ParamsBuf == nil {
		var err error
		m.ParamsBuf, err = m.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "SimParamsUB",
			Size:  simParamsSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			panic(err)
		}
	}
	m.Device.GetQueue().WriteBuffer(m.ParamsBuf, 0, buf)
}

// ResetEmitCounter zeroes the atomic emission quota counter. Must run before
// every compute dispatch; the quota is per frame.
func (m *BufferManager) ResetEmitCounter() {
	if m.EmitCtrBuf == nil {
		var err error
		m.EmitCtrBuf, err = m.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "EmitCounterBuf",
			Size:  16,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			panic(err)
		}
	}
	m.Device.GetQueue().WriteBuffer(m.EmitCtrBuf, 0, make([]byte, 16))
}

// CreateBindGroups builds the bind groups for both pipelines. Call after any
// buffer recreation.
func (m *BufferManager) CreateBindGroups(update *wgpu.ComputePipeline, points *wgpu.RenderPipeline) {
	var err error

	m.UpdateBindGroup0, err = m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ParticleUpdateBG0",
		Layout: update.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.ParamsBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: m.ParticleBuf, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: m.EmitCtrBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}

	m.PointBindGroup0, err = m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ParticlePointsBG0",
		Layout: points.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.ParamsBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}
}

func (m *BufferManager) Release() {
	for _, buf := range []*wgpu.Buffer{m.ParticleBuf, m.ParamsBuf, m.EmitCtrBuf} {
		if buf != nil {
			buf.Release()
		}
	}
	m.ParticleBuf, m.ParamsBuf, m.EmitCtrBuf = nil, nil, nil
}
