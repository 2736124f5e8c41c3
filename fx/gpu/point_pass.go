package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/driftlab/drift/fx/core"
)

// PointPass draws every particle record as a single point. The vertex buffer
// is the same buffer the update pass writes; inactive records are clipped in
// the vertex shader rather than filtered on the CPU.
type PointPass struct {
	Pipeline *wgpu.RenderPipeline
	Device   *wgpu.Device
}

func NewPointPass(device *wgpu.Device, wgsl string, format wgpu.TextureFormat) (*PointPass, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ParticlePoints Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "ParticlePoints Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: core.ParticleStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         0,
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         16,
							ShaderLocation: 1,
						},
						{
							Format:         wgpu.VertexFormatUint32,
							Offset:         32,
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyPointList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	return &PointPass{Pipeline: pipeline, Device: device}, nil
}

// Record encodes the point draw into an already-begun render pass.
func (p *PointPass) Record(pass *wgpu.RenderPassEncoder, mgr *BufferManager) {
	if mgr.ParticleCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, mgr.PointBindGroup0, nil)
	pass.SetVertexBuffer(0, mgr.ParticleBuf, 0, mgr.ParticleBuf.GetSize())
	pass.Draw(mgr.ParticleCount, 1, 0, 0)
}
