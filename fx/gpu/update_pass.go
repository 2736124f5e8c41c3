package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

const updateWorkgroupSize = 256

// UpdatePass owns the compute pipeline that integrates, retires and re-emits
// particles directly in the shared storage buffer.
type UpdatePass struct {
	Pipeline *wgpu.ComputePipeline
	Device   *wgpu.Device
}

func NewUpdatePass(device *wgpu.Device, wgsl string) (*UpdatePass, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ParticleUpdate CS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, err
	}

	// Layout auto
	pipeline, err := device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: "ParticleUpdate Pipeline",
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return nil, err
	}

	return &UpdatePass{Pipeline: pipeline, Device: device}, nil
}

// Record encodes the update dispatch. It must run on the same encoder as the
// point pass and before it; the pass ordering is what keeps the vertex stage
// from reading half-updated particles.
func (p *UpdatePass) Record(encoder *wgpu.CommandEncoder, mgr *BufferManager) {
	if mgr.ParticleCount == 0 {
		return
	}
	pass := encoder.BeginComputePass(&wgpu.ComputePassDescriptor{Label: "ParticleUpdatePass"})
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, mgr.UpdateBindGroup0, nil)
	groups := (mgr.ParticleCount + updateWorkgroupSize - 1) / updateWorkgroupSize
	pass.DispatchWorkgroups(groups, 1, 1)
	pass.End()
}
