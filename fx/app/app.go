package app

import (
	"fmt"
	"math/rand"

	"github.com/driftlab/drift/fx/core"
	"github.com/driftlab/drift/fx/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// App drives the GPU side of the particle demo. The particle state lives in a
// single storage buffer; each frame records one command encoder with the
// update compute pass followed by the point render pass, so the render always
// observes the finished update.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	UpdatePass *gpu.UpdatePass
	PointPass  *gpu.PointPass
	TextPass   *gpu.TextPass

	BufferManager *gpu.BufferManager
	Pool          *core.Pool

	// CPUSim runs the particle step on the CPU and uploads the whole pool
	// every frame instead of dispatching the compute pass.
	CPUSim bool
	Paused bool

	TextRenderer *core.TextRenderer
	TextItems    []core.TextItem

	Profiler  *Profiler
	DebugMode bool

	seedRng *rand.Rand

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64
}

func NewApp(window *glfw.Window, params core.EmitterParams, seed int64) *App {
	return &App{
		Window:   window,
		Pool:     core.NewPool(params, seed),
		Profiler: NewProfiler(),
		seedRng:  rand.New(rand.NewSource(seed ^ 0x5eed)),
	}
}

type InitConfig struct {
	UpdateWGSL string
	PointsWGSL string
	TextWGSL   string
	FontPath   string
}

func (a *App) Init(cfg InitConfig) error {
	// WebGPU Init
	a.Instance = wgpu.CreateInstance(nil)

	surface := a.Instance.CreateSurface(GetSurfaceDescriptor(a.Window))
	a.Surface = surface

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return err
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	a.Queue = a.Device.GetQueue()

	// Config
	width, height := a.Window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, a.Device, a.Config)

	// Pipelines
	a.UpdatePass, err = gpu.NewUpdatePass(a.Device, cfg.UpdateWGSL)
	if err != nil {
		return err
	}
	a.PointPass, err = gpu.NewPointPass(a.Device, cfg.PointsWGSL, format)
	if err != nil {
		return err
	}

	// Text Rendering Setup
	if cfg.FontPath != "" {
		a.TextRenderer, err = core.NewTextRenderer(cfg.FontPath, 32)
		if err != nil {
			fmt.Printf("WARNING: Failed to initialize text renderer: %v\n", err)
			a.TextRenderer = nil
		} else {
			a.TextPass, err = gpu.NewTextPass(a.Device, a.Queue, cfg.TextWGSL, a.TextRenderer, format)
			if err != nil {
				fmt.Printf("WARNING: Failed to initialize text pass: %v\n", err)
				a.TextPass = nil
			}
		}
	}

	// Buffers
	a.BufferManager = gpu.NewBufferManager(a.Device)
	a.BufferManager.UploadParticles(a.Pool.Particles)
	a.BufferManager.WriteParams(a.Pool.Params, 0, 0, a.seedRng.Uint32())
	a.BufferManager.ResetEmitCounter()
	a.BufferManager.CreateBindGroups(a.UpdatePass.Pipeline, a.PointPass.Pipeline)

	a.LastRenderTime = glfw.GetTime()

	return nil
}

func (a *App) Resize(w, h int) {
	if w > 0 && h > 0 {
		a.Config.Width = uint32(w)
		a.Config.Height = uint32(h)
		a.Surface.Configure(a.Adapter, a.Device, a.Config)
	}
}

// Update advances one frame of simulation state. burstEmit widens this
// frame's emission quota beyond the steady per-frame cap.
func (a *App) Update(dt float32, burstEmit int) {
	if a.Paused {
		dt = 0
	}

	maxEmit := a.Pool.Params.MaxEmitPerFrame + burstEmit

	a.Profiler.BeginScope("update")
	if a.CPUSim {
		if !a.Paused {
			a.Pool.Step(dt, burstEmit)
		}
		recreated := a.BufferManager.UploadParticles(a.Pool.Particles)
		a.BufferManager.WriteParams(a.Pool.Params, dt, 0, a.seedRng.Uint32())
		if recreated {
			a.BufferManager.CreateBindGroups(a.UpdatePass.Pipeline, a.PointPass.Pipeline)
		}
	} else {
		a.BufferManager.WriteParams(a.Pool.Params, dt, uint32(maxEmit), a.seedRng.Uint32())
		a.BufferManager.ResetEmitCounter()
	}
	a.Profiler.EndScope("update")

	a.Profiler.SetCount("particles", len(a.Pool.Particles))

	if a.DebugMode && a.TextRenderer != nil {
		a.DrawText(fmt.Sprintf("FPS: %.1f", a.FPS), 10, 10, 1.0, [4]float32{1, 1, 0, 1})
		mode := "gpu"
		if a.CPUSim {
			mode = "cpu"
		}
		a.DrawText(fmt.Sprintf("sim: %s  particles: %d", mode, len(a.Pool.Particles)), 10, 10+a.TextRenderer.LineHeight(1), 1.0, [4]float32{1, 1, 1, 1})
	}

	// Text Buffers
	if a.TextPass != nil && len(a.TextItems) > 0 {
		vertices := a.TextRenderer.BuildVertices(a.TextItems, int(a.Config.Width), int(a.Config.Height))
		a.TextPass.Upload(a.Queue, vertices)
	} else if a.TextPass != nil {
		a.TextPass.VertexCount = 0
	}
}

func (a *App) ClearText() {
	a.TextItems = a.TextItems[:0]
}

func (a *App) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	a.TextItems = append(a.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

func (a *App) Render() {
	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		fmt.Printf("ERROR: GetCurrentTexture failed: %v\n", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		fmt.Printf("ERROR: CreateView failed: %v\n", err)
		return
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		fmt.Printf("ERROR: CreateCommandEncoder failed: %v\n", err)
		return
	}

	// Compute Pass
	if !a.CPUSim && !a.Paused {
		a.UpdatePass.Record(encoder, a.BufferManager)
	}

	// Render Pass
	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.02, G: 0.02, B: 0.03, A: 1},
		}},
	})
	a.PointPass.Record(rPass, a.BufferManager)
	if a.TextPass != nil {
		a.TextPass.Record(rPass)
	}
	err = rPass.End()
	if err != nil {
		fmt.Printf("ERROR: Render pass End failed: %v\n", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		fmt.Printf("ERROR: Encoder Finish failed: %v\n", err)
		return
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()

	// Update FPS
	now := glfw.GetTime()
	if a.LastRenderTime > 0 {
		a.FrameCount++
		a.FPSTime += now - a.LastRenderTime
		if a.FPSTime >= 1.0 {
			a.FPS = float64(a.FrameCount) / a.FPSTime
			a.FrameCount = 0
			a.FPSTime = 0
		}
	}
	a.LastRenderTime = now
}

func (a *App) Release() {
	if a.BufferManager != nil {
		a.BufferManager.Release()
	}
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}
