package drift

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	fx_app "github.com/driftlab/drift/fx/app"
	"github.com/driftlab/drift/fx/core"
	"github.com/driftlab/drift/fx/shaders"
)

// ParticleEmitterComponent drives the single emitter. Edits from any system
// are synced to the GPU uniform on the next frame.
type ParticleEmitterComponent struct {
	Center   mgl32.Vec2
	Radius   float32
	SpeedMin float32
	SpeedMax float32
}

// ParticleBurstComponent widens the emission quota by Count on every frame
// the entity exists. Pair it with a LifetimeComponent for a timed burst.
type ParticleBurstComponent struct {
	Count int
}

// PointFxModule installs the compute particle renderer. Particle state lives
// in one GPU storage buffer; the compute update and the point draw share it
// within a single command submission per frame.
type PointFxModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	ParticleCount   int
	MaxEmitPerFrame int
	Center          mgl32.Vec2
	Radius          float32
	SpeedMin        float32
	SpeedMax        float32

	Seed      int64
	DebugMode bool
	CPUSim    bool
	FontPath  string

	// Paths to WGSL listings overriding the built-in shaders.
	UpdateShaderFile string
	PointsShaderFile string
}

const (
	ShaderParticleUpdate = "particle_update"
	ShaderParticlePoints = "particle_points"
	ShaderHudText        = "hud_text"
)

type PointFxState struct {
	FxApp *fx_app.App

	emitterEntity EntityId
	burstPending  int
	paused        bool
}

func (s *PointFxState) WindowSize() (int, int) {
	if s == nil || s.FxApp == nil {
		return 0, 0
	}
	return int(s.FxApp.Config.Width), int(s.FxApp.Config.Height)
}

func (s *PointFxState) FPS() float64 {
	if s == nil || s.FxApp == nil {
		return 0
	}
	return s.FxApp.FPS
}

func (s *PointFxState) Alive() int {
	if s == nil || s.FxApp == nil {
		return 0
	}
	return s.FxApp.Pool.Alive()
}

func (s *PointFxState) IsDebug() bool {
	if s == nil || s.FxApp == nil {
		return false
	}
	return s.FxApp.DebugMode
}

func (s *PointFxState) SetDebugMode(enabled bool) {
	if s != nil && s.FxApp != nil {
		s.FxApp.DebugMode = enabled
	}
}

func (s *PointFxState) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	if s != nil && s.FxApp != nil {
		s.FxApp.DrawText(text, x, y, scale, color)
	}
}

func (s *PointFxState) ProfilerStats() string {
	if s == nil || s.FxApp == nil {
		return ""
	}
	return s.FxApp.Profiler.StatsString()
}

// Burst widens the next frame's emission quota.
func (s *PointFxState) Burst(count int) {
	if s != nil && count > 0 {
		s.burstPending += count
	}
}

func (s *PointFxState) Paused() bool {
	return s != nil && s.paused
}

func (s *PointFxState) SetPaused(paused bool) {
	if s != nil {
		s.paused = paused
		if s.FxApp != nil {
			s.FxApp.Paused = paused
		}
	}
}

func (mod PointFxModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, "pointfx")

	windowState := ensureWindowState(app, mod.WindowWidth, mod.WindowHeight, mod.WindowTitle)

	params := core.EmitterParams{
		Center:          mod.Center,
		Radius:          mod.Radius,
		SpeedMin:        mod.SpeedMin,
		SpeedMax:        mod.SpeedMax,
		MaxParticles:    mod.ParticleCount,
		MaxEmitPerFrame: mod.MaxEmitPerFrame,
	}
	if params.Radius <= 0 {
		params.Radius = 1.0
	}
	if params.MaxParticles <= 0 {
		params.MaxParticles = 100000
	}
	if params.MaxEmitPerFrame <= 0 {
		params.MaxEmitPerFrame = 256
	}
	if params.SpeedMax < params.SpeedMin {
		params.SpeedMax = params.SpeedMin
	}

	server := resolveAssetServer(app, cmd)
	server.RegisterShader(ShaderParticleUpdate, shaders.ParticleUpdateWGSL)
	server.RegisterShader(ShaderParticlePoints, shaders.ParticlePointsWGSL)
	server.RegisterShader(ShaderHudText, shaders.TextWGSL)
	if mod.UpdateShaderFile != "" {
		if _, err := server.LoadShaderFile(ShaderParticleUpdate, mod.UpdateShaderFile); err != nil {
			app.Logger().Warnf("update shader override: %v", err)
		}
	}
	if mod.PointsShaderFile != "" {
		if _, err := server.LoadShaderFile(ShaderParticlePoints, mod.PointsShaderFile); err != nil {
			app.Logger().Warnf("points shader override: %v", err)
		}
	}

	fxApp := fx_app.NewApp(windowState.Handle(), params, mod.Seed)
	fxApp.DebugMode = mod.DebugMode
	fxApp.CPUSim = mod.CPUSim

	update, _ := server.ShaderByName(ShaderParticleUpdate)
	points, _ := server.ShaderByName(ShaderParticlePoints)
	text, _ := server.ShaderByName(ShaderHudText)
	if err := fxApp.Init(fx_app.InitConfig{
		UpdateWGSL: update.Listing(),
		PointsWGSL: points.Listing(),
		TextWGSL:   text.Listing(),
		FontPath:   mod.FontPath,
	}); err != nil {
		panic(err)
	}

	app.Logger().Infof("pointfx: %d particles, emit cap %d/frame, surface %s",
		params.MaxParticles, params.MaxEmitPerFrame, fxApp.Config.Format.String())

	windowState.Handle().SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		fxApp.Resize(w, h)
	})

	state := &PointFxState{FxApp: fxApp}
	state.emitterEntity = cmd.AddEntity(ParticleEmitterComponent{
		Center:   params.Center,
		Radius:   params.Radius,
		SpeedMin: params.SpeedMin,
		SpeedMax: params.SpeedMax,
	})
	cmd.AddResources(state)

	app.UseSystem(
		System(pointFxInputSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(pointFxTickSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(pointFxRenderSystem).
			InStage(Render).
			RunAlways(),
	)
}

func resolveAssetServer(app *App, cmd *Commands) *AssetServer {
	if srv, ok := findResource[*AssetServer](app); ok {
		return srv
	}
	AssetServerModule{}.Install(app, cmd)
	srv, _ := findResource[*AssetServer](app)
	return srv
}

func pointFxInputSystem(input *Input, state *PointFxState, win *WindowState, cmd *Commands) {
	if input.JustPressed[KeySpace] {
		cmd.AddEntity(
			ParticleBurstComponent{Count: state.FxApp.Pool.Params.MaxEmitPerFrame * 4},
			LifetimeComponent{TimeLeft: 0.5},
		)
	}
	if input.JustPressed[KeyP] {
		state.SetPaused(!state.Paused())
	}
	if input.JustPressed[KeyD] {
		state.SetDebugMode(!state.IsDebug())
	}
	if input.JustPressed[KeyR] {
		state.FxApp.Pool.Reseed()
		state.FxApp.BufferManager.UploadParticles(state.FxApp.Pool.Particles)
	}
	if input.JustPressed[KeyEscape] || win.ShouldClose() {
		cmd.ChangeState(cmd.app.finalState)
	}
}

func pointFxTickSystem(state *PointFxState, time *Time, cmd *Commands) {
	state.FxApp.ClearText()

	// Emitter params sync
	MakeQuery1[ParticleEmitterComponent](cmd).Map(func(eid EntityId, em *ParticleEmitterComponent) bool {
		p := &state.FxApp.Pool.Params
		p.Center = em.Center
		p.Radius = em.Radius
		p.SpeedMin = em.SpeedMin
		p.SpeedMax = em.SpeedMax
		return false
	})

	// Collect burst quota from live burst entities
	burst := state.burstPending
	state.burstPending = 0
	MakeQuery1[ParticleBurstComponent](cmd).Map(func(eid EntityId, b *ParticleBurstComponent) bool {
		burst += b.Count
		return true
	})

	// HUD text entities
	MakeQuery1[TextComponent](cmd).Map(func(eid EntityId, text *TextComponent) bool {
		state.FxApp.DrawText(text.Text, text.Position[0], text.Position[1], text.Scale, text.Color)
		return true
	})

	state.FxApp.Update(float32(time.Dt), burst)
}

func pointFxRenderSystem(state *PointFxState) {
	state.FxApp.Render()
}
