package main

import (
	"flag"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/driftlab/drift"
)

func init() {
	runtime.LockOSThread()
}

const (
	Running drift.State = iota
	Done
)

func main() {
	count := flag.Int("count", 100000, "Particle pool size")
	emit := flag.Int("emit", 256, "Max particles emitted per frame")
	radius := flag.Float64("radius", 1.0, "Bounding circle radius")
	speedMin := flag.Float64("speed-min", 0.05, "Minimum particle speed")
	speedMax := flag.Float64("speed-max", 0.35, "Maximum particle speed")
	seed := flag.Int64("seed", 0, "RNG seed (0 uses the clock)")
	cpu := flag.Bool("cpu", false, "Simulate on the CPU instead of the compute shader")
	debug := flag.Bool("debug", false, "Show the debug HUD")
	font := flag.String("font", "", "TTF font for the debug HUD")
	updateShader := flag.String("update-shader", "", "WGSL file overriding the update compute shader")
	pointsShader := flag.String("points-shader", "", "WGSL file overriding the point shader")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	drift.NewApp().
		UseStates(Running, Done).
		UseModules(
			drift.LoggingModule{Prefix: "drift", Debug: *debug},
			drift.TimeModule{},
			drift.WindowModule{Width: 1280, Height: 720, Title: "drift pointfx"},
			drift.InputModule{},
			drift.AssetServerModule{},
			drift.LifecycleModule{},
			drift.PointFxModule{
				WindowWidth:      1280,
				WindowHeight:     720,
				WindowTitle:      "drift pointfx",
				ParticleCount:    *count,
				MaxEmitPerFrame:  *emit,
				Center:           mgl32.Vec2{0, 0},
				Radius:           float32(*radius),
				SpeedMin:         float32(*speedMin),
				SpeedMax:         float32(*speedMax),
				Seed:             *seed,
				DebugMode:        *debug,
				CPUSim:           *cpu,
				FontPath:         *font,
				UpdateShaderFile: *updateShader,
				PointsShaderFile: *pointsShader,
			},
		).
		Run()
}
