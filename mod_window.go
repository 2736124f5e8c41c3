package drift

import (
	"reflect"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState wraps the single shared GLFW window. Renderers take the raw
// window handle from here instead of creating their own.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

func (s *WindowState) Handle() *glfw.Window { return s.windowGlfw }

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw.ShouldClose()
}

func createWindowState(windowWidth, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context; wgpu owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

// ensureWindowState guarantees a single shared WindowState resource exists.
// Install is idempotent: if another module already created the window, it is
// reused.
func ensureWindowState(app *App, width, height int, title string) *WindowState {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if res, ok := app.resources[t]; ok {
		return res.(*WindowState)
	}
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "drift"
	}
	ws := createWindowState(width, height, title)
	app.addResources(ws)
	app.Logger().Infof("Created shared window (%dx%d) '%s'", width, height, title)
	return ws
}

// WindowModule provides the shared WindowState resource and per-frame event
// polling.
type WindowModule struct {
	Width  int
	Height int
	Title  string
}

func (m WindowModule) Install(app *App, cmd *Commands) {
	width, height, title := m.Width, m.Height, m.Title
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "drift"
	}
	ensureWindowState(app, width, height, title)

	app.UseSystem(
		System(windowEventsSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func windowEventsSystem(state *WindowState) {
	glfw.PollEvents()
	state.WindowWidth, state.WindowHeight = state.windowGlfw.GetSize()
}
