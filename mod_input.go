package drift

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeySpace int = iota
	KeyEscape
	KeyP
	KeyR
	KeyD
	MouseButtonLeft
	keyCount
)

var keyToGlfw = map[int]glfw.Key{
	KeySpace:  glfw.KeySpace,
	KeyEscape: glfw.KeyEscape,
	KeyP:      glfw.KeyP,
	KeyR:      glfw.KeyR,
	KeyD:      glfw.KeyD,
}

// Input holds the per-frame keyboard and mouse snapshot.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY float64
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	for key, glfwKey := range keyToGlfw {
		action := s.windowGlfw.GetKey(glfwKey)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if action == glfw.Press {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else if action == glfw.Release {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()

	action := s.windowGlfw.GetMouseButton(glfw.MouseButtonLeft)
	input.JustPressed[MouseButtonLeft] = false
	input.JustReleased[MouseButtonLeft] = false
	if action == glfw.Press {
		if !input.Pressed[MouseButtonLeft] {
			input.JustPressed[MouseButtonLeft] = true
		}
		input.Pressed[MouseButtonLeft] = true
	} else if action == glfw.Release {
		if input.Pressed[MouseButtonLeft] {
			input.JustReleased[MouseButtonLeft] = true
		}
		input.Pressed[MouseButtonLeft] = false
	}
}
