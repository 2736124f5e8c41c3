package drift

// RendererName identifies a concrete renderer module.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererPointFx RendererName = "pointfx"
)

// Renderer is an alias to Module for semantic clarity in APIs.
type Renderer interface {
	Module
}

// UseRenderer installs exactly one renderer module, enforcing exclusivity and
// ensuring a shared WindowState exists.
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	ensureSingleRenderer(app, string(name))
	ensureWindowState(app, 0, 0, "")
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseRendererWithWindow installs the renderer and ensures a shared window with
// explicit size and title.
func (app *App) UseRendererWithWindow(name RendererName, mod Module, width, height int, title string) *App {
	ensureSingleRenderer(app, string(name))
	ensureWindowState(app, width, height, title)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UsePointFx selects the particle renderer with a shared window of the given
// parameters. For advanced options, configure a PointFxModule and call
// UseRendererWithWindow directly.
func (app *App) UsePointFx(width, height int, title string) *App {
	return app.UseRendererWithWindow(RendererPointFx, PointFxModule{
		WindowWidth:  width,
		WindowHeight: height,
		WindowTitle:  title,
	}, width, height, title)
}
