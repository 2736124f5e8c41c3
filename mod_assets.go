package drift

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

type AssetId string

// ShaderAsset is a named WGSL source listing. The renderer resolves its
// pipeline shaders through the asset server so a demo can swap in listings
// loaded from disk without rebuilding.
type ShaderAsset struct {
	version uint
	name    string
	listing string
}

func (a ShaderAsset) Name() string    { return a.name }
func (a ShaderAsset) Listing() string { return a.listing }

type AssetServer struct {
	shaders map[AssetId]ShaderAsset
	named   map[string]AssetId
}

type AssetServerModule struct{}

func (mod AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&AssetServer{
		shaders: make(map[AssetId]ShaderAsset),
		named:   make(map[string]AssetId),
	})
}

// RegisterShader stores an in-memory WGSL listing under a stable name and
// returns its asset id. Registering the same name again replaces the listing
// and bumps the version.
func (server *AssetServer) RegisterShader(name, listing string) AssetId {
	if id, ok := server.named[name]; ok {
		prev := server.shaders[id]
		server.shaders[id] = ShaderAsset{
			version: prev.version + 1,
			name:    name,
			listing: listing,
		}
		return id
	}

	id := makeAssetId()
	server.shaders[id] = ShaderAsset{name: name, listing: listing}
	server.named[name] = id
	return id
}

// LoadShaderFile reads a WGSL file from disk and registers it under name.
func (server *AssetServer) LoadShaderFile(name, filename string) (AssetId, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", filename, err)
	}
	return server.RegisterShader(name, string(data)), nil
}

func (server *AssetServer) Shader(id AssetId) (ShaderAsset, bool) {
	asset, ok := server.shaders[id]
	return asset, ok
}

// ShaderByName resolves a listing by its registered name.
func (server *AssetServer) ShaderByName(name string) (ShaderAsset, bool) {
	id, ok := server.named[name]
	if !ok {
		return ShaderAsset{}, false
	}
	return server.shaders[id], true
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
