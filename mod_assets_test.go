package drift

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssetServer(t *testing.T) *AssetServer {
	t.Helper()
	app := NewApp()
	app.UseModules(AssetServerModule{})
	srv, ok := findResource[*AssetServer](app)
	require.True(t, ok)
	return srv
}

func TestAssetServer_RegisterShader(t *testing.T) {
	server := newTestAssetServer(t)

	id := server.RegisterShader("points", "// v1")
	asset, ok := server.Shader(id)
	require.True(t, ok)
	assert.Equal(t, "points", asset.Name())
	assert.Equal(t, "// v1", asset.Listing())

	// Re-registering the same name keeps the id and bumps the version
	id2 := server.RegisterShader("points", "// v2")
	assert.Equal(t, id, id2)

	asset, _ = server.Shader(id)
	assert.Equal(t, "// v2", asset.Listing())
	assert.Equal(t, uint(1), asset.version)
}

func TestAssetServer_ShaderByName(t *testing.T) {
	server := newTestAssetServer(t)
	server.RegisterShader("update", "@compute fn main() {}")

	asset, ok := server.ShaderByName("update")
	require.True(t, ok)
	assert.Equal(t, "@compute fn main() {}", asset.Listing())

	_, ok = server.ShaderByName("missing")
	assert.False(t, ok)
}

func TestAssetServer_LoadShaderFile(t *testing.T) {
	server := newTestAssetServer(t)

	path := filepath.Join(t.TempDir(), "override.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("// from disk"), 0o644))

	id, err := server.LoadShaderFile("points", path)
	require.NoError(t, err)

	asset, ok := server.Shader(id)
	require.True(t, ok)
	assert.Equal(t, "// from disk", asset.Listing())

	_, err = server.LoadShaderFile("points", filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.Error(t, err)
}
