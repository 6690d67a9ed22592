package yaml_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/config"
	"github.com/vk/fittings/internal/hcl_adapter"
	"github.com/vk/fittings/internal/property"
)

const bigpipeYAML = `
frameworks:
  - name: bigpipe
    tag_prefix: bp
    directory: assets
    initialize: AnnounceFramework
    library:
      - ./client.js
      - path: /abs/other.js
        expose: other
    template: "global[{bp:hash}] = {bp:client};"
    bootstrap: 42
    middleware:
      log: RequestLogger
    use:
      health: HealthPlugin
    on:
      request: PrintEvent
`

const bigpipeHCL = `
framework "bigpipe" {
  tag_prefix = "bp"
  directory  = "assets"
  initialize = "AnnounceFramework"
  library    = ["./client.js", { path = "/abs/other.js", expose = "other" }]
  template   = "global[{bp:hash}] = {bp:client};"
  bootstrap  = 42
  middleware = { log = "RequestLogger" }
  use        = { health = "HealthPlugin" }
  on         = { request = "PrintEvent" }
}
`

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "bigpipe.yaml", bigpipeYAML)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	fw, err := model.Framework("bigpipe")
	require.NoError(t, err)

	assert.Equal(t, file, fw.Source)
	assert.Equal(t, "bp", fw.TagPrefix)
	assert.Equal(t, "AnnounceFramework", fw.Initialize)
	assert.Equal(t, property.Literal("42"), fw.Properties["bootstrap"])
	assert.Equal(t, property.List{
		property.Literal("./client.js"),
		property.Record{"path": "/abs/other.js", "expose": "other"},
	}, fw.Properties["library"])
	assert.Equal(t, property.Record{"log": "RequestLogger"}, fw.Properties["middleware"])
}

func TestLoader_MatchesHCL(t *testing.T) {
	yamlDir, hclDir := t.TempDir(), t.TempDir()
	write(t, yamlDir, "decl.yml", bigpipeYAML)
	write(t, hclDir, "decl.hcl", bigpipeHCL)

	fromYAML, err := NewLoader().Load(context.Background(), yamlDir)
	require.NoError(t, err)
	fromHCL, err := hcl_adapter.NewLoader().Load(context.Background(), hclDir)
	require.NoError(t, err)

	y, err := fromYAML.Framework("bigpipe")
	require.NoError(t, err)
	h, err := fromHCL.Framework("bigpipe")
	require.NoError(t, err)

	assert.Equal(t, h.Properties, y.Properties)
	assert.Equal(t, h.TagPrefix, y.TagPrefix)
	assert.Equal(t, h.Initialize, y.Initialize)
	assert.Equal(t, filepath.Base(h.Directory), filepath.Base(y.Directory))
}

func TestComposite_LoadsBothFormats(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.yaml", "frameworks:\n  - name: from-yaml\n")
	write(t, dir, "b.hcl", `framework "from-hcl" {}`)

	model, err := config.Composite{hcl_adapter.NewLoader(), NewLoader()}.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"from-hcl", "from-yaml"}, model.Names())
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed", body: "frameworks: [", wantErr: "decode declarations"},
		{name: "missing name", body: "frameworks:\n  - template: x\n", wantErr: `"name" is required`},
		{name: "non string prefix", body: "frameworks:\n  - name: a\n    tag_prefix: [x]\n", wantErr: `"tag_prefix" must be a string`},
		{name: "null list element", body: "frameworks:\n  - name: a\n    library: [a, null]\n", wantErr: "element 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body), "decl.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	fws, err := Parse([]byte("  \n"), "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, fws)
}
